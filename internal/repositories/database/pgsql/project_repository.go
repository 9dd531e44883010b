package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/muhapauka-rgb/CXEMA-V7/internal/apperrors"
	"github.com/muhapauka-rgb/CXEMA-V7/internal/core/domain"
	portsrepo "github.com/muhapauka-rgb/CXEMA-V7/internal/core/ports/repositories"
	"github.com/muhapauka-rgb/CXEMA-V7/internal/models"
	"github.com/muhapauka-rgb/CXEMA-V7/internal/utils/mapping"
)

type PgxProjectRepository struct {
	BaseRepository
}

// newPgxProjectRepository creates a new repository for project data.
func newPgxProjectRepository(pool *pgxpool.Pool) portsrepo.ProjectRepositoryWithTx {
	return &PgxProjectRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.ProjectRepositoryWithTx = (*PgxProjectRepository)(nil)

const projectColumns = `id, title, client_name, client_email, client_phone,
	google_drive_url, google_drive_folder, project_price_total,
	expected_from_client_total, agency_fee_percent,
	agency_fee_include_in_estimate, created_at, updated_at, closed_at`

func scanProjectRow(row pgx.Row) (models.Project, error) {
	var m models.Project
	err := row.Scan(
		&m.ID,
		&m.Title,
		&m.ClientName,
		&m.ClientEmail,
		&m.ClientPhone,
		&m.GoogleDriveURL,
		&m.GoogleDriveFolder,
		&m.ProjectPriceTotal,
		&m.ExpectedFromClientTotal,
		&m.AgencyFeePercent,
		&m.AgencyFeeIncludeInEstimate,
		&m.CreatedAt,
		&m.UpdatedAt,
		&m.ClosedAt,
	)
	return m, err
}

const insertProjectQuery = `
	INSERT INTO projects (title, client_name, client_email, client_phone,
		google_drive_url, google_drive_folder, project_price_total,
		expected_from_client_total, agency_fee_percent,
		agency_fee_include_in_estimate, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	RETURNING ` + projectColumns + `;`

// SaveProjectWithGroups inserts a new project and its starter expense groups
// within a single DB transaction, so a failed group insert leaves no
// half-seeded project behind.
func (r *PgxProjectRepository) SaveProjectWithGroups(ctx context.Context, project domain.Project, groups []domain.ExpenseGroup) (domain.Project, error) {
	m := mapping.ToModelProject(project)

	tx, err := r.Begin(ctx)
	if err != nil {
		return domain.Project{}, err
	}
	// Defer rollback in case of error
	defer r.Rollback(ctx, tx) // Will be ignored if transaction is committed successfully

	saved, err := scanProjectRow(tx.QueryRow(ctx, insertProjectQuery,
		m.Title,
		m.ClientName,
		m.ClientEmail,
		m.ClientPhone,
		m.GoogleDriveURL,
		m.GoogleDriveFolder,
		m.ProjectPriceTotal,
		m.ExpectedFromClientTotal,
		m.AgencyFeePercent,
		m.AgencyFeeIncludeInEstimate,
		m.CreatedAt,
		m.UpdatedAt,
	))
	if err != nil {
		return domain.Project{}, fmt.Errorf("failed to save project %q: %w", m.Title, err)
	}

	batch := &pgx.Batch{}
	groupQuery := `INSERT INTO expense_groups (project_id, name, sort_order) VALUES ($1, $2, $3);`
	for _, group := range groups {
		g := mapping.ToModelExpenseGroup(group)
		batch.Queue(groupQuery, saved.ID, g.Name, g.SortOrder)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return domain.Project{}, fmt.Errorf("failed to seed groups for project %q: %w", m.Title, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return domain.Project{}, err
	}
	return mapping.ToDomainProject(saved), nil
}

// FindProjectByID retrieves a project by its identifier.
func (r *PgxProjectRepository) FindProjectByID(ctx context.Context, projectID int64) (*domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = $1;`
	m, err := scanProjectRow(r.Pool.QueryRow(ctx, query, projectID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find project %d: %w", projectID, err)
	}
	d := mapping.ToDomainProject(m)
	return &d, nil
}

// ListProjects retrieves every project, optionally including closed ones.
func (r *PgxProjectRepository) ListProjects(ctx context.Context, includeClosed bool) ([]domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects`
	if !includeClosed {
		query += ` WHERE closed_at IS NULL`
	}
	query += ` ORDER BY id;`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query projects: %w", err)
	}
	defer rows.Close()

	ms, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Project, error) {
		return scanProjectRow(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan projects: %w", err)
	}
	return mapping.ToDomainProjectSlice(ms), nil
}

// UpdateProject replaces a project's mutable fields.
func (r *PgxProjectRepository) UpdateProject(ctx context.Context, project domain.Project) error {
	m := mapping.ToModelProject(project)
	query := `
		UPDATE projects SET
			title = $2,
			client_name = $3,
			client_email = $4,
			client_phone = $5,
			google_drive_url = $6,
			google_drive_folder = $7,
			project_price_total = $8,
			expected_from_client_total = $9,
			agency_fee_percent = $10,
			agency_fee_include_in_estimate = $11,
			updated_at = $12
		WHERE id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.ID,
		m.Title,
		m.ClientName,
		m.ClientEmail,
		m.ClientPhone,
		m.GoogleDriveURL,
		m.GoogleDriveFolder,
		m.ProjectPriceTotal,
		m.ExpectedFromClientTotal,
		m.AgencyFeePercent,
		m.AgencyFeeIncludeInEstimate,
		m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update project %d: %w", m.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// CloseProject marks a project closed as of the given day.
func (r *PgxProjectRepository) CloseProject(ctx context.Context, projectID int64, closedAt time.Time) error {
	query := `UPDATE projects SET closed_at = $2, updated_at = now() WHERE id = $1;`
	tag, err := r.Pool.Exec(ctx, query, projectID, closedAt)
	if err != nil {
		return fmt.Errorf("failed to close project %d: %w", projectID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteProject removes a project; dependent rows go with it via cascades.
func (r *PgxProjectRepository) DeleteProject(ctx context.Context, projectID int64) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM projects WHERE id = $1;`, projectID)
	if err != nil {
		return fmt.Errorf("failed to delete project %d: %w", projectID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
