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

type PgxSheetLinkRepository struct {
	BaseRepository
}

// newPgxSheetLinkRepository creates a new repository for project sheet links.
func newPgxSheetLinkRepository(pool *pgxpool.Pool) portsrepo.SheetLinkRepositoryWithTx {
	return &PgxSheetLinkRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.SheetLinkRepositoryWithTx = (*PgxSheetLinkRepository)(nil)

const sheetLinkColumns = `id, project_id, spreadsheet_id, sheet_tab_name, last_published_at, last_imported_at`

func scanSheetLinkRow(row pgx.Row) (models.GoogleSheetLink, error) {
	var m models.GoogleSheetLink
	err := row.Scan(&m.ID, &m.ProjectID, &m.SpreadsheetID, &m.SheetTabName, &m.LastPublishedAt, &m.LastImportedAt)
	return m, err
}

// FindLinkByProject retrieves the spreadsheet link of a project.
func (r *PgxSheetLinkRepository) FindLinkByProject(ctx context.Context, projectID int64) (*domain.GoogleSheetLink, error) {
	query := `SELECT ` + sheetLinkColumns + ` FROM google_sheet_links WHERE project_id = $1;`
	m, err := scanSheetLinkRow(r.Pool.QueryRow(ctx, query, projectID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find sheet link of project %d: %w", projectID, err)
	}
	d := mapping.ToDomainGoogleSheetLink(m)
	return &d, nil
}

// UpsertLink creates or replaces a project's spreadsheet link.
func (r *PgxSheetLinkRepository) UpsertLink(ctx context.Context, link domain.GoogleSheetLink) (domain.GoogleSheetLink, error) {
	m := mapping.ToModelGoogleSheetLink(link)
	query := `
		INSERT INTO google_sheet_links (project_id, spreadsheet_id, sheet_tab_name)
		VALUES ($1, $2, $3)
		ON CONFLICT (project_id) DO UPDATE SET
			spreadsheet_id = EXCLUDED.spreadsheet_id,
			sheet_tab_name = EXCLUDED.sheet_tab_name
		RETURNING ` + sheetLinkColumns + `;
	`
	saved, err := scanSheetLinkRow(r.Pool.QueryRow(ctx, query, m.ProjectID, m.SpreadsheetID, m.SheetTabName))
	if err != nil {
		return domain.GoogleSheetLink{}, fmt.Errorf("failed to upsert sheet link of project %d: %w", m.ProjectID, err)
	}
	return mapping.ToDomainGoogleSheetLink(saved), nil
}

// TouchPublished records a successful publication.
func (r *PgxSheetLinkRepository) TouchPublished(ctx context.Context, projectID int64, at time.Time) error {
	tag, err := r.Pool.Exec(ctx,
		`UPDATE google_sheet_links SET last_published_at = $2 WHERE project_id = $1;`, projectID, at)
	if err != nil {
		return fmt.Errorf("failed to touch publication of project %d: %w", projectID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// TouchImported records a successful import.
func (r *PgxSheetLinkRepository) TouchImported(ctx context.Context, projectID int64, at time.Time) error {
	tag, err := r.Pool.Exec(ctx,
		`UPDATE google_sheet_links SET last_imported_at = $2 WHERE project_id = $1;`, projectID, at)
	if err != nil {
		return fmt.Errorf("failed to touch import of project %d: %w", projectID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteLink unlinks a project from its spreadsheet.
func (r *PgxSheetLinkRepository) DeleteLink(ctx context.Context, projectID int64) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM google_sheet_links WHERE project_id = $1;`, projectID)
	if err != nil {
		return fmt.Errorf("failed to delete sheet link of project %d: %w", projectID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
