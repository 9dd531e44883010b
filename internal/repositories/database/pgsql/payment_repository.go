package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/muhapauka-rgb/CXEMA-V7/internal/apperrors"
	"github.com/muhapauka-rgb/CXEMA-V7/internal/core/domain"
	portsrepo "github.com/muhapauka-rgb/CXEMA-V7/internal/core/ports/repositories"
	"github.com/muhapauka-rgb/CXEMA-V7/internal/models"
	"github.com/muhapauka-rgb/CXEMA-V7/internal/utils/mapping"
)

type PgxPaymentRepository struct {
	BaseRepository
}

// newPgxPaymentRepository creates a new repository for planned and realized
// client payments.
func newPgxPaymentRepository(pool *pgxpool.Pool) portsrepo.PaymentRepositoryWithTx {
	return &PgxPaymentRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.PaymentRepositoryWithTx = (*PgxPaymentRepository)(nil)

const planColumns = `id, stable_pay_id, project_id, pay_date, amount, note, created_at, updated_at`

func scanPlanRow(row pgx.Row) (models.PaymentPlan, error) {
	var m models.PaymentPlan
	err := row.Scan(&m.ID, &m.StablePayID, &m.ProjectID, &m.PayDate, &m.Amount, &m.Note, &m.CreatedAt, &m.UpdatedAt)
	return m, err
}

// SavePlan inserts a new planned payment.
func (r *PgxPaymentRepository) SavePlan(ctx context.Context, plan domain.PaymentPlan) (domain.PaymentPlan, error) {
	m := mapping.ToModelPaymentPlan(plan)
	query := `
		INSERT INTO client_payments_plan (stable_pay_id, project_id, pay_date, amount, note, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + planColumns + `;
	`
	saved, err := scanPlanRow(r.Pool.QueryRow(ctx, query,
		m.StablePayID, m.ProjectID, m.PayDate, m.Amount, m.Note, m.CreatedAt, m.UpdatedAt))
	if err != nil {
		return domain.PaymentPlan{}, fmt.Errorf("failed to save plan for project %d: %w", m.ProjectID, err)
	}
	return mapping.ToDomainPaymentPlan(saved), nil
}

// FindPlanByID retrieves a planned payment.
func (r *PgxPaymentRepository) FindPlanByID(ctx context.Context, planID int64) (*domain.PaymentPlan, error) {
	query := `SELECT ` + planColumns + ` FROM client_payments_plan WHERE id = $1;`
	m, err := scanPlanRow(r.Pool.QueryRow(ctx, query, planID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find plan %d: %w", planID, err)
	}
	d := mapping.ToDomainPaymentPlan(m)
	return &d, nil
}

// ListPlansByProject retrieves a project's planned payments ordered by date.
func (r *PgxPaymentRepository) ListPlansByProject(ctx context.Context, projectID int64) ([]domain.PaymentPlan, error) {
	query := `SELECT ` + planColumns + ` FROM client_payments_plan WHERE project_id = $1 ORDER BY pay_date, id;`
	rows, err := r.Pool.Query(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to query plans of project %d: %w", projectID, err)
	}
	defer rows.Close()

	ms, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.PaymentPlan, error) {
		return scanPlanRow(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan plans: %w", err)
	}
	return mapping.ToDomainPaymentPlanSlice(ms), nil
}

// UpdatePlan replaces a planned payment's mutable fields.
func (r *PgxPaymentRepository) UpdatePlan(ctx context.Context, plan domain.PaymentPlan) error {
	m := mapping.ToModelPaymentPlan(plan)
	tag, err := r.Pool.Exec(ctx,
		`UPDATE client_payments_plan SET pay_date = $2, amount = $3, note = $4, updated_at = $5 WHERE id = $1;`,
		m.ID, m.PayDate, m.Amount, m.Note, m.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update plan %d: %w", m.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeletePlan removes a planned payment.
func (r *PgxPaymentRepository) DeletePlan(ctx context.Context, planID int64) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM client_payments_plan WHERE id = $1;`, planID)
	if err != nil {
		return fmt.Errorf("failed to delete plan %d: %w", planID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

const factColumns = `id, project_id, pay_date, amount, note, created_at`

func scanFactRow(row pgx.Row) (models.PaymentFact, error) {
	var m models.PaymentFact
	err := row.Scan(&m.ID, &m.ProjectID, &m.PayDate, &m.Amount, &m.Note, &m.CreatedAt)
	return m, err
}

// SaveFact inserts a new realized payment.
func (r *PgxPaymentRepository) SaveFact(ctx context.Context, fact domain.PaymentFact) (domain.PaymentFact, error) {
	m := mapping.ToModelPaymentFact(fact)
	query := `
		INSERT INTO client_payments_fact (project_id, pay_date, amount, note, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + factColumns + `;
	`
	saved, err := scanFactRow(r.Pool.QueryRow(ctx, query,
		m.ProjectID, m.PayDate, m.Amount, m.Note, m.CreatedAt))
	if err != nil {
		return domain.PaymentFact{}, fmt.Errorf("failed to save fact for project %d: %w", m.ProjectID, err)
	}
	return mapping.ToDomainPaymentFact(saved), nil
}

// FindFactByID retrieves a realized payment.
func (r *PgxPaymentRepository) FindFactByID(ctx context.Context, factID int64) (*domain.PaymentFact, error) {
	query := `SELECT ` + factColumns + ` FROM client_payments_fact WHERE id = $1;`
	m, err := scanFactRow(r.Pool.QueryRow(ctx, query, factID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find fact %d: %w", factID, err)
	}
	d := mapping.ToDomainPaymentFact(m)
	return &d, nil
}

// ListFactsByProject retrieves a project's realized payments ordered by date.
func (r *PgxPaymentRepository) ListFactsByProject(ctx context.Context, projectID int64) ([]domain.PaymentFact, error) {
	query := `SELECT ` + factColumns + ` FROM client_payments_fact WHERE project_id = $1 ORDER BY pay_date, id;`
	rows, err := r.Pool.Query(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to query facts of project %d: %w", projectID, err)
	}
	defer rows.Close()

	ms, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.PaymentFact, error) {
		return scanFactRow(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan facts: %w", err)
	}
	return mapping.ToDomainPaymentFactSlice(ms), nil
}

// UpdateFact replaces a realized payment's mutable fields.
func (r *PgxPaymentRepository) UpdateFact(ctx context.Context, fact domain.PaymentFact) error {
	m := mapping.ToModelPaymentFact(fact)
	tag, err := r.Pool.Exec(ctx,
		`UPDATE client_payments_fact SET pay_date = $2, amount = $3, note = $4 WHERE id = $1;`,
		m.ID, m.PayDate, m.Amount, m.Note)
	if err != nil {
		return fmt.Errorf("failed to update fact %d: %w", m.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteFact removes a realized payment.
func (r *PgxPaymentRepository) DeleteFact(ctx context.Context, factID int64) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM client_payments_fact WHERE id = $1;`, factID)
	if err != nil {
		return fmt.Errorf("failed to delete fact %d: %w", factID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
