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

type PgxExpenseRepository struct {
	BaseRepository
}

// newPgxExpenseRepository creates a new repository for groups, items and
// billing adjustments.
func newPgxExpenseRepository(pool *pgxpool.Pool) portsrepo.ExpenseRepositoryWithTx {
	return &PgxExpenseRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.ExpenseRepositoryWithTx = (*PgxExpenseRepository)(nil)

// SaveGroup inserts a new expense group.
func (r *PgxExpenseRepository) SaveGroup(ctx context.Context, group domain.ExpenseGroup) (domain.ExpenseGroup, error) {
	m := mapping.ToModelExpenseGroup(group)
	query := `
		INSERT INTO expense_groups (project_id, name, sort_order)
		VALUES ($1, $2, $3)
		RETURNING id, project_id, name, sort_order;
	`
	var saved models.ExpenseGroup
	err := r.Pool.QueryRow(ctx, query, m.ProjectID, m.Name, m.SortOrder).
		Scan(&saved.ID, &saved.ProjectID, &saved.Name, &saved.SortOrder)
	if err != nil {
		return domain.ExpenseGroup{}, fmt.Errorf("failed to save group %q: %w", m.Name, err)
	}
	return mapping.ToDomainExpenseGroup(saved), nil
}

// FindGroupByID retrieves an expense group.
func (r *PgxExpenseRepository) FindGroupByID(ctx context.Context, groupID int64) (*domain.ExpenseGroup, error) {
	query := `SELECT id, project_id, name, sort_order FROM expense_groups WHERE id = $1;`
	var m models.ExpenseGroup
	err := r.Pool.QueryRow(ctx, query, groupID).Scan(&m.ID, &m.ProjectID, &m.Name, &m.SortOrder)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find group %d: %w", groupID, err)
	}
	d := mapping.ToDomainExpenseGroup(m)
	return &d, nil
}

// ListGroupsByProject retrieves a project's groups ordered by sort order.
func (r *PgxExpenseRepository) ListGroupsByProject(ctx context.Context, projectID int64) ([]domain.ExpenseGroup, error) {
	query := `
		SELECT id, project_id, name, sort_order
		FROM expense_groups
		WHERE project_id = $1
		ORDER BY sort_order, id;
	`
	rows, err := r.Pool.Query(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to query groups of project %d: %w", projectID, err)
	}
	defer rows.Close()

	ms, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.ExpenseGroup, error) {
		var g models.ExpenseGroup
		err := row.Scan(&g.ID, &g.ProjectID, &g.Name, &g.SortOrder)
		return g, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan groups: %w", err)
	}
	return mapping.ToDomainExpenseGroupSlice(ms), nil
}

// UpdateGroup replaces a group's name and sort order.
func (r *PgxExpenseRepository) UpdateGroup(ctx context.Context, group domain.ExpenseGroup) error {
	m := mapping.ToModelExpenseGroup(group)
	tag, err := r.Pool.Exec(ctx,
		`UPDATE expense_groups SET name = $2, sort_order = $3 WHERE id = $1;`,
		m.ID, m.Name, m.SortOrder)
	if err != nil {
		return fmt.Errorf("failed to update group %d: %w", m.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteGroup removes a group; its items go with it via cascades.
func (r *PgxExpenseRepository) DeleteGroup(ctx context.Context, groupID int64) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM expense_groups WHERE id = $1;`, groupID)
	if err != nil {
		return fmt.Errorf("failed to delete group %d: %w", groupID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

const itemColumns = `id, stable_item_id, project_id, group_id, parent_item_id,
	title, mode, qty, unit_price_base, base_total, extra_profit_enabled,
	extra_profit_amount, include_in_estimate, planned_pay_date, created_at,
	updated_at`

func scanItemRow(row pgx.Row) (models.ExpenseItem, error) {
	var m models.ExpenseItem
	err := row.Scan(
		&m.ID,
		&m.StableItemID,
		&m.ProjectID,
		&m.GroupID,
		&m.ParentItemID,
		&m.Title,
		&m.Mode,
		&m.Qty,
		&m.UnitPriceBase,
		&m.BaseTotal,
		&m.ExtraProfitEnabled,
		&m.ExtraProfitAmount,
		&m.IncludeInEstimate,
		&m.PlannedPayDate,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	return m, err
}

// SaveItem inserts a new expense item.
func (r *PgxExpenseRepository) SaveItem(ctx context.Context, item domain.ExpenseItem) (domain.ExpenseItem, error) {
	m := mapping.ToModelExpenseItem(item)
	query := `
		INSERT INTO expense_items (stable_item_id, project_id, group_id,
			parent_item_id, title, mode, qty, unit_price_base, base_total,
			extra_profit_enabled, extra_profit_amount, include_in_estimate,
			planned_pay_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING ` + itemColumns + `;
	`
	saved, err := scanItemRow(r.Pool.QueryRow(ctx, query,
		m.StableItemID,
		m.ProjectID,
		m.GroupID,
		m.ParentItemID,
		m.Title,
		m.Mode,
		m.Qty,
		m.UnitPriceBase,
		m.BaseTotal,
		m.ExtraProfitEnabled,
		m.ExtraProfitAmount,
		m.IncludeInEstimate,
		m.PlannedPayDate,
		m.CreatedAt,
		m.UpdatedAt,
	))
	if err != nil {
		return domain.ExpenseItem{}, fmt.Errorf("failed to save item %q: %w", m.Title, err)
	}
	return mapping.ToDomainExpenseItem(saved), nil
}

// FindItemByID retrieves an expense item.
func (r *PgxExpenseRepository) FindItemByID(ctx context.Context, itemID int64) (*domain.ExpenseItem, error) {
	query := `SELECT ` + itemColumns + ` FROM expense_items WHERE id = $1;`
	m, err := scanItemRow(r.Pool.QueryRow(ctx, query, itemID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find item %d: %w", itemID, err)
	}
	d := mapping.ToDomainExpenseItem(m)
	return &d, nil
}

// ListItemsByProject retrieves every item of a project in creation order.
func (r *PgxExpenseRepository) ListItemsByProject(ctx context.Context, projectID int64) ([]domain.ExpenseItem, error) {
	query := `SELECT ` + itemColumns + ` FROM expense_items WHERE project_id = $1 ORDER BY id;`
	rows, err := r.Pool.Query(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to query items of project %d: %w", projectID, err)
	}
	defer rows.Close()

	ms, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.ExpenseItem, error) {
		return scanItemRow(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan items: %w", err)
	}
	return mapping.ToDomainExpenseItemSlice(ms), nil
}

// ListChildren retrieves the direct children of an item.
func (r *PgxExpenseRepository) ListChildren(ctx context.Context, parentItemID int64) ([]domain.ExpenseItem, error) {
	query := `SELECT ` + itemColumns + ` FROM expense_items WHERE parent_item_id = $1 ORDER BY id;`
	rows, err := r.Pool.Query(ctx, query, parentItemID)
	if err != nil {
		return nil, fmt.Errorf("failed to query children of item %d: %w", parentItemID, err)
	}
	defer rows.Close()

	ms, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.ExpenseItem, error) {
		return scanItemRow(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan children: %w", err)
	}
	return mapping.ToDomainExpenseItemSlice(ms), nil
}

const updateItemQuery = `
	UPDATE expense_items SET
		group_id = $2,
		parent_item_id = $3,
		title = $4,
		mode = $5,
		qty = $6,
		unit_price_base = $7,
		base_total = $8,
		extra_profit_enabled = $9,
		extra_profit_amount = $10,
		include_in_estimate = $11,
		planned_pay_date = $12,
		updated_at = $13
	WHERE id = $1;`

// UpdateItem replaces an item's mutable fields.
func (r *PgxExpenseRepository) UpdateItem(ctx context.Context, item domain.ExpenseItem) error {
	m := mapping.ToModelExpenseItem(item)
	tag, err := r.Pool.Exec(ctx, updateItemQuery,
		m.ID,
		m.GroupID,
		m.ParentItemID,
		m.Title,
		m.Mode,
		m.Qty,
		m.UnitPriceBase,
		m.BaseTotal,
		m.ExtraProfitEnabled,
		m.ExtraProfitAmount,
		m.IncludeInEstimate,
		m.PlannedPayDate,
		m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update item %d: %w", m.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpdateItems replaces the mutable fields of a batch of items within a
// single DB transaction. A failed or missing row rolls the whole batch back.
func (r *PgxExpenseRepository) UpdateItems(ctx context.Context, items []domain.ExpenseItem) error {
	if len(items) == 0 {
		return nil
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	// Defer rollback in case of error
	defer r.Rollback(ctx, tx) // Will be ignored if transaction is committed successfully

	batch := &pgx.Batch{}
	for _, item := range items {
		m := mapping.ToModelExpenseItem(item)
		batch.Queue(updateItemQuery,
			m.ID,
			m.GroupID,
			m.ParentItemID,
			m.Title,
			m.Mode,
			m.Qty,
			m.UnitPriceBase,
			m.BaseTotal,
			m.ExtraProfitEnabled,
			m.ExtraProfitAmount,
			m.IncludeInEstimate,
			m.PlannedPayDate,
			m.UpdatedAt,
		)
	}

	br := tx.SendBatch(ctx, batch)
	for _, item := range items {
		tag, err := br.Exec()
		if err != nil {
			br.Close()
			return fmt.Errorf("failed to update item %d: %w", item.ID, err)
		}
		if tag.RowsAffected() == 0 {
			br.Close()
			return fmt.Errorf("item %d: %w", item.ID, apperrors.ErrNotFound)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to execute item update batch: %w", err)
	}

	return r.Commit(ctx, tx)
}

// DeleteItemWithChildren removes an item and its direct children.
func (r *PgxExpenseRepository) DeleteItemWithChildren(ctx context.Context, itemID int64) error {
	tag, err := r.Pool.Exec(ctx,
		`DELETE FROM expense_items WHERE id = $1 OR parent_item_id = $1;`, itemID)
	if err != nil {
		return fmt.Errorf("failed to delete item %d: %w", itemID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

const adjustmentColumns = `id, expense_item_id, unit_price_full,
	unit_price_billable, adjustment_type, reason, discount_enabled,
	discount_amount`

func scanAdjustmentRow(row pgx.Row) (models.BillingAdjustment, error) {
	var m models.BillingAdjustment
	err := row.Scan(
		&m.ID,
		&m.ExpenseItemID,
		&m.UnitPriceFull,
		&m.UnitPriceBillable,
		&m.AdjustmentType,
		&m.Reason,
		&m.DiscountEnabled,
		&m.DiscountAmount,
	)
	return m, err
}

// UpsertAdjustment creates or replaces the single adjustment row of an item.
func (r *PgxExpenseRepository) UpsertAdjustment(ctx context.Context, adjustment domain.BillingAdjustment) (domain.BillingAdjustment, error) {
	m := mapping.ToModelBillingAdjustment(adjustment)
	query := `
		INSERT INTO client_billing_adjustments (expense_item_id,
			unit_price_full, unit_price_billable, adjustment_type, reason,
			discount_enabled, discount_amount)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (expense_item_id) DO UPDATE SET
			unit_price_full = EXCLUDED.unit_price_full,
			unit_price_billable = EXCLUDED.unit_price_billable,
			adjustment_type = EXCLUDED.adjustment_type,
			reason = EXCLUDED.reason,
			discount_enabled = EXCLUDED.discount_enabled,
			discount_amount = EXCLUDED.discount_amount
		RETURNING ` + adjustmentColumns + `;
	`
	saved, err := scanAdjustmentRow(r.Pool.QueryRow(ctx, query,
		m.ExpenseItemID,
		m.UnitPriceFull,
		m.UnitPriceBillable,
		m.AdjustmentType,
		m.Reason,
		m.DiscountEnabled,
		m.DiscountAmount,
	))
	if err != nil {
		return domain.BillingAdjustment{}, fmt.Errorf("failed to upsert adjustment of item %d: %w", m.ExpenseItemID, err)
	}
	return mapping.ToDomainBillingAdjustment(saved), nil
}

// FindAdjustmentByItem retrieves the adjustment attached to an item.
func (r *PgxExpenseRepository) FindAdjustmentByItem(ctx context.Context, itemID int64) (*domain.BillingAdjustment, error) {
	query := `SELECT ` + adjustmentColumns + ` FROM client_billing_adjustments WHERE expense_item_id = $1;`
	m, err := scanAdjustmentRow(r.Pool.QueryRow(ctx, query, itemID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find adjustment of item %d: %w", itemID, err)
	}
	d := mapping.ToDomainBillingAdjustment(m)
	return &d, nil
}

// ListAdjustmentsByProject retrieves every adjustment of a project's items.
func (r *PgxExpenseRepository) ListAdjustmentsByProject(ctx context.Context, projectID int64) ([]domain.BillingAdjustment, error) {
	query := `
		SELECT a.id, a.expense_item_id, a.unit_price_full,
			a.unit_price_billable, a.adjustment_type, a.reason,
			a.discount_enabled, a.discount_amount
		FROM client_billing_adjustments a
		JOIN expense_items i ON i.id = a.expense_item_id
		WHERE i.project_id = $1
		ORDER BY a.id;
	`
	rows, err := r.Pool.Query(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to query adjustments of project %d: %w", projectID, err)
	}
	defer rows.Close()

	ms, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.BillingAdjustment, error) {
		return scanAdjustmentRow(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan adjustments: %w", err)
	}
	return mapping.ToDomainBillingAdjustmentSlice(ms), nil
}

// DeleteAdjustment removes an item's adjustment.
func (r *PgxExpenseRepository) DeleteAdjustment(ctx context.Context, itemID int64) error {
	tag, err := r.Pool.Exec(ctx,
		`DELETE FROM client_billing_adjustments WHERE expense_item_id = $1;`, itemID)
	if err != nil {
		return fmt.Errorf("failed to delete adjustment of item %d: %w", itemID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
