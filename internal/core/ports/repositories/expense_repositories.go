package repositories

import (
	"context"

	"github.com/muhapauka-rgb/CXEMA-V7/internal/core/domain"
)

// ExpenseGroupReader defines read operations for expense groups
type ExpenseGroupReader interface {
	// FindGroupByID retrieves a specific expense group.
	FindGroupByID(ctx context.Context, groupID int64) (*domain.ExpenseGroup, error)

	// ListGroupsByProject retrieves a project's groups ordered by sort order.
	ListGroupsByProject(ctx context.Context, projectID int64) ([]domain.ExpenseGroup, error)
}

// ExpenseGroupWriter defines write operations for expense groups
type ExpenseGroupWriter interface {
	// SaveGroup persists a new expense group.
	SaveGroup(ctx context.Context, group domain.ExpenseGroup) (domain.ExpenseGroup, error)

	// UpdateGroup updates a group's name and sort order.
	UpdateGroup(ctx context.Context, group domain.ExpenseGroup) error

	// DeleteGroup removes a group together with its items.
	DeleteGroup(ctx context.Context, groupID int64) error
}

// ExpenseItemReader defines read operations for expense items
type ExpenseItemReader interface {
	// FindItemByID retrieves a specific expense item.
	FindItemByID(ctx context.Context, itemID int64) (*domain.ExpenseItem, error)

	// ListItemsByProject retrieves every item of a project, parents and
	// children alike, in stable creation order.
	ListItemsByProject(ctx context.Context, projectID int64) ([]domain.ExpenseItem, error)

	// ListChildren retrieves the direct children of an item.
	ListChildren(ctx context.Context, parentItemID int64) ([]domain.ExpenseItem, error)
}

// ExpenseItemWriter defines write operations for expense items
type ExpenseItemWriter interface {
	// SaveItem persists a new expense item.
	SaveItem(ctx context.Context, item domain.ExpenseItem) (domain.ExpenseItem, error)

	// UpdateItem updates an existing expense item.
	UpdateItem(ctx context.Context, item domain.ExpenseItem) error

	// UpdateItems updates a batch of expense items within a single database
	// transaction. Either every update lands or none do.
	UpdateItems(ctx context.Context, items []domain.ExpenseItem) error

	// DeleteItemWithChildren removes an item and its direct children.
	DeleteItemWithChildren(ctx context.Context, itemID int64) error
}

// AdjustmentReader defines read operations for billing adjustments
type AdjustmentReader interface {
	// FindAdjustmentByItem retrieves the adjustment attached to an item.
	FindAdjustmentByItem(ctx context.Context, itemID int64) (*domain.BillingAdjustment, error)

	// ListAdjustmentsByProject retrieves every adjustment of a project's items.
	ListAdjustmentsByProject(ctx context.Context, projectID int64) ([]domain.BillingAdjustment, error)
}

// AdjustmentWriter defines write operations for billing adjustments
type AdjustmentWriter interface {
	// UpsertAdjustment creates or replaces the item's single adjustment row.
	UpsertAdjustment(ctx context.Context, adjustment domain.BillingAdjustment) (domain.BillingAdjustment, error)

	// DeleteAdjustment removes an item's adjustment.
	DeleteAdjustment(ctx context.Context, itemID int64) error
}

// ExpenseRepositoryFacade combines all expense-related repository interfaces
type ExpenseRepositoryFacade interface {
	ExpenseGroupReader
	ExpenseGroupWriter
	ExpenseItemReader
	ExpenseItemWriter
	AdjustmentReader
	AdjustmentWriter
}

// ExpenseRepositoryWithTx extends ExpenseRepositoryFacade with transaction capabilities
type ExpenseRepositoryWithTx interface {
	ExpenseRepositoryFacade
	TransactionManager
}
