package services

import (
	"context"

	"github.com/muhapauka-rgb/CXEMA-V7/internal/core/domain"
	"github.com/muhapauka-rgb/CXEMA-V7/internal/dto"
)

// ExpenseReaderSvc defines read operations for groups, items and adjustments
type ExpenseReaderSvc interface {
	// ListGroups retrieves a project's expense groups in sort order.
	ListGroups(ctx context.Context, projectID int64) ([]domain.ExpenseGroup, error)

	// ListItems retrieves every expense item of a project.
	ListItems(ctx context.Context, projectID int64) ([]domain.ExpenseItem, error)

	// GetItemByID retrieves a specific expense item.
	GetItemByID(ctx context.Context, itemID int64) (*domain.ExpenseItem, error)

	// GetAdjustment retrieves the billing adjustment of an item, nil when
	// the item has none.
	GetAdjustment(ctx context.Context, itemID int64) (*domain.BillingAdjustment, error)
}

// ExpenseWriterSvc defines write operations for groups, items and adjustments
type ExpenseWriterSvc interface {
	// CreateGroup persists a new expense group on a project.
	CreateGroup(ctx context.Context, projectID int64, req dto.CreateGroupRequest) (*domain.ExpenseGroup, error)

	// UpdateGroup applies a partial update to a group.
	UpdateGroup(ctx context.Context, groupID int64, req dto.UpdateGroupRequest) (*domain.ExpenseGroup, error)

	// DeleteGroup removes a group together with its items.
	DeleteGroup(ctx context.Context, groupID int64) error

	// CreateItem persists a new expense item, enforcing the one-level
	// nesting rules and deriving the QTY_PRICE base.
	CreateItem(ctx context.Context, projectID int64, req dto.CreateItemRequest) (*domain.ExpenseItem, error)

	// UpdateItem applies a partial update to an item under the same rules.
	UpdateItem(ctx context.Context, itemID int64, req dto.UpdateItemRequest) (*domain.ExpenseItem, error)

	// DeleteItem removes an item and its children.
	DeleteItem(ctx context.Context, itemID int64) error

	// UpsertAdjustment creates or replaces an item's billing adjustment.
	UpsertAdjustment(ctx context.Context, itemID int64, req dto.UpsertAdjustmentRequest) (*domain.BillingAdjustment, error)

	// DeleteAdjustment removes an item's billing adjustment.
	DeleteAdjustment(ctx context.Context, itemID int64) error
}

// ExpenseSvcFacade combines all expense-related service interfaces
type ExpenseSvcFacade interface {
	ExpenseReaderSvc
	ExpenseWriterSvc
}
