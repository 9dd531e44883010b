package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/muhapauka-rgb/CXEMA-V7/internal/apperrors"
	"github.com/muhapauka-rgb/CXEMA-V7/internal/core/domain"
	portsrepo "github.com/muhapauka-rgb/CXEMA-V7/internal/core/ports/repositories"
	portssvc "github.com/muhapauka-rgb/CXEMA-V7/internal/core/ports/services"
	"github.com/muhapauka-rgb/CXEMA-V7/internal/dto"
	"github.com/muhapauka-rgb/CXEMA-V7/internal/utils/ids"
)

var (
	ErrQtyPriceIncomplete = errors.New("qty_price items need both qty and unit price")
	ErrParentNotTopLevel  = errors.New("parent item is itself a child")
	ErrParentMismatch     = errors.New("parent item belongs to another project or group")
	ErrHasChildren        = errors.New("item with children cannot move")
	ErrSelfParent         = errors.New("item cannot be its own parent")
)

// expenseService manages groups, items and billing adjustments. It owns the
// one-level nesting rules: a child's parent must be a top-level item of the
// same project and group, and an item that has children is pinned in place.
type expenseService struct {
	BaseService
	expenseRepo portsrepo.ExpenseRepositoryFacade
	projectRepo portsrepo.ProjectReader
}

// NewExpenseService creates a new expense service.
func NewExpenseService(expenseRepo portsrepo.ExpenseRepositoryFacade, projectRepo portsrepo.ProjectReader) portssvc.ExpenseSvcFacade {
	return &expenseService{expenseRepo: expenseRepo, projectRepo: projectRepo}
}

var _ portssvc.ExpenseSvcFacade = (*expenseService)(nil)

func (s *expenseService) ListGroups(ctx context.Context, projectID int64) ([]domain.ExpenseGroup, error) {
	groups, err := s.expenseRepo.ListGroupsByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups for project %d: %w", projectID, err)
	}
	if groups == nil {
		return []domain.ExpenseGroup{}, nil
	}
	return groups, nil
}

func (s *expenseService) ListItems(ctx context.Context, projectID int64) ([]domain.ExpenseItem, error) {
	items, err := s.expenseRepo.ListItemsByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list items for project %d: %w", projectID, err)
	}
	if items == nil {
		return []domain.ExpenseItem{}, nil
	}
	return items, nil
}

func (s *expenseService) GetItemByID(ctx context.Context, itemID int64) (*domain.ExpenseItem, error) {
	item, err := s.expenseRepo.FindItemByID(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to get item %d: %w", itemID, err)
	}
	return item, nil
}

func (s *expenseService) GetAdjustment(ctx context.Context, itemID int64) (*domain.BillingAdjustment, error) {
	adj, err := s.expenseRepo.FindAdjustmentByItem(ctx, itemID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get adjustment for item %d: %w", itemID, err)
	}
	return adj, nil
}

func (s *expenseService) CreateGroup(ctx context.Context, projectID int64, req dto.CreateGroupRequest) (*domain.ExpenseGroup, error) {
	if _, err := s.projectRepo.FindProjectByID(ctx, projectID); err != nil {
		return nil, fmt.Errorf("failed to get project %d: %w", projectID, err)
	}
	group := domain.ExpenseGroup{ProjectID: projectID, Name: req.Name, SortOrder: req.SortOrder}
	saved, err := s.expenseRepo.SaveGroup(ctx, group)
	if err != nil {
		return nil, fmt.Errorf("failed to create group: %w", err)
	}
	return &saved, nil
}

func (s *expenseService) UpdateGroup(ctx context.Context, groupID int64, req dto.UpdateGroupRequest) (*domain.ExpenseGroup, error) {
	group, err := s.expenseRepo.FindGroupByID(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to get group %d: %w", groupID, err)
	}
	if req.Name != nil {
		group.Name = *req.Name
	}
	if req.SortOrder != nil {
		group.SortOrder = *req.SortOrder
	}
	if err := s.expenseRepo.UpdateGroup(ctx, *group); err != nil {
		return nil, fmt.Errorf("failed to update group %d: %w", groupID, err)
	}
	return group, nil
}

func (s *expenseService) DeleteGroup(ctx context.Context, groupID int64) error {
	if err := s.expenseRepo.DeleteGroup(ctx, groupID); err != nil {
		return fmt.Errorf("failed to delete group %d: %w", groupID, err)
	}
	return nil
}

func (s *expenseService) CreateItem(ctx context.Context, projectID int64, req dto.CreateItemRequest) (*domain.ExpenseItem, error) {
	mode, err := domain.ParseItemMode(req.Mode)
	if err != nil {
		return nil, err
	}

	group, err := s.expenseRepo.FindGroupByID(ctx, req.GroupID)
	if err != nil {
		return nil, fmt.Errorf("failed to get group %d: %w", req.GroupID, err)
	}
	if group.ProjectID != projectID {
		return nil, fmt.Errorf("group %d belongs to another project: %w", req.GroupID, apperrors.ErrValidation)
	}

	now := time.Now()
	item := domain.ExpenseItem{
		StableItemID:       ids.NewItemID(),
		ProjectID:          projectID,
		GroupID:            req.GroupID,
		ParentItemID:       req.ParentItemID,
		Title:              req.Title,
		Mode:               mode,
		Qty:                req.Qty,
		UnitPriceBase:      req.UnitPriceBase,
		BaseTotal:          decimal.Zero,
		ExtraProfitEnabled: req.ExtraProfitEnabled,
		ExtraProfitAmount:  decimal.Zero,
		IncludeInEstimate:  true,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if req.BaseTotal != nil {
		item.BaseTotal = *req.BaseTotal
	}
	if req.ExtraProfitAmount != nil {
		item.ExtraProfitAmount = *req.ExtraProfitAmount
	}
	if req.IncludeInEstimate != nil {
		item.IncludeInEstimate = *req.IncludeInEstimate
	}
	if req.PlannedPayDate != "" {
		d, err := time.Parse("2006-01-02", req.PlannedPayDate)
		if err != nil {
			return nil, fmt.Errorf("planned pay date: %w", apperrors.ErrValidation)
		}
		item.PlannedPayDate = &d
	}

	if err := s.normalizeAmounts(&item); err != nil {
		return nil, err
	}
	if item.ParentItemID != nil {
		if err := s.checkParent(ctx, &item, *item.ParentItemID); err != nil {
			return nil, err
		}
		// Children never print on the estimate individually; the parent
		// row already carries their sum.
		item.IncludeInEstimate = false
	}

	saved, err := s.expenseRepo.SaveItem(ctx, item)
	if err != nil {
		return nil, fmt.Errorf("failed to create item: %w", err)
	}
	s.LogDebug(ctx, "expense item created", slog.Int64("item_id", saved.ID), slog.Int64("project_id", projectID))
	return &saved, nil
}

func (s *expenseService) UpdateItem(ctx context.Context, itemID int64, req dto.UpdateItemRequest) (*domain.ExpenseItem, error) {
	item, err := s.expenseRepo.FindItemByID(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to get item %d: %w", itemID, err)
	}
	children, err := s.expenseRepo.ListChildren(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to list children of item %d: %w", itemID, err)
	}
	hasChildren := len(children) > 0

	if req.GroupID != nil && *req.GroupID != item.GroupID {
		if hasChildren {
			return nil, fmt.Errorf("item %d: %w", itemID, ErrHasChildren)
		}
		group, err := s.expenseRepo.FindGroupByID(ctx, *req.GroupID)
		if err != nil {
			return nil, fmt.Errorf("failed to get group %d: %w", *req.GroupID, err)
		}
		if group.ProjectID != item.ProjectID {
			return nil, fmt.Errorf("group %d belongs to another project: %w", *req.GroupID, apperrors.ErrValidation)
		}
		item.GroupID = *req.GroupID
	}
	if req.ParentItemID != nil && (item.ParentItemID == nil || *req.ParentItemID != *item.ParentItemID) {
		if hasChildren {
			return nil, fmt.Errorf("item %d: %w", itemID, ErrHasChildren)
		}
		if *req.ParentItemID == itemID {
			return nil, fmt.Errorf("item %d: %w", itemID, ErrSelfParent)
		}
		item.ParentItemID = req.ParentItemID
		if err := s.checkParent(ctx, item, *req.ParentItemID); err != nil {
			return nil, err
		}
		item.IncludeInEstimate = false
	}

	if req.Title != nil {
		item.Title = *req.Title
	}
	if req.Mode != nil {
		mode, err := domain.ParseItemMode(*req.Mode)
		if err != nil {
			return nil, err
		}
		item.Mode = mode
	}
	if req.Qty != nil {
		item.Qty = req.Qty
	}
	if req.UnitPriceBase != nil {
		item.UnitPriceBase = req.UnitPriceBase
	}
	if req.BaseTotal != nil {
		item.BaseTotal = *req.BaseTotal
	}
	if req.ExtraProfitEnabled != nil {
		item.ExtraProfitEnabled = *req.ExtraProfitEnabled
	}
	if req.ExtraProfitAmount != nil {
		item.ExtraProfitAmount = *req.ExtraProfitAmount
	}
	if req.IncludeInEstimate != nil && item.ParentItemID == nil {
		item.IncludeInEstimate = *req.IncludeInEstimate
	}
	if req.ClearPlannedPayDate {
		item.PlannedPayDate = nil
	} else if req.PlannedPayDate != nil {
		d, err := time.Parse("2006-01-02", *req.PlannedPayDate)
		if err != nil {
			return nil, fmt.Errorf("planned pay date: %w", apperrors.ErrValidation)
		}
		item.PlannedPayDate = &d
	}
	item.UpdatedAt = time.Now()

	if err := s.normalizeAmounts(item); err != nil {
		return nil, err
	}
	if err := s.expenseRepo.UpdateItem(ctx, *item); err != nil {
		return nil, fmt.Errorf("failed to update item %d: %w", itemID, err)
	}
	return item, nil
}

func (s *expenseService) DeleteItem(ctx context.Context, itemID int64) error {
	if err := s.expenseRepo.DeleteItemWithChildren(ctx, itemID); err != nil {
		return fmt.Errorf("failed to delete item %d: %w", itemID, err)
	}
	return nil
}

func (s *expenseService) UpsertAdjustment(ctx context.Context, itemID int64, req dto.UpsertAdjustmentRequest) (*domain.BillingAdjustment, error) {
	item, err := s.expenseRepo.FindItemByID(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to get item %d: %w", itemID, err)
	}
	adjType, err := domain.ParseAdjustmentType(req.AdjustmentType)
	if err != nil {
		return nil, err
	}

	adj := domain.BillingAdjustment{
		ExpenseItemID:     item.ID,
		UnitPriceFull:     decimal.Zero,
		UnitPriceBillable: decimal.Zero,
		AdjustmentType:    adjType,
		Reason:            req.Reason,
		DiscountEnabled:   req.DiscountEnabled,
		DiscountAmount:    decimal.Zero,
	}
	if req.UnitPriceFull != nil {
		adj.UnitPriceFull = *req.UnitPriceFull
	}
	if req.UnitPriceBillable != nil {
		adj.UnitPriceBillable = *req.UnitPriceBillable
	}
	if req.DiscountAmount != nil {
		if req.DiscountAmount.IsNegative() {
			return nil, fmt.Errorf("discount amount must not be negative: %w", apperrors.ErrValidation)
		}
		adj.DiscountAmount = *req.DiscountAmount
	}

	saved, err := s.expenseRepo.UpsertAdjustment(ctx, adj)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert adjustment for item %d: %w", itemID, err)
	}
	return &saved, nil
}

func (s *expenseService) DeleteAdjustment(ctx context.Context, itemID int64) error {
	if err := s.expenseRepo.DeleteAdjustment(ctx, itemID); err != nil {
		return fmt.Errorf("failed to delete adjustment for item %d: %w", itemID, err)
	}
	return nil
}

// normalizeAmounts enforces the mode rules. QTY_PRICE items carry both qty
// and unit price and their stored base is the derived product, so every
// read agrees on the amount regardless of which field it looks at.
func (s *expenseService) normalizeAmounts(item *domain.ExpenseItem) error {
	switch item.Mode {
	case domain.QtyPrice:
		if item.Qty == nil || item.UnitPriceBase == nil {
			return fmt.Errorf("item %q: %w: %w", item.Title, ErrQtyPriceIncomplete, apperrors.ErrValidation)
		}
		item.BaseTotal = item.BaseAmount()
	case domain.SingleTotal:
		item.Qty = nil
		item.UnitPriceBase = nil
	}
	if !item.ExtraProfitEnabled {
		item.ExtraProfitAmount = decimal.Zero
	}
	return nil
}

// checkParent verifies that parentID can hold item as a child: same project,
// same group, and the parent itself top-level.
func (s *expenseService) checkParent(ctx context.Context, item *domain.ExpenseItem, parentID int64) error {
	parent, err := s.expenseRepo.FindItemByID(ctx, parentID)
	if err != nil {
		return fmt.Errorf("failed to get parent item %d: %w", parentID, err)
	}
	if parent.ParentItemID != nil {
		return fmt.Errorf("item %d: %w: %w", parentID, ErrParentNotTopLevel, apperrors.ErrValidation)
	}
	if parent.ProjectID != item.ProjectID || parent.GroupID != item.GroupID {
		return fmt.Errorf("item %d: %w: %w", parentID, ErrParentMismatch, apperrors.ErrValidation)
	}
	return nil
}
