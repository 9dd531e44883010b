package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/muhapauka-rgb/CXEMA-V7/internal/core/domain"
	"github.com/muhapauka-rgb/CXEMA-V7/internal/core/finance"
	portsrepo "github.com/muhapauka-rgb/CXEMA-V7/internal/core/ports/repositories"
	portssvc "github.com/muhapauka-rgb/CXEMA-V7/internal/core/ports/services"
	"github.com/muhapauka-rgb/CXEMA-V7/internal/dto"
)

// estimateService renders the printable client estimate: the included rows
// with their derived money columns, the planned payment schedule and the
// totals block.
type estimateService struct {
	BaseService
	projectRepo portsrepo.ProjectReader
	expenseRepo portsrepo.ExpenseRepositoryFacade
	paymentRepo portsrepo.PaymentPlanReader
}

// NewEstimateService creates a new estimate service.
func NewEstimateService(
	projectRepo portsrepo.ProjectReader,
	expenseRepo portsrepo.ExpenseRepositoryFacade,
	paymentRepo portsrepo.PaymentPlanReader,
) portssvc.EstimateSvc {
	return &estimateService{projectRepo: projectRepo, expenseRepo: expenseRepo, paymentRepo: paymentRepo}
}

var _ portssvc.EstimateSvc = (*estimateService)(nil)

func (s *estimateService) GetEstimate(ctx context.Context, projectID int64) (*dto.EstimateResponse, error) {
	project, err := s.projectRepo.FindProjectByID(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get project %d: %w", projectID, err)
	}
	groups, err := s.expenseRepo.ListGroupsByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups for project %d: %w", projectID, err)
	}
	items, err := s.expenseRepo.ListItemsByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list items for project %d: %w", projectID, err)
	}
	adjustments, err := s.expenseRepo.ListAdjustmentsByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list adjustments for project %d: %w", projectID, err)
	}
	plans, err := s.paymentRepo.ListPlansByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list plans for project %d: %w", projectID, err)
	}

	groupNames := make(map[int64]string, len(groups))
	groupOrder := make(map[int64]int, len(groups))
	for i, g := range groups {
		groupNames[g.ID] = g.Name
		groupOrder[g.ID] = i
	}

	rows := finance.ResolveEffectiveRows(items, domain.DiscountsFromAdjustments(adjustments))
	// Only rows the owner marked for the estimate print; children inherit
	// the parent's visibility and render as indented lines under it.
	visible := make([]domain.EffectiveRow, 0, len(rows))
	for _, row := range rows {
		if row.Item.IncludeInEstimate {
			visible = append(visible, row)
		}
	}
	sort.SliceStable(visible, func(i, j int) bool {
		gi, gj := groupOrder[visible[i].Item.GroupID], groupOrder[visible[j].Item.GroupID]
		if gi != gj {
			return gi < gj
		}
		return visible[i].Item.ID < visible[j].Item.ID
	})

	childrenByParent := make(map[int64][]domain.ExpenseItem)
	for _, it := range items {
		if it.ParentItemID != nil {
			childrenByParent[*it.ParentItemID] = append(childrenByParent[*it.ParentItemID], it)
		}
	}

	resp := &dto.EstimateResponse{
		ProjectID:    project.ID,
		ProjectTitle: project.Title,
		ClientName:   project.ClientName,
		Rows:         []dto.EstimateRowResponse{},
		Plans:        []dto.EstimatePlanRowResponse{},
	}

	baseTotal := decimal.Zero
	extraTotal := decimal.Zero
	discountTotal := decimal.Zero
	for _, row := range visible {
		resp.Rows = append(resp.Rows, estimateRow(row.Item, groupNames, nil,
			row.BaseTotal, row.ExtraTotal, row.DiscountTotal))
		parentStableID := row.Item.StableItemID
		for _, child := range childrenByParent[row.Item.ID] {
			resp.Rows = append(resp.Rows, estimateRow(child, groupNames, &parentStableID,
				child.BaseAmount(), child.ExtraAmount(), decimal.Zero))
		}
		baseTotal = baseTotal.Add(row.BaseTotal)
		extraTotal = extraTotal.Add(row.ExtraTotal)
		discountTotal = discountTotal.Add(row.DiscountTotal)
	}

	for _, plan := range plans {
		resp.Plans = append(resp.Plans, dto.EstimatePlanRowResponse{
			StablePayID: plan.StablePayID,
			PayDate:     plan.PayDate.Format("2006-01-02"),
			Amount:      plan.Amount.Round(2),
			Note:        plan.Note,
		})
	}

	agencyFee := decimal.Zero
	if project.AgencyFeeIncludeInEstimate {
		agencyFee = project.ProjectPriceTotal.Mul(project.AgencyFeePercent).Div(decimal.NewFromInt(100))
	}
	resp.Totals.BaseTotal = baseTotal.Round(2)
	resp.Totals.ExtraTotal = extraTotal.Round(2)
	resp.Totals.DiscountTotal = discountTotal.Round(2)
	resp.Totals.AgencyFee = agencyFee.Round(2)
	resp.Totals.GrandTotal = baseTotal.Add(extraTotal).Sub(discountTotal).Add(agencyFee).Round(2)
	return resp, nil
}

func estimateRow(
	item domain.ExpenseItem,
	groupNames map[int64]string,
	parentStableID *string,
	base, extra, discount decimal.Decimal,
) dto.EstimateRowResponse {
	row := dto.EstimateRowResponse{
		StableItemID:   item.StableItemID,
		ParentStableID: parentStableID,
		GroupName:      groupNames[item.GroupID],
		Title:          item.Title,
		Qty:            item.Qty,
		UnitPrice:      item.UnitPriceBase,
		BaseTotal:      base.Round(2),
		ExtraTotal:     extra.Round(2),
		DiscountTotal:  discount.Round(2),
		RowTotal:       base.Add(extra).Sub(discount).Round(2),
	}
	if item.PlannedPayDate != nil {
		d := item.PlannedPayDate.Format("2006-01-02")
		row.PlannedPayDate = &d
	}
	return row
}
