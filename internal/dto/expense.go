package dto

import (
	"github.com/shopspring/decimal"

	"github.com/muhapauka-rgb/CXEMA-V7/internal/core/domain"
)

// CreateGroupRequest defines the data needed to create an expense group.
type CreateGroupRequest struct {
	Name      string `json:"name" binding:"required"`
	SortOrder int    `json:"sortOrder"`
}

// UpdateGroupRequest defines the partial update payload for a group.
type UpdateGroupRequest struct {
	Name      *string `json:"name"`
	SortOrder *int    `json:"sortOrder"`
}

// GroupResponse defines the data returned for an expense group.
type GroupResponse struct {
	ID        int64  `json:"id"`
	ProjectID int64  `json:"projectID"`
	Name      string `json:"name"`
	SortOrder int    `json:"sortOrder"`
}

// CreateItemRequest defines the data needed to create an expense item.
type CreateItemRequest struct {
	GroupID            int64            `json:"groupID" binding:"required"`
	ParentItemID       *int64           `json:"parentItemID"`
	Title              string           `json:"title" binding:"required"`
	Mode               string           `json:"mode" binding:"required"`
	Qty                *decimal.Decimal `json:"qty"`
	UnitPriceBase      *decimal.Decimal `json:"unitPriceBase"`
	BaseTotal          *decimal.Decimal `json:"baseTotal"`
	ExtraProfitEnabled bool             `json:"extraProfitEnabled"`
	ExtraProfitAmount  *decimal.Decimal `json:"extraProfitAmount"`
	IncludeInEstimate  *bool            `json:"includeInEstimate"`
	PlannedPayDate     string           `json:"plannedPayDate" binding:"omitempty,datetime=2006-01-02"`
}

// UpdateItemRequest defines the partial update payload for an expense item.
// Nil fields keep their stored values; an explicit empty PlannedPayDate
// clears the date when ClearPlannedPayDate is set.
type UpdateItemRequest struct {
	GroupID             *int64           `json:"groupID"`
	ParentItemID        *int64           `json:"parentItemID"`
	Title               *string          `json:"title"`
	Mode                *string          `json:"mode"`
	Qty                 *decimal.Decimal `json:"qty"`
	UnitPriceBase       *decimal.Decimal `json:"unitPriceBase"`
	BaseTotal           *decimal.Decimal `json:"baseTotal"`
	ExtraProfitEnabled  *bool            `json:"extraProfitEnabled"`
	ExtraProfitAmount   *decimal.Decimal `json:"extraProfitAmount"`
	IncludeInEstimate   *bool            `json:"includeInEstimate"`
	PlannedPayDate      *string          `json:"plannedPayDate" binding:"omitempty,datetime=2006-01-02"`
	ClearPlannedPayDate bool             `json:"clearPlannedPayDate"`
}

// ItemResponse defines the data returned for an expense item.
type ItemResponse struct {
	ID                 int64            `json:"id"`
	StableItemID       string           `json:"stableItemID"`
	ProjectID          int64            `json:"projectID"`
	GroupID            int64            `json:"groupID"`
	ParentItemID       *int64           `json:"parentItemID"`
	Title              string           `json:"title"`
	Mode               string           `json:"mode"`
	Qty                *decimal.Decimal `json:"qty"`
	UnitPriceBase      *decimal.Decimal `json:"unitPriceBase"`
	BaseTotal          decimal.Decimal  `json:"baseTotal"`
	ExtraProfitEnabled bool             `json:"extraProfitEnabled"`
	ExtraProfitAmount  decimal.Decimal  `json:"extraProfitAmount"`
	IncludeInEstimate  bool             `json:"includeInEstimate"`
	PlannedPayDate     *string          `json:"plannedPayDate"`
}

// ItemTreeResponse is an item with its direct children nested.
type ItemTreeResponse struct {
	ItemResponse
	Children []ItemResponse `json:"children"`
}

// GroupTreeResponse is a group with its top-level items nested.
type GroupTreeResponse struct {
	GroupResponse
	Items []ItemTreeResponse `json:"items"`
}

// UpsertAdjustmentRequest defines the billing annotation payload of an item.
type UpsertAdjustmentRequest struct {
	UnitPriceFull     *decimal.Decimal `json:"unitPriceFull"`
	UnitPriceBillable *decimal.Decimal `json:"unitPriceBillable"`
	AdjustmentType    string           `json:"adjustmentType" binding:"required"`
	Reason            string           `json:"reason"`
	DiscountEnabled   bool             `json:"discountEnabled"`
	DiscountAmount    *decimal.Decimal `json:"discountAmount"`
}

// AdjustmentResponse defines the data returned for a billing adjustment.
type AdjustmentResponse struct {
	ID                int64           `json:"id"`
	ExpenseItemID     int64           `json:"expenseItemID"`
	UnitPriceFull     decimal.Decimal `json:"unitPriceFull"`
	UnitPriceBillable decimal.Decimal `json:"unitPriceBillable"`
	AdjustmentType    string          `json:"adjustmentType"`
	Reason            string          `json:"reason"`
	DiscountEnabled   bool            `json:"discountEnabled"`
	DiscountAmount    decimal.Decimal `json:"discountAmount"`
}

// ToGroupResponse converts a domain.ExpenseGroup to GroupResponse DTO
func ToGroupResponse(g *domain.ExpenseGroup) GroupResponse {
	return GroupResponse{ID: g.ID, ProjectID: g.ProjectID, Name: g.Name, SortOrder: g.SortOrder}
}

// ToListGroupResponse converts a slice of domain.ExpenseGroup to DTOs
func ToListGroupResponse(groups []domain.ExpenseGroup) []GroupResponse {
	res := make([]GroupResponse, len(groups))
	for i := range groups {
		res[i] = ToGroupResponse(&groups[i])
	}
	return res
}

// ToItemResponse converts a domain.ExpenseItem to ItemResponse DTO
func ToItemResponse(it *domain.ExpenseItem) ItemResponse {
	resp := ItemResponse{
		ID:                 it.ID,
		StableItemID:       it.StableItemID,
		ProjectID:          it.ProjectID,
		GroupID:            it.GroupID,
		ParentItemID:       it.ParentItemID,
		Title:              it.Title,
		Mode:               string(it.Mode),
		Qty:                it.Qty,
		UnitPriceBase:      it.UnitPriceBase,
		BaseTotal:          it.BaseAmount().Round(2),
		ExtraProfitEnabled: it.ExtraProfitEnabled,
		ExtraProfitAmount:  it.ExtraProfitAmount.Round(2),
		IncludeInEstimate:  it.IncludeInEstimate,
	}
	if it.PlannedPayDate != nil {
		d := it.PlannedPayDate.Format("2006-01-02")
		resp.PlannedPayDate = &d
	}
	return resp
}

// ToListItemResponse converts a slice of domain.ExpenseItem to DTOs
func ToListItemResponse(items []domain.ExpenseItem) []ItemResponse {
	res := make([]ItemResponse, len(items))
	for i := range items {
		res[i] = ToItemResponse(&items[i])
	}
	return res
}

// ToAdjustmentResponse converts a domain.BillingAdjustment to its DTO
func ToAdjustmentResponse(adj *domain.BillingAdjustment) AdjustmentResponse {
	return AdjustmentResponse{
		ID:                adj.ID,
		ExpenseItemID:     adj.ExpenseItemID,
		UnitPriceFull:     adj.UnitPriceFull.Round(2),
		UnitPriceBillable: adj.UnitPriceBillable.Round(2),
		AdjustmentType:    string(adj.AdjustmentType),
		Reason:            adj.Reason,
		DiscountEnabled:   adj.DiscountEnabled,
		DiscountAmount:    adj.DiscountAmount.Round(2),
	}
}

// ToGroupTreeResponse nests a project's items under their groups, and
// children under their parents, preserving the stored ordering.
func ToGroupTreeResponse(groups []domain.ExpenseGroup, items []domain.ExpenseItem) []GroupTreeResponse {
	childrenByParent := map[int64][]domain.ExpenseItem{}
	topByGroup := map[int64][]domain.ExpenseItem{}
	known := map[int64]struct{}{}
	for _, it := range items {
		known[it.ID] = struct{}{}
	}
	for _, it := range items {
		if it.ParentItemID != nil {
			if _, ok := known[*it.ParentItemID]; ok {
				childrenByParent[*it.ParentItemID] = append(childrenByParent[*it.ParentItemID], it)
				continue
			}
		}
		topByGroup[it.GroupID] = append(topByGroup[it.GroupID], it)
	}

	res := make([]GroupTreeResponse, len(groups))
	for i := range groups {
		g := groups[i]
		tops := topByGroup[g.ID]
		tree := make([]ItemTreeResponse, len(tops))
		for j := range tops {
			tree[j] = ItemTreeResponse{
				ItemResponse: ToItemResponse(&tops[j]),
				Children:     ToListItemResponse(childrenByParent[tops[j].ID]),
			}
		}
		res[i] = GroupTreeResponse{GroupResponse: ToGroupResponse(&g), Items: tree}
	}
	return res
}
