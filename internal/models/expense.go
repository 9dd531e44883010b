package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseGroup mirrors a row of the expense_groups table.
type ExpenseGroup struct {
	ID        int64  `json:"id"`
	ProjectID int64  `json:"projectID"`
	Name      string `json:"name"`
	SortOrder int    `json:"sortOrder"`
}

// ExpenseItem mirrors a row of the expense_items table.
type ExpenseItem struct {
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
	PlannedPayDate     *time.Time       `json:"plannedPayDate"`
	CreatedAt          time.Time        `json:"createdAt"`
	UpdatedAt          time.Time        `json:"updatedAt"`
}

// BillingAdjustment mirrors a row of the client_billing_adjustments table.
type BillingAdjustment struct {
	ID                int64           `json:"id"`
	ExpenseItemID     int64           `json:"expenseItemID"`
	UnitPriceFull     decimal.Decimal `json:"unitPriceFull"`
	UnitPriceBillable decimal.Decimal `json:"unitPriceBillable"`
	AdjustmentType    string          `json:"adjustmentType"`
	Reason            string          `json:"reason"`
	DiscountEnabled   bool            `json:"discountEnabled"`
	DiscountAmount    decimal.Decimal `json:"discountAmount"`
}
