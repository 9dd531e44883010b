package dto

import (
	"github.com/shopspring/decimal"
)

// EstimateRowResponse is one printable estimate row: a top-level item or a
// child line, with the derived money columns.
type EstimateRowResponse struct {
	StableItemID   string           `json:"stableItemID"`
	ParentStableID *string          `json:"parentStableID"`
	GroupName      string           `json:"groupName"`
	Title          string           `json:"title"`
	PlannedPayDate *string          `json:"plannedPayDate"`
	Qty            *decimal.Decimal `json:"qty"`
	UnitPrice      *decimal.Decimal `json:"unitPrice"`
	BaseTotal      decimal.Decimal  `json:"baseTotal"`
	ExtraTotal     decimal.Decimal  `json:"extraTotal"`
	DiscountTotal  decimal.Decimal  `json:"discountTotal"`
	RowTotal       decimal.Decimal  `json:"rowTotal"`
}

// EstimatePlanRowResponse is one planned client payment on the estimate.
type EstimatePlanRowResponse struct {
	StablePayID string          `json:"stablePayID"`
	PayDate     string          `json:"payDate"`
	Amount      decimal.Decimal `json:"amount"`
	Note        string          `json:"note"`
}

// EstimateResponse is the full printable estimate payload of a project.
type EstimateResponse struct {
	ProjectID    int64                     `json:"projectID"`
	ProjectTitle string                    `json:"projectTitle"`
	ClientName   *string                   `json:"clientName"`
	Rows         []EstimateRowResponse     `json:"rows"`
	Plans        []EstimatePlanRowResponse `json:"plans"`
	Totals       struct {
		BaseTotal     decimal.Decimal `json:"baseTotal"`
		ExtraTotal    decimal.Decimal `json:"extraTotal"`
		DiscountTotal decimal.Decimal `json:"discountTotal"`
		AgencyFee     decimal.Decimal `json:"agencyFee"`
		GrandTotal    decimal.Decimal `json:"grandTotal"`
	} `json:"totals"`
}
