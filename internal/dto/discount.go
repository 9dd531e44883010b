package dto

import (
	"github.com/shopspring/decimal"
)

// DiscountRowResponse is one discounted effective row as of a date.
type DiscountRowResponse struct {
	ProjectID     int64           `json:"projectID"`
	ProjectTitle  string          `json:"projectTitle"`
	ItemTitle     string          `json:"itemTitle"`
	DueDate       *string         `json:"dueDate"`
	BaseTotal     decimal.Decimal `json:"baseTotal"`
	DiscountTotal decimal.Decimal `json:"discountTotal"`
}

// DiscountGroupResponse groups discounted rows by counterparty.
type DiscountGroupResponse struct {
	Counterparty  string                `json:"counterparty"`
	DiscountTotal decimal.Decimal       `json:"discountTotal"`
	Rows          []DiscountRowResponse `json:"rows"`
}

// DiscountSummaryResponse is the as-of discount report across projects.
type DiscountSummaryResponse struct {
	AsOf          string                  `json:"asOf"`
	DiscountTotal decimal.Decimal         `json:"discountTotal"`
	Groups        []DiscountGroupResponse `json:"groups"`
}
