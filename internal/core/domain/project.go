package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Project is a single construction/agency engagement. Money fields are the
// contracted totals; the agency fee percent is the owner's nominal cut of
// every client inflow.
type Project struct {
	ID                         int64           `json:"id"`
	Title                      string          `json:"title"`
	ClientName                 *string         `json:"clientName"`
	ClientEmail                *string         `json:"clientEmail"`
	ClientPhone                *string         `json:"clientPhone"`
	GoogleDriveURL             *string         `json:"googleDriveURL"`
	GoogleDriveFolder          *string         `json:"googleDriveFolder"`
	ProjectPriceTotal          decimal.Decimal `json:"projectPriceTotal"`
	ExpectedFromClientTotal    decimal.Decimal `json:"expectedFromClientTotal"`
	AgencyFeePercent           decimal.Decimal `json:"agencyFeePercent"` // 0..100
	AgencyFeeIncludeInEstimate bool            `json:"agencyFeeIncludeInEstimate"`
	CreatedAt                  time.Time       `json:"createdAt"`
	UpdatedAt                  time.Time       `json:"updatedAt"`
	ClosedAt                   *time.Time      `json:"closedAt"`
}

// ActiveAt reports whether the project participates in aggregations dated at.
// A project is active from its creation date until its closing date inclusive.
func (p Project) ActiveAt(at time.Time) bool {
	day := DateOnly(at)
	if DateOnly(p.CreatedAt).After(day) {
		return false
	}
	if p.ClosedAt != nil && day.After(DateOnly(*p.ClosedAt)) {
		return false
	}
	return true
}

// CreatedDate is the fallback attribution date for undated expense rows.
func (p Project) CreatedDate() time.Time {
	return DateOnly(p.CreatedAt)
}
