package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Project mirrors a row of the projects table.
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
	AgencyFeePercent           decimal.Decimal `json:"agencyFeePercent"`
	AgencyFeeIncludeInEstimate bool            `json:"agencyFeeIncludeInEstimate"`
	CreatedAt                  time.Time       `json:"createdAt"`
	UpdatedAt                  time.Time       `json:"updatedAt"`
	ClosedAt                   *time.Time      `json:"closedAt"`
}
