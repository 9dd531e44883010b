package dto

import (
	"github.com/shopspring/decimal"

	"github.com/muhapauka-rgb/CXEMA-V7/internal/core/domain"
)

// LifeBreakdownRowResponse reports one source bucket of the life target.
type LifeBreakdownRowResponse struct {
	ProjectID           int64           `json:"projectID"`
	Title               string          `json:"title"`
	Organization        *string         `json:"organization"`
	SourceMonth         string          `json:"sourceMonth"`
	SourceKind          string          `json:"sourceKind"`
	OpeningBalance      decimal.Decimal `json:"openingBalance"`
	InflowInSourceMonth decimal.Decimal `json:"inflowInSourceMonth"`
	UsedForLife         decimal.Decimal `json:"usedForLife"`
	ClosingBalance      decimal.Decimal `json:"closingBalance"`
}

// LifeCoverageResponse answers how much of a month's personal-draw target
// is covered and from where.
type LifeCoverageResponse struct {
	SelectedMonth string                     `json:"selectedMonth"`
	TargetAmount  decimal.Decimal            `json:"targetAmount"`
	LifeCovered   decimal.Decimal            `json:"lifeCovered"`
	LifeGap       decimal.Decimal            `json:"lifeGap"`
	ReserveUsed   decimal.Decimal            `json:"reserveUsed"`
	SavingsTotal  decimal.Decimal            `json:"savingsTotal"`
	Breakdown     []LifeBreakdownRowResponse `json:"breakdown"`
}

// ToLifeCoverageResponse converts a domain.LifeCoverage to its DTO
func ToLifeCoverageResponse(c *domain.LifeCoverage) LifeCoverageResponse {
	resp := LifeCoverageResponse{
		SelectedMonth: string(c.SelectedMonth),
		TargetAmount:  c.TargetAmount.Round(2),
		LifeCovered:   c.LifeCovered.Round(2),
		LifeGap:       c.LifeGap.Round(2),
		ReserveUsed:   c.ReserveUsed.Round(2),
		SavingsTotal:  c.SavingsTotal.Round(2),
		Breakdown:     make([]LifeBreakdownRowResponse, len(c.Breakdown)),
	}
	for i, row := range c.Breakdown {
		resp.Breakdown[i] = LifeBreakdownRowResponse{
			ProjectID:           row.ProjectID,
			Title:               row.Title,
			Organization:        row.Organization,
			SourceMonth:         string(row.SourceMonth),
			SourceKind:          string(row.SourceKind),
			OpeningBalance:      row.OpeningBalance.Round(2),
			InflowInSourceMonth: row.InflowInSourceMonth.Round(2),
			UsedForLife:         row.UsedForLife.Round(2),
			ClosingBalance:      row.ClosingBalance.Round(2),
		}
	}
	return resp
}
