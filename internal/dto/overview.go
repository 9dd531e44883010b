package dto

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/muhapauka-rgb/CXEMA-V7/internal/core/domain"
)

// SnapshotProjectResponse is one project's row of the portfolio snapshot.
type SnapshotProjectResponse struct {
	ProjectID         int64           `json:"projectID"`
	Title             string          `json:"title"`
	Organization      *string         `json:"organization"`
	ReceivedToDate    decimal.Decimal `json:"receivedToDate"`
	PlannedTotal      decimal.Decimal `json:"plannedTotal"`
	ExpectedTotal     decimal.Decimal `json:"expectedTotal"`
	Remaining         decimal.Decimal `json:"remaining"`
	SpentToDate       decimal.Decimal `json:"spentToDate"`
	UsnAmount         decimal.Decimal `json:"usnAmount"`
	BalanceToDate     decimal.Decimal `json:"balanceToDate"`
	AgencyFeeToDate   decimal.Decimal `json:"agencyFeeToDate"`
	ExtraProfitToDate decimal.Decimal `json:"extraProfitToDate"`
	InPocketToDate    decimal.Decimal `json:"inPocketToDate"`
}

// SnapshotResponse is the as-of-date portfolio rollup.
type SnapshotResponse struct {
	AsOf     string                    `json:"asOf"`
	Projects []SnapshotProjectResponse `json:"projects"`
	Totals   struct {
		ActiveProjectsCount int             `json:"activeProjectsCount"`
		ReceivedTotal       decimal.Decimal `json:"receivedTotal"`
		PlannedTotal        decimal.Decimal `json:"plannedTotal"`
		ExpectedTotal       decimal.Decimal `json:"expectedTotal"`
		SpentTotal          decimal.Decimal `json:"spentTotal"`
		UsnTotal            decimal.Decimal `json:"usnTotal"`
		BalanceTotal        decimal.Decimal `json:"balanceTotal"`
		AgencyFeeToDate     decimal.Decimal `json:"agencyFeeToDate"`
		ExtraProfitToDate   decimal.Decimal `json:"extraProfitToDate"`
		InPocketToDate      decimal.Decimal `json:"inPocketToDate"`
	} `json:"totals"`
}

// OverviewMapNode is one node of the overview mind map.
type OverviewMapNode struct {
	Title    string            `json:"title"`
	Children []OverviewMapNode `json:"children,omitempty"`
}

// OverviewMapResponse is the snapshot rendered as a node tree for the
// front-end mind map.
type OverviewMapResponse struct {
	AsOf string          `json:"asOf"`
	Root OverviewMapNode `json:"root"`
}

// ToOverviewMapResponse projects a snapshot onto the mind-map node tree.
func ToOverviewMapResponse(s *domain.Snapshot) OverviewMapResponse {
	asOf := s.At.Format("2006-01-02")

	projectNodes := make([]OverviewMapNode, 0, len(s.Projects))
	for _, p := range s.Projects {
		projectNodes = append(projectNodes, OverviewMapNode{
			Title: fmt.Sprintf("%s | получено %s | осталось %s | в кармане %s",
				p.Title,
				p.ReceivedToDate.Round(2),
				p.Remaining.Round(2),
				p.InPocketToDate.Round(2)),
		})
	}

	root := OverviewMapNode{
		Title: "Мир проектов — " + asOf,
		Children: []OverviewMapNode{
			{Title: "Баланс", Children: []OverviewMapNode{
				{Title: "Получено: " + s.Totals.ReceivedTotal.Round(2).String()},
				{Title: "План до даты: " + s.Totals.PlannedTotal.Round(2).String()},
				{Title: "Ожидаем всего: " + s.Totals.ExpectedTotal.Round(2).String()},
			}},
			{Title: "В кармане", Children: []OverviewMapNode{
				{Title: "Агентские: " + s.Totals.AgencyFeeToDate.Round(2).String()},
				{Title: "Доп прибыль: " + s.Totals.ExtraProfitToDate.Round(2).String()},
				{Title: "Итого: " + s.Totals.InPocketToDate.Round(2).String()},
			}},
			{Title: "Проекты (активные)", Children: projectNodes},
		},
	}
	return OverviewMapResponse{AsOf: asOf, Root: root}
}

// ToSnapshotResponse converts a domain.Snapshot to SnapshotResponse DTO
func ToSnapshotResponse(s *domain.Snapshot) SnapshotResponse {
	resp := SnapshotResponse{
		AsOf:     s.At.Format("2006-01-02"),
		Projects: make([]SnapshotProjectResponse, len(s.Projects)),
	}
	for i, p := range s.Projects {
		resp.Projects[i] = SnapshotProjectResponse{
			ProjectID:         p.ProjectID,
			Title:             p.Title,
			Organization:      p.Organization,
			ReceivedToDate:    p.ReceivedToDate.Round(2),
			PlannedTotal:      p.PlannedTotal.Round(2),
			ExpectedTotal:     p.ExpectedTotal.Round(2),
			Remaining:         p.Remaining.Round(2),
			SpentToDate:       p.SpentToDate.Round(2),
			UsnAmount:         p.UsnAmount.Round(2),
			BalanceToDate:     p.BalanceToDate.Round(2),
			AgencyFeeToDate:   p.AgencyFeeToDate.Round(2),
			ExtraProfitToDate: p.ExtraProfitToDate.Round(2),
			InPocketToDate:    p.InPocketToDate.Round(2),
		}
	}
	resp.Totals.ActiveProjectsCount = s.Totals.ActiveProjectsCount
	resp.Totals.ReceivedTotal = s.Totals.ReceivedTotal.Round(2)
	resp.Totals.PlannedTotal = s.Totals.PlannedTotal.Round(2)
	resp.Totals.ExpectedTotal = s.Totals.ExpectedTotal.Round(2)
	resp.Totals.SpentTotal = s.Totals.SpentTotal.Round(2)
	resp.Totals.UsnTotal = s.Totals.UsnTotal.Round(2)
	resp.Totals.BalanceTotal = s.Totals.BalanceTotal.Round(2)
	resp.Totals.AgencyFeeToDate = s.Totals.AgencyFeeToDate.Round(2)
	resp.Totals.ExtraProfitToDate = s.Totals.ExtraProfitToDate.Round(2)
	resp.Totals.InPocketToDate = s.Totals.InPocketToDate.Round(2)
	return resp
}
