package finance

import (
	"github.com/shopspring/decimal"

	"github.com/muhapauka-rgb/CXEMA-V7/internal/core/domain"
)

// AggregateProjectFinancials computes the lifetime totals for one project,
// independent of time. The agency fee here is the nominal cut of the
// contracted price, not the cash-allocated figure from AllocateCash.
//
// A nil project yields a zeroed structure rather than an error; callers
// that need a not-found response must check existence first.
func AggregateProjectFinancials(project *domain.Project, rows []domain.EffectiveRow) domain.ProjectFinancials {
	out := domain.ProjectFinancials{
		ExpensesTotal:    decimal.Zero,
		AgencyFee:        decimal.Zero,
		ExtraProfitTotal: decimal.Zero,
		DiscountTotal:    decimal.Zero,
		InPocket:         decimal.Zero,
		Diff:             decimal.Zero,
	}
	if project == nil {
		return out
	}

	for _, row := range rows {
		out.ExpensesTotal = out.ExpensesTotal.Add(row.EffectiveTotal())
		out.ExtraProfitTotal = out.ExtraProfitTotal.Add(row.ExtraTotal)
		out.DiscountTotal = out.DiscountTotal.Add(row.DiscountTotal)
	}

	out.ProjectID = project.ID
	out.AgencyFee = project.ProjectPriceTotal.Mul(project.AgencyFeePercent).Div(decimal.NewFromInt(100))
	out.InPocket = out.AgencyFee.Add(out.ExtraProfitTotal)
	out.Diff = project.ProjectPriceTotal.Sub(out.ExpensesTotal)
	return out
}
