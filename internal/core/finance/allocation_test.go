package finance_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muhapauka-rgb/CXEMA-V7/internal/core/domain"
	"github.com/muhapauka-rgb/CXEMA-V7/internal/core/finance"
)

func project(feePercent string, created time.Time) domain.Project {
	return domain.Project{
		ID:               1,
		Title:            "Дом на Лесной",
		AgencyFeePercent: dec(feePercent),
		CreatedAt:        created,
	}
}

func fact(amount string, d time.Time) domain.PaymentFact {
	return domain.PaymentFact{ProjectID: 1, Amount: dec(amount), PayDate: d}
}

func plan(amount string, d time.Time) domain.PaymentPlan {
	return domain.PaymentPlan{ProjectID: 1, Amount: dec(amount), PayDate: d}
}

func expenserow(base string, due *time.Time) domain.EffectiveRow {
	return domain.EffectiveRow{
		BaseTotal:     dec(base),
		ExtraTotal:    decimal.Zero,
		DiscountTotal: decimal.Zero,
		DueDate:       due,
	}
}

func TestAllocateCash_FeeAndPocketSameDay(t *testing.T) {
	p := project("10", day(2024, 1, 1))
	facts := []domain.PaymentFact{fact("1000", day(2024, 1, 5))}
	rows := []domain.EffectiveRow{expenserow("600", dayPtr(2024, 1, 5))}

	monthly := finance.AllocateCash(p, facts, nil, rows, day(2024, 2, 1))

	require.Contains(t, monthly, domain.MonthKey("2024-01"))
	bucket := monthly["2024-01"]
	assert.True(t, bucket.Agency.Equal(dec("100")), "agency = %s", bucket.Agency)
	assert.True(t, bucket.Extra.IsZero())
	assert.True(t, bucket.InPocket.Equal(dec("100")), "in_pocket = %s", bucket.InPocket)
}

func TestAllocateCash_ExpensesSettleBeforeAgencyAndExtra(t *testing.T) {
	// Wallet of 500 against claims of 700 expense + 100 agency + 200 extra:
	// expenses absorb everything, nothing reaches the pocket.
	p := project("10", day(2024, 1, 1))
	facts := []domain.PaymentFact{fact("500", day(2024, 3, 1))}
	rows := []domain.EffectiveRow{
		{
			BaseTotal:     dec("700"),
			ExtraTotal:    dec("200"),
			DiscountTotal: decimal.Zero,
			DueDate:       dayPtr(2024, 3, 1),
		},
	}

	monthly := finance.AllocateCash(p, facts, nil, rows, day(2024, 4, 1))
	assert.Empty(t, monthly)
}

func TestAllocateCash_PendingClaimsCarryForward(t *testing.T) {
	// The March inflow cannot cover the agency claim after expenses. A
	// later inflow in April settles the leftover, bucketed under April.
	p := project("10", day(2024, 1, 1))
	facts := []domain.PaymentFact{
		fact("1000", day(2024, 3, 1)),
		fact("1000", day(2024, 4, 10)),
	}
	rows := []domain.EffectiveRow{expenserow("950", dayPtr(2024, 3, 1))}

	monthly := finance.AllocateCash(p, facts, nil, rows, day(2024, 5, 1))

	require.Contains(t, monthly, domain.MonthKey("2024-03"))
	require.Contains(t, monthly, domain.MonthKey("2024-04"))
	// March: 1000 in, 950 expense, 50 left of the 100 agency claim.
	assert.True(t, monthly["2024-03"].Agency.Equal(dec("50")))
	// April: 50 carried agency + 100 fee on the April inflow.
	assert.True(t, monthly["2024-04"].Agency.Equal(dec("150")))
}

func TestAllocateCash_PlansDueCountAsInflow(t *testing.T) {
	p := project("20", day(2024, 1, 1))
	plans := []domain.PaymentPlan{
		plan("500", day(2024, 1, 10)),
		plan("500", day(2024, 6, 10)), // beyond asOf, ignored
	}

	monthly := finance.AllocateCash(p, nil, plans, nil, day(2024, 2, 1))

	require.Contains(t, monthly, domain.MonthKey("2024-01"))
	assert.True(t, monthly["2024-01"].Agency.Equal(dec("100")))
	assert.NotContains(t, monthly, domain.MonthKey("2024-06"))
}

func TestAllocateCash_DiscountReducesBillableExpense(t *testing.T) {
	// Base 1000 with a 400 discount leaves a 600 billable claim, so the
	// full agency fee clears from a 700 inflow.
	p := project("10", day(2024, 1, 1))
	facts := []domain.PaymentFact{fact("700", day(2024, 2, 1))}
	rows := []domain.EffectiveRow{
		{
			BaseTotal:     dec("1000"),
			ExtraTotal:    decimal.Zero,
			DiscountTotal: dec("400"),
			DueDate:       dayPtr(2024, 2, 1),
		},
	}

	monthly := finance.AllocateCash(p, facts, nil, rows, day(2024, 3, 1))

	require.Contains(t, monthly, domain.MonthKey("2024-02"))
	assert.True(t, monthly["2024-02"].Agency.Equal(dec("70")))
}

func TestAllocateCash_UndatedExpenseUsesProjectCreation(t *testing.T) {
	// An undated expense lands on the creation date, ahead of the first
	// inflow, and is settled before any agency money clears.
	p := project("10", day(2024, 1, 15))
	facts := []domain.PaymentFact{fact("100", day(2024, 2, 1))}
	rows := []domain.EffectiveRow{expenserow("100", nil)}

	monthly := finance.AllocateCash(p, facts, nil, rows, day(2024, 3, 1))
	assert.Empty(t, monthly)
}

func TestAllocateCash_NonPositiveAmountsIgnored(t *testing.T) {
	p := project("10", day(2024, 1, 1))
	facts := []domain.PaymentFact{
		fact("0", day(2024, 1, 5)),
		fact("-200", day(2024, 1, 6)),
		fact("300", day(2024, 1, 7)),
	}
	rows := []domain.EffectiveRow{expenserow("-50", dayPtr(2024, 1, 7))}

	monthly := finance.AllocateCash(p, facts, nil, rows, day(2024, 2, 1))

	require.Contains(t, monthly, domain.MonthKey("2024-01"))
	assert.True(t, monthly["2024-01"].Agency.Equal(dec("30")))
}

func TestAllocateCash_Deterministic(t *testing.T) {
	p := project("15", day(2024, 1, 1))
	facts := []domain.PaymentFact{
		fact("1000", day(2024, 1, 5)),
		fact("500", day(2024, 2, 5)),
	}
	rows := []domain.EffectiveRow{
		expenserow("400", dayPtr(2024, 1, 10)),
		{BaseTotal: dec("200"), ExtraTotal: dec("100"), DueDate: dayPtr(2024, 2, 1)},
	}

	first := finance.AllocateCash(p, facts, nil, rows, day(2024, 3, 1))
	second := finance.AllocateCash(p, facts, nil, rows, day(2024, 3, 1))

	require.Equal(t, len(first), len(second))
	for key, bucket := range first {
		other, ok := second[key]
		require.True(t, ok, "month %s missing on replay", key)
		assert.True(t, bucket.Agency.Equal(other.Agency))
		assert.True(t, bucket.Extra.Equal(other.Extra))
		assert.True(t, bucket.InPocket.Equal(other.InPocket))
	}
}

func TestPocketToDate_SumsUpToMonth(t *testing.T) {
	monthly := map[domain.MonthKey]domain.PocketMonth{
		"2024-01": {Agency: dec("100"), Extra: dec("10"), InPocket: dec("110")},
		"2024-02": {Agency: dec("50"), Extra: decimal.Zero, InPocket: dec("50")},
		"2024-05": {Agency: dec("999"), Extra: decimal.Zero, InPocket: dec("999")},
	}

	total := finance.PocketToDate(monthly, day(2024, 3, 15))

	assert.True(t, total.Agency.Equal(dec("150")))
	assert.True(t, total.Extra.Equal(dec("10")))
	assert.True(t, total.InPocket.Equal(dec("160")))
}
