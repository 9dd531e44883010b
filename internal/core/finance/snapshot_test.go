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

func TestBuildSnapshot_SkipsInactiveProjects(t *testing.T) {
	asOf := day(2024, 6, 15)
	closed := day(2024, 5, 1)
	inputs := []finance.ProjectSnapshotInput{
		{Project: domain.Project{ID: 1, Title: "Будущий", CreatedAt: day(2024, 7, 1)}},
		{Project: domain.Project{ID: 2, Title: "Закрытый", CreatedAt: day(2024, 1, 1), ClosedAt: &closed}},
		{Project: domain.Project{ID: 3, Title: "Активный", CreatedAt: day(2024, 1, 1)}},
	}

	snap := finance.BuildSnapshot(inputs, asOf, dec("6"))

	require.Len(t, snap.Projects, 1)
	assert.Equal(t, int64(3), snap.Projects[0].ProjectID)
	assert.Equal(t, 1, snap.Totals.ActiveProjectsCount)
}

func TestBuildSnapshot_ClosedOnAsOfDayStillCounts(t *testing.T) {
	asOf := day(2024, 6, 15)
	closed := day(2024, 6, 15)
	inputs := []finance.ProjectSnapshotInput{
		{Project: domain.Project{ID: 1, CreatedAt: day(2024, 1, 1), ClosedAt: &closed}},
	}

	snap := finance.BuildSnapshot(inputs, asOf, decimal.Zero)
	assert.Len(t, snap.Projects, 1)
}

func TestBuildSnapshot_SplitsReceivedAndPlanned(t *testing.T) {
	asOf := day(2024, 6, 15)
	inputs := []finance.ProjectSnapshotInput{
		{
			Project: domain.Project{
				ID:                      2,
				Title:                   "Квартира на Остоженке",
				CreatedAt:               day(2024, 1, 1),
				AgencyFeePercent:        dec("10"),
				ExpectedFromClientTotal: dec("3000"),
			},
			Facts: []domain.PaymentFact{
				{ProjectID: 2, Amount: dec("1000"), PayDate: day(2024, 2, 1)},
			},
			Plans: []domain.PaymentPlan{
				{ProjectID: 2, Amount: dec("500"), PayDate: day(2024, 3, 1)},
				{ProjectID: 2, Amount: dec("700"), PayDate: day(2024, 9, 1)},
			},
			Rows: []domain.EffectiveRow{
				{BaseTotal: dec("500"), DueDate: dayPtr(2024, 2, 1)},
			},
		},
	}

	snap := finance.BuildSnapshot(inputs, asOf, dec("6"))

	require.Len(t, snap.Projects, 1)
	p := snap.Projects[0]
	// Due plan money counts as received, future plan money as planned.
	assert.True(t, p.ReceivedToDate.Equal(dec("1500")), "received = %s", p.ReceivedToDate)
	assert.True(t, p.PlannedTotal.Equal(dec("700")))
	assert.True(t, p.Remaining.Equal(dec("1500")))
	// USN at 6% on 1500 received beats 6% on the 500 expense base.
	assert.True(t, p.UsnAmount.Equal(dec("90")), "usn = %s", p.UsnAmount)
	assert.True(t, p.SpentToDate.Equal(dec("590")))
	assert.True(t, p.BalanceToDate.Equal(dec("910")))
	// Pocket figures come from the engine: 10% fee on 1000 + 500 inflow.
	assert.True(t, p.AgencyFeeToDate.Equal(dec("150")), "agency = %s", p.AgencyFeeToDate)
	assert.True(t, p.ExtraProfitToDate.IsZero())
	assert.True(t, p.InPocketToDate.Equal(dec("150")))
}

func TestBuildSnapshot_UsnExpenseBaseFloor(t *testing.T) {
	// When receipts lag spending the expense-base product is larger and
	// becomes the USN amount.
	asOf := day(2024, 6, 15)
	inputs := []finance.ProjectSnapshotInput{
		{
			Project: domain.Project{ID: 1, CreatedAt: day(2024, 1, 1)},
			Facts: []domain.PaymentFact{
				{ProjectID: 1, Amount: dec("100"), PayDate: day(2024, 2, 1)},
			},
			Rows: []domain.EffectiveRow{
				{BaseTotal: dec("900"), DueDate: dayPtr(2024, 3, 1)},
			},
		},
	}

	snap := finance.BuildSnapshot(inputs, asOf, dec("6"))

	require.Len(t, snap.Projects, 1)
	assert.True(t, snap.Projects[0].UsnAmount.Equal(dec("54")))
}

func TestBuildSnapshot_ZeroUsnRateDisablesLayer(t *testing.T) {
	asOf := day(2024, 6, 15)
	inputs := []finance.ProjectSnapshotInput{
		{
			Project: domain.Project{ID: 1, CreatedAt: day(2024, 1, 1)},
			Facts: []domain.PaymentFact{
				{ProjectID: 1, Amount: dec("1000"), PayDate: day(2024, 2, 1)},
			},
			Rows: []domain.EffectiveRow{
				{BaseTotal: dec("400"), DueDate: dayPtr(2024, 3, 1)},
			},
		},
	}

	snap := finance.BuildSnapshot(inputs, asOf, decimal.Zero)

	require.Len(t, snap.Projects, 1)
	assert.True(t, snap.Projects[0].UsnAmount.IsZero())
	assert.True(t, snap.Projects[0].SpentToDate.Equal(dec("400")))
}

func TestBuildSnapshot_ProjectsSortedAndTotalsSummed(t *testing.T) {
	asOf := day(2024, 6, 15)
	inputs := []finance.ProjectSnapshotInput{
		{
			Project: domain.Project{ID: 5, CreatedAt: day(2024, 1, 1)},
			Facts: []domain.PaymentFact{
				{ProjectID: 5, Amount: dec("200"), PayDate: day(2024, 1, 10)},
			},
		},
		{
			Project: domain.Project{ID: 2, CreatedAt: day(2024, 1, 1)},
			Facts: []domain.PaymentFact{
				{ProjectID: 2, Amount: dec("300"), PayDate: day(2024, 1, 10)},
			},
		},
	}

	snap := finance.BuildSnapshot(inputs, asOf, decimal.Zero)

	require.Len(t, snap.Projects, 2)
	assert.Equal(t, int64(2), snap.Projects[0].ProjectID)
	assert.Equal(t, int64(5), snap.Projects[1].ProjectID)
	assert.Equal(t, 2, snap.Totals.ActiveProjectsCount)
	assert.True(t, snap.Totals.ReceivedTotal.Equal(dec("500")))
	assert.True(t, snap.Totals.BalanceTotal.Equal(dec("500")))
	assert.Equal(t, domain.DateOnly(asOf), snap.At)
}

func TestBuildSnapshot_UndatedRowFallsOnCreationDate(t *testing.T) {
	// An undated row on a project created after asOf's cutoff but still
	// active contributes nothing; created before, it always counts.
	asOf := day(2024, 6, 15)
	inputs := []finance.ProjectSnapshotInput{
		{
			Project: domain.Project{ID: 1, CreatedAt: time.Date(2024, 3, 3, 18, 30, 0, 0, time.UTC)},
			Rows:    []domain.EffectiveRow{{BaseTotal: dec("250")}},
		},
	}

	snap := finance.BuildSnapshot(inputs, asOf, decimal.Zero)

	require.Len(t, snap.Projects, 1)
	assert.True(t, snap.Projects[0].SpentToDate.Equal(dec("250")))
}
