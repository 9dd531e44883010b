package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EffectiveRow is the single accounting row derived from a top-level expense
// item plus its children and discount adjustment. It is never persisted.
type EffectiveRow struct {
	Item          ExpenseItem
	BaseTotal     decimal.Decimal
	ExtraTotal    decimal.Decimal
	DiscountTotal decimal.Decimal
	DueDate       *time.Time // nil falls back to the project creation date
}

// EffectiveTotal is base + extra - discount. A discount may legitimately
// exceed the base; the total is signed, never clamped.
func (r EffectiveRow) EffectiveTotal() decimal.Decimal {
	return r.BaseTotal.Add(r.ExtraTotal).Sub(r.DiscountTotal)
}

// BillableTotal is the expense claim the cash engine settles: the base cost
// net of discount. Extra profit is claimed separately.
func (r EffectiveRow) BillableTotal() decimal.Decimal {
	return r.BaseTotal.Sub(r.DiscountTotal)
}

// PocketMonth is one month's cleared owner income.
type PocketMonth struct {
	Agency   decimal.Decimal `json:"agency"`
	Extra    decimal.Decimal `json:"extra"`
	InPocket decimal.Decimal `json:"inPocket"`
}

// ProjectFinancials are lifetime, non-time-sliced totals for one project.
type ProjectFinancials struct {
	ProjectID        int64           `json:"projectID"`
	ExpensesTotal    decimal.Decimal `json:"expensesTotal"`
	AgencyFee        decimal.Decimal `json:"agencyFee"` // nominal cut of the contracted price
	ExtraProfitTotal decimal.Decimal `json:"extraProfitTotal"`
	DiscountTotal    decimal.Decimal `json:"discountTotal"`
	InPocket         decimal.Decimal `json:"inPocket"`
	Diff             decimal.Decimal `json:"diff"`
}

// SnapshotProject is one active project's slice of an as-of-date rollup.
type SnapshotProject struct {
	ProjectID         int64           `json:"projectID"`
	Title             string          `json:"title"`
	Organization      *string         `json:"organization"`
	ReceivedToDate    decimal.Decimal `json:"receivedToDate"`
	PlannedTotal      decimal.Decimal `json:"plannedTotal"` // strictly future plan inflow
	ExpectedTotal     decimal.Decimal `json:"expectedTotal"`
	Remaining         decimal.Decimal `json:"remaining"`
	SpentToDate       decimal.Decimal `json:"spentToDate"` // effective expenses + USN layer
	UsnAmount         decimal.Decimal `json:"usnAmount"`
	BalanceToDate     decimal.Decimal `json:"balanceToDate"`
	AgencyFeeToDate   decimal.Decimal `json:"agencyFeeToDate"`
	ExtraProfitToDate decimal.Decimal `json:"extraProfitToDate"`
	InPocketToDate    decimal.Decimal `json:"inPocketToDate"`
}

// SnapshotTotals is the portfolio-level sum over active projects.
type SnapshotTotals struct {
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
}

// Snapshot is the as-of-date view across every active project.
type Snapshot struct {
	At       time.Time         `json:"at"`
	Totals   SnapshotTotals    `json:"totals"`
	Projects []SnapshotProject `json:"projects"`
}

// LifeSourceKind tells a breakdown row apart: money from the immediate
// source month versus older reserve.
type LifeSourceKind string

const (
	LifeSourceCurrent LifeSourceKind = "current"
	LifeSourceReserve LifeSourceKind = "reserve"
)

// LifeBreakdownRow reports where one slice of the life target was sourced
// from: which project and which saved month.
type LifeBreakdownRow struct {
	ProjectID           int64           `json:"projectID"`
	Title               string          `json:"title"`
	Organization        *string         `json:"organization"`
	SourceMonth         MonthKey        `json:"sourceMonth"`
	SourceKind          LifeSourceKind  `json:"sourceKind"`
	OpeningBalance      decimal.Decimal `json:"openingBalance"`
	InflowInSourceMonth decimal.Decimal `json:"inflowInSourceMonth"`
	UsedForLife         decimal.Decimal `json:"usedForLife"`
	ClosingBalance      decimal.Decimal `json:"closingBalance"`
}

// LifeCoverage answers how much of a month's personal-draw target the
// accumulated pocket inflows cover.
type LifeCoverage struct {
	SelectedMonth MonthKey           `json:"selectedMonth"`
	TargetAmount  decimal.Decimal    `json:"targetAmount"`
	LifeCovered   decimal.Decimal    `json:"lifeCovered"`
	LifeGap       decimal.Decimal    `json:"lifeGap"`
	ReserveUsed   decimal.Decimal    `json:"reserveUsed"` // drawn from months older than the source month
	SavingsTotal  decimal.Decimal    `json:"savingsTotal"`
	Breakdown     []LifeBreakdownRow `json:"breakdown"`
}
