package finance

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/muhapauka-rgb/CXEMA-V7/internal/core/domain"
)

// allocationState is the wallet simulation's end state. Only the month
// buckets are exposed publicly; the cumulative and pending figures exist so
// the conservation invariant can be checked.
type allocationState struct {
	wallet         decimal.Decimal
	pendingExpense decimal.Decimal
	pendingAgency  decimal.Decimal
	pendingExtra   decimal.Decimal
	paidExpense    decimal.Decimal
	paidAgency     decimal.Decimal
	paidExtra      decimal.Decimal
	inflowTotal    decimal.Decimal
	months         map[domain.MonthKey]domain.PocketMonth
}

// AllocateCash replays a project's payment and expense events in strict
// chronological order and reports, per month, how much of the owner's
// agency-fee and extra-profit claims actually cleared given cash in hand.
//
// Every inflow (realized payments and plan payments already due at asOf)
// feeds a running wallet and simultaneously raises an agency claim of the
// project's fee percent. Every effective expense row due at or before asOf
// raises an expense claim for its billable total and, when present, an
// extra-profit claim. At each event date pending claims are settled from
// the wallet in fixed seniority: expenses first, then agency fee, then
// extra profit. Whatever the wallet cannot cover stays pending and is
// retried at the next date. Undated expense rows are attributed to the
// project creation date. Non-positive amounts are dropped when events are
// built.
//
// The returned map buckets cleared amounts by the month of the settling
// date; months where nothing cleared are absent.
func AllocateCash(
	project domain.Project,
	facts []domain.PaymentFact,
	plans []domain.PaymentPlan,
	rows []domain.EffectiveRow,
	asOf time.Time,
) map[domain.MonthKey]domain.PocketMonth {
	return allocate(project, facts, plans, rows, asOf).months
}

func allocate(
	project domain.Project,
	facts []domain.PaymentFact,
	plans []domain.PaymentPlan,
	rows []domain.EffectiveRow,
	asOf time.Time,
) allocationState {
	cutoff := domain.DateOnly(asOf)
	agencyRate := project.AgencyFeePercent.Div(decimal.NewFromInt(100))

	pay := map[time.Time]decimal.Decimal{}
	expense := map[time.Time]decimal.Decimal{}
	agencyClaim := map[time.Time]decimal.Decimal{}
	extraClaim := map[time.Time]decimal.Decimal{}

	addInflow := func(at time.Time, amount decimal.Decimal) {
		if !amount.IsPositive() {
			return
		}
		day := domain.DateOnly(at)
		if day.After(cutoff) {
			return
		}
		pay[day] = pay[day].Add(amount)
		// The agency earns its cut on every inflow event, not on expenses.
		agencyClaim[day] = agencyClaim[day].Add(amount.Mul(agencyRate))
	}
	for _, f := range facts {
		addInflow(f.PayDate, f.Amount)
	}
	for _, p := range plans {
		addInflow(p.PayDate, p.Amount)
	}

	created := project.CreatedDate()
	for _, row := range rows {
		due := created
		if row.DueDate != nil {
			due = domain.DateOnly(*row.DueDate)
		}
		if due.After(cutoff) {
			continue
		}
		if billable := row.BillableTotal(); billable.IsPositive() {
			expense[due] = expense[due].Add(billable)
		}
		if row.ExtraTotal.IsPositive() {
			extraClaim[due] = extraClaim[due].Add(row.ExtraTotal)
		}
	}

	seen := map[time.Time]struct{}{}
	dates := make([]time.Time, 0, len(pay)+len(expense)+len(extraClaim))
	for _, m := range []map[time.Time]decimal.Decimal{pay, expense, agencyClaim, extraClaim} {
		for d := range m {
			if _, ok := seen[d]; !ok {
				seen[d] = struct{}{}
				dates = append(dates, d)
			}
		}
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	state := allocationState{
		wallet:         decimal.Zero,
		pendingExpense: decimal.Zero,
		pendingAgency:  decimal.Zero,
		pendingExtra:   decimal.Zero,
		paidExpense:    decimal.Zero,
		paidAgency:     decimal.Zero,
		paidExtra:      decimal.Zero,
		inflowTotal:    decimal.Zero,
		months:         map[domain.MonthKey]domain.PocketMonth{},
	}

	for _, d := range dates {
		state.wallet = state.wallet.Add(pay[d])
		state.inflowTotal = state.inflowTotal.Add(pay[d])
		state.pendingExpense = state.pendingExpense.Add(expense[d])
		state.pendingAgency = state.pendingAgency.Add(agencyClaim[d])
		state.pendingExtra = state.pendingExtra.Add(extraClaim[d])

		paidExpense := decimal.Min(state.wallet, state.pendingExpense)
		state.wallet = state.wallet.Sub(paidExpense)
		state.pendingExpense = state.pendingExpense.Sub(paidExpense)
		state.paidExpense = state.paidExpense.Add(paidExpense)

		paidAgency := decimal.Min(state.wallet, state.pendingAgency)
		state.wallet = state.wallet.Sub(paidAgency)
		state.pendingAgency = state.pendingAgency.Sub(paidAgency)
		state.paidAgency = state.paidAgency.Add(paidAgency)

		paidExtra := decimal.Min(state.wallet, state.pendingExtra)
		state.wallet = state.wallet.Sub(paidExtra)
		state.pendingExtra = state.pendingExtra.Sub(paidExtra)
		state.paidExtra = state.paidExtra.Add(paidExtra)

		if paidAgency.IsPositive() || paidExtra.IsPositive() {
			key := domain.MonthKeyOf(d)
			bucket := state.months[key]
			bucket.Agency = bucket.Agency.Add(paidAgency)
			bucket.Extra = bucket.Extra.Add(paidExtra)
			bucket.InPocket = bucket.InPocket.Add(paidAgency).Add(paidExtra)
			state.months[key] = bucket
		}
	}
	return state
}

// PocketToDate sums the engine's month buckets up to and including the
// month containing asOf.
func PocketToDate(monthly map[domain.MonthKey]domain.PocketMonth, asOf time.Time) domain.PocketMonth {
	limit := domain.MonthKeyOf(asOf)
	total := domain.PocketMonth{Agency: decimal.Zero, Extra: decimal.Zero, InPocket: decimal.Zero}
	for key, bucket := range monthly {
		if key > limit {
			continue
		}
		total.Agency = total.Agency.Add(bucket.Agency)
		total.Extra = total.Extra.Add(bucket.Extra)
		total.InPocket = total.InPocket.Add(bucket.InPocket)
	}
	return total
}
