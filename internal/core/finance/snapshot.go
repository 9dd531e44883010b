package finance

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/muhapauka-rgb/CXEMA-V7/internal/core/domain"
)

// ProjectSnapshotInput bundles the rows BuildSnapshot needs for one
// project, prefetched by the caller within a single read transaction.
type ProjectSnapshotInput struct {
	Project domain.Project
	Rows    []domain.EffectiveRow
	Facts   []domain.PaymentFact
	Plans   []domain.PaymentPlan
}

// BuildSnapshot rolls up every project active at asOf into one as-of-date
// view. Received money counts fact payments plus already-due plan payments;
// planned money is strictly future plan inflow. Spending sums effective row
// totals due by asOf plus the USN tax layer: the rate applied to cash
// actually received, floored by the rate applied to the expense base (a
// zero usnRate disables the layer). Pocket components come from the cash
// engine's month buckets, not from flat totals. Inactive projects are
// excluded from both the per-project list and the totals.
func BuildSnapshot(inputs []ProjectSnapshotInput, asOf time.Time, usnRate decimal.Decimal) domain.Snapshot {
	cutoff := domain.DateOnly(asOf)
	rate := usnRate.Div(decimal.NewFromInt(100))

	totals := domain.SnapshotTotals{
		ReceivedTotal:     decimal.Zero,
		PlannedTotal:      decimal.Zero,
		ExpectedTotal:     decimal.Zero,
		SpentTotal:        decimal.Zero,
		UsnTotal:          decimal.Zero,
		BalanceTotal:      decimal.Zero,
		AgencyFeeToDate:   decimal.Zero,
		ExtraProfitToDate: decimal.Zero,
		InPocketToDate:    decimal.Zero,
	}
	projects := make([]domain.SnapshotProject, 0, len(inputs))

	for _, in := range inputs {
		if !in.Project.ActiveAt(cutoff) {
			continue
		}

		received := decimal.Zero
		for _, f := range in.Facts {
			if !domain.DateOnly(f.PayDate).After(cutoff) {
				received = received.Add(f.Amount)
			}
		}
		planned := decimal.Zero
		for _, p := range in.Plans {
			if domain.DateOnly(p.PayDate).After(cutoff) {
				planned = planned.Add(p.Amount)
			} else {
				received = received.Add(p.Amount)
			}
		}

		spentBase := decimal.Zero
		created := in.Project.CreatedDate()
		for _, row := range in.Rows {
			due := created
			if row.DueDate != nil {
				due = domain.DateOnly(*row.DueDate)
			}
			if due.After(cutoff) {
				continue
			}
			spentBase = spentBase.Add(row.EffectiveTotal())
		}

		// Every taxed rouble is cash already in the wallet, so the
		// "cleared" tax equals the rate on receipts; the expense-base
		// product is the floor when receipts lag spending.
		usn := decimal.Max(received.Mul(rate), spentBase.Mul(rate))
		spent := spentBase.Add(usn)

		pocket := PocketToDate(AllocateCash(in.Project, in.Facts, in.Plans, in.Rows, cutoff), cutoff)

		expected := in.Project.ExpectedFromClientTotal
		remaining := decimal.Max(expected.Sub(received), decimal.Zero)

		projects = append(projects, domain.SnapshotProject{
			ProjectID:         in.Project.ID,
			Title:             in.Project.Title,
			Organization:      in.Project.ClientName,
			ReceivedToDate:    received,
			PlannedTotal:      planned,
			ExpectedTotal:     expected,
			Remaining:         remaining,
			SpentToDate:       spent,
			UsnAmount:         usn,
			BalanceToDate:     received.Sub(spent),
			AgencyFeeToDate:   pocket.Agency,
			ExtraProfitToDate: pocket.Extra,
			InPocketToDate:    pocket.InPocket,
		})

		totals.ActiveProjectsCount++
		totals.ReceivedTotal = totals.ReceivedTotal.Add(received)
		totals.PlannedTotal = totals.PlannedTotal.Add(planned)
		totals.ExpectedTotal = totals.ExpectedTotal.Add(expected)
		totals.SpentTotal = totals.SpentTotal.Add(spent)
		totals.UsnTotal = totals.UsnTotal.Add(usn)
		totals.BalanceTotal = totals.BalanceTotal.Add(received.Sub(spent))
		totals.AgencyFeeToDate = totals.AgencyFeeToDate.Add(pocket.Agency)
		totals.ExtraProfitToDate = totals.ExtraProfitToDate.Add(pocket.Extra)
		totals.InPocketToDate = totals.InPocketToDate.Add(pocket.InPocket)
	}

	sort.Slice(projects, func(i, j int) bool { return projects[i].ProjectID < projects[j].ProjectID })

	return domain.Snapshot{At: cutoff, Totals: totals, Projects: projects}
}
