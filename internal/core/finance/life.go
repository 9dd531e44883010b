package finance

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/muhapauka-rgb/CXEMA-V7/internal/core/domain"
)

// lifeKey addresses one savings bucket slice: a project within a month.
type lifeKey struct {
	projectID int64
	month     domain.MonthKey
}

// ProjectLifeCoverage simulates consuming pocket inflows month by month and
// answers how much of the selected month's personal-draw target is covered,
// and from which project/month buckets.
//
// inflows maps source month -> project id -> in-pocket amount for that
// month (the cash engine's output, aggregated by the caller with as-of set
// to each source month's end). The timeline advances from the earliest
// inflow month to the month before selectedMonth; every step drains buckets
// against the target, so reserves carried into the selected month reflect
// draws already made for earlier months. Buckets drain current source month
// first, then older months most-recent-first, and within a bucket projects
// in ascending id order. The walk stops once the selected month has been
// processed, whether or not the need was met.
func ProjectLifeCoverage(
	inflows map[domain.MonthKey]map[int64]decimal.Decimal,
	projects map[int64]domain.Project,
	targetAmount decimal.Decimal,
	selectedMonth domain.MonthKey,
) domain.LifeCoverage {
	out := domain.LifeCoverage{
		SelectedMonth: selectedMonth,
		TargetAmount:  targetAmount,
		LifeCovered:   decimal.Zero,
		LifeGap:       targetAmount,
		ReserveUsed:   decimal.Zero,
		SavingsTotal:  decimal.Zero,
		Breakdown:     []domain.LifeBreakdownRow{},
	}

	months := make([]domain.MonthKey, 0, len(inflows))
	for m := range inflows {
		months = append(months, m)
	}
	if len(months) == 0 {
		return out
	}
	sort.Slice(months, func(i, j int) bool { return months[i] < months[j] })

	sourceMonthKey := selectedMonth.Prev()
	timeline := []domain.MonthKey{months[0]}
	for timeline[len(timeline)-1] < sourceMonthKey {
		timeline = append(timeline, timeline[len(timeline)-1].Next())
	}

	savings := map[domain.MonthKey]map[int64]decimal.Decimal{}
	usedForSelected := map[lifeKey]decimal.Decimal{}
	coveredSelected := decimal.Zero
	reserveUsed := decimal.Zero
	var savingsBefore, savingsAfter map[domain.MonthKey]map[int64]decimal.Decimal

	for _, sourceMonth := range timeline {
		for pid, amount := range inflows[sourceMonth] {
			if !amount.IsPositive() {
				continue
			}
			bucket := savings[sourceMonth]
			if bucket == nil {
				bucket = map[int64]decimal.Decimal{}
				savings[sourceMonth] = bucket
			}
			bucket[pid] = bucket[pid].Add(amount)
		}

		need := targetAmount
		isSelectedTarget := sourceMonth.Next() == selectedMonth
		if isSelectedTarget {
			savingsBefore = copySavings(savings)
		}

		// Current source month first, then older reserves newest-first.
		consumeOrder := []domain.MonthKey{sourceMonth}
		reserveMonths := make([]domain.MonthKey, 0, len(savings))
		for m := range savings {
			if m != sourceMonth && m < sourceMonth {
				reserveMonths = append(reserveMonths, m)
			}
		}
		sort.Slice(reserveMonths, func(i, j int) bool { return reserveMonths[i] > reserveMonths[j] })
		consumeOrder = append(consumeOrder, reserveMonths...)

		for _, bucketMonth := range consumeOrder {
			if !need.IsPositive() {
				break
			}
			bucket := savings[bucketMonth]
			if len(bucket) == 0 {
				continue
			}
			pids := make([]int64, 0, len(bucket))
			for pid := range bucket {
				pids = append(pids, pid)
			}
			sort.Slice(pids, func(i, j int) bool { return pids[i] < pids[j] })
			for _, pid := range pids {
				if !need.IsPositive() {
					break
				}
				available := bucket[pid]
				if !available.IsPositive() {
					continue
				}
				take := decimal.Min(available, need)
				remainder := available.Sub(take)
				if remainder.IsPositive() {
					bucket[pid] = remainder
				} else {
					delete(bucket, pid)
				}
				need = need.Sub(take)
				if isSelectedTarget {
					k := lifeKey{projectID: pid, month: bucketMonth}
					usedForSelected[k] = usedForSelected[k].Add(take)
				}
			}
			if len(bucket) == 0 {
				delete(savings, bucketMonth)
			}
		}

		if isSelectedTarget {
			coveredSelected = targetAmount.Sub(decimal.Max(need, decimal.Zero))
			for k, v := range usedForSelected {
				if k.month != sourceMonthKey {
					reserveUsed = reserveUsed.Add(v)
				}
			}
			savingsAfter = copySavings(savings)
			break
		}
	}

	out.LifeCovered = decimal.Max(coveredSelected, decimal.Zero)
	out.LifeGap = decimal.Max(targetAmount.Sub(out.LifeCovered), decimal.Zero)
	out.ReserveUsed = decimal.Max(reserveUsed, decimal.Zero)
	for _, bucket := range savings {
		for _, v := range bucket {
			out.SavingsTotal = out.SavingsTotal.Add(v)
		}
	}
	out.Breakdown = buildLifeBreakdown(inflows, projects, sourceMonthKey, savingsBefore, savingsAfter, usedForSelected)
	return out
}

// buildLifeBreakdown assembles one row per (project, source month) pair the
// selected month touched, so a UI can show where the money came from.
func buildLifeBreakdown(
	inflows map[domain.MonthKey]map[int64]decimal.Decimal,
	projects map[int64]domain.Project,
	sourceMonthKey domain.MonthKey,
	savingsBefore, savingsAfter map[domain.MonthKey]map[int64]decimal.Decimal,
	usedForSelected map[lifeKey]decimal.Decimal,
) []domain.LifeBreakdownRow {
	keys := map[lifeKey]struct{}{}
	for pid := range inflows[sourceMonthKey] {
		keys[lifeKey{projectID: pid, month: sourceMonthKey}] = struct{}{}
	}
	for month, bucket := range savingsBefore {
		for pid := range bucket {
			keys[lifeKey{projectID: pid, month: month}] = struct{}{}
		}
	}
	for k := range usedForSelected {
		keys[k] = struct{}{}
	}

	ordered := make([]lifeKey, 0, len(keys))
	for k := range keys {
		ordered = append(ordered, k)
	}
	sort.Slice(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		aCurrent := a.month == sourceMonthKey
		bCurrent := b.month == sourceMonthKey
		if aCurrent != bCurrent {
			return aCurrent // current source month rows first
		}
		if !aCurrent && a.month != b.month {
			return a.month > b.month // reserve rows: nearest month first
		}
		at, bt := "", ""
		if p, ok := projects[a.projectID]; ok {
			at = p.Title
		}
		if p, ok := projects[b.projectID]; ok {
			bt = p.Title
		}
		if at != bt {
			return at < bt
		}
		return a.projectID < b.projectID
	})

	rows := make([]domain.LifeBreakdownRow, 0, len(ordered))
	for _, k := range ordered {
		project, ok := projects[k.projectID]
		if !ok {
			continue
		}
		opening := savingsAt(savingsBefore, k)
		used := usedForSelected[k]
		closing := savingsAt(savingsAfter, k)
		inflow := decimal.Zero
		if bucket, ok := inflows[k.month]; ok {
			inflow = bucket[k.projectID]
		}
		if !opening.IsPositive() && !used.IsPositive() && !closing.IsPositive() && !inflow.IsPositive() {
			continue
		}
		kind := domain.LifeSourceReserve
		if k.month == sourceMonthKey {
			kind = domain.LifeSourceCurrent
		}
		rows = append(rows, domain.LifeBreakdownRow{
			ProjectID:           project.ID,
			Title:               project.Title,
			Organization:        project.ClientName,
			SourceMonth:         k.month,
			SourceKind:          kind,
			OpeningBalance:      opening,
			InflowInSourceMonth: inflow,
			UsedForLife:         used,
			ClosingBalance:      closing,
		})
	}
	return rows
}

func savingsAt(state map[domain.MonthKey]map[int64]decimal.Decimal, k lifeKey) decimal.Decimal {
	if bucket, ok := state[k.month]; ok {
		return bucket[k.projectID]
	}
	return decimal.Zero
}

// copySavings snapshots the positive slices of the savings state.
func copySavings(source map[domain.MonthKey]map[int64]decimal.Decimal) map[domain.MonthKey]map[int64]decimal.Decimal {
	snapshot := map[domain.MonthKey]map[int64]decimal.Decimal{}
	for month, bucket := range source {
		copied := map[int64]decimal.Decimal{}
		for pid, v := range bucket {
			if v.IsPositive() {
				copied[pid] = v
			}
		}
		if len(copied) > 0 {
			snapshot[month] = copied
		}
	}
	return snapshot
}
