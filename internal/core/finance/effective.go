// Package finance holds the pure financial core: the effective-row
// resolver, the temporal cash-allocation engine, the project aggregator,
// the as-of-date snapshot builder and the life-coverage projector. All
// functions are deterministic, side-effect free and operate on
// already-loaded domain rows; persistence and HTTP concerns live in the
// surrounding services.
package finance

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/muhapauka-rgb/CXEMA-V7/internal/core/domain"
)

// ResolveEffectiveRows collapses a project's two-level item hierarchy into
// one accounting row per top-level item.
//
// An item whose parent id is nil or dangling counts as top-level. A parent
// with children takes its base from the children's resolved bases, its
// extra from the children's enabled extra-profit amounts, and its due date
// from its own planned date or, failing that, the latest dated child; the
// parent's own amount fields become informational only. The discount always
// comes from the parent's own adjustment record.
//
// Pre-condition: nesting is at most one level deep. The write path rejects
// deeper chains; the resolver itself never recurses, so a malformed
// grandchild merely lands in its parent's child list and terminates.
func ResolveEffectiveRows(items []domain.ExpenseItem, discounts domain.DiscountMap) []domain.EffectiveRow {
	byID := make(map[int64]domain.ExpenseItem, len(items))
	for _, it := range items {
		byID[it.ID] = it
	}

	childrenByParent := make(map[int64][]domain.ExpenseItem)
	topLevel := make([]domain.ExpenseItem, 0, len(items))
	for _, it := range items {
		if it.ParentItemID != nil {
			if _, ok := byID[*it.ParentItemID]; ok {
				childrenByParent[*it.ParentItemID] = append(childrenByParent[*it.ParentItemID], it)
				continue
			}
		}
		topLevel = append(topLevel, it)
	}

	out := make([]domain.EffectiveRow, 0, len(topLevel))
	for _, parent := range topLevel {
		row := domain.EffectiveRow{Item: parent}

		if children := childrenByParent[parent.ID]; len(children) > 0 {
			base := decimal.Zero
			extra := decimal.Zero
			var latestChildDate *time.Time
			for _, child := range children {
				base = base.Add(child.BaseAmount())
				extra = extra.Add(child.ExtraAmount())
				if child.PlannedPayDate != nil {
					d := domain.DateOnly(*child.PlannedPayDate)
					if latestChildDate == nil || d.After(*latestChildDate) {
						latestChildDate = &d
					}
				}
			}
			row.BaseTotal = base
			row.ExtraTotal = extra
			if parent.PlannedPayDate != nil {
				d := domain.DateOnly(*parent.PlannedPayDate)
				row.DueDate = &d
			} else {
				row.DueDate = latestChildDate
			}
		} else {
			row.BaseTotal = parent.BaseAmount()
			row.ExtraTotal = parent.ExtraAmount()
			if parent.PlannedPayDate != nil {
				d := domain.DateOnly(*parent.PlannedPayDate)
				row.DueDate = &d
			}
		}

		if info, ok := discounts[parent.ID]; ok && info.Enabled {
			row.DiscountTotal = info.Amount
		} else {
			row.DiscountTotal = decimal.Zero
		}

		out = append(out, row)
	}
	return out
}
