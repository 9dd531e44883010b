package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/muhapauka-rgb/CXEMA-V7/internal/apperrors"
)

// ItemMode selects how an expense item's base total is produced.
type ItemMode string

const (
	SingleTotal ItemMode = "SINGLE_TOTAL" // base_total stored directly
	QtyPrice    ItemMode = "QTY_PRICE"    // base_total derived from qty * unit price
)

// ParseItemMode maps a raw mode string to a closed ItemMode value.
func ParseItemMode(raw string) (ItemMode, error) {
	switch ItemMode(raw) {
	case SingleTotal:
		return SingleTotal, nil
	case QtyPrice:
		return QtyPrice, nil
	default:
		return "", fmt.Errorf("item mode %q: %w", raw, apperrors.ErrValidation)
	}
}

// AdjustmentType classifies a client billing adjustment.
type AdjustmentType string

const (
	AdjustmentDiscount      AdjustmentType = "DISCOUNT"
	AdjustmentCreditPrev    AdjustmentType = "CREDIT_FROM_PREV"
	AdjustmentCarryToNext   AdjustmentType = "CARRY_TO_NEXT"
)

// ParseAdjustmentType maps a raw adjustment type string to a closed value.
func ParseAdjustmentType(raw string) (AdjustmentType, error) {
	switch AdjustmentType(raw) {
	case AdjustmentDiscount, AdjustmentCreditPrev, AdjustmentCarryToNext:
		return AdjustmentType(raw), nil
	default:
		return "", fmt.Errorf("adjustment type %q: %w", raw, apperrors.ErrValidation)
	}
}

// ExpenseGroup is a display grouping for expense items. No financial logic
// depends on it beyond ordering.
type ExpenseGroup struct {
	ID        int64  `json:"id"`
	ProjectID int64  `json:"projectID"`
	Name      string `json:"name"`
	SortOrder int    `json:"sortOrder"`
}

// ExpenseItem is a single expense line. Items nest at most one level: a
// child's parent must itself be top-level, enforced at write time by the
// project service.
type ExpenseItem struct {
	ID                 int64            `json:"id"`
	StableItemID       string           `json:"stableItemID"` // stable external id for sheet sync
	ProjectID          int64            `json:"projectID"`
	GroupID            int64            `json:"groupID"`
	ParentItemID       *int64           `json:"parentItemID"`
	Title              string           `json:"title"`
	Mode               ItemMode         `json:"mode"`
	Qty                *decimal.Decimal `json:"qty"`
	UnitPriceBase      *decimal.Decimal `json:"unitPriceBase"`
	BaseTotal          decimal.Decimal  `json:"baseTotal"`
	ExtraProfitEnabled bool             `json:"extraProfitEnabled"`
	ExtraProfitAmount  decimal.Decimal  `json:"extraProfitAmount"`
	IncludeInEstimate  bool             `json:"includeInEstimate"`
	PlannedPayDate     *time.Time       `json:"plannedPayDate"`
	CreatedAt          time.Time        `json:"createdAt"`
	UpdatedAt          time.Time        `json:"updatedAt"`
}

// BaseAmount resolves the item's own base total. In QTY_PRICE mode the
// stored base is ignored and recomputed from qty and unit price; a zero qty
// means "price the unit once".
func (it ExpenseItem) BaseAmount() decimal.Decimal {
	if it.Mode == QtyPrice && it.Qty != nil && it.UnitPriceBase != nil {
		if it.Qty.IsZero() {
			return *it.UnitPriceBase
		}
		return it.Qty.Mul(*it.UnitPriceBase)
	}
	return it.BaseTotal
}

// ExtraAmount is the item's own extra-profit claim (zero unless enabled).
func (it ExpenseItem) ExtraAmount() decimal.Decimal {
	if !it.ExtraProfitEnabled {
		return decimal.Zero
	}
	return it.ExtraProfitAmount
}

// BillingAdjustment is the one-to-one billing annotation of an expense item.
// Discount fields feed the financial core; the unit-price pair and type only
// matter to the sheet-sync collaborator.
type BillingAdjustment struct {
	ID                int64           `json:"id"`
	ExpenseItemID     int64           `json:"expenseItemID"`
	UnitPriceFull     decimal.Decimal `json:"unitPriceFull"`
	UnitPriceBillable decimal.Decimal `json:"unitPriceBillable"`
	AdjustmentType    AdjustmentType  `json:"adjustmentType"`
	Reason            string          `json:"reason"`
	DiscountEnabled   bool            `json:"discountEnabled"`
	DiscountAmount    decimal.Decimal `json:"discountAmount"`
}

// DiscountInfo is the slice of an adjustment the financial core consumes.
type DiscountInfo struct {
	Enabled bool
	Amount  decimal.Decimal
}

// DiscountMap indexes discount info by expense item id.
type DiscountMap map[int64]DiscountInfo

// DiscountsFromAdjustments projects adjustment rows to the map the
// effective-row resolver takes.
func DiscountsFromAdjustments(adjustments []BillingAdjustment) DiscountMap {
	out := make(DiscountMap, len(adjustments))
	for _, adj := range adjustments {
		out[adj.ExpenseItemID] = DiscountInfo{Enabled: adj.DiscountEnabled, Amount: adj.DiscountAmount}
	}
	return out
}
