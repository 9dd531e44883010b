package mapping

import (
	"github.com/muhapauka-rgb/CXEMA-V7/internal/core/domain"
	"github.com/muhapauka-rgb/CXEMA-V7/internal/models"
)

// ToModelExpenseGroup converts a domain ExpenseGroup to a model ExpenseGroup
func ToModelExpenseGroup(d domain.ExpenseGroup) models.ExpenseGroup {
	return models.ExpenseGroup{ID: d.ID, ProjectID: d.ProjectID, Name: d.Name, SortOrder: d.SortOrder}
}

// ToDomainExpenseGroup converts a model ExpenseGroup to a domain ExpenseGroup
func ToDomainExpenseGroup(m models.ExpenseGroup) domain.ExpenseGroup {
	return domain.ExpenseGroup{ID: m.ID, ProjectID: m.ProjectID, Name: m.Name, SortOrder: m.SortOrder}
}

// ToDomainExpenseGroupSlice converts model ExpenseGroups to domain ones
func ToDomainExpenseGroupSlice(ms []models.ExpenseGroup) []domain.ExpenseGroup {
	ds := make([]domain.ExpenseGroup, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainExpenseGroup(m)
	}
	return ds
}

// ToModelExpenseItem converts a domain ExpenseItem to a model ExpenseItem
func ToModelExpenseItem(d domain.ExpenseItem) models.ExpenseItem {
	return models.ExpenseItem{
		ID:                 d.ID,
		StableItemID:       d.StableItemID,
		ProjectID:          d.ProjectID,
		GroupID:            d.GroupID,
		ParentItemID:       d.ParentItemID,
		Title:              d.Title,
		Mode:               string(d.Mode),
		Qty:                d.Qty,
		UnitPriceBase:      d.UnitPriceBase,
		BaseTotal:          d.BaseTotal,
		ExtraProfitEnabled: d.ExtraProfitEnabled,
		ExtraProfitAmount:  d.ExtraProfitAmount,
		IncludeInEstimate:  d.IncludeInEstimate,
		PlannedPayDate:     d.PlannedPayDate,
		CreatedAt:          d.CreatedAt,
		UpdatedAt:          d.UpdatedAt,
	}
}

// ToDomainExpenseItem converts a model ExpenseItem to a domain ExpenseItem
func ToDomainExpenseItem(m models.ExpenseItem) domain.ExpenseItem {
	return domain.ExpenseItem{
		ID:                 m.ID,
		StableItemID:       m.StableItemID,
		ProjectID:          m.ProjectID,
		GroupID:            m.GroupID,
		ParentItemID:       m.ParentItemID,
		Title:              m.Title,
		Mode:               domain.ItemMode(m.Mode),
		Qty:                m.Qty,
		UnitPriceBase:      m.UnitPriceBase,
		BaseTotal:          m.BaseTotal,
		ExtraProfitEnabled: m.ExtraProfitEnabled,
		ExtraProfitAmount:  m.ExtraProfitAmount,
		IncludeInEstimate:  m.IncludeInEstimate,
		PlannedPayDate:     m.PlannedPayDate,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}

// ToDomainExpenseItemSlice converts model ExpenseItems to domain ones
func ToDomainExpenseItemSlice(ms []models.ExpenseItem) []domain.ExpenseItem {
	ds := make([]domain.ExpenseItem, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainExpenseItem(m)
	}
	return ds
}

// ToModelBillingAdjustment converts a domain BillingAdjustment to its model
func ToModelBillingAdjustment(d domain.BillingAdjustment) models.BillingAdjustment {
	return models.BillingAdjustment{
		ID:                d.ID,
		ExpenseItemID:     d.ExpenseItemID,
		UnitPriceFull:     d.UnitPriceFull,
		UnitPriceBillable: d.UnitPriceBillable,
		AdjustmentType:    string(d.AdjustmentType),
		Reason:            d.Reason,
		DiscountEnabled:   d.DiscountEnabled,
		DiscountAmount:    d.DiscountAmount,
	}
}

// ToDomainBillingAdjustment converts a model BillingAdjustment to its domain form
func ToDomainBillingAdjustment(m models.BillingAdjustment) domain.BillingAdjustment {
	return domain.BillingAdjustment{
		ID:                m.ID,
		ExpenseItemID:     m.ExpenseItemID,
		UnitPriceFull:     m.UnitPriceFull,
		UnitPriceBillable: m.UnitPriceBillable,
		AdjustmentType:    domain.AdjustmentType(m.AdjustmentType),
		Reason:            m.Reason,
		DiscountEnabled:   m.DiscountEnabled,
		DiscountAmount:    m.DiscountAmount,
	}
}

// ToDomainBillingAdjustmentSlice converts model adjustments to domain ones
func ToDomainBillingAdjustmentSlice(ms []models.BillingAdjustment) []domain.BillingAdjustment {
	ds := make([]domain.BillingAdjustment, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainBillingAdjustment(m)
	}
	return ds
}
