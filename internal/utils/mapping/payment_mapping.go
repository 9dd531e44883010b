package mapping

import (
	"github.com/muhapauka-rgb/CXEMA-V7/internal/core/domain"
	"github.com/muhapauka-rgb/CXEMA-V7/internal/models"
)

// ToModelPaymentPlan converts a domain PaymentPlan to a model PaymentPlan
func ToModelPaymentPlan(d domain.PaymentPlan) models.PaymentPlan {
	return models.PaymentPlan{
		ID:          d.ID,
		StablePayID: d.StablePayID,
		ProjectID:   d.ProjectID,
		PayDate:     d.PayDate,
		Amount:      d.Amount,
		Note:        d.Note,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

// ToDomainPaymentPlan converts a model PaymentPlan to a domain PaymentPlan
func ToDomainPaymentPlan(m models.PaymentPlan) domain.PaymentPlan {
	return domain.PaymentPlan{
		ID:          m.ID,
		StablePayID: m.StablePayID,
		ProjectID:   m.ProjectID,
		PayDate:     m.PayDate,
		Amount:      m.Amount,
		Note:        m.Note,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// ToDomainPaymentPlanSlice converts model PaymentPlans to domain ones
func ToDomainPaymentPlanSlice(ms []models.PaymentPlan) []domain.PaymentPlan {
	ds := make([]domain.PaymentPlan, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainPaymentPlan(m)
	}
	return ds
}

// ToModelPaymentFact converts a domain PaymentFact to a model PaymentFact
func ToModelPaymentFact(d domain.PaymentFact) models.PaymentFact {
	return models.PaymentFact{
		ID:        d.ID,
		ProjectID: d.ProjectID,
		PayDate:   d.PayDate,
		Amount:    d.Amount,
		Note:      d.Note,
		CreatedAt: d.CreatedAt,
	}
}

// ToDomainPaymentFact converts a model PaymentFact to a domain PaymentFact
func ToDomainPaymentFact(m models.PaymentFact) domain.PaymentFact {
	return domain.PaymentFact{
		ID:        m.ID,
		ProjectID: m.ProjectID,
		PayDate:   m.PayDate,
		Amount:    m.Amount,
		Note:      m.Note,
		CreatedAt: m.CreatedAt,
	}
}

// ToDomainPaymentFactSlice converts model PaymentFacts to domain ones
func ToDomainPaymentFactSlice(ms []models.PaymentFact) []domain.PaymentFact {
	ds := make([]domain.PaymentFact, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainPaymentFact(m)
	}
	return ds
}
