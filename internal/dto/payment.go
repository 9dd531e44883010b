package dto

import (
	"github.com/shopspring/decimal"

	"github.com/muhapauka-rgb/CXEMA-V7/internal/core/domain"
)

// CreatePaymentRequest defines the payload shared by plan and fact creation.
type CreatePaymentRequest struct {
	PayDate string           `json:"payDate" binding:"required,datetime=2006-01-02"`
	Amount  *decimal.Decimal `json:"amount" binding:"required,gt=0"`
	Note    string           `json:"note"`
}

// UpdatePaymentRequest defines the partial update payload shared by plans
// and facts.
type UpdatePaymentRequest struct {
	PayDate *string          `json:"payDate" binding:"omitempty,datetime=2006-01-02"`
	Amount  *decimal.Decimal `json:"amount" binding:"omitempty,gt=0"`
	Note    *string          `json:"note"`
}

// PaymentRowResponse is one row of a payment listing. In the realized
// listing, plan rows whose date has passed appear with a negated id so the
// client can tell them apart from stored facts.
type PaymentRowResponse struct {
	ID      int64           `json:"id"`
	PayDate string          `json:"payDate"`
	Amount  decimal.Decimal `json:"amount"`
	Note    string          `json:"note"`
	IsPlan  bool            `json:"isPlan"`
}

// ToPlanRowResponse converts a domain.PaymentPlan to a listing row.
func ToPlanRowResponse(p *domain.PaymentPlan) PaymentRowResponse {
	return PaymentRowResponse{
		ID:      p.ID,
		PayDate: p.PayDate.Format("2006-01-02"),
		Amount:  p.Amount.Round(2),
		Note:    p.Note,
		IsPlan:  true,
	}
}

// ToFactRowResponse converts a domain.PaymentFact to a listing row.
func ToFactRowResponse(f *domain.PaymentFact) PaymentRowResponse {
	return PaymentRowResponse{
		ID:      f.ID,
		PayDate: f.PayDate.Format("2006-01-02"),
		Amount:  f.Amount.Round(2),
		Note:    f.Note,
		IsPlan:  false,
	}
}
