package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentPlan mirrors a row of the client_payments_plan table.
type PaymentPlan struct {
	ID          int64           `json:"id"`
	StablePayID string          `json:"stablePayID"`
	ProjectID   int64           `json:"projectID"`
	PayDate     time.Time       `json:"payDate"`
	Amount      decimal.Decimal `json:"amount"`
	Note        string          `json:"note"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// PaymentFact mirrors a row of the client_payments_fact table.
type PaymentFact struct {
	ID        int64           `json:"id"`
	ProjectID int64           `json:"projectID"`
	PayDate   time.Time       `json:"payDate"`
	Amount    decimal.Decimal `json:"amount"`
	Note      string          `json:"note"`
	CreatedAt time.Time       `json:"createdAt"`
}
