package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentPlan is a scheduled client inflow. Plans whose pay date has passed
// count as realized money everywhere the engine looks.
type PaymentPlan struct {
	ID          int64           `json:"id"`
	StablePayID string          `json:"stablePayID"` // stable external id for sheet sync
	ProjectID   int64           `json:"projectID"`
	PayDate     time.Time       `json:"payDate"`
	Amount      decimal.Decimal `json:"amount"`
	Note        string          `json:"note"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// PaymentFact is a realized client inflow.
type PaymentFact struct {
	ID        int64           `json:"id"`
	ProjectID int64           `json:"projectID"`
	PayDate   time.Time       `json:"payDate"`
	Amount    decimal.Decimal `json:"amount"`
	Note      string          `json:"note"`
	CreatedAt time.Time       `json:"createdAt"`
}
