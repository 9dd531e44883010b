package repositories

import (
	"context"

	"github.com/muhapauka-rgb/CXEMA-V7/internal/core/domain"
)

// PaymentPlanReader defines read operations for planned payments
type PaymentPlanReader interface {
	// FindPlanByID retrieves a specific planned payment.
	FindPlanByID(ctx context.Context, planID int64) (*domain.PaymentPlan, error)

	// ListPlansByProject retrieves a project's planned payments ordered by date.
	ListPlansByProject(ctx context.Context, projectID int64) ([]domain.PaymentPlan, error)
}

// PaymentPlanWriter defines write operations for planned payments
type PaymentPlanWriter interface {
	// SavePlan persists a new planned payment.
	SavePlan(ctx context.Context, plan domain.PaymentPlan) (domain.PaymentPlan, error)

	// UpdatePlan updates an existing planned payment.
	UpdatePlan(ctx context.Context, plan domain.PaymentPlan) error

	// DeletePlan removes a planned payment.
	DeletePlan(ctx context.Context, planID int64) error
}

// PaymentFactReader defines read operations for realized payments
type PaymentFactReader interface {
	// FindFactByID retrieves a specific realized payment.
	FindFactByID(ctx context.Context, factID int64) (*domain.PaymentFact, error)

	// ListFactsByProject retrieves a project's realized payments ordered by date.
	ListFactsByProject(ctx context.Context, projectID int64) ([]domain.PaymentFact, error)
}

// PaymentFactWriter defines write operations for realized payments
type PaymentFactWriter interface {
	// SaveFact persists a new realized payment.
	SaveFact(ctx context.Context, fact domain.PaymentFact) (domain.PaymentFact, error)

	// UpdateFact updates an existing realized payment.
	UpdateFact(ctx context.Context, fact domain.PaymentFact) error

	// DeleteFact removes a realized payment.
	DeleteFact(ctx context.Context, factID int64) error
}

// PaymentRepositoryFacade combines all payment-related repository interfaces
type PaymentRepositoryFacade interface {
	PaymentPlanReader
	PaymentPlanWriter
	PaymentFactReader
	PaymentFactWriter
}

// PaymentRepositoryWithTx extends PaymentRepositoryFacade with transaction capabilities
type PaymentRepositoryWithTx interface {
	PaymentRepositoryFacade
	TransactionManager
}
