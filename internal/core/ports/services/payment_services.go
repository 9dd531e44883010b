package services

import (
	"context"
	"time"

	"github.com/muhapauka-rgb/CXEMA-V7/internal/core/domain"
	"github.com/muhapauka-rgb/CXEMA-V7/internal/dto"
)

// PaymentReaderSvc defines read operations for client payments
type PaymentReaderSvc interface {
	// ListPlannedPayments retrieves plan rows strictly after asOf.
	ListPlannedPayments(ctx context.Context, projectID int64, asOf time.Time) ([]domain.PaymentPlan, error)

	// ListRealizedPayments merges stored facts with plan rows already due
	// at asOf; due plan rows carry negated ids.
	ListRealizedPayments(ctx context.Context, projectID int64, asOf time.Time) ([]dto.PaymentRowResponse, error)
}

// PaymentWriterSvc defines write operations for client payments
type PaymentWriterSvc interface {
	// CreatePlan persists a new planned payment.
	CreatePlan(ctx context.Context, projectID int64, req dto.CreatePaymentRequest) (*domain.PaymentPlan, error)

	// UpdatePlan applies a partial update to a planned payment.
	UpdatePlan(ctx context.Context, planID int64, req dto.UpdatePaymentRequest) (*domain.PaymentPlan, error)

	// DeletePlan removes a planned payment.
	DeletePlan(ctx context.Context, planID int64) error

	// CreateFact persists a new realized payment.
	CreateFact(ctx context.Context, projectID int64, req dto.CreatePaymentRequest) (*domain.PaymentFact, error)

	// UpdateFact applies a partial update to a realized payment.
	UpdateFact(ctx context.Context, factID int64, req dto.UpdatePaymentRequest) (*domain.PaymentFact, error)

	// DeleteFact removes a realized payment.
	DeleteFact(ctx context.Context, factID int64) error
}

// PaymentSvcFacade combines all payment-related service interfaces
type PaymentSvcFacade interface {
	PaymentReaderSvc
	PaymentWriterSvc
}
