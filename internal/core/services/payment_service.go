package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/muhapauka-rgb/CXEMA-V7/internal/apperrors"
	"github.com/muhapauka-rgb/CXEMA-V7/internal/core/domain"
	portsrepo "github.com/muhapauka-rgb/CXEMA-V7/internal/core/ports/repositories"
	portssvc "github.com/muhapauka-rgb/CXEMA-V7/internal/core/ports/services"
	"github.com/muhapauka-rgb/CXEMA-V7/internal/dto"
	"github.com/muhapauka-rgb/CXEMA-V7/internal/utils/ids"
)

// paymentService manages client payment plans and facts. The realized
// listing merges stored facts with plan rows whose date has passed, which
// mirrors how the cash engine counts inflows.
type paymentService struct {
	BaseService
	paymentRepo portsrepo.PaymentRepositoryFacade
	projectRepo portsrepo.ProjectReader
}

// NewPaymentService creates a new payment service.
func NewPaymentService(paymentRepo portsrepo.PaymentRepositoryFacade, projectRepo portsrepo.ProjectReader) portssvc.PaymentSvcFacade {
	return &paymentService{paymentRepo: paymentRepo, projectRepo: projectRepo}
}

var _ portssvc.PaymentSvcFacade = (*paymentService)(nil)

func (s *paymentService) ListPlannedPayments(ctx context.Context, projectID int64, asOf time.Time) ([]domain.PaymentPlan, error) {
	plans, err := s.paymentRepo.ListPlansByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list plans for project %d: %w", projectID, err)
	}
	cutoff := domain.DateOnly(asOf)
	out := make([]domain.PaymentPlan, 0, len(plans))
	for _, p := range plans {
		if domain.DateOnly(p.PayDate).After(cutoff) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *paymentService) ListRealizedPayments(ctx context.Context, projectID int64, asOf time.Time) ([]dto.PaymentRowResponse, error) {
	facts, err := s.paymentRepo.ListFactsByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list facts for project %d: %w", projectID, err)
	}
	plans, err := s.paymentRepo.ListPlansByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list plans for project %d: %w", projectID, err)
	}

	cutoff := domain.DateOnly(asOf)
	rows := make([]dto.PaymentRowResponse, 0, len(facts)+len(plans))
	for i := range facts {
		if domain.DateOnly(facts[i].PayDate).After(cutoff) {
			continue
		}
		rows = append(rows, dto.ToFactRowResponse(&facts[i]))
	}
	for i := range plans {
		if domain.DateOnly(plans[i].PayDate).After(cutoff) {
			continue
		}
		row := dto.ToPlanRowResponse(&plans[i])
		// Negated id keeps due plan rows distinct from fact ids in one list.
		row.ID = -row.ID
		rows = append(rows, row)
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].PayDate < rows[j].PayDate })
	return rows, nil
}

func (s *paymentService) CreatePlan(ctx context.Context, projectID int64, req dto.CreatePaymentRequest) (*domain.PaymentPlan, error) {
	payDate, amount, err := s.parsePayment(ctx, projectID, req)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	plan := domain.PaymentPlan{
		StablePayID: ids.NewPayID(),
		ProjectID:   projectID,
		PayDate:     payDate,
		Amount:      amount,
		Note:        req.Note,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	saved, err := s.paymentRepo.SavePlan(ctx, plan)
	if err != nil {
		return nil, fmt.Errorf("failed to create plan: %w", err)
	}
	return &saved, nil
}

func (s *paymentService) UpdatePlan(ctx context.Context, planID int64, req dto.UpdatePaymentRequest) (*domain.PaymentPlan, error) {
	plan, err := s.paymentRepo.FindPlanByID(ctx, planID)
	if err != nil {
		return nil, fmt.Errorf("failed to get plan %d: %w", planID, err)
	}
	if req.PayDate != nil {
		d, err := time.Parse("2006-01-02", *req.PayDate)
		if err != nil {
			return nil, fmt.Errorf("pay date: %w", apperrors.ErrValidation)
		}
		plan.PayDate = d
	}
	if req.Amount != nil {
		if !req.Amount.IsPositive() {
			return nil, fmt.Errorf("payment amount must be positive: %w", apperrors.ErrValidation)
		}
		plan.Amount = *req.Amount
	}
	if req.Note != nil {
		plan.Note = *req.Note
	}
	plan.UpdatedAt = time.Now()
	if err := s.paymentRepo.UpdatePlan(ctx, *plan); err != nil {
		return nil, fmt.Errorf("failed to update plan %d: %w", planID, err)
	}
	return plan, nil
}

func (s *paymentService) DeletePlan(ctx context.Context, planID int64) error {
	if err := s.paymentRepo.DeletePlan(ctx, planID); err != nil {
		return fmt.Errorf("failed to delete plan %d: %w", planID, err)
	}
	return nil
}

func (s *paymentService) CreateFact(ctx context.Context, projectID int64, req dto.CreatePaymentRequest) (*domain.PaymentFact, error) {
	payDate, amount, err := s.parsePayment(ctx, projectID, req)
	if err != nil {
		return nil, err
	}
	fact := domain.PaymentFact{
		ProjectID: projectID,
		PayDate:   payDate,
		Amount:    amount,
		Note:      req.Note,
		CreatedAt: time.Now(),
	}
	saved, err := s.paymentRepo.SaveFact(ctx, fact)
	if err != nil {
		return nil, fmt.Errorf("failed to create fact: %w", err)
	}
	return &saved, nil
}

func (s *paymentService) UpdateFact(ctx context.Context, factID int64, req dto.UpdatePaymentRequest) (*domain.PaymentFact, error) {
	fact, err := s.paymentRepo.FindFactByID(ctx, factID)
	if err != nil {
		return nil, fmt.Errorf("failed to get fact %d: %w", factID, err)
	}
	if req.PayDate != nil {
		d, err := time.Parse("2006-01-02", *req.PayDate)
		if err != nil {
			return nil, fmt.Errorf("pay date: %w", apperrors.ErrValidation)
		}
		fact.PayDate = d
	}
	if req.Amount != nil {
		if !req.Amount.IsPositive() {
			return nil, fmt.Errorf("payment amount must be positive: %w", apperrors.ErrValidation)
		}
		fact.Amount = *req.Amount
	}
	if req.Note != nil {
		fact.Note = *req.Note
	}
	if err := s.paymentRepo.UpdateFact(ctx, *fact); err != nil {
		return nil, fmt.Errorf("failed to update fact %d: %w", factID, err)
	}
	return fact, nil
}

func (s *paymentService) DeleteFact(ctx context.Context, factID int64) error {
	if err := s.paymentRepo.DeleteFact(ctx, factID); err != nil {
		return fmt.Errorf("failed to delete fact %d: %w", factID, err)
	}
	return nil
}

func (s *paymentService) parsePayment(ctx context.Context, projectID int64, req dto.CreatePaymentRequest) (time.Time, decimal.Decimal, error) {
	if _, err := s.projectRepo.FindProjectByID(ctx, projectID); err != nil {
		return time.Time{}, decimal.Zero, fmt.Errorf("failed to get project %d: %w", projectID, err)
	}
	payDate, err := time.Parse("2006-01-02", req.PayDate)
	if err != nil {
		return time.Time{}, decimal.Zero, fmt.Errorf("pay date: %w", apperrors.ErrValidation)
	}
	if req.Amount == nil || !req.Amount.IsPositive() {
		return time.Time{}, decimal.Zero, fmt.Errorf("payment amount must be positive: %w", apperrors.ErrValidation)
	}
	return payDate, *req.Amount, nil
}
