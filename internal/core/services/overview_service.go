package services

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/muhapauka-rgb/CXEMA-V7/internal/core/domain"
	"github.com/muhapauka-rgb/CXEMA-V7/internal/core/finance"
	portsrepo "github.com/muhapauka-rgb/CXEMA-V7/internal/core/ports/repositories"
	portssvc "github.com/muhapauka-rgb/CXEMA-V7/internal/core/ports/services"
)

// overviewService assembles the portfolio snapshot. It prefetches every
// active project's rows and payments and hands them to the pure builder.
type overviewService struct {
	BaseService
	projectRepo portsrepo.ProjectReader
	expenseRepo portsrepo.ExpenseRepositoryFacade
	paymentRepo portsrepo.PaymentRepositoryFacade
	settingsSvc portssvc.SettingsSvc
}

// NewOverviewService creates a new overview service.
func NewOverviewService(
	projectRepo portsrepo.ProjectReader,
	expenseRepo portsrepo.ExpenseRepositoryFacade,
	paymentRepo portsrepo.PaymentRepositoryFacade,
	settingsSvc portssvc.SettingsSvc,
) portssvc.OverviewSvc {
	return &overviewService{
		projectRepo: projectRepo,
		expenseRepo: expenseRepo,
		paymentRepo: paymentRepo,
		settingsSvc: settingsSvc,
	}
}

var _ portssvc.OverviewSvc = (*overviewService)(nil)

func (s *overviewService) GetSnapshot(ctx context.Context, asOf time.Time) (*domain.Snapshot, error) {
	inputs, err := loadSnapshotInputs(ctx, s.projectRepo, s.expenseRepo, s.paymentRepo)
	if err != nil {
		return nil, err
	}

	settings, err := s.settingsSvc.GetSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	usnRate := decimal.Zero
	if settings.UsnMode == domain.UsnOperational {
		usnRate = settings.UsnRatePercent
	}

	snapshot := finance.BuildSnapshot(inputs, asOf, usnRate)
	return &snapshot, nil
}

// loadSnapshotInputs prefetches every project with its resolved rows and
// payments. Closed projects are included; the builder's active-at filter
// decides what counts for a given date.
func loadSnapshotInputs(
	ctx context.Context,
	projectRepo portsrepo.ProjectReader,
	expenseRepo portsrepo.ExpenseRepositoryFacade,
	paymentRepo portsrepo.PaymentRepositoryFacade,
) ([]finance.ProjectSnapshotInput, error) {
	projects, err := projectRepo.ListProjects(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	inputs := make([]finance.ProjectSnapshotInput, 0, len(projects))
	for _, project := range projects {
		items, err := expenseRepo.ListItemsByProject(ctx, project.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list items for project %d: %w", project.ID, err)
		}
		adjustments, err := expenseRepo.ListAdjustmentsByProject(ctx, project.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list adjustments for project %d: %w", project.ID, err)
		}
		facts, err := paymentRepo.ListFactsByProject(ctx, project.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list facts for project %d: %w", project.ID, err)
		}
		plans, err := paymentRepo.ListPlansByProject(ctx, project.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list plans for project %d: %w", project.ID, err)
		}
		inputs = append(inputs, finance.ProjectSnapshotInput{
			Project: project,
			Rows:    finance.ResolveEffectiveRows(items, domain.DiscountsFromAdjustments(adjustments)),
			Facts:   facts,
			Plans:   plans,
		})
	}
	return inputs, nil
}
