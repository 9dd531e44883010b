package services

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/muhapauka-rgb/CXEMA-V7/internal/apperrors"
	"github.com/muhapauka-rgb/CXEMA-V7/internal/core/domain"
	"github.com/muhapauka-rgb/CXEMA-V7/internal/core/finance"
	portsrepo "github.com/muhapauka-rgb/CXEMA-V7/internal/core/ports/repositories"
	portssvc "github.com/muhapauka-rgb/CXEMA-V7/internal/core/ports/services"
)

// lifeService projects accumulated pocket inflows onto a monthly
// personal-draw target.
type lifeService struct {
	BaseService
	projectRepo portsrepo.ProjectReader
	expenseRepo portsrepo.ExpenseRepositoryFacade
	paymentRepo portsrepo.PaymentRepositoryFacade
}

// NewLifeService creates a new life coverage service.
func NewLifeService(
	projectRepo portsrepo.ProjectReader,
	expenseRepo portsrepo.ExpenseRepositoryFacade,
	paymentRepo portsrepo.PaymentRepositoryFacade,
) portssvc.LifeSvc {
	return &lifeService{projectRepo: projectRepo, expenseRepo: expenseRepo, paymentRepo: paymentRepo}
}

var _ portssvc.LifeSvc = (*lifeService)(nil)

func (s *lifeService) GetLifeCoverage(ctx context.Context, selectedMonth domain.MonthKey, targetAmount decimal.Decimal) (*domain.LifeCoverage, error) {
	if targetAmount.IsNegative() {
		return nil, fmt.Errorf("target amount must not be negative: %w", apperrors.ErrValidation)
	}

	inputs, err := loadSnapshotInputs(ctx, s.projectRepo, s.expenseRepo, s.paymentRepo)
	if err != nil {
		return nil, err
	}

	// Inflows live strictly before the selected month, so running each
	// project's allocation once, cut off at the source window's end, gives
	// every month's pocket buckets in one pass.
	horizon := selectedMonth.Prev().End()
	projects := make(map[int64]domain.Project, len(inputs))
	inflows := map[domain.MonthKey]map[int64]decimal.Decimal{}
	for _, in := range inputs {
		projects[in.Project.ID] = in.Project
		monthly := finance.AllocateCash(in.Project, in.Facts, in.Plans, in.Rows, horizon)
		for month, bucket := range monthly {
			if !bucket.InPocket.IsPositive() {
				continue
			}
			byProject := inflows[month]
			if byProject == nil {
				byProject = map[int64]decimal.Decimal{}
				inflows[month] = byProject
			}
			byProject[in.Project.ID] = byProject[in.Project.ID].Add(bucket.InPocket)
		}
	}

	coverage := finance.ProjectLifeCoverage(inflows, projects, targetAmount, selectedMonth)
	return &coverage, nil
}
