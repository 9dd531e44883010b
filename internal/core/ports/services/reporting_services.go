package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/muhapauka-rgb/CXEMA-V7/internal/core/domain"
	"github.com/muhapauka-rgb/CXEMA-V7/internal/dto"
)

// OverviewSvc produces the as-of-date portfolio snapshot.
type OverviewSvc interface {
	// GetSnapshot rolls up every active project as of the given day.
	GetSnapshot(ctx context.Context, asOf time.Time) (*domain.Snapshot, error)
}

// LifeSvc projects pocket inflows onto a personal-draw target.
type LifeSvc interface {
	// GetLifeCoverage answers how much of selectedMonth's target the
	// accumulated pocket income covers and from which buckets.
	GetLifeCoverage(ctx context.Context, selectedMonth domain.MonthKey, targetAmount decimal.Decimal) (*domain.LifeCoverage, error)
}

// DiscountSvc reports granted discounts across projects.
type DiscountSvc interface {
	// GetDiscountSummary lists effective rows with nonzero discounts due
	// by asOf, grouped by counterparty.
	GetDiscountSummary(ctx context.Context, asOf time.Time) (*dto.DiscountSummaryResponse, error)
}

// EstimateSvc renders the printable estimate payload.
type EstimateSvc interface {
	// GetEstimate builds the estimate rows, plan rows and totals of a project.
	GetEstimate(ctx context.Context, projectID int64) (*dto.EstimateResponse, error)
}
