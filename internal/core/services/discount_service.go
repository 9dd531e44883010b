package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/muhapauka-rgb/CXEMA-V7/internal/core/domain"
	"github.com/muhapauka-rgb/CXEMA-V7/internal/core/finance"
	portsrepo "github.com/muhapauka-rgb/CXEMA-V7/internal/core/ports/repositories"
	portssvc "github.com/muhapauka-rgb/CXEMA-V7/internal/core/ports/services"
	"github.com/muhapauka-rgb/CXEMA-V7/internal/dto"
)

// unknownCounterparty labels rows of projects without a client name.
const unknownCounterparty = "Без контрагента"

// discountService reports granted discounts across projects, grouped by
// counterparty.
type discountService struct {
	BaseService
	projectRepo portsrepo.ProjectReader
	expenseRepo portsrepo.ExpenseRepositoryFacade
}

// NewDiscountService creates a new discount reporting service.
func NewDiscountService(projectRepo portsrepo.ProjectReader, expenseRepo portsrepo.ExpenseRepositoryFacade) portssvc.DiscountSvc {
	return &discountService{projectRepo: projectRepo, expenseRepo: expenseRepo}
}

var _ portssvc.DiscountSvc = (*discountService)(nil)

func (s *discountService) GetDiscountSummary(ctx context.Context, asOf time.Time) (*dto.DiscountSummaryResponse, error) {
	projects, err := s.projectRepo.ListProjects(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	cutoff := domain.DateOnly(asOf)
	groups := map[string]*dto.DiscountGroupResponse{}
	total := decimal.Zero

	// Closed projects stay in the report; a discount once granted does not
	// expire with the project.
	for _, project := range projects {
		items, err := s.expenseRepo.ListItemsByProject(ctx, project.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list items for project %d: %w", project.ID, err)
		}
		adjustments, err := s.expenseRepo.ListAdjustmentsByProject(ctx, project.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list adjustments for project %d: %w", project.ID, err)
		}
		rows := finance.ResolveEffectiveRows(items, domain.DiscountsFromAdjustments(adjustments))

		for _, row := range rows {
			if row.DiscountTotal.IsZero() {
				continue
			}
			due := project.CreatedDate()
			if row.DueDate != nil {
				due = domain.DateOnly(*row.DueDate)
			}
			if due.After(cutoff) {
				continue
			}

			counterparty := unknownCounterparty
			if project.ClientName != nil && *project.ClientName != "" {
				counterparty = *project.ClientName
			}
			group := groups[counterparty]
			if group == nil {
				group = &dto.DiscountGroupResponse{Counterparty: counterparty, DiscountTotal: decimal.Zero}
				groups[counterparty] = group
			}

			dueStr := due.Format("2006-01-02")
			group.Rows = append(group.Rows, dto.DiscountRowResponse{
				ProjectID:     project.ID,
				ProjectTitle:  project.Title,
				ItemTitle:     row.Item.Title,
				DueDate:       &dueStr,
				BaseTotal:     row.BaseTotal.Round(2),
				DiscountTotal: row.DiscountTotal.Round(2),
			})
			group.DiscountTotal = group.DiscountTotal.Add(row.DiscountTotal)
			total = total.Add(row.DiscountTotal)
		}
	}

	out := &dto.DiscountSummaryResponse{
		AsOf:          cutoff.Format("2006-01-02"),
		DiscountTotal: total.Round(2),
		Groups:        make([]dto.DiscountGroupResponse, 0, len(groups)),
	}
	for _, group := range groups {
		group.DiscountTotal = group.DiscountTotal.Round(2)
		out.Groups = append(out.Groups, *group)
	}
	sort.Slice(out.Groups, func(i, j int) bool { return out.Groups[i].Counterparty < out.Groups[j].Counterparty })
	return out, nil
}
