package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/muhapauka-rgb/CXEMA-V7/internal/apperrors"
	"github.com/muhapauka-rgb/CXEMA-V7/internal/core/domain"
	"github.com/muhapauka-rgb/CXEMA-V7/internal/core/finance"
	portsrepo "github.com/muhapauka-rgb/CXEMA-V7/internal/core/ports/repositories"
	portssvc "github.com/muhapauka-rgb/CXEMA-V7/internal/core/ports/services"
	"github.com/muhapauka-rgb/CXEMA-V7/internal/dto"
)

// defaultGroupNames are seeded onto every new project in this order.
var defaultGroupNames = []string{"Стройка", "Команда", "Дизайн"}

// projectService provides project CRUD and the computed financial views.
type projectService struct {
	BaseService
	projectRepo portsrepo.ProjectRepositoryFacade
	expenseRepo portsrepo.ExpenseRepositoryFacade
}

// NewProjectService creates a new project service.
func NewProjectService(projectRepo portsrepo.ProjectRepositoryFacade, expenseRepo portsrepo.ExpenseRepositoryFacade) portssvc.ProjectSvcFacade {
	return &projectService{projectRepo: projectRepo, expenseRepo: expenseRepo}
}

var _ portssvc.ProjectSvcFacade = (*projectService)(nil)

func (s *projectService) GetProjectByID(ctx context.Context, projectID int64) (*domain.Project, error) {
	project, err := s.projectRepo.FindProjectByID(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get project %d: %w", projectID, err)
	}
	return project, nil
}

func (s *projectService) ListProjects(ctx context.Context, includeClosed bool) ([]domain.Project, error) {
	projects, err := s.projectRepo.ListProjects(ctx, includeClosed)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	if projects == nil {
		return []domain.Project{}, nil
	}
	return projects, nil
}

func (s *projectService) GetProjectFinancials(ctx context.Context, projectID int64) (domain.ProjectFinancials, error) {
	project, err := s.projectRepo.FindProjectByID(ctx, projectID)
	if err != nil {
		return domain.ProjectFinancials{}, fmt.Errorf("failed to get project %d: %w", projectID, err)
	}
	rows, err := s.loadEffectiveRows(ctx, projectID)
	if err != nil {
		return domain.ProjectFinancials{}, err
	}
	return finance.AggregateProjectFinancials(project, rows), nil
}

func (s *projectService) GetEffectiveRows(ctx context.Context, projectID int64) ([]domain.EffectiveRow, error) {
	if _, err := s.projectRepo.FindProjectByID(ctx, projectID); err != nil {
		return nil, fmt.Errorf("failed to get project %d: %w", projectID, err)
	}
	return s.loadEffectiveRows(ctx, projectID)
}

// loadEffectiveRows fetches a project's items and adjustments and resolves
// them into accounting rows.
func (s *projectService) loadEffectiveRows(ctx context.Context, projectID int64) ([]domain.EffectiveRow, error) {
	items, err := s.expenseRepo.ListItemsByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list items for project %d: %w", projectID, err)
	}
	adjustments, err := s.expenseRepo.ListAdjustmentsByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list adjustments for project %d: %w", projectID, err)
	}
	return finance.ResolveEffectiveRows(items, domain.DiscountsFromAdjustments(adjustments)), nil
}

func (s *projectService) CreateProject(ctx context.Context, req dto.CreateProjectRequest) (*domain.Project, error) {
	now := time.Now()
	project := domain.Project{
		Title:                      req.Title,
		ClientName:                 req.ClientName,
		ClientEmail:                req.ClientEmail,
		ClientPhone:                req.ClientPhone,
		GoogleDriveURL:             req.GoogleDriveURL,
		ProjectPriceTotal:          decimal.Zero,
		ExpectedFromClientTotal:    decimal.Zero,
		AgencyFeePercent:           decimal.Zero,
		AgencyFeeIncludeInEstimate: req.AgencyFeeIncludeInEstimate,
		CreatedAt:                  now,
		UpdatedAt:                  now,
	}
	if req.ProjectPriceTotal != nil {
		project.ProjectPriceTotal = *req.ProjectPriceTotal
	}
	if req.ExpectedFromClientTotal != nil {
		project.ExpectedFromClientTotal = *req.ExpectedFromClientTotal
	}
	if req.AgencyFeePercent != nil {
		if err := validateFeePercent(*req.AgencyFeePercent); err != nil {
			return nil, err
		}
		project.AgencyFeePercent = *req.AgencyFeePercent
	}

	groups := make([]domain.ExpenseGroup, len(defaultGroupNames))
	for i, name := range defaultGroupNames {
		groups[i] = domain.ExpenseGroup{Name: name, SortOrder: i}
	}
	// The project and its starter groups land atomically, so no project can
	// exist with a partial group set.
	saved, err := s.projectRepo.SaveProjectWithGroups(ctx, project, groups)
	if err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	s.LogInfo(ctx, "project created", slog.Int64("project_id", saved.ID))
	return &saved, nil
}

func (s *projectService) UpdateProject(ctx context.Context, projectID int64, req dto.UpdateProjectRequest) (*domain.Project, error) {
	project, err := s.projectRepo.FindProjectByID(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get project %d: %w", projectID, err)
	}

	if req.Title != nil {
		project.Title = *req.Title
	}
	if req.ClientName != nil {
		project.ClientName = req.ClientName
	}
	if req.ClientEmail != nil {
		project.ClientEmail = req.ClientEmail
	}
	if req.ClientPhone != nil {
		project.ClientPhone = req.ClientPhone
	}
	if req.GoogleDriveURL != nil {
		project.GoogleDriveURL = req.GoogleDriveURL
	}
	if req.ProjectPriceTotal != nil {
		project.ProjectPriceTotal = *req.ProjectPriceTotal
	}
	if req.ExpectedFromClientTotal != nil {
		project.ExpectedFromClientTotal = *req.ExpectedFromClientTotal
	}
	if req.AgencyFeePercent != nil {
		if err := validateFeePercent(*req.AgencyFeePercent); err != nil {
			return nil, err
		}
		project.AgencyFeePercent = *req.AgencyFeePercent
	}
	if req.AgencyFeeIncludeInEstimate != nil {
		project.AgencyFeeIncludeInEstimate = *req.AgencyFeeIncludeInEstimate
	}
	project.UpdatedAt = time.Now()

	if err := s.projectRepo.UpdateProject(ctx, *project); err != nil {
		return nil, fmt.Errorf("failed to update project %d: %w", projectID, err)
	}
	return project, nil
}

func (s *projectService) CloseProject(ctx context.Context, projectID int64, closedAt *time.Time) error {
	project, err := s.projectRepo.FindProjectByID(ctx, projectID)
	if err != nil {
		return fmt.Errorf("failed to get project %d: %w", projectID, err)
	}
	if project.ClosedAt != nil {
		return fmt.Errorf("project %d is already closed: %w", projectID, apperrors.ErrConflict)
	}

	day := domain.DateOnly(time.Now())
	if closedAt != nil {
		day = domain.DateOnly(*closedAt)
	}
	if day.Before(project.CreatedDate()) {
		return fmt.Errorf("closing date precedes project creation: %w", apperrors.ErrValidation)
	}

	if err := s.projectRepo.CloseProject(ctx, projectID, day); err != nil {
		return fmt.Errorf("failed to close project %d: %w", projectID, err)
	}
	s.LogInfo(ctx, "project closed", slog.Int64("project_id", projectID), slog.String("closed_at", day.Format("2006-01-02")))
	return nil
}

func (s *projectService) DeleteProject(ctx context.Context, projectID int64) error {
	if err := s.projectRepo.DeleteProject(ctx, projectID); err != nil {
		return fmt.Errorf("failed to delete project %d: %w", projectID, err)
	}
	s.LogInfo(ctx, "project deleted", slog.Int64("project_id", projectID))
	return nil
}

func validateFeePercent(p decimal.Decimal) error {
	if p.IsNegative() || p.GreaterThan(decimal.NewFromInt(100)) {
		return fmt.Errorf("agency fee percent must be within 0..100: %w", apperrors.ErrValidation)
	}
	return nil
}
