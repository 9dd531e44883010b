package services

import (
	"context"
	"time"

	"github.com/muhapauka-rgb/CXEMA-V7/internal/core/domain"
	"github.com/muhapauka-rgb/CXEMA-V7/internal/dto"
)

// ProjectReaderSvc defines read operations for projects
type ProjectReaderSvc interface {
	// GetProjectByID retrieves a specific project.
	GetProjectByID(ctx context.Context, projectID int64) (*domain.Project, error)

	// ListProjects retrieves every project, optionally including closed ones.
	ListProjects(ctx context.Context, includeClosed bool) ([]domain.Project, error)

	// GetProjectFinancials computes the lifetime totals of a project.
	GetProjectFinancials(ctx context.Context, projectID int64) (domain.ProjectFinancials, error)

	// GetEffectiveRows resolves a project's expense items into effective
	// accounting rows.
	GetEffectiveRows(ctx context.Context, projectID int64) ([]domain.EffectiveRow, error)
}

// ProjectWriterSvc defines write operations for projects
type ProjectWriterSvc interface {
	// CreateProject persists a new project with its default expense groups.
	CreateProject(ctx context.Context, req dto.CreateProjectRequest) (*domain.Project, error)

	// UpdateProject applies a partial update to a project.
	UpdateProject(ctx context.Context, projectID int64, req dto.UpdateProjectRequest) (*domain.Project, error)

	// CloseProject marks a project closed as of the given day (today when nil).
	CloseProject(ctx context.Context, projectID int64, closedAt *time.Time) error

	// DeleteProject removes a project and everything under it.
	DeleteProject(ctx context.Context, projectID int64) error
}

// ProjectSvcFacade combines all project-related service interfaces
type ProjectSvcFacade interface {
	ProjectReaderSvc
	ProjectWriterSvc
}
