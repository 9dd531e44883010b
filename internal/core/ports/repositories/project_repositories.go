package repositories

import (
	"context"
	"time"

	"github.com/muhapauka-rgb/CXEMA-V7/internal/core/domain"
)

// ProjectReader defines read operations for project data
type ProjectReader interface {
	// FindProjectByID retrieves a specific project by its identifier.
	FindProjectByID(ctx context.Context, projectID int64) (*domain.Project, error)

	// ListProjects retrieves every project, optionally including closed ones.
	ListProjects(ctx context.Context, includeClosed bool) ([]domain.Project, error)
}

// ProjectWriter defines write operations for project data
type ProjectWriter interface {
	// SaveProjectWithGroups persists a new project and its starter expense
	// groups within a single database transaction. The groups are attached
	// to the freshly assigned project id.
	SaveProjectWithGroups(ctx context.Context, project domain.Project, groups []domain.ExpenseGroup) (domain.Project, error)

	// UpdateProject updates an existing project's details.
	UpdateProject(ctx context.Context, project domain.Project) error

	// CloseProject marks a project closed as of the given day.
	CloseProject(ctx context.Context, projectID int64, closedAt time.Time) error

	// DeleteProject removes a project and, via cascades, everything under it.
	DeleteProject(ctx context.Context, projectID int64) error
}

// ProjectRepositoryFacade combines all project-related repository interfaces
type ProjectRepositoryFacade interface {
	ProjectReader
	ProjectWriter
}

// ProjectRepositoryWithTx extends ProjectRepositoryFacade with transaction capabilities
type ProjectRepositoryWithTx interface {
	ProjectRepositoryFacade
	TransactionManager
}
