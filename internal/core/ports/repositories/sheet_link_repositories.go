package repositories

import (
	"context"
	"time"

	"github.com/muhapauka-rgb/CXEMA-V7/internal/core/domain"
)

// SheetLinkReader defines read operations for sheet links
type SheetLinkReader interface {
	// FindLinkByProject retrieves the spreadsheet link of a project,
	// ErrNotFound when the project is not linked.
	FindLinkByProject(ctx context.Context, projectID int64) (*domain.GoogleSheetLink, error)
}

// SheetLinkWriter defines write operations for sheet links
type SheetLinkWriter interface {
	// UpsertLink creates or replaces a project's spreadsheet link.
	UpsertLink(ctx context.Context, link domain.GoogleSheetLink) (domain.GoogleSheetLink, error)

	// TouchPublished records a successful publication.
	TouchPublished(ctx context.Context, projectID int64, at time.Time) error

	// TouchImported records a successful import.
	TouchImported(ctx context.Context, projectID int64, at time.Time) error

	// DeleteLink unlinks a project from its spreadsheet.
	DeleteLink(ctx context.Context, projectID int64) error
}

// SheetLinkRepositoryFacade combines the sheet link repository interfaces
type SheetLinkRepositoryFacade interface {
	SheetLinkReader
	SheetLinkWriter
}

// SheetLinkRepositoryWithTx extends SheetLinkRepositoryFacade with transaction capabilities
type SheetLinkRepositoryWithTx interface {
	SheetLinkRepositoryFacade
	TransactionManager
}
