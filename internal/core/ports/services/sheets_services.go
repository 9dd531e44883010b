package services

import (
	"context"

	"github.com/muhapauka-rgb/CXEMA-V7/internal/dto"
)

// SheetsSvc synchronizes a project's estimate with an external spreadsheet.
type SheetsSvc interface {
	// GetStatus reports whether and where a project is published.
	GetStatus(ctx context.Context, projectID int64) (*dto.SheetStatusResponse, error)

	// LinkSheet ties a project to a spreadsheet tab.
	LinkSheet(ctx context.Context, projectID int64, req dto.LinkSheetRequest) (*dto.SheetStatusResponse, error)

	// Publish pushes the project's estimate rows to the linked sheet.
	Publish(ctx context.Context, projectID int64) (*dto.PublishSheetResponse, error)

	// PreviewImport diffs the linked sheet against stored items and hands
	// out a short-lived confirm token.
	PreviewImport(ctx context.Context, projectID int64) (*dto.ImportPreviewResponse, error)

	// ApplyImport consumes a confirm token and writes the previewed changes.
	ApplyImport(ctx context.Context, projectID int64, req dto.ImportApplyRequest) (*dto.ImportApplyResponse, error)
}

// AuthSvc authenticates the operator.
type AuthSvc interface {
	// LoginWithPin verifies the operator PIN and issues a session token.
	LoginWithPin(ctx context.Context, pin string) (*dto.LoginResponse, error)
}
