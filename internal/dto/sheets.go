package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/muhapauka-rgb/CXEMA-V7/internal/core/domain"
)

// LinkSheetRequest ties a project to a spreadsheet tab.
type LinkSheetRequest struct {
	SpreadsheetID string `json:"spreadsheetID" binding:"required"`
	SheetTabName  string `json:"sheetTabName" binding:"required"`
}

// SheetStatusResponse reports whether and where a project is published.
type SheetStatusResponse struct {
	Linked          bool       `json:"linked"`
	SpreadsheetID   string     `json:"spreadsheetID,omitempty"`
	SheetTabName    string     `json:"sheetTabName,omitempty"`
	LastPublishedAt *time.Time `json:"lastPublishedAt,omitempty"`
	LastImportedAt  *time.Time `json:"lastImportedAt,omitempty"`
}

// PublishSheetResponse reports the outcome of pushing estimate rows out.
type PublishSheetResponse struct {
	RowsWritten int       `json:"rowsWritten"`
	PublishedAt time.Time `json:"publishedAt"`
}

// SheetRowChange is one detected difference between a sheet row and the
// stored item, keyed by the stable item id.
type SheetRowChange struct {
	StableItemID string           `json:"stableItemID"`
	Field        string           `json:"field"`
	OldValue     string           `json:"oldValue"`
	NewValue     string           `json:"newValue"`
	NewAmount    *decimal.Decimal `json:"newAmount,omitempty"`
}

// ImportPreviewResponse lists pending changes and the token that applies
// them before it expires.
type ImportPreviewResponse struct {
	ConfirmToken string           `json:"confirmToken"`
	ExpiresAt    time.Time        `json:"expiresAt"`
	Changes      []SheetRowChange `json:"changes"`
}

// ImportApplyRequest consumes a preview token.
type ImportApplyRequest struct {
	ConfirmToken string `json:"confirmToken" binding:"required"`
}

// ImportApplyResponse reports how many changes were written.
type ImportApplyResponse struct {
	Applied    int       `json:"applied"`
	ImportedAt time.Time `json:"importedAt"`
}

// ToSheetStatusResponse converts a link (possibly absent) to the status DTO.
func ToSheetStatusResponse(link *domain.GoogleSheetLink) SheetStatusResponse {
	if link == nil {
		return SheetStatusResponse{Linked: false}
	}
	return SheetStatusResponse{
		Linked:          true,
		SpreadsheetID:   link.SpreadsheetID,
		SheetTabName:    link.SheetTabName,
		LastPublishedAt: link.LastPublishedAt,
		LastImportedAt:  link.LastImportedAt,
	}
}
