// Package sheets holds the spreadsheet sync backends: a Google Sheets
// client for production and a filesystem mock for local work. Both speak
// the same flat row shape keyed by stable item ids, so the sync service
// can diff sheet content against stored items without knowing which
// backend produced it.
package sheets

import (
	"context"

	"github.com/shopspring/decimal"
)

// Row is one estimate line as it appears on a sheet tab.
type Row struct {
	StableItemID string          `json:"stableItemID"`
	GroupName    string          `json:"groupName"`
	Title        string          `json:"title"`
	Qty          string          `json:"qty"`
	UnitPrice    string          `json:"unitPrice"`
	Amount       decimal.Decimal `json:"amount"`
	Note         string          `json:"note"`
}

// Syncer pushes estimate rows to a spreadsheet tab and reads them back.
type Syncer interface {
	// WriteRows replaces the tab's content with the given rows.
	WriteRows(ctx context.Context, spreadsheetID, tabName string, rows []Row) error

	// ReadRows reads the tab's current rows.
	ReadRows(ctx context.Context, spreadsheetID, tabName string) ([]Row, error)
}
