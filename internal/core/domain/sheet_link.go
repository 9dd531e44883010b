package domain

import "time"

// GoogleSheetLink ties a project to the spreadsheet its estimate is
// published to.
type GoogleSheetLink struct {
	ID              int64      `json:"id"`
	ProjectID       int64      `json:"projectID"`
	SpreadsheetID   string     `json:"spreadsheetID"`
	SheetTabName    string     `json:"sheetTabName"`
	LastPublishedAt *time.Time `json:"lastPublishedAt"`
	LastImportedAt  *time.Time `json:"lastImportedAt"`
}
