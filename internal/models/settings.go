package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AppSettings mirrors the single row of the app_settings table.
type AppSettings struct {
	ID              int64           `json:"id"`
	UsnMode         string          `json:"usnMode"`
	UsnRatePercent  decimal.Decimal `json:"usnRatePercent"`
	BackupFrequency string          `json:"backupFrequency"`
	LastBackupAt    *time.Time      `json:"lastBackupAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// GoogleSheetLink mirrors a row of the google_sheet_links table.
type GoogleSheetLink struct {
	ID              int64      `json:"id"`
	ProjectID       int64      `json:"projectID"`
	SpreadsheetID   string     `json:"spreadsheetID"`
	SheetTabName    string     `json:"sheetTabName"`
	LastPublishedAt *time.Time `json:"lastPublishedAt"`
	LastImportedAt  *time.Time `json:"lastImportedAt"`
}
