package mapping

import (
	"github.com/muhapauka-rgb/CXEMA-V7/internal/core/domain"
	"github.com/muhapauka-rgb/CXEMA-V7/internal/models"
)

// ToModelAppSettings converts domain AppSettings to its model
func ToModelAppSettings(d domain.AppSettings) models.AppSettings {
	return models.AppSettings{
		ID:              d.ID,
		UsnMode:         string(d.UsnMode),
		UsnRatePercent:  d.UsnRatePercent,
		BackupFrequency: string(d.BackupFrequency),
		LastBackupAt:    d.LastBackupAt,
		UpdatedAt:       d.UpdatedAt,
	}
}

// ToDomainAppSettings converts model AppSettings to its domain form
func ToDomainAppSettings(m models.AppSettings) domain.AppSettings {
	return domain.AppSettings{
		ID:              m.ID,
		UsnMode:         domain.UsnMode(m.UsnMode),
		UsnRatePercent:  m.UsnRatePercent,
		BackupFrequency: domain.BackupFrequency(m.BackupFrequency),
		LastBackupAt:    m.LastBackupAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

// ToModelGoogleSheetLink converts a domain GoogleSheetLink to its model
func ToModelGoogleSheetLink(d domain.GoogleSheetLink) models.GoogleSheetLink {
	return models.GoogleSheetLink{
		ID:              d.ID,
		ProjectID:       d.ProjectID,
		SpreadsheetID:   d.SpreadsheetID,
		SheetTabName:    d.SheetTabName,
		LastPublishedAt: d.LastPublishedAt,
		LastImportedAt:  d.LastImportedAt,
	}
}

// ToDomainGoogleSheetLink converts a model GoogleSheetLink to its domain form
func ToDomainGoogleSheetLink(m models.GoogleSheetLink) domain.GoogleSheetLink {
	return domain.GoogleSheetLink{
		ID:              m.ID,
		ProjectID:       m.ProjectID,
		SpreadsheetID:   m.SpreadsheetID,
		SheetTabName:    m.SheetTabName,
		LastPublishedAt: m.LastPublishedAt,
		LastImportedAt:  m.LastImportedAt,
	}
}
