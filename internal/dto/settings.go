package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/muhapauka-rgb/CXEMA-V7/internal/core/domain"
)

// UpdateSettingsRequest defines the partial update payload for the global
// settings row.
type UpdateSettingsRequest struct {
	UsnMode         *string          `json:"usnMode"`
	UsnRatePercent  *decimal.Decimal `json:"usnRatePercent"`
	BackupFrequency *string          `json:"backupFrequency"`
}

// SettingsResponse defines the data returned for the global settings row.
type SettingsResponse struct {
	UsnMode         string          `json:"usnMode"`
	UsnRatePercent  decimal.Decimal `json:"usnRatePercent"`
	BackupFrequency string          `json:"backupFrequency"`
	LastBackupAt    *time.Time      `json:"lastBackupAt"`
}

// BackupRunResponse reports the outcome of a backup run.
type BackupRunResponse struct {
	File      string    `json:"file"`
	RanAt     time.Time `json:"ranAt"`
	Pruned    int       `json:"pruned"`
	Triggered string    `json:"triggered"` // manual or scheduled
}

// ToSettingsResponse converts a domain.AppSettings to SettingsResponse DTO
func ToSettingsResponse(s *domain.AppSettings) SettingsResponse {
	return SettingsResponse{
		UsnMode:         string(s.UsnMode),
		UsnRatePercent:  s.UsnRatePercent,
		BackupFrequency: string(s.BackupFrequency),
		LastBackupAt:    s.LastBackupAt,
	}
}
