package services

import (
	"context"

	"github.com/muhapauka-rgb/CXEMA-V7/internal/core/domain"
	"github.com/muhapauka-rgb/CXEMA-V7/internal/dto"
)

// SettingsSvc manages the global settings row.
type SettingsSvc interface {
	// GetSettings retrieves the singleton settings row, creating it with
	// defaults on first access.
	GetSettings(ctx context.Context) (*domain.AppSettings, error)

	// UpdateSettings applies a validated partial update.
	UpdateSettings(ctx context.Context, req dto.UpdateSettingsRequest) (*domain.AppSettings, error)
}

// BackupSvc runs and schedules JSON data dumps.
type BackupSvc interface {
	// RunBackup dumps all data to a timestamped file and prunes old dumps.
	RunBackup(ctx context.Context, manual bool) (*dto.BackupRunResponse, error)

	// RunIfDue runs a backup when the configured cadence says one is due.
	RunIfDue(ctx context.Context) (bool, error)

	// StartScheduler polls RunIfDue until the context is cancelled.
	StartScheduler(ctx context.Context)
}
