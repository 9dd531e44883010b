package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/muhapauka-rgb/CXEMA-V7/internal/apperrors"
	"github.com/muhapauka-rgb/CXEMA-V7/internal/core/domain"
	portsrepo "github.com/muhapauka-rgb/CXEMA-V7/internal/core/ports/repositories"
	portssvc "github.com/muhapauka-rgb/CXEMA-V7/internal/core/ports/services"
	"github.com/muhapauka-rgb/CXEMA-V7/internal/dto"
)

// settingsService manages the single global settings row.
type settingsService struct {
	BaseService
	settingsRepo portsrepo.SettingsRepositoryFacade
}

// NewSettingsService creates a new settings service.
func NewSettingsService(settingsRepo portsrepo.SettingsRepositoryFacade) portssvc.SettingsSvc {
	return &settingsService{settingsRepo: settingsRepo}
}

var _ portssvc.SettingsSvc = (*settingsService)(nil)

// defaultSettings is the row seeded on first access.
func defaultSettings() domain.AppSettings {
	return domain.AppSettings{
		UsnMode:         domain.UsnOperational,
		UsnRatePercent:  decimal.NewFromInt(6),
		BackupFrequency: domain.BackupWeekly,
		UpdatedAt:       time.Now(),
	}
}

func (s *settingsService) GetSettings(ctx context.Context) (*domain.AppSettings, error) {
	settings, err := s.settingsRepo.FindSettings(ctx)
	if err == nil {
		return settings, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	created, err := s.settingsRepo.SaveSettings(ctx, defaultSettings())
	if err != nil {
		return nil, fmt.Errorf("failed to seed settings: %w", err)
	}
	s.LogInfo(ctx, "settings row seeded with defaults")
	return &created, nil
}

func (s *settingsService) UpdateSettings(ctx context.Context, req dto.UpdateSettingsRequest) (*domain.AppSettings, error) {
	settings, err := s.GetSettings(ctx)
	if err != nil {
		return nil, err
	}

	if req.UsnMode != nil {
		mode, err := domain.ParseUsnMode(*req.UsnMode)
		if err != nil {
			return nil, err
		}
		settings.UsnMode = mode
	}
	if req.UsnRatePercent != nil {
		if req.UsnRatePercent.IsNegative() || req.UsnRatePercent.GreaterThan(decimal.NewFromInt(100)) {
			return nil, fmt.Errorf("usn rate must be within 0..100: %w", apperrors.ErrValidation)
		}
		settings.UsnRatePercent = *req.UsnRatePercent
	}
	if req.BackupFrequency != nil {
		freq, err := domain.ParseBackupFrequency(*req.BackupFrequency)
		if err != nil {
			return nil, err
		}
		settings.BackupFrequency = freq
	}
	settings.UpdatedAt = time.Now()

	if err := s.settingsRepo.UpdateSettings(ctx, *settings); err != nil {
		return nil, fmt.Errorf("failed to update settings: %w", err)
	}
	return settings, nil
}
