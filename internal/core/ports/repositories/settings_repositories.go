package repositories

import (
	"context"
	"time"

	"github.com/muhapauka-rgb/CXEMA-V7/internal/core/domain"
)

// SettingsReader defines read operations for the global settings row
type SettingsReader interface {
	// FindSettings retrieves the singleton settings row, ErrNotFound when
	// it has never been created.
	FindSettings(ctx context.Context) (*domain.AppSettings, error)
}

// SettingsWriter defines write operations for the global settings row
type SettingsWriter interface {
	// SaveSettings creates the singleton settings row.
	SaveSettings(ctx context.Context, settings domain.AppSettings) (domain.AppSettings, error)

	// UpdateSettings replaces the singleton settings row's values.
	UpdateSettings(ctx context.Context, settings domain.AppSettings) error

	// TouchLastBackup records when the latest backup completed.
	TouchLastBackup(ctx context.Context, at time.Time) error
}

// SettingsRepositoryFacade combines the settings repository interfaces
type SettingsRepositoryFacade interface {
	SettingsReader
	SettingsWriter
}

// SettingsRepositoryWithTx extends SettingsRepositoryFacade with transaction capabilities
type SettingsRepositoryWithTx interface {
	SettingsRepositoryFacade
	TransactionManager
}
