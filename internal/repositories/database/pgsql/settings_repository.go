package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/muhapauka-rgb/CXEMA-V7/internal/apperrors"
	"github.com/muhapauka-rgb/CXEMA-V7/internal/core/domain"
	portsrepo "github.com/muhapauka-rgb/CXEMA-V7/internal/core/ports/repositories"
	"github.com/muhapauka-rgb/CXEMA-V7/internal/models"
	"github.com/muhapauka-rgb/CXEMA-V7/internal/utils/mapping"
)

type PgxSettingsRepository struct {
	BaseRepository
}

// newPgxSettingsRepository creates a new repository for the single global
// settings row.
func newPgxSettingsRepository(pool *pgxpool.Pool) portsrepo.SettingsRepositoryWithTx {
	return &PgxSettingsRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.SettingsRepositoryWithTx = (*PgxSettingsRepository)(nil)

const settingsColumns = `id, usn_mode, usn_rate_percent, backup_frequency, last_backup_at, updated_at`

func scanSettingsRow(row pgx.Row) (models.AppSettings, error) {
	var m models.AppSettings
	err := row.Scan(&m.ID, &m.UsnMode, &m.UsnRatePercent, &m.BackupFrequency, &m.LastBackupAt, &m.UpdatedAt)
	return m, err
}

// FindSettings retrieves the singleton settings row.
func (r *PgxSettingsRepository) FindSettings(ctx context.Context) (*domain.AppSettings, error) {
	query := `SELECT ` + settingsColumns + ` FROM app_settings WHERE id = 1;`
	m, err := scanSettingsRow(r.Pool.QueryRow(ctx, query))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find settings: %w", err)
	}
	d := mapping.ToDomainAppSettings(m)
	return &d, nil
}

// SaveSettings creates the singleton settings row. A second create loses
// the race to the existing row and returns it unchanged.
func (r *PgxSettingsRepository) SaveSettings(ctx context.Context, settings domain.AppSettings) (domain.AppSettings, error) {
	m := mapping.ToModelAppSettings(settings)
	query := `
		INSERT INTO app_settings (id, usn_mode, usn_rate_percent, backup_frequency, last_backup_at, updated_at)
		VALUES (1, $1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET id = app_settings.id
		RETURNING ` + settingsColumns + `;
	`
	saved, err := scanSettingsRow(r.Pool.QueryRow(ctx, query,
		m.UsnMode, m.UsnRatePercent, m.BackupFrequency, m.LastBackupAt, m.UpdatedAt))
	if err != nil {
		return domain.AppSettings{}, fmt.Errorf("failed to save settings: %w", err)
	}
	return mapping.ToDomainAppSettings(saved), nil
}

// UpdateSettings replaces the singleton settings row's values.
func (r *PgxSettingsRepository) UpdateSettings(ctx context.Context, settings domain.AppSettings) error {
	m := mapping.ToModelAppSettings(settings)
	tag, err := r.Pool.Exec(ctx,
		`UPDATE app_settings SET usn_mode = $1, usn_rate_percent = $2, backup_frequency = $3, updated_at = $4 WHERE id = 1;`,
		m.UsnMode, m.UsnRatePercent, m.BackupFrequency, m.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update settings: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// TouchLastBackup records when the latest backup completed.
func (r *PgxSettingsRepository) TouchLastBackup(ctx context.Context, at time.Time) error {
	tag, err := r.Pool.Exec(ctx,
		`UPDATE app_settings SET last_backup_at = $1, updated_at = $1 WHERE id = 1;`, at)
	if err != nil {
		return fmt.Errorf("failed to touch last backup: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
