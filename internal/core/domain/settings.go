package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/muhapauka-rgb/CXEMA-V7/internal/apperrors"
)

// UsnMode controls whether the simplified-tax layer participates in
// snapshots.
type UsnMode string

const (
	UsnOff         UsnMode = "OFF"
	UsnOperational UsnMode = "OPERATIONAL"
)

// ParseUsnMode maps a raw mode string to a closed UsnMode value.
func ParseUsnMode(raw string) (UsnMode, error) {
	switch UsnMode(strings.ToUpper(strings.TrimSpace(raw))) {
	case UsnOff:
		return UsnOff, nil
	case UsnOperational:
		return UsnOperational, nil
	default:
		return "", fmt.Errorf("usn mode %q: %w", raw, apperrors.ErrValidation)
	}
}

// BackupFrequency is the auto-backup cadence.
type BackupFrequency string

const (
	BackupOff     BackupFrequency = "OFF"
	BackupDaily   BackupFrequency = "DAILY"
	BackupWeekly  BackupFrequency = "WEEKLY"
	BackupMonthly BackupFrequency = "MONTHLY"
)

// ParseBackupFrequency maps a raw frequency string to a closed value.
func ParseBackupFrequency(raw string) (BackupFrequency, error) {
	switch BackupFrequency(strings.ToUpper(strings.TrimSpace(raw))) {
	case BackupOff, BackupDaily, BackupWeekly, BackupMonthly:
		return BackupFrequency(strings.ToUpper(strings.TrimSpace(raw))), nil
	default:
		return "", fmt.Errorf("backup frequency %q: %w", raw, apperrors.ErrValidation)
	}
}

// NextDue returns whether a backup is due at now given the last backup time.
// A nil last time means a backup has never run and one is due immediately.
func (f BackupFrequency) NextDue(now time.Time, last *time.Time) bool {
	if f == BackupOff {
		return false
	}
	if last == nil {
		return true
	}
	switch f {
	case BackupDaily:
		return !now.Before(last.AddDate(0, 0, 1))
	case BackupMonthly:
		return !now.Before(last.AddDate(0, 1, 0))
	default: // WEEKLY and anything unexpected
		return !now.Before(last.AddDate(0, 0, 7))
	}
}

// AppSettings is the single global settings row (id = 1).
type AppSettings struct {
	ID              int64           `json:"id"`
	UsnMode         UsnMode         `json:"usnMode"`
	UsnRatePercent  decimal.Decimal `json:"usnRatePercent"`
	BackupFrequency BackupFrequency `json:"backupFrequency"`
	LastBackupAt    *time.Time      `json:"lastBackupAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}
