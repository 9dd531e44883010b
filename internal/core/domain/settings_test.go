package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muhapauka-rgb/CXEMA-V7/internal/apperrors"
	"github.com/muhapauka-rgb/CXEMA-V7/internal/core/domain"
)

func TestParseUsnMode(t *testing.T) {
	mode, err := domain.ParseUsnMode(" operational ")
	require.NoError(t, err)
	assert.Equal(t, domain.UsnOperational, mode)

	_, err = domain.ParseUsnMode("PATENT")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestParseBackupFrequency(t *testing.T) {
	freq, err := domain.ParseBackupFrequency("weekly")
	require.NoError(t, err)
	assert.Equal(t, domain.BackupWeekly, freq)

	_, err = domain.ParseBackupFrequency("hourly")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestBackupFrequencyNextDue(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	recent := now.Add(-2 * time.Hour)
	twoDaysAgo := now.AddDate(0, 0, -2)
	eightDaysAgo := now.AddDate(0, 0, -8)
	fiveWeeksAgo := now.AddDate(0, 0, -35)

	testCases := []struct {
		name string
		freq domain.BackupFrequency
		last *time.Time
		want bool
	}{
		{name: "off never due", freq: domain.BackupOff, last: nil, want: false},
		{name: "never ran is due", freq: domain.BackupDaily, last: nil, want: true},
		{name: "daily not yet", freq: domain.BackupDaily, last: &recent, want: false},
		{name: "daily overdue", freq: domain.BackupDaily, last: &twoDaysAgo, want: true},
		{name: "weekly not yet", freq: domain.BackupWeekly, last: &twoDaysAgo, want: false},
		{name: "weekly overdue", freq: domain.BackupWeekly, last: &eightDaysAgo, want: true},
		{name: "monthly not yet", freq: domain.BackupMonthly, last: &eightDaysAgo, want: false},
		{name: "monthly overdue", freq: domain.BackupMonthly, last: &fiveWeeksAgo, want: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.freq.NextDue(now, tc.last))
		})
	}
}

func TestProjectActiveAt(t *testing.T) {
	created := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)
	closed := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	open := domain.Project{ID: 1, CreatedAt: created}
	done := domain.Project{ID: 2, CreatedAt: created, ClosedAt: &closed}

	day := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}

	assert.False(t, open.ActiveAt(day(2024, 1, 9)))
	assert.True(t, open.ActiveAt(day(2024, 1, 10)))
	assert.True(t, open.ActiveAt(day(2030, 1, 1)))

	assert.True(t, done.ActiveAt(day(2024, 4, 30)))
	assert.True(t, done.ActiveAt(day(2024, 5, 1)))
	assert.False(t, done.ActiveAt(day(2024, 5, 2)))
}
