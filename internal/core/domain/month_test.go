package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muhapauka-rgb/CXEMA-V7/internal/apperrors"
	"github.com/muhapauka-rgb/CXEMA-V7/internal/core/domain"
)

func TestParseMonthKey(t *testing.T) {
	testCases := []struct {
		name    string
		raw     string
		want    domain.MonthKey
		wantErr bool
	}{
		{name: "valid", raw: "2024-05", want: "2024-05"},
		{name: "unpadded month normalized", raw: "2024-5", want: "2024-05"},
		{name: "surrounding whitespace", raw: " 2024-05 ", want: "2024-05"},
		{name: "missing month", raw: "2024", wantErr: true},
		{name: "extra part", raw: "2024-05-01", wantErr: true},
		{name: "non numeric", raw: "abcd-ef", wantErr: true},
		{name: "month zero", raw: "2024-00", wantErr: true},
		{name: "month thirteen", raw: "2024-13", wantErr: true},
		{name: "year out of range", raw: "1800-05", wantErr: true},
		{name: "empty", raw: "", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := domain.ParseMonthKey(tc.raw)
			if tc.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, apperrors.ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestMonthKeyNavigation(t *testing.T) {
	assert.Equal(t, domain.MonthKey("2024-02"), domain.MonthKey("2024-01").Next())
	assert.Equal(t, domain.MonthKey("2025-01"), domain.MonthKey("2024-12").Next())
	assert.Equal(t, domain.MonthKey("2023-12"), domain.MonthKey("2024-01").Prev())
	assert.Equal(t, domain.MonthKey("2024-11"), domain.MonthKey("2024-12").Prev())
}

func TestMonthKeyBounds(t *testing.T) {
	key := domain.MonthKey("2024-02")
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), key.Start())
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), key.End())
}

func TestMonthKeyOf(t *testing.T) {
	at := time.Date(2024, 7, 31, 23, 59, 59, 0, time.UTC)
	assert.Equal(t, domain.MonthKey("2024-07"), domain.MonthKeyOf(at))
}

func TestMonthKeysCompareChronologically(t *testing.T) {
	assert.True(t, domain.MonthKey("2024-09") < domain.MonthKey("2024-10"))
	assert.True(t, domain.MonthKey("2024-12") < domain.MonthKey("2025-01"))
}

func TestDateOnly(t *testing.T) {
	at := time.Date(2024, 3, 15, 18, 45, 12, 999, time.UTC)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), domain.DateOnly(at))
}
