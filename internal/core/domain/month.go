package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/muhapauka-rgb/CXEMA-V7/internal/apperrors"
)

// MonthKey is a calendar month in "YYYY-MM" form. Zero-padded keys compare
// chronologically as plain strings, which the life projector relies on.
type MonthKey string

// MonthKeyOf returns the key of the month containing t.
func MonthKeyOf(t time.Time) MonthKey {
	return MonthKey(fmt.Sprintf("%04d-%02d", t.Year(), int(t.Month())))
}

// ParseMonthKey validates a user-supplied month key. Malformed or
// out-of-range input yields apperrors.ErrValidation.
func ParseMonthKey(raw string) (MonthKey, error) {
	parts := strings.Split(strings.TrimSpace(raw), "-")
	if len(parts) != 2 {
		return "", fmt.Errorf("month %q: expected YYYY-MM: %w", raw, apperrors.ErrValidation)
	}
	year, errY := strconv.Atoi(parts[0])
	month, errM := strconv.Atoi(parts[1])
	if errY != nil || errM != nil {
		return "", fmt.Errorf("month %q: expected YYYY-MM: %w", raw, apperrors.ErrValidation)
	}
	if year < 1900 || year > 2100 || month < 1 || month > 12 {
		return "", fmt.Errorf("month %q: out of range: %w", raw, apperrors.ErrValidation)
	}
	return MonthKey(fmt.Sprintf("%04d-%02d", year, month)), nil
}

func (k MonthKey) split() (int, int) {
	parts := strings.SplitN(string(k), "-", 2)
	year, _ := strconv.Atoi(parts[0])
	month := 1
	if len(parts) == 2 {
		month, _ = strconv.Atoi(parts[1])
	}
	return year, month
}

// Start returns the first day of the month at UTC midnight.
func (k MonthKey) Start() time.Time {
	year, month := k.split()
	return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
}

// End returns the last day of the month at UTC midnight.
func (k MonthKey) End() time.Time {
	return k.Next().Start().AddDate(0, 0, -1)
}

// Next returns the following month's key.
func (k MonthKey) Next() MonthKey {
	year, month := k.split()
	if month == 12 {
		return MonthKey(fmt.Sprintf("%04d-01", year+1))
	}
	return MonthKey(fmt.Sprintf("%04d-%02d", year, month+1))
}

// Prev returns the preceding month's key.
func (k MonthKey) Prev() MonthKey {
	year, month := k.split()
	if month == 1 {
		return MonthKey(fmt.Sprintf("%04d-12", year-1))
	}
	return MonthKey(fmt.Sprintf("%04d-%02d", year, month-1))
}

// DateOnly truncates t to its calendar day in UTC. All financial event dates
// are day-granular; times of day never participate in ordering.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
