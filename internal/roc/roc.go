// Package roc converts between the Republic of China (Minguo) calendar used by
// the Taiwan exchanges and the Gregorian calendar.
package roc

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Offset is the number of years between ROC year 1 and AD 1912, minus one.
const Offset = 1911

// ToADYear converts an ROC year to a Gregorian year.
func ToADYear(rocYear int) int { return rocYear + Offset }

// FromAD returns the ROC year of t.
func FromAD(t time.Time) int { return t.Year() - Offset }

// Date builds the Gregorian date of an ROC (year, month, day). It rejects
// components that would overflow into another month.
func Date(rocYear, month, day int) (time.Time, error) {
	if rocYear <= 0 {
		return time.Time{}, fmt.Errorf("invalid ROC year %d", rocYear)
	}
	if month < 1 || month > 12 {
		return time.Time{}, fmt.Errorf("invalid month %d", month)
	}
	d := time.Date(ToADYear(rocYear), time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if d.Day() != day || int(d.Month()) != month {
		return time.Time{}, fmt.Errorf("invalid day %d for %d/%d", day, rocYear, month)
	}
	return d, nil
}

// ParseSlashDate parses an exchange date such as "113/05/20" into 2024-05-20.
func ParseSlashDate(s string) (time.Time, error) {
	parts := strings.Split(strings.TrimSpace(s), "/")
	if len(parts) != 3 {
		return time.Time{}, fmt.Errorf("parse ROC date %q: want y/m/d", s)
	}
	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return time.Time{}, fmt.Errorf("parse ROC date %q: %w", s, err)
		}
		nums[i] = n
	}
	d, err := Date(nums[0], nums[1], nums[2])
	if err != nil {
		return time.Time{}, fmt.Errorf("parse ROC date %q: %w", s, err)
	}
	return d, nil
}

// Day truncates t to its calendar date in UTC, keeping t's own year/month/day.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// MonthStart returns the first day of t's month.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// MonthEnd returns the last day of t's month.
func MonthEnd(t time.Time) time.Time {
	return MonthStart(t).AddDate(0, 1, -1)
}

// Format renders t as an ROC date, e.g. "113/05/20".
func Format(t time.Time) string {
	return fmt.Sprintf("%d/%02d/%02d", FromAD(t), int(t.Month()), t.Day())
}
