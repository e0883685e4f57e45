package dashboard

import (
	"fmt"
	"strings"
	"time"

	"TWStockBoard/internal/roc"
)

// ParseDate accepts 2024-05-20, 2024-05 (first of month) or the ROC form 113/05/20.
func ParseDate(s string) (time.Time, error) {
	t, _, err := parseDate(s)
	return t, err
}

// ParseEndDate is ParseDate for the end of a range: a month-only value means
// the last day of that month.
func ParseEndDate(s string) (time.Time, error) {
	t, monthOnly, err := parseDate(s)
	if err == nil && monthOnly {
		t = roc.MonthEnd(t)
	}
	return t, err
}

func parseDate(s string) (time.Time, bool, error) {
	s = strings.TrimSpace(s)
	if strings.Contains(s, "/") {
		t, err := roc.ParseSlashDate(s)
		return t, false, err
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, false, nil
	}
	if t, err := time.Parse("2006-01", s); err == nil {
		return t, true, nil
	}
	return time.Time{}, false, fmt.Errorf("unrecognised date %q", s)
}

// ParseWindow resolves optional start and end strings. A blank start is the
// first day of the month three months before today; a blank end is today. A
// month-only end covers that whole month.
func ParseWindow(start, end string, today time.Time) (time.Time, time.Time, error) {
	today = roc.Day(today)
	from := roc.MonthStart(today).AddDate(0, -3, 0)
	to := today
	var err error
	if strings.TrimSpace(start) != "" {
		if from, err = ParseDate(start); err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	if strings.TrimSpace(end) != "" {
		if to, err = ParseEndDate(end); err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	if from.After(to) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %s > %s", ErrInvalidRange, from.Format("2006-01-02"), to.Format("2006-01-02"))
	}
	return from, to, nil
}
