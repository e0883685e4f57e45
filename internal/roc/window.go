package roc

import (
	"strconv"
	"strings"
	"time"
)

// Window is an inclusive [Start, End] calendar-date range.
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether the calendar date of t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	d := Day(t)
	return !d.Before(w.Start) && !d.After(w.End)
}

// ResolveWindow turns form-style ROC inputs into a date window.
//
// The start is the first day of (startYear, startMonth), or the first day of
// today's month when that cannot be built. A blank endYear means "until today";
// endYear alone means the end of that ROC year; endYear with endMonth means the
// end of that month. Unparsable end inputs also fall back to today.
func ResolveWindow(startYear, startMonth int, endYear, endMonth string, today time.Time) Window {
	today = Day(today)
	start, err := Date(startYear, startMonth, 1)
	if err != nil {
		start = MonthStart(today)
	}

	end := today
	if y := strings.TrimSpace(endYear); y != "" {
		end = resolveEnd(y, strings.TrimSpace(endMonth), today)
	}
	return Window{Start: start, End: end}
}

func resolveEnd(year, month string, today time.Time) time.Time {
	y, err := strconv.Atoi(year)
	if err != nil {
		return today
	}
	m := 12
	if month != "" {
		if m, err = strconv.Atoi(month); err != nil {
			return today
		}
	}
	base, err := Date(y, m, 1)
	if err != nil {
		return today
	}
	return MonthEnd(base)
}
