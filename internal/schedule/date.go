package schedule

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the canonical date form used on the command line and on disk.
const DateLayout = "2006-01-02"

// ParseDate parses a calendar date in YYYY-MM-DD form. Single-digit months
// and days ("2025-1-7") are accepted. The result is midnight UTC.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	t, err := time.Parse("2006-1-2", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("unrecognized date %q (expected YYYY-MM-DD)", s)
	}
	return t, nil
}

// FormatDate formats t as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// truncateToDay drops the clock part of t and moves it to UTC, keeping the
// calendar date as seen in t's own location.
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// isoWeekday returns 1 for Monday through 7 for Sunday.
func isoWeekday(t time.Time) int {
	return isoNumber(t.Weekday())
}

func isoNumber(wd time.Weekday) int {
	if wd == time.Sunday {
		return 7
	}
	return int(wd)
}

// weekStart returns the Monday of the ISO week containing t.
func weekStart(t time.Time) time.Time {
	d := truncateToDay(t)
	return d.AddDate(0, 0, 1-isoWeekday(d))
}

// SameDay reports whether a and b fall on the same calendar date.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
