package schedule

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"
)

var rruleWeekdays = map[time.Weekday]rrule.Weekday{
	time.Monday:    rrule.MO,
	time.Tuesday:   rrule.TU,
	time.Wednesday: rrule.WE,
	time.Thursday:  rrule.TH,
	time.Friday:    rrule.FR,
	time.Saturday:  rrule.SA,
	time.Sunday:    rrule.SU,
}

// NewPattern returns the RFC 5545 recurrence rule (DTSTART + RRULE lines)
// whose occurrences are exactly the dates GenerateFrom produces for the same
// arguments. An empty schedule has no pattern and yields "".
func NewPattern(start time.Time, days []time.Weekday, weeks int) (string, error) {
	days = normalizeWeekdays(days)
	if weeks <= 0 || len(days) == 0 {
		return "", nil
	}

	byday := make([]rrule.Weekday, len(days))
	for i, d := range days {
		byday[i] = rruleWeekdays[d]
	}

	first := weekStart(start)
	r, err := rrule.NewRRule(rrule.ROption{
		Freq:      rrule.WEEKLY,
		Wkst:      rrule.MO,
		Byweekday: byday,
		Dtstart:   first,
		Until:     first.AddDate(0, 0, 7*weeks-1),
	})
	if err != nil {
		return "", fmt.Errorf("building recurrence: %w", err)
	}
	return r.String(), nil
}

// Occurrences expands a stored pattern into every date it covers.
func Occurrences(pattern string) ([]time.Time, error) {
	r, err := parsePattern(pattern)
	if err != nil {
		return nil, err
	}
	return r.All(), nil
}

// Upcoming returns up to n occurrences of pattern on or after the calendar
// date of from.
func Upcoming(pattern string, from time.Time, n int) ([]time.Time, error) {
	r, err := parsePattern(pattern)
	if err != nil {
		return nil, err
	}

	var out []time.Time
	next := r.After(truncateToDay(from), true)
	for len(out) < n && !next.IsZero() {
		out = append(out, next)
		next = r.After(next, false)
	}
	return out, nil
}

// UpcomingEntries returns up to n entry dates on or after the calendar date
// of from, in date order. Duplicate dates are listed once.
func UpcomingEntries(entries []Entry, from time.Time, n int) []time.Time {
	day := truncateToDay(from)
	var out []time.Time
	for _, d := range sortedDates(entries) {
		if len(out) == n {
			break
		}
		if d.Before(day) || (len(out) > 0 && d.Equal(out[len(out)-1])) {
			continue
		}
		out = append(out, d)
	}
	return out
}

func parsePattern(pattern string) (*rrule.RRule, error) {
	if pattern == "" {
		return nil, fmt.Errorf("prescription has no recurrence pattern")
	}
	r, err := rrule.StrToRRule(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid rrule %q: %w", pattern, err)
	}
	return r, nil
}
