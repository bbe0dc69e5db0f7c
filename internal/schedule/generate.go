package schedule

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidSchedule is returned when the start date or week count cannot be
// parsed. Callers are expected to show a single generic message for it.
var ErrInvalidSchedule = errors.New("invalid scheduling data")

// Generate builds a prescription schedule from raw user input: a YYYY-MM-DD
// start date, a comma-separated weekday list and a week count.
//
// An empty or entirely unrecognized weekday list produces an empty schedule,
// not an error.
func Generate(startDate, weekdays, numWeeks string) ([]Entry, error) {
	start, err := ParseDate(startDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSchedule, err)
	}

	weeks, err := strconv.Atoi(strings.TrimSpace(numWeeks))
	if err != nil {
		return nil, fmt.Errorf("%w: week count %q is not a whole number", ErrInvalidSchedule, numWeeks)
	}

	return GenerateFrom(start, ParseWeekdays(weekdays), weeks), nil
}

// GenerateFrom expands days over weeks consecutive blocks of seven days
// starting at start. Each block contributes the requested weekdays of the
// Monday-to-Sunday week containing the block's first day, so a weekday that
// comes earlier in the week than start is dated before start.
//
// Entries are ordered by block, then Monday through Sunday, which keeps them
// in chronological order. weeks <= 0 yields an empty schedule.
func GenerateFrom(start time.Time, days []time.Weekday, weeks int) []Entry {
	days = normalizeWeekdays(days)
	if weeks <= 0 || len(days) == 0 {
		return []Entry{}
	}

	base := truncateToDay(start)
	entries := make([]Entry, 0, weeks*len(days))
	for w := 0; w < weeks; w++ {
		blockStart := base.AddDate(0, 0, 7*w)
		for _, d := range days {
			// Truncated remainder: offsets range over -6..6.
			offset := (isoNumber(d) - isoWeekday(blockStart)) % 7
			entries = append(entries, newEntry(blockStart.AddDate(0, 0, offset), StatusScheduled))
		}
	}
	return entries
}
