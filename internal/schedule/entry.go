package schedule

import (
	"fmt"
	"strings"
	"time"
)

// Status is the adherence state of a single scheduled dose.
type Status string

const (
	StatusScheduled   Status = "scheduled"
	StatusTakenOnTime Status = "taken on time"
	StatusMissed      Status = "missed"
)

// Statuses returns the known statuses in display order.
func Statuses() []Status {
	return []Status{StatusScheduled, StatusTakenOnTime, StatusMissed}
}

// ParseStatus resolves user input into a Status. Matching is
// case-insensitive and accepts underscores or hyphens in place of spaces.
func ParseStatus(s string) (Status, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer("_", " ", "-", " ").Replace(norm)
	switch norm {
	case "scheduled":
		return StatusScheduled, nil
	case "taken on time", "taken":
		return StatusTakenOnTime, nil
	case "missed":
		return StatusMissed, nil
	}
	return "", fmt.Errorf("unknown status %q (valid: scheduled, taken on time, missed)", s)
}

// Entry is one calendar occurrence of a recurring prescription. Status is the
// only field that changes after generation.
type Entry struct {
	Day    int    `json:"Day"`
	Month  int    `json:"Month"`
	Year   int    `json:"Year"`
	Status Status `json:"Status"`
}

func newEntry(t time.Time, status Status) Entry {
	return Entry{
		Day:    t.Day(),
		Month:  int(t.Month()),
		Year:   t.Year(),
		Status: status,
	}
}

// Date returns the entry's date at midnight UTC.
func (e Entry) Date() time.Time {
	return time.Date(e.Year, time.Month(e.Month), e.Day, 0, 0, 0, 0, time.UTC)
}

// On reports whether the entry falls on the calendar date of t.
func (e Entry) On(t time.Time) bool {
	y, m, d := t.Date()
	return e.Year == y && e.Month == int(m) && e.Day == d
}

// EffectiveStatus returns the entry's status, treating an empty value as
// scheduled.
func (e Entry) EffectiveStatus() Status {
	if e.Status == "" {
		return StatusScheduled
	}
	return e.Status
}

// String returns "YYYY-MM-DD [status]".
func (e Entry) String() string {
	return fmt.Sprintf("%04d-%02d-%02d [%s]", e.Year, e.Month, e.Day, e.EffectiveStatus())
}

// UpdateStatus sets the status of the first entry falling on date. It
// returns false and leaves entries untouched when no entry matches.
func UpdateStatus(entries []Entry, date time.Time, status Status) bool {
	for i := range entries {
		if entries[i].On(date) {
			entries[i].Status = status
			return true
		}
	}
	return false
}
