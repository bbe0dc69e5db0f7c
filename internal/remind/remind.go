package remind

import (
	"context"
	"fmt"
	"time"

	"github.com/Flyrell/wellnest/internal/prescription"
	"github.com/Flyrell/wellnest/internal/schedule"
)

// LookbackDays is how far back Check searches for doses never marked.
const LookbackDays = 3

// DoseLister returns the doses scheduled between two dates, inclusive.
type DoseLister interface {
	Doses(ctx context.Context, user string, from, to time.Time) ([]prescription.Dose, error)
}

// Report is the result of one reminder check.
type Report struct {
	Date time.Time
	// Due holds today's doses still marked scheduled.
	Due []prescription.Dose
	// Overdue holds doses from the previous LookbackDays days still marked
	// scheduled.
	Overdue []prescription.Dose
}

// Empty reports whether there is nothing to remind the user of.
func (r Report) Empty() bool {
	return len(r.Due) == 0 && len(r.Overdue) == 0
}

// Check collects the reminder report for user at now.
func Check(ctx context.Context, src DoseLister, user string, now time.Time) (Report, error) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	doses, err := src.Doses(ctx, user, today.AddDate(0, 0, -LookbackDays), today)
	if err != nil {
		return Report{}, err
	}

	r := Report{Date: today}
	for _, d := range doses {
		if d.Entry.EffectiveStatus() != schedule.StatusScheduled {
			continue
		}
		if d.Entry.On(today) {
			r.Due = append(r.Due, d)
		} else {
			r.Overdue = append(r.Overdue, d)
		}
	}
	return r, nil
}

// Lines renders the report as plain text lines.
func (r Report) Lines() []string {
	if r.Empty() {
		return []string{fmt.Sprintf("Nothing due on %s.", schedule.FormatDate(r.Date))}
	}

	var lines []string
	if len(r.Due) > 0 {
		lines = append(lines, fmt.Sprintf("Due today (%s):", schedule.FormatDate(r.Date)))
		for _, d := range r.Due {
			lines = append(lines, "  "+d.Prescription)
		}
	}
	if len(r.Overdue) > 0 {
		lines = append(lines, fmt.Sprintf("%d dose(s) from the last %d days still unmarked:", len(r.Overdue), LookbackDays))
		for _, d := range r.Overdue {
			lines = append(lines, fmt.Sprintf("  %s on %s", d.Prescription, schedule.FormatDate(d.Entry.Date())))
		}
	}
	return lines
}
