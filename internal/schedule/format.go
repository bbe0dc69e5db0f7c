package schedule

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// FormatPattern returns a human-readable description of a stored pattern,
// e.g. "every Monday, Wednesday, Friday (Dec 30 - Jan 26)". Input that is not
// a weekly BYDAY rule is returned unchanged.
func FormatPattern(pattern string) string {
	if pattern == "" {
		return "no doses"
	}

	dtstart, rruleLine := splitPattern(pattern)
	parts := make(map[string]string)
	for _, seg := range strings.Split(rruleLine, ";") {
		kv := strings.SplitN(seg, "=", 2)
		if len(kv) == 2 {
			parts[kv[0]] = kv[1]
		}
	}

	if parts["FREQ"] != "WEEKLY" || parts["BYDAY"] == "" {
		return pattern
	}

	desc := describeDays(strings.Split(parts["BYDAY"], ","))
	if dtstart.IsZero() {
		return desc
	}
	if until, ok := parseRFCTime(parts["UNTIL"]); ok {
		return fmt.Sprintf("%s (%s - %s)", desc, dtstart.Format("Jan 2"), until.Format("Jan 2"))
	}
	return fmt.Sprintf("%s (from %s)", desc, dtstart.Format("Jan 2"))
}

// FormatEntries describes a schedule that has no stored pattern by its dose
// count and date range, e.g. "2 doses (Dec 30 - Jan 6)".
func FormatEntries(entries []Entry) string {
	dates := sortedDates(entries)
	switch len(dates) {
	case 0:
		return "no doses"
	case 1:
		return fmt.Sprintf("1 dose (%s)", dates[0].Format("Jan 2"))
	}
	return fmt.Sprintf("%d doses (%s - %s)", len(dates), dates[0].Format("Jan 2"), dates[len(dates)-1].Format("Jan 2"))
}

// Describe returns FormatPattern for a stored pattern and falls back to
// FormatEntries when there is none.
func Describe(pattern string, entries []Entry) string {
	if pattern == "" {
		return FormatEntries(entries)
	}
	return FormatPattern(pattern)
}

func sortedDates(entries []Entry) []time.Time {
	dates := make([]time.Time, len(entries))
	for i, e := range entries {
		dates[i] = e.Date()
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}

// splitPattern separates the optional DTSTART line from the RRULE line.
func splitPattern(pattern string) (time.Time, string) {
	var dtstart time.Time
	var rruleLine string
	for _, line := range strings.Split(pattern, "\n") {
		upper := strings.ToUpper(strings.TrimSpace(line))
		switch {
		case upper == "":
		case strings.HasPrefix(upper, "DTSTART"):
			if idx := strings.LastIndex(upper, ":"); idx != -1 {
				if t, ok := parseRFCTime(upper[idx+1:]); ok {
					dtstart = t
				}
			}
		case strings.HasPrefix(upper, "RRULE:"):
			rruleLine = strings.TrimPrefix(upper, "RRULE:")
		default:
			rruleLine = upper
		}
	}
	return dtstart, rruleLine
}

func parseRFCTime(s string) (time.Time, bool) {
	for _, layout := range []string{"20060102T150405Z", "20060102T150405", "20060102"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func describeDays(days []string) string {
	switch {
	case matchExactSet(days, "MO", "TU", "WE", "TH", "FR", "SA", "SU"):
		return "every day"
	case matchExactSet(days, "MO", "TU", "WE", "TH", "FR"):
		return "every weekday"
	case matchExactSet(days, "SA", "SU"):
		return "every weekend"
	}

	names := make([]string, len(days))
	for i, d := range days {
		names[i] = dayAbbrevToName(d)
	}
	return "every " + strings.Join(names, ", ")
}

// matchExactSet returns true if actual contains exactly the expected strings (in any order).
func matchExactSet(actual []string, expected ...string) bool {
	if len(actual) != len(expected) {
		return false
	}
	set := make(map[string]bool, len(expected))
	for _, e := range expected {
		set[e] = false
	}
	for _, a := range actual {
		if _, ok := set[a]; !ok {
			return false
		}
		set[a] = true
	}
	for _, v := range set {
		if !v {
			return false
		}
	}
	return true
}

var dayNames = map[string]string{
	"MO": "Monday",
	"TU": "Tuesday",
	"WE": "Wednesday",
	"TH": "Thursday",
	"FR": "Friday",
	"SA": "Saturday",
	"SU": "Sunday",
}

func dayAbbrevToName(abbrev string) string {
	if name, ok := dayNames[strings.ToUpper(abbrev)]; ok {
		return name
	}
	return abbrev
}

// Progress summarises how many entries carry each status.
type Progress struct {
	Total     int
	Taken     int
	Missed    int
	Scheduled int
}

// Summarize counts entries by status. Unknown statuses count toward Total only.
func Summarize(entries []Entry) Progress {
	p := Progress{Total: len(entries)}
	for _, e := range entries {
		switch e.EffectiveStatus() {
		case StatusTakenOnTime:
			p.Taken++
		case StatusMissed:
			p.Missed++
		case StatusScheduled:
			p.Scheduled++
		}
	}
	return p
}

// String returns e.g. "3/12 taken, 1 missed".
func (p Progress) String() string {
	return fmt.Sprintf("%d/%d taken, %d missed", p.Taken, p.Total, p.Missed)
}
