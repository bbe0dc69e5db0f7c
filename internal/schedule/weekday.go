package schedule

import (
	"sort"
	"time"

	"github.com/Flyrell/wellnest/internal/stringutil"
)

var weekdayTokens = map[string]time.Weekday{
	"mon": time.Monday,
	"tue": time.Tuesday,
	"wed": time.Wednesday,
	"thu": time.Thursday,
	"fri": time.Friday,
	"sat": time.Saturday,
	"sun": time.Sunday,
}

// WeekdayTokens lists the accepted weekday abbreviations, Monday first.
var WeekdayTokens = []string{"mon", "tue", "wed", "thu", "fri", "sat", "sun"}

// ParseWeekday resolves a case-insensitive three-letter weekday token.
func ParseWeekday(token string) (time.Weekday, bool) {
	ts := stringutil.SplitList(token)
	if len(ts) != 1 {
		return 0, false
	}
	wd, ok := weekdayTokens[ts[0]]
	return wd, ok
}

// ParseWeekdays parses a comma-separated weekday list such as "Mon,Wed,Fri".
// Unrecognized tokens and duplicates are dropped. The result is ordered
// Monday through Sunday.
func ParseWeekdays(s string) []time.Weekday {
	var days []time.Weekday
	for _, tok := range stringutil.SplitList(s) {
		if wd, ok := weekdayTokens[tok]; ok {
			days = append(days, wd)
		}
	}
	return normalizeWeekdays(days)
}

// normalizeWeekdays deduplicates days and sorts them Monday first.
func normalizeWeekdays(days []time.Weekday) []time.Weekday {
	seen := make(map[time.Weekday]bool, len(days))
	out := make([]time.Weekday, 0, len(days))
	for _, d := range days {
		if d < time.Sunday || d > time.Saturday || seen[d] {
			continue
		}
		seen[d] = true
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool {
		return isoNumber(out[i]) < isoNumber(out[j])
	})
	return out
}

// WeekdayToken returns the lowercase three-letter token for wd.
func WeekdayToken(wd time.Weekday) string {
	return WeekdayTokens[isoNumber(wd)-1]
}
