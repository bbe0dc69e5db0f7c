package prescription

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/Flyrell/wellnest/internal/schedule"
)

// StatusCount is one slice of the status distribution.
type StatusCount struct {
	Status  schedule.Status
	Count   int
	Percent float64
}

// Stats is the status distribution over every dose of every prescription.
type Stats struct {
	Total  int
	Counts []StatusCount
}

// Stats computes the status distribution for user. The three known statuses
// are always present; statuses not known to this version follow in
// alphabetical order.
func (s *Service) Stats(ctx context.Context, user string) (Stats, error) {
	list, err := s.store.List(ctx, user)
	if err != nil {
		return Stats{}, err
	}
	return computeStats(list), nil
}

func computeStats(list []Prescription) Stats {
	counts := make(map[schedule.Status]int)
	total := 0
	for _, rx := range list {
		for _, e := range rx.Schedule {
			counts[e.EffectiveStatus()]++
			total++
		}
	}

	var out []StatusCount
	known := make(map[schedule.Status]bool)
	for _, st := range schedule.Statuses() {
		known[st] = true
		out = append(out, StatusCount{Status: st, Count: counts[st]})
	}

	var extra []schedule.Status
	for st := range counts {
		if !known[st] {
			extra = append(extra, st)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })
	for _, st := range extra {
		out = append(out, StatusCount{Status: st, Count: counts[st]})
	}

	if total > 0 {
		for i := range out {
			out[i].Percent = float64(out[i].Count) * 100 / float64(total)
		}
	}
	return Stats{Total: total, Counts: out}
}

// Dose is a single schedule entry together with its prescription name.
type Dose struct {
	Prescription string
	Entry        schedule.Entry
}

// Doses returns every dose dated between from and to (inclusive, by calendar
// date) ordered by date and then prescription name.
func (s *Service) Doses(ctx context.Context, user string, from, to time.Time) ([]Dose, error) {
	list, err := s.store.List(ctx, user)
	if err != nil {
		return nil, err
	}

	lo := dayOf(from)
	hi := dayOf(to)

	var doses []Dose
	for _, rx := range list {
		for _, e := range rx.Schedule {
			d := e.Date()
			if d.Before(lo) || d.After(hi) {
				continue
			}
			doses = append(doses, Dose{Prescription: rx.Name, Entry: e})
		}
	}

	sort.SliceStable(doses, func(i, j int) bool {
		di, dj := doses[i].Entry.Date(), doses[j].Entry.Date()
		if !di.Equal(dj) {
			return di.Before(dj)
		}
		return strings.ToLower(doses[i].Prescription) < strings.ToLower(doses[j].Prescription)
	})
	return doses, nil
}

// Due returns the doses scheduled on the calendar date of day.
func (s *Service) Due(ctx context.Context, user string, day time.Time) ([]Dose, error) {
	return s.Doses(ctx, user, day, day)
}

func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
