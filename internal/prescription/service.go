package prescription

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/Flyrell/wellnest/internal/schedule"
	"github.com/rs/zerolog"
)

// ErrNameRequired is returned when creating a prescription with a blank name.
var ErrNameRequired = errors.New("prescription name is required")

// NewPrescription is the raw input for Create. Schedule fields are kept as
// the user typed them; Create validates them.
type NewPrescription struct {
	Name          string
	Description   string
	TakenWithFood string
	StartDate     string
	Weekdays      string
	Weeks         string
}

// Service implements the prescription operations on top of a Store.
type Service struct {
	store Store
	log   zerolog.Logger
	now   func() time.Time
}

// NewService creates a Service backed by store.
func NewService(store Store, log zerolog.Logger) *Service {
	return &Service{store: store, log: log, now: time.Now}
}

// WithClock replaces the time source used for creation timestamps and IDs.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Create generates the schedule for in and stores the new prescription.
func (s *Service) Create(ctx context.Context, user string, in NewPrescription) (Prescription, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return Prescription{}, ErrNameRequired
	}

	_, err := s.store.Get(ctx, user, name)
	if err == nil {
		return Prescription{}, fmt.Errorf("%w: '%s'", ErrExists, name)
	}
	if !errors.Is(err, ErrNotFound) {
		return Prescription{}, err
	}

	food, err := normalizeYesNo(in.TakenWithFood)
	if err != nil {
		return Prescription{}, err
	}

	entries, err := schedule.Generate(in.StartDate, in.Weekdays, in.Weeks)
	if err != nil {
		return Prescription{}, err
	}

	// Generate has already validated both values.
	start, _ := schedule.ParseDate(in.StartDate)
	weeks, _ := strconv.Atoi(strings.TrimSpace(in.Weeks))

	pattern, err := schedule.NewPattern(start, schedule.ParseWeekdays(in.Weekdays), weeks)
	if err != nil {
		return Prescription{}, err
	}

	now := s.now()
	rx := Prescription{
		Name: name,
		ID:   newID(user, name, now),
		Info: MedicationInfo{
			Description:   strings.TrimSpace(in.Description),
			TakenWithFood: food,
		},
		StartDate: schedule.FormatDate(start),
		Weeks:     weeks,
		Pattern:   pattern,
		Schedule:  entries,
		CreatedAt: now.UTC(),
	}

	if err := s.store.Put(ctx, user, rx); err != nil {
		return Prescription{}, err
	}

	s.log.Info().
		Str("user", user).
		Str("prescription", rx.Name).
		Str("id", rx.ID).
		Int("doses", len(rx.Schedule)).
		Msg("prescription created")
	return rx, nil
}

// List returns the user's prescriptions sorted by name.
func (s *Service) List(ctx context.Context, user string) ([]Prescription, error) {
	list, err := s.store.List(ctx, user)
	if err != nil {
		return nil, err
	}
	sort.Slice(list, func(i, j int) bool {
		return strings.ToLower(list[i].Name) < strings.ToLower(list[j].Name)
	})
	return list, nil
}

// Get returns the prescription stored under name.
func (s *Service) Get(ctx context.Context, user, name string) (Prescription, error) {
	rx, err := s.store.Get(ctx, user, strings.TrimSpace(name))
	if errors.Is(err, ErrNotFound) {
		return Prescription{}, fmt.Errorf("%w: '%s'", ErrNotFound, name)
	}
	return rx, err
}

// Resolve finds a prescription by exact name, falling back to its ID.
func (s *Service) Resolve(ctx context.Context, user, identifier string) (Prescription, error) {
	identifier = strings.TrimSpace(identifier)
	rx, err := s.store.Get(ctx, user, identifier)
	if err == nil {
		return rx, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return Prescription{}, err
	}

	list, err := s.store.List(ctx, user)
	if err != nil {
		return Prescription{}, err
	}
	for _, rx := range list {
		if rx.ID != "" && rx.ID == identifier {
			return rx, nil
		}
	}
	return Prescription{}, fmt.Errorf("%w: '%s'", ErrNotFound, identifier)
}

// UpdateStatus sets the status of the dose scheduled on date. It reports
// false, without error and without writing, when the schedule has no such
// date.
func (s *Service) UpdateStatus(ctx context.Context, user, identifier string, date time.Time, status schedule.Status) (bool, error) {
	rx, err := s.Resolve(ctx, user, identifier)
	if err != nil {
		return false, err
	}

	if !schedule.UpdateStatus(rx.Schedule, date, status) {
		s.log.Debug().
			Str("prescription", rx.Name).
			Str("date", schedule.FormatDate(date)).
			Msg("no scheduled dose on date")
		return false, nil
	}

	if err := s.store.Put(ctx, user, rx); err != nil {
		return false, err
	}

	s.log.Info().
		Str("user", user).
		Str("prescription", rx.Name).
		Str("date", schedule.FormatDate(date)).
		Str("status", string(status)).
		Msg("dose status updated")
	return true, nil
}

// SaveSchedule replaces the stored schedule of a prescription, keeping every
// other field. Entry dates must be unchanged; only statuses are taken over.
func (s *Service) SaveSchedule(ctx context.Context, user, name string, entries []schedule.Entry) error {
	rx, err := s.store.Get(ctx, user, name)
	if err != nil {
		return err
	}
	if len(entries) != len(rx.Schedule) {
		return fmt.Errorf("schedule for '%s' changed size (%d -> %d)", name, len(rx.Schedule), len(entries))
	}
	for i := range rx.Schedule {
		if rx.Schedule[i].Date() != entries[i].Date() {
			return fmt.Errorf("schedule for '%s' changed dates at position %d", name, i)
		}
		rx.Schedule[i].Status = entries[i].Status
	}
	return s.store.Put(ctx, user, rx)
}

// Delete removes a prescription and returns what was removed.
func (s *Service) Delete(ctx context.Context, user, identifier string) (Prescription, error) {
	rx, err := s.Resolve(ctx, user, identifier)
	if err != nil {
		return Prescription{}, err
	}
	if err := s.store.Delete(ctx, user, rx.Name); err != nil {
		return Prescription{}, err
	}
	s.log.Info().Str("user", user).Str("prescription", rx.Name).Msg("prescription deleted")
	return rx, nil
}

func normalizeYesNo(s string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "y", "true":
		return "Yes", nil
	case "no", "n", "false", "":
		return "No", nil
	}
	return "", fmt.Errorf("invalid 'taken with food' value %q (expected yes or no)", s)
}
