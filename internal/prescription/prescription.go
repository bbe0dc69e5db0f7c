package prescription

import (
	"context"
	"errors"
	"time"

	"github.com/Flyrell/wellnest/internal/schedule"
)

var (
	// ErrNotFound is returned when no prescription matches a name or ID.
	ErrNotFound = errors.New("prescription not found")
	// ErrExists is returned when creating a prescription whose name is taken.
	ErrExists = errors.New("prescription already exists")
)

// MedicationInfo holds the free-text medication fields shown next to a
// schedule.
type MedicationInfo struct {
	Description   string `json:"Description"`
	TakenWithFood string `json:"Taken with food"`
}

// Prescription is a named medication with its generated dose schedule. Name
// is the storage key and is not part of the serialised record.
type Prescription struct {
	Name      string           `json:"-"`
	ID        string           `json:"ID,omitempty"`
	Info      MedicationInfo   `json:"Medication Info"`
	StartDate string           `json:"Start Date,omitempty"`
	Weeks     int              `json:"Weeks,omitempty"`
	Pattern   string           `json:"Pattern,omitempty"`
	Schedule  []schedule.Entry `json:"Schedule"`
	CreatedAt time.Time        `json:"Created At,omitzero"`
}

// Progress summarises the schedule's adherence.
func (p Prescription) Progress() schedule.Progress {
	return schedule.Summarize(p.Schedule)
}

// Store persists prescriptions per user. Implementations live in
// internal/storage.
type Store interface {
	// List returns all prescriptions of user in no particular order.
	List(ctx context.Context, user string) ([]Prescription, error)
	// Get returns ErrNotFound when user has no prescription called name.
	Get(ctx context.Context, user, name string) (Prescription, error)
	// Put creates or replaces the prescription keyed by rx.Name.
	Put(ctx context.Context, user string, rx Prescription) error
	// Delete returns ErrNotFound when user has no prescription called name.
	Delete(ctx context.Context, user, name string) error
	Close() error
}
