package prescription

import (
	"context"
	"testing"
	"time"

	"github.com/Flyrell/wellnest/internal/schedule"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStore is an in-memory Store that copies records in and out, so tests
// observe the same aliasing behaviour as the file-backed stores.
type memStore struct {
	data map[string]map[string]Prescription
	puts int
}

func newMemStore() *memStore {
	return &memStore{data: make(map[string]map[string]Prescription)}
}

func clone(rx Prescription) Prescription {
	rx.Schedule = append([]schedule.Entry(nil), rx.Schedule...)
	return rx
}

func (m *memStore) List(_ context.Context, user string) ([]Prescription, error) {
	var out []Prescription
	for _, rx := range m.data[user] {
		out = append(out, clone(rx))
	}
	return out, nil
}

func (m *memStore) Get(_ context.Context, user, name string) (Prescription, error) {
	rx, ok := m.data[user][name]
	if !ok {
		return Prescription{}, ErrNotFound
	}
	return clone(rx), nil
}

func (m *memStore) Put(_ context.Context, user string, rx Prescription) error {
	if m.data[user] == nil {
		m.data[user] = make(map[string]Prescription)
	}
	m.data[user][rx.Name] = clone(rx)
	m.puts++
	return nil
}

func (m *memStore) Delete(_ context.Context, user, name string) error {
	if _, ok := m.data[user][name]; !ok {
		return ErrNotFound
	}
	delete(m.data[user], name)
	return nil
}

func (m *memStore) Close() error { return nil }

var fixedNow = time.Date(2025, 1, 2, 8, 0, 0, 0, time.UTC)

func newTestService() (*Service, *memStore) {
	store := newMemStore()
	svc := NewService(store, zerolog.Nop()).WithClock(func() time.Time { return fixedNow })
	return svc, store
}

func aspirin() NewPrescription {
	return NewPrescription{
		Name:          "Aspirin",
		Description:   "100mg after breakfast",
		TakenWithFood: "yes",
		StartDate:     "2025-01-01",
		Weekdays:      "Mon,Wed,Fri",
		Weeks:         "2",
	}
}

func TestCreateHappyPath(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	rx, err := svc.Create(ctx, "alice", aspirin())

	require.NoError(t, err)
	assert.Equal(t, "Aspirin", rx.Name)
	assert.Len(t, rx.ID, 7)
	assert.Equal(t, MedicationInfo{Description: "100mg after breakfast", TakenWithFood: "Yes"}, rx.Info)
	assert.Equal(t, "2025-01-01", rx.StartDate)
	assert.Equal(t, 2, rx.Weeks)
	assert.Len(t, rx.Schedule, 6)
	assert.Contains(t, rx.Pattern, "BYDAY=MO,WE,FR")
	assert.Equal(t, fixedNow, rx.CreatedAt)

	stored, err := store.Get(ctx, "alice", "Aspirin")
	require.NoError(t, err)
	assert.Equal(t, rx, stored)
}

func TestCreateTrimsName(t *testing.T) {
	svc, _ := newTestService()
	in := aspirin()
	in.Name = "  Aspirin  "

	rx, err := svc.Create(context.Background(), "alice", in)

	require.NoError(t, err)
	assert.Equal(t, "Aspirin", rx.Name)
}

func TestCreateRequiresName(t *testing.T) {
	svc, store := newTestService()
	in := aspirin()
	in.Name = "   "

	_, err := svc.Create(context.Background(), "alice", in)

	assert.ErrorIs(t, err, ErrNameRequired)
	assert.Zero(t, store.puts)
}

func TestCreateDuplicate(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	_, err := svc.Create(ctx, "alice", aspirin())
	require.NoError(t, err)

	_, err = svc.Create(ctx, "alice", aspirin())

	assert.ErrorIs(t, err, ErrExists)
}

func TestCreateSameNameDifferentUsers(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Create(ctx, "alice", aspirin())
	require.NoError(t, err)
	_, err = svc.Create(ctx, "bob", aspirin())
	assert.NoError(t, err)
}

func TestCreateInvalidSchedule(t *testing.T) {
	tests := []struct {
		name  string
		start string
		weeks string
	}{
		{"bad date", "01/01/2025", "4"},
		{"bad weeks", "2025-01-01", "four"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store := newTestService()
			in := aspirin()
			in.StartDate = tt.start
			in.Weeks = tt.weeks

			_, err := svc.Create(context.Background(), "alice", in)

			assert.ErrorIs(t, err, schedule.ErrInvalidSchedule)
			assert.Zero(t, store.puts)
		})
	}
}

func TestCreateEmptyWeekdays(t *testing.T) {
	svc, _ := newTestService()
	in := aspirin()
	in.Weekdays = "Funday"

	rx, err := svc.Create(context.Background(), "alice", in)

	require.NoError(t, err)
	assert.Empty(t, rx.Schedule)
	assert.Empty(t, rx.Pattern)
}

func TestCreateInvalidFood(t *testing.T) {
	svc, _ := newTestService()
	in := aspirin()
	in.TakenWithFood = "sometimes"

	_, err := svc.Create(context.Background(), "alice", in)

	assert.Error(t, err)
}

func TestListSorted(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	for _, name := range []string{"zinc", "Aspirin", "metformin"} {
		in := aspirin()
		in.Name = name
		_, err := svc.Create(ctx, "alice", in)
		require.NoError(t, err)
	}

	list, err := svc.List(ctx, "alice")

	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "Aspirin", list[0].Name)
	assert.Equal(t, "metformin", list[1].Name)
	assert.Equal(t, "zinc", list[2].Name)
}

func TestResolveByID(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	created, err := svc.Create(ctx, "alice", aspirin())
	require.NoError(t, err)

	rx, err := svc.Resolve(ctx, "alice", created.ID)

	require.NoError(t, err)
	assert.Equal(t, "Aspirin", rx.Name)
}

func TestResolveTrimsIdentifier(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	created, err := svc.Create(ctx, "alice", aspirin())
	require.NoError(t, err)

	byName, err := svc.Resolve(ctx, "alice", "  Aspirin ")
	require.NoError(t, err)
	assert.Equal(t, "Aspirin", byName.Name)

	byID, err := svc.Resolve(ctx, "alice", " "+created.ID+"\t")
	require.NoError(t, err)
	assert.Equal(t, "Aspirin", byID.Name)

	ok, err := svc.UpdateStatus(ctx, "alice", " Aspirin", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), schedule.StatusMissed)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestResolveNotFound(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Resolve(context.Background(), "alice", "Nothing")

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateStatusPersists(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()
	_, err := svc.Create(ctx, "alice", aspirin())
	require.NoError(t, err)

	found, err := svc.UpdateStatus(ctx, "alice", "Aspirin", time.Date(2024, 12, 30, 0, 0, 0, 0, time.UTC), schedule.StatusTakenOnTime)

	require.NoError(t, err)
	assert.True(t, found)
	rx, err := store.Get(ctx, "alice", "Aspirin")
	require.NoError(t, err)
	assert.Equal(t, schedule.StatusTakenOnTime, rx.Schedule[0].Status)
}

func TestUpdateStatusNotFoundDoesNotWrite(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()
	_, err := svc.Create(ctx, "alice", aspirin())
	require.NoError(t, err)
	puts := store.puts

	found, err := svc.UpdateStatus(ctx, "alice", "Aspirin", time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC), schedule.StatusMissed)

	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, puts, store.puts)
	rx, err := store.Get(ctx, "alice", "Aspirin")
	require.NoError(t, err)
	for _, e := range rx.Schedule {
		assert.Equal(t, schedule.StatusScheduled, e.Status)
	}
}

func TestUpdateStatusUnknownPrescription(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.UpdateStatus(context.Background(), "alice", "Nope", fixedNow, schedule.StatusMissed)

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSaveSchedule(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()
	rx, err := svc.Create(ctx, "alice", aspirin())
	require.NoError(t, err)

	edited := append([]schedule.Entry(nil), rx.Schedule...)
	edited[1].Status = schedule.StatusMissed
	require.NoError(t, svc.SaveSchedule(ctx, "alice", "Aspirin", edited))

	stored, err := store.Get(ctx, "alice", "Aspirin")
	require.NoError(t, err)
	assert.Equal(t, schedule.StatusMissed, stored.Schedule[1].Status)

	assert.EqualError(t, svc.SaveSchedule(ctx, "alice", "Aspirin", edited[:2]), "schedule for 'Aspirin' changed size (6 -> 2)")
	edited[0].Day++
	assert.Error(t, svc.SaveSchedule(ctx, "alice", "Aspirin", edited))
}

func TestDelete(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()
	_, err := svc.Create(ctx, "alice", aspirin())
	require.NoError(t, err)

	removed, err := svc.Delete(ctx, "alice", "Aspirin")

	require.NoError(t, err)
	assert.Equal(t, "Aspirin", removed.Name)
	_, err = store.Get(ctx, "alice", "Aspirin")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Delete(ctx, "alice", "Aspirin")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGet(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	_, err := svc.Create(ctx, "alice", aspirin())
	require.NoError(t, err)

	rx, err := svc.Get(ctx, "alice", " Aspirin ")
	require.NoError(t, err)
	assert.Equal(t, "Aspirin", rx.Name)

	_, err = svc.Get(ctx, "alice", "Zinc")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "'Zinc'")
}
