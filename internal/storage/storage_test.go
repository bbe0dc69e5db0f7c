package storage

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/Flyrell/wellnest/internal/prescription"
	"github.com/Flyrell/wellnest/internal/schedule"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRx(name string) prescription.Prescription {
	entries, _ := schedule.Generate("2025-01-01", "Mon,Wed,Fri", "1")
	return prescription.Prescription{
		Name:      name,
		ID:        "abc1234",
		Info:      prescription.MedicationInfo{Description: "daily", TakenWithFood: "Yes"},
		StartDate: "2025-01-01",
		Weeks:     1,
		Pattern:   "FREQ=WEEKLY;BYDAY=MO,WE,FR",
		Schedule:  entries,
		CreatedAt: time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC),
	}
}

func openDriver(t *testing.T, driver string) prescription.Store {
	t.Helper()
	st, err := Open(Config{Driver: driver}, t.TempDir(), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func TestStoreContract(t *testing.T) {
	for _, driver := range []string{DriverJSON, DriverSQLite} {
		t.Run(driver, func(t *testing.T) {
			ctx := context.Background()
			st := openDriver(t, driver)

			_, err := st.Get(ctx, "alice", "Aspirin")
			assert.ErrorIs(t, err, prescription.ErrNotFound)

			list, err := st.List(ctx, "alice")
			require.NoError(t, err)
			assert.Empty(t, list)

			require.NoError(t, st.Put(ctx, "alice", sampleRx("Aspirin")))
			require.NoError(t, st.Put(ctx, "alice", sampleRx("Zinc")))
			require.NoError(t, st.Put(ctx, "bob", sampleRx("Aspirin")))

			got, err := st.Get(ctx, "alice", "Aspirin")
			require.NoError(t, err)
			assert.Equal(t, sampleRx("Aspirin"), got)

			list, err = st.List(ctx, "alice")
			require.NoError(t, err)
			names := make([]string, len(list))
			for i, rx := range list {
				names[i] = rx.Name
			}
			sort.Strings(names)
			assert.Equal(t, []string{"Aspirin", "Zinc"}, names)

			updated := sampleRx("Aspirin")
			updated.Schedule[0].Status = schedule.StatusMissed
			require.NoError(t, st.Put(ctx, "alice", updated))
			got, err = st.Get(ctx, "alice", "Aspirin")
			require.NoError(t, err)
			assert.Equal(t, schedule.StatusMissed, got.Schedule[0].Status)

			require.NoError(t, st.Delete(ctx, "alice", "Aspirin"))
			_, err = st.Get(ctx, "alice", "Aspirin")
			assert.ErrorIs(t, err, prescription.ErrNotFound)
			assert.ErrorIs(t, st.Delete(ctx, "alice", "Aspirin"), prescription.ErrNotFound)

			// Other users are untouched.
			_, err = st.Get(ctx, "bob", "Aspirin")
			assert.NoError(t, err)
		})
	}
}

func TestOpenUnknownDriver(t *testing.T) {
	_, err := Open(Config{Driver: "postgres"}, t.TempDir(), zerolog.Nop())
	assert.ErrorIs(t, err, ErrUnknownDriver)
}

func TestOpenDefaultsToJSON(t *testing.T) {
	dir := t.TempDir()
	st, err := Open(Config{}, dir, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, st.Put(context.Background(), "alice", sampleRx("Aspirin")))

	_, err = os.Stat(filepath.Join(dir, "prescriptions.json"))
	assert.NoError(t, err)
}

func TestJSONFileShape(t *testing.T) {
	dir := t.TempDir()
	st, err := Open(Config{Driver: DriverJSON}, dir, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, st.Put(context.Background(), "alice", sampleRx("Aspirin")))

	data, err := os.ReadFile(filepath.Join(dir, "prescriptions.json"))
	require.NoError(t, err)
	s := string(data)
	assert.Contains(t, s, `"alice": {`)
	assert.Contains(t, s, `"Aspirin": {`)
	assert.Contains(t, s, `"Medication Info": {`)
	assert.Contains(t, s, `"Taken with food": "Yes"`)
	assert.Contains(t, s, `"Status": "scheduled"`)
	assert.NotContains(t, s, `"Name"`)
}

func TestJSONReadsLegacyFile(t *testing.T) {
	dir := t.TempDir()
	legacy := `{
    "alice": {
        "Vitamin D": {
            "Medication Info": {"Description": "1 tablet", "Taken with food": "No"},
            "Schedule": [
                {"Day": 30, "Month": 12, "Year": 2024, "Status": "taken on time"},
                {"Day": 6, "Month": 1, "Year": 2025, "Status": "scheduled"}
            ]
        }
    }
}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "prescriptions.json"), []byte(legacy), 0644))
	st, err := Open(Config{Driver: DriverJSON}, dir, zerolog.Nop())
	require.NoError(t, err)

	rx, err := st.Get(context.Background(), "alice", "Vitamin D")

	require.NoError(t, err)
	assert.Equal(t, "Vitamin D", rx.Name)
	assert.Equal(t, "No", rx.Info.TakenWithFood)
	require.Len(t, rx.Schedule, 2)
	assert.Equal(t, schedule.StatusTakenOnTime, rx.Schedule[0].Status)
}

func TestJSONCorruptedFileReadsEmpty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prescriptions.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))
	st, err := Open(Config{Driver: DriverJSON}, dir, zerolog.Nop())
	require.NoError(t, err)

	list, err := st.List(context.Background(), "alice")
	require.NoError(t, err)
	assert.Empty(t, list)

	require.NoError(t, st.Put(context.Background(), "alice", sampleRx("Aspirin")))
	list, err = st.List(context.Background(), "alice")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestSQLiteCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "rx.db")
	st, err := Open(Config{Driver: "SQLite", Path: path, BusyTimeout: time.Second}, t.TempDir(), zerolog.Nop())
	require.NoError(t, err)
	defer func() { _ = st.Close() }()

	require.NoError(t, st.Put(context.Background(), "alice", sampleRx("Aspirin")))
	_, err = os.Stat(path)
	assert.NoError(t, err)
}
