package prescription

import (
	"context"
	"testing"
	"time"

	"github.com/Flyrell/wellnest/internal/schedule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsEmpty(t *testing.T) {
	svc, _ := newTestService()

	stats, err := svc.Stats(context.Background(), "alice")

	require.NoError(t, err)
	assert.Equal(t, 0, stats.Total)
	require.Len(t, stats.Counts, 3)
	for _, c := range stats.Counts {
		assert.Zero(t, c.Count)
		assert.Zero(t, c.Percent)
	}
}

func TestStatsDistribution(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()
	require.NoError(t, store.Put(ctx, "alice", Prescription{
		Name: "A",
		Schedule: []schedule.Entry{
			{Day: 1, Month: 1, Year: 2025, Status: schedule.StatusTakenOnTime},
			{Day: 2, Month: 1, Year: 2025, Status: schedule.StatusMissed},
			{Day: 3, Month: 1, Year: 2025},
		},
	}))
	require.NoError(t, store.Put(ctx, "alice", Prescription{
		Name: "B",
		Schedule: []schedule.Entry{
			{Day: 1, Month: 1, Year: 2025, Status: schedule.StatusTakenOnTime},
			{Day: 2, Month: 1, Year: 2025, Status: "late"},
		},
	}))

	stats, err := svc.Stats(ctx, "alice")

	require.NoError(t, err)
	assert.Equal(t, 5, stats.Total)
	assert.Equal(t, []StatusCount{
		{Status: schedule.StatusScheduled, Count: 1, Percent: 20},
		{Status: schedule.StatusTakenOnTime, Count: 2, Percent: 40},
		{Status: schedule.StatusMissed, Count: 1, Percent: 20},
		{Status: "late", Count: 1, Percent: 20},
	}, stats.Counts)
}

func TestDoses(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	_, err := svc.Create(ctx, "alice", aspirin())
	require.NoError(t, err)
	in := aspirin()
	in.Name = "Zinc"
	in.Weekdays = "Wed,Thu"
	_, err = svc.Create(ctx, "alice", in)
	require.NoError(t, err)

	doses, err := svc.Doses(ctx, "alice",
		time.Date(2025, 1, 1, 20, 0, 0, 0, time.UTC),
		time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC))

	require.NoError(t, err)
	require.Len(t, doses, 4)
	assert.Equal(t, "Aspirin", doses[0].Prescription)
	assert.Equal(t, "2025-01-01", schedule.FormatDate(doses[0].Entry.Date()))
	assert.Equal(t, "Zinc", doses[1].Prescription)
	assert.Equal(t, "2025-01-01", schedule.FormatDate(doses[1].Entry.Date()))
	assert.Equal(t, "Zinc", doses[2].Prescription)
	assert.Equal(t, "2025-01-02", schedule.FormatDate(doses[2].Entry.Date()))
	assert.Equal(t, "Aspirin", doses[3].Prescription)
	assert.Equal(t, "2025-01-03", schedule.FormatDate(doses[3].Entry.Date()))
}

func TestDue(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	_, err := svc.Create(ctx, "alice", aspirin())
	require.NoError(t, err)

	doses, err := svc.Due(ctx, "alice", time.Date(2025, 1, 6, 23, 59, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, doses, 1)
	assert.Equal(t, "Aspirin", doses[0].Prescription)

	doses, err = svc.Due(ctx, "alice", time.Date(2025, 1, 7, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Empty(t, doses)
}
