package cli

import (
	"bytes"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/Flyrell/wellnest/internal/schedule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execRemind(env *appEnv, now time.Time) (string, error) {
	stdout := new(bytes.Buffer)
	cmd := remindCmd
	cmd.SetOut(stdout)
	err := runRemind(cmd, env, now)
	return stdout.String(), err
}

func TestRemindDueAndOverdue(t *testing.T) {
	env := newTestEnv(t)
	seedAspirin(t, env)
	// 2025-01-03 stays scheduled, 2025-01-01 is outside the lookback window.
	stdout, err := execRemind(env, testNow)

	require.NoError(t, err)
	assert.Contains(t, stdout, "Due today (2025-01-06):")
	assert.Contains(t, stdout, "Aspirin")
	assert.Contains(t, stdout, "1 dose(s) from the last 3 days still unmarked")
	assert.Contains(t, stdout, "on 2025-01-03")
	assert.NotContains(t, stdout, "2025-01-01")
}

func TestRemindSkipsMarkedDoses(t *testing.T) {
	env := newTestEnv(t)
	seedAspirin(t, env)
	ctx := context.Background()
	_, err := env.svc.UpdateStatus(ctx, env.user, "Aspirin", time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC), schedule.StatusMissed)
	require.NoError(t, err)
	_, err = env.svc.UpdateStatus(ctx, env.user, "Aspirin", testNow, schedule.StatusTakenOnTime)
	require.NoError(t, err)

	stdout, err := execRemind(env, testNow)

	require.NoError(t, err)
	assert.Contains(t, stdout, "Nothing due on 2025-01-06.")
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestRemindWatchRunsUntilCancelled(t *testing.T) {
	env := newTestEnv(t)
	seedAspirin(t, env)
	env.cfg.Remind.Spec = "@every 1h"

	out := &syncBuffer{}
	cmd := remindCmd
	cmd.SetOut(out)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- runRemindWatch(ctx, cmd, env, func() time.Time { return testNow })
	}()

	require.Eventually(t, func() bool {
		return bytes.Contains([]byte(out.String()), []byte("Due today"))
	}, 5*time.Second, 20*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}
}

func TestRemindWatchInvalidSpec(t *testing.T) {
	env := newTestEnv(t)
	env.cfg.Remind.Spec = "sometimes"

	err := runRemindWatch(context.Background(), remindCmd, env, time.Now)

	assert.Error(t, err)
}
