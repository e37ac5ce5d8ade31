package runner_test

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hperssn/meditate/internal/catalog"
	"github.com/hperssn/meditate/internal/domain"
	"github.com/hperssn/meditate/internal/logging"
	"github.com/hperssn/meditate/internal/runner"
	"github.com/hperssn/meditate/internal/timer"
)

func newManager(clock clockwork.Clock) *runner.Manager {
	return runner.NewManager(
		domain.NewCatalog(catalog.FallbackSessions(), true),
		clock,
		time.Hour,
		logging.Component(logging.Discard(), "runner"),
		nil,
	)
}

func TestManager_CreateAndGet(t *testing.T) {
	m := newManager(clockwork.NewFakeClock())

	r, err := m.Create(1)
	require.NoError(t, err)
	defer m.Close(r.ID)

	got, ok := m.Get(r.ID)
	require.True(t, ok)
	assert.Equal(t, "Deep Breathing", got.Session().Title)

	snap, err := m.Snapshot(r.ID)
	require.NoError(t, err)
	assert.Equal(t, 300, snap.State.TotalSeconds)
	assert.Equal(t, timer.PhaseIdle, snap.State.Phase)
}

func TestManager_CreateOutOfRange(t *testing.T) {
	m := newManager(clockwork.NewFakeClock())

	for _, idx := range []int{-1, 5, 100} {
		_, err := m.Create(idx)
		assert.ErrorIs(t, err, runner.ErrSessionNotFound)
	}
}

func TestManager_RunsAreIndependent(t *testing.T) {
	m := newManager(clockwork.NewFakeClock())

	a, err := m.Create(0)
	require.NoError(t, err)
	b, err := m.Create(0)
	require.NoError(t, err)
	defer m.Close(a.ID)
	defer m.Close(b.ID)

	assert.NotEqual(t, a.ID, b.ID)

	require.NoError(t, m.Start(a.ID))
	assert.Equal(t, timer.PhaseRunning, a.State().Phase)
	assert.Equal(t, timer.PhaseIdle, b.State().Phase)
}

func TestManager_InvalidTransitions(t *testing.T) {
	m := newManager(clockwork.NewFakeClock())

	r, err := m.Create(0)
	require.NoError(t, err)
	defer m.Close(r.ID)

	assert.ErrorIs(t, m.Pause(r.ID), runner.ErrInvalidTransition)
	assert.ErrorIs(t, m.Resume(r.ID), runner.ErrInvalidTransition)
	require.NoError(t, m.Stop(r.ID, false), "declining a stop before start keeps the run")
	assert.Equal(t, timer.PhaseIdle, r.State().Phase)

	require.NoError(t, m.Start(r.ID))
	assert.ErrorIs(t, m.Start(r.ID), runner.ErrInvalidTransition)

	require.NoError(t, m.Pause(r.ID))
	require.NoError(t, m.Resume(r.ID))
	require.NoError(t, m.RequestStop(r.ID))
	require.NoError(t, m.Stop(r.ID, true))

	assert.ErrorIs(t, m.Start(r.ID), runner.ErrInvalidTransition)
	assert.Equal(t, timer.PhaseStopped, r.State().Phase)
}

func TestManager_MissingRun(t *testing.T) {
	m := newManager(clockwork.NewFakeClock())

	assert.ErrorIs(t, m.Start("missing"), runner.ErrRunNotFound)
	assert.ErrorIs(t, m.Stop("missing", true), runner.ErrRunNotFound)
	assert.ErrorIs(t, m.Close("missing"), runner.ErrRunNotFound)

	_, err := m.Snapshot("missing")
	assert.ErrorIs(t, err, runner.ErrRunNotFound)

	_, _, err = m.Events("missing")
	assert.ErrorIs(t, err, runner.ErrRunNotFound)
}

func TestManager_Close(t *testing.T) {
	m := newManager(clockwork.NewFakeClock())

	r, err := m.Create(2)
	require.NoError(t, err)
	require.NoError(t, m.Start(r.ID))

	events, release, err := m.Events(r.ID)
	require.NoError(t, err)
	defer release()

	require.NoError(t, m.Close(r.ID))

	_, ok := m.Get(r.ID)
	assert.False(t, ok)

	_, open := <-events
	assert.False(t, open)
}

func TestManager_StopBeforeStart(t *testing.T) {
	m := newManager(clockwork.NewFakeClock())

	r, err := m.Create(3)
	require.NoError(t, err)
	defer m.Close(r.ID)

	require.NoError(t, m.Stop(r.ID, true))

	snap, err := m.Snapshot(r.ID)
	require.NoError(t, err)
	assert.Equal(t, timer.PhaseStopped, snap.State.Phase)
	assert.Equal(t, 480, snap.State.RemainingSeconds)
	assert.ErrorIs(t, m.Start(r.ID), runner.ErrInvalidTransition)
}

func TestManager_CleanupRemovesOldRuns(t *testing.T) {
	clock := clockwork.NewFakeClock()
	m := newManager(clock)

	finished, err := m.Create(0)
	require.NoError(t, err)
	require.NoError(t, m.Start(finished.ID))
	require.NoError(t, m.Stop(finished.ID, true))

	idle, err := m.Create(1)
	require.NoError(t, err)

	paused, err := m.Create(2)
	require.NoError(t, err)
	require.NoError(t, m.Start(paused.ID))
	require.NoError(t, m.Pause(paused.ID))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		m.Run(ctx)
		close(done)
	}()

	gone := func(id string) bool {
		_, ok := m.Get(id)
		return !ok
	}

	// the cleanup ticker registers asynchronously, so keep moving the clock
	// until it has swept past the retention window
	assert.Eventually(t, func() bool {
		clock.Advance(5 * time.Minute)
		return gone(finished.ID) && gone(idle.ID) && gone(paused.ID)
	}, 2*time.Second, time.Millisecond)

	fresh, err := m.Create(4)
	require.NoError(t, err)

	cancel()
	<-done

	assert.True(t, gone(fresh.ID), "shutdown closes remaining runs")
}
