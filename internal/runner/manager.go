package runner

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"

	"github.com/hperssn/meditate/internal/domain"
	"github.com/hperssn/meditate/internal/timer"
)

var (
	ErrRunNotFound       = errors.New("run not found")
	ErrSessionNotFound   = errors.New("session not found")
	ErrInvalidTransition = errors.New("command not valid in current phase")
)

const cleanupInterval = 5 * time.Minute

// Manager owns the open runs of one catalog. Runs are independent of each
// other; the manager only maps IDs to them.
type Manager struct {
	catalog   *domain.Catalog
	clock     clockwork.Clock
	retention time.Duration
	log       *logrus.Entry
	obs       Observer

	mu   sync.Mutex
	runs map[string]*Run
}

func NewManager(catalog *domain.Catalog, clock clockwork.Clock, retention time.Duration, log *logrus.Entry, obs Observer) *Manager {
	return &Manager{
		catalog:   catalog,
		clock:     clock,
		retention: retention,
		log:       log,
		obs:       obs,
		runs:      make(map[string]*Run),
	}
}

func (m *Manager) Catalog() *domain.Catalog {
	return m.catalog
}

// Run sweeps finished runs, and runs left waiting for a command, once they
// are older than the retention window. It returns when ctx is cancelled.
func (m *Manager) Run(ctx context.Context) {
	ticker := m.clock.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			m.closeAll()
			return
		case <-ticker.Chan():
			m.cleanupOldRuns()
		}
	}
}

func (m *Manager) cleanupOldRuns() {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := m.clock.Now().Add(-m.retention)

	for id, r := range m.runs {
		if at, ok := r.Finished(); ok && at.Before(cutoff) {
			r.Close()
			delete(m.runs, id)
			m.log.WithField("run", id).Debug("Removed finished run")
			continue
		}
		if r.Stale(cutoff) {
			r.Close()
			delete(m.runs, id)
			m.log.WithField("run", id).Info("Removed abandoned run")
		}
	}
}

func (m *Manager) closeAll() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, r := range m.runs {
		r.Close()
		delete(m.runs, id)
	}
}

// Create opens a run for the catalog entry at idx.
func (m *Manager) Create(idx int) (*Run, error) {
	session, ok := m.catalog.At(idx)
	if !ok {
		return nil, ErrSessionNotFound
	}

	r := NewRun(session, m.clock, m.log, m.obs)

	m.mu.Lock()
	m.runs[r.ID] = r
	m.mu.Unlock()

	return r, nil
}

func (m *Manager) Get(id string) (*Run, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.runs[id]
	return r, ok
}

func (m *Manager) Snapshot(id string) (Snapshot, error) {
	r, ok := m.Get(id)
	if !ok {
		return Snapshot{}, ErrRunNotFound
	}
	return r.Snapshot(), nil
}

func (m *Manager) Start(id string) error {
	return m.command(id, (*Run).Start)
}

func (m *Manager) Pause(id string) error {
	return m.command(id, (*Run).Pause)
}

func (m *Manager) Resume(id string) error {
	return m.command(id, (*Run).Resume)
}

func (m *Manager) RequestStop(id string) error {
	return m.command(id, (*Run).RequestStop)
}

func (m *Manager) Stop(id string, confirmed bool) error {
	return m.command(id, func(r *Run) bool { return r.Stop(confirmed) })
}

// Close destroys a run, as when its session view is dismissed.
func (m *Manager) Close(id string) error {
	m.mu.Lock()
	r, ok := m.runs[id]
	delete(m.runs, id)
	m.mu.Unlock()

	if !ok {
		return ErrRunNotFound
	}

	r.Close()
	return nil
}

func (m *Manager) Events(id string) (<-chan timer.Event, func(), error) {
	r, ok := m.Get(id)
	if !ok {
		return nil, nil, ErrRunNotFound
	}

	ch, release := r.Subscribe()
	return ch, release, nil
}

// command applies fn to the run. The timer ignores commands issued in the
// wrong phase; the manager surfaces that as ErrInvalidTransition.
func (m *Manager) command(id string, fn func(*Run) bool) error {
	r, ok := m.Get(id)
	if !ok {
		return ErrRunNotFound
	}

	if !fn(r) {
		return ErrInvalidTransition
	}
	return nil
}
