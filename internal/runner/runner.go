package runner

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"

	"github.com/hperssn/meditate/internal/domain"
	"github.com/hperssn/meditate/internal/metrics"
	"github.com/hperssn/meditate/internal/timer"
)

const subscriberBuffer = 16

// Observer is told about run lifecycle changes. *metrics.Metrics satisfies it.
type Observer interface {
	RunOutcome(kind domain.Kind, outcome string)
	RunOpened()
	RunClosed()
}

// Snapshot is a read-only view of a run.
type Snapshot struct {
	ID        string               `json:"id"`
	Session   domain.SessionRecord `json:"session"`
	State     timer.State          `json:"state"`
	CreatedAt time.Time            `json:"createdAt"`
}

// Run is one open session view: a timer, the clock ticker driving it, and the
// subscribers following its events.
type Run struct {
	ID        string
	CreatedAt time.Time

	session domain.SessionRecord
	timer   *timer.Timer
	ticker  *timer.ClockTicker
	clock   clockwork.Clock
	log     *logrus.Entry
	obs     Observer

	mu         sync.Mutex
	subs       map[int]chan timer.Event
	nextSub    int
	last       *timer.Event
	touchedAt  time.Time
	finishedAt time.Time
	closed     bool
	released   bool
}

func NewRun(session domain.SessionRecord, clock clockwork.Clock, log *logrus.Entry, obs Observer) *Run {
	if obs == nil {
		obs = nopObserver{}
	}

	id := uuid.New().String()
	r := &Run{
		ID:        id,
		CreatedAt: clock.Now(),
		session:   session,
		clock:     clock,
		log:       log.WithFields(logrus.Fields{"run": id, "session": session.Title}),
		obs:       obs,
		subs:      make(map[int]chan timer.Event),
	}
	r.touchedAt = r.CreatedAt

	r.timer, r.ticker = timer.Bind(clock, func(ts timer.TickSource) *timer.Timer {
		return timer.New(session, ts, r.publish)
	})

	obs.RunOpened()
	return r
}

func (r *Run) Session() domain.SessionRecord {
	return r.session
}

func (r *Run) State() timer.State {
	return r.timer.State()
}

func (r *Run) Snapshot() Snapshot {
	return Snapshot{
		ID:        r.ID,
		Session:   r.session,
		State:     r.timer.State(),
		CreatedAt: r.CreatedAt,
	}
}

func (r *Run) Start() bool {
	if !r.timer.Start() {
		return false
	}

	r.touch()
	r.log.Info(r.session.Kind.PlayMessage(r.session.Title))
	r.log.Debug(r.session.Kind.Cue())
	r.obs.RunOutcome(r.session.Kind, metrics.OutcomeStarted)
	return true
}

func (r *Run) Pause() bool {
	if !r.timer.Pause() {
		return false
	}
	r.touch()
	r.log.Info("Session paused")
	return true
}

func (r *Run) Resume() bool {
	if !r.timer.Resume() {
		return false
	}
	r.touch()
	r.log.Info("Session resumed")
	return true
}

func (r *Run) RequestStop() bool {
	if !r.timer.RequestStop() {
		return false
	}
	r.touch()
	r.log.Debug("Stop requested, waiting for confirmation")
	return true
}

func (r *Run) Stop(confirmed bool) bool {
	if !r.timer.Stop(confirmed) {
		return false
	}
	r.touch()
	if !confirmed {
		r.log.Debug("Stop declined")
	}
	return true
}

// Subscribe returns a channel of timer events and a func to release it. The
// channel is closed after the final event or when the run is closed. Slow
// subscribers lose the oldest progress events, never the final one.
func (r *Run) Subscribe() (<-chan timer.Event, func()) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ch := make(chan timer.Event, subscriberBuffer)
	if r.closed {
		if r.last != nil {
			ch <- *r.last
		}
		close(ch)
		return ch, func() {}
	}

	id := r.nextSub
	r.nextSub++
	r.subs[id] = ch

	return ch, func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		if c, ok := r.subs[id]; ok {
			delete(r.subs, id)
			close(c)
		}
	}
}

// Finished reports whether the run reached a terminal phase and when.
func (r *Run) Finished() (time.Time, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.finishedAt, !r.finishedAt.IsZero()
}

// Stale reports whether the run has waited for a command since before cutoff
// without a ticker driving it: never started, paused, or asking for a stop
// confirmation. Running and finished runs are never stale.
func (r *Run) Stale(cutoff time.Time) bool {
	st := r.timer.State()
	if st.Phase.Terminal() || (st.Phase == timer.PhaseRunning && !st.StopPending) {
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	return r.touchedAt.Before(cutoff)
}

func (r *Run) touch() {
	now := r.clock.Now()

	r.mu.Lock()
	r.touchedAt = now
	r.mu.Unlock()
}

// Close destroys the run: the ticker is halted and subscribers are released.
func (r *Run) Close() {
	r.ticker.Halt()

	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.closed {
		r.closeLocked()
	}
	if !r.released {
		r.released = true
		r.obs.RunClosed()
	}
}

func (r *Run) publish(ev timer.Event) {
	switch ev.Type {
	case timer.EventCompleted:
		r.log.WithField("minutes", ev.DurationMinutes).Info("Session completed")
		r.obs.RunOutcome(r.session.Kind, metrics.OutcomeCompleted)
	case timer.EventStopped:
		r.log.WithField("remaining", ev.RemainingSeconds).Info("Session stopped")
		r.obs.RunOutcome(r.session.Kind, metrics.OutcomeStopped)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return
	}

	for _, ch := range r.subs {
		send(ch, ev)
	}

	if ev.Final() {
		r.last = &ev
		r.finishedAt = r.clock.Now()
		r.closeLocked()
	}
}

func (r *Run) closeLocked() {
	r.closed = true
	for id, ch := range r.subs {
		close(ch)
		delete(r.subs, id)
	}
}

// send never blocks; when ch is full the oldest queued event is dropped.
func send(ch chan timer.Event, ev timer.Event) {
	for {
		select {
		case ch <- ev:
			return
		default:
		}

		select {
		case <-ch:
		default:
		}
	}
}

type nopObserver struct{}

func (nopObserver) RunOutcome(domain.Kind, string) {}
func (nopObserver) RunOpened()                     {}
func (nopObserver) RunClosed()                     {}
