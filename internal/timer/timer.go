package timer

import (
	"fmt"
	"sync"

	"github.com/hperssn/meditate/internal/domain"
)

type Phase int

const (
	PhaseIdle Phase = iota
	PhaseRunning
	PhasePaused
	PhaseCompleted
	PhaseStopped
)

var phaseNames = [...]string{
	PhaseIdle:      "idle",
	PhaseRunning:   "running",
	PhasePaused:    "paused",
	PhaseCompleted: "completed",
	PhaseStopped:   "stopped",
}

func (p Phase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return "unknown"
}

func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Phase) UnmarshalText(text []byte) error {
	for i, name := range phaseNames {
		if name == string(text) {
			*p = Phase(i)
			return nil
		}
	}
	return fmt.Errorf("unknown phase %q", text)
}

// Terminal reports whether no further transition is possible.
func (p Phase) Terminal() bool {
	return p == PhaseCompleted || p == PhaseStopped
}

// State is a point-in-time copy of a timer.
type State struct {
	TotalSeconds     int   `json:"totalSeconds"`
	RemainingSeconds int   `json:"remainingSeconds"`
	Percent          int   `json:"percent"`
	Phase            Phase `json:"phase"`
	StopPending      bool  `json:"stopPending"`
}

// TickSource delivers ticks once per second between Start and Halt. Every
// tick carries the epoch passed to the Start that scheduled it, so a tick
// already in flight when the source was restarted can be told apart.
// Both methods must be safe to call repeatedly and must not block on an
// in-flight tick.
type TickSource interface {
	Start(epoch uint64)
	Halt()
}

// Timer is the countdown state machine of one session run. It only reacts to
// commands and to Tick; the tick source decides when a second has passed.
//
// Commands issued in the wrong phase are ignored and report false.
type Timer struct {
	mu sync.Mutex

	session   domain.SessionRecord
	total     int
	remaining int
	percent   int
	phase     Phase

	// set between RequestStop and Stop while the user confirms
	stopPending     bool
	resumeAfterStop bool

	ticks  TickSource
	epoch  uint64
	notify Listener
}

// New binds a timer to session. ticks may be nil when the caller delivers
// Tick itself; notify may be nil.
func New(session domain.SessionRecord, ticks TickSource, notify Listener) *Timer {
	total := session.TotalSeconds()
	if ticks == nil {
		ticks = noTicks{}
	}
	if notify == nil {
		notify = func(Event) {}
	}

	return &Timer{
		session:   session,
		total:     total,
		remaining: total,
		phase:     PhaseIdle,
		ticks:     ticks,
		notify:    notify,
	}
}

func (t *Timer) Session() domain.SessionRecord {
	return t.session
}

func (t *Timer) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.snapshot()
}

func (t *Timer) Phase() Phase {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.phase
}

func (t *Timer) Start() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.phase != PhaseIdle || t.stopPending {
		return false
	}

	t.phase = PhaseRunning
	t.startTicks()
	return true
}

// Tick advances a running timer by one second and reports progress. The
// final tick completes the run and emits the completion event.
func (t *Timer) Tick() bool {
	t.mu.Lock()
	return t.tickLocked()
}

// tickEpoch is Tick for a tick source: ticks scheduled before the latest
// restart are dropped.
func (t *Timer) tickEpoch(epoch uint64) bool {
	t.mu.Lock()
	if epoch != t.epoch {
		t.mu.Unlock()
		return false
	}
	return t.tickLocked()
}

// tickLocked must be called with mu held and releases it.
func (t *Timer) tickLocked() bool {
	if t.phase != PhaseRunning || t.stopPending {
		t.mu.Unlock()
		return false
	}

	if t.remaining > 0 {
		t.remaining--
	}
	t.percent = 100 * (t.total - t.remaining) / t.total

	events := make([]Event, 0, 2)
	completed := t.percent >= 100 || t.remaining == 0
	if completed {
		t.percent = 100
		t.ticks.Halt()
		t.phase = PhaseCompleted
	}

	events = append(events, Event{
		Type:             EventProgress,
		Percent:          t.percent,
		RemainingSeconds: t.remaining,
	})
	if completed {
		events = append(events, Event{
			Type:             EventCompleted,
			Percent:          t.percent,
			RemainingSeconds: t.remaining,
			Title:            t.session.Title,
			DurationMinutes:  t.session.DurationMinutes,
		})
	}
	t.mu.Unlock()

	t.emit(events...)
	return true
}

func (t *Timer) Pause() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.phase != PhaseRunning || t.stopPending {
		return false
	}

	t.ticks.Halt()
	t.phase = PhasePaused
	return true
}

func (t *Timer) Resume() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.phase != PhasePaused || t.stopPending {
		return false
	}

	t.phase = PhaseRunning
	t.startTicks()
	return true
}

// RequestStop freezes the countdown while a stop confirmation is pending.
// It is valid from Idle, Running and Paused.
func (t *Timer) RequestStop() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.requestStop()
}

// Stop resolves a stop request, issuing one first if none is pending.
// A confirmed stop is terminal; a declined one restores the prior phase.
func (t *Timer) Stop(confirmed bool) bool {
	t.mu.Lock()

	if !t.requestStop() {
		t.mu.Unlock()
		return false
	}

	t.stopPending = false

	var events []Event
	if confirmed {
		t.phase = PhaseStopped
		events = append(events, Event{
			Type:             EventStopped,
			Percent:          t.percent,
			RemainingSeconds: t.remaining,
			Title:            t.session.Title,
			DurationMinutes:  t.session.DurationMinutes,
		})
	} else if t.resumeAfterStop {
		t.startTicks()
	}
	t.resumeAfterStop = false
	t.mu.Unlock()

	t.emit(events...)
	return true
}

// requestStop must be called with mu held. A pending request is left as is.
func (t *Timer) requestStop() bool {
	if t.phase.Terminal() {
		return false
	}
	if t.stopPending {
		return true
	}

	t.stopPending = true
	t.resumeAfterStop = t.phase == PhaseRunning
	if t.resumeAfterStop {
		t.ticks.Halt()
	}
	return true
}

// startTicks must be called with mu held.
func (t *Timer) startTicks() {
	t.epoch++
	t.ticks.Start(t.epoch)
}

func (t *Timer) snapshot() State {
	return State{
		TotalSeconds:     t.total,
		RemainingSeconds: t.remaining,
		Percent:          t.percent,
		Phase:            t.phase,
		StopPending:      t.stopPending,
	}
}

// emit runs outside the lock so listeners may call back into the timer.
func (t *Timer) emit(events ...Event) {
	for _, ev := range events {
		t.notify(ev)
	}
}

type noTicks struct{}

func (noTicks) Start(uint64) {}
func (noTicks) Halt()        {}
