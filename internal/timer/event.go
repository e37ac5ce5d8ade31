package timer

type EventType string

const (
	EventProgress  EventType = "progress"
	EventCompleted EventType = "completed"
	EventStopped   EventType = "stopped"
)

// Event is what a display surface receives from a timer. Progress events
// arrive on every tick; completed and stopped are sent at most once.
type Event struct {
	Type             EventType `json:"type"`
	Percent          int       `json:"percent"`
	RemainingSeconds int       `json:"remainingSeconds"`
	Title            string    `json:"title,omitempty"`
	DurationMinutes  int       `json:"durationMinutes,omitempty"`
}

// Final reports whether no event will follow this one.
func (e Event) Final() bool {
	return e.Type == EventCompleted || e.Type == EventStopped
}

type Listener func(Event)

// Fanout returns a listener that forwards every event to each of ls in order.
func Fanout(ls ...Listener) Listener {
	return func(ev Event) {
		for _, l := range ls {
			if l != nil {
				l(ev)
			}
		}
	}
}
