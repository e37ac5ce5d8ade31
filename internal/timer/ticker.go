package timer

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

const TickInterval = time.Second

// ClockTicker is a TickSource backed by a clockwork ticker. At most one
// ticker goroutine is scheduled at a time.
type ClockTicker struct {
	clock clockwork.Clock
	fn    func(epoch uint64)

	mu    sync.Mutex
	stop  chan struct{}
	epoch uint64
}

func NewClockTicker(clock clockwork.Clock, fn func(epoch uint64)) *ClockTicker {
	return &ClockTicker{clock: clock, fn: fn}
}

// Bind wires a ticker to t and returns both. It is the usual way to build a
// self-driving timer.
func Bind(clock clockwork.Clock, build func(TickSource) *Timer) (*Timer, *ClockTicker) {
	ct := &ClockTicker{clock: clock}
	t := build(ct)
	ct.fn = func(epoch uint64) { t.tickEpoch(epoch) }
	return t, ct
}

// Start schedules ticks tagged with epoch. Starting again with the same epoch
// is a no-op; a new epoch replaces the running goroutine.
func (c *ClockTicker) Start(epoch uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stop != nil {
		if c.epoch == epoch {
			return
		}
		close(c.stop)
	}

	stop := make(chan struct{})
	c.stop = stop
	c.epoch = epoch
	ticker := c.clock.NewTicker(TickInterval)

	go func() {
		defer ticker.Stop()

		for {
			select {
			case <-ticker.Chan():
				select {
				case <-stop:
					return
				default:
				}
				c.fn(epoch)

			case <-stop:
				return
			}
		}
	}()
}

// Halt stops the ticker without waiting for the goroutine, since Halt is
// called from inside fn when a run completes.
func (c *ClockTicker) Halt() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stop == nil {
		return
	}
	close(c.stop)
	c.stop = nil
}

// Running reports whether a ticker goroutine is currently scheduled.
func (c *ClockTicker) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stop != nil
}
