package timectrl

import (
	"sync"
	"time"
)

// SimClock provides read access to simulation time, so components like the
// catalog refresh loop can depend on a clock abstraction rather than the
// concrete controller.
type SimClock interface {
	// Now returns the current simulation time.
	Now() time.Time
}

// Mode describes how the TimeController advances simulation time.
type Mode int

const (
	// RealTime advances according to wall-clock time.
	RealTime Mode = iota
	// Accelerated advances as quickly as the loop can run while still stepping by Tick.
	Accelerated
)

// TimeController drives simulation time and notifies registered listeners
// on every tick. The daemon uses it to refresh tracked-object states and
// rerun conjunction screening at a fixed cadence.
type TimeController struct {
	mu        sync.RWMutex
	StartTime time.Time
	Tick      time.Duration
	Mode      Mode

	currentTime time.Time

	listeners []func(time.Time)

	stop     chan struct{}
	stopOnce sync.Once
}

// NewTimeController constructs a controller.
func NewTimeController(start time.Time, tick time.Duration, mode Mode) *TimeController {
	return &TimeController{
		StartTime:   start,
		Tick:        tick,
		Mode:        mode,
		currentTime: start,
		stop:        make(chan struct{}),
	}
}

// Now returns the current simulation time. Implements SimClock.
func (tc *TimeController) Now() time.Time {
	tc.mu.RLock()
	defer tc.mu.RUnlock()
	return tc.currentTime
}

// SetTime forces the current simulation time, without notifying listeners.
func (tc *TimeController) SetTime(t time.Time) {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	tc.currentTime = t
}

// AddListener registers a callback invoked on every tick.
func (tc *TimeController) AddListener(fn func(time.Time)) {
	tc.listeners = append(tc.listeners, fn)
}

// Start runs the controller for the specified duration in a separate
// goroutine and returns a channel that is closed when it finishes. A zero
// duration runs until Stop is called. In Accelerated mode each tick advances
// simulation time by Tick without waiting for wall-clock time to pass.
func (tc *TimeController) Start(duration time.Duration) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)

		tc.mu.Lock()
		simTime := tc.StartTime
		tc.currentTime = simTime
		tc.mu.Unlock()

		var ticker *time.Ticker
		if tc.Mode == RealTime {
			ticker = time.NewTicker(tc.Tick)
			defer ticker.Stop()
		}

		elapsed := time.Duration(0)
		for {
			if duration > 0 && elapsed >= duration {
				return
			}

			if ticker != nil {
				select {
				case <-ticker.C:
				case <-tc.stop:
					return
				}
			} else {
				select {
				case <-tc.stop:
					return
				default:
				}
			}
			simTime = simTime.Add(tc.Tick)
			elapsed += tc.Tick

			tc.mu.Lock()
			tc.currentTime = simTime
			tc.mu.Unlock()

			for _, fn := range tc.listeners {
				fn(simTime)
			}
		}
	}()
	return done
}

// Stop ends a running controller, including unbounded (zero-duration) runs.
// Safe to call more than once.
func (tc *TimeController) Stop() {
	tc.stopOnce.Do(func() { close(tc.stop) })
}
