// Package watchdog provides liveness supervision for automaton run loops.
// The engine resets its watchdog once per pump; what happens when the
// watchdog starves is the caller's business.
package watchdog

import "time"

// Watchdog is a liveness supervisor. Enable arms it with a timeout; Reset
// must then be called periodically or the fail-safe action fires.
type Watchdog interface {
	Enable(timeout time.Duration)
	Reset()
}

// Noop discards all liveness tracking. It is the default machine watchdog.
type Noop struct{}

func (Noop) Enable(time.Duration) {}
func (Noop) Reset()               {}
