package watchdog

import (
	"sync"
	"time"
)

// Timer is a timer-backed watchdog. Once enabled, the expire callback runs on
// its own goroutine whenever the timeout elapses without a Reset.
type Timer struct {
	mu      sync.Mutex
	timeout time.Duration
	timer   *time.Timer
	expire  func()
}

// NewTimer creates a disarmed Timer. The watchdog does nothing until Enable
// is called.
func NewTimer(expire func()) *Timer {
	return &Timer{expire: expire}
}

// Enable arms the watchdog. Calling Enable on an armed watchdog rearms it
// with the new timeout.
func (w *Timer) Enable(timeout time.Duration) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.timeout = timeout
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(timeout, w.fire)
}

// Reset pushes the deadline back by the configured timeout. Resetting a
// disarmed watchdog is a no-op.
func (w *Timer) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer == nil {
		return
	}
	w.timer.Reset(w.timeout)
}

// Disable stops the watchdog without firing the callback.
func (w *Timer) Disable() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
}

func (w *Timer) fire() {
	if w.expire != nil {
		w.expire()
	}
}
