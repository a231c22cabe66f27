package fsmx

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// DefaultTick is the pump interval used when a Runner is created without an
// explicit tick.
const DefaultTick = 10 * time.Millisecond

// Runner is a ready-made run loop for a machine: it starts the automaton and
// pumps it on a fixed tick until the context is cancelled, a handler faults
// or a stop state is reached. Pumping on a tick keeps the watchdog alive for
// exactly as long as the loop is.
type Runner[E EventID, A any] struct {
	machine *Machine[E, A]
	tick    time.Duration
	log     *slog.Logger
	cancel  context.CancelFunc
	done    chan struct{}
}

// NewRunner creates a runner for m. A non-positive tick selects DefaultTick.
func NewRunner[E EventID, A any](m *Machine[E, A], tick time.Duration) *Runner[E, A] {
	if tick <= 0 {
		tick = DefaultTick
	}
	return &Runner[E, A]{
		machine: m,
		tick:    tick,
		log:     m.log.With("component", "runner"),
		done:    make(chan struct{}),
	}
}

// Start validates and starts the machine, then pumps it on the configured
// tick from its own goroutine.
func (r *Runner[E, A]) Start(ctx context.Context) error {
	if !r.machine.Start(true) {
		return errors.New("fsmx: machine failed validation")
	}

	ctx, r.cancel = context.WithCancel(ctx)
	go r.loop(ctx)

	return nil
}

// Stop cancels the run loop and waits for it to exit.
func (r *Runner[E, A]) Stop() {
	if r.cancel == nil {
		return
	}
	r.cancel()
	<-r.done
}

// Wait blocks until the run loop exits on its own.
func (r *Runner[E, A]) Wait() {
	<-r.done
}

func (r *Runner[E, A]) loop(ctx context.Context) {
	defer close(r.done)

	ticker := time.NewTicker(r.tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.machine.Halt()
			return
		case <-ticker.C:
			switch st := r.machine.Pump(); st {
			case Fault:
				r.log.Error("machine faulted")
				return
			case StateChanged:
				// A stop state terminates the loop; anything else keeps
				// pumping.
				if r.machine.Stop(false) {
					return
				}
			default:
			}
		}
	}
}
