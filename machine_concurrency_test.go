package fsmx_test

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comalice/fsmx"
	"github.com/comalice/fsmx/policy"
)

// TestConcurrentRaise hammers Raise from many goroutines while a single
// pumper drains the queue, then drives the machine into its stop state.
func TestConcurrentRaise(t *testing.T) {
	m := fsmx.New[event, fsmx.Signal](fsmx.Silent(), fsmx.WithPolicy(policy.Threaded{}))

	var handled atomic.Int64

	s0, _ := m.AddState(fsmx.NewState[fsmx.Signal]())
	loop := fsmx.NewState[fsmx.Signal]()
	loop.SetAction(func(fsmx.Signal) error {
		handled.Add(1)
		return nil
	})
	sl, ok := m.AddState(loop)
	require.True(t, ok)
	s2, _ := m.AddState(fsmx.NewState[fsmx.Signal]())
	serr, _ := m.AddState(fsmx.NewState[fsmx.Signal]())

	require.True(t, m.On(s0, evGo, sl))
	require.True(t, m.On(sl, evGo, sl))
	require.True(t, m.On(sl, evFinish, s2))
	require.True(t, m.SetStartState(s0))
	require.True(t, m.AddStopState(s2))
	require.True(t, m.SetErrorState(serr))
	require.True(t, m.Start(true))

	const raisers, perRaiser = 8, 50

	var wg sync.WaitGroup
	for range raisers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range perRaiser {
				assert.True(t, m.Raise(evGo, fsmx.NewSignal()))
			}
		}()
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for m.Status() == fsmx.Running {
			if m.Pump() == fsmx.StateChanged && m.Stop(false) {
				return
			}
		}
	}()

	wg.Wait()
	// The machine only accepts evFinish once the pumper has moved it off the
	// start state.
	require.Eventually(t, func() bool {
		return m.Raise(evFinish, fsmx.NewSignal())
	}, 5*time.Second, time.Millisecond)

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("pumper did not reach the stop state")
	}

	assert.Equal(t, int64(raisers*perRaiser), handled.Load())
	assert.Equal(t, fsmx.Stopped, m.Status())
}

// TestStopWaitsForStopState blocks a waiter on Stop(true) and releases it by
// pumping the machine into a stop state.
func TestStopWaitsForStopState(t *testing.T) {
	m, _, _, _, _ := graph(t)
	require.True(t, m.Start(true))

	released := make(chan bool, 1)
	go func() { released <- m.Stop(true) }()

	require.True(t, m.Transition(evGo, fsmx.NewSignal()))
	require.Equal(t, fsmx.StateChanged, m.Pump())
	require.True(t, m.Transition(evFinish, fsmx.NewSignal()))
	require.Equal(t, fsmx.StateChanged, m.Pump())

	select {
	case ok := <-released:
		assert.True(t, ok)
	case <-time.After(time.Second):
		t.Fatal("Stop(true) was not released by the stop state")
	}
}
