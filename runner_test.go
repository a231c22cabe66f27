package fsmx_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comalice/fsmx"
)

// runnerGraph builds an automaton whose middle state schedules its own
// continuation, so the runner can drive it to the stop state unattended.
func runnerGraph(t *testing.T) *fsmx.Machine[event, fsmx.Signal] {
	t.Helper()

	m, _, s1, _, _ := graph(t)

	st, _ := m.State(s1)
	st.SetAction(func(s fsmx.Signal) error {
		m.Transition(evFinish, s)
		return nil
	})
	// The handler obliges s1 to cover the whole alphabet.
	require.True(t, m.On(s1, evGo, s1))

	return m
}

func TestRunnerDrivesMachineToStop(t *testing.T) {
	m := runnerGraph(t)

	r := fsmx.NewRunner(m, time.Millisecond)
	require.NoError(t, r.Start(context.Background()))
	require.True(t, m.Raise(evGo, fsmx.NewSignal()))

	done := make(chan struct{})
	go func() {
		r.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("runner did not reach the stop state")
	}
	assert.Equal(t, fsmx.Stopped, m.Status())
}

func TestRunnerRefusesInvalidMachine(t *testing.T) {
	m := fsmx.New[event, fsmx.Signal](fsmx.Silent())
	r := fsmx.NewRunner(m, time.Millisecond)

	assert.Error(t, r.Start(context.Background()))
}

func TestRunnerStopHaltsMachine(t *testing.T) {
	m := runnerGraph(t)

	r := fsmx.NewRunner(m, time.Millisecond)
	require.NoError(t, r.Start(context.Background()))
	require.True(t, m.Running())

	r.Stop()
	assert.Equal(t, fsmx.Stopped, m.Status())
}

func TestRunnerStopsOnFault(t *testing.T) {
	m, _, s1, _, _ := graph(t)

	st, _ := m.State(s1)
	st.SetAction(func(fsmx.Signal) error { return assert.AnError })
	require.True(t, m.On(s1, evGo, s1))

	r := fsmx.NewRunner(m, time.Millisecond)
	require.NoError(t, r.Start(context.Background()))
	require.True(t, m.Raise(evGo, fsmx.NewSignal()))

	done := make(chan struct{})
	go func() {
		r.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("runner did not exit on fault")
	}
	assert.Equal(t, fsmx.Fault, m.Status())
}
