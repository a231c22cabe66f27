package fsmx_test

import (
	"testing"

	"github.com/comalice/fsmx"
	"github.com/comalice/fsmx/policy"
)

// benchGraph builds a two-state loop; every pump fires one transition.
func benchGraph(b *testing.B, opts ...fsmx.Option) *fsmx.Machine[event, fsmx.Signal] {
	b.Helper()

	m := fsmx.New[event, fsmx.Signal](append(opts, fsmx.Silent())...)

	left, ok := m.AddState(fsmx.NewState[fsmx.Signal]())
	if !ok {
		b.Fatal("state registration failed")
	}
	right, _ := m.AddState(fsmx.NewState[fsmx.Signal]())
	serr, _ := m.AddState(fsmx.NewState[fsmx.Signal]())

	m.On(left, evGo, right)
	m.On(right, evGo, left)
	m.SetStartState(left)
	m.AddStopState(right)
	m.SetErrorState(serr)

	if !m.Start(true) {
		b.Fatal("machine failed validation")
	}
	return m
}

func BenchmarkRaisePump(b *testing.B) {
	m := benchGraph(b)
	sig := fsmx.NewSignal()

	b.ResetTimer()
	for range b.N {
		m.Raise(evGo, sig)
		m.Pump()
	}
}

func BenchmarkRaisePumpSinglePolicy(b *testing.B) {
	m := benchGraph(b, fsmx.WithPolicy(policy.Single{}))
	sig := fsmx.NewSignal()

	b.ResetTimer()
	for range b.N {
		m.Raise(evGo, sig)
		m.Pump()
	}
}

// BenchmarkPumpParentFallback measures lookup through a four-deep hierarchy
// where only the root carries the transition.
func BenchmarkPumpParentFallback(b *testing.B) {
	m := fsmx.New[event, fsmx.Signal](fsmx.Silent())

	root, ok := m.AddState(fsmx.NewState[fsmx.Signal]())
	if !ok {
		b.Fatal("state registration failed")
	}
	serr, _ := m.AddState(fsmx.NewState[fsmx.Signal]())

	leaf := root
	for range 4 {
		leaf, ok = m.AddState(fsmx.NewChildState[fsmx.Signal](leaf))
		if !ok {
			b.Fatal("state registration failed")
		}
	}

	m.On(root, evGo, leaf)
	m.SetStartState(leaf)
	m.AddStopState(root)
	m.SetErrorState(serr)

	if !m.Start(true) {
		b.Fatal("machine failed validation")
	}

	sig := fsmx.NewSignal()
	b.ResetTimer()
	for range b.N {
		m.Raise(evGo, sig)
		m.Pump()
	}
}

func BenchmarkAccept(b *testing.B) {
	m := benchGraph(b)

	b.ResetTimer()
	for range b.N {
		m.Accept(evGo)
	}
}

func BenchmarkGenerateStateID(b *testing.B) {
	for range b.N {
		fsmx.GenerateStateID()
	}
}
