package fsmx

import "errors"

var (
	// ErrIncomplete is returned by Builder.Build when the assembled machine
	// is missing a start state, stop state, error state or transition.
	ErrIncomplete = errors.New("fsmx: machine is incomplete")

	// ErrNondeterministic is returned by Builder.Build when some
	// (state, symbol) pair is missing a transition or resolves ambiguously.
	ErrNondeterministic = errors.New("fsmx: machine is not deterministic")
)
