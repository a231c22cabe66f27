// Package fsmx implements a generic finite-state-machine engine for
// protocol and control-flow automatons.
//
// A machine is defined by the classic quintuple: an input alphabet, a state
// set, a start state, a transition function and a set of stop states. fsmx
// adds the pieces a production state machine needs on top of the theory: an
// error state that handler failures route to, hierarchical fallback where a
// state inherits unhandled transitions from a parent, a determinism and
// completeness check over the whole state x alphabet product, a two-ended
// event queue that lets a state schedule its own continuation ahead of
// external traffic, and a watchdog that is reset once per pump.
//
// The graph is assembled programmatically, either through the Machine
// builder methods or the fluent name-based Builder, validated, started and
// then pumped one event at a time. Whether the machine serializes through a
// real mutex or a no-op one is decided once at construction via the policy
// package, so the identical automaton runs single-threaded or shared between
// goroutines without a code change.
package fsmx
