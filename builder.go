package fsmx

import (
	"errors"
	"fmt"
)

// Builder provides a fluent, name-based API for assembling a Machine on top
// of the machine's own builder methods. State names map to generated ids;
// referencing a name creates the state on first use, so forward references
// are fine. Defects are collected and reported once by Build.
type Builder[E EventID, A any] struct {
	m        *Machine[E, A]
	nameToID map[string]StateID
	idToName map[StateID]string
	errs     []error
}

// StateBuilder configures a single named state.
type StateBuilder[E EventID, A any] struct {
	b    *Builder[E, A]
	id   StateID
	name string
}

// NewBuilder creates a builder around a fresh machine constructed with opts.
func NewBuilder[E EventID, A any](opts ...Option) *Builder[E, A] {
	return &Builder[E, A]{
		m:        New[E, A](opts...),
		nameToID: make(map[string]StateID),
		idToName: make(map[StateID]string),
	}
}

// State creates or retrieves the state called name.
func (b *Builder[E, A]) State(name string) *StateBuilder[E, A] {
	return &StateBuilder[E, A]{b: b, id: b.stateID(name), name: name}
}

// ID returns the id assigned to name, or the unset sentinel when the name
// has never been referenced.
func (b *Builder[E, A]) ID(name string) StateID {
	return b.nameToID[name]
}

// Name returns the name behind id, for diagnostics.
func (b *Builder[E, A]) Name(id StateID) string {
	return b.idToName[id]
}

// Build checks the assembled machine and returns it. Collected defects,
// incompleteness and nondeterminism are reported as errors.
func (b *Builder[E, A]) Build() (*Machine[E, A], error) {
	if len(b.errs) > 0 {
		return nil, errors.Join(b.errs...)
	}
	if !b.m.Deterministic() {
		return nil, ErrNondeterministic
	}
	if !b.m.Valid() {
		return nil, ErrIncomplete
	}

	return b.m, nil
}

// stateID returns the id registered for name, inserting a fresh state into
// the machine on first reference.
func (b *Builder[E, A]) stateID(name string) StateID {
	if id, ok := b.nameToID[name]; ok {
		return id
	}

	id, ok := b.m.AddState(NewState[A]())
	if !ok {
		b.errs = append(b.errs, fmt.Errorf("state %q: insertion failed", name))
		return 0
	}
	b.nameToID[name] = id
	b.idToName[id] = name

	return id
}

func (b *Builder[E, A]) fail(err error) {
	b.errs = append(b.errs, err)
}

// Action binds the state's handler.
func (sb *StateBuilder[E, A]) Action(h Handler[A]) *StateBuilder[E, A] {
	if s, ok := sb.b.m.State(sb.id); ok {
		s.SetAction(h)
	}
	return sb
}

// Parent makes the state inherit unmatched transitions from the named state.
func (sb *StateBuilder[E, A]) Parent(name string) *StateBuilder[E, A] {
	parent := sb.b.stateID(name)
	if s, ok := sb.b.m.State(sb.id); ok {
		s.SetParent(parent)
	}
	return sb
}

// On adds an unguarded transition to the named target state on event.
func (sb *StateBuilder[E, A]) On(event E, target string) *StateBuilder[E, A] {
	if !sb.b.m.On(sb.id, event, sb.b.stateID(target)) {
		sb.b.fail(fmt.Errorf("state %q: duplicate transition for event %v", sb.name, event))
	}
	return sb
}

// OnGuarded adds a guarded transition to the named target state on event.
func (sb *StateBuilder[E, A]) OnGuarded(event E, target string, guard Guard[A]) *StateBuilder[E, A] {
	if !sb.b.m.OnGuarded(sb.id, event, sb.b.stateID(target), guard) {
		sb.b.fail(fmt.Errorf("state %q: duplicate transition for event %v", sb.name, event))
	}
	return sb
}

// Start designates this state as the start state.
func (sb *StateBuilder[E, A]) Start() *StateBuilder[E, A] {
	if !sb.b.m.SetStartState(sb.id) {
		sb.b.fail(fmt.Errorf("state %q: cannot designate start state", sb.name))
	}
	return sb
}

// Stop adds this state to the stop state set.
func (sb *StateBuilder[E, A]) Stop() *StateBuilder[E, A] {
	if !sb.b.m.AddStopState(sb.id) {
		sb.b.fail(fmt.Errorf("state %q: cannot designate stop state", sb.name))
	}
	return sb
}

// Error designates this state as the error state.
func (sb *StateBuilder[E, A]) Error() *StateBuilder[E, A] {
	if !sb.b.m.SetErrorState(sb.id) {
		sb.b.fail(fmt.Errorf("state %q: cannot designate error state", sb.name))
	}
	return sb
}
