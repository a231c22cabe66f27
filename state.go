package fsmx

// Handler is a state action. A nil return reports success; any error routes
// the machine to its error state.
type Handler[A any] func(args A) error

// State is a node in the automaton graph: an identifier, an optional parent
// and an optional action handler. Events the state has no transition for are
// looked up on the parent chain instead.
//
// States are held by the machine with shared ownership: a *State obtained
// from Current or State remains valid even if the machine's collections are
// modified afterwards.
type State[A any] struct {
	id     StateID
	parent StateID
	action Handler[A]
}

// NewState creates a state with a freshly generated random id.
func NewState[A any]() *State[A] {
	return &State[A]{id: GenerateStateID()}
}

// NewChildState creates a state that inherits unmatched transitions from
// parent.
func NewChildState[A any](parent StateID) *State[A] {
	return &State[A]{id: GenerateStateID(), parent: parent}
}

// ID returns the state id.
func (s *State[A]) ID() StateID {
	return s.id
}

// Parent returns the parent state id, or the unset sentinel when the state
// has no parent.
func (s *State[A]) Parent() StateID {
	return s.parent
}

// HasParent reports whether the state has a parent.
func (s *State[A]) HasParent() bool {
	return s.parent != 0
}

// SetParent reassigns the parent state. Identity is otherwise immutable after
// insertion.
func (s *State[A]) SetParent(id StateID) {
	s.parent = id
}

// SetAction binds the state's handler.
func (s *State[A]) SetAction(h Handler[A]) {
	s.action = h
}

// HasAction reports whether a handler is bound.
func (s *State[A]) HasAction() bool {
	return s.action != nil
}

// Action invokes the bound handler. A state without a handler always reports
// success.
func (s *State[A]) Action(args A) error {
	if s.action == nil {
		return nil
	}
	return s.action(args)
}
