package fsmx

// Guard is a boolean predicate gating whether a transition fires.
type Guard[A any] func(args A) bool

// Transition is an edge in the automaton graph: an alphabet symbol, the id of
// the state the edge leads to and an optional guard. Transitions have no
// independent ownership; their lifetime is tied to the machine holding them.
type Transition[E EventID, A any] struct {
	event E
	next  StateID
	guard Guard[A]
}

// NewTransition creates an unguarded transition for event leading to next.
func NewTransition[E EventID, A any](event E, next StateID) *Transition[E, A] {
	return &Transition[E, A]{event: event, next: next}
}

// NewGuardedTransition creates a transition that only fires when guard
// passes.
func NewGuardedTransition[E EventID, A any](event E, next StateID, guard Guard[A]) *Transition[E, A] {
	return &Transition[E, A]{event: event, next: next, guard: guard}
}

// Event returns the alphabet symbol tied to the transition.
func (t *Transition[E, A]) Event() E {
	return t.event
}

// Next returns the id of the state the transition leads to.
func (t *Transition[E, A]) Next() StateID {
	return t.next
}

// HasGuard reports whether a guard predicate is bound.
func (t *Transition[E, A]) HasGuard() bool {
	return t.guard != nil
}

// Guard evaluates the bound predicate. A transition without a guard always
// passes.
func (t *Transition[E, A]) Guard(args A) bool {
	if t.guard == nil {
		return true
	}
	return t.guard(args)
}

// SetEvent sets the alphabet symbol.
func (t *Transition[E, A]) SetEvent(event E) {
	t.event = event
}

// SetNext sets the target state id.
func (t *Transition[E, A]) SetNext(next StateID) {
	t.next = next
}

// SetGuard binds or replaces the guard predicate.
func (t *Transition[E, A]) SetGuard(guard Guard[A]) {
	t.guard = guard
}

// Complete reports whether both the event and the target state are set.
// Incomplete transitions are rejected by the machine's builder API.
func (t *Transition[E, A]) Complete() bool {
	var zero E
	return t.event != zero && t.next != 0
}
