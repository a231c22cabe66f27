package fsmx

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/comalice/fsmx/container"
	"github.com/comalice/fsmx/policy"
	"github.com/comalice/fsmx/watchdog"
)

// DefaultWatchdogTimeout is the watchdog timeout armed at construction when
// no other timeout is configured.
const DefaultWatchdogTimeout = 2 * time.Second

// queuedEvent pairs an alphabet symbol with the handler arguments captured by
// value when the event was queued.
type queuedEvent[E EventID, A any] struct {
	event E
	args  A
}

// Machine is a generic automaton engine. An automaton is the quintuple of an
// alphabet, a state set, a start state, a transition function and a stop
// state set; Machine stores all five, checks that the transition function is
// deterministic and complete, and executes one queued event per Pump call.
//
// E is the alphabet symbol type and A the handler argument payload type.
// Concrete automatons embed a *Machine, assemble their graph through the
// builder methods (or through Builder), then drive Pump from their own run
// loop -- see Runner for a ready-made one.
//
// Every exported method serializes through the single lock supplied by the
// configured policy. The lock is released while a handler or guard runs, so
// handlers are free to call Transition and Raise; the engine expects a single
// pumping goroutine.
type Machine[E EventID, A any] struct {
	mu       policy.Lock
	stopCond policy.Cond
	wdt      watchdog.Watchdog
	log      *slog.Logger

	stt        map[uint64]*Transition[E, A]
	states     map[StateID]*State[A]
	stopStates []*State[A]
	start      *State[A]
	errState   *State[A]
	current    StateID
	status     Status
	inFlight   bool
	alphabet   *container.Set[E]
	events     *container.Deque[queuedEvent[E, A]]
}

type options struct {
	pol      policy.Policy
	wdt      watchdog.Watchdog
	timeout  time.Duration
	logger   *slog.Logger
	silent   bool
	capacity int
}

// Option configures a Machine at construction time.
type Option func(*options)

// WithPolicy selects the threading strategy. The default is policy.Threaded;
// pass policy.Single for single-threaded builds.
func WithPolicy(p policy.Policy) Option {
	return func(o *options) { o.pol = p }
}

// WithWatchdog installs the liveness supervisor reset on every pump. The
// default is watchdog.Noop.
func WithWatchdog(w watchdog.Watchdog) Option {
	return func(o *options) { o.wdt = w }
}

// WithWatchdogTimeout overrides the timeout the watchdog is armed with at
// construction.
func WithWatchdogTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// WithLogger sets the logger diagnostics are written to. The machine tags
// every record with the fsm subsystem and its instance id.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// Silent suppresses all diagnostic output.
func Silent() Option {
	return func(o *options) { o.silent = true }
}

// WithQueueCapacity hints the event queue's initial capacity.
func WithQueueCapacity(n int) Option {
	return func(o *options) { o.capacity = n }
}

// New creates a stopped, empty machine and arms its watchdog.
func New[E EventID, A any](opts ...Option) *Machine[E, A] {
	o := options{
		pol:      policy.Threaded{},
		wdt:      watchdog.Noop{},
		timeout:  DefaultWatchdogTimeout,
		capacity: 16,
	}
	for _, fn := range opts {
		fn(&o)
	}

	logger := o.logger
	if logger == nil {
		logger = slog.Default()
	}
	if o.silent {
		logger = slog.New(slog.DiscardHandler)
	}

	lock := o.pol.NewLock()
	m := &Machine[E, A]{
		mu:       lock,
		stopCond: o.pol.NewCond(lock),
		wdt:      o.wdt,
		log:      logger.With("subsystem", "fsm", "machine", uuid.NewString()[:8]),
		stt:      make(map[uint64]*Transition[E, A]),
		states:   make(map[StateID]*State[A]),
		alphabet: container.NewSet[E](),
		events:   container.NewDeque[queuedEvent[E, A]](o.capacity),
		status:   Stopped,
	}
	m.wdt.Enable(o.timeout)

	return m
}

// Close tears the machine down. Collections are cleared, the status flips to
// Stopped and every goroutine blocked in Stop is released.
func (m *Machine[E, A]) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.status = Stopped
	m.events.Clear()
	m.stopStates = nil
	clear(m.states)
	clear(m.stt)
	m.alphabet.Clear()
	m.stopCond.Broadcast()
}

//
// Builder API
//

// AddState inserts a state. It returns the state's id and a success flag;
// insertion fails without mutating the machine when the id is unset or
// already taken.
func (m *Machine[E, A]) AddState(s *State[A]) (StateID, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.addStateLocked(s)
}

// AddStates inserts every state in states, or none at all if any id is unset
// or already taken.
func (m *Machine[E, A]) AddStates(states []*State[A]) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	seen := container.NewSet[StateID]()
	for _, s := range states {
		if s == nil || s.ID() == 0 {
			return false
		}
		if _, ok := m.states[s.ID()]; ok {
			return false
		}
		if !seen.Insert(s.ID()) {
			return false
		}
	}

	for _, s := range states {
		m.addStateLocked(s)
	}
	return true
}

func (m *Machine[E, A]) addStateLocked(s *State[A]) (StateID, bool) {
	if s == nil || s.ID() == 0 {
		return 0, false
	}

	id := s.ID()
	if _, ok := m.states[id]; ok {
		return id, false
	}

	m.log.Debug("adding state", "state", id)
	m.states[id] = s

	return id, true
}

// AddTransition attaches a complete transition to the state identified by
// state, extending the alphabet with the transition's symbol as a side
// effect. It fails when the (state, event) pair is already occupied.
func (m *Machine[E, A]) AddTransition(state StateID, t *Transition[E, A]) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if t == nil || !t.Complete() {
		return false
	}

	key := sttKey(state, t.Event())
	if _, ok := m.stt[key]; ok {
		return false
	}

	m.alphabet.Insert(t.Event())
	m.stt[key] = t

	return true
}

// On attaches an unguarded transition from state to next on event.
func (m *Machine[E, A]) On(state StateID, event E, next StateID) bool {
	return m.AddTransition(state, NewTransition[E, A](event, next))
}

// OnGuarded attaches a guarded transition from state to next on event.
func (m *Machine[E, A]) OnGuarded(state StateID, event E, next StateID, guard Guard[A]) bool {
	return m.AddTransition(state, NewGuardedTransition(event, next, guard))
}

// AddAlphabetSymbol registers an alphabet symbol that no transition carries
// yet. It reports whether the symbol was new.
func (m *Machine[E, A]) AddAlphabetSymbol(event E) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	var zero E
	if event == zero {
		return false
	}
	return m.alphabet.Insert(event)
}

// SetStartState designates the start state. It fails when id names no known
// state.
func (m *Machine[E, A]) SetStartState(id StateID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.states[id]
	if !ok {
		return false
	}
	m.start = s

	return true
}

// AddStopState adds id to the stop state set. It fails when id names no known
// state.
func (m *Machine[E, A]) AddStopState(id StateID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.states[id]
	if !ok {
		return false
	}
	m.stopStates = append(m.stopStates, s)

	return true
}

// AddStopStates adds every id to the stop state set, or none at all if any id
// is unknown.
func (m *Machine[E, A]) AddStopStates(ids []StateID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	// All-or-nothing: verify the whole batch before touching the set.
	for _, id := range ids {
		if _, ok := m.states[id]; !ok {
			return false
		}
	}
	for _, id := range ids {
		m.stopStates = append(m.stopStates, m.states[id])
	}

	return true
}

// SetErrorState designates the error state. It fails when id names no known
// state.
func (m *Machine[E, A]) SetErrorState(id StateID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.states[id]
	if !ok {
		return false
	}
	m.errState = s

	return true
}

// State returns a shared handle to the state identified by id. The handle
// stays valid even if the state is later removed from the machine.
func (m *Machine[E, A]) State(id StateID) (*State[A], bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.states[id]
	return s, ok
}

//
// Introspection
//

// Status returns the current machine status.
func (m *Machine[E, A]) Status() Status {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.status
}

// Running reports whether the machine is executing its automaton.
func (m *Machine[E, A]) Running() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.runningLocked()
}

func (m *Machine[E, A]) runningLocked() bool {
	return m.status == Running
}

// Current returns a shared handle to the current state, or nil when the
// machine is not running.
func (m *Machine[E, A]) Current() *State[A] {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.runningLocked() {
		return nil
	}
	return m.states[m.current]
}

// Accept reports whether the current state, or any state on its parent
// chain, has a transition for event. Accept is false whenever the machine is
// not running.
func (m *Machine[E, A]) Accept(event E) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.acceptLocked(event)
}

func (m *Machine[E, A]) acceptLocked(event E) bool {
	if !m.runningLocked() {
		return false
	}
	_, ok := m.lookup(m.current, event)
	return ok
}

// Valid reports whether the machine can run: the status must be Running or
// Stopped, at least one state and one transition must exist, the start, stop
// and error designations must all be set, and the automaton must be
// deterministic.
func (m *Machine[E, A]) Valid() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.validLocked()
}

func (m *Machine[E, A]) validLocked() bool {
	if m.status != Running && m.status != Stopped {
		return false
	}
	if len(m.states) == 0 || len(m.stt) == 0 {
		return false
	}
	if m.start == nil || len(m.stopStates) == 0 || m.errState == nil {
		return false
	}
	return m.deterministicLocked()
}

// Deterministic walks the state x alphabet product: every (state, symbol)
// pair must resolve to at most one transition along the parent chain, and to
// at least one when the state has an action handler. The offending pair is
// logged as a diagnostic side effect.
func (m *Machine[E, A]) Deterministic() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.deterministicLocked()
}

func (m *Machine[E, A]) deterministicLocked() bool {
	for id, state := range m.states {
		for _, symbol := range m.alphabet.All() {
			switch n := m.countMatches(id, symbol); {
			case n == 0 && state.HasAction():
				m.log.Warn("missing transition", "state", id, "event", symbol)
				return false
			case n > 1:
				m.log.Warn("ambiguous transition", "state", id, "event", symbol)
				return false
			}
		}
	}

	return true
}

// countMatches counts the transitions registered for (state, event) along
// the parent chain. More than one match is an epsilon transition.
func (m *Machine[E, A]) countMatches(state StateID, event E) int {
	n := 0
	// The hop limit guards against parent cycles.
	for id, hops := state, 0; id != 0 && hops <= len(m.states); hops++ {
		if _, ok := m.stt[sttKey(id, event)]; ok {
			n++
		}
		s, ok := m.states[id]
		if !ok || !s.HasParent() {
			break
		}
		id = s.Parent()
	}

	return n
}

// lookup resolves the transition for (state, event), falling back to the
// parent chain when the state itself has no match.
func (m *Machine[E, A]) lookup(state StateID, event E) (*Transition[E, A], bool) {
	for id, hops := state, 0; id != 0 && hops <= len(m.states); hops++ {
		if t, ok := m.stt[sttKey(id, event)]; ok {
			return t, true
		}
		s, ok := m.states[id]
		if !ok || !s.HasParent() {
			break
		}
		id = s.Parent()
	}

	return nil, false
}

//
// Operation
//

// Start moves the machine to its start state and the status to Running. With
// check set, Start refuses to run an invalid machine.
func (m *Machine[E, A]) Start(check bool) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if check && !m.validLocked() {
		m.log.Warn("refusing to start invalid machine")
		return false
	}
	if m.start == nil {
		return false
	}

	m.current = m.start.ID()
	m.status = Running
	m.inFlight = false

	return true
}

// Halt force-stops the machine. The event queue is not drained and an
// in-progress handler is not interrupted.
func (m *Machine[E, A]) Halt() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.status != Running && m.status != Error {
		return
	}
	m.status = Stopped
}

// Stop attempts to stop the machine. It returns true immediately when the
// machine is not running, or when the current state is the error state or a
// stop state. Otherwise, with wait unset Stop returns false right away; with
// wait set it blocks on the stop condition and re-checks on every wakeup.
func (m *Machine[E, A]) Stop(wait bool) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	for {
		if m.stopLocked() {
			return true
		}
		if !wait {
			return false
		}
		m.stopCond.Wait()
	}
}

func (m *Machine[E, A]) stopLocked() bool {
	if !m.runningLocked() {
		return true
	}

	cur, ok := m.states[m.current]
	if !ok {
		return false
	}
	if m.errState != nil && cur.ID() == m.errState.ID() {
		m.status = Stopped
		return true
	}
	for _, s := range m.stopStates {
		if s.ID() == cur.ID() {
			m.status = Stopped
			return true
		}
	}

	return false
}

// Transition queues a self-initiated transition at the front of the event
// queue, ahead of externally raised traffic. It is meant for state handlers
// acting on their own machine; at most one such transition may be in flight
// until the next pump. Rejected events are never queued.
func (m *Machine[E, A]) Transition(event E, args A) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.acceptLocked(event) || m.inFlight {
		return false
	}

	m.events.PushFront(queuedEvent[E, A]{event: event, args: args})
	m.inFlight = true

	return true
}

// Raise queues an externally raised event at the back of the event queue.
// Rejected events are never queued.
func (m *Machine[E, A]) Raise(event E, args A) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.acceptLocked(event) {
		return false
	}

	m.events.PushBack(queuedEvent[E, A]{event: event, args: args})

	return true
}

// Pump dequeues and executes at most one queued event. It resets the
// watchdog, resolves the event's transition through the parent chain, moves
// the machine to the target state and invokes the target's handler with the
// captured arguments. A handler failure routes to the error state with a
// copy of the same arguments and reports Fault. The in-flight transition
// flag is cleared regardless of outcome.
func (m *Machine[E, A]) Pump() Status {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.wdt.Reset()

	if m.events.Len() == 0 {
		return StateUnchanged
	}

	qe, _ := m.events.PopFront()
	st := m.execute(qe)
	m.inFlight = false

	return st
}

// execute runs one queued event. The lock is held on entry and exit, but
// released around guard and handler invocations so handlers may call back
// into the machine.
func (m *Machine[E, A]) execute(qe queuedEvent[E, A]) Status {
	if !m.runningLocked() {
		return m.status
	}

	// The graph was verified deterministic before Start and the event was
	// verified accepted when it was queued; a miss here means the graph
	// changed underneath a running machine.
	t, ok := m.lookup(m.current, qe.event)
	if !ok {
		m.log.Warn("no transition for queued event", "state", m.current, "event", qe.event)
		return StateUnchanged
	}

	next := t.Next()
	target, ok := m.states[next]
	if !ok {
		m.log.Warn("transition leads to unknown state", "state", m.current, "next", next)
		return StateUnchanged
	}

	if t.HasGuard() {
		m.mu.Unlock()
		pass := t.Guard(qe.args)
		m.mu.Lock()

		if !pass || !m.runningLocked() {
			return StateUnchanged
		}
	}

	m.current = next

	m.mu.Unlock()
	err := target.Action(qe.args)
	m.mu.Lock()

	if err != nil {
		m.log.Error("state handler failed", "state", next, "error", err)
		m.toErrorState(qe.args)
		m.status = Fault
		m.stopCond.Broadcast()
		return Fault
	}

	if m.errState != nil && next == m.errState.ID() {
		m.status = Error
		m.stopCond.Broadcast()
		return StateChanged
	}
	if m.isStopState(next) {
		m.stopCond.Broadcast()
	}

	return StateChanged
}

// toErrorState moves the machine to its error state and invokes the error
// handler with the same captured arguments. Called with the lock held.
func (m *Machine[E, A]) toErrorState(args A) {
	if m.errState == nil {
		return
	}

	m.current = m.errState.ID()
	errState := m.errState

	m.mu.Unlock()
	err := errState.Action(args)
	m.mu.Lock()

	if err != nil {
		m.log.Error("error state handler failed", "state", errState.ID(), "error", err)
	}
}

func (m *Machine[E, A]) isStopState(id StateID) bool {
	for _, s := range m.stopStates {
		if s.ID() == id {
			return true
		}
	}
	return false
}
