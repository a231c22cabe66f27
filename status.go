package fsmx

// Status describes both the lifecycle of a machine and the outcome of a
// single pump.
type Status int

const (
	// StateUnchanged reports a pump that consumed no event.
	StateUnchanged Status = iota
	// StateChanged reports a pump that moved the machine to another state.
	StateChanged
	// Fault means a state handler failed; the machine routed to its error
	// state and is unusable until restarted.
	Fault
	// Error means the error state was reached without a handler failure.
	Error
	// Stopped means the machine is not running.
	Stopped
	// Running means the machine is executing its automaton.
	Running
)

func (s Status) String() string {
	switch s {
	case StateUnchanged:
		return "state-unchanged"
	case StateChanged:
		return "state-changed"
	case Fault:
		return "fault"
	case Error:
		return "error"
	case Stopped:
		return "stopped"
	case Running:
		return "running"
	default:
		return "unknown"
	}
}
