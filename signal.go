package fsmx

import "time"

// Signal is a ready-made handler argument payload. It carries the moment an
// event was raised, which is usually all a protocol state machine needs.
type Signal struct {
	moment time.Time
}

// NewSignal creates a signal stamped with the current time.
func NewSignal() Signal {
	return Signal{moment: time.Now()}
}

// SignalAt creates a signal stamped with an explicit time.
func SignalAt(t time.Time) Signal {
	return Signal{moment: t}
}

// Time returns the moment the signal was created.
func (s Signal) Time() time.Time {
	return s.moment
}
