// Package policy supplies the lock and condition strategies a machine
// serializes through. The strategy is picked once, at build configuration
// time; the engine never branches on it at runtime.
package policy

// Lock is a mutual exclusion primitive.
type Lock interface {
	Lock()
	Unlock()
}

// Cond is a condition primitive tied to a Lock. Wait releases the lock while
// waiting and reacquires it before returning. Broadcast wakes every waiter.
type Cond interface {
	Wait()
	Broadcast()
}

// Policy creates the lock and condition pair for one machine instance.
type Policy interface {
	NewLock() Lock
	NewCond(l Lock) Cond
}
