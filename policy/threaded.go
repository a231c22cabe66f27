package policy

import "sync"

// Threaded is the concurrent strategy, backed by sync.Mutex and sync.Cond.
// Use it whenever more than one goroutine may touch the same machine.
type Threaded struct{}

func (Threaded) NewLock() Lock { return &sync.Mutex{} }

// NewCond returns a condition bound to l. The lock must be one produced by
// this policy, or any other Lock; sync.Cond only needs Lock/Unlock.
func (Threaded) NewCond(l Lock) Cond { return sync.NewCond(l) }
