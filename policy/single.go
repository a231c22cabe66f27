package policy

// Single is the zero-overhead strategy for single-threaded builds. Its lock
// and condition do nothing: with one goroutine there is nobody to exclude and
// nobody to wake. A blocking wait under this policy returns immediately, so
// Machine.Stop(true) only makes sense once a stop condition already holds.
type Single struct{}

func (Single) NewLock() Lock     { return noopLock{} }
func (Single) NewCond(Lock) Cond { return noopCond{} }

type noopLock struct{}

func (noopLock) Lock()   {}
func (noopLock) Unlock() {}

type noopCond struct{}

func (noopCond) Wait()      {}
func (noopCond) Broadcast() {}
