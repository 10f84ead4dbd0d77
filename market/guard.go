package market

import "sync/atomic"

// Guard is the engine-wide reentrancy flag. A single logical operation may
// issue several payouts whose completion is never observed, so a new
// allocation must not touch a record while a prior operation could still
// have transfers in flight.
//
// The guard is deliberately coarse: one flag for the whole engine, not one
// per content identity. Operations on disjoint records therefore contend
// spuriously; callers receiving ErrBusy retry rather than queue.
type Guard struct {
	held atomic.Int32
}

// TryEnter acquires the guard if it is free. It never blocks.
func (g *Guard) TryEnter() bool {
	return g.held.CompareAndSwap(0, 1)
}

// Exit releases the guard. Must be called exactly once per successful
// TryEnter, on every path including errors.
func (g *Guard) Exit() {
	g.held.Store(0)
}
