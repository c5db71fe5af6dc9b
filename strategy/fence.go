package strategy

import "sync/atomic"

// fenceVar is a throwaway address. Go's memory model gives every atomic
// operation acquire/release semantics but has no standalone "full fence"
// primitive; a CAS against an address nothing else touches is the usual
// stand-in for one when a strategy needs a barrier that isn't tied to a
// particular piece of state (crossbeam's AtomicConsume plays the same
// role in the source this package is grounded on).
var fenceVar atomic.Uint32

func runtimeFence() {
	fenceVar.CompareAndSwap(0, 0)
}
