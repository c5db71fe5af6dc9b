package backoff

import "runtime"

// spinCounter is written but never meaningfully read; its only job is to
// stop the compiler from optimizing the busy-wait loop below away.
var spinCounter uint64

// spinFor busy-waits for n iterations without involving the scheduler.
// This is the cheap end of the backoff: for the first few calls the
// expected wait is shorter than a goroutine yield would cost, so this
// just burns cycles in place (the Go equivalent of the PAUSE/spin_loop
// hint crossbeam's Backoff uses for the same phase).
func spinFor(n uint32) {
	for i := uint32(0); i < n; i++ {
		spinCounter++
	}
}

// yieldProcessor gives up the rest of this goroutine's scheduling quantum.
// runtime.Gosched is coarser than a single spin-loop hint instruction, but
// it's the only portable "let someone else run" knob the standard library
// exposes, and it's what this corpus reaches for once a wait stops looking
// short (no dependency in the retrieved pack wraps PAUSE/YIELD, so this is
// the stdlib fallback for that phase).
func yieldProcessor() {
	runtime.Gosched()
}
