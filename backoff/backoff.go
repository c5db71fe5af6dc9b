// Package backoff implements an adaptive spin -> yield -> park wait
// primitive used while a Writer waits for readers to drain a capture.
// It escalates from busy-spinning to runtime.Gosched yields as contention
// looks sustained, and reports when a caller with a parking fallback
// should switch to that instead of keep polling.
package backoff

const (
	spinLimit  = 6
	yieldLimit = 10
)

// Backoff tracks how many times Snooze has been called so each
// subsequent call waits a little longer, capping out at a plain
// runtime.Gosched yield.
type Backoff struct {
	step uint32
}

// New returns a Backoff ready to use.
func New() *Backoff {
	return &Backoff{}
}

// Reset returns the Backoff to its initial (pure spin) state.
func (b *Backoff) Reset() {
	b.step = 0
}

// Spin busy-waits for a short, escalating number of iterations without
// ever yielding the processor. Useful for very short expected waits where
// even a Gosched would cost more than the wait itself.
func (b *Backoff) Spin() {
	spinFor(1 << min(b.step, spinLimit))
	if b.step <= spinLimit {
		b.step++
	}
}

// Snooze busy-waits while the wait still looks short, then falls back to
// yielding the processor once it no longer does.
func (b *Backoff) Snooze() {
	if b.step <= spinLimit {
		spinFor(1 << b.step)
	} else {
		yieldProcessor()
	}
	if b.step <= yieldLimit {
		b.step++
	}
}

// Completed reports whether this Backoff has spent its entire spin/yield
// budget, i.e. whether a caller with a parking fallback should use it
// instead of calling Snooze again.
func (b *Backoff) Completed() bool {
	return b.step > yieldLimit
}

func min(a, b uint32) uint32 {
	if a < b {
		return a
	}
	return b
}
