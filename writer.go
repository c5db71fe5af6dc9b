package doublebuf

import "github.com/coalfire-dev/doublebuf/backoff"

// Writer is the single exclusive handle through which a SharedCell's back
// buffer is mutated and its front/back roles are swapped. At most one
// Writer exists per cell; moving it to another variable is fine, cloning
// it is not (there is no Clone method).
type Writer[B any] struct {
	cell     *sharedCell[B]
	strategy Strategy
	tag      any
}

// SwapToken is the in-flight state between StartSwap and FinishSwap.
type SwapToken struct {
	capture any
}

// Split bundles a read-only view of the front buffer, a mutable view of
// the back buffer and the extra payload in one call. Read and Write are
// both plain Go pointers — unlike the source this is ported from, Go's
// type system has no way to mark Read's target immutable, so that's a
// convention enforced by documentation, not the compiler: callers must
// only mutate through Write.
type Split[B any] struct {
	Read  *B
	Write *B
	Extra any
}

// Reader returns a new Reader sharing this Writer's cell.
func (w *Writer[B]) Reader() *Reader[B] {
	return &Reader[B]{cell: w.cell, strategy: w.strategy, tag: w.strategy.NewReaderTag()}
}

// Read borrows the front buffer. Cheap: one atomic load of the front/back
// indicator, no synchronization with readers.
func (w *Writer[B]) Read() *B {
	return &w.cell.buffers[w.cell.frontIndex()]
}

// BackMut mutably borrows the back buffer. Exclusive by construction:
// only the Writer ever touches it, and only while it is the back buffer.
func (w *Writer[B]) BackMut() *B {
	return &w.cell.buffers[w.cell.backIndex()]
}

// Split returns simultaneous front/back/extra borrows in one call.
func (w *Writer[B]) Split() Split[B] {
	front := w.cell.frontIndex()
	return Split[B]{
		Read:  &w.cell.buffers[front],
		Write: &w.cell.buffers[1-front],
		Extra: w.cell.extra,
	}
}

// SplitMut is Split in this port: Go pointers don't distinguish a shared
// borrow from an exclusive one the way the source's &B/&mut B did, so
// there is nothing left for a separate mutable variant to do. It is kept
// as its own method, rather than folded away, so callers porting code
// from a split/split_mut API land on a method with the name they expect.
func (w *Writer[B]) SplitMut() Split[B] {
	return w.Split()
}

// Extra returns the payload passed to PairWithExtra (nil if constructed
// with Pair).
func (w *Writer[B]) Extra() any {
	return w.cell.extra
}

// StartSwap flips the front/back indicator and captures the set of
// readers that might still be looking at what was, until this call, the
// front buffer. It never blocks.
func (w *Writer[B]) StartSwap() SwapToken {
	w.strategy.Fence()
	w.cell.which.Store(!w.cell.which.Load())
	return SwapToken{capture: w.strategy.Capture(w.tag)}
}

// TryStartSwap is StartSwap plus an immediate drain check, so a caller
// that only cares whether anything needs waiting for can skip straight
// past FinishSwap's first poll when the strategy already knows the
// capture is empty (the common case for S1/S2 strategies with no active
// readers).
func (w *Writer[B]) TryStartSwap() (tok SwapToken, alreadyDrained bool) {
	tok = w.StartSwap()
	return tok, w.strategy.IsCaptureDrained(tok.capture)
}

// FinishSwap blocks until every reader captured by the StartSwap that
// produced tok has released its guard, then fences so the writer's
// post-swap stores are observable to subsequent reads without further
// synchronization by the caller (see SPEC_FULL.md open question (c)).
func (w *Writer[B]) FinishSwap(tok SwapToken) {
	bo := backoff.New()
	parker, canPark := w.strategy.(Parker)

	for !w.strategy.IsCaptureDrained(tok.capture) {
		if canPark && bo.Completed() {
			parker.Park(tok.capture)
			continue
		}
		bo.Snooze()
	}

	w.strategy.Fence()
}

// Swap performs a full swap-and-drain cycle: flip front/back, then block
// until it is safe for the writer to touch what is now the back buffer.
func (w *Writer[B]) Swap() {
	w.FinishSwap(w.StartSwap())
}

// Close marks the Writer as gone: every live Reader's IsDangling call
// starts returning true, and subsequent Read/Clone calls fail with
// ErrDangling. Existing ReadGuards remain valid until Released. Go has no
// deterministic destructor to hook "the Writer was dropped" to, so this
// explicit call stands in for it — see DESIGN.md.
func (w *Writer[B]) Close() {
	w.cell.writerAlive.Store(false)
}
