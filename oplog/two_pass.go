package oplog

import "github.com/coalfire-dev/doublebuf"

// TwoPassWriter defers every recorded Op until Flush, then spreads its
// application across two flushes: the ops left over from the previous
// flush are replayed onto the buffer that just became the new back (to
// catch it up with what the front already has), and the ops recorded
// since are applied fresh. A swap is kept perpetually in flight — one is
// started as soon as the previous one finishes — so Flush's wait never
// starts from a cold capture.
type TwoPassWriter[B any, O Op[B]] struct {
	writer  *doublebuf.Writer[B]
	ops     []O
	applied int
	swap    doublebuf.SwapToken
}

// NewTwoPassWriter wraps an existing doublebuf.Writer and immediately
// starts its first swap, so the first Flush call has something to wait
// on rather than needing a special case for "no swap pending yet".
func NewTwoPassWriter[B any, O Op[B]](w *doublebuf.Writer[B]) *TwoPassWriter[B, O] {
	return &TwoPassWriter[B, O]{
		writer: w,
		swap:   w.StartSwap(),
	}
}

// Reader returns a new reader over the wrapped cell.
func (w *TwoPassWriter[B, O]) Reader() *doublebuf.Reader[B] { return w.writer.Reader() }

// Read borrows the buffer currently visible to readers.
func (w *TwoPassWriter[B, O]) Read() *B { return w.writer.Read() }

// Apply records op. It is not applied to any buffer until the next
// Flush.
func (w *TwoPassWriter[B, O]) Apply(op O) {
	w.ops = append(w.ops, op)
}

// ApplyAll records every op in ops, in order.
func (w *TwoPassWriter[B, O]) ApplyAll(ops []O) {
	w.ops = append(w.ops, ops...)
}

// Operations returns the ops recorded since the last Flush dropped them,
// for inspection or logging. The returned slice aliases internal state
// and must not be retained across a call to Apply.
func (w *TwoPassWriter[B, O]) Operations() []O { return w.ops }

// Flush waits for the in-flight swap to drain, brings the newly-back
// buffer up to date with the ops that were already applied to it before
// the swap, applies every op recorded since then, and starts the next
// swap.
func (w *TwoPassWriter[B, O]) Flush() {
	w.writer.FinishSwap(w.swap)

	buf := w.writer.BackMut()

	catchUp := w.ops[:w.applied]
	rest := make([]O, len(w.ops)-w.applied)
	copy(rest, w.ops[w.applied:])
	w.ops = rest
	w.applied = 0

	for _, op := range catchUp {
		op.Apply(buf)
	}

	for i := range w.ops {
		w.ops[i].Apply(buf)
		w.applied++
	}

	w.swap = w.writer.StartSwap()
}

// Close marks the underlying writer closed; see doublebuf.Writer.Close.
func (w *TwoPassWriter[B, O]) Close() { w.writer.Close() }
