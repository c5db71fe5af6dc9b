package oplog

import "github.com/coalfire-dev/doublebuf"

// EagerWriter applies every recorded Op to the back buffer the moment it
// is recorded, so the back buffer is always current; Read shows the
// front buffer, which catches up only at Flush. Flush swaps
// the buffers and replays the whole log onto the buffer that just
// became the new back, then discards the log: by the time a second
// Flush happens both copies already agree, so nothing carries over the
// way TwoPassWriter's leftover ops do.
type EagerWriter[B any, O Op[B]] struct {
	writer *doublebuf.Writer[B]
	ops    []O
}

// NewEagerWriter wraps an existing doublebuf.Writer.
func NewEagerWriter[B any, O Op[B]](w *doublebuf.Writer[B]) *EagerWriter[B, O] {
	return &EagerWriter[B, O]{writer: w}
}

// Reader returns a new reader over the wrapped cell.
func (w *EagerWriter[B, O]) Reader() *doublebuf.Reader[B] { return w.writer.Reader() }

// Read borrows the buffer currently visible to readers.
func (w *EagerWriter[B, O]) Read() *B { return w.writer.Read() }

// Apply applies op to the back buffer immediately and records it for
// replay at the next Flush.
func (w *EagerWriter[B, O]) Apply(op O) {
	w.applyOne(op, OrderFirst)
	w.ops = append(w.ops, op)
}

// ApplyAll applies every op in ops, in order, the way Apply does.
func (w *EagerWriter[B, O]) ApplyAll(ops []O) {
	for _, op := range ops {
		w.Apply(op)
	}
}

// Operations returns the ops recorded since the last Flush, for
// inspection. The returned slice aliases internal state and must not be
// retained across a call to Apply or Flush.
func (w *EagerWriter[B, O]) Operations() []O { return w.ops }

func (w *EagerWriter[B, O]) applyOne(op O, order Order) {
	buf := w.writer.BackMut()
	if oo, ok := any(op).(OrderedOp[B]); ok {
		oo.ApplyOrdered(buf, order)
		return
	}
	op.Apply(buf)
}

// Flush is a no-op if nothing has been recorded since the last call.
// Otherwise it swaps the buffers (blocking until every reader has moved
// off what is becoming the back buffer) and replays the whole recorded
// log onto it, then clears the log.
func (w *EagerWriter[B, O]) Flush() {
	if len(w.ops) == 0 {
		return
	}
	w.writer.Swap()

	buf := w.writer.BackMut()
	for _, op := range w.ops {
		if oo, ok := any(op).(OrderedOp[B]); ok {
			oo.ApplyOrdered(buf, OrderSecond)
			continue
		}
		op.Apply(buf)
	}
	w.ops = w.ops[:0]
}

// Close marks the underlying writer closed; see doublebuf.Writer.Close.
func (w *EagerWriter[B, O]) Close() { w.writer.Close() }
