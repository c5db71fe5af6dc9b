package doublebuf

// Reader is a cloneable handle that can be upgraded transiently to read
// the front buffer. A Reader can outlive its Writer; once that happens it
// is "dangling" (I4): IsDangling reports it, and Read/Clone fail with
// ErrDangling instead of producing a stale borrow.
type Reader[B any] struct {
	cell     *sharedCell[B]
	strategy Strategy
	tag      any
}

// IsDangling reports whether this Reader's Writer has been Closed.
func (r *Reader[B]) IsDangling() bool {
	return !r.cell.writerAlive.Load()
}

// Clone produces an independent Reader over the same cell. Fails if the
// Writer is gone.
func (r *Reader[B]) Clone() (*Reader[B], error) {
	if r.IsDangling() {
		return nil, ErrDangling
	}
	return &Reader[B]{cell: r.cell, strategy: r.strategy, tag: r.strategy.NewReaderTag()}, nil
}

// Close tells the strategy this Reader is done for good, so strategies
// that keep per-reader state in writer-side bookkeeping (S3/S3p's tag
// list) can prune it. Closing a Reader does not make it dangling or
// stop future Read calls from working — that stays tied to the Writer's
// own Close, per I4 — Close here is purely a resource-retirement hint
// for the strategy. A no-op for strategies that don't need one (S1, S2).
func (r *Reader[B]) Close() {
	if retirer, ok := r.strategy.(ReaderRetirer); ok {
		retirer.RetireReader(r.tag)
	}
}

// Read produces a ReadGuard over the current front buffer. Fails if the
// Writer is gone. Construction order matches the swap protocol this is
// grounded on: register with the strategy first, then load the
// front/back indicator, so a swap racing with this call either captures
// this guard (and the writer waits for it) or this call observes the new
// front outright — never a torn mix of the two.
func (r *Reader[B]) Read() (*ReadGuard[B], error) {
	if r.IsDangling() {
		return nil, ErrDangling
	}
	raw := r.strategy.BeginGuard(r.tag)
	buf := &r.cell.buffers[r.cell.frontIndex()]
	return &ReadGuard[B]{value: buf, strategy: r.strategy, raw: raw}, nil
}
