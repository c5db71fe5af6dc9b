package doublebuf

import "sync/atomic"

// Strategy is the pluggable reader-tracking policy a shared cell is built
// with. A swap has to wait only for readers that began a guard before the
// front/back flip; how that set is tracked and how the writer waits for it
// to drain is entirely up to the Strategy.
//
// Reader tags, raw guard tokens and capture tokens are passed around as
// any rather than as Strategy-specific type parameters. That keeps
// Writer[B]/Reader[B] free of extra type parameters — a Strategy value is
// chosen at construction time, not at compile time — at the cost of one
// type assertion inside each strategy's own methods. See
// doublebuf/strategy for the concrete S1 (single-threaded), S2 (atomic
// counter), S3 (per-reader epoch) and S3p (epoch + park) implementations.
type Strategy interface {
	// NewReaderTag is called once, when a Reader is created or cloned.
	NewReaderTag() any
	// NewWriterTag is called once, at Writer construction.
	NewWriterTag() any
	// Fence orders the writer's preceding buffer mutations against
	// readers' subsequent observations, and brackets the capture step.
	Fence()
	// BeginGuard is called by a reader entering a read region. It must
	// make the reader observable to any writer that captures afterward.
	BeginGuard(readerTag any) (rawGuard any)
	// EndGuard is called when a ReadGuard is released.
	EndGuard(rawGuard any)
	// Capture snapshots which readers could still be looking at the
	// buffer that was front immediately before this call.
	Capture(writerTag any) (capture any)
	// IsCaptureDrained reports whether every reader captured above has
	// moved on. It is polled by the writer until it returns true.
	IsCaptureDrained(capture any) bool
}

// Parker is an optional Strategy extension. If a Strategy implements
// it, Writer.FinishSwap falls back to Park once its backoff
// budget is spent instead of busy-polling IsCaptureDrained forever.
type Parker interface {
	Park(capture any)
}

// ReaderRetirer is an optional Strategy extension for strategies that
// keep a per-reader tag alive in writer-side state (S3/S3p's tag list)
// rather than tracking readers implicitly through a shared counter.
// Reader.Close calls RetireReader so a reader that is done for good can
// be pruned instead of sitting in that list forever.
type ReaderRetirer interface {
	RetireReader(readerTag any)
}

// sharedCell owns the two buffers, the front/back indicator, the
// strategy and an arbitrary extra payload. Once constructed its address
// never changes (it is only ever referenced through a pointer handed out
// by Pair), so it needs no pinning: Writer and Reader simply hold a
// pointer to it, same as the original's heap-allocated, reference-counted
// cell, minus the manual refcounting Go's garbage collector makes
// unnecessary (see DESIGN.md).
type sharedCell[B any] struct {
	which    atomic.Bool // true: buffers[1] is front. false: buffers[0] is front.
	buffers  [2]B
	strategy Strategy
	extra    any

	// writerAlive is the one piece of state that Go's GC can't give us
	// for free: whether the owning Writer has been explicitly Closed.
	// Reader.IsDangling and Reader.Read/Clone consult it.
	writerAlive atomic.Bool
}

func (c *sharedCell[B]) frontIndex() int {
	if c.which.Load() {
		return 1
	}
	return 0
}

func (c *sharedCell[B]) backIndex() int {
	return 1 - c.frontIndex()
}
