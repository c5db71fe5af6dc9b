package strategy

import (
	"math"
	"sync/atomic"

	"github.com/coalfire-dev/doublebuf/backoff"
)

// tooManyReaders is the invariant-violation panic value for AtomicCounter:
// constructing more concurrent guards than the counter can represent.
type tooManyReaders struct{}

func (tooManyReaders) Error() string {
	return "doublebuf/strategy: too many concurrent guards for the atomic-counter strategy"
}

// atomicCounter is S2: a single shared count of active guards. Simple,
// but every BeginGuard/EndGuard touches the same cache line, so it
// suffers under contended read workloads compared to Epoch.
type atomicCounter struct {
	active atomic.Int64
}

// AtomicCounter returns the single-shared-counter reader-tracking
// strategy.
func AtomicCounter() *atomicCounter {
	return &atomicCounter{}
}

func (s *atomicCounter) NewReaderTag() any { return struct{}{} }
func (s *atomicCounter) NewWriterTag() any { return struct{}{} }

// Fence is a no-op: every access to active goes through sync/atomic,
// which already gives Go's memory model the sequentially consistent
// ordering this strategy needs. There is no portable third-party fence
// primitive in the retrieved corpus either, so this is a deliberate
// stdlib-only leaf — see DESIGN.md.
func (s *atomicCounter) Fence() {}

// BeginGuard increments the shared counter with a checked CAS loop,
// panicking rather than silently wrapping if the counter would overflow
// (the boundary behavior in spec.md §8).
func (s *atomicCounter) BeginGuard(any) any {
	bo := backoff.New()
	for {
		v := s.active.Load()
		if v == math.MaxInt64 {
			panic(tooManyReaders{})
		}
		if s.active.CompareAndSwap(v, v+1) {
			return struct{}{}
		}
		bo.Snooze()
	}
}

func (s *atomicCounter) EndGuard(any) {
	s.active.Add(-1)
}

// Capture is trivial: there is nothing to snapshot beyond "the counter",
// so the capture token carries no state.
func (s *atomicCounter) Capture(any) any { return struct{}{} }

func (s *atomicCounter) IsCaptureDrained(any) bool {
	return s.active.Load() == 0
}
