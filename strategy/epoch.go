package strategy

import (
	"sync"
	"sync/atomic"
)

// epochTag is a single reader's epoch counter. Its parity encodes
// inside/outside a guard: BeginGuard bumps it to odd, EndGuard bumps it
// back to even. The writer never mutates it, only observes it, so no
// cross-goroutine coordination is needed beyond the atomic itself.
type epochTag struct {
	epoch atomic.Uint32
	// dead is set once this reader is known gone (see RetireReader).
	// The source this is grounded on detects that case via a refcounted
	// tag's strong_count; Go has no refcounting primitive to query, so an
	// explicit Close plays that role here — see DESIGN.md.
	dead atomic.Bool
}

// epochCapture is one (tag, observed odd value) pair per reader that was
// mid-guard when the writer captured.
type epochCapture struct {
	tag   *epochTag
	value uint32
}

// epoch is S3: each reader owns its own epoch counter; the writer keeps a
// list of every live tag and, on capture, snapshots the ones currently
// odd. A captured reader has drained once its tag's value has moved past
// the snapshotted one, or the tag reports itself dead.
type epoch struct {
	mu   sync.Mutex
	tags []*epochTag
}

// Epoch returns the per-reader-epoch reader-tracking strategy.
func Epoch() *epoch {
	return &epoch{}
}

func (s *epoch) NewWriterTag() any { return struct{}{} }

func (s *epoch) NewReaderTag() any {
	tag := &epochTag{}
	s.mu.Lock()
	s.tags = append(s.tags, tag)
	s.mu.Unlock()
	return tag
}

// Fence emits a full, unconditional memory barrier: this strategy relies
// on an acquire-load of one reader's tag ordering against another
// reader's independent writes to its own tag, which plain atomic
// operations alone don't guarantee across unrelated addresses.
func (s *epoch) Fence() {
	runtimeFence()
}

func (s *epoch) BeginGuard(readerTag any) any {
	tag := readerTag.(*epochTag)
	tag.epoch.Add(1)
	return tag
}

func (s *epoch) EndGuard(rawGuard any) {
	tag := rawGuard.(*epochTag)
	tag.epoch.Add(1)
}

// Capture snapshots every live tag that is currently mid-guard (odd
// epoch), pruning dead tags from the writer's list as it goes.
func (s *epoch) Capture(any) any {
	s.mu.Lock()
	defer s.mu.Unlock()

	alive := s.tags[:0]
	var active []epochCapture
	for _, tag := range s.tags {
		if tag.dead.Load() {
			continue
		}
		alive = append(alive, tag)
		if v := tag.epoch.Load(); v%2 == 1 {
			active = append(active, epochCapture{tag: tag, value: v})
		}
	}
	s.tags = alive

	return active
}

func (s *epoch) IsCaptureDrained(capture any) bool {
	c := capture.([]epochCapture)
	remaining := c[:0]
	for _, entry := range c {
		if entry.tag.dead.Load() {
			continue
		}
		if entry.tag.epoch.Load() != entry.value {
			continue
		}
		remaining = append(remaining, entry)
	}
	return len(remaining) == 0
}

// RetireReader marks a reader's tag dead so a future Capture never waits
// on it again, and any in-flight capture can drop it immediately. It
// satisfies doublebuf.ReaderRetirer, so doublebuf.Reader.Close reaches it
// directly — callers that are done with a Reader for good should call
// Close rather than letting its tag sit in s.tags until the process
// exits; nothing in this package prunes it on its own.
func (s *epoch) RetireReader(readerTag any) {
	if tag, ok := readerTag.(*epochTag); ok {
		tag.dead.Store(true)
	}
}
