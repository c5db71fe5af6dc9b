package concmap

import (
	"github.com/coalfire-dev/doublebuf"
	"github.com/coalfire-dev/doublebuf/oplog"
	"github.com/coalfire-dev/doublebuf/strategy"
)

// MapWriter is the single write handle over a concurrently-readable map.
// Every mutation is recorded as an op and applied to the back buffer
// immediately, then replayed onto the other buffer at Flush. Read shows
// the front buffer, so it reflects a mutation only after Flush.
type MapWriter[K comparable, V any, B any, PB interface {
	*B
	Buffer[K, V]
}] struct {
	inner *oplog.EagerWriter[B, mapOp[K, V, B, PB]]
}

// MapReader is a cloneable read handle over the map.
type MapReader[K comparable, V any, B any, PB interface {
	*B
	Buffer[K, V]
}] struct {
	reader *doublebuf.Reader[B]
}

// NewMap builds a map façade over two instances of a concrete buffer
// type B (via its pointer type PB), tracked with the given strategy.
// front and back should be equal (typically both the zero value).
func NewMap[K comparable, V any, B any, PB interface {
	*B
	Buffer[K, V]
}](s doublebuf.Strategy, front, back B) (*MapWriter[K, V, B, PB], *MapReader[K, V, B, PB]) {
	reader, writer := doublebuf.Pair[B](s, front, back)
	return &MapWriter[K, V, B, PB]{inner: oplog.NewEagerWriter[B, mapOp[K, V, B, PB]](writer)},
		&MapReader[K, V, B, PB]{reader: reader}
}

// NewMapWithStrategy is NewMap using AtomicCounter (S2), the strategy
// this package reaches for when a caller has no particular concurrency
// profile in mind: correct under any number of concurrent readers
// without the per-reader bookkeeping Epoch needs.
func NewMapWithStrategy[K comparable, V any, B any, PB interface {
	*B
	Buffer[K, V]
}](front, back B) (*MapWriter[K, V, B, PB], *MapReader[K, V, B, PB]) {
	return NewMap[K, V, B, PB](strategy.AtomicCounter(), front, back)
}

// Reader returns a new reader over this writer's map.
func (w *MapWriter[K, V, B, PB]) Reader() *MapReader[K, V, B, PB] {
	return &MapReader[K, V, B, PB]{reader: w.inner.Reader()}
}

// Read borrows the buffer currently visible to readers, for the
// writer's own inspection.
func (w *MapWriter[K, V, B, PB]) Read() *B { return w.inner.Read() }

// Insert records a key/value pair, applying it to the back buffer
// immediately.
func (w *MapWriter[K, V, B, PB]) Insert(key K, value V) {
	w.inner.Apply(insertOp[K, V, B, PB](key, value))
}

// Remove records a key removal, applying it to the back buffer
// immediately.
func (w *MapWriter[K, V, B, PB]) Remove(key K) {
	w.inner.Apply(removeOp[K, V, B, PB](key))
}

// Clear records a clear, applying it to the back buffer immediately.
func (w *MapWriter[K, V, B, PB]) Clear() {
	w.inner.Apply(clearOp[K, V, B, PB]())
}

// Reserve hints at upcoming capacity; applied to the back buffer
// immediately like every other op.
func (w *MapWriter[K, V, B, PB]) Reserve(n int) {
	w.inner.Apply(reserveOp[K, V, B, PB](n))
}

// Flush swaps the buffers (blocking until current readers move off what
// becomes the back buffer) and replays every op recorded since the last
// Flush onto it. Readers only observe writes after Flush returns.
func (w *MapWriter[K, V, B, PB]) Flush() {
	w.inner.Flush()
}

// Close marks the map's writer gone; see doublebuf.Writer.Close.
func (w *MapWriter[K, V, B, PB]) Close() {
	w.inner.Close()
}

// Clone produces an independent MapReader over the same map. Fails if
// the writer is gone.
func (r *MapReader[K, V, B, PB]) Clone() (*MapReader[K, V, B, PB], error) {
	clone, err := r.reader.Clone()
	if err != nil {
		return nil, err
	}
	return &MapReader[K, V, B, PB]{reader: clone}, nil
}

// Close retires this reader's strategy-tracked tag, if the underlying
// strategy keeps one (S3/S3p); see doublebuf.Reader.Close.
func (r *MapReader[K, V, B, PB]) Close() {
	r.reader.Close()
}

// GetMap returns a guard over the whole buffer currently visible to this
// reader, per spec.md §4.5. Get is implemented in terms of this (the way
// conc-read-map/src/lib.rs's own get is get_map().try_map(...)) rather
// than acquiring its own guard, so a caller that needs more than one
// field out of a single snapshot — or wants Len/iteration under one
// consistent view — takes a GetMap guard directly instead of composing
// several independent reads.
func (r *MapReader[K, V, B, PB]) GetMap() (*doublebuf.ReadGuard[B], error) {
	return r.reader.Read()
}

// Len reports the number of entries currently visible to this reader.
func (r *MapReader[K, V, B, PB]) Len() (int, error) {
	guard, err := r.GetMap()
	if err != nil {
		return 0, err
	}
	defer guard.Release()
	return PB(guard.Value()).Len(), nil
}

// IsEmpty reports whether Len() == 0.
func (r *MapReader[K, V, B, PB]) IsEmpty() (bool, error) {
	n, err := r.Len()
	return n == 0, err
}

// Get looks up key in the buffer backing r, by acquiring a GetMap guard
// and projecting it down with doublebuf.TryMap — the same composition
// conc-read-map/src/lib.rs:172-184 uses (its get is get_map().try_map()).
// B's concrete type must additionally implement Getter[K, V]; that extra
// requirement is carried on PB here rather than on MapReader itself,
// since not every buffer adapter needs to support point lookups.
func Get[K comparable, V any, B any, PB interface {
	*B
	Buffer[K, V]
	Getter[K, V]
}](r *MapReader[K, V, B, PB], key K) (V, bool, error) {
	guard, err := r.GetMap()
	if err != nil {
		var zero V
		return zero, false, err
	}

	found, notFound := doublebuf.TryMap(guard, func(buf *B) (*V, bool) {
		v, ok := PB(buf).Get(key)
		if !ok {
			return nil, false
		}
		return &v, true
	})
	if found == nil {
		notFound.Release()
		var zero V
		return zero, false, nil
	}
	defer found.Release()
	return *found.Value(), true, nil
}

// Retain removes every entry for which keep returns false, replaying the
// same decision on both buffers via a boxed Call op the way
// conc-read-map's retain does. B's concrete type must additionally
// implement Retainer[K, V].
func Retain[K comparable, V any, B any, PB interface {
	*B
	Buffer[K, V]
	Retainer[K, V]
}](w *MapWriter[K, V, B, PB], keep func(key K, value V) bool) {
	w.inner.Apply(callOp[K, V, B, PB](func(buf PB, _ oplog.Order) {
		buf.Retain(keep)
	}))
}
