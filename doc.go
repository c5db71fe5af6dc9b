// Package doublebuf implements a concurrent double-buffering primitive:
// a single writer and many readers share two buffers of the same type.
// Readers always dereference a stable, fully-formed snapshot without
// taking a lock; the writer mutates a private back buffer and exposes it
// to readers by flipping a front/back indicator, then waits for any
// reader that might still be looking at the old front buffer to finish
// before it may touch that buffer again.
//
// The package only describes the engine: the shared cell, the
// Writer/Reader handle pair and the ReadGuard returned by a read. How
// readers are tracked while a swap is in flight is pluggable (see
// sibling package doublebuf/strategy); how a batch of deferred writes
// gets replayed onto both buffers lives in doublebuf/oplog; a
// mapping-oriented façade over both lives in doublebuf/concmap.
package doublebuf
