// Package strategy provides the reader-tracking policies a
// doublebuf.SharedCell is built with: how readers announce that they are
// inside a guard, and how a writer captures and waits for that set to
// drain after a swap.
//
// Each constructor returns a doublebuf.Strategy; none of the types here
// import doublebuf directly; Go's structural interfaces satisfy it
// without either package needing to know about the other.
//
//   - SingleThreaded (S1): confined to one goroutine, no atomics.
//   - AtomicCounter (S2): one shared counter, simple but contends on every read.
//   - Epoch (S3): per-reader epoch tags, scales with read-side concurrency.
//   - EpochPark (S3p): Epoch plus a condition-variable parking fallback.
package strategy
