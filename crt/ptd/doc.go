// Package ptd implements the per-thread runtime-data registry.
//
// The registry maps the identity of an executing thread to a private Block
// of runtime scratch state (errno-like values, error-message buffers). A
// block is created lazily on a thread's first access, reused in place when
// the host recycles a dead thread's identifier, released explicitly on
// thread exit, and drained to empty when the environment shuts down.
//
// # Concurrency
//
// A single lock protects all table lookups and mutations. It is held for the
// shortest span covering search plus allocate/insert/remove and is never held
// across a blocking call. Block memory comes from a fixed-capacity pool, so
// drawing a block under the lock cannot allocate. Once a block has been
// handed to its owning thread, only that thread mutates it - by convention;
// the registry does not police cross-thread writes.
//
// # Failure model
//
// Pool exhaustion is a normal soft failure: Get reports ErrPoolExhausted and
// the caller decides. MustGet is the fail-fast variant: absence of thread
// data is treated as unrecoverable and the registered fatal hook terminates
// the process.
package ptd
