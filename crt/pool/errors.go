package pool

import "errors"

var (
	// ErrCapacity indicates the requested capacity is not positive.
	ErrCapacity = errors.New("pool: capacity must be positive")

	// ErrBadRef indicates a ref that does not belong to this pool.
	ErrBadRef = errors.New("pool: ref does not belong to this pool")

	// ErrDoublePut indicates an attempt to return a block twice.
	ErrDoublePut = errors.New("pool: block already returned")

	// ErrClosed indicates an operation on a closed pool.
	ErrClosed = errors.New("pool: closed")
)
