package ptd

import "errors"

var (
	// ErrPoolExhausted indicates no free thread-data block was available.
	// Recoverable: the caller may retry after another thread releases.
	ErrPoolExhausted = errors.New("ptd: no free thread-data block available")

	// ErrBootstrap indicates Initialize failed while building the pool or
	// inserting the initializing thread's own block. All partial state has
	// been torn down before this is returned.
	ErrBootstrap = errors.New("ptd: bootstrap failed")

	// ErrUninitialized indicates a registry operation before Initialize or
	// after Teardown.
	ErrUninitialized = errors.New("ptd: registry not initialized")

	// ErrInitialized indicates a second Initialize on a live registry.
	ErrInitialized = errors.New("ptd: registry already initialized")
)
