package ptd

import (
	"fmt"
	"os"

	"github.com/silver3-github/ucxxrt/crt/thread"
)

// DefaultCapacity is the block-pool capacity used when WithCapacity is not
// given: one block per live thread that has touched the registry.
const DefaultCapacity = 256

// Option configures a Registry at construction.
type Option func(*Registry)

// WithCapacity sets the fixed block-pool capacity. Values <= 0 make
// Initialize fail with ErrBootstrap.
func WithCapacity(n int) Option {
	return func(r *Registry) { r.capacity = n }
}

// WithProvider sets the identity provider. Defaults to
// thread.GoroutineProvider.
func WithProvider(p thread.Provider) Option {
	return func(r *Registry) { r.prov = p }
}

// WithFatal sets the abnormal-termination hook used by MustGet. The default
// writes the message to stderr and exits with status 3.
func WithFatal(f func(msg string)) Option {
	return func(r *Registry) { r.fatal = f }
}

func defaultFatal(msg string) {
	fmt.Fprintln(os.Stderr, msg)
	os.Exit(3)
}
