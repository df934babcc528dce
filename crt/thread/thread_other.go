//go:build !linux && !windows

package thread

// OSProvider falls back to goroutine identity on platforms without a cheap
// host-thread-id accessor.
type OSProvider struct{}

// Current returns the calling goroutine's identity.
func (OSProvider) Current() Identity {
	return GoroutineProvider{}.Current()
}
