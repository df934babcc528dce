// Package thread resolves the identity of the executing thread.
//
// An Identity pairs an ordering key (the thread id) with a uniqueness token
// that distinguishes successive occupants of a recycled id. Providers are
// the platform capability behind identity resolution: GoroutineProvider is
// the default on the Go runtime, and OSProvider uses the host thread id on
// platforms that expose one cheaply.
package thread
