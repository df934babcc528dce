//go:build windows

package thread

import (
	"golang.org/x/sys/windows"
)

// OSProvider identifies the caller by host thread id.
//
// Unless runtime.LockOSThread is in effect the Go scheduler may migrate the
// calling goroutine between host threads at any time, so callers pinning
// state to an OSProvider identity must lock the thread first.
type OSProvider struct{}

// Current returns the calling host thread's identity.
func (OSProvider) Current() Identity {
	tid := uint64(windows.GetCurrentThreadId())
	return Identity{
		ID:    tid,
		Token: PackToken(uint64(windows.GetCurrentProcessId()), tid),
	}
}
