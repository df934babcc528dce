package thread

import (
	"os"

	"github.com/timandy/routine"
)

// GoroutineProvider identifies the caller by goroutine id. This is the
// default provider on the Go runtime: goroutine ids are never recycled
// within a process, so the token only changes when the process id does.
type GoroutineProvider struct{}

// Current returns the calling goroutine's identity.
func (GoroutineProvider) Current() Identity {
	gid := uint64(routine.Goid())
	return Identity{
		ID:    gid,
		Token: PackToken(uint64(os.Getpid()), gid),
	}
}
