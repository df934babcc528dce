package main

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/timandy/routine"

	"github.com/silver3-github/ucxxrt/crt/ptd"
	"github.com/silver3-github/ucxxrt/crt/thread"
)

// localProvider lets each worker present a controlled identity to the
// registry. Goroutines that never set one fall back to goroutine identity,
// which covers the initializing goroutine's bootstrap block.
type localProvider struct {
	tls routine.ThreadLocal[thread.Identity]
}

func newLocalProvider() *localProvider {
	return &localProvider{tls: routine.NewThreadLocal[thread.Identity]()}
}

func (p *localProvider) Current() thread.Identity {
	if id := p.tls.Get(); id != (thread.Identity{}) {
		return id
	}
	return thread.GoroutineProvider{}.Current()
}

func (p *localProvider) assume(id thread.Identity) {
	p.tls.Set(id)
}

func runStress(log *slog.Logger) error {
	runID := uuid.NewString()
	prov := newLocalProvider()

	reg := ptd.New(
		ptd.WithCapacity(capacity),
		ptd.WithProvider(prov),
	)
	if err := reg.Initialize(); err != nil {
		return err
	}
	defer reg.Teardown()

	log.Info("registry up",
		"run", runID,
		"workers", workers,
		"iterations", iterations,
		"capacity", capacity,
		"recycle", recycle,
	)

	var softFailures atomic.Int64
	start := time.Now()

	var wg sync.WaitGroup
	for w := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()

			id := uint64(w + 1)
			incarnation := uint64(1)
			prov.assume(thread.Identity{ID: id, Token: thread.PackToken(incarnation, id)})

			for i := range iterations {
				if recycle && i > 0 && i%100 == 0 {
					// The previous occupant of this id "died"; a new thread
					// now holds the recycled identifier.
					incarnation++
					prov.assume(thread.Identity{ID: id, Token: thread.PackToken(incarnation, id)})
				}

				b, err := reg.Get()
				if err != nil {
					softFailures.Add(1)
					continue
				}
				b.Errno = int32(i)
				b.SetErrorMessage("stress probe")

				// Release on a fraction of the cycles so the pool churns.
				if i%10 == 9 {
					reg.ReleaseCurrent()
				}
			}
			reg.ReleaseCurrent()
		}()
	}
	wg.Wait()

	elapsed := time.Since(start)
	stats := reg.Stats()
	log.Info("stress complete",
		"run", runID,
		"elapsed", elapsed,
		"live", reg.Len(),
		"created", stats.Created,
		"reused", stats.Reused,
		"released", stats.Released,
		"exhausted", stats.Exhausted,
		"soft_failures", softFailures.Load(),
	)
	return nil
}
