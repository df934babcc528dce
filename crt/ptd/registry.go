package ptd

import (
	"fmt"
	"os"
	"sync"

	"github.com/google/btree"

	"github.com/silver3-github/ucxxrt/crt/pool"
	"github.com/silver3-github/ucxxrt/crt/thread"
)

// Debug logging for registry transitions - controlled by PTD_LOG env var.
var logPTD = os.Getenv("PTD_LOG") != ""

func debugf(format string, args ...any) {
	if logPTD {
		fmt.Fprintf(os.Stderr, "[PTD] "+format+"\n", args...)
	}
}

// tableDegree is the btree branching factor. The table is small (one entry
// per live thread), so a low degree keeps nodes compact.
const tableDegree = 8

// state tracks the registry lifecycle:
// uninitialized -> initialized -> draining -> uninitialized.
type state uint8

const (
	stateUninitialized state = iota
	stateInitialized
	stateDraining
)

// Stats holds registry counters for testing and instrumentation.
type Stats struct {
	Created   int // blocks drawn fresh from the pool
	Reused    int // stale blocks reclaimed in place after id reuse
	Released  int // blocks freed by ReleaseCurrent
	Drained   int // blocks freed by Teardown
	Exhausted int // lookups refused because the pool was empty
}

// lessByID orders table entries solely by thread id. Tokens never
// participate in ordering; they are compared only after a positional match.
func lessByID(a, b *Block) bool {
	return a.id.ID < b.id.ID
}

// Registry is the per-thread runtime-data registry. Construct with New,
// bring up with Initialize, and drain with Teardown. The zero value is not
// usable.
type Registry struct {
	mu    sync.Mutex
	table *btree.BTreeG[*Block]
	pool  *pool.Pool[Block]
	probe Block // reusable lookup key, guarded by mu

	prov     thread.Provider
	fatal    func(string)
	capacity int

	state state
	stats Stats
}

// New builds an uninitialized registry. Call Initialize before use.
func New(opts ...Option) *Registry {
	r := &Registry{
		prov:     thread.GoroutineProvider{},
		fatal:    defaultFatal,
		capacity: DefaultCapacity,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Initialize sets up the block pool and the empty table, then inserts a
// block for the initializing thread itself. On any bootstrap failure the
// registry tears itself fully down before returning ErrBootstrap: no
// partial state survives the failure path.
func (r *Registry) Initialize() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != stateUninitialized {
		return ErrInitialized
	}

	p, err := pool.New[Block](r.capacity)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBootstrap, err)
	}
	r.pool = p
	r.table = btree.NewG(tableDegree, lessByID)
	r.state = stateInitialized

	if _, err := r.lookupOrCreateLocked(r.prov.Current()); err != nil {
		r.drain()
		return fmt.Errorf("%w: %w", ErrBootstrap, err)
	}

	debugf("initialized: capacity=%d", r.capacity)
	return nil
}

// Get resolves the calling thread's identity and returns its block,
// creating one on first access. This is the soft variant: when the pool is
// exhausted it returns (nil, ErrPoolExhausted) and the caller decides
// whether to abort.
func (r *Registry) Get() (*Block, error) {
	id := r.prov.Current()

	r.mu.Lock()
	if r.state != stateInitialized {
		r.mu.Unlock()
		return nil, ErrUninitialized
	}
	b, err := r.lookupOrCreateLocked(id)
	r.mu.Unlock()

	return b, err
}

// MustGet is the strict variant of Get: when no block can be obtained even
// after attempting creation, it invokes the fatal hook. Absence of
// thread-local runtime state is unrecoverable for callers on this path, so
// the condition is not propagated as an error value.
func (r *Registry) MustGet() *Block {
	b, err := r.Get()
	if b == nil {
		r.fatal(fmt.Sprintf("ptd: unrecoverable: no thread-data block: %v", err))
		return nil
	}
	return b
}

// lookupOrCreateLocked performs the positional lookup by id and the three
// hit/miss/stale transitions. Caller holds r.mu.
func (r *Registry) lookupOrCreateLocked(id thread.Identity) (*Block, error) {
	r.probe.id = id
	if b, ok := r.table.Get(&r.probe); ok {
		if b.id.Token == id.Token {
			return b, nil
		}
		// Same id, different token: the previous owner died and the host
		// recycled its identifier. Reuse the block in place - scratch is
		// cleared and the new identity stamped; no second allocation ever
		// exists under one id.
		b.reset()
		b.id = id
		r.stats.Reused++
		debugf("reused stale block: id=%d token=%#x", id.ID, id.Token)
		return b, nil
	}

	ref := r.pool.Get()
	if ref == nil {
		r.stats.Exhausted++
		debugf("pool exhausted: id=%d", id.ID)
		return nil, ErrPoolExhausted
	}
	b := ref.Value()
	b.slot = ref
	b.id = id
	r.table.ReplaceOrInsert(b)
	r.stats.Created++
	debugf("created block: id=%d token=%#x live=%d", id.ID, id.Token, r.table.Len())
	return b, nil
}

// ReleaseCurrent removes and frees the calling thread's block, returning
// its memory to the pool. The block's owned sub-resources are dropped on
// the free path, not left to the caller. No-op when the thread has no
// block or the registry is not initialized.
func (r *Registry) ReleaseCurrent() {
	id := r.prov.Current()

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != stateInitialized {
		return
	}
	r.probe.id = id
	b, ok := r.table.Delete(&r.probe)
	if !ok {
		return
	}
	r.freeBlock(b)
	r.stats.Released++
	debugf("released block: id=%d live=%d", id.ID, r.table.Len())
}

// Teardown drains the table front-to-empty through the same free path as
// ReleaseCurrent, then destroys the pool. It takes no per-call lock:
// teardown runs in a single-threaded shutdown context with no concurrent
// mutators. Safe after a failed Initialize and idempotent.
func (r *Registry) Teardown() {
	r.drain()
}

func (r *Registry) drain() {
	if r.state == stateInitialized {
		r.state = stateDraining
	}
	if r.table != nil {
		for {
			b, ok := r.table.DeleteMin()
			if !ok {
				break
			}
			r.freeBlock(b)
			r.stats.Drained++
		}
		r.table = nil
	}
	if r.pool != nil {
		r.pool.Close()
		r.pool = nil
	}
	r.state = stateUninitialized
	debugf("teardown complete: drained=%d", r.stats.Drained)
}

// freeBlock is the free-callback path shared by release and drain:
// drop the block's owned sub-resources, then return its memory to the pool.
func (r *Registry) freeBlock(b *Block) {
	b.reset()
	if ref := b.slot; ref != nil {
		b.slot = nil
		_ = r.pool.Put(ref)
	}
}

// Len returns the number of live blocks in the table.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.table == nil {
		return 0
	}
	return r.table.Len()
}

// Stats returns current registry counters.
func (r *Registry) Stats() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stats
}
