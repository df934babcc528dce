package pool

// Stats holds pool counters for testing and instrumentation.
type Stats struct {
	Gets      int // successful Get calls
	Puts      int // successful Put calls
	InUse     int // blocks currently out
	HighWater int // maximum simultaneous blocks out
	Exhausted int // Get calls refused for lack of a free block
}

// item is one preallocated slot. live is true while the slot is out.
type item[T any] struct {
	value T
	live  bool
}

// Ref is a handle to one pooled block. The pointed-to value stays valid
// until the ref is returned with Put or the pool is closed.
type Ref[T any] struct {
	pool *Pool[T]
	idx  int
}

// Value returns the pooled block. Returns nil after the ref has been
// returned to the pool.
func (r *Ref[T]) Value() *T {
	if r == nil || r.pool == nil || r.pool.closed {
		return nil
	}
	return &r.pool.items[r.idx].value
}

// Pool is a fixed-capacity block pool. The item slice is allocated once in
// New and never grows, so pointers handed out by Value stay stable for the
// life of the pool.
type Pool[T any] struct {
	items  []item[T]
	free   []int // free slot indexes, LIFO
	closed bool
	stats  Stats
}

// New builds a pool with the given capacity. All blocks are reserved up
// front.
func New[T any](capacity int) (*Pool[T], error) {
	if capacity <= 0 {
		return nil, ErrCapacity
	}
	p := &Pool[T]{
		items: make([]item[T], capacity),
		free:  make([]int, capacity),
	}
	for i := range capacity {
		// LIFO: hand out low indexes first.
		p.free[i] = capacity - 1 - i
	}
	return p, nil
}

// Get draws a zeroed block from the pool. Returns nil when the pool is
// exhausted or closed; exhaustion is a normal, non-fatal outcome.
func (p *Pool[T]) Get() *Ref[T] {
	if p.closed || len(p.free) == 0 {
		p.stats.Exhausted++
		return nil
	}
	idx := p.free[len(p.free)-1]
	p.free = p.free[:len(p.free)-1]
	p.items[idx].live = true

	p.stats.Gets++
	p.stats.InUse++
	if p.stats.InUse > p.stats.HighWater {
		p.stats.HighWater = p.stats.InUse
	}
	return &Ref[T]{pool: p, idx: idx}
}

// Put zeroes the block and returns it to the free list. The ref is dead
// afterwards: Value returns nil and a second Put reports ErrDoublePut.
func (p *Pool[T]) Put(r *Ref[T]) error {
	if p.closed {
		return ErrClosed
	}
	if r == nil || r.pool != p || r.idx < 0 || r.idx >= len(p.items) {
		return ErrBadRef
	}
	it := &p.items[r.idx]
	if !it.live {
		return ErrDoublePut
	}

	var zero T
	it.value = zero
	it.live = false
	p.free = append(p.free, r.idx)
	r.pool = nil

	p.stats.Puts++
	p.stats.InUse--
	return nil
}

// Close tears the pool down. Outstanding refs become dead and subsequent
// Get returns nil. Idempotent.
func (p *Pool[T]) Close() {
	if p.closed {
		return
	}
	p.closed = true
	p.items = nil
	p.free = nil
}

// Capacity returns the fixed block capacity.
func (p *Pool[T]) Capacity() int {
	if p.closed {
		return 0
	}
	return len(p.items)
}

// Stats returns current pool counters.
func (p *Pool[T]) Stats() Stats {
	return p.stats
}
