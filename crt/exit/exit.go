// Package exit implements the runtime's exit-handler registration tables.
//
// A Table collects handlers during the life of the environment and runs
// them newest-first exactly once at shutdown. The environment keeps two
// tables: the regular exit table and the quick-exit table, flushed by
// different shutdown paths.
package exit

import (
	"errors"
	"sync"
)

// ErrTableClosed indicates a registration after the table has run.
var ErrTableClosed = errors.New("exit: table no longer accepts handlers")

// Table is a LIFO exit-handler table. The zero value is not usable;
// construct with NewTable.
type Table struct {
	mu     sync.Mutex
	fns    []func()
	closed bool
}

// NewTable returns an empty, open table.
func NewTable() *Table {
	return &Table{fns: make([]func(), 0, 8)}
}

// Register appends a handler. Handlers registered while Run is executing
// are picked up by the same run, matching the host runtime's behavior.
// Returns ErrTableClosed once the table has finished running.
func (t *Table) Register(fn func()) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return ErrTableClosed
	}
	t.fns = append(t.fns, fn)
	return nil
}

// Len returns the number of pending handlers.
func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.fns)
}

// Run executes pending handlers newest-first and closes the table. The
// lock is released around each handler so a handler may register further
// handlers; those run in the same pass. A second Run is a no-op.
func (t *Table) Run() {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return
	}
	for len(t.fns) > 0 {
		fn := t.fns[len(t.fns)-1]
		t.fns = t.fns[:len(t.fns)-1]
		t.mu.Unlock()
		fn()
		t.mu.Lock()
	}
	t.closed = true
	t.mu.Unlock()
}
