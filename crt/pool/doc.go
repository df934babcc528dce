// Package pool provides a fixed-capacity typed block pool.
//
// All backing memory is reserved at construction, so drawing a block never
// allocates and never blocks - the moral equivalent of a non-pageable
// lookaside list. Exhaustion is a normal outcome: Get returns nil and the
// caller decides whether to fail soft or fail fast.
//
// A Pool is not safe for concurrent use on its own. The owning container
// serializes access under its own lock; this keeps the pool free of nested
// lock acquisition on the owner's hot path.
package pool
