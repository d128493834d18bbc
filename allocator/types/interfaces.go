// Package types defines the allocator interface contracts.
//
// A tree never constructs its own nodes: it asks an Allocator for storage and
// hands the storage back when a split or merge retires a node, or when the
// tree is torn down. All allocators implement the same interface so they are
// interchangeable in tests.
//
// Interface hierarchy:
//   - Allocator: Allocate + Release, always required
//   - Introspectable: optional, for leak checks and statistics
package types

// Allocator hands out zeroed storage for values of type N.
type Allocator[N any] interface {
	// Allocate returns storage for one N. The returned value is zeroed.
	// Returns ErrAllocationFailed when the allocator cannot serve the request.
	Allocate() (*N, error)

	// Release returns storage obtained from Allocate. The caller must not
	// use n afterwards.
	Release(n *N) error
}

// Introspectable is an optional interface for allocators that count what
// they have handed out.
type Introspectable interface {
	Stats() Stats
}

// Stats is a snapshot of allocator activity.
type Stats struct {
	Allocated uint64 // total successful Allocate calls
	Released  uint64 // total successful Release calls
	Reused    uint64 // Allocate calls served from the free list
	Live      int    // Allocated - Released
	Free      int    // entries parked on the free list
}
