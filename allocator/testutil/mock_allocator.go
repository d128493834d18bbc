package testutil

import (
	"github.com/cbehopkins/regiontree/allocator/types"
)

// MockAllocator is a functional implementation of the allocator interfaces for testing.
// It remembers every live entry so leaks and double releases can be detected,
// and can be told to fail after a number of allocations.
type MockAllocator[N any] struct {
	live      map[*N]struct{}
	stats     types.Stats
	failAfter int
	failErr   error
	errs      []error
}

// NewMockAllocator creates a new mock allocator for testing.
func NewMockAllocator[N any]() *MockAllocator[N] {
	return &MockAllocator[N]{
		live:      make(map[*N]struct{}),
		failAfter: -1,
	}
}

// FailAfter lets the next n calls to Allocate succeed and fails every later one with err.
// A negative n disables failure injection.
func (m *MockAllocator[N]) FailAfter(n int, err error) {
	m.failAfter = n
	if err == nil {
		err = types.ErrAllocationFailed
	}
	m.failErr = err
}

func (m *MockAllocator[N]) Allocate() (*N, error) {
	if m.failAfter == 0 {
		return nil, m.failErr
	}
	if m.failAfter > 0 {
		m.failAfter--
	}
	n := new(N)
	m.live[n] = struct{}{}
	m.stats.Allocated++
	m.stats.Live++
	return n, nil
}

func (m *MockAllocator[N]) Release(n *N) error {
	if n == nil {
		m.errs = append(m.errs, types.ErrNilNode)
		return types.ErrNilNode
	}
	if _, ok := m.live[n]; !ok {
		m.errs = append(m.errs, types.ErrDoubleRelease)
		return types.ErrDoubleRelease
	}
	delete(m.live, n)
	m.stats.Released++
	m.stats.Live--
	return nil
}

func (m *MockAllocator[N]) Stats() types.Stats {
	return m.stats
}

// Live returns the number of entries handed out and not released.
func (m *MockAllocator[N]) Live() int {
	return len(m.live)
}

// Owns reports whether n is currently live.
func (m *MockAllocator[N]) Owns(n *N) bool {
	_, ok := m.live[n]
	return ok
}

// Errors returns every error Release has reported.
func (m *MockAllocator[N]) Errors() []error {
	return m.errs
}
