package pool

import (
	"errors"

	"github.com/cbehopkins/regiontree/allocator/types"
)

var ErrNegativeLimit = errors.New("pool limits must be >= 0")

const (
	defaultMaxFree = 1024
)

// Config tunes a PoolAllocator.
type Config struct {
	// MaxLive caps the number of entries handed out and not yet released.
	// Zero means unbounded.
	MaxLive int
	// MaxFree caps the free list. Released entries beyond it are dropped
	// for the garbage collector. Zero selects the default.
	MaxFree int
}

func normalizeConfig(cfg Config) (Config, error) {
	if cfg.MaxLive < 0 || cfg.MaxFree < 0 {
		return Config{}, ErrNegativeLimit
	}
	if cfg.MaxFree == 0 {
		cfg.MaxFree = defaultMaxFree
	}
	return cfg, nil
}

// PoolAllocator recycles fixed-type entries through a free list.
// Not safe for concurrent use.
type PoolAllocator[N any] struct {
	cfg   Config
	free  []*N
	stats types.Stats

	// Optional callback fired on each allocation
	onAllocate func(*N)
}

// New creates a PoolAllocator with the given limits.
func New[N any](cfg Config) (*PoolAllocator[N], error) {
	cfg, err := normalizeConfig(cfg)
	if err != nil {
		return nil, err
	}
	return &PoolAllocator[N]{
		cfg:  cfg,
		free: make([]*N, 0, 16),
	}, nil
}

// Default returns an unbounded pool.
func Default[N any]() *PoolAllocator[N] {
	p, _ := New[N](Config{})
	return p
}

// Allocate returns a zeroed entry, reusing a released one when available.
func (p *PoolAllocator[N]) Allocate() (*N, error) {
	if p.cfg.MaxLive > 0 && p.stats.Live >= p.cfg.MaxLive {
		return nil, types.ErrAllocationFailed
	}

	var n *N
	if last := len(p.free) - 1; last >= 0 {
		n = p.free[last]
		p.free[last] = nil
		p.free = p.free[:last]
		var zero N
		*n = zero
		p.stats.Reused++
	} else {
		n = new(N)
	}

	p.stats.Allocated++
	p.stats.Live++
	if p.onAllocate != nil {
		p.onAllocate(n)
	}
	return n, nil
}

// Release parks n on the free list.
func (p *PoolAllocator[N]) Release(n *N) error {
	if n == nil {
		return types.ErrNilNode
	}
	if p.stats.Live == 0 {
		return types.ErrUnknownNode
	}
	p.stats.Released++
	p.stats.Live--
	if len(p.free) < p.cfg.MaxFree {
		p.free = append(p.free, n)
	}
	return nil
}

// Stats returns a snapshot of the pool counters.
func (p *PoolAllocator[N]) Stats() types.Stats {
	s := p.stats
	s.Free = len(p.free)
	return s
}

// SetOnAllocate registers a callback invoked after each allocation.
// Pass nil to clear any previous callback.
func (p *PoolAllocator[N]) SetOnAllocate(callback func(*N)) {
	p.onAllocate = callback
}

// Drain drops every parked entry.
func (p *PoolAllocator[N]) Drain() int {
	n := len(p.free)
	for i := range p.free {
		p.free[i] = nil
	}
	p.free = p.free[:0]
	return n
}
