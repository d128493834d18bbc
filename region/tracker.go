// Package region tracks non-overlapping address ranges on top of any
// ordered dictionary and answers "which region contains this address".
//
// Regions are keyed by start address. A containment lookup is a floor query
// for the address followed by a bounds check, which is why the dictionary
// capability exposes floor rather than exact Find.
package region

import (
	"errors"
	"fmt"
	"log/slog"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/cbehopkins/regiontree"
	"github.com/cbehopkins/regiontree/dict"
)

var (
	ErrEmptyRegion = errors.New("region: zero-length region")
	ErrOverlap     = errors.New("region: overlaps an existing region")
	ErrWrap        = errors.New("region: range wraps the address space")
	ErrClosed      = errors.New("region: tracker is closed")
)

// Tracker holds a set of disjoint regions.
// Not safe for concurrent use.
type Tracker struct {
	regions dict.Dictionary[*regiontree.Region]
	cache   *lru.Cache[regiontree.Addr, *regiontree.Region]
	logger  *slog.Logger

	hits, misses uint64
}

// Option configures a Tracker.
type Option func(*Tracker) error

// WithLookupCache remembers up to size successful lookups. Every mutation
// empties the cache.
func WithLookupCache(size int) Option {
	return func(t *Tracker) error {
		c, err := lru.New[regiontree.Addr, *regiontree.Region](size)
		if err != nil {
			return fmt.Errorf("lookup cache: %w", err)
		}
		t.cache = c
		return nil
	}
}

// WithLogger sets the logger for region events.
func WithLogger(l *slog.Logger) Option {
	return func(t *Tracker) error {
		t.logger = l
		return nil
	}
}

// New wraps an empty dictionary ordered by regiontree.CompareRegions.
func New(d dict.Dictionary[*regiontree.Region], opts ...Option) (*Tracker, error) {
	t := &Tracker{regions: d, logger: slog.Default()}
	for _, opt := range opts {
		if err := opt(t); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func (t *Tracker) invalidate() {
	if t.cache != nil {
		t.cache.Purge()
	}
}

func (t *Tracker) live() error {
	if t.regions == nil {
		return ErrClosed
	}
	return nil
}

// Add records r. When r overlaps a region already held, that region is
// returned along with ErrOverlap.
func (t *Tracker) Add(r *regiontree.Region) (*regiontree.Region, error) {
	if err := t.live(); err != nil {
		return nil, err
	}
	if r.Range == 0 || r.End <= r.Start {
		if r.Range != 0 {
			return nil, fmt.Errorf("%w: %s", ErrWrap, r)
		}
		return nil, ErrEmptyRegion
	}

	// Only the last region starting before r ends can overlap it.
	if prev, ok := t.regions.Find(regiontree.KeyRegion(r.End - 1)); ok && prev.Overlaps(r) {
		return prev, fmt.Errorf("%w: %s and %s", ErrOverlap, r, prev)
	}
	t.regions.Insert(r)
	t.invalidate()
	t.logger.Debug("region added", "start", r.Start, "end", r.End, "approx", r.Approx)
	return r, nil
}

// Lookup returns the region containing addr.
func (t *Tracker) Lookup(addr regiontree.Addr) (*regiontree.Region, bool) {
	if t.regions == nil {
		return nil, false
	}
	if t.cache != nil {
		if r, ok := t.cache.Get(addr); ok {
			t.hits++
			return r, true
		}
		t.misses++
	}
	r, ok := t.regions.Find(regiontree.KeyRegion(addr))
	if !ok || !r.Contains(addr) {
		return nil, false
	}
	if t.cache != nil {
		t.cache.Add(addr, r)
	}
	return r, true
}

// Remove deletes the region starting exactly at addr.
func (t *Tracker) Remove(addr regiontree.Addr) (*regiontree.Region, bool) {
	if t.regions == nil {
		return nil, false
	}
	r, ok := t.regions.Delete(regiontree.KeyRegion(addr))
	if ok {
		t.invalidate()
		t.logger.Debug("region removed", "start", r.Start, "end", r.End)
	}
	return r, ok
}

// Lowest returns the region with the smallest start address.
func (t *Tracker) Lowest() (*regiontree.Region, bool) {
	if t.regions == nil {
		return nil, false
	}
	return t.regions.FindMin()
}

// PopLowest removes and returns the region with the smallest start address.
func (t *Tracker) PopLowest() (*regiontree.Region, bool) {
	if t.regions == nil {
		return nil, false
	}
	r, ok := t.regions.DeleteMin()
	if ok {
		t.invalidate()
	}
	return r, ok
}

// Len returns the number of regions held.
func (t *Tracker) Len() int {
	if t.regions == nil {
		return 0
	}
	return t.regions.Len()
}

// CacheStats reports lookup cache hits and misses.
func (t *Tracker) CacheStats() (hits, misses uint64) {
	return t.hits, t.misses
}

// Close releases the underlying dictionary. Later calls see an empty
// tracker and Add fails with ErrClosed.
func (t *Tracker) Close() {
	if t.regions == nil {
		return
	}
	t.regions.Release()
	t.regions = nil
	t.invalidate()
}
