// Package btreedict adapts github.com/google/btree to the dictionary
// capability. Unlike the other backends it can order items by score alone.
package btreedict

import (
	"errors"

	"github.com/google/btree"

	"github.com/cbehopkins/regiontree/dict"
)

// DefaultDegree is the B-tree degree used when none is given.
const DefaultDegree = 16

var (
	ErrNoOrdering = dict.ErrNoOrdering
	ErrBadDegree  = errors.New("btreedict: degree must be at least 2")
)

// Dict is an ordered dictionary backed by a B-tree.
type Dict[T any] struct {
	tree     *btree.BTreeG[T]
	freelist *btree.FreeListG[T]
}

// Option configures a Dict.
type Option func(*settings)

type settings struct {
	degree   int
	freeList int
}

// WithDegree sets the B-tree degree.
func WithDegree(degree int) Option {
	return func(s *settings) { s.degree = degree }
}

// WithFreeList keeps up to size released nodes for reuse.
func WithFreeList(size int) Option {
	return func(s *settings) { s.freeList = size }
}

// New builds a Dict ordered by compare, or by score when compare is nil.
func New[T any](compare dict.CompareFunc[T], score dict.ScoreFunc[T], opts ...Option) (*Dict[T], error) {
	order, err := dict.Ordering(compare, score)
	if err != nil {
		return nil, err
	}
	s := settings{degree: DefaultDegree, freeList: btree.DefaultFreeListSize}
	for _, opt := range opts {
		opt(&s)
	}
	if s.degree < 2 {
		return nil, ErrBadDegree
	}

	less := func(a, b T) bool { return order(a, b) < 0 }
	fl := btree.NewFreeListG[T](s.freeList)
	return &Dict[T]{
		tree:     btree.NewWithFreeListG[T](s.degree, less, fl),
		freelist: fl,
	}, nil
}

// Backend returns a dict.Backend that builds Dicts with opts.
func Backend[T any](opts ...Option) dict.Backend[T] {
	return func(compare dict.CompareFunc[T], score dict.ScoreFunc[T]) (dict.Dictionary[T], error) {
		d, err := New(compare, score, opts...)
		if err != nil {
			return nil, err
		}
		return d, nil
	}
}

func (d *Dict[T]) Insert(item T) (T, bool) {
	if existing, ok := d.tree.Get(item); ok {
		return existing, true
	}
	d.tree.ReplaceOrInsert(item)
	return item, false
}

func (d *Dict[T]) Delete(key T) (T, bool) {
	return d.tree.Delete(key)
}

func (d *Dict[T]) DeleteMin() (T, bool) {
	return d.tree.DeleteMin()
}

// Find returns the greatest item not exceeding key.
func (d *Dict[T]) Find(key T) (T, bool) {
	var (
		found T
		ok    bool
	)
	d.tree.DescendLessOrEqual(key, func(item T) bool {
		found, ok = item, true
		return false
	})
	return found, ok
}

func (d *Dict[T]) FindMin() (T, bool) {
	return d.tree.Min()
}

func (d *Dict[T]) Len() int {
	return d.tree.Len()
}

// Release empties the tree, parking its nodes on the free list.
func (d *Dict[T]) Release() {
	d.tree.Clear(true)
}

// Ascend calls fn for each item in order until fn returns false.
func (d *Dict[T]) Ascend(fn func(item T) bool) {
	d.tree.Ascend(fn)
}
