// Package dict defines the capability interface shared by every ordered
// dictionary backend.
//
// Code that needs "some ordered dictionary" is written against Dictionary
// and obtains one through a Backend, so the concrete structure can be chosen
// later without changing the caller.
package dict

import (
	"errors"
)

var ErrNoOrdering = errors.New("dict: neither compare nor score was supplied")

// CompareFunc is a three-way ordering: negative, zero or positive when a is
// less than, equal to or greater than b. It must be a strict total order.
type CompareFunc[T any] func(a, b T) int

// ScoreFunc maps an item to an unsigned score. Backends that cannot use
// a comparison order by score; items with equal scores are the same key.
type ScoreFunc[T any] func(item T) uint

// Dictionary is an ordered set of caller-owned items.
type Dictionary[T any] interface {
	// Insert adds item. When an equal item is already stored it is returned
	// with found set and nothing changes.
	Insert(item T) (existing T, found bool)
	// Delete removes and returns the item equal to key.
	Delete(key T) (T, bool)
	// DeleteMin removes and returns the smallest item.
	DeleteMin() (T, bool)
	// Find returns the greatest item not exceeding key.
	Find(key T) (T, bool)
	// FindMin returns the smallest item.
	FindMin() (T, bool)
	Len() int
	// Release frees the dictionary's internal storage. Items are untouched.
	Release()
}

// Backend constructs an empty Dictionary. Backends use whichever of
// compare and score they support and may ignore the other.
type Backend[T any] func(compare CompareFunc[T], score ScoreFunc[T]) (Dictionary[T], error)
