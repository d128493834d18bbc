// Package tree23 provides an in-memory 2-3 tree keyed by a caller-supplied
// three-way comparison.
//
// # Shape
//
// Every branch has two or three children and every item lives at the same
// depth, attached directly to the lowest level of nodes. Each node carries
// the minimum item of its middle and right subtrees as separators, so a
// descent compares at most twice per level.
//
// # Operations
//
// Insert, Delete and DeleteMin search top-down while recording the path and
// then repair bottom-up: splits on insert, borrows and merges on delete. The
// repair walks the recorded path, never the call stack, so tree height is
// limited only by memory.
//
// Find is a floor query: it returns the item with the greatest key not
// exceeding the query. Delete, in contrast, requires an exact match.
//
// # Usage Example
//
//	t, _ := tree23.New(func(a, b int) int { return a - b })
//	t.Insert(10)
//	t.Insert(20)
//	v, ok := t.Find(15) // 10, true
//	t.Destroy()
//
// A Tree is not safe for concurrent use.
package tree23

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/cbehopkins/regiontree/allocator/pool"
	"github.com/cbehopkins/regiontree/allocator/types"
)

var (
	ErrNilCompare = errors.New("tree23: compare function is required")
	ErrDestroyed  = errors.New("tree23: tree has been destroyed")
	ErrCorrupt    = errors.New("tree23: invariant violated")
)

// FatalError is the panic value raised when the tree cannot continue:
// the allocator failed or the tree was used after Destroy.
// A tree that raised a FatalError must be discarded.
type FatalError struct {
	Op  string
	Err error
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("tree23: %s: %v", e.Op, e.Err)
}

func (e *FatalError) Unwrap() error {
	return e.Err
}

// step is one level of a recorded search path: the node passed through
// and the index of the child taken.
type step[T any] struct {
	node *Node[T]
	dir  int
}

// Tree is a 2-3 tree of items of type T.
type Tree[T any] struct {
	root    *Node[T]
	compare func(a, b T) int
	count   int
	min     T
	hasMin  bool

	// path is scratch space reused by every mutation.
	path []step[T]

	alloc  types.Allocator[Node[T]]
	logger *slog.Logger
}

// Option configures a Tree.
type Option[T any] func(*Tree[T])

// WithAllocator makes the tree obtain and return nodes through a.
func WithAllocator[T any](a types.Allocator[Node[T]]) Option[T] {
	return func(t *Tree[T]) {
		t.alloc = a
	}
}

// WithLogger sets the logger used for structural events.
func WithLogger[T any](l *slog.Logger) Option[T] {
	return func(t *Tree[T]) {
		t.logger = l
	}
}

// New creates an empty tree ordered by compare, which must return a
// negative, zero or positive value when a is less than, equal to or greater
// than b, and must be a total order over every item ever inserted.
func New[T any](compare func(a, b T) int, opts ...Option[T]) (*Tree[T], error) {
	if compare == nil {
		return nil, ErrNilCompare
	}
	t := &Tree[T]{
		compare: compare,
		path:    make([]step[T], 0, 8),
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.alloc == nil {
		t.alloc = pool.Default[Node[T]]()
	}
	if t.logger == nil {
		t.logger = slog.Default()
	}
	t.root = t.newNode(leafKind, "new")
	return t, nil
}

// newNode obtains a node from the allocator. Allocation failure is fatal.
func (t *Tree[T]) newNode(k kind, op string) *Node[T] {
	nd, err := t.alloc.Allocate()
	if err != nil {
		panic(&FatalError{Op: op, Err: err})
	}
	if nd == nil {
		panic(&FatalError{Op: op, Err: types.ErrAllocationFailed})
	}
	*nd = Node[T]{kind: k}
	return nd
}

// freeNode clears nd so it holds no item references and hands it back.
func (t *Tree[T]) freeNode(nd *Node[T], op string) {
	*nd = Node[T]{}
	if err := t.alloc.Release(nd); err != nil {
		panic(&FatalError{Op: op, Err: err})
	}
}

func (t *Tree[T]) mustBeLive(op string) {
	if t.root == nil {
		panic(&FatalError{Op: op, Err: ErrDestroyed})
	}
}

// Len returns the number of items in the tree.
func (t *Tree[T]) Len() int {
	return t.count
}

// Height returns the number of node levels, 1 for a tree with a leaf root
// and 0 once destroyed.
func (t *Tree[T]) Height() int {
	h := 0
	for nd := t.root; nd != nil; nd = nd.links[0].node {
		h++
		if nd.kind == leafKind {
			break
		}
	}
	return h
}

// FindMin returns the smallest item without searching.
func (t *Tree[T]) FindMin() (T, bool) {
	t.mustBeLive("find-min")
	return t.min, t.hasMin
}

// Destroy releases every node back to the allocator. Items are left to the
// caller. The tree must not be used afterwards; calling Destroy again does
// nothing.
func (t *Tree[T]) Destroy() {
	if t.root == nil {
		return
	}
	stack := make([]*Node[T], 0, 3*len(t.path)+3)
	stack = append(stack, t.root)
	released := 0
	for len(stack) > 0 {
		nd := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if nd.kind == branchKind {
			for i := 0; i < nd.n; i++ {
				stack = append(stack, nd.links[i].node)
			}
		}
		t.freeNode(nd, "destroy")
		released++
	}

	var zero T
	t.root = nil
	t.path = nil
	t.count = 0
	t.min, t.hasMin = zero, false
	t.logger.Debug("tree destroyed", "nodes", released)
}

// Release is Destroy under the name the dictionary capability uses.
func (t *Tree[T]) Release() {
	t.Destroy()
}
