// Package treap provides an in-memory treap (tree + heap): a randomized
// binary search tree that uses heap-ordered priorities for balancing.
//
// Each node has an item (for BST ordering) and a priority (for heap ordering).
// Higher priority nodes are rotated towards the root during insertion.
// Priorities are random unless the item implements PriorityProvider.
//
// A Treap offers the same ordered-dictionary operations as the 2-3 tree,
// including floor Find and exact Delete, and is not safe for concurrent use.
package treap

import (
	"errors"
	"math/rand"
)

var ErrNilCompare = errors.New("treap: compare function is required")

// Priority represents the heap priority for a node in the treap.
type Priority uint32

// PriorityProvider lets an item choose its own priority.
type PriorityProvider interface {
	Priority() Priority
}

// randomPriority generates a random priority value using math/rand.
func randomPriority() Priority {
	return Priority(rand.Uint32())
}

// TreapNode represents a node in an in-memory treap.
type TreapNode[T any] struct {
	item     T
	priority Priority
	left     *TreapNode[T]
	right    *TreapNode[T]
}

// Item returns the item stored at the node.
func (n *TreapNode[T]) Item() T {
	return n.item
}

// Priority returns the priority of the node.
func (n *TreapNode[T]) Priority() Priority {
	return n.priority
}

// Treap represents a treap data structure.
type Treap[T any] struct {
	root    *TreapNode[T]
	compare func(a, b T) int
	count   int
}

// New creates an empty Treap ordered by compare.
func New[T any](compare func(a, b T) int) (*Treap[T], error) {
	if compare == nil {
		return nil, ErrNilCompare
	}
	return &Treap[T]{compare: compare}, nil
}

// rotateRight performs a right rotation on the given node.
func rotateRight[T any](node *TreapNode[T]) *TreapNode[T] {
	newRoot := node.left
	node.left = newRoot.right
	newRoot.right = node
	return newRoot
}

// rotateLeft performs a left rotation on the given node.
func rotateLeft[T any](node *TreapNode[T]) *TreapNode[T] {
	newRoot := node.right
	node.right = newRoot.left
	newRoot.left = node
	return newRoot
}

// insert places newNode below node and returns the new subtree root.
// When an equal item already exists it is returned in existing.
func (t *Treap[T]) insert(node, newNode *TreapNode[T]) (root, existing *TreapNode[T]) {
	if node == nil {
		return newNode, nil
	}

	c := t.compare(newNode.item, node.item)
	switch {
	case c == 0:
		return node, node
	case c < 0:
		node.left, existing = t.insert(node.left, newNode)
		if node.left.priority > node.priority {
			node = rotateRight(node)
		}
	default:
		node.right, existing = t.insert(node.right, newNode)
		if node.right.priority > node.priority {
			node = rotateLeft(node)
		}
	}
	return node, existing
}

// delete removes the node equal to key from the subtree, returning the new
// subtree root and the removed node.
func (t *Treap[T]) delete(node *TreapNode[T], key T) (root, removed *TreapNode[T]) {
	if node == nil {
		return nil, nil
	}

	c := t.compare(key, node.item)
	switch {
	case c < 0:
		node.left, removed = t.delete(node.left, key)
	case c > 0:
		node.right, removed = t.delete(node.right, key)
	default:
		switch {
		case node.left == nil:
			return node.right, node
		case node.right == nil:
			return node.left, node
		case node.left.priority > node.right.priority:
			node = rotateRight(node)
			node.right, removed = t.delete(node.right, key)
		default:
			node = rotateLeft(node)
			node.left, removed = t.delete(node.left, key)
		}
	}
	return node, removed
}

// InsertComplex inserts item with an explicit priority.
func (t *Treap[T]) InsertComplex(item T, priority Priority) (T, bool) {
	var existing *TreapNode[T]
	t.root, existing = t.insert(t.root, &TreapNode[T]{item: item, priority: priority})
	if existing != nil {
		return existing.item, true
	}
	t.count++
	return item, false
}

// Insert adds item. If the item implements PriorityProvider, its Priority()
// method is used; otherwise a random priority is generated.
// An equal item already present is returned unchanged with found set.
func (t *Treap[T]) Insert(item T) (T, bool) {
	var priority Priority
	if pp, ok := any(item).(PriorityProvider); ok {
		priority = pp.Priority()
	} else {
		priority = randomPriority()
	}
	return t.InsertComplex(item, priority)
}

// Delete removes the item equal to key.
func (t *Treap[T]) Delete(key T) (T, bool) {
	var removed *TreapNode[T]
	t.root, removed = t.delete(t.root, key)
	if removed == nil {
		var zero T
		return zero, false
	}
	t.count--
	return removed.item, true
}

// DeleteMin removes the leftmost item.
func (t *Treap[T]) DeleteMin() (T, bool) {
	var zero T
	if t.root == nil {
		return zero, false
	}
	// The leftmost node has no left child, so it is unlinked by replacing it
	// with its right subtree. Heap order is preserved.
	var parent *TreapNode[T]
	node := t.root
	for node.left != nil {
		parent, node = node, node.left
	}
	if parent == nil {
		t.root = node.right
	} else {
		parent.left = node.right
	}
	t.count--
	return node.item, true
}

// Search returns the node holding the item equal to key, or nil.
func (t *Treap[T]) Search(key T) *TreapNode[T] {
	node := t.root
	for node != nil {
		c := t.compare(key, node.item)
		if c == 0 {
			return node
		}
		if c < 0 {
			node = node.left
		} else {
			node = node.right
		}
	}
	return nil
}

// Find returns the greatest item not exceeding key.
func (t *Treap[T]) Find(key T) (T, bool) {
	var best *TreapNode[T]
	node := t.root
	for node != nil {
		c := t.compare(key, node.item)
		if c == 0 {
			return node.item, true
		}
		if c < 0 {
			node = node.left
		} else {
			best = node
			node = node.right
		}
	}
	if best == nil {
		var zero T
		return zero, false
	}
	return best.item, true
}

// FindMin returns the leftmost item.
func (t *Treap[T]) FindMin() (T, bool) {
	if t.root == nil {
		var zero T
		return zero, false
	}
	node := t.root
	for node.left != nil {
		node = node.left
	}
	return node.item, true
}

// Len returns the number of items.
func (t *Treap[T]) Len() int {
	return t.count
}

// Release drops every node. The treap is empty and usable afterwards.
func (t *Treap[T]) Release() {
	t.root = nil
	t.count = 0
}

// UpdatePriority gives the item equal to key a new priority by deleting
// and reinserting it.
func (t *Treap[T]) UpdatePriority(key T, newPriority Priority) bool {
	item, ok := t.Delete(key)
	if !ok {
		return false
	}
	t.InsertComplex(item, newPriority)
	return true
}
