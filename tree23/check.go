package tree23

import "fmt"

// Check walks the whole tree and verifies its invariants: branching, uniform
// leaf depth, separator keys, strict item order, item count and the cached
// minimum. It returns an error wrapping ErrCorrupt describing the first
// violation found.
func (t *Tree[T]) Check() error {
	if t.root == nil {
		return ErrDestroyed
	}
	c := checker[T]{t: t, leafDepth: -1}
	if err := c.node(t.root, 0, true); err != nil {
		return err
	}
	if c.items != t.count {
		return fmt.Errorf("%w: counted %d items, tree says %d", ErrCorrupt, c.items, t.count)
	}
	if t.hasMin != (t.count > 0) {
		return fmt.Errorf("%w: minimum cached=%v with %d items", ErrCorrupt, t.hasMin, t.count)
	}
	if t.hasMin && t.compare(t.min, c.first) != 0 {
		return fmt.Errorf("%w: cached minimum %v, smallest item %v", ErrCorrupt, t.min, c.first)
	}
	return nil
}

type checker[T any] struct {
	t         *Tree[T]
	leafDepth int
	items     int
	first     T
	last      T
}

// node checks the subtree at nd and returns nil if it is sound.
func (c *checker[T]) node(nd *Node[T], depth int, isRoot bool) error {
	if nd == nil {
		return fmt.Errorf("%w: nil node at depth %d", ErrCorrupt, depth)
	}
	switch {
	case nd.n > 3:
		return fmt.Errorf("%w: %s with %d children", ErrCorrupt, nd.kind, nd.n)
	case nd.n >= 2:
	case isRoot && nd.kind == leafKind && c.t.count <= 1:
	default:
		return fmt.Errorf("%w: %s at depth %d has %d children", ErrCorrupt, nd.kind, depth, nd.n)
	}

	if nd.kind == leafKind {
		if c.leafDepth < 0 {
			c.leafDepth = depth
		} else if c.leafDepth != depth {
			return fmt.Errorf("%w: leaves at depths %d and %d", ErrCorrupt, c.leafDepth, depth)
		}
		for i := 0; i < nd.n; i++ {
			if nd.links[i].node != nil {
				return fmt.Errorf("%w: leaf holds a node", ErrCorrupt)
			}
			item := nd.links[i].item
			if i > 0 && c.t.compare(nd.keys[i-1], item) != 0 {
				return fmt.Errorf("%w: leaf key %d is %v, item is %v", ErrCorrupt, i, nd.keys[i-1], item)
			}
			if c.items > 0 && c.t.compare(c.last, item) >= 0 {
				return fmt.Errorf("%w: %v follows %v", ErrCorrupt, item, c.last)
			}
			if c.items == 0 {
				c.first = item
			}
			c.last = item
			c.items++
		}
		return nil
	}

	for i := 0; i < nd.n; i++ {
		child := nd.links[i].node
		before := c.items
		if err := c.node(child, depth+1, false); err != nil {
			return err
		}
		if c.items == before {
			return fmt.Errorf("%w: empty subtree under branch at depth %d", ErrCorrupt, depth)
		}
		if i == 0 {
			continue
		}
		min := leftmost(child)
		if c.t.compare(nd.keys[i-1], min) != 0 {
			return fmt.Errorf("%w: separator %d at depth %d is %v, subtree minimum is %v",
				ErrCorrupt, i, depth, nd.keys[i-1], min)
		}
	}
	return nil
}

// leftmost returns the smallest item under nd.
func leftmost[T any](nd *Node[T]) T {
	for nd.kind == branchKind {
		nd = nd.links[0].node
	}
	return nd.links[0].item
}
