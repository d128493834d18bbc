package tree23

// Delete removes the item comparing equal to key and returns it. Unlike
// Find, a nearby smaller item is not a match.
func (t *Tree[T]) Delete(key T) (T, bool) {
	var zero T
	t.mustBeLive("delete")
	if t.count == 0 {
		return zero, false
	}

	leaf := t.descend(key)
	i, c := leaf.floor(key, t.compare)
	if i < 0 || c != 0 {
		return zero, false
	}
	return t.removeAt(leaf, i), true
}

// DeleteMin removes and returns the smallest item.
func (t *Tree[T]) DeleteMin() (T, bool) {
	var zero T
	t.mustBeLive("delete-min")
	if t.count == 0 {
		return zero, false
	}

	t.path = t.path[:0]
	nd := t.root
	for nd.kind == branchKind {
		t.path = append(t.path, step[T]{node: nd, dir: 0})
		nd = nd.links[0].node
	}
	return t.removeAt(nd, 0), true
}

// removeAt takes item i out of leaf, which was reached along t.path, and
// restores the tree's invariants.
func (t *Tree[T]) removeAt(leaf *Node[T], i int) T {
	removed := leaf.links[i].item
	leaf.removeLink(i)
	t.count--

	if i == 0 {
		t.minChanged(leaf)
	}
	t.rebalance(leaf)
	return removed
}

// minChanged records the new smallest item of leaf in the one place that
// names it: the separator at the deepest level where the path turned away
// from the left child, or the tree's cached minimum if it never did.
func (t *Tree[T]) minChanged(leaf *Node[T]) {
	for level := len(t.path) - 1; level >= 0; level-- {
		if st := t.path[level]; st.dir > 0 {
			st.node.keys[st.dir-1] = leaf.links[0].item
			return
		}
	}
	if leaf.n > 0 {
		t.min, t.hasMin = leaf.links[0].item, true
		return
	}
	var zero T
	t.min, t.hasMin = zero, false
}

// rebalance repairs u, which may have been left with a single child, by
// borrowing from or merging with the adjacent sibling recorded on the path.
// A merge removes a child from the parent, so the repair may continue one
// level up, ending at the root, which is replaced by its only child.
func (t *Tree[T]) rebalance(u *Node[T]) {
	for level := len(t.path) - 1; u.n < 2; level-- {
		if level < 0 {
			if u.kind == branchKind {
				t.root = u.links[0].node
				t.freeNode(u, "shrink")
				t.logger.Debug("tree shrank", "height", t.Height(), "items", t.count)
			}
			return
		}

		parent, idx := t.path[level].node, t.path[level].dir
		if idx > 0 {
			// Sibling to the left. u's only child has the separator u is filed under.
			sib := parent.links[idx-1].node
			uMin := parent.keys[idx-1]
			if sib.n == 3 {
				u.links[1] = u.links[0]
				u.keys[0] = uMin
				u.links[0] = sib.links[2]
				u.n = 2
				parent.keys[idx-1] = sib.keys[1]
				sib.dropLast()
				return
			}
			sib.links[2] = u.links[0]
			sib.keys[1] = uMin
			sib.n = 3
			parent.removeLink(idx)
		} else {
			// Sibling to the right, filed under the parent's first separator.
			sib := parent.links[1].node
			sibMin := parent.keys[0]
			if sib.n == 3 {
				u.links[1] = sib.links[0]
				u.keys[0] = sibMin
				u.n = 2
				parent.keys[0] = sib.keys[0]
				sib.removeLink(0)
				return
			}
			sib.links[2] = sib.links[1]
			sib.links[1] = sib.links[0]
			sib.links[0] = u.links[0]
			sib.keys[1] = sib.keys[0]
			sib.keys[0] = sibMin
			sib.n = 3
			parent.removeLink(0)
		}
		t.freeNode(u, "merge")
		u = parent
	}
}
