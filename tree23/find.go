package tree23

// Find returns the item with the greatest key not exceeding key. It fails
// only when every item is greater than key, or the tree is empty.
//
// The descent is the one Insert makes; at the leaf the nearest item to the
// left of the search position is taken without demanding equality.
func (t *Tree[T]) Find(key T) (T, bool) {
	var zero T
	t.mustBeLive("find")

	nd := t.root
	for nd.kind == branchKind {
		nd = nd.links[nd.route(key, t.compare)].node
	}
	i, _ := nd.floor(key, t.compare)
	if i < 0 {
		return zero, false
	}
	return nd.links[i].item, true
}

// Contains reports whether an item comparing equal to key is present.
func (t *Tree[T]) Contains(key T) bool {
	item, ok := t.Find(key)
	return ok && t.compare(item, key) == 0
}
