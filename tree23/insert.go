package tree23

// descend walks from the root to the leaf whose range holds key, recording
// every branch passed and the child taken in t.path.
func (t *Tree[T]) descend(key T) *Node[T] {
	t.path = t.path[:0]
	nd := t.root
	for nd.kind == branchKind {
		dir := nd.route(key, t.compare)
		t.path = append(t.path, step[T]{node: nd, dir: dir})
		nd = nd.links[dir].node
	}
	return nd
}

// Insert adds item to the tree. Keys are unique: if an item comparing equal
// is already present it is returned with true and the tree is unchanged.
func (t *Tree[T]) Insert(item T) (T, bool) {
	var zero T
	t.mustBeLive("insert")

	leaf := t.descend(item)
	i, c := leaf.floor(item, t.compare)
	if i >= 0 && c == 0 {
		return leaf.links[i].item, true
	}

	if !t.hasMin || t.compare(item, t.min) < 0 {
		t.min, t.hasMin = item, true
	}
	t.count++

	// A split hands a new right sibling and its minimum to the level above,
	// where it is placed just right of the child the search came through.
	sibling, upMin, split := t.weave(leaf, i+1, link[T]{item: item}, item)
	for level := len(t.path) - 1; split; level-- {
		if level < 0 {
			t.growRoot(sibling, upMin)
			break
		}
		st := t.path[level]
		sibling, upMin, split = t.weave(st.node, st.dir+1, link[T]{node: sibling}, upMin)
	}
	return zero, false
}

// weave places l, whose smallest item is min, at position pos of nd. A node
// that would end up with four children keeps the lower two and gives the
// upper two to a new sibling, which is returned with its minimum.
func (t *Tree[T]) weave(nd *Node[T], pos int, l link[T], min T) (*Node[T], T, bool) {
	var w wide[T]
	w.load(nd)
	w.insert(pos, l, min)
	if w.n <= 3 {
		w.store(nd, 0, w.n)
		var zero T
		return nil, zero, false
	}

	sibling := t.newNode(nd.kind, "split")
	w.store(nd, 0, 2)
	w.store(sibling, 2, 4)
	return sibling, w.mins[2], true
}

// growRoot puts a new root above the old one when the old root split.
func (t *Tree[T]) growRoot(sibling *Node[T], min T) {
	root := t.newNode(branchKind, "grow")
	root.links[0].node = t.root
	root.links[1].node = sibling
	root.keys[0] = min
	root.n = 2
	t.root = root
	t.logger.Debug("tree grew", "height", len(t.path)+2, "items", t.count)
}
