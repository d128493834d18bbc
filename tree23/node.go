package tree23

// kind tells what a node's links point at.
type kind uint8

const (
	// leafKind nodes hold items directly.
	leafKind kind = iota
	// branchKind nodes hold child nodes.
	branchKind
)

func (k kind) String() string {
	if k == leafKind {
		return "leaf"
	}
	return "branch"
}

// link is one child slot: a child node in a branch, an item in a leaf.
type link[T any] struct {
	node *Node[T]
	item T
}

// Node is one branch point of a 2-3 tree.
//
// A node has 2 or 3 children, except the root of a tree holding 0 or 1
// items, which is a leaf with at most links[0] populated. keys[0] is the
// smallest item under links[1] and keys[1] the smallest item under links[2].
// For a leaf that makes keys[i-1] the item in links[i].
//
// Node is exported so that callers can supply allocators for it; its
// contents are private to the tree.
type Node[T any] struct {
	keys  [2]T
	links [3]link[T]
	n     int
	kind  kind
}

// route picks the child whose range holds key: the rightmost child whose
// minimum does not exceed key, or the left child.
func (nd *Node[T]) route(key T, compare func(a, b T) int) int {
	if nd.n == 3 && compare(key, nd.keys[1]) >= 0 {
		return 2
	}
	if nd.n >= 2 && compare(key, nd.keys[0]) >= 0 {
		return 1
	}
	return 0
}

// floor returns the index of the greatest item not exceeding key along with
// the comparison result against it, or -1 if every item is greater.
// Only meaningful on a leaf.
func (nd *Node[T]) floor(key T, compare func(a, b T) int) (int, int) {
	for i := nd.n - 1; i >= 0; i-- {
		if c := compare(key, nd.links[i].item); c >= 0 {
			return i, c
		}
	}
	return -1, -1
}

// removeLink drops the child at i, closing the gap. The key describing the
// new first child is dropped along with it.
func (nd *Node[T]) removeLink(i int) {
	var zero T
	k := i - 1
	if k < 0 {
		k = 0
	}
	copy(nd.links[i:nd.n], nd.links[i+1:nd.n])
	nd.links[nd.n-1] = link[T]{}
	if nd.n >= 2 {
		copy(nd.keys[k:nd.n-1], nd.keys[k+1:nd.n-1])
		nd.keys[nd.n-2] = zero
	}
	nd.n--
}

// dropLast removes the rightmost child of a 3-child node.
func (nd *Node[T]) dropLast() {
	var zero T
	nd.links[2] = link[T]{}
	nd.keys[1] = zero
	nd.n = 2
}

// wide is a node with room for the fourth child an insert can produce.
// mins[i] is the smallest item under links[i]; mins[0] is only known for
// leaves and is never needed for branches.
type wide[T any] struct {
	links [4]link[T]
	mins  [4]T
	n     int
}

func (w *wide[T]) load(nd *Node[T]) {
	w.n = nd.n
	copy(w.links[:], nd.links[:nd.n])
	if nd.kind == leafKind && nd.n > 0 {
		w.mins[0] = nd.links[0].item
	}
	for i := 1; i < nd.n; i++ {
		w.mins[i] = nd.keys[i-1]
	}
}

func (w *wide[T]) insert(pos int, l link[T], min T) {
	copy(w.links[pos+1:w.n+1], w.links[pos:w.n])
	copy(w.mins[pos+1:w.n+1], w.mins[pos:w.n])
	w.links[pos] = l
	w.mins[pos] = min
	w.n++
}

// store writes links[from:to] into nd, replacing its contents.
func (w *wide[T]) store(nd *Node[T], from, to int) {
	*nd = Node[T]{kind: nd.kind, n: to - from}
	for i := 0; i < nd.n; i++ {
		nd.links[i] = w.links[from+i]
		if i > 0 {
			nd.keys[i-1] = w.mins[from+i]
		}
	}
}
