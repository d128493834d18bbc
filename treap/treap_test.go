package treap

import (
	"errors"
	"fmt"
	"math/rand"
	"slices"
	"testing"
)

func intCompare(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func newIntTreap(t *testing.T) *Treap[int] {
	t.Helper()
	tr, err := New(intCompare)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return tr
}

func collect(tr *Treap[int]) []int {
	var out []int
	tr.Walk(func(n *TreapNode[int]) {
		out = append(out, n.Item())
	})
	return out
}

func verifyHeapProperty[T any](node *TreapNode[T]) error {
	if node == nil {
		return nil
	}
	for _, child := range []*TreapNode[T]{node.left, node.right} {
		if child == nil {
			continue
		}
		if node.priority < child.priority {
			return fmt.Errorf("heap property violated: parent %d < child %d", node.priority, child.priority)
		}
		if err := verifyHeapProperty(child); err != nil {
			return err
		}
	}
	return nil
}

type prioritised struct {
	key int
	pri Priority
}

func (p prioritised) Priority() Priority { return p.pri }

func TestTreapNilCompare(t *testing.T) {
	if _, err := New[int](nil); !errors.Is(err, ErrNilCompare) {
		t.Fatalf("expected ErrNilCompare, got %v", err)
	}
}

func TestTreapInsertSingle(t *testing.T) {
	tr := newIntTreap(t)
	if _, found := tr.Insert(42); found {
		t.Fatal("first insert reported a duplicate")
	}
	if node := tr.Search(42); node == nil || node.Item() != 42 {
		t.Fatal("expected to find inserted item")
	}
	if tr.Len() != 1 {
		t.Fatalf("expected 1 item, got %d", tr.Len())
	}
}

func TestTreapInsertDuplicateNoDup(t *testing.T) {
	tr := newIntTreap(t)
	tr.Insert(7)
	existing, found := tr.Insert(7)
	if !found || existing != 7 {
		t.Fatalf("expected duplicate to report existing 7, got %d %v", existing, found)
	}
	if tr.Len() != 1 {
		t.Fatalf("expected 1 item after duplicate insert, got %d", tr.Len())
	}
}

func TestTreapDeleteNonExistent(t *testing.T) {
	tr := newIntTreap(t)
	for i := 0; i < 5; i++ {
		tr.Insert(i * 10)
	}
	if _, ok := tr.Delete(15); ok {
		t.Fatal("delete of an absent key must fail even when a floor exists")
	}
	if tr.Len() != 5 {
		t.Fatalf("expected count unchanged, got %d", tr.Len())
	}
}

func TestTreapFloorFind(t *testing.T) {
	tr := newIntTreap(t)
	for _, k := range []int{10, 20, 30} {
		tr.Insert(k)
	}
	cases := []struct {
		key  int
		want int
		ok   bool
	}{
		{5, 0, false},
		{10, 10, true},
		{15, 10, true},
		{29, 20, true},
		{30, 30, true},
		{1000, 30, true},
	}
	for _, c := range cases {
		got, ok := tr.Find(c.key)
		if ok != c.ok || got != c.want {
			t.Errorf("Find(%d) = %d, %v; want %d, %v", c.key, got, ok, c.want, c.ok)
		}
	}
}

func TestTreapDeleteMinDrains(t *testing.T) {
	tr := newIntTreap(t)
	keys := rand.New(rand.NewSource(3)).Perm(300)
	for _, k := range keys {
		tr.Insert(k)
	}
	for want := 0; want < 300; want++ {
		if m, ok := tr.FindMin(); !ok || m != want {
			t.Fatalf("FindMin = %d, %v; want %d", m, ok, want)
		}
		got, ok := tr.DeleteMin()
		if !ok || got != want {
			t.Fatalf("DeleteMin = %d, %v; want %d", got, ok, want)
		}
		if err := verifyHeapProperty(tr.root); err != nil {
			t.Fatal(err)
		}
	}
	if _, ok := tr.DeleteMin(); ok {
		t.Fatal("DeleteMin on empty treap succeeded")
	}
	if _, ok := tr.FindMin(); ok {
		t.Fatal("FindMin on empty treap succeeded")
	}
}

// TestTreapInOrderIsSorted verifies that in-order traversal yields sorted
// items after inserting in random order, and that deletes keep both the
// search-tree and heap orderings.
func TestTreapInOrderIsSorted(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	tr := newIntTreap(t)
	keys := rng.Perm(1000)
	for _, k := range keys {
		tr.Insert(k)
	}
	got := collect(tr)
	if !slices.IsSorted(got) || len(got) != 1000 {
		t.Fatalf("walk not sorted or wrong size: %d items", len(got))
	}
	if err := verifyHeapProperty(tr.root); err != nil {
		t.Fatal(err)
	}

	for _, k := range keys[:500] {
		if got, ok := tr.Delete(k); !ok || got != k {
			t.Fatalf("Delete(%d) = %d, %v", k, got, ok)
		}
	}
	got = collect(tr)
	want := slices.Clone(keys[500:])
	slices.Sort(want)
	if !slices.Equal(got, want) {
		t.Fatal("remaining items differ after deletes")
	}
	if err := verifyHeapProperty(tr.root); err != nil {
		t.Fatal(err)
	}
}

func TestTreapWalkReverse(t *testing.T) {
	tr := newIntTreap(t)
	for _, k := range []int{3, 1, 2} {
		tr.Insert(k)
	}
	var got []int
	tr.WalkReverse(func(n *TreapNode[int]) { got = append(got, n.Item()) })
	if !slices.Equal(got, []int{3, 2, 1}) {
		t.Fatalf("reverse walk = %v", got)
	}
}

func TestTreapPriorityProvider(t *testing.T) {
	tr, err := New(func(a, b prioritised) int { return intCompare(a.key, b.key) })
	if err != nil {
		t.Fatal(err)
	}
	tr.Insert(prioritised{key: 1, pri: 5})
	tr.Insert(prioritised{key: 2, pri: 50})
	tr.Insert(prioritised{key: 3, pri: 10})
	if tr.root.Item().key != 2 {
		t.Fatalf("highest priority item should be the root, got %d", tr.root.Item().key)
	}

	if !tr.UpdatePriority(prioritised{key: 1}, 100) {
		t.Fatal("UpdatePriority missed an existing item")
	}
	if tr.root.Item().key != 1 || tr.root.Priority() != 100 {
		t.Fatalf("updated item should be the root, got %d", tr.root.Item().key)
	}
	if tr.UpdatePriority(prioritised{key: 9}, 1) {
		t.Fatal("UpdatePriority found an absent item")
	}
	if tr.Len() != 3 {
		t.Fatalf("expected 3 items, got %d", tr.Len())
	}
}

func TestTreapRelease(t *testing.T) {
	tr := newIntTreap(t)
	tr.Insert(1)
	tr.Insert(2)
	tr.Release()
	if tr.Len() != 0 || tr.root != nil {
		t.Fatal("release should empty the treap")
	}
	tr.Insert(3)
	if m, _ := tr.FindMin(); m != 3 {
		t.Fatal("treap unusable after release")
	}
}

func TestTreapCompareBasic(t *testing.T) {
	treapA := newIntTreap(t)
	treapB := newIntTreap(t)
	for i := 1; i <= 5; i++ {
		treapA.Insert(i)
	}
	for i := 3; i <= 7; i++ {
		treapB.Insert(i)
	}

	var onlyInA, inBoth, onlyInB []int
	err := treapA.Compare(treapB,
		func(n *TreapNode[int]) error {
			onlyInA = append(onlyInA, n.Item())
			return nil
		},
		func(a, b *TreapNode[int]) error {
			inBoth = append(inBoth, a.Item())
			return nil
		},
		func(n *TreapNode[int]) error {
			onlyInB = append(onlyInB, n.Item())
			return nil
		},
	)
	if err != nil {
		t.Fatalf("Compare failed: %v", err)
	}
	if !slices.Equal(onlyInA, []int{1, 2}) {
		t.Errorf("onlyInA = %v", onlyInA)
	}
	if !slices.Equal(inBoth, []int{3, 4, 5}) {
		t.Errorf("inBoth = %v", inBoth)
	}
	if !slices.Equal(onlyInB, []int{6, 7}) {
		t.Errorf("onlyInB = %v", onlyInB)
	}
}

func TestTreapCompareStopsOnError(t *testing.T) {
	treapA := newIntTreap(t)
	treapB := newIntTreap(t)
	for i := 0; i < 100; i++ {
		treapA.Insert(i)
	}
	stop := errors.New("stop")
	seen := 0
	err := treapA.Compare(treapB, func(*TreapNode[int]) error {
		seen++
		if seen == 3 {
			return stop
		}
		return nil
	}, nil, nil)
	if !errors.Is(err, stop) {
		t.Fatalf("expected callback error, got %v", err)
	}
	if seen != 3 {
		t.Fatalf("expected 3 callbacks, got %d", seen)
	}
}
