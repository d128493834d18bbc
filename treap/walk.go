package treap

import (
	"errors"
)

// TreeCallback is invoked during tree traversal.
// It can return an error to halt traversal.
type TreeCallback[T any] func(*TreapNode[T]) error

// inOrderWalk performs an in-order traversal of the subtree at node.
func inOrderWalk[T any](node *TreapNode[T], callback TreeCallback[T]) error {
	if node == nil {
		return nil
	}
	if err := inOrderWalk(node.left, callback); err != nil {
		return err
	}
	if err := callback(node); err != nil {
		return err
	}
	return inOrderWalk(node.right, callback)
}

// reverseOrderWalk performs a reverse in-order traversal.
func reverseOrderWalk[T any](node *TreapNode[T], callback TreeCallback[T]) error {
	if node == nil {
		return nil
	}
	if err := reverseOrderWalk(node.right, callback); err != nil {
		return err
	}
	if err := callback(node); err != nil {
		return err
	}
	return reverseOrderWalk(node.left, callback)
}

// Walk traverses the treap in order and calls the callback function on each node.
func (t *Treap[T]) Walk(callback func(*TreapNode[T])) {
	_ = inOrderWalk(t.root, func(node *TreapNode[T]) error {
		callback(node)
		return nil
	})
}

// WalkReverse traverses the treap in reverse order and calls the callback function on each node.
func (t *Treap[T]) WalkReverse(callback func(*TreapNode[T])) {
	_ = reverseOrderWalk(t.root, func(node *TreapNode[T]) error {
		callback(node)
		return nil
	})
}

// Compare walks this treap and other in order together and invokes callbacks for items that are:
// - Only in this treap (onlyInA)
// - In both treaps (inBoth)
// - Only in the other treap (onlyInB)
//
// All three callbacks are optional (can be nil). The first callback error
// stops the comparison and is returned.
func (t *Treap[T]) Compare(
	other *Treap[T],
	onlyInA func(*TreapNode[T]) error,
	inBoth func(nodeA, nodeB *TreapNode[T]) error,
	onlyInB func(*TreapNode[T]) error,
) error {
	nodeChA, errChA, cancelA := newInOrderStream(t.root)
	nodeChB, errChB, cancelB := newInOrderStream(other.root)
	defer cancelA()
	defer cancelB()

	return mergeOrdered(
		channelNext(nodeChA, errChA),
		channelNext(nodeChB, errChB),
		t.compare, onlyInA, inBoth, onlyInB,
	)
}

var errWalkCanceled = errors.New("walk canceled")

// channelNext adapts a streamed node channel into an iterator-style next function.
func channelNext[T any](nodeCh <-chan *TreapNode[T], errCh <-chan error) func() (*TreapNode[T], bool, error) {
	var done bool
	return func() (*TreapNode[T], bool, error) {
		if done {
			return nil, false, nil
		}
		node, ok := <-nodeCh
		if ok {
			return node, true, nil
		}
		done = true
		return nil, false, <-errCh
	}
}

// mergeOrdered drives a merge-style comparison over two ascending iterators.
func mergeOrdered[T any](
	nextA func() (*TreapNode[T], bool, error),
	nextB func() (*TreapNode[T], bool, error),
	compare func(a, b T) int,
	onlyInA func(*TreapNode[T]) error,
	inBoth func(nodeA, nodeB *TreapNode[T]) error,
	onlyInB func(*TreapNode[T]) error,
) error {
	nodeA, okA, err := nextA()
	if err != nil {
		return err
	}
	nodeB, okB, err := nextB()
	if err != nil {
		return err
	}

	for okA || okB {
		var c int
		switch {
		case !okA:
			c = 1
		case !okB:
			c = -1
		default:
			c = compare(nodeA.item, nodeB.item)
		}

		switch {
		case c == 0:
			if inBoth != nil {
				if err := inBoth(nodeA, nodeB); err != nil {
					return err
				}
			}
			if nodeA, okA, err = nextA(); err != nil {
				return err
			}
			if nodeB, okB, err = nextB(); err != nil {
				return err
			}
		case c < 0:
			if onlyInA != nil {
				if err := onlyInA(nodeA); err != nil {
					return err
				}
			}
			if nodeA, okA, err = nextA(); err != nil {
				return err
			}
		default:
			if onlyInB != nil {
				if err := onlyInB(nodeB); err != nil {
					return err
				}
			}
			if nodeB, okB, err = nextB(); err != nil {
				return err
			}
		}
	}
	return nil
}

// newInOrderStream starts an in-order walk and streams nodes over a channel.
// Cancellation is respected via the returned cancel function.
func newInOrderStream[T any](root *TreapNode[T]) (chan *TreapNode[T], chan error, func()) {
	nodeCh := make(chan *TreapNode[T], 1)
	errCh := make(chan error, 1)
	done := make(chan struct{})

	go func() {
		defer close(nodeCh)
		defer close(errCh)

		err := inOrderWalk(root, func(node *TreapNode[T]) error {
			select {
			case <-done:
				return errWalkCanceled
			case nodeCh <- node:
				return nil
			}
		})
		if err == errWalkCanceled {
			err = nil
		}
		errCh <- err
	}()

	return nodeCh, errCh, func() { close(done) }
}
