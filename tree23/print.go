package tree23

import (
	"fmt"
	"io"
	"strings"

	"github.com/xlab/treeprint"
)

// Print writes an indented picture of the tree to w, one line per node.
// format renders an item; nil uses %v.
func (t *Tree[T]) Print(w io.Writer, format func(T) string) error {
	_, err := io.WriteString(w, t.render(format))
	return err
}

// String renders the tree with %v formatting.
func (t *Tree[T]) String() string {
	return t.render(nil)
}

func (t *Tree[T]) render(format func(T) string) string {
	if format == nil {
		format = func(item T) string { return fmt.Sprintf("%v", item) }
	}
	if t.root == nil {
		return "<destroyed>\n"
	}

	root := treeprint.NewWithRoot(fmt.Sprintf("2-3 tree: %d items, height %d", t.count, t.Height()))
	type frame struct {
		nd     *Node[T]
		branch treeprint.Tree
	}
	stack := []frame{{nd: t.root, branch: root}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if f.nd.kind == leafKind {
			parts := make([]string, f.nd.n)
			for i := 0; i < f.nd.n; i++ {
				parts[i] = format(f.nd.links[i].item)
			}
			f.branch.AddNode("leaf [" + strings.Join(parts, " ") + "]")
			continue
		}

		keys := make([]string, 0, 2)
		for i := 1; i < f.nd.n; i++ {
			keys = append(keys, format(f.nd.keys[i-1]))
		}
		b := f.branch.AddBranch("branch |" + strings.Join(keys, "|") + "|")
		// Push right to left so children print in order.
		for i := f.nd.n - 1; i >= 0; i-- {
			stack = append(stack, frame{nd: f.nd.links[i].node, branch: b})
		}
	}
	return root.String()
}
