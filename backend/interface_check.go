package backend

import (
	"github.com/cbehopkins/regiontree/btreedict"
	"github.com/cbehopkins/regiontree/dict"
	"github.com/cbehopkins/regiontree/treap"
	"github.com/cbehopkins/regiontree/tree23"
)

// This file contains compile-time interface compliance checks.
// If any backend doesn't implement the dictionary capability,
// compilation will fail with a clear error message.

var _ dict.Dictionary[int] = (*tree23.Tree[int])(nil)

var _ dict.Dictionary[int] = (*treap.Treap[int])(nil)

var _ dict.Dictionary[int] = (*btreedict.Dict[int])(nil)

var _ dict.Dictionary[int] = (*dict.Instrumented[int])(nil)
