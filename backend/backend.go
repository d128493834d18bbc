// Package backend binds the concrete dictionaries to the dict capability
// and selects one by name.
package backend

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/cbehopkins/regiontree/allocator/pool"
	"github.com/cbehopkins/regiontree/btreedict"
	"github.com/cbehopkins/regiontree/dict"
	"github.com/cbehopkins/regiontree/treap"
	"github.com/cbehopkins/regiontree/tree23"
)

const (
	NameTree23 = "tree23"
	NameTreap  = "treap"
	NameBTree  = "btree"
)

var ErrUnknownBackend = errors.New("unknown backend")

// Options tunes the backends that support it. The zero value is usable.
type Options struct {
	// Logger receives structural events from tree23. Nil uses slog.Default().
	Logger *slog.Logger
	// MaxNodes bounds the live nodes of a tree23 node pool. Zero is unbounded.
	MaxNodes int
	// Degree is the btree degree. Zero selects btreedict.DefaultDegree.
	Degree int
}

// Names lists the registered backends in sorted order.
func Names() []string {
	names := []string{NameTree23, NameTreap, NameBTree}
	sort.Strings(names)
	return names
}

// Lookup returns the allocate binding for name.
func Lookup[T any](name string, opts Options) (dict.Backend[T], error) {
	switch name {
	case NameTree23:
		return Tree23[T](opts), nil
	case NameTreap:
		return Treap[T](), nil
	case NameBTree:
		var bopts []btreedict.Option
		if opts.Degree != 0 {
			bopts = append(bopts, btreedict.WithDegree(opts.Degree))
		}
		return btreedict.Backend[T](bopts...), nil
	}
	return nil, fmt.Errorf("%w: %q (have %v)", ErrUnknownBackend, name, Names())
}

// Open builds an empty dictionary from the backend called name.
func Open[T any](name string, compare dict.CompareFunc[T], score dict.ScoreFunc[T], opts Options) (dict.Dictionary[T], error) {
	b, err := Lookup[T](name, opts)
	if err != nil {
		return nil, err
	}
	return b(compare, score)
}

// Tree23 binds the 2-3 tree. It ignores score.
func Tree23[T any](opts Options) dict.Backend[T] {
	return func(compare dict.CompareFunc[T], _ dict.ScoreFunc[T]) (dict.Dictionary[T], error) {
		if compare == nil {
			return nil, tree23.ErrNilCompare
		}
		alloc, err := pool.New[tree23.Node[T]](pool.Config{MaxLive: opts.MaxNodes})
		if err != nil {
			return nil, err
		}
		topts := []tree23.Option[T]{tree23.WithAllocator[T](alloc)}
		if opts.Logger != nil {
			topts = append(topts, tree23.WithLogger[T](opts.Logger))
		}
		t, err := tree23.New[T](compare, topts...)
		if err != nil {
			return nil, err
		}
		return t, nil
	}
}

// Treap binds the treap. It ignores score.
func Treap[T any]() dict.Backend[T] {
	return func(compare dict.CompareFunc[T], _ dict.ScoreFunc[T]) (dict.Dictionary[T], error) {
		if compare == nil {
			return nil, treap.ErrNilCompare
		}
		t, err := treap.New[T](compare)
		if err != nil {
			return nil, err
		}
		return t, nil
	}
}
