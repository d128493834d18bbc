package dict

import (
	"golang.org/x/exp/constraints"
)

// CompareOrdered orders values of any built-in ordered type.
func CompareOrdered[T constraints.Ordered](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// ByScore turns a score into a comparison.
func ByScore[T any](score ScoreFunc[T]) CompareFunc[T] {
	return func(a, b T) int {
		return CompareOrdered(score(a), score(b))
	}
}

// Ordering picks the comparison a backend should use: compare when given,
// otherwise one derived from score.
func Ordering[T any](compare CompareFunc[T], score ScoreFunc[T]) (CompareFunc[T], error) {
	switch {
	case compare != nil:
		return compare, nil
	case score != nil:
		return ByScore(score), nil
	}
	return nil, ErrNoOrdering
}
