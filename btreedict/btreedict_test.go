package btreedict

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cbehopkins/regiontree/dict"
)

func TestNewNeedsOrdering(t *testing.T) {
	_, err := New[int](nil, nil)
	assert.ErrorIs(t, err, ErrNoOrdering)

	_, err = New[int](dict.CompareOrdered[int], nil, WithDegree(1))
	assert.ErrorIs(t, err, ErrBadDegree)
}

func TestFloorAndExact(t *testing.T) {
	d, err := New[int](dict.CompareOrdered[int], nil, WithDegree(2))
	require.NoError(t, err)
	for _, k := range []int{10, 20, 30} {
		_, found := d.Insert(k)
		require.False(t, found)
	}

	_, ok := d.Find(5)
	assert.False(t, ok)
	v, ok := d.Find(25)
	assert.True(t, ok)
	assert.Equal(t, 20, v)

	_, ok = d.Delete(25)
	assert.False(t, ok)
	v, ok = d.Delete(20)
	assert.True(t, ok)
	assert.Equal(t, 20, v)
	assert.Equal(t, 2, d.Len())
}

type job struct {
	name     string
	priority uint
}

func TestScoreOrdering(t *testing.T) {
	score := func(j *job) uint { return j.priority }
	d, err := New[*job](nil, score)
	require.NoError(t, err)

	low := &job{"low", 1}
	high := &job{"high", 9}
	d.Insert(high)
	d.Insert(low)

	existing, found := d.Insert(&job{"clash", 9})
	assert.True(t, found, "equal scores are the same key")
	assert.Same(t, high, existing)

	m, ok := d.FindMin()
	require.True(t, ok)
	assert.Same(t, low, m)

	f, ok := d.Find(&job{priority: 5})
	require.True(t, ok)
	assert.Same(t, low, f)
}

func TestInsertDoesNotReplace(t *testing.T) {
	type kv struct{ k, v int }
	d, err := New[kv](func(a, b kv) int { return dict.CompareOrdered(a.k, b.k) }, nil)
	require.NoError(t, err)
	d.Insert(kv{1, 100})
	existing, found := d.Insert(kv{1, 200})
	assert.True(t, found)
	assert.Equal(t, 100, existing.v)
	got, _ := d.Find(kv{k: 1})
	assert.Equal(t, 100, got.v)
}

func TestReleaseAndReuse(t *testing.T) {
	d, err := New[int](dict.CompareOrdered[int], nil, WithFreeList(8))
	require.NoError(t, err)
	for _, k := range rand.New(rand.NewSource(1)).Perm(500) {
		d.Insert(k)
	}
	var prev = -1
	d.Ascend(func(item int) bool {
		assert.Greater(t, item, prev)
		prev = item
		return true
	})
	assert.Equal(t, 499, prev)

	d.Release()
	assert.Equal(t, 0, d.Len())
	_, ok := d.DeleteMin()
	assert.False(t, ok)

	d.Insert(4)
	m, ok := d.FindMin()
	assert.True(t, ok)
	assert.Equal(t, 4, m)
}

func TestBackendBinding(t *testing.T) {
	b := Backend[int](WithDegree(3))
	d, err := b(dict.CompareOrdered[int], nil)
	require.NoError(t, err)
	d.Insert(2)
	assert.Equal(t, 1, d.Len())

	_, err = b(nil, nil)
	assert.ErrorIs(t, err, ErrNoOrdering)
}
