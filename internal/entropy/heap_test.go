package entropy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/tilewave/distribution"
	"github.com/hupe1980/tilewave/testutil"
)

func TestHeap_Build(t *testing.T) {
	h := New(4)
	h.Reset(6)

	for i, s := range []distribution.Entropy{50, 10, Collapsed, 30, 10, 70} {
		h.Set(i, s)
	}
	h.Build()

	require.Equal(t, 5, h.Len())
	assert.True(t, h.IsCollapsed(2))

	var order []int
	for {
		cell, ok := h.CollapseLeast()
		if !ok {
			break
		}
		order = append(order, cell)
		assert.True(t, h.IsCollapsed(cell))
	}

	// Ties resolve to the lower cell index.
	assert.Equal(t, []int{1, 4, 3, 0, 5}, order)
	assert.Equal(t, 0, h.Len())
}

func TestHeap_Update(t *testing.T) {
	h := New(8)
	h.Reset(4)
	for i := range 4 {
		h.Set(i, distribution.Entropy(100+i))
	}
	h.Build()

	h.Update(3, 1)
	cell, ok := h.Peek()
	require.True(t, ok)
	assert.Equal(t, 3, cell)

	h.Update(3, 500)
	cell, _ = h.Peek()
	assert.Equal(t, 0, cell)

	h.MarkCollapsed(0)
	assert.Equal(t, 3, h.Len())
	cell, _ = h.Peek()
	assert.Equal(t, 1, cell)

	// Updates to collapsed cells are ignored.
	h.Update(0, -5)
	assert.True(t, h.IsCollapsed(0))
	assert.Equal(t, 3, h.Len())
}

func TestHeap_Reset(t *testing.T) {
	h := New(2)
	h.Reset(2)
	h.Build()
	_, _ = h.CollapseLeast()

	h.Reset(10)
	assert.Equal(t, 10, h.Cells())
	assert.Equal(t, 0, h.Len())
	for i := range 10 {
		assert.False(t, h.IsCollapsed(i))
	}
	h.Build()
	assert.Equal(t, 10, h.Len())
}

func TestHeap_InvariantUnderRandomOps(t *testing.T) {
	rng := testutil.NewRNG(17)
	const n = 200

	h := New(n)
	h.Reset(n)
	for i := range n {
		h.Set(i, distribution.Entropy(rng.Intn(1000)))
	}
	h.Build()

	popped := 0
	for h.Len() > 0 {
		for range 5 {
			h.Update(rng.Intn(n), distribution.Entropy(rng.Intn(1000)))
		}

		want := Collapsed
		for i := range n {
			if !h.IsCollapsed(i) && h.Score(i) < want {
				want = h.Score(i)
			}
		}

		root, ok := h.Peek()
		require.True(t, ok)
		require.Equal(t, want, h.Score(root))

		cell, ok := h.CollapseLeast()
		require.True(t, ok)
		require.Equal(t, root, cell)
		require.True(t, h.IsCollapsed(cell))
		popped++
	}

	assert.Equal(t, n, popped)
}
