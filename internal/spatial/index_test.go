package spatial

import (
	"testing"

	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func line(n int) []r3.Vector {
	vecs := make([]r3.Vector, n)
	for i := range vecs {
		vecs[i] = r3.Vector{X: float64(i)}
	}
	return vecs
}

func TestKNearest_IncludesSelf(t *testing.T) {
	t.Parallel()

	ix := NewIndex(line(10))
	got := ix.KNearest(r3.Vector{X: 4}, 3)

	require.Len(t, got, 3)
	assert.Equal(t, 4, got[0].Index)
	assert.Equal(t, 0.0, got[0].Dist2)
	// Neighbours at distance 1 on both sides; tie broken by index.
	assert.Equal(t, 3, got[1].Index)
	assert.Equal(t, 5, got[2].Index)
	assert.Equal(t, 1.0, got[1].Dist2)
	assert.Equal(t, 1.0, got[2].Dist2)
}

func TestKNearest_SortedBySquaredDistance(t *testing.T) {
	t.Parallel()

	ix := NewIndex(line(20))
	got := ix.KNearest(r3.Vector{X: 0}, 5)

	require.Len(t, got, 5)
	for i := 1; i < len(got); i++ {
		assert.LessOrEqual(t, got[i-1].Dist2, got[i].Dist2)
	}
	assert.Equal(t, []Neighbor{
		{Index: 0, Dist2: 0},
		{Index: 1, Dist2: 1},
		{Index: 2, Dist2: 4},
		{Index: 3, Dist2: 9},
		{Index: 4, Dist2: 16},
	}, got)
}

func TestKNearest_ClampsK(t *testing.T) {
	t.Parallel()

	ix := NewIndex(line(3))
	got := ix.KNearest(r3.Vector{X: 1}, 100)
	assert.Len(t, got, 3)
}

func TestKNearest_EmptyIndex(t *testing.T) {
	t.Parallel()

	ix := NewIndex(nil)
	assert.Nil(t, ix.KNearest(r3.Vector{}, 5))
	assert.Equal(t, 0, ix.Len())
}

func TestRange_RadiusInclusive(t *testing.T) {
	t.Parallel()

	ix := NewIndex(line(10))
	got := ix.Range(r3.Vector{X: 5}, 2)

	require.Len(t, got, 5)
	indices := make([]int, len(got))
	for i, nb := range got {
		indices[i] = nb.Index
	}
	// Self first, then distance ties in index order.
	assert.Equal(t, []int{5, 4, 6, 3, 7}, indices)
}

func TestRange_NoMatchesOutsideRadius(t *testing.T) {
	t.Parallel()

	ix := NewIndex([]r3.Vector{{X: 0}, {X: 100}})
	got := ix.Range(r3.Vector{X: 0}, 1)
	require.Len(t, got, 1)
	assert.Equal(t, 0, got[0].Index)
}

func TestRange_EmptyIndex(t *testing.T) {
	t.Parallel()

	ix := NewIndex(nil)
	assert.Nil(t, ix.Range(r3.Vector{}, 10))
}

func TestKNearest_3D(t *testing.T) {
	t.Parallel()

	vecs := []r3.Vector{
		{X: 0, Y: 0, Z: 0},
		{X: 1, Y: 1, Z: 1},
		{X: 2, Y: 2, Z: 2},
		{X: -1, Y: 0, Z: 0},
	}
	ix := NewIndex(vecs)
	got := ix.KNearest(r3.Vector{X: 0, Y: 0, Z: 0}, 2)

	require.Len(t, got, 2)
	assert.Equal(t, 0, got[0].Index)
	assert.Equal(t, 3, got[1].Index)
	assert.Equal(t, 1.0, got[1].Dist2)
}
