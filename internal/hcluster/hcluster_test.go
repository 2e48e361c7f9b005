package hcluster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fourPointDistances is the condensed distance array for 1-D points at
// 0, 1, 2 and 10: pairs (0,1)=1 (0,2)=2 (0,3)=10 (1,2)=1 (1,3)=9 (2,3)=8.
func fourPointDistances() []float64 {
	return []float64{1, 2, 10, 1, 9, 8}
}

func TestCondensedIndex(t *testing.T) {
	t.Parallel()

	n := 5
	want := 0
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			assert.Equalf(t, want, CondensedIndex(n, i, j), "pair (%d,%d)", i, j)
			want++
		}
	}
	assert.Equal(t, n*(n-1)/2, want)
}

func TestParseLinkage(t *testing.T) {
	t.Parallel()

	for name, want := range map[string]Linkage{
		"single":   Single,
		"complete": Complete,
		"average":  Average,
	} {
		got, err := ParseLinkage(name)
		require.NoError(t, err)
		assert.Equal(t, want, got)
		assert.Equal(t, name, got.String())
	}
	_, err := ParseLinkage("ward")
	assert.Error(t, err)
}

func TestCluster_SingleLinkage(t *testing.T) {
	t.Parallel()

	den := Cluster(4, fourPointDistances(), Single)
	require.Len(t, den.Merge, 3)
	assert.Equal(t, []float64{1, 1, 8}, den.Heights)

	// First merge joins two singletons.
	assert.Negative(t, den.Merge[0][0])
	assert.Negative(t, den.Merge[0][1])
}

func TestCluster_CompleteLinkage(t *testing.T) {
	t.Parallel()

	den := Cluster(4, fourPointDistances(), Complete)
	assert.Equal(t, []float64{1, 2, 10}, den.Heights)
}

func TestCluster_AverageLinkage(t *testing.T) {
	t.Parallel()

	// Weighted average linkage: d({0,1},2) = 1.5, then
	// d({0,1,2},3) = (2·9.5 + 1·8)/3 = 9.
	den := Cluster(4, fourPointDistances(), Average)
	require.Len(t, den.Heights, 3)
	assert.InDelta(t, 1.0, den.Heights[0], 1e-12)
	assert.InDelta(t, 1.5, den.Heights[1], 1e-12)
	assert.InDelta(t, 9.0, den.Heights[2], 1e-12)
}

func TestCluster_HeightsNonDecreasing(t *testing.T) {
	t.Parallel()

	for _, link := range []Linkage{Single, Complete, Average} {
		t.Run(link.String(), func(t *testing.T) {
			t.Parallel()
			den := Cluster(4, fourPointDistances(), link)
			for i := 1; i < len(den.Heights); i++ {
				assert.LessOrEqual(t, den.Heights[i-1], den.Heights[i])
			}
		})
	}
}

func TestCluster_TrivialSizes(t *testing.T) {
	t.Parallel()

	assert.Empty(t, Cluster(0, nil, Single).Merge)
	assert.Empty(t, Cluster(1, nil, Single).Merge)

	den := Cluster(2, []float64{3.5}, Single)
	require.Len(t, den.Merge, 1)
	assert.Equal(t, [2]int{-2, -1}, den.Merge[0])
	assert.Equal(t, []float64{3.5}, den.Heights)
}

func TestCut_PartitionsMatchDistances(t *testing.T) {
	t.Parallel()

	den := Cluster(4, fourPointDistances(), Single)

	labels := den.Cut(2)
	require.Len(t, labels, 4)
	assert.Equal(t, labels[0], labels[1])
	assert.Equal(t, labels[0], labels[2])
	assert.NotEqual(t, labels[0], labels[3])
	// Ids assigned in leaf-scan order.
	assert.Equal(t, 0, labels[0])
	assert.Equal(t, 1, labels[3])
}

func TestCut_Extremes(t *testing.T) {
	t.Parallel()

	den := Cluster(4, fourPointDistances(), Single)

	assert.Equal(t, []int{0, 0, 0, 0}, den.Cut(1))
	assert.Equal(t, []int{0, 1, 2, 3}, den.Cut(4))
	// Out-of-range counts are clamped.
	assert.Equal(t, []int{0, 0, 0, 0}, den.Cut(0))
	assert.Equal(t, []int{0, 1, 2, 3}, den.Cut(99))
}

func TestCluster_MutatesDistanceBuffer(t *testing.T) {
	t.Parallel()

	dist := fourPointDistances()
	orig := append([]float64(nil), dist...)
	Cluster(4, dist, Average)
	assert.NotEqual(t, orig, dist)
}

func TestCluster_TwoWellSeparatedGroups(t *testing.T) {
	t.Parallel()

	// 1-D points 0,1,2 and 100,101,102.
	pts := []float64{0, 1, 2, 100, 101, 102}
	n := len(pts)
	dist := make([]float64, n*(n-1)/2)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d := pts[j] - pts[i]
			if d < 0 {
				d = -d
			}
			dist[CondensedIndex(n, i, j)] = d
		}
	}
	den := Cluster(n, dist, Single)
	labels := den.Cut(2)
	assert.Equal(t, []int{0, 0, 0, 1, 1, 1}, labels)
}
