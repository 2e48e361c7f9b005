package hcluster

import (
	"gonum.org/v1/gonum/stat"
)

// Cut splits the dendrogram into count clusters and labels every leaf
// with a cluster id in [0, count). Ids are assigned in order of first
// appearance over the leaf scan, so the labelling is deterministic for
// a given merge sequence. count is clamped to [1, N].
func (d Dendrogram) Cut(count int) []int {
	n := d.N
	if n == 0 {
		return nil
	}
	labels := make([]int, n)
	if count < 1 {
		count = 1
	}
	if count > n {
		count = n
	}

	parent := make([]int, n)
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(x int) int {
		for parent[x] != x {
			parent[x] = parent[parent[x]]
			x = parent[x]
		}
		return x
	}

	// Undoing the last count−1 merges leaves exactly count subtrees.
	stepRoot := make([]int, len(d.Merge))
	resolve := func(e int) int {
		if e < 0 {
			return -e - 1
		}
		return stepRoot[e-1]
	}
	for t := 0; t < n-count; t++ {
		ra := find(resolve(d.Merge[t][0]))
		rb := find(resolve(d.Merge[t][1]))
		parent[ra] = rb
		stepRoot[t] = rb
	}

	id := make([]int, n)
	for i := range id {
		id[i] = -1
	}
	next := 0
	for i := 0; i < n; i++ {
		r := find(i)
		if id[r] == -1 {
			id[r] = next
			next++
		}
		labels[i] = id[r]
	}
	return labels
}

// cutHeightEps guards the automatic cut against an all-zero tail of
// merge heights (for example many co-located triplets).
const cutHeightEps = 1e-8

// AutoCut selects the cluster count at which the merge-height sequence
// makes its first unexpectedly large jump: the smallest step k in the
// upper half of the dendrogram whose height exceeds its predecessor by
// more than twice the sample standard deviation of all heights up to
// and including k. It returns the resulting cluster count and the
// implied distance threshold. heights must be the Heights of a
// dendrogram over at least two items.
func AutoCut(heights []float64) (count int, threshold float64) {
	m := len(heights) + 1
	k := (m - 1) / 2
	for ; k < m-1; k++ {
		prev := 0.0
		if k > 0 {
			prev = heights[k-1]
		}
		if (prev > 0 || heights[k] > cutHeightEps) &&
			heights[k] > prev+2*sampleSD(heights[:k+1]) {
			break
		}
	}
	if k < m-1 {
		prev := 0.0
		if k > 0 {
			prev = heights[k-1]
		}
		threshold = (prev + heights[k]) / 2
	} else if k > 0 {
		threshold = heights[k-1]
	}
	return m - k, threshold
}

// CutCountAt returns the cluster count produced by cutting the
// dendrogram at the fixed height t: merges below t are kept.
func CutCountAt(heights []float64, t float64) int {
	m := len(heights) + 1
	k := 0
	for ; k < m-1; k++ {
		if heights[k] >= t {
			break
		}
	}
	return m - k
}

// sampleSD is the unbiased sample standard deviation; fewer than two
// samples yield zero.
func sampleSD(x []float64) float64 {
	if len(x) < 2 {
		return 0
	}
	return stat.StdDev(x, nil)
}
