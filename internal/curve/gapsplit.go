package curve

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"

	"github.com/banshee-data/triplclust/internal/geom"
)

// SplitAtGaps splits every cluster of point indices at spatial gaps
// wider than dmax and returns the concatenated results. For each
// cluster, a minimum spanning tree of the complete graph over its
// points (squared Euclidean weights, measured on the original cloud)
// is computed; MST edges longer than dmax are deleted and the
// remaining connected components become new clusters. Components
// smaller than minSize are dropped, unless no edge was deleted at all:
// a cluster without gaps is kept whole regardless of its size, so
// clusters that already passed the prune are not lost here.
func SplitAtGaps(g Group, cloud *geom.PointCloud, dmax float64, minSize int) Group {
	var out Group
	for _, cl := range g {
		out = append(out, splitCluster(cl, cloud, dmax, minSize)...)
	}
	return out
}

func splitCluster(cl Cluster, cloud *geom.PointCloud, dmax float64, minSize int) []Cluster {
	n := len(cl)
	if n == 0 {
		return nil
	}

	full := simple.NewWeightedUndirectedGraph(0, math.Inf(1))
	for v := 0; v < n; v++ {
		full.AddNode(simple.Node(v))
	}
	for i := 0; i < n; i++ {
		pi := cloud.Points[cl[i]].Vec
		for j := i + 1; j < n; j++ {
			w := pi.Sub(cloud.Points[cl[j]].Vec).Norm2()
			full.SetWeightedEdge(simple.WeightedEdge{
				F: simple.Node(i),
				T: simple.Node(j),
				W: w,
			})
		}
	}

	mst := simple.NewWeightedUndirectedGraph(0, math.Inf(1))
	path.Kruskal(mst, full)

	// Drop MST edges spanning a gap. Squared weights compare against
	// the squared threshold, preserving the ordering.
	adj := make([][]int, n)
	removed := 0
	dmax2 := dmax * dmax
	edges := mst.WeightedEdges()
	for edges.Next() {
		e := edges.WeightedEdge()
		if e.Weight() > dmax2 {
			removed++
			continue
		}
		f, t := int(e.From().ID()), int(e.To().ID())
		adj[f] = append(adj[f], t)
		adj[t] = append(adj[t], f)
	}
	for v := range adj {
		sort.Ints(adj[v])
	}

	// Connected components by iterative depth-first traversal.
	visited := make([]bool, n)
	var clusters []Cluster
	for start := 0; start < n; start++ {
		if visited[start] {
			continue
		}
		var component Cluster
		stack := []int{start}
		for len(stack) > 0 {
			v := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if visited[v] {
				continue
			}
			visited[v] = true
			component = append(component, cl[v])
			for _, w := range adj[v] {
				if !visited[w] {
					stack = append(stack, w)
				}
			}
		}
		if len(component) >= minSize || removed == 0 {
			clusters = append(clusters, component)
		}
	}
	return clusters
}
