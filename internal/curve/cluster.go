package curve

import (
	"sort"

	"github.com/banshee-data/triplclust/internal/geom"
	"github.com/banshee-data/triplclust/internal/triplet"
)

// Cluster is an ordered list of item indices: triplet indices while
// clustering, point indices after propagation.
type Cluster []int

// Group is an ordered list of clusters. A cluster's position in the
// group is its identifier; pruning and gap splitting renumber
// implicitly by position.
type Group []Cluster

// groupFromLabels collects items into count clusters according to
// their labels.
func groupFromLabels(labels []int, count int) Group {
	g := make(Group, count)
	for item, label := range labels {
		g[label] = append(g[label], item)
	}
	return g
}

// Prune removes every cluster with fewer than min items, preserving
// the relative order of the survivors. It returns the number of
// clusters removed.
func (g *Group) Prune(min int) int {
	kept := (*g)[:0]
	for _, cl := range *g {
		if len(cl) >= min {
			kept = append(kept, cl)
		}
	}
	removed := len(*g) - len(kept)
	*g = kept
	return removed
}

// TripletsToPoints replaces each cluster's triplet indices with the
// sorted, deduplicated point indices of the triplet members.
func (g Group) TripletsToPoints(triplets []triplet.Triplet) {
	for i, cl := range g {
		points := make([]int, 0, 3*len(cl))
		for _, ti := range cl {
			tr := triplets[ti]
			points = append(points, tr.A, tr.B, tr.C)
		}
		sort.Ints(points)
		unique := points[:0]
		for _, p := range points {
			if len(unique) == 0 || unique[len(unique)-1] != p {
				unique = append(unique, p)
			}
		}
		g[i] = unique
	}
}

// AttachLabels stores every cluster's positional identifier into the
// cluster-id sets of its member points.
func AttachLabels(cloud *geom.PointCloud, g Group) {
	for id, cl := range g {
		for _, pi := range cl {
			cloud.Points[pi].AddClusterID(id)
		}
	}
}

// ExtractOverlaps groups points that belong to the same set of two or
// more clusters, removes them from their base clusters, and appends
// one extra cluster per distinct id-set. The points keep their base
// ids, so downstream output can still report the full membership. This
// is only used for the gnuplot rendering, which draws every point
// exactly once.
func ExtractOverlaps(cloud *geom.PointCloud, g *Group) {
	var vertices []Cluster
	for i := range cloud.Points {
		p := &cloud.Points[i]
		if len(p.ClusterIDs) < 2 {
			continue
		}
		found := false
		for vi := range vertices {
			if cloud.Points[vertices[vi][0]].SameClusters(p) {
				vertices[vi] = append(vertices[vi], i)
				found = true
				break
			}
		}
		if !found {
			vertices = append(vertices, Cluster{i})
		}
		for _, id := range p.ClusterIDs {
			(*g)[id] = removeItem((*g)[id], i)
		}
	}
	*g = append(*g, vertices...)
}

// removeItem deletes every occurrence of v from cl, preserving order.
func removeItem(cl Cluster, v int) Cluster {
	out := cl[:0]
	for _, x := range cl {
		if x != v {
			out = append(out, x)
		}
	}
	return out
}
