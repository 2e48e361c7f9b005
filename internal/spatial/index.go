// Package spatial provides a static k-d tree over 3D points supporting
// k-nearest and radius queries. Queries return squared Euclidean
// distances together with the payload index of each matched point, so
// callers can recover the original position of a point in its cloud.
package spatial

import (
	"sort"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/spatial/kdtree"
)

// Neighbor is a single query result: the payload index of a matched
// point and its squared Euclidean distance to the query location.
type Neighbor struct {
	Index int
	Dist2 float64
}

// node is one indexed point together with its payload index.
type node struct {
	vec r3.Vector
	id  int
}

func (n node) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	q := c.(node)
	switch d {
	case 0:
		return n.vec.X - q.vec.X
	case 1:
		return n.vec.Y - q.vec.Y
	default:
		return n.vec.Z - q.vec.Z
	}
}

func (n node) Dims() int { return 3 }

func (n node) Distance(c kdtree.Comparable) float64 {
	q := c.(node)
	return n.vec.Sub(q.vec).Norm2()
}

// nodes implements kdtree.Interface for bulk construction.
type nodes []node

func (p nodes) Index(i int) kdtree.Comparable         { return p[i] }
func (p nodes) Len() int                              { return len(p) }
func (p nodes) Pivot(d kdtree.Dim) int                { return plane{Dim: d, nodes: p}.Pivot() }
func (p nodes) Slice(start, end int) kdtree.Interface { return p[start:end] }

// plane is a sort helper for a single splitting dimension.
type plane struct {
	kdtree.Dim
	nodes
}

func (p plane) Less(i, j int) bool {
	switch p.Dim {
	case 0:
		return p.nodes[i].vec.X < p.nodes[j].vec.X
	case 1:
		return p.nodes[i].vec.Y < p.nodes[j].vec.Y
	default:
		return p.nodes[i].vec.Z < p.nodes[j].vec.Z
	}
}

func (p plane) Pivot() int { return kdtree.Partition(p, kdtree.MedianOfMedians(p)) }

func (p plane) Slice(start, end int) kdtree.SortSlicer {
	p.nodes = p.nodes[start:end]
	return p
}

func (p plane) Swap(i, j int) {
	p.nodes[i], p.nodes[j] = p.nodes[j], p.nodes[i]
}

// Index is a static k-d tree over a fixed set of points. It is built
// once and never mutated afterwards, so it is safe for concurrent
// queries.
type Index struct {
	tree *kdtree.Tree
	size int
}

// NewIndex builds an index over vecs. The payload index of vecs[i] is i.
// 2D clouds are indexed with z = 0; the extra dimension is harmless.
func NewIndex(vecs []r3.Vector) *Index {
	if len(vecs) == 0 {
		return &Index{}
	}
	ns := make(nodes, len(vecs))
	for i, v := range vecs {
		ns[i] = node{vec: v, id: i}
	}
	return &Index{tree: kdtree.New(ns, false), size: len(ns)}
}

// Len returns the number of indexed points.
func (ix *Index) Len() int { return ix.size }

// KNearest returns the k indexed points nearest to q, ordered by
// ascending squared distance with ties broken by payload index. If q is
// itself an indexed point it appears in the result at distance zero.
// k larger than the index size is clamped; an empty index returns nil.
func (ix *Index) KNearest(q r3.Vector, k int) []Neighbor {
	if ix.size == 0 || k <= 0 {
		return nil
	}
	if k > ix.size {
		k = ix.size
	}
	keep := kdtree.NewNKeeper(k)
	ix.tree.NearestSet(keep, node{vec: q, id: -1})
	return collect(keep.Heap)
}

// Range returns all indexed points within Euclidean distance r of q,
// ordered by ascending squared distance with ties broken by payload
// index.
func (ix *Index) Range(q r3.Vector, r float64) []Neighbor {
	if ix.size == 0 || r < 0 {
		return nil
	}
	keep := kdtree.NewDistKeeper(r * r)
	ix.tree.NearestSet(keep, node{vec: q, id: -1})
	return collect(keep.Heap)
}

// collect extracts results from a keeper heap, dropping the keeper's
// sentinel entry, and sorts them into the deterministic result order.
func collect(heap []kdtree.ComparableDist) []Neighbor {
	out := make([]Neighbor, 0, len(heap))
	for _, cd := range heap {
		if cd.Comparable == nil {
			continue
		}
		out = append(out, Neighbor{Index: cd.Comparable.(node).id, Dist2: cd.Dist})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Dist2 != out[j].Dist2 {
			return out[i].Dist2 < out[j].Dist2
		}
		return out[i].Index < out[j].Index
	})
	return out
}
