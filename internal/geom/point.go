package geom

import (
	"github.com/golang/geo/r3"
)

// Point is a single cloud point: its position, its 1-based input
// ordinal, and the identifiers of the curve clusters it was assigned
// to. An empty ClusterIDs slice marks the point as noise.
type Point struct {
	Vec        r3.Vector
	Index      int
	ClusterIDs []int // ascending, unique
}

// AddClusterID inserts id into the point's cluster-id set, keeping the
// slice sorted and free of duplicates.
func (p *Point) AddClusterID(id int) {
	for i, v := range p.ClusterIDs {
		if v == id {
			return
		}
		if v > id {
			p.ClusterIDs = append(p.ClusterIDs, 0)
			copy(p.ClusterIDs[i+1:], p.ClusterIDs[i:])
			p.ClusterIDs[i] = id
			return
		}
	}
	p.ClusterIDs = append(p.ClusterIDs, id)
}

// SameClusters reports whether both points carry exactly the same
// cluster-id set.
func (p *Point) SameClusters(q *Point) bool {
	if len(p.ClusterIDs) != len(q.ClusterIDs) {
		return false
	}
	for i, v := range p.ClusterIDs {
		if q.ClusterIDs[i] != v {
			return false
		}
	}
	return true
}

// PointCloud is an ordered sequence of points. Is2D records that the
// input had two columns (z is stored as 0 and still indexed in 3D).
// Ordered records that the input is sampled along the curve, which
// restricts triplet generation to monotone index triples.
type PointCloud struct {
	Points  []Point
	Is2D    bool
	Ordered bool
}

// Len returns the number of points in the cloud.
func (c *PointCloud) Len() int { return len(c.Points) }

// Vectors returns the point positions in cloud order.
func (c *PointCloud) Vectors() []r3.Vector {
	vecs := make([]r3.Vector, len(c.Points))
	for i, p := range c.Points {
		vecs[i] = p.Vec
	}
	return vecs
}

// Bounds returns the axis-aligned bounding box of the cloud. It must
// not be called on an empty cloud.
func (c *PointCloud) Bounds() (min, max r3.Vector) {
	min = c.Points[0].Vec
	max = min
	for _, p := range c.Points[1:] {
		if p.Vec.X < min.X {
			min.X = p.Vec.X
		} else if p.Vec.X > max.X {
			max.X = p.Vec.X
		}
		if p.Vec.Y < min.Y {
			min.Y = p.Vec.Y
		} else if p.Vec.Y > max.Y {
			max.Y = p.Vec.Y
		}
		if p.Vec.Z < min.Z {
			min.Z = p.Vec.Z
		} else if p.Vec.Z > max.Z {
			max.Z = p.Vec.Z
		}
	}
	return min, max
}
