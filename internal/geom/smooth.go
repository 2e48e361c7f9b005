package geom

import (
	"github.com/golang/geo/r3"

	"github.com/banshee-data/triplclust/internal/spatial"
)

// Smooth replaces every point with the centroid of all points within
// Euclidean radius r of it, the point itself included. The result has
// the same length, order, flags and per-point Index as the input; a
// radius of zero returns an unsmoothed copy. Because the point itself
// is always inside its own range, the neighbourhood is never empty.
func Smooth(cloud *PointCloud, r float64) *PointCloud {
	result := &PointCloud{
		Points:  make([]Point, len(cloud.Points)),
		Is2D:    cloud.Is2D,
		Ordered: cloud.Ordered,
	}
	if r == 0 {
		for i, p := range cloud.Points {
			result.Points[i] = Point{Vec: p.Vec, Index: p.Index}
		}
		return result
	}

	ix := spatial.NewIndex(cloud.Vectors())
	for i, p := range cloud.Points {
		neighbours := ix.Range(p.Vec, r)
		var sum r3.Vector
		for _, nb := range neighbours {
			sum = sum.Add(cloud.Points[nb.Index].Vec)
		}
		result.Points[i] = Point{
			Vec:   sum.Mul(1 / float64(len(neighbours))),
			Index: p.Index,
		}
	}
	return result
}
