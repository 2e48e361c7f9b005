// Package triplet builds oriented point triplets from a smoothed cloud
// and defines the scaled dissimilarity used to cluster them. A triplet
// is three approximately collinear points (a, b, c) with b as the
// midpoint, summarised by its centroid, the unit direction of the b→c
// leg, and a collinearity error.
package triplet

import (
	"sort"

	"github.com/golang/geo/r3"

	"github.com/banshee-data/triplclust/internal/geom"
	"github.com/banshee-data/triplclust/internal/spatial"
)

// Triplet references three points of the cloud it was generated from.
// Error is 1 − unit(b−a)·unit(c−b) and lies in [0, 2]; zero means the
// three points are exactly collinear with consistent orientation.
type Triplet struct {
	A, B, C   int
	Center    r3.Vector
	Direction r3.Vector
	Error     float64
}

// Generate builds triplets around every point of the cloud, treating it
// as the midpoint b. The k nearest neighbours of b supply the candidate
// outer points; neighbour pairs are taken in list order, entries at
// distance zero from b (b itself and coincident points) are skipped,
// and for ordered clouds only monotone input-index triples survive.
// Candidates with error ≤ maxError are sorted by ascending error
// (stable, so equal errors keep construction order) and the best n per
// midpoint are emitted.
func Generate(cloud *geom.PointCloud, k, n int, maxError float64) []Triplet {
	if cloud.Len() == 0 || n <= 0 {
		return nil
	}
	ix := spatial.NewIndex(cloud.Vectors())

	var triplets []Triplet
	for b := range cloud.Points {
		pb := &cloud.Points[b]
		neighbours := ix.KNearest(pb.Vec, k)

		var candidates []Triplet
		for ia := 0; ia < len(neighbours); ia++ {
			if neighbours[ia].Dist2 == 0 {
				continue
			}
			pa := &cloud.Points[neighbours[ia].Index]
			if cloud.Ordered && pa.Index > pb.Index {
				continue
			}
			dirAB := pb.Vec.Sub(pa.Vec).Normalize()

			for ic := ia + 1; ic < len(neighbours); ic++ {
				if neighbours[ic].Dist2 == 0 {
					continue
				}
				pc := &cloud.Points[neighbours[ic].Index]
				if cloud.Ordered && pb.Index > pc.Index {
					continue
				}
				dirBC := pc.Vec.Sub(pb.Vec).Normalize()

				tripletError := 1.0 - dirAB.Dot(dirBC)
				if tripletError > maxError {
					continue
				}
				candidates = append(candidates, Triplet{
					A:         neighbours[ia].Index,
					B:         b,
					C:         neighbours[ic].Index,
					Center:    pa.Vec.Add(pb.Vec).Add(pc.Vec).Mul(1.0 / 3.0),
					Direction: pc.Vec.Sub(pb.Vec).Normalize(),
					Error:     tripletError,
				})
			}
		}

		sort.SliceStable(candidates, func(i, j int) bool {
			return candidates[i].Error < candidates[j].Error
		})
		if len(candidates) > n {
			candidates = candidates[:n]
		}
		triplets = append(triplets, candidates...)
	}
	return triplets
}
