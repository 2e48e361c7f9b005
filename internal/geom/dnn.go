package geom

import (
	"math"
	"sort"

	"github.com/banshee-data/triplclust/internal/spatial"
)

// nearestNonSelfSquared returns, for every point, the squared distance
// to its single nearest neighbour other than itself. A point with no
// other neighbour, or with a coincident duplicate, contributes zero.
func nearestNonSelfSquared(cloud *PointCloud) []float64 {
	ix := spatial.NewIndex(cloud.Vectors())
	msd := make([]float64, 0, cloud.Len())
	for _, p := range cloud.Points {
		neighbours := ix.KNearest(p.Vec, 2)
		// The first entry is the point itself at distance zero.
		if len(neighbours) < 2 {
			msd = append(msd, 0)
			continue
		}
		msd = append(msd, neighbours[1].Dist2)
	}
	return msd
}

// DNN computes the characteristic length of the cloud: the square root
// of the first quartile of the per-point nearest-neighbour squared
// distances. The quartile is the element at position ⌊N/4⌋ of the
// ascending order. A zero result indicates coincident duplicate points
// and should be treated as a fatal configuration problem by callers
// that scale parameters with dNN.
func DNN(cloud *PointCloud) float64 {
	if cloud.Len() == 0 {
		return 0
	}
	msd := nearestNonSelfSquared(cloud)
	sort.Float64s(msd)
	return math.Sqrt(msd[len(msd)/4])
}
