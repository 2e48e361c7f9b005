package curve

import (
	"github.com/banshee-data/triplclust/internal/hcluster"
	"github.com/banshee-data/triplclust/internal/triplet"
)

// CutInfo reports how the dendrogram was split.
type CutInfo struct {
	Count     int
	Threshold float64
	Heights   []float64
}

// ClusterTriplets clusters the triplets under the scaled dissimilarity
// and splits the dendrogram either automatically (at the first
// unexpectedly large merge-height jump) or at the fixed threshold t.
// The condensed distance buffer is allocated here and released with
// the clustering; with M triplets it holds M·(M−1)/2 values.
func ClusterTriplets(triplets []triplet.Triplet, scale, t float64, auto bool, link hcluster.Linkage) (Group, CutInfo) {
	m := len(triplets)
	if m == 0 {
		return nil, CutInfo{}
	}

	metric := triplet.NewMetric(scale)
	dist := make([]float64, m*(m-1)/2)
	k := 0
	for i := 0; i < m; i++ {
		for j := i + 1; j < m; j++ {
			dist[k] = metric.Distance(triplets[i], triplets[j])
			k++
		}
	}

	den := hcluster.Cluster(m, dist, link)

	info := CutInfo{Heights: den.Heights}
	if auto {
		info.Count, info.Threshold = hcluster.AutoCut(den.Heights)
	} else {
		info.Count = hcluster.CutCountAt(den.Heights, t)
		info.Threshold = t
	}
	labels := den.Cut(info.Count)
	return groupFromLabels(labels, info.Count), info
}
