package curve

import (
	"github.com/banshee-data/triplclust/internal/geom"
	"github.com/banshee-data/triplclust/internal/hcluster"
	"github.com/banshee-data/triplclust/internal/triplet"
)

// Options are the resolved parameters of one pipeline run. Length-like
// values (Radius, Scale, DMax) are absolute here; dNN scaling has
// already been applied by the caller.
type Options struct {
	Radius        float64
	K             int
	N             int
	Alpha         float64
	Scale         float64
	Threshold     float64
	AutoThreshold bool
	MinTriplets   int
	DMax          float64
	SplitGaps     bool
	Linkage       hcluster.Linkage
	Gnuplot       bool
}

// Result carries the intermediate and final products of a run.
type Result struct {
	Smoothed  *geom.PointCloud
	Triplets  []triplet.Triplet
	Heights   []float64
	Threshold float64
	Pruned    int
	Clusters  Group
}

// Run executes the full detection pipeline: smoothing, triplet
// generation, triplet clustering with dendrogram cut, pruning,
// propagation to points, optional gap splitting and label attachment.
// The cloud's per-point cluster-id sets are populated in place; with
// Options.Gnuplot set, overlap clusters are additionally extracted for
// the plot rendering.
func Run(cloud *geom.PointCloud, opts Options) *Result {
	res := &Result{}
	res.Smoothed = geom.Smooth(cloud, opts.Radius)
	res.Triplets = triplet.Generate(res.Smoothed, opts.K, opts.N, opts.Alpha)

	group, info := ClusterTriplets(res.Triplets, opts.Scale, opts.Threshold, opts.AutoThreshold, opts.Linkage)
	res.Heights = info.Heights
	res.Threshold = info.Threshold

	res.Pruned = group.Prune(opts.MinTriplets)
	group.TripletsToPoints(res.Triplets)
	if opts.SplitGaps {
		// Gap widths are measured on the original, unsmoothed cloud.
		group = SplitAtGaps(group, cloud, opts.DMax, opts.MinTriplets+2)
	}

	AttachLabels(cloud, group)
	if opts.Gnuplot {
		ExtractOverlaps(cloud, &group)
	}
	res.Clusters = group
	return res
}
