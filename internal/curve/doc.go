// Package curve turns triplets into labelled curve clusters. It
// clusters triplets under the scaled triplet dissimilarity, prunes
// small clusters, propagates triplet membership back to points, splits
// clusters at spatial gaps along a minimum spanning tree, and attaches
// the resulting cluster identifiers to the point cloud.
package curve
