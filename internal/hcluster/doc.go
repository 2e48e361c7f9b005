// Package hcluster implements hierarchical agglomerative clustering
// over a condensed pairwise dissimilarity array, with single, complete
// and average linkage. Merges are discovered with the nearest-
// neighbour-chain algorithm and reported in dendrogram order, together
// with the height of every merge. The package also provides dendrogram
// cutting and the automatic cut-height selection used by the curve
// detection pipeline.
package hcluster
