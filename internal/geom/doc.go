// Package geom holds the point-cloud data model and the cloud-level
// preprocessing stages of the curve detection pipeline: CSV loading,
// neighbourhood smoothing and the characteristic length dNN.
package geom
