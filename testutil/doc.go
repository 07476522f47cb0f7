// Package testutil provides testing utilities for dbscan.
//
// This package is intended for use in tests and benchmarks only.
// It provides seeded generators for synthetic point sets and helpers for
// summarizing clustering output.
//
// # Random Point Generation
//
//	rng := testutil.NewRNG(seed)
//	recs := rng.Blobs([]testutil.Center{{X: 0, Y: 0}, {X: 10, Y: 10}}, 50, 0.5)
//	noise := rng.UniformRecords(20, -5, 15)
//
// # Result Summaries
//
//	sizes := testutil.ClusterSizes(result.Points)
//	outliers := testutil.CountClass(result.Points, core.Outlier)
package testutil
