// Package dbscan provides density-based clustering of 2-D points.
//
// The engine classifies every point as core, border or outlier, grows
// clusters from cores and then merges the smallest clusters into their
// nearest neighbor (by centroid) until a requested count remains.
//
// # Quick Start
//
//	res, err := dbscan.Run(ctx, dbscan.Config{
//		Eps:                15,
//		MinPoints:          22,
//		TargetClusterCount: 8,
//	}, records)
//
// Neighbor counts include the point itself, so MinPoints: 1 makes every
// point a core.
//
// # Reproducibility
//
// Points are visited in a seeded random order. The same records, Config
// and seed always produce the same Result:
//
//	eng, _ := dbscan.New(cfg,
//		dbscan.WithRandomSeed(42),
//		dbscan.WithTraversal(dbscan.TraversalBFS),
//		dbscan.WithMetric(distance.MetricManhattan),
//	)
//	res, _ := eng.Cluster(ctx, records)
//
// # Reconciliation
//
// When more clusters are produced than TargetClusterCount, the smallest
// cluster (first by id on ties) is absorbed into the cluster with the nearest
// centroid. Clusters whose centroid coincides exactly are never merged into
// each other; if no other candidate exists the run fails with
// ErrNoMergeTarget. Surviving clusters are renumbered 0..n-1 and keep their
// pre-merge id in Cluster.SourceID.
//
// # Observability
//
// Logging goes through log/slog (WithLogger, WithLogLevel). Metrics are
// reported to a MetricsCollector; BasicMetricsCollector keeps in-process
// counters and the promcollector package exports them to Prometheus.
//
// # Configuration Files
//
//	fc, _ := dbscan.LoadConfig("dbscan.yaml")
//	opts, _ := fc.Options()
//	eng, _ := dbscan.New(fc.Config, opts...)
//
// # Errors
//
// Parameter problems match ErrConfig, a failed reconciliation matches
// ErrMergeTargetNotFound:
//
//	if errors.Is(err, dbscan.ErrConfig) { ... }
//
// Reading point files and writing result artifacts lives in the pointio
// package; blobstore provides local, in-memory, S3 and MinIO storage.
package dbscan
