package dbscan

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems; the
// promcollector package provides a Prometheus implementation.
type MetricsCollector interface {
	// RecordNeighborIndex is called after the neighbor index is built.
	// edges counts reachable unordered pairs (self pairs excluded).
	RecordNeighborIndex(points int, edges int64, duration time.Duration)

	// RecordExpansion is called after the expansion phase.
	RecordExpansion(clusters, outliers int, duration time.Duration)

	// RecordReconcile is called after reconciliation, merged or not.
	RecordReconcile(produced, target, merges int, err error)

	// RecordRun is called after each clustering run.
	// err is nil if successful.
	RecordRun(points, clusters int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordNeighborIndex(int, int64, time.Duration) {}
func (NoopMetricsCollector) RecordExpansion(int, int, time.Duration)       {}
func (NoopMetricsCollector) RecordReconcile(int, int, int, error)          {}
func (NoopMetricsCollector) RecordRun(int, int, time.Duration, error)      {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	RunCount         atomic.Int64
	RunErrors        atomic.Int64
	RunTotalNanos    atomic.Int64
	PointsClustered  atomic.Int64
	ClustersProduced atomic.Int64
	OutliersFound    atomic.Int64
	NeighborEdges    atomic.Int64
	IndexTotalNanos  atomic.Int64
	ReconcileCount   atomic.Int64
	MergeCount       atomic.Int64
	ReconcileErrors  atomic.Int64
}

// RecordNeighborIndex implements MetricsCollector.
func (b *BasicMetricsCollector) RecordNeighborIndex(points int, edges int64, duration time.Duration) {
	b.NeighborEdges.Add(edges)
	b.IndexTotalNanos.Add(duration.Nanoseconds())
}

// RecordExpansion implements MetricsCollector.
func (b *BasicMetricsCollector) RecordExpansion(clusters, outliers int, duration time.Duration) {
	b.ClustersProduced.Add(int64(clusters))
	b.OutliersFound.Add(int64(outliers))
}

// RecordReconcile implements MetricsCollector.
func (b *BasicMetricsCollector) RecordReconcile(produced, target, merges int, err error) {
	b.ReconcileCount.Add(1)
	b.MergeCount.Add(int64(merges))
	if err != nil {
		b.ReconcileErrors.Add(1)
	}
}

// RecordRun implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRun(points, clusters int, duration time.Duration, err error) {
	b.RunCount.Add(1)
	b.RunTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.RunErrors.Add(1)
		return
	}
	b.PointsClustered.Add(int64(points))
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		RunCount:         b.RunCount.Load(),
		RunErrors:        b.RunErrors.Load(),
		RunAvgNanos:      b.getAvgRunNanos(),
		PointsClustered:  b.PointsClustered.Load(),
		ClustersProduced: b.ClustersProduced.Load(),
		OutliersFound:    b.OutliersFound.Load(),
		NeighborEdges:    b.NeighborEdges.Load(),
		ReconcileCount:   b.ReconcileCount.Load(),
		MergeCount:       b.MergeCount.Load(),
		ReconcileErrors:  b.ReconcileErrors.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgRunNanos() int64 {
	count := b.RunCount.Load()
	if count == 0 {
		return 0
	}
	return b.RunTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	RunCount         int64
	RunErrors        int64
	RunAvgNanos      int64
	PointsClustered  int64
	ClustersProduced int64
	OutliersFound    int64
	NeighborEdges    int64
	ReconcileCount   int64
	MergeCount       int64
	ReconcileErrors  int64
}
