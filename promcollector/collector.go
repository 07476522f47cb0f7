// Package promcollector exports clustering metrics to Prometheus.
//
//	reg := prometheus.NewRegistry()
//	mc := promcollector.New(reg)
//	eng, _ := dbscan.New(cfg, dbscan.WithMetricsCollector(mc))
package promcollector

import (
	"time"

	"github.com/hupe1980/dbscan"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "dbscan"

// Collector implements dbscan.MetricsCollector with Prometheus metrics.
type Collector struct {
	opLatency     *prometheus.HistogramVec
	runs          *prometheus.CounterVec
	points        prometheus.Counter
	edges         prometheus.Counter
	avgDegree     prometheus.Gauge
	clusters      prometheus.Histogram
	outliers      prometheus.Counter
	reconciles    *prometheus.CounterVec
	merges        prometheus.Counter
	lastProduced  prometheus.Gauge
	lastSurvivors prometheus.Gauge
}

var _ dbscan.MetricsCollector = (*Collector)(nil)

// New creates a Collector and registers its metrics on reg. A nil reg
// registers on prometheus.DefaultRegisterer.
func New(reg prometheus.Registerer) *Collector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	c := &Collector{
		opLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "phase_latency_seconds",
			Help:      "Latency of clustering phases",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 10),
		}, []string{"phase", "status"}),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Clustering runs by outcome",
		}, []string{"status"}),
		points: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "points_total",
			Help:      "Points clustered by successful runs",
		}),
		edges: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "neighbor_edges_total",
			Help:      "Reachable point pairs found by the neighbor index",
		}),
		avgDegree: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "neighbor_avg_degree",
			Help:      "Average neighborhood size (self included) of the last run",
		}),
		clusters: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "clusters_produced",
			Help:      "Clusters produced by expansion per run",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
		}),
		outliers: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "outliers_total",
			Help:      "Points left as outliers after expansion",
		}),
		reconciles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reconciles_total",
			Help:      "Reconciliation passes by outcome",
		}, []string{"status"}),
		merges: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "merges_total",
			Help:      "Clusters folded into a neighbor during reconciliation",
		}),
		lastProduced: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_clusters_produced",
			Help:      "Clusters produced by the most recent run",
		}),
		lastSurvivors: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_clusters_reported",
			Help:      "Clusters reported by the most recent successful run",
		}),
	}

	reg.MustRegister(
		c.opLatency,
		c.runs,
		c.points,
		c.edges,
		c.avgDegree,
		c.clusters,
		c.outliers,
		c.reconciles,
		c.merges,
		c.lastProduced,
		c.lastSurvivors,
	)
	return c
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

// RecordNeighborIndex implements dbscan.MetricsCollector.
func (c *Collector) RecordNeighborIndex(points int, edges int64, duration time.Duration) {
	c.opLatency.WithLabelValues("neighbor_index", "success").Observe(duration.Seconds())
	c.edges.Add(float64(edges))
	if points > 0 {
		c.avgDegree.Set(float64(int64(points)+2*edges) / float64(points))
	}
}

// RecordExpansion implements dbscan.MetricsCollector.
func (c *Collector) RecordExpansion(clusters, outliers int, duration time.Duration) {
	c.opLatency.WithLabelValues("expansion", "success").Observe(duration.Seconds())
	c.clusters.Observe(float64(clusters))
	c.outliers.Add(float64(outliers))
	c.lastProduced.Set(float64(clusters))
}

// RecordReconcile implements dbscan.MetricsCollector.
func (c *Collector) RecordReconcile(produced, target, merges int, err error) {
	c.reconciles.WithLabelValues(status(err)).Inc()
	c.merges.Add(float64(merges))
}

// RecordRun implements dbscan.MetricsCollector.
func (c *Collector) RecordRun(points, clusters int, duration time.Duration, err error) {
	s := status(err)
	c.opLatency.WithLabelValues("run", s).Observe(duration.Seconds())
	c.runs.WithLabelValues(s).Inc()
	if err == nil {
		c.points.Add(float64(points))
		c.lastSurvivors.Set(float64(clusters))
	}
}
