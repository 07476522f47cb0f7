package dbscan

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/hupe1980/dbscan/distance"
	"github.com/hupe1980/dbscan/internal/expand"
	"github.com/hupe1980/dbscan/util"
)

// Traversal selects how a cluster is grown from its root.
// Both traversals produce the same partition.
type Traversal = expand.Traversal

const (
	// TraversalDFS grows clusters depth-first with an explicit stack (default).
	TraversalDFS = expand.TraversalDFS
	// TraversalBFS grows clusters breadth-first with a FIFO queue.
	TraversalBFS = expand.TraversalBFS
)

// ParseTraversal maps "dfs" or "bfs" to a Traversal.
func ParseTraversal(s string) (Traversal, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "dfs":
		return TraversalDFS, nil
	case "bfs":
		return TraversalBFS, nil
	default:
		return 0, &ErrInvalidConfig{Field: "traversal", Value: s, Reason: "must be dfs or bfs"}
	}
}

type options struct {
	seed             int64
	traversal        Traversal
	metric           distance.Metric
	metricsCollector MetricsCollector
	logger           *Logger
}

// Option configures the Engine.
type Option func(*options)

// WithRandomSeed sets the seed of the visiting-order permutation.
// The same seed and input always produce the same result.
// Defaults to util.DefaultSeed.
func WithRandomSeed(seed int64) Option {
	return func(o *options) {
		o.seed = seed
	}
}

// WithTraversal selects depth-first (default) or breadth-first expansion.
func WithTraversal(t Traversal) Option {
	return func(o *options) {
		o.traversal = t
	}
}

// WithMetric selects the distance used for reachability and centroid
// comparison. Defaults to distance.MetricL2 (Euclidean).
func WithMetric(m distance.Metric) Option {
	return func(o *options) {
		o.metric = m
	}
}

// WithMetricsCollector configures a metrics collector for monitoring runs.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &dbscan.BasicMetricsCollector{}
//	eng, _ := dbscan.New(cfg, dbscan.WithMetricsCollector(metrics))
//	// ... run ...
//	stats := metrics.GetStats()
//	fmt.Printf("Runs: %d, Avg latency: %dns\n", stats.RunCount, stats.RunAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for runs.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := dbscan.NewJSONLogger(slog.LevelInfo)
//	eng, _ := dbscan.New(cfg, dbscan.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

func applyOptions(optFns []Option) (options, error) {
	o := options{
		seed:             util.DefaultSeed,
		traversal:        TraversalDFS,
		metric:           distance.MetricL2,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}

	if o.traversal != TraversalDFS && o.traversal != TraversalBFS {
		return o, &ErrInvalidConfig{Field: "traversal", Value: o.traversal, Reason: "unknown traversal"}
	}
	if _, err := distance.Provider(o.metric); err != nil {
		return o, &ErrInvalidConfig{Field: "metric", Value: o.metric, Reason: "unknown metric", cause: err}
	}
	return o, nil
}

func (o options) String() string {
	return fmt.Sprintf("seed=%d traversal=%s metric=%s", o.seed, o.traversal, o.metric)
}
