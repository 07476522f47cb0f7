package dbscan

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with dbscan-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithSeed adds the visiting-order seed to the logger.
func (l *Logger) WithSeed(seed int64) *Logger {
	return &Logger{
		Logger: l.Logger.With("seed", seed),
	}
}

// WithCount adds a count field to the logger.
func (l *Logger) WithCount(count int) *Logger {
	return &Logger{
		Logger: l.Logger.With("count", count),
	}
}

// WithInput adds the input name to the logger.
func (l *Logger) WithInput(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("input", name),
	}
}

// LogStart logs the start of a run with its effective options.
func (l *Logger) LogStart(ctx context.Context, points int, cfg Config, options string) {
	l.DebugContext(ctx, "clustering started",
		"points", points,
		"eps", cfg.Eps,
		"min_points", cfg.MinPoints,
		"target_cluster_count", cfg.TargetClusterCount,
		"options", options,
	)
}

// LogNeighborIndex logs a finished neighbor index build.
func (l *Logger) LogNeighborIndex(ctx context.Context, points int, edges int64, avgDegree float64, elapsed time.Duration) {
	l.DebugContext(ctx, "neighbor index built",
		"points", points,
		"edges", edges,
		"avg_degree", avgDegree,
		"elapsed", elapsed,
	)
}

// LogCluster logs a single cluster expansion.
func (l *Logger) LogCluster(ctx context.Context, cluster int, root uint32, absorbed int) {
	l.DebugContext(ctx, "cluster expanded",
		"cluster", cluster,
		"root", root,
		"absorbed", absorbed,
	)
}

// LogExpansion logs the end of the expansion phase.
func (l *Logger) LogExpansion(ctx context.Context, clusters, reclassified, reassigned int, elapsed time.Duration) {
	l.DebugContext(ctx, "expansion completed",
		"clusters", clusters,
		"reclassified", reclassified,
		"reassigned", reassigned,
		"elapsed", elapsed,
	)
}

// LogMerge logs one cluster folded into another.
func (l *Logger) LogMerge(ctx context.Context, from, to, size int, dist float64) {
	l.DebugContext(ctx, "cluster merged",
		"from", from,
		"to", to,
		"size", size,
		"distance", dist,
	)
}

// LogReconcile logs the reconciliation phase.
func (l *Logger) LogReconcile(ctx context.Context, produced, target, merges int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "reconcile failed",
			"produced", produced,
			"target", target,
			"error", err,
		)
	} else if merges > 0 {
		l.InfoContext(ctx, "clusters reconciled",
			"produced", produced,
			"target", target,
			"merges", merges,
		)
	}
}

// LogRun logs a complete clustering run.
func (l *Logger) LogRun(ctx context.Context, points, clusters, outliers int, elapsed time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "clustering failed",
			"points", points,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "clustering completed",
			"points", points,
			"clusters", clusters,
			"outliers", outliers,
			"elapsed", elapsed,
		)
	}
}

// LogArtifact logs one written output artifact.
func (l *Logger) LogArtifact(ctx context.Context, name string, size int64) {
	l.DebugContext(ctx, "artifact written",
		"name", name,
		"bytes", size,
	)
}
