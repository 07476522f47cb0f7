package dbscan

import (
	"errors"
	"fmt"

	"github.com/hupe1980/dbscan/core"
	"github.com/hupe1980/dbscan/internal/expand"
	"github.com/hupe1980/dbscan/internal/neighbor"
	"github.com/hupe1980/dbscan/internal/reconcile"
)

var (
	// ErrConfig matches every configuration error (see ErrInvalidConfig).
	ErrConfig = errors.New("invalid configuration")

	// ErrMergeTargetNotFound matches ErrNoMergeTarget.
	ErrMergeTargetNotFound = errors.New("no merge target")
)

// ErrInvalidConfig indicates an invalid eps, min_points or
// target_cluster_count (or an unusable option value).
//
// It matches ErrConfig with errors.Is. The original underlying error (if any)
// can be accessed via errors.Unwrap.
type ErrInvalidConfig struct {
	Field  string
	Value  any
	Reason string
	cause  error
}

func (e *ErrInvalidConfig) Error() string {
	return fmt.Sprintf("invalid config: %s=%v: %s", e.Field, e.Value, e.Reason)
}

func (e *ErrInvalidConfig) Unwrap() error { return e.cause }

// Is reports whether target is ErrConfig.
func (e *ErrInvalidConfig) Is(target error) bool { return target == ErrConfig }

// ErrNoMergeTarget indicates that reconciliation found no surviving cluster
// at a non-zero centroid distance from an eliminated cluster.
//
// It matches ErrMergeTargetNotFound with errors.Is.
type ErrNoMergeTarget struct {
	Cluster  core.ClusterID
	Produced int
	Target   int
	cause    error
}

func (e *ErrNoMergeTarget) Error() string {
	return fmt.Sprintf("no merge target for cluster %d (produced %d, target %d)", e.Cluster, e.Produced, e.Target)
}

func (e *ErrNoMergeTarget) Unwrap() error { return e.cause }

// Is reports whether target is ErrMergeTargetNotFound.
func (e *ErrNoMergeTarget) Is(target error) bool { return target == ErrMergeTargetNotFound }

func translateError(err error, cfg Config, produced int) error {
	if err == nil {
		return nil
	}

	var nmt *reconcile.ErrNoMergeTarget
	if errors.As(err, &nmt) {
		return &ErrNoMergeTarget{Cluster: nmt.Cluster, Produced: produced, Target: cfg.TargetClusterCount, cause: err}
	}
	if errors.Is(err, neighbor.ErrInvalidRadius) {
		return &ErrInvalidConfig{Field: "eps", Value: cfg.Eps, Reason: "must be a finite positive number", cause: err}
	}
	if errors.Is(err, reconcile.ErrInvalidTarget) {
		return &ErrInvalidConfig{Field: "target_cluster_count", Value: cfg.TargetClusterCount, Reason: "must be positive", cause: err}
	}
	if errors.Is(err, expand.ErrInvalidOrder) {
		return fmt.Errorf("dbscan: internal error: %w", err)
	}

	return err
}
