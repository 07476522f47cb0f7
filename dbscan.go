package dbscan

import (
	"context"
	"fmt"
	"time"

	"github.com/hupe1980/dbscan/core"
	"github.com/hupe1980/dbscan/distance"
	"github.com/hupe1980/dbscan/internal/expand"
	"github.com/hupe1980/dbscan/internal/neighbor"
	"github.com/hupe1980/dbscan/internal/pointstore"
	"github.com/hupe1980/dbscan/internal/reconcile"
	"github.com/hupe1980/dbscan/util"
)

// maxPoints is the number of distinct core.PointID values.
const maxPoints = uint64(core.MaxPointID) + 1

// checkPointCount rejects inputs whose arena indices would not fit a PointID.
func checkPointCount(n int) error {
	if uint64(n) > maxPoints {
		return &ErrInvalidConfig{Field: "records", Value: n, Reason: fmt.Sprintf("at most %d points per run", maxPoints)}
	}
	return nil
}

// Engine runs density-based clustering with a fixed configuration.
//
// An Engine holds no state between runs and is safe for concurrent use;
// every call to Cluster works on its own point store.
type Engine struct {
	cfg  Config
	opts options
	dist distance.Func
}

// New validates cfg and creates an Engine.
func New(cfg Config, optFns ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	opts, err := applyOptions(optFns)
	if err != nil {
		return nil, err
	}

	dist, err := distance.Provider(opts.metric)
	if err != nil {
		return nil, &ErrInvalidConfig{Field: "metric", Value: opts.metric, Reason: "unknown metric", cause: err}
	}

	return &Engine{
		cfg:  cfg,
		opts: opts,
		dist: dist,
	}, nil
}

// Config returns the engine's configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// Seed returns the visiting-order seed.
func (e *Engine) Seed() int64 {
	return e.opts.seed
}

// Cluster classifies and clusters the records.
//
// The pipeline builds the neighbor index, expands clusters from core points
// in a seeded visiting order and, if more than TargetClusterCount clusters
// were produced, merges the smallest ones into their nearest neighbor.
// Zero records yield an empty result. The context is checked between
// neighbor-index rows and between expansion roots.
func (e *Engine) Cluster(ctx context.Context, records []core.Record) (*Result, error) {
	start := time.Now()
	log := e.opts.logger.WithSeed(e.opts.seed)
	log.LogStart(ctx, len(records), e.cfg, e.opts.String())

	res, err := e.run(ctx, log, records)

	elapsed := time.Since(start)
	clusters, outliers := 0, 0
	if res != nil {
		clusters = len(res.Clusters)
		outliers = len(res.Outliers())
	}
	e.opts.metricsCollector.RecordRun(len(records), clusters, elapsed, err)
	log.LogRun(ctx, len(records), clusters, outliers, elapsed, err)

	if err != nil {
		return nil, err
	}
	return res, nil
}

func (e *Engine) run(ctx context.Context, log *Logger, records []core.Record) (*Result, error) {
	if err := checkPointCount(len(records)); err != nil {
		return nil, err
	}
	res := &Result{Config: e.cfg, Seed: e.opts.seed}

	store := pointstore.New(records)
	if store.Len() == 0 {
		res.Points = []core.Point{}
		res.Clusters = []Cluster{}
		return res, nil
	}

	phase := time.Now()
	nstats, err := neighbor.Build(ctx, store, e.cfg.Eps, e.dist)
	if err != nil {
		return nil, translateError(err, e.cfg, 0)
	}
	res.Stats.Pairs = nstats.Pairs
	res.Stats.Edges = nstats.Edges
	e.opts.metricsCollector.RecordNeighborIndex(nstats.Points, nstats.Edges, time.Since(phase))
	log.LogNeighborIndex(ctx, nstats.Points, nstats.Edges, nstats.AvgDegree(), time.Since(phase))

	phase = time.Now()
	order := util.NewRNG(e.opts.seed).VisitOrder(store.Len())
	ex := expand.New(store, e.cfg.MinPoints, func(o *expand.Options) {
		o.Traversal = e.opts.traversal
		o.OnCluster = func(ev expand.ClusterEvent) {
			log.LogCluster(ctx, int(ev.Cluster), uint32(ev.Root), ev.Absorbed)
		}
	})
	estats, err := ex.Run(ctx, order)
	if err != nil {
		return nil, translateError(err, e.cfg, estats.Clusters)
	}
	res.Produced = estats.Clusters
	res.Stats.Reclassified = estats.Reclassified
	res.Stats.Reassigned = estats.Reassigned

	outliers := 0
	for i := 0; i < store.Len(); i++ {
		if store.Class(core.PointID(i)) == core.Outlier {
			outliers++
		}
	}
	e.opts.metricsCollector.RecordExpansion(estats.Clusters, outliers, time.Since(phase))
	log.LogExpansion(ctx, estats.Clusters, estats.Reclassified, estats.Reassigned, time.Since(phase))

	plan, err := reconcile.Reconcile(store, estats.Clusters, e.cfg.TargetClusterCount, e.dist)
	merges := 0
	if plan != nil {
		merges = len(plan.Merges)
	}
	e.opts.metricsCollector.RecordReconcile(estats.Clusters, e.cfg.TargetClusterCount, merges, err)
	log.LogReconcile(ctx, estats.Clusters, e.cfg.TargetClusterCount, merges, err)
	if err != nil {
		return nil, translateError(err, e.cfg, estats.Clusters)
	}

	for _, m := range plan.Merges {
		log.LogMerge(ctx, int(m.From), int(m.To), m.Size, m.Distance)
		res.Merges = append(res.Merges, Merge{From: m.From, To: m.To, Distance: m.Distance, Size: m.Size})
	}
	res.Points, res.Clusters = project(store, plan)

	return res, nil
}

// Run is a convenience wrapper: it creates an Engine and runs it once.
func Run(ctx context.Context, cfg Config, records []core.Record, optFns ...Option) (*Result, error) {
	eng, err := New(cfg, optFns...)
	if err != nil {
		return nil, err
	}
	return eng.Cluster(ctx, records)
}
