package expand

import (
	"context"
	"testing"

	"github.com/hupe1980/dbscan/core"
	"github.com/hupe1980/dbscan/distance"
	"github.com/hupe1980/dbscan/internal/neighbor"
	"github.com/hupe1980/dbscan/internal/pointstore"
	"github.com/hupe1980/dbscan/testutil"
	"github.com/hupe1980/dbscan/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func build(t *testing.T, recs []core.Record, eps float64) *pointstore.Store {
	t.Helper()
	s := pointstore.New(recs)
	_, err := neighbor.Build(context.Background(), s, eps, distance.Euclidean)
	require.NoError(t, err)
	return s
}

func identity(n int) []core.PointID {
	order := make([]core.PointID, n)
	for i := range order {
		order[i] = core.PointID(i)
	}
	return order
}

func square() []core.Record {
	return []core.Record{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 0}, {X: 1, Y: 1}}
}

// bridge is two dense triples that share a single non-core point (index 3).
func bridge() []core.Record {
	return []core.Record{
		{ID: 0, X: 0, Y: 0}, {ID: 1, X: 0, Y: 0.5}, {ID: 2, X: -0.5, Y: 0},
		{ID: 3, X: 1, Y: 0},
		{ID: 4, X: 2, Y: 0}, {ID: 5, X: 2, Y: 0.5}, {ID: 6, X: 2.5, Y: 0},
	}
}

func TestIsCore(t *testing.T) {
	s := build(t, square(), 1.5)

	// Four neighbors each, self included.
	assert.True(t, IsCore(s, 4, 0))
	assert.False(t, IsCore(s, 5, 0))
	assert.True(t, IsCore(s, 1, 3))
}

func TestRun_Scenarios(t *testing.T) {
	ctx := context.Background()

	t.Run("AllCore", func(t *testing.T) {
		s := build(t, square(), 1.5)
		stats, err := New(s, 4).Run(ctx, util.NewRNG(util.DefaultSeed).VisitOrder(4))
		require.NoError(t, err)

		assert.Equal(t, 1, stats.Clusters)
		for i := 0; i < 4; i++ {
			assert.Equal(t, core.Core, s.Class(core.PointID(i)))
			assert.Equal(t, core.ClusterID(0), s.Cluster(core.PointID(i)))
		}
	})

	t.Run("AllOutlier", func(t *testing.T) {
		s := build(t, square(), 1.5)
		stats, err := New(s, 5).Run(ctx, identity(4))
		require.NoError(t, err)

		assert.Equal(t, 0, stats.Clusters)
		assert.Equal(t, 4, stats.Roots)
		for i := 0; i < 4; i++ {
			assert.Equal(t, core.Outlier, s.Class(core.PointID(i)))
			assert.Equal(t, core.NoCluster, s.Cluster(core.PointID(i)))
		}
	})

	t.Run("IsolatedPointAndPair", func(t *testing.T) {
		recs := []core.Record{{X: 10, Y: 10}, {X: 0, Y: 0}, {X: 0, Y: 1}}
		s := build(t, recs, 1.0)
		stats, err := New(s, 2).Run(ctx, identity(3))
		require.NoError(t, err)

		assert.Equal(t, 1, stats.Clusters)
		assert.Equal(t, core.Outlier, s.Class(0))
		assert.Equal(t, core.NoCluster, s.Cluster(0))
		assert.Equal(t, core.Core, s.Class(1))
		assert.Equal(t, core.Core, s.Class(2))
		assert.Equal(t, s.Cluster(1), s.Cluster(2))
	})

	t.Run("Empty", func(t *testing.T) {
		s := build(t, nil, 1.0)
		stats, err := New(s, 2).Run(ctx, nil)
		require.NoError(t, err)
		assert.Equal(t, Stats{}, stats)
	})
}

func TestRun_LateReclassification(t *testing.T) {
	// Only the middle point is core; its ends are visited first.
	recs := []core.Record{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}}
	s := build(t, recs, 1.0)

	var events []ClusterEvent
	e := New(s, 3, func(o *Options) {
		o.OnCluster = func(ev ClusterEvent) { events = append(events, ev) }
	})
	stats, err := e.Run(context.Background(), []core.PointID{0, 2, 1})
	require.NoError(t, err)

	assert.Equal(t, 1, stats.Clusters)
	assert.Equal(t, 2, stats.Reclassified)
	assert.Equal(t, core.Border, s.Class(0))
	assert.Equal(t, core.Core, s.Class(1))
	assert.Equal(t, core.Border, s.Class(2))
	for i := 0; i < 3; i++ {
		assert.Equal(t, core.ClusterID(0), s.Cluster(core.PointID(i)))
	}
	require.Len(t, events, 1)
	assert.Equal(t, ClusterEvent{Cluster: 0, Root: 1, Absorbed: 3}, events[0])
}

func TestRun_BorderGoesToLastCluster(t *testing.T) {
	tests := []struct {
		name     string
		order    []core.PointID
		lastRoot core.PointID
	}{
		{"RightExpandsLast", []core.PointID{0, 4, 1, 2, 3, 5, 6}, 4},
		{"LeftExpandsLast", []core.PointID{4, 0, 1, 2, 3, 5, 6}, 0},
		{"SharedPointVisitedFirst", []core.PointID{3, 0, 4, 1, 2, 5, 6}, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := build(t, bridge(), 1.0)
			stats, err := New(s, 4).Run(context.Background(), tt.order)
			require.NoError(t, err)

			assert.Equal(t, 2, stats.Clusters)
			assert.Equal(t, 1, stats.Reassigned)
			assert.Equal(t, core.Border, s.Class(3))
			assert.Equal(t, core.ClusterID(1), s.Cluster(3))
			assert.Equal(t, s.Cluster(tt.lastRoot), s.Cluster(3))
		})
	}
}

func TestRun_DFSAndBFSAgree(t *testing.T) {
	rng := testutil.NewRNG(4711)
	recs := rng.Blobs([]testutil.Center{{X: 0, Y: 0}, {X: 8, Y: 0}, {X: 4, Y: 7}}, 80, 1.2)
	recs = append(recs, rng.UniformRecords(60, -4, 12)...)
	order := util.NewRNG(99).VisitOrder(len(recs))

	dfs := build(t, recs, 0.8)
	_, err := New(dfs, 5).Run(context.Background(), order)
	require.NoError(t, err)

	bfs := build(t, recs, 0.8)
	_, err = New(bfs, 5, func(o *Options) { o.Traversal = TraversalBFS }).Run(context.Background(), order)
	require.NoError(t, err)

	assert.Equal(t, dfs.Snapshot(), bfs.Snapshot())
}

func TestRun_PartitionCompleteness(t *testing.T) {
	rng := testutil.NewRNG(1234)
	recs := rng.Blobs([]testutil.Center{{X: 0, Y: 0}, {X: 6, Y: 6}}, 100, 1)
	recs = append(recs, rng.UniformRecords(50, -5, 11)...)
	s := build(t, recs, 0.7)

	// Core set must only ever grow while clusters are expanded.
	prevCores := 0
	e := New(s, 4, func(o *Options) {
		o.OnCluster = func(ClusterEvent) {
			cores := 0
			for i := 0; i < s.Len(); i++ {
				if s.Class(core.PointID(i)) == core.Core {
					cores++
				}
			}
			assert.GreaterOrEqual(t, cores, prevCores)
			prevCores = cores
		}
	})
	stats, err := e.Run(context.Background(), util.NewRNG(5).VisitOrder(len(recs)))
	require.NoError(t, err)
	require.Positive(t, stats.Clusters)

	for i := 0; i < s.Len(); i++ {
		p := core.PointID(i)
		switch s.Class(p) {
		case core.Core:
			assert.True(t, IsCore(s, 4, p))
			assert.True(t, s.Cluster(p).Valid())
		case core.Border:
			assert.False(t, IsCore(s, 4, p))
			assert.True(t, s.Cluster(p).Valid())
			assert.Less(t, int(s.Cluster(p)), stats.Clusters)
		case core.Outlier:
			assert.False(t, IsCore(s, 4, p))
			assert.Equal(t, core.NoCluster, s.Cluster(p))
			// No core point can reach a remaining outlier.
			for q := range s.Neighbors(p) {
				assert.NotEqual(t, core.Core, s.Class(q))
			}
		default:
			t.Fatalf("point %d left %s", p, s.Class(p))
		}
	}
}

func TestRun_InvalidOrder(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name  string
		order []core.PointID
	}{
		{"TooShort", []core.PointID{0, 1}},
		{"OutOfRange", []core.PointID{0, 1, 2, 9}},
		{"Duplicate", []core.PointID{0, 1, 1, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(build(t, square(), 1.5), 2).Run(ctx, tt.order)
			assert.ErrorIs(t, err, ErrInvalidOrder)
		})
	}
}

func TestRun_Cancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(build(t, square(), 1.5), 2).Run(ctx, identity(4))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTraversalString(t *testing.T) {
	assert.Equal(t, "dfs", TraversalDFS.String())
	assert.Equal(t, "bfs", TraversalBFS.String())
	assert.Equal(t, "Unknown(7)", Traversal(7).String())
}
