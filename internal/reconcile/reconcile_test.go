package reconcile

import (
	"context"
	"errors"
	"testing"

	"github.com/hupe1980/dbscan/core"
	"github.com/hupe1980/dbscan/distance"
	"github.com/hupe1980/dbscan/internal/expand"
	"github.com/hupe1980/dbscan/internal/neighbor"
	"github.com/hupe1980/dbscan/internal/pointstore"
	"github.com/hupe1980/dbscan/testutil"
	"github.com/hupe1980/dbscan/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type member struct {
	x, y    float64
	cluster core.ClusterID
}

// assigned builds a store with a fixed cluster assignment, all members Core.
func assigned(t *testing.T, members []member) *pointstore.Store {
	t.Helper()
	recs := make([]core.Record, len(members))
	for i, m := range members {
		recs[i] = core.Record{ID: int64(i), X: m.x, Y: m.y}
	}
	s := pointstore.New(recs)
	for i, m := range members {
		id := core.PointID(i)
		if m.cluster.Valid() {
			require.NoError(t, s.SetClass(id, core.Core))
			s.SetCluster(id, m.cluster)
		} else {
			require.NoError(t, s.SetClass(id, core.Outlier))
		}
	}
	return s
}

func clusters(s *pointstore.Store) []core.ClusterID {
	out := make([]core.ClusterID, s.Len())
	for i := range out {
		out[i] = s.Cluster(core.PointID(i))
	}
	return out
}

func TestCentroids(t *testing.T) {
	s := assigned(t, []member{
		{0, 0, 0}, {2, 0, 0}, {1, 3, 0},
		{10, 10, 1},
		{50, 50, core.NoCluster},
	})

	c := Centroids(s, 3)

	require.Len(t, c, 3)
	assert.Equal(t, Centroid{X: 1, Y: 1, Size: 3}, c[0])
	assert.Equal(t, Centroid{X: 10, Y: 10, Size: 1}, c[1])
	assert.Equal(t, Centroid{}, c[2])
}

func TestReconcile_NoOp(t *testing.T) {
	s := assigned(t, []member{{0, 0, 0}, {5, 5, 1}})
	before := clusters(s)

	for _, target := range []int{2, 3, 10} {
		plan, err := Reconcile(s, 2, target, distance.Euclidean)
		require.NoError(t, err)
		assert.False(t, plan.Merged())
		assert.Equal(t, []core.ClusterID{0, 1}, plan.Survivors)
		assert.Equal(t, before, clusters(s))
	}
}

func TestReconcile_TwoPairsToOne(t *testing.T) {
	s := assigned(t, []member{
		{0, 0, 0}, {0, 1, 0},
		{100, 100, 1}, {100, 101, 1},
	})

	plan, err := Reconcile(s, 2, 1, nil)
	require.NoError(t, err)

	// Equal sizes: the lower id is eliminated.
	assert.Equal(t, []core.ClusterID{1}, plan.Survivors)
	require.Len(t, plan.Merges, 1)
	assert.Equal(t, core.ClusterID(0), plan.Merges[0].From)
	assert.Equal(t, core.ClusterID(1), plan.Merges[0].To)
	assert.Equal(t, 2, plan.Merges[0].Size)
	assert.InDelta(t, 141.42, plan.Merges[0].Distance, 0.01)
	assert.Equal(t, []core.ClusterID{1, 1, 1, 1}, clusters(s))
}

func TestReconcile_SmallestFirst(t *testing.T) {
	s := assigned(t, []member{
		{0, 0, 0}, {0, 1, 0}, {1, 0, 0},
		{5, 5, 1},
		{9, 9, 2}, {9, 8, 2},
	})

	plan, err := Reconcile(s, 3, 1, nil)
	require.NoError(t, err)

	assert.Equal(t, []core.ClusterID{0}, plan.Survivors)
	require.Len(t, plan.Merges, 2)
	assert.Equal(t, core.ClusterID(1), plan.Merges[0].From)
	assert.Equal(t, core.ClusterID(2), plan.Merges[1].From)
	for _, c := range clusters(s) {
		assert.Equal(t, core.ClusterID(0), c)
	}
}

func TestReconcile_NearestCentroid(t *testing.T) {
	s := assigned(t, []member{
		{0, 0, 0}, {0, 1, 0}, {0, -1, 0},
		{10, 0, 1}, {10, 1, 1}, {10, -1, 1},
		{3, 0, 2},
	})

	plan, err := Reconcile(s, 3, 2, nil)
	require.NoError(t, err)

	assert.Equal(t, []core.ClusterID{0, 1}, plan.Survivors)
	require.Len(t, plan.Merges, 1)
	assert.Equal(t, Merge{From: 2, To: 0, Distance: 3, Size: 1}, plan.Merges[0])
	assert.Equal(t, core.ClusterID(0), s.Cluster(6))
}

func TestReconcile_EquidistantDestinations(t *testing.T) {
	// Clusters 1 and 2 are both sqrt(17)/3 from cluster 0. Centroids are the
	// rounded quotient sum/size, which puts cluster 1 one ulp closer.
	s := assigned(t, []member{
		{0, 4, 0}, {2, 4, 0}, {2, 3, 0},
		{1, 2, 1}, {0, 3, 1}, {4, 2, 1},
		{4, 4, 2}, {2, 2, 2}, {2, 4, 2},
	})

	c := Centroids(s, 3)
	assert.Equal(t, 4.0/3, c[0].X)
	assert.Equal(t, 11.0/3, c[0].Y)
	assert.Equal(t, 5.0/3, c[1].X)
	assert.Equal(t, 7.0/3, c[1].Y)
	assert.Equal(t, 8.0/3, c[2].X)
	assert.Equal(t, 10.0/3, c[2].Y)

	d1 := distance.Euclidean(c[0].Coord(), c[1].Coord())
	d2 := distance.Euclidean(c[0].Coord(), c[2].Coord())
	require.Less(t, d1, d2)

	plan, err := Reconcile(s, 3, 2, distance.Euclidean)
	require.NoError(t, err)

	assert.Equal(t, []core.ClusterID{1, 2}, plan.Survivors)
	require.Len(t, plan.Merges, 1)
	assert.Equal(t, core.ClusterID(0), plan.Merges[0].From)
	assert.Equal(t, core.ClusterID(1), plan.Merges[0].To)
	assert.Equal(t, d1, plan.Merges[0].Distance)
	for i := core.PointID(0); i < 3; i++ {
		assert.Equal(t, core.ClusterID(1), s.Cluster(i))
	}
}

func TestReconcile_EliminatedClustersAreNotDestinations(t *testing.T) {
	s := assigned(t, []member{
		{0, 0, 0},
		{1, 0, 1},
		{100, 0, 2}, {100, 1, 2}, {100, 2, 2},
	})

	plan, err := Reconcile(s, 3, 1, nil)
	require.NoError(t, err)

	assert.Equal(t, []core.ClusterID{2}, plan.Survivors)
	for _, m := range plan.Merges {
		assert.Equal(t, core.ClusterID(2), m.To)
	}
	assert.Equal(t, []core.ClusterID{2, 2, 2, 2, 2}, clusters(s))
}

func TestReconcile_SkipsZeroDistance(t *testing.T) {
	s := assigned(t, []member{
		{5, 5, 0},
		{4, 5, 1}, {6, 5, 1}, {5, 4, 1}, {5, 6, 1},
		{20, 20, 2}, {21, 20, 2}, {20, 21, 2}, {21, 21, 2},
	})

	plan, err := Reconcile(s, 3, 2, nil)
	require.NoError(t, err)

	require.Len(t, plan.Merges, 1)
	assert.Equal(t, core.ClusterID(0), plan.Merges[0].From)
	assert.Equal(t, core.ClusterID(2), plan.Merges[0].To)
	assert.Equal(t, core.ClusterID(2), s.Cluster(0))
}

func TestReconcile_NoMergeTarget(t *testing.T) {
	s := assigned(t, []member{
		{5, 5, 0},
		{4, 5, 1}, {6, 5, 1}, {5, 4, 1}, {5, 6, 1},
	})

	_, err := Reconcile(s, 2, 1, nil)
	require.Error(t, err)

	var nmt *ErrNoMergeTarget
	require.True(t, errors.As(err, &nmt))
	assert.Equal(t, core.ClusterID(0), nmt.Cluster)
	assert.Contains(t, err.Error(), "cluster 0")
}

func TestReconcile_InvalidTarget(t *testing.T) {
	s := assigned(t, []member{{0, 0, 0}})

	for _, target := range []int{0, -3} {
		_, err := Reconcile(s, 1, target, nil)
		assert.ErrorIs(t, err, ErrInvalidTarget)
	}
}

func TestReconcile_ClusterCountInvariant(t *testing.T) {
	rng := testutil.NewRNG(4711)
	centers := []testutil.Center{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 0, Y: 10}, {X: 10, Y: 10}, {X: 5, Y: 5}}
	recs := rng.Blobs(centers, 30, 0.6)
	recs = append(recs, rng.UniformRecords(30, -3, 13)...)

	s := pointstore.New(recs)
	_, err := neighbor.Build(context.Background(), s, 0.9, nil)
	require.NoError(t, err)
	stats, err := expand.New(s, 4).Run(context.Background(), util.NewRNG(3).VisitOrder(len(recs)))
	require.NoError(t, err)
	require.Greater(t, stats.Clusters, 2)

	plan, err := Reconcile(s, stats.Clusters, 2, nil)
	require.NoError(t, err)
	assert.Len(t, plan.Survivors, 2)
	assert.Len(t, plan.Merges, stats.Clusters-2)

	distinct := map[core.ClusterID]struct{}{}
	for i := 0; i < s.Len(); i++ {
		id := core.PointID(i)
		if s.Class(id) == core.Outlier {
			assert.Equal(t, core.NoCluster, s.Cluster(id))
			continue
		}
		distinct[s.Cluster(id)] = struct{}{}
	}
	assert.Len(t, distinct, 2)
	for _, c := range plan.Survivors {
		assert.Contains(t, distinct, c)
	}
}
