package neighbor

import (
	"context"
	"math"
	"slices"
	"testing"

	"github.com/hupe1980/dbscan/core"
	"github.com/hupe1980/dbscan/distance"
	"github.com/hupe1980/dbscan/internal/pointstore"
	"github.com/hupe1980/dbscan/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func square() []core.Record {
	return []core.Record{
		{ID: 0, X: 0, Y: 0},
		{ID: 1, X: 0, Y: 1},
		{ID: 2, X: 1, Y: 0},
		{ID: 3, X: 1, Y: 1},
	}
}

func TestBuild(t *testing.T) {
	ctx := context.Background()

	t.Run("Square", func(t *testing.T) {
		s := pointstore.New(square())
		stats, err := Build(ctx, s, 1.5, distance.Euclidean)
		require.NoError(t, err)

		assert.Equal(t, int64(6), stats.Pairs)
		assert.Equal(t, int64(6), stats.Edges)
		assert.InDelta(t, 4.0, stats.AvgDegree(), 1e-12)
		for i := 0; i < 4; i++ {
			assert.Equal(t, 4, s.NeighborCount(core.PointID(i)))
		}
	})

	t.Run("BoundaryIsInclusive", func(t *testing.T) {
		s := pointstore.New(square())
		_, err := Build(ctx, s, 1.0, distance.Euclidean)
		require.NoError(t, err)

		// Sides are exactly 1 apart, diagonals sqrt(2).
		assert.Equal(t, []core.PointID{0, 1, 2}, slices.Collect(s.Neighbors(0)))
		assert.Equal(t, []core.PointID{1, 2, 3}, slices.Collect(s.Neighbors(3)))
	})

	t.Run("ZeroRadiusKeepsSelf", func(t *testing.T) {
		s := pointstore.New(square())
		_, err := Build(ctx, s, 0, nil)
		require.NoError(t, err)

		for i := 0; i < 4; i++ {
			id := core.PointID(i)
			assert.Equal(t, []core.PointID{id}, slices.Collect(s.Neighbors(id)))
		}
	})

	t.Run("DuplicatesAreNeighbors", func(t *testing.T) {
		s := pointstore.New([]core.Record{{X: 2, Y: 2}, {X: 2, Y: 2}})
		_, err := Build(ctx, s, 0, nil)
		require.NoError(t, err)
		assert.Equal(t, 2, s.NeighborCount(0))
	})

	t.Run("Empty", func(t *testing.T) {
		s := pointstore.New(nil)
		stats, err := Build(ctx, s, 1, nil)
		require.NoError(t, err)
		assert.Equal(t, 0, stats.Points)
		assert.Equal(t, 0.0, stats.AvgDegree())
	})

	t.Run("InvalidRadius", func(t *testing.T) {
		for _, eps := range []float64{-1, math.NaN(), math.Inf(1)} {
			_, err := Build(ctx, pointstore.New(square()), eps, nil)
			assert.ErrorIs(t, err, ErrInvalidRadius)
		}
	})

	t.Run("Cancellation", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		_, err := Build(cctx, pointstore.New(square()), 1, nil)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestBuild_SymmetryAndSelfMembership(t *testing.T) {
	rng := testutil.NewRNG(4711)
	recs := rng.Blobs([]testutil.Center{{X: 0, Y: 0}, {X: 10, Y: 10}}, 60, 1.5)
	recs = append(recs, rng.UniformRecords(40, -5, 15)...)

	s := pointstore.New(recs)
	_, err := Build(context.Background(), s, 1.2, distance.Euclidean)
	require.NoError(t, err)

	n := s.Len()
	for i := 0; i < n; i++ {
		p := core.PointID(i)
		assert.True(t, s.IsNeighbor(p, p), "self membership of %d", p)
		for j := 0; j < n; j++ {
			q := core.PointID(j)
			assert.Equal(t, s.IsNeighbor(p, q), s.IsNeighbor(q, p), "symmetry %d/%d", p, q)

			within := distance.Euclidean(s.Coord(p), s.Coord(q)) <= 1.2
			assert.Equal(t, within, s.IsNeighbor(p, q))
		}
	}
}
