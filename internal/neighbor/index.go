package neighbor

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/dbscan/core"
	"github.com/hupe1980/dbscan/distance"
	"github.com/hupe1980/dbscan/internal/pointstore"
)

// ErrInvalidRadius is returned when eps is negative, NaN or infinite.
var ErrInvalidRadius = errors.New("neighbor: invalid radius")

// Stats describes a finished build.
type Stats struct {
	Points int
	// Pairs is the number of distance evaluations (unordered pairs).
	Pairs int64
	// Edges is the number of reachable unordered pairs, self pairs excluded.
	Edges int64
}

// AvgDegree returns the mean neighborhood size, self included.
func (s Stats) AvgDegree() float64 {
	if s.Points == 0 {
		return 0
	}
	return float64(s.Points+2*int(s.Edges)) / float64(s.Points)
}

// Build computes neighbors(p) = { q : dist(p, q) <= eps } for every point in
// the store and installs the sets. It checks ctx between rows; on
// cancellation the store is left partially built and must be discarded.
func Build(ctx context.Context, store *pointstore.Store, eps float64, dist distance.Func) (Stats, error) {
	if eps < 0 || math.IsNaN(eps) || math.IsInf(eps, 0) {
		return Stats{}, fmt.Errorf("%w: %v", ErrInvalidRadius, eps)
	}
	if dist == nil {
		dist = distance.Euclidean
	}

	n := store.Len()
	stats := Stats{Points: n}
	if n == 0 {
		return stats, nil
	}

	sets := make([]*roaring.Bitmap, n)
	for i := range sets {
		sets[i] = roaring.New()
	}

	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		pi := store.Coord(core.PointID(i))
		sets[i].Add(uint32(i))
		for j := i + 1; j < n; j++ {
			stats.Pairs++
			if dist(pi, store.Coord(core.PointID(j))) <= eps {
				sets[i].Add(uint32(j))
				sets[j].Add(uint32(i))
				stats.Edges++
			}
		}
	}

	for i, nb := range sets {
		nb.RunOptimize()
		if err := store.SetNeighbors(core.PointID(i), nb); err != nil {
			return stats, err
		}
	}

	return stats, nil
}
