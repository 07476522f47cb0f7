package testutil

import (
	"math/rand"
	"sync"

	"github.com/hupe1980/dbscan/core"
)

// Center is the mean of a generated blob.
type Center struct {
	X, Y float64
}

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Int63 returns a non-negative pseudo-random 63-bit integer.
func (r *RNG) Int63() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Int63()
}

// UniformRecords generates records with coordinates uniformly distributed
// in [minVal, maxVal). Ids are assigned sequentially from 0.
func (r *RNG) UniformRecords(num int, minVal, maxVal float64) []core.Record {
	r.mu.Lock()
	defer r.mu.Unlock()

	span := maxVal - minVal
	recs := make([]core.Record, num)
	for i := range recs {
		recs[i] = core.Record{
			ID: int64(i),
			X:  minVal + r.rand.Float64()*span,
			Y:  minVal + r.rand.Float64()*span,
		}
	}
	return recs
}

// Blobs generates perCenter records around each center with Gaussian noise of
// the given standard deviation. Records are emitted center by center and ids
// are assigned sequentially from 0.
func (r *RNG) Blobs(centers []Center, perCenter int, spread float64) []core.Record {
	r.mu.Lock()
	defer r.mu.Unlock()

	recs := make([]core.Record, 0, len(centers)*perCenter)
	for _, c := range centers {
		for range perCenter {
			recs = append(recs, core.Record{
				ID: int64(len(recs)),
				X:  c.X + r.rand.NormFloat64()*spread,
				Y:  c.Y + r.rand.NormFloat64()*spread,
			})
		}
	}
	return recs
}

// Grid generates a rows x cols lattice with the given spacing, origin at
// (x0, y0). Ids are assigned row-major from 0.
func Grid(rows, cols int, spacing, x0, y0 float64) []core.Record {
	recs := make([]core.Record, 0, rows*cols)
	for i := range rows {
		for j := range cols {
			recs = append(recs, core.Record{
				ID: int64(len(recs)),
				X:  x0 + float64(j)*spacing,
				Y:  y0 + float64(i)*spacing,
			})
		}
	}
	return recs
}

// Renumber reassigns sequential ids starting at 0, in slice order.
func Renumber(recs []core.Record) []core.Record {
	for i := range recs {
		recs[i].ID = int64(i)
	}
	return recs
}

// ClusterSizes counts clustered points per reported cluster id.
func ClusterSizes(points []core.Point) map[core.ClusterID]int {
	sizes := make(map[core.ClusterID]int)
	for _, p := range points {
		if p.Clustered() {
			sizes[p.Cluster]++
		}
	}
	return sizes
}

// CountClass counts points with the given classification.
func CountClass(points []core.Point, c core.Classification) int {
	n := 0
	for _, p := range points {
		if p.Classification == c {
			n++
		}
	}
	return n
}
