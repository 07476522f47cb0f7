package util

import (
	"math/rand"

	"github.com/hupe1980/dbscan/core"
)

// DefaultSeed is the seed used when the caller does not supply one.
const DefaultSeed int64 = 1

// RNG struct encapsulates the random number generator and seed.
type RNG struct {
	rand *rand.Rand
	seed int64
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)), // nolint gosec
		seed: seed,
	}
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// VisitOrder returns a permutation of the point ids [0, n).
//
// The permutation is a backwards Fisher-Yates shuffle of the identity
// sequence, so the same seed always yields the same order.
func (r *RNG) VisitOrder(n int) []core.PointID {
	order := make([]core.PointID, n)
	for i := range order {
		order[i] = core.PointID(i)
	}
	for i := n - 1; i > 0; i-- {
		j := r.rand.Intn(i + 1)
		order[i], order[j] = order[j], order[i]
	}
	return order
}
