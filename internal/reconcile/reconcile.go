package reconcile

import (
	"errors"
	"fmt"
	"math"

	"github.com/hupe1980/dbscan/core"
	"github.com/hupe1980/dbscan/distance"
	"github.com/hupe1980/dbscan/internal/pointstore"
)

// ErrInvalidTarget is returned when the target cluster count is not positive.
var ErrInvalidTarget = errors.New("reconcile: target cluster count must be positive")

// ErrNoMergeTarget is returned when an eliminated cluster has no surviving
// cluster at a non-zero centroid distance.
type ErrNoMergeTarget struct {
	Cluster core.ClusterID
}

func (e *ErrNoMergeTarget) Error() string {
	return fmt.Sprintf("reconcile: no merge target for cluster %d", e.Cluster)
}

// Centroid is the mean position of a cluster's members.
type Centroid struct {
	X, Y float64
	Size int
}

// Coord returns the centroid as a coordinate.
func (c Centroid) Coord() distance.Coord {
	return distance.Coord{X: c.X, Y: c.Y}
}

// Merge records one cluster folded into another.
type Merge struct {
	From     core.ClusterID
	To       core.ClusterID
	Distance float64
	// Size is the number of points moved.
	Size int
}

// Plan is the outcome of a reconciliation.
type Plan struct {
	Produced int
	Target   int
	// Survivors lists the cluster ids left after merging, ascending.
	Survivors []core.ClusterID
	Merges    []Merge
}

// Merged reports whether any cluster was merged.
func (p *Plan) Merged() bool {
	return len(p.Merges) > 0
}

// Centroids computes the centroid of each cluster in [0, produced) over
// all points assigned to it. Outliers carry no cluster and never count.
func Centroids(store *pointstore.Store, produced int) []Centroid {
	out := make([]Centroid, produced)
	for i := 0; i < store.Len(); i++ {
		id := core.PointID(i)
		c := store.Cluster(id)
		if !c.Valid() || int(c) >= produced || store.Class(id) == core.Outlier {
			continue
		}
		r := store.Record(id)
		out[c].X += r.X
		out[c].Y += r.Y
		out[c].Size++
	}

	for j := range out {
		if out[j].Size > 0 {
			out[j].X /= float64(out[j].Size)
			out[j].Y /= float64(out[j].Size)
		}
	}
	return out
}

// Reconcile reduces produced clusters to target. It is a no-op when
// produced <= target. On ErrNoMergeTarget, merges applied before the failing
// cluster remain in the store.
func Reconcile(store *pointstore.Store, produced, target int, dist distance.Func) (*Plan, error) {
	if target <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidTarget, target)
	}
	if dist == nil {
		dist = distance.Euclidean
	}

	plan := &Plan{Produced: produced, Target: target}
	if produced <= target {
		for c := 0; c < produced; c++ {
			plan.Survivors = append(plan.Survivors, core.ClusterID(c))
		}
		return plan, nil
	}

	centroids := Centroids(store, produced)
	eligible := selectSurvivors(centroids, produced-target)

	for src := range centroids {
		if eligible[src] {
			continue
		}

		dst, d := nearest(centroids, eligible, src, dist)
		if dst < 0 {
			return plan, &ErrNoMergeTarget{Cluster: core.ClusterID(src)}
		}

		moved := 0
		for _, id := range store.Members(core.ClusterID(src)) {
			store.SetCluster(id, core.ClusterID(dst))
			moved++
		}
		plan.Merges = append(plan.Merges, Merge{
			From:     core.ClusterID(src),
			To:       core.ClusterID(dst),
			Distance: d,
			Size:     moved,
		})
	}

	for c, ok := range eligible {
		if ok {
			plan.Survivors = append(plan.Survivors, core.ClusterID(c))
		}
	}
	return plan, nil
}

// selectSurvivors marks the excess smallest clusters ineligible and returns
// the eligibility table.
func selectSurvivors(centroids []Centroid, excess int) []bool {
	eligible := make([]bool, len(centroids))
	for i := range eligible {
		eligible[i] = true
	}

	for range excess {
		minIdx := -1
		minSize := math.MaxInt
		for j, c := range centroids {
			if eligible[j] && c.Size < minSize {
				minSize = c.Size
				minIdx = j
			}
		}
		if minIdx < 0 {
			break
		}
		eligible[minIdx] = false
	}
	return eligible
}

// nearest finds the eligible, non-empty cluster with the smallest non-zero
// centroid distance to src. It returns -1 if there is none.
func nearest(centroids []Centroid, eligible []bool, src int, dist distance.Func) (int, float64) {
	from := centroids[src].Coord()
	best := -1
	bestDist := math.Inf(1)

	for j, c := range centroids {
		if !eligible[j] || c.Size == 0 {
			continue
		}
		d := dist(from, c.Coord())
		if d == 0 {
			continue
		}
		if d < bestDist {
			bestDist = d
			best = j
		}
	}

	if best < 0 {
		return -1, 0
	}
	return best, bestDist
}
