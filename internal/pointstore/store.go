package pointstore

import (
	"errors"
	"fmt"
	"iter"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/dbscan/core"
	"github.com/hupe1980/dbscan/distance"
)

var (
	// ErrCoreDemotion is returned when a Core point would be reclassified.
	ErrCoreDemotion = errors.New("pointstore: core point cannot be reclassified")
	// ErrNeighborsFrozen is returned when a neighbor set is assigned twice.
	ErrNeighborsFrozen = errors.New("pointstore: neighbor set already built")
)

type point struct {
	rec       core.Record
	class     core.Classification
	cluster   core.ClusterID
	neighbors *roaring.Bitmap // nil until built
}

// Store is the point arena for a single clustering run.
// It is not safe for concurrent use.
type Store struct {
	points []point
}

// New creates a store from records in load order. Every point starts
// Undefined with no cluster and no neighbor set.
func New(records []core.Record) *Store {
	s := &Store{points: make([]point, len(records))}
	for i, r := range records {
		s.points[i] = point{
			rec:     r,
			class:   core.Undefined,
			cluster: core.NoCluster,
		}
	}
	return s
}

// Len returns the number of points.
func (s *Store) Len() int {
	return len(s.points)
}

// Record returns the input record of a point.
func (s *Store) Record(id core.PointID) core.Record {
	return s.points[id].rec
}

// Coord returns the coordinates of a point.
func (s *Store) Coord(id core.PointID) distance.Coord {
	r := s.points[id].rec
	return distance.Coord{X: r.X, Y: r.Y}
}

// Class returns the classification of a point.
func (s *Store) Class(id core.PointID) core.Classification {
	return s.points[id].class
}

// SetClass updates the classification of a point.
// Core is terminal: reclassifying a Core point returns ErrCoreDemotion.
func (s *Store) SetClass(id core.PointID, c core.Classification) error {
	p := &s.points[id]
	if p.class == core.Core && c != core.Core {
		return fmt.Errorf("%w: point %d to %s", ErrCoreDemotion, id, c)
	}
	p.class = c
	return nil
}

// Cluster returns the cluster assignment of a point.
func (s *Store) Cluster(id core.PointID) core.ClusterID {
	return s.points[id].cluster
}

// SetCluster assigns a point to a cluster (or core.NoCluster).
func (s *Store) SetCluster(id core.PointID, c core.ClusterID) {
	s.points[id].cluster = c
}

// SetNeighbors installs the neighbor set of a point. It may be called once
// per point; the bitmap is owned by the store afterwards.
func (s *Store) SetNeighbors(id core.PointID, nb *roaring.Bitmap) error {
	p := &s.points[id]
	if p.neighbors != nil {
		return fmt.Errorf("%w: point %d", ErrNeighborsFrozen, id)
	}
	p.neighbors = nb
	return nil
}

// HasNeighbors reports whether the neighbor set of a point has been built.
func (s *Store) HasNeighbors(id core.PointID) bool {
	return s.points[id].neighbors != nil
}

// NeighborCount returns the size of a point's neighbor set (self included).
func (s *Store) NeighborCount(id core.PointID) int {
	nb := s.points[id].neighbors
	if nb == nil {
		return 0
	}
	return int(nb.GetCardinality())
}

// IsNeighbor reports whether q is in the neighbor set of p.
func (s *Store) IsNeighbor(p, q core.PointID) bool {
	nb := s.points[p].neighbors
	return nb != nil && nb.Contains(uint32(q))
}

// Neighbors returns an iterator over a point's neighbors in ascending id order.
func (s *Store) Neighbors(id core.PointID) iter.Seq[core.PointID] {
	return func(yield func(core.PointID) bool) {
		nb := s.points[id].neighbors
		if nb == nil {
			return
		}
		it := nb.Iterator()
		for it.HasNext() {
			if !yield(core.PointID(it.Next())) {
				return
			}
		}
	}
}

// Members returns the ids assigned to cluster c in ascending order.
func (s *Store) Members(c core.ClusterID) []core.PointID {
	var ids []core.PointID
	for i := range s.points {
		if s.points[i].cluster == c {
			ids = append(ids, core.PointID(i))
		}
	}
	return ids
}

// Snapshot copies the state of every point. Cluster and SourceCluster both
// hold the raw assignment; renumbering is up to the caller.
func (s *Store) Snapshot() []core.Point {
	out := make([]core.Point, len(s.points))
	for i, p := range s.points {
		out[i] = core.Point{
			Index:          core.PointID(i),
			ID:             p.rec.ID,
			X:              p.rec.X,
			Y:              p.rec.Y,
			Classification: p.class,
			Cluster:        p.cluster,
			SourceCluster:  p.cluster,
		}
	}
	return out
}
