package expand

import (
	"context"
	"errors"
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/dbscan/core"
	"github.com/hupe1980/dbscan/internal/pointstore"
)

// ErrInvalidOrder is returned when the visiting order is not a permutation
// of the store's point ids.
var ErrInvalidOrder = errors.New("expand: visiting order is not a permutation of the points")

// Traversal selects the work-list discipline used during expansion.
type Traversal int

const (
	// TraversalDFS expands depth-first using a LIFO stack.
	TraversalDFS Traversal = iota
	// TraversalBFS expands breadth-first using a FIFO queue.
	TraversalBFS
)

func (t Traversal) String() string {
	switch t {
	case TraversalDFS:
		return "dfs"
	case TraversalBFS:
		return "bfs"
	default:
		return fmt.Sprintf("Unknown(%d)", t)
	}
}

// ClusterEvent describes a finished cluster expansion.
type ClusterEvent struct {
	Cluster core.ClusterID
	Root    core.PointID
	// Absorbed is the number of points assigned to the cluster by this
	// expansion, root included.
	Absorbed int
}

// Stats summarizes a completed run.
type Stats struct {
	Clusters int
	// Roots is the number of points popped by the driver.
	Roots int
	// Reclassified counts points absorbed after being marked Outlier.
	Reclassified int
	// Reassigned counts Border points taken over by a later cluster.
	Reassigned int
}

// Options configures an Expander.
type Options struct {
	Traversal Traversal
	// OnCluster is called after every cluster expansion.
	OnCluster func(ClusterEvent)
}

// Expander grows clusters over a store whose neighbor sets are built.
type Expander struct {
	store     *pointstore.Store
	minPoints int
	opts      Options

	remaining *roaring.Bitmap
	work      []core.PointID
	head      int
	stats     Stats
}

// New creates an Expander. optFns are applied to the default Options
// (depth-first traversal, no hook).
func New(store *pointstore.Store, minPoints int, optFns ...func(o *Options)) *Expander {
	opts := Options{Traversal: TraversalDFS}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Expander{
		store:     store,
		minPoints: minPoints,
		opts:      opts,
	}
}

// Run classifies every point, visiting roots in the given order, and returns
// the run statistics. order must be a permutation of [0, store.Len()).
//
// ctx is checked between top-level iterations; state is consistent at those
// boundaries but a cancelled run must not be reported as a result.
func (e *Expander) Run(ctx context.Context, order []core.PointID) (Stats, error) {
	n := e.store.Len()
	if len(order) != n {
		return Stats{}, fmt.Errorf("%w: got %d ids for %d points", ErrInvalidOrder, len(order), n)
	}

	e.remaining = roaring.New()
	for _, id := range order {
		if int(id) >= n {
			return Stats{}, fmt.Errorf("%w: id %d out of range", ErrInvalidOrder, id)
		}
		e.remaining.Add(uint32(id))
	}
	if int(e.remaining.GetCardinality()) != n {
		return Stats{}, fmt.Errorf("%w: duplicate ids", ErrInvalidOrder)
	}

	e.stats = Stats{}
	var next core.ClusterID

	for _, p := range order {
		if err := ctx.Err(); err != nil {
			return e.stats, err
		}
		if !e.remaining.Contains(uint32(p)) {
			continue
		}
		e.remaining.Remove(uint32(p))
		e.stats.Roots++

		if !IsCore(e.store, e.minPoints, p) {
			if err := e.store.SetClass(p, core.Outlier); err != nil {
				return e.stats, err
			}
			continue
		}

		cid := next
		next++
		if err := e.store.SetClass(p, core.Core); err != nil {
			return e.stats, err
		}
		e.store.SetCluster(p, cid)

		absorbed, err := e.expand(p, cid)
		if err != nil {
			return e.stats, err
		}
		e.stats.Clusters++

		if e.opts.OnCluster != nil {
			e.opts.OnCluster(ClusterEvent{Cluster: cid, Root: p, Absorbed: absorbed + 1})
		}
	}

	return e.stats, nil
}

// expand grows cluster cid from root and returns the number of points newly
// assigned to it (root excluded).
func (e *Expander) expand(root core.PointID, cid core.ClusterID) (int, error) {
	e.work = append(e.work[:0], root)
	e.head = 0
	absorbed := 0

	for {
		c, ok := e.take()
		if !ok {
			return absorbed, nil
		}

		for nb := range e.store.Neighbors(c) {
			prev := e.store.Class(nb)
			if prev == core.Core {
				continue
			}

			e.remaining.Remove(uint32(nb))
			if e.store.Cluster(nb) != cid {
				absorbed++
				switch prev {
				case core.Outlier:
					e.stats.Reclassified++
				case core.Border:
					e.stats.Reassigned++
				}
			}
			e.store.SetCluster(nb, cid)

			if IsCore(e.store, e.minPoints, nb) {
				if err := e.store.SetClass(nb, core.Core); err != nil {
					return absorbed, err
				}
				e.work = append(e.work, nb)
			} else if err := e.store.SetClass(nb, core.Border); err != nil {
				return absorbed, err
			}
		}
	}
}

// take pops the next point to expand from the work list.
func (e *Expander) take() (core.PointID, bool) {
	if e.opts.Traversal == TraversalBFS {
		if e.head >= len(e.work) {
			return 0, false
		}
		p := e.work[e.head]
		e.head++
		return p, true
	}

	if len(e.work) == 0 {
		return 0, false
	}
	p := e.work[len(e.work)-1]
	e.work = e.work[:len(e.work)-1]
	return p, true
}
