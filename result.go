package dbscan

import (
	"github.com/hupe1980/dbscan/core"
	"github.com/hupe1980/dbscan/internal/pointstore"
	"github.com/hupe1980/dbscan/internal/reconcile"
)

// Cluster is a surviving cluster with its members in load order.
type Cluster struct {
	// ID is the reported id, dense in [0, len(Result.Clusters)).
	ID core.ClusterID
	// SourceID is the id the cluster had when it was expanded.
	SourceID core.ClusterID
	Members  []core.Point
}

// Centroid returns the mean position of the cluster's members.
func (c Cluster) Centroid() (x, y float64) {
	if len(c.Members) == 0 {
		return 0, 0
	}
	for _, m := range c.Members {
		x += m.X
		y += m.Y
	}
	n := float64(len(c.Members))
	return x / n, y / n
}

// IDs returns the caller ids of the cluster's members.
func (c Cluster) IDs() []int64 {
	ids := make([]int64, len(c.Members))
	for i, m := range c.Members {
		ids[i] = m.ID
	}
	return ids
}

// Merge records one cluster folded into another during reconciliation.
// Ids are expansion ids (Cluster.SourceID).
type Merge struct {
	From     core.ClusterID
	To       core.ClusterID
	Distance float64
	Size     int
}

// RunStats carries counters from the pipeline phases.
type RunStats struct {
	Pairs        int64
	Edges        int64
	Reclassified int
	Reassigned   int
}

// Result is the outcome of a clustering run.
type Result struct {
	Config Config
	Seed   int64

	// Points holds every point in load order with its final classification.
	// Cluster ids are the dense reported ids; outliers have core.NoCluster.
	Points []core.Point
	// Clusters holds the surviving clusters ordered by ID.
	Clusters []Cluster
	// Produced is the number of clusters expansion created.
	Produced int
	Merges   []Merge
	Stats    RunStats
}

// Cores returns the Core points in load order.
func (r *Result) Cores() []core.Point {
	return r.filter(core.Core)
}

// Outliers returns the Outlier points in load order.
func (r *Result) Outliers() []core.Point {
	return r.filter(core.Outlier)
}

func (r *Result) filter(c core.Classification) []core.Point {
	var out []core.Point
	for _, p := range r.Points {
		if p.Classification == c {
			out = append(out, p)
		}
	}
	return out
}

// project builds the result from the final store state. Surviving clusters
// are renumbered densely in ascending order of their expansion id.
func project(store *pointstore.Store, plan *reconcile.Plan) ([]core.Point, []Cluster) {
	points := store.Snapshot()

	dense := make(map[core.ClusterID]core.ClusterID, len(plan.Survivors))
	clusters := make([]Cluster, len(plan.Survivors))
	for i, src := range plan.Survivors {
		dense[src] = core.ClusterID(i)
		clusters[i] = Cluster{ID: core.ClusterID(i), SourceID: src}
	}

	for i := range points {
		p := &points[i]
		if p.Classification == core.Outlier {
			p.Cluster = core.NoCluster
			continue
		}
		id, ok := dense[p.SourceCluster]
		if !ok {
			p.Cluster = core.NoCluster
			continue
		}
		p.Cluster = id
		clusters[id].Members = append(clusters[id].Members, *p)
	}

	return points, clusters
}

// Summary is a serializable overview of a run.
type Summary struct {
	Config    Config           `json:"config"`
	Seed      int64            `json:"seed"`
	Points    int              `json:"points"`
	Cores     int              `json:"cores"`
	Borders   int              `json:"borders"`
	Outliers  int              `json:"outliers"`
	Produced  int              `json:"produced_clusters"`
	Clusters  []ClusterSummary `json:"clusters"`
	Merges    []MergeSummary   `json:"merges,omitempty"`
	Reclassed int              `json:"reclassified_outliers"`
}

// ClusterSummary describes one surviving cluster.
type ClusterSummary struct {
	ID        int     `json:"id"`
	SourceID  int     `json:"source_id"`
	Size      int     `json:"size"`
	CentroidX float64 `json:"centroid_x"`
	CentroidY float64 `json:"centroid_y"`
}

// MergeSummary describes one merge.
type MergeSummary struct {
	From     int     `json:"from"`
	To       int     `json:"to"`
	Size     int     `json:"size"`
	Distance float64 `json:"distance"`
}

// Summary returns a serializable overview of the result.
func (r *Result) Summary() Summary {
	s := Summary{
		Config:    r.Config,
		Seed:      r.Seed,
		Points:    len(r.Points),
		Produced:  r.Produced,
		Reclassed: r.Stats.Reclassified,
		Clusters:  make([]ClusterSummary, 0, len(r.Clusters)),
	}
	for _, p := range r.Points {
		switch p.Classification {
		case core.Core:
			s.Cores++
		case core.Border:
			s.Borders++
		case core.Outlier:
			s.Outliers++
		}
	}
	for _, c := range r.Clusters {
		x, y := c.Centroid()
		s.Clusters = append(s.Clusters, ClusterSummary{
			ID:        int(c.ID),
			SourceID:  int(c.SourceID),
			Size:      len(c.Members),
			CentroidX: x,
			CentroidY: y,
		})
	}
	for _, m := range r.Merges {
		s.Merges = append(s.Merges, MergeSummary{
			From:     int(m.From),
			To:       int(m.To),
			Size:     m.Size,
			Distance: m.Distance,
		})
	}
	return s
}
