package core

// Record is a parsed input row: the caller's label and the coordinates.
type Record struct {
	ID int64
	X  float64
	Y  float64
}

// Point is a read-only view of a point's final state.
type Point struct {
	Index          PointID
	ID             int64
	X              float64
	Y              float64
	Classification Classification
	// Cluster is the reported cluster id, NoCluster for outliers.
	Cluster ClusterID
	// SourceCluster is the cluster id assigned during expansion/reconciliation,
	// before surviving clusters are renumbered densely.
	SourceCluster ClusterID
}

// Clustered reports whether the point is a member of a cluster.
func (p Point) Clustered() bool {
	return p.Classification != Outlier && p.Cluster.Valid()
}
