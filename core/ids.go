package core

import "fmt"

// PointID is a dense, internal identifier for a point within a single run.
// It is the point's position in load order and indexes every per-point
// structure (store arena, neighbor bitmaps, visit order).
type PointID uint32

// MaxPointID is the maximum possible value for a PointID.
const MaxPointID = ^PointID(0)

// ClusterID identifies a cluster. Ids are dense and assigned in creation
// order starting at 0.
type ClusterID int32

// NoCluster marks a point that belongs to no cluster.
const NoCluster ClusterID = -1

// Valid reports whether c refers to a cluster.
func (c ClusterID) Valid() bool { return c >= 0 }

// Classification is the density class of a point.
type Classification uint8

const (
	// Undefined is the state of a point that has not been visited yet.
	Undefined Classification = iota
	// Core points have at least min_points neighbors (self included).
	Core
	// Border points are non-core points absorbed by a cluster's expansion.
	Border
	// Outlier points were non-core when visited and never absorbed.
	Outlier
)

func (c Classification) String() string {
	switch c {
	case Undefined:
		return "undefined"
	case Core:
		return "core"
	case Border:
		return "border"
	case Outlier:
		return "outlier"
	default:
		return fmt.Sprintf("Unknown(%d)", c)
	}
}
