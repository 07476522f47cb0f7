package expand

import (
	"github.com/hupe1980/dbscan/core"
	"github.com/hupe1980/dbscan/internal/pointstore"
)

// IsCore reports whether p is dense enough to seed a cluster: its neighbor
// set (self included) holds at least minPoints points.
func IsCore(store *pointstore.Store, minPoints int, p core.PointID) bool {
	return store.NeighborCount(p) >= minPoints
}
