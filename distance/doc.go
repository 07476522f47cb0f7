// Package distance provides planar distance functions for clustering.
//
// # Supported Metrics
//
//   - MetricL2: Euclidean distance (default)
//   - MetricManhattan: L1 (taxicab) distance
//   - MetricChebyshev: L-infinity distance
//
// All metrics are symmetric and return 0 for identical points, which the
// neighbor index relies on: every point is its own neighbor.
//
// # Usage
//
//	fn, _ := distance.Provider(distance.MetricL2)
//	d := fn(distance.Coord{X: 0, Y: 0}, distance.Coord{X: 3, Y: 4}) // 5
package distance
