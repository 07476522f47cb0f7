package distance

import (
	"fmt"
	"math"
	"strings"
)

// Coord is a point in the plane.
type Coord struct {
	X, Y float64
}

// Euclidean calculates the L2 distance between two points.
func Euclidean(a, b Coord) float64 {
	return math.Sqrt(SquaredEuclidean(a, b))
}

// SquaredEuclidean calculates the squared L2 distance between two points.
func SquaredEuclidean(a, b Coord) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return dx*dx + dy*dy
}

// Manhattan calculates the L1 distance between two points.
func Manhattan(a, b Coord) float64 {
	return math.Abs(a.X-b.X) + math.Abs(a.Y-b.Y)
}

// Chebyshev calculates the L-infinity distance between two points.
func Chebyshev(a, b Coord) float64 {
	return math.Max(math.Abs(a.X-b.X), math.Abs(a.Y-b.Y))
}

// Metric represents the distance metric used for reachability and centroid
// comparison.
type Metric int

const (
	MetricL2 Metric = iota
	MetricManhattan
	MetricChebyshev
)

func (m Metric) String() string {
	switch m {
	case MetricL2:
		return "L2"
	case MetricManhattan:
		return "Manhattan"
	case MetricChebyshev:
		return "Chebyshev"
	default:
		return fmt.Sprintf("Unknown(%d)", m)
	}
}

// ParseMetric maps a metric name ("l2", "euclidean", "manhattan", "chebyshev")
// to a Metric.
func ParseMetric(s string) (Metric, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "l2", "euclidean":
		return MetricL2, nil
	case "l1", "manhattan":
		return MetricManhattan, nil
	case "linf", "chebyshev":
		return MetricChebyshev, nil
	default:
		return 0, fmt.Errorf("unsupported metric: %q", s)
	}
}

// Func is a function type for distance calculation.
type Func func(a, b Coord) float64

// Provider returns the distance function for the given metric.
func Provider(m Metric) (Func, error) {
	switch m {
	case MetricL2:
		return Euclidean, nil
	case MetricManhattan:
		return Manhattan, nil
	case MetricChebyshev:
		return Chebyshev, nil
	default:
		return nil, fmt.Errorf("unsupported metric: %v", m)
	}
}
