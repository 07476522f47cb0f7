// Package neighbor builds the eps-neighborhood of every point by exhaustive
// pairwise distance evaluation.
//
// A point is always a member of its own neighborhood (its distance to itself
// is 0), so a neighborhood is never empty. Each unordered pair is evaluated
// once and recorded on both sides, which keeps the neighbor relation
// symmetric regardless of floating-point rounding in the distance function.
package neighbor
