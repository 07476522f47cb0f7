// Package expand classifies points as Core, Border or Outlier and grows
// clusters from core points over the neighbor graph.
//
// The driver walks a fixed visiting order. Every popped point leaves the
// remaining set before it is classified. A core point opens a new cluster
// and expands it; a non-core point is provisionally marked Outlier.
//
// Expansion only skips neighbors that are already Core. An Outlier from an
// earlier iteration can therefore still be absorbed as Border (or expanded
// as Core) by a later cluster, and a Border of an earlier cluster is taken
// over by the current one. Outlier is final only once the driver finishes.
//
// Expansion uses an explicit work list instead of recursion: a LIFO stack
// for depth-first order or a FIFO queue for breadth-first order. Both yield
// the same partition.
package expand
