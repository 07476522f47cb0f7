// Package reconcile merges the smallest clusters into their nearest
// surviving neighbor until the cluster count matches a target.
//
// The merge set is chosen by size alone: the smallest eligible cluster is
// eliminated, repeatedly, with the lowest id winning ties. Each eliminated
// cluster is then folded, in id order, into the surviving cluster whose
// centroid is nearest at a non-zero distance. Centroids are computed once,
// before any merge.
package reconcile
