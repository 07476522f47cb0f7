// Package pointstore holds the per-run point arena: immutable coordinates,
// the neighbor set computed once by the neighbor index, and the mutable
// classification and cluster assignment written by expansion and
// reconciliation.
//
// Points are addressed by core.PointID (arena index). The store never hands
// out references to individual points; callers read and write through ids.
package pointstore
