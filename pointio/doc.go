// Package pointio reads point files and writes clustering artifacts.
//
// Input is plain text with one record per line:
//
//	# id  x      y
//	0     84.77  33.36
//	1     19.81  9.85
//
// Fields are separated by any whitespace. Blank lines and lines starting
// with '#' are skipped. Inputs ending in .lz4 or .zst are decompressed.
//
// The Writer stores the artifacts of a run under the input's base name
// (directory and everything from the first '.' stripped):
//
//	<name>_original.txt     x<TAB>y per point, load order
//	<name>_cores.txt        x<TAB>y per core point
//	<name>_cluster_<i>.txt  member ids of reported cluster i
//	<name>_xy_<i>.txt       member x<TAB>y of reported cluster i
//	<name>_summary.json     optional run summary
package pointio
