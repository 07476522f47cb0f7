package pointio

import (
	"fmt"
	"strings"
)

// BaseName returns the artifact prefix for an input path: the last path
// element (slash or backslash separated) up to its first '.'.
func BaseName(input string) string {
	name := input
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.IndexByte(name, '.'); i >= 0 {
		name = name[:i]
	}
	return name
}

// OriginalName names the all-points artifact.
func OriginalName(base string) string {
	return base + "_original.txt"
}

// CoresName names the core-points artifact.
func CoresName(base string) string {
	return base + "_cores.txt"
}

// ClusterName names the member-id artifact of reported cluster i.
func ClusterName(base string, i int) string {
	return fmt.Sprintf("%s_cluster_%d.txt", base, i)
}

// XYName names the member-coordinate artifact of reported cluster i.
func XYName(base string, i int) string {
	return fmt.Sprintf("%s_xy_%d.txt", base, i)
}

// SummaryName names the summary artifact for the codec name ext.
func SummaryName(base, ext string) string {
	return base + "_summary." + ext
}

// isArtifact reports whether name is a text artifact this package writes for
// base, ignoring any compression suffix.
func isArtifact(base, name string) bool {
	rest, ok := strings.CutPrefix(name, base+"_")
	if !ok {
		return false
	}
	for _, kind := range []string{"original.txt", "cores.txt", "cluster_", "xy_", "summary."} {
		if strings.HasPrefix(rest, kind) {
			return true
		}
	}
	return false
}
