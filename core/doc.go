// Package core defines the identifiers and value types shared by the
// clustering engine and its I/O shell.
package core
