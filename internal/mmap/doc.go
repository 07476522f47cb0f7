// Package mmap maps input files read-only into memory.
//
// The local blob store opens point files through this package so the
// parser can scan them without copying through kernel buffers:
//
//	m, err := mmap.Open("points.txt")
//	if err != nil { ... }
//	defer m.Close()
//
//	_ = m.Advise(mmap.AccessSequential)
//	data := m.Bytes()
//
// Unix platforms use mmap(2) and madvise(2). On Windows the file is mapped
// with CreateFileMapping/MapViewOfFile and Advise is a no-op.
//
// Close is idempotent. Callers must not touch the slice returned by Bytes
// after Close returns.
package mmap
