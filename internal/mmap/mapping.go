package mmap

import (
	"errors"
	"os"
	"sync/atomic"
)

// AccessPattern is a hint to the kernel about how mapped data is read.
type AccessPattern int

const (
	// AccessDefault gives no specific advice.
	AccessDefault AccessPattern = iota
	// AccessSequential expects a front-to-back scan (line parsing).
	AccessSequential
	// AccessRandom expects scattered reads.
	AccessRandom
	// AccessWillNeed asks the kernel to prefetch.
	AccessWillNeed
	// AccessDontNeed releases cached pages.
	AccessDontNeed
)

var (
	// ErrClosed is returned when a closed mapping is accessed.
	ErrClosed = errors.New("mmap: mapping is closed")
	// ErrInvalidSize is returned for files whose size cannot be mapped.
	ErrInvalidSize = errors.New("mmap: invalid file size")
)

// Mapping is a read-only memory-mapped file. Empty files map to a nil slice.
type Mapping struct {
	data   []byte
	closed atomic.Bool
	unmap  func([]byte) error
}

// Open maps the file at path read-only. The file descriptor is closed
// before Open returns; the mapping stays valid until Close.
func Open(path string) (*Mapping, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, err
	}

	size := fi.Size()
	if size < 0 || int64(int(size)) != size {
		return nil, ErrInvalidSize
	}
	if size == 0 {
		return &Mapping{}, nil
	}

	data, unmap, err := osMap(f, int(size))
	if err != nil {
		return nil, err
	}
	return &Mapping{data: data, unmap: unmap}, nil
}

// Bytes returns the mapped contents, or nil once the mapping is closed.
func (m *Mapping) Bytes() []byte {
	if m.closed.Load() {
		return nil
	}
	return m.data
}

// Len returns the mapped size in bytes.
func (m *Mapping) Len() int {
	return len(m.data)
}

// Advise passes an access hint to the kernel.
func (m *Mapping) Advise(pattern AccessPattern) error {
	if m.closed.Load() {
		return ErrClosed
	}
	if len(m.data) == 0 {
		return nil
	}
	return osAdvise(m.data, pattern)
}

// Close unmaps the file.
func (m *Mapping) Close() error {
	if m.closed.Swap(true) {
		return nil
	}
	if m.unmap == nil || m.data == nil {
		return nil
	}
	return m.unmap(m.data)
}
