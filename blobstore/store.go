package blobstore

import (
	"context"
	"io"
	"os"
)

// ErrNotFound is returned when a blob does not exist.
//
// Implementations return an error that satisfies errors.Is(err, ErrNotFound).
// It maps to os.ErrNotExist.
var ErrNotFound = os.ErrNotExist

// BlobStore stores point files and clustering artifacts.
// Implementations must be safe for concurrent use.
type BlobStore interface {
	// Open opens a blob for reading.
	Open(ctx context.Context, name string) (Blob, error)
	// Create creates a blob for streaming writes. The blob becomes visible
	// when the returned writer is closed.
	Create(ctx context.Context, name string) (WritableBlob, error)
	// Put writes a blob in one call.
	Put(ctx context.Context, name string, data []byte) error
	// Delete removes a blob. Deleting a missing blob is not an error.
	Delete(ctx context.Context, name string) error
	// List returns the sorted names of all blobs starting with prefix.
	List(ctx context.Context, prefix string) ([]string, error)
}

// Blob is a read-only handle to a stored blob.
type Blob interface {
	io.Closer
	// ReadRange returns a reader for length bytes starting at off.
	ReadRange(ctx context.Context, off, length int64) (io.ReadCloser, error)
	// Size returns the size of the blob in bytes.
	Size() int64
}

// WritableBlob is a blob being written.
type WritableBlob interface {
	io.WriteCloser
	// Sync flushes buffered data where the backend supports it.
	Sync() error
}

// Aborter is implemented by writable blobs that can discard an unfinished
// write instead of committing it.
type Aborter interface {
	Abort() error
}

// Mappable is implemented by blobs whose contents are directly addressable.
type Mappable interface {
	// Bytes returns the blob contents. The slice is valid until the blob is
	// closed.
	Bytes() ([]byte, error)
}

// ReadAll returns a copy of the whole blob.
func ReadAll(ctx context.Context, b Blob) ([]byte, error) {
	if m, ok := b.(Mappable); ok {
		data, err := m.Bytes()
		if err != nil {
			return nil, err
		}
		out := make([]byte, len(data))
		copy(out, data)
		return out, nil
	}

	if b.Size() == 0 {
		return []byte{}, nil
	}
	rc, err := b.ReadRange(ctx, 0, b.Size())
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()

	return io.ReadAll(rc)
}
