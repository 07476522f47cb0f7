package blobstore

import (
	"bytes"
	"context"
	"io"
	"sort"
	"strings"
	"sync"
)

// MemoryStore is an in-memory BlobStore. It backs tests and dry runs.
// Thread-safe for concurrent reads and writes.
type MemoryStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

// NewMemoryStore creates a new in-memory blob store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		blobs: make(map[string][]byte),
	}
}

// Open opens a blob for reading. The blob holds a snapshot of the data.
func (m *MemoryStore) Open(ctx context.Context, name string) (Blob, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.blobs[name]
	if !ok {
		return nil, ErrNotFound
	}
	return &memoryBlob{data: data}, nil
}

// Create creates a new writable blob.
func (m *MemoryStore) Create(ctx context.Context, name string) (WritableBlob, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &memoryWritableBlob{store: m, name: name}, nil
}

// Put stores a copy of data.
func (m *MemoryStore) Put(ctx context.Context, name string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.store(name, bytes.Clone(data))
	return nil
}

// Delete removes a blob.
func (m *MemoryStore) Delete(_ context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.blobs, name)
	return nil
}

// List returns all blobs matching the prefix in sorted order.
func (m *MemoryStore) List(_ context.Context, prefix string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var names []string
	for name := range m.blobs {
		if strings.HasPrefix(name, prefix) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

// Bytes returns a copy of a stored blob, or nil if it does not exist.
func (m *MemoryStore) Bytes(name string) []byte {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return bytes.Clone(m.blobs[name])
}

// Len returns the number of stored blobs.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.blobs)
}

// store replaces the stored slice; slices are never mutated after this.
func (m *MemoryStore) store(name string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.blobs[name] = data
}

type memoryBlob struct {
	data []byte
}

func (b *memoryBlob) ReadRange(ctx context.Context, off, length int64) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if off < 0 || off >= int64(len(b.data)) {
		return nil, io.EOF
	}
	end := off + length
	if end > int64(len(b.data)) {
		end = int64(len(b.data))
	}
	return io.NopCloser(bytes.NewReader(b.data[off:end])), nil
}

func (b *memoryBlob) Close() error {
	return nil
}

func (b *memoryBlob) Size() int64 {
	return int64(len(b.data))
}

type memoryWritableBlob struct {
	store  *MemoryStore
	name   string
	buf    bytes.Buffer
	closed bool
}

func (w *memoryWritableBlob) Write(p []byte) (int, error) {
	if w.closed {
		return 0, io.ErrClosedPipe
	}
	return w.buf.Write(p)
}

func (w *memoryWritableBlob) Close() error {
	if w.closed {
		return io.ErrClosedPipe
	}
	w.closed = true
	w.store.store(w.name, bytes.Clone(w.buf.Bytes()))
	return nil
}

// Abort discards the buffered data.
func (w *memoryWritableBlob) Abort() error {
	w.closed = true
	w.buf.Reset()
	return nil
}

func (w *memoryWritableBlob) Sync() error {
	return nil
}
