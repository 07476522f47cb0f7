// Package blobstore abstracts where point files are read from and where
// clustering artifacts are written to.
//
// # Built-in Implementations
//
//   - LocalStore: local filesystem; reads are memory-mapped, writes go
//     through a temporary file that is renamed into place
//   - MemoryStore: in-memory, for tests
//   - s3.Store: Amazon S3 with range reads and multipart uploads
//   - minio.Store: MinIO and other S3-compatible services
//
// # Custom Implementations
//
//	type BlobStore interface {
//	    Open(ctx, name) (Blob, error)
//	    Create(ctx, name) (WritableBlob, error)
//	    Put(ctx, name, data) error
//	    Delete(ctx, name) error
//	    List(ctx, prefix) ([]string, error)
//	}
//
// Blobs that can expose their contents without copying implement Mappable;
// ReadAll uses it when available and falls back to ReadRange otherwise.
package blobstore
