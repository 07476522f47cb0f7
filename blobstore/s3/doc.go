// Package s3 provides an S3 implementation of the blobstore.BlobStore interface.
//
// # Usage
//
//	store, err := s3.New(ctx, "my-bucket",
//	    s3.WithPrefix("runs/2024-06-01/"),
//	    s3.WithRegion("eu-central-1"),
//	)
//
//	recs, err := pointio.ReadBlob(ctx, store, "points.txt")
//
// # Features
//
//   - Range reads for partial fetches
//   - Multipart uploads with CRC32C checksums for streaming writes
//   - Automatic pagination for listing
//   - Custom endpoints for S3-compatible services
package s3
