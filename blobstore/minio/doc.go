// Package minio provides a BlobStore implementation using the MinIO client.
//
// It works with MinIO and other S3-compatible systems (Ceph, SeaweedFS,
// Garage) without pulling in the AWS SDK.
//
// # Basic Usage
//
//	store, err := minio.Dial("localhost:9000", "clustering", minio.Options{
//	    AccessKey: "minioadmin",
//	    SecretKey: "minioadmin",
//	    Prefix:    "runs/",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	w := pointio.NewWriter(store)
//
// An existing *minio.Client can be wrapped with NewStore.
package minio
