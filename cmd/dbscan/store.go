package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/hupe1980/dbscan"
	"github.com/hupe1980/dbscan/blobstore"
	miniostore "github.com/hupe1980/dbscan/blobstore/minio"
	s3store "github.com/hupe1980/dbscan/blobstore/s3"
)

// stores pairs the blob store the input is read from with the one artifacts
// are written to. Local runs read from the input's directory and write to
// --out; remote runs use the bucket for both.
type stores struct {
	in       blobstore.BlobStore
	inName   string
	out      blobstore.BlobStore
	location string
}

func openStores(ctx context.Context, o *cliOptions, input string) (*stores, error) {
	switch o.store {
	case "", "local":
		return &stores{
			in:       blobstore.NewLocalStore(filepath.Dir(input)),
			inName:   filepath.Base(input),
			out:      blobstore.NewLocalStore(o.out),
			location: o.out,
		}, nil
	case "s3":
		if o.bucket == "" {
			return nil, &dbscan.ErrInvalidConfig{Field: "bucket", Value: o.bucket, Reason: "required for the s3 store"}
		}
		var optFns []func(*s3store.Options)
		if o.prefix != "" {
			optFns = append(optFns, s3store.WithPrefix(o.prefix))
		}
		if o.region != "" {
			optFns = append(optFns, s3store.WithRegion(o.region))
		}
		if o.endpoint != "" {
			optFns = append(optFns, s3store.WithEndpoint(o.endpoint))
		}
		st, err := s3store.New(ctx, o.bucket, optFns...)
		if err != nil {
			return nil, fmt.Errorf("s3 store: %w", err)
		}
		return &stores{in: st, inName: input, out: st, location: "s3://" + o.bucket + "/" + o.prefix}, nil
	case "minio":
		if o.bucket == "" || o.endpoint == "" {
			return nil, &dbscan.ErrInvalidConfig{Field: "bucket", Value: o.bucket, Reason: "bucket and endpoint are required for the minio store"}
		}
		st, err := miniostore.Dial(o.endpoint, o.bucket, miniostore.Options{
			Secure: o.secure,
			Region: o.region,
			Prefix: o.prefix,
		})
		if err != nil {
			return nil, fmt.Errorf("minio store: %w", err)
		}
		return &stores{in: st, inName: input, out: st, location: o.endpoint + "/" + o.bucket + "/" + o.prefix}, nil
	default:
		return nil, &dbscan.ErrInvalidConfig{Field: "store", Value: o.store, Reason: "must be local, s3 or minio"}
	}
}
