package s3

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"hash/crc32"
	"path"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/hupe1980/dbscan/blobstore"
)

// Store implements blobstore.BlobStore for S3.
type Store struct {
	client   Client
	bucket   string
	prefix   string
	upload   UploadConfig
	uploader *manager.Uploader
}

// Options configures New.
type Options struct {
	// Prefix is prepended to all keys (e.g. "runs/").
	Prefix string
	// Region overrides the region from the shared AWS configuration.
	Region string
	// Endpoint points the client at an S3-compatible service.
	Endpoint string
	// UsePathStyle forces path-style addressing (needed by most
	// S3-compatible services).
	UsePathStyle bool
	// Upload tunes streaming uploads.
	Upload UploadConfig
}

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) func(*Options) {
	return func(o *Options) { o.Prefix = prefix }
}

// WithRegion sets the AWS region.
func WithRegion(region string) func(*Options) {
	return func(o *Options) { o.Region = region }
}

// WithEndpoint sets a custom endpoint and enables path-style addressing.
func WithEndpoint(endpoint string) func(*Options) {
	return func(o *Options) {
		o.Endpoint = endpoint
		o.UsePathStyle = true
	}
}

// WithUploadConfig sets the upload tuning.
func WithUploadConfig(cfg UploadConfig) func(*Options) {
	return func(o *Options) { o.Upload = cfg }
}

// New loads the default AWS configuration (environment, shared config
// files, instance roles) and creates a Store for bucket.
func New(ctx context.Context, bucket string, optFns ...func(*Options)) (*Store, error) {
	opts := Options{Upload: DefaultUploadConfig()}
	for _, fn := range optFns {
		fn(&opts)
	}

	var loadOpts []func(*config.LoadOptions) error
	if opts.Region != "" {
		loadOpts = append(loadOpts, config.WithRegion(opts.Region))
	}
	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
		}
		o.UsePathStyle = opts.UsePathStyle
	})

	return NewStore(client, bucket, opts.Prefix, WithUploadConfig(opts.Upload)), nil
}

// NewStore creates a Store on an existing client.
// rootPrefix is prepended to all keys (e.g. "runs/").
func NewStore(client Client, bucket, rootPrefix string, optFns ...func(*Options)) *Store {
	opts := Options{Upload: DefaultUploadConfig()}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Store{
		client:   client,
		bucket:   bucket,
		prefix:   rootPrefix,
		upload:   opts.Upload,
		uploader: newUploader(client, opts.Upload),
	}
}

func (s *Store) key(name string) string {
	return path.Join(s.prefix, name)
}

// Open checks that the object exists and returns a range-reading handle.
func (s *Store) Open(ctx context.Context, name string) (blobstore.Blob, error) {
	key := s.key(name)
	head, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var nf *types.NotFound
		if errors.As(err, &nf) {
			return nil, blobstore.ErrNotFound
		}
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return nil, blobstore.ErrNotFound
		}
		return nil, err
	}

	return &object{
		client: s.client,
		bucket: s.bucket,
		key:    key,
		size:   aws.ToInt64(head.ContentLength),
	}, nil
}

// Create starts a streaming upload. The object is committed on Close.
func (s *Store) Create(ctx context.Context, name string) (blobstore.WritableBlob, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(name)),
	}
	if s.upload.EnableChecksum {
		input.ChecksumAlgorithm = types.ChecksumAlgorithmCrc32c
	}
	return startUpload(ctx, s.uploader, input), nil
}

// Put uploads a small object in a single request.
func (s *Store) Put(ctx context.Context, name string, data []byte) error {
	input := &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(s.key(name)),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
	}
	if s.upload.EnableChecksum {
		input.ChecksumCRC32C = aws.String(computeCRC32C(data))
	}
	_, err := s.client.PutObject(ctx, input)
	return err
}

// Delete removes an object. S3 reports success for missing keys.
func (s *Store) Delete(ctx context.Context, name string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(name)),
	})
	return err
}

// List returns the names (relative to the store prefix) of all objects
// starting with prefix.
func (s *Store) List(ctx context.Context, prefix string) ([]string, error) {
	fullPrefix := s.key(prefix)
	if strings.HasSuffix(prefix, "/") {
		fullPrefix += "/"
	}

	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(fullPrefix),
	})

	var keys []string
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, obj := range page.Contents {
			rel := strings.TrimPrefix(aws.ToString(obj.Key), s.prefix)
			rel = strings.TrimPrefix(rel, "/")
			if rel != "" {
				keys = append(keys, rel)
			}
		}
	}
	sort.Strings(keys)
	return keys, nil
}

var crc32cTable = crc32.MakeTable(crc32.Castagnoli)

// computeCRC32C returns the CRC32C checksum of data in the base64
// big-endian form S3 expects.
func computeCRC32C(data []byte) string {
	sum := crc32.Checksum(data, crc32cTable)
	b := []byte{byte(sum >> 24), byte(sum >> 16), byte(sum >> 8), byte(sum)}
	return base64.StdEncoding.EncodeToString(b)
}
