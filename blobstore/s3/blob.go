package s3

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// object is an S3 object whose size is known from HeadObject. Reads are
// ranged GETs.
type object struct {
	client Client
	bucket string
	key    string
	size   int64
}

func (o *object) Size() int64 { return o.size }

func (o *object) Close() error { return nil }

// ReadRange issues a GET for bytes [off, off+length), clipped to the object.
func (o *object) ReadRange(ctx context.Context, off, length int64) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if off < 0 || off >= o.size {
		return nil, io.EOF
	}
	last := min(off+length, o.size) - 1

	out, err := o.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(o.bucket),
		Key:    aws.String(o.key),
		Range:  aws.String(fmt.Sprintf("bytes=%d-%d", off, last)),
	})
	if err != nil {
		return nil, fmt.Errorf("s3: get %s: %w", o.key, err)
	}
	return out.Body, nil
}
