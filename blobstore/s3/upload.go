package s3

import (
	"context"
	"io"
	"sync"
	"sync/atomic"

	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// UploadConfig tunes streaming uploads through the multipart manager.
type UploadConfig struct {
	// PartSize is the multipart part size in bytes. Zero keeps the manager
	// default.
	PartSize int64
	// Concurrency is the number of parts in flight. Zero keeps the manager
	// default.
	Concurrency int
	// EnableChecksum requests CRC32C checksums on every object.
	EnableChecksum bool
}

// DefaultUploadConfig uses 8 MiB parts, 5 parts in flight and CRC32C.
func DefaultUploadConfig() UploadConfig {
	return UploadConfig{
		PartSize:       8 << 20,
		Concurrency:    5,
		EnableChecksum: true,
	}
}

func newUploader(client Client, cfg UploadConfig) *manager.Uploader {
	return manager.NewUploader(client, func(u *manager.Uploader) {
		if cfg.PartSize > 0 {
			u.PartSize = cfg.PartSize
		}
		if cfg.Concurrency > 0 {
			u.Concurrency = cfg.Concurrency
		}
	})
}

// upload feeds a background manager upload through a pipe. The object exists
// once Close returns nil. Abort cancels the upload context, which makes the
// manager discard parts already sent.
type upload struct {
	pw     *io.PipeWriter
	cancel context.CancelFunc
	result chan error

	done atomic.Bool
	once sync.Once
	err  error
}

func startUpload(ctx context.Context, uploader *manager.Uploader, input *s3.PutObjectInput) *upload {
	ctx, cancel := context.WithCancel(ctx)
	pr, pw := io.Pipe()
	input.Body = pr

	u := &upload{pw: pw, cancel: cancel, result: make(chan error, 1)}
	go func() {
		_, err := uploader.Upload(ctx, input)
		// Unblocks a writer stuck on a failed upload.
		_ = pr.CloseWithError(err)
		u.result <- err
	}()
	return u
}

func (u *upload) Write(p []byte) (int, error) {
	if u.done.Load() {
		return 0, io.ErrClosedPipe
	}
	return u.pw.Write(p)
}

// Close ends the body and waits for the upload. Later calls return the same
// error.
func (u *upload) Close() error {
	u.finish(func() error {
		_ = u.pw.Close()
		err := <-u.result
		u.cancel()
		return err
	})
	return u.err
}

// Abort drops the upload without creating the object.
func (u *upload) Abort() error {
	u.finish(func() error {
		u.cancel()
		_ = u.pw.CloseWithError(context.Canceled)
		<-u.result
		return context.Canceled
	})
	return nil
}

func (u *upload) finish(fn func() error) {
	u.once.Do(func() {
		u.done.Store(true)
		u.err = fn()
	})
}

// Sync is a no-op; data is committed on Close.
func (u *upload) Sync() error { return nil }
