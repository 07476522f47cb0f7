package pointio

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
	"sync"

	"github.com/hupe1980/dbscan"
	"github.com/hupe1980/dbscan/blobstore"
	"github.com/hupe1980/dbscan/codec"
	"github.com/hupe1980/dbscan/core"
	"github.com/hupe1980/dbscan/internal/compression"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// DefaultConcurrency bounds parallel artifact uploads.
const DefaultConcurrency = 4

type writerOptions struct {
	compression compression.Type
	concurrency int
	limiter     *rate.Limiter
	summary     codec.Codec
	prune       bool
	logger      *dbscan.Logger
}

// WriterOption configures a Writer.
type WriterOption func(*writerOptions)

// WithCompression compresses text artifacts. The compression suffix is
// appended to each name.
func WithCompression(t compression.Type) WriterOption {
	return func(o *writerOptions) {
		o.compression = t
	}
}

// WithConcurrency sets the number of artifacts written in parallel.
// Values below 1 fall back to DefaultConcurrency.
func WithConcurrency(n int) WriterOption {
	return func(o *writerOptions) {
		o.concurrency = n
	}
}

// WithRateLimit throttles blob writes to r per second with the given burst.
// Useful against remote stores with request quotas.
func WithRateLimit(r rate.Limit, burst int) WriterOption {
	return func(o *writerOptions) {
		o.limiter = rate.NewLimiter(r, burst)
	}
}

// WithSummary also writes the run summary encoded with c.
func WithSummary(c codec.Codec) WriterOption {
	return func(o *writerOptions) {
		o.summary = c
	}
}

// WithPrune deletes artifacts of earlier runs with the same base name that
// this run did not write (for example clusters beyond the new count).
func WithPrune(prune bool) WriterOption {
	return func(o *writerOptions) {
		o.prune = prune
	}
}

// WithWriterLogger logs each written artifact at debug level.
func WithWriterLogger(logger *dbscan.Logger) WriterOption {
	return func(o *writerOptions) {
		if logger == nil {
			logger = dbscan.NoopLogger()
		}
		o.logger = logger
	}
}

// Writer stores the artifacts of clustering runs in a BlobStore.
type Writer struct {
	store blobstore.BlobStore
	opts  writerOptions
}

// NewWriter creates a Writer on store.
func NewWriter(store blobstore.BlobStore, optFns ...WriterOption) *Writer {
	opts := writerOptions{
		concurrency: DefaultConcurrency,
		logger:      dbscan.NoopLogger(),
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.concurrency < 1 {
		opts.concurrency = DefaultConcurrency
	}
	return &Writer{store: store, opts: opts}
}

// artifact renders one blob's content.
type artifact struct {
	name  string
	write func(w *bufio.Writer) error
}

// Write stores all artifacts of res under base and returns their names in
// sorted order. On error some artifacts may already have been written.
func (w *Writer) Write(ctx context.Context, base string, res *dbscan.Result) ([]string, error) {
	arts := w.artifacts(base, res)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(w.opts.concurrency)

	var (
		mu      sync.Mutex
		written = make([]string, 0, len(arts)+1)
	)
	record := func(name string) {
		mu.Lock()
		written = append(written, name)
		mu.Unlock()
	}

	for _, a := range arts {
		g.Go(func() error {
			name, err := w.writeText(gctx, a)
			if err != nil {
				return err
			}
			record(name)
			return nil
		})
	}

	if w.opts.summary != nil {
		g.Go(func() error {
			name := SummaryName(base, w.opts.summary.Name())
			data, err := w.opts.summary.Marshal(res.Summary())
			if err != nil {
				return fmt.Errorf("pointio: encode %s: %w", name, err)
			}
			if err := w.wait(gctx); err != nil {
				return err
			}
			if err := w.store.Put(gctx, name, data); err != nil {
				return fmt.Errorf("pointio: write %s: %w", name, err)
			}
			w.opts.logger.LogArtifact(gctx, name, int64(len(data)))
			record(name)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	sort.Strings(written)

	if w.opts.prune {
		if err := w.prune(ctx, base, written); err != nil {
			return written, err
		}
	}
	return written, nil
}

func (w *Writer) artifacts(base string, res *dbscan.Result) []artifact {
	arts := []artifact{
		{name: OriginalName(base), write: func(bw *bufio.Writer) error {
			return writeXY(bw, res.Points)
		}},
		{name: CoresName(base), write: func(bw *bufio.Writer) error {
			return writeXY(bw, res.Cores())
		}},
	}
	for i, c := range res.Clusters {
		arts = append(arts,
			artifact{name: ClusterName(base, i), write: func(bw *bufio.Writer) error {
				return writeIDs(bw, c.Members)
			}},
			artifact{name: XYName(base, i), write: func(bw *bufio.Writer) error {
				return writeXY(bw, c.Members)
			}},
		)
	}
	return arts
}

func (w *Writer) wait(ctx context.Context) error {
	if w.opts.limiter == nil {
		return ctx.Err()
	}
	return w.opts.limiter.Wait(ctx)
}

// writeText streams one artifact through the compressor into a new blob.
func (w *Writer) writeText(ctx context.Context, a artifact) (string, error) {
	name := a.name + w.opts.compression.Extension()
	if err := w.wait(ctx); err != nil {
		return "", err
	}

	blob, err := w.store.Create(ctx, name)
	if err != nil {
		return "", fmt.Errorf("pointio: create %s: %w", name, err)
	}

	cw := &countingWriter{w: blob}
	n, err := func() (int64, error) {
		zw, err := compression.NewWriter(w.opts.compression, cw)
		if err != nil {
			return 0, err
		}
		bw := bufio.NewWriter(zw)
		if err := a.write(bw); err != nil {
			return 0, err
		}
		if err := bw.Flush(); err != nil {
			return 0, err
		}
		if err := zw.Close(); err != nil {
			return 0, err
		}
		return cw.n, nil
	}()
	if err != nil {
		abort(blob)
		return "", fmt.Errorf("pointio: write %s: %w", name, err)
	}
	if err := blob.Close(); err != nil {
		return "", fmt.Errorf("pointio: write %s: %w", name, err)
	}

	w.opts.logger.LogArtifact(ctx, name, n)
	return name, nil
}

func (w *Writer) prune(ctx context.Context, base string, keep []string) error {
	names, err := w.store.List(ctx, base+"_")
	if err != nil {
		return fmt.Errorf("pointio: prune %s: %w", base, err)
	}
	for _, name := range names {
		if !isArtifact(base, name) {
			continue
		}
		if i := sort.SearchStrings(keep, name); i < len(keep) && keep[i] == name {
			continue
		}
		if err := w.store.Delete(ctx, name); err != nil {
			return fmt.Errorf("pointio: prune %s: %w", name, err)
		}
	}
	return nil
}

// abort cancels an unfinished upload when the store supports it.
func abort(blob blobstore.WritableBlob) {
	if a, ok := blob.(blobstore.Aborter); ok {
		_ = a.Abort()
		return
	}
	_ = blob.Close()
}

func writeXY(bw *bufio.Writer, points []core.Point) error {
	buf := make([]byte, 0, 64)
	for _, p := range points {
		buf = strconv.AppendFloat(buf[:0], p.X, 'g', -1, 64)
		buf = append(buf, '\t')
		buf = strconv.AppendFloat(buf, p.Y, 'g', -1, 64)
		buf = append(buf, '\n')
		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}
	return nil
}

func writeIDs(bw *bufio.Writer, points []core.Point) error {
	buf := make([]byte, 0, 24)
	for _, p := range points {
		buf = strconv.AppendInt(buf[:0], p.ID, 10)
		buf = append(buf, '\n')
		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}
	return nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
