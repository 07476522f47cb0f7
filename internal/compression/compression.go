// Package compression wraps artifact streams in LZ4 or Zstandard frames.
//
// Frames are the standard container formats, so compressed artifacts can be
// inspected with the lz4 and zstd command line tools.
package compression

import (
	"bytes"
	"fmt"
	"io"
	"path"
	"strings"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Type defines the compression algorithm used.
type Type uint8

const (
	// None writes artifacts as plain text.
	None Type = iota
	// LZ4 favors speed.
	LZ4
	// ZSTD favors ratio.
	ZSTD
)

// String returns the flag name of the type.
func (t Type) String() string {
	switch t {
	case None:
		return "none"
	case LZ4:
		return "lz4"
	case ZSTD:
		return "zstd"
	default:
		return fmt.Sprintf("Unknown(%d)", t)
	}
}

// Extension returns the file suffix for the type, including the dot.
func (t Type) Extension() string {
	switch t {
	case LZ4:
		return ".lz4"
	case ZSTD:
		return ".zst"
	default:
		return ""
	}
}

// Parse maps a flag value to a Type.
func Parse(s string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return None, nil
	case "lz4":
		return LZ4, nil
	case "zstd", "zst":
		return ZSTD, nil
	default:
		return None, fmt.Errorf("compression: unknown type %q", s)
	}
}

// Detect infers the type from a file name's extension.
func Detect(name string) Type {
	switch path.Ext(name) {
	case ".lz4":
		return LZ4
	case ".zst", ".zstd":
		return ZSTD
	default:
		return None
	}
}

var zstdEncoderPool sync.Pool

func getZstdEncoder() *zstd.Encoder {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder)
	}
	enc, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	return enc
}

func putZstdEncoder(enc *zstd.Encoder) {
	zstdEncoderPool.Put(enc)
}

// Compress returns data wrapped in a frame of type t. None returns data
// unchanged.
func Compress(t Type, data []byte) ([]byte, error) {
	switch t {
	case None:
		return data, nil
	case ZSTD:
		enc := getZstdEncoder()
		defer putZstdEncoder(enc)
		return enc.EncodeAll(data, make([]byte, 0, len(data)/2)), nil
	case LZ4:
		var buf bytes.Buffer
		zw := lz4.NewWriter(&buf)
		if _, err := zw.Write(data); err != nil {
			return nil, err
		}
		if err := zw.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("compression: unknown type %d", t)
	}
}

// NewWriter returns a writer that compresses into w. Closing it flushes the
// frame but does not close w.
func NewWriter(t Type, w io.Writer) (io.WriteCloser, error) {
	switch t {
	case None:
		return nopCloser{w}, nil
	case LZ4:
		return lz4.NewWriter(w), nil
	case ZSTD:
		return zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	default:
		return nil, fmt.Errorf("compression: unknown type %d", t)
	}
}

// NewReader returns a reader that decompresses r.
func NewReader(t Type, r io.Reader) (io.ReadCloser, error) {
	switch t {
	case None:
		return io.NopCloser(r), nil
	case LZ4:
		return io.NopCloser(lz4.NewReader(r)), nil
	case ZSTD:
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		return dec.IOReadCloser(), nil
	default:
		return nil, fmt.Errorf("compression: unknown type %d", t)
	}
}

// Decompress reverses Compress.
func Decompress(t Type, data []byte) ([]byte, error) {
	if t == None {
		return data, nil
	}
	rc, err := NewReader(t, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
