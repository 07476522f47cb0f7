package pointio

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/hupe1980/dbscan/blobstore"
	"github.com/hupe1980/dbscan/core"
	"github.com/hupe1980/dbscan/internal/compression"
)

// ParseError reports a malformed input line.
type ParseError struct {
	Name   string
	Line   int
	Text   string
	Reason string
}

func (e *ParseError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("pointio: %s:%d: %s: %q", e.Name, e.Line, e.Reason, e.Text)
	}
	return fmt.Sprintf("pointio: line %d: %s: %q", e.Line, e.Reason, e.Text)
}

const maxLineSize = 1 << 20

// ReadRecords parses id/x/y records from r in input order.
func ReadRecords(r io.Reader) ([]core.Record, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var recs []core.Record
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		rec, reason := parseRecord(text)
		if reason != "" {
			return nil, &ParseError{Line: line, Text: text, Reason: reason}
		}
		if uint64(len(recs)) > uint64(core.MaxPointID) {
			return nil, &ParseError{Line: line, Text: text, Reason: "too many points"}
		}
		recs = append(recs, rec)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return recs, nil
}

func parseRecord(text string) (core.Record, string) {
	fields := strings.Fields(text)
	if len(fields) != 3 {
		return core.Record{}, fmt.Sprintf("expected 3 fields, got %d", len(fields))
	}

	id, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil {
		return core.Record{}, "invalid id"
	}
	x, err := strconv.ParseFloat(fields[1], 64)
	if err != nil || math.IsNaN(x) || math.IsInf(x, 0) {
		return core.Record{}, "invalid x coordinate"
	}
	y, err := strconv.ParseFloat(fields[2], 64)
	if err != nil || math.IsNaN(y) || math.IsInf(y, 0) {
		return core.Record{}, "invalid y coordinate"
	}
	return core.Record{ID: id, X: x, Y: y}, ""
}

// ReadBlob reads and parses a point file from store. Names ending in .lz4
// or .zst are decompressed first.
func ReadBlob(ctx context.Context, store blobstore.BlobStore, name string) ([]core.Record, error) {
	blob, err := store.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer func() { _ = blob.Close() }()

	data, err := blobstore.ReadAll(ctx, blob)
	if err != nil {
		return nil, err
	}

	rc, err := compression.NewReader(compression.Detect(name), bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()

	recs, err := ReadRecords(rc)
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			pe.Name = name
		}
		return nil, err
	}
	return recs, nil
}
