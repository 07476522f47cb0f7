package main

import (
	"io"
	"log/slog"
	"strings"

	"github.com/hupe1980/dbscan"
)

func newLogger(w io.Writer, level, format string) (*dbscan.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, &dbscan.ErrInvalidConfig{Field: "log-level", Value: level, Reason: "must be debug, info, warn or error"}
	}

	opts := &slog.HandlerOptions{Level: lvl}
	switch strings.ToLower(format) {
	case "", "text":
		return dbscan.NewLogger(slog.NewTextHandler(w, opts)), nil
	case "json":
		return dbscan.NewLogger(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, &dbscan.ErrInvalidConfig{Field: "log-format", Value: format, Reason: "must be text or json"}
	}
}
