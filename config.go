package dbscan

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/hupe1980/dbscan/distance"
	"gopkg.in/yaml.v3"
)

// Config holds the clustering parameters. It is read-only once an Engine is
// created.
type Config struct {
	// Eps is the reachability radius: points at distance <= Eps are neighbors.
	Eps float64 `yaml:"eps" json:"eps" validate:"gt=0"`

	// MinPoints is the neighbor count (self included) a point needs to be Core.
	MinPoints int `yaml:"min_points" json:"min_points" validate:"gte=1"`

	// TargetClusterCount is the number of clusters to reconcile down to.
	// Runs producing fewer clusters are left untouched.
	TargetClusterCount int `yaml:"target_cluster_count" json:"target_cluster_count" validate:"gte=1"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks the configuration and returns an *ErrInvalidConfig for
// the first offending field.
func (c Config) Validate() error {
	if math.IsNaN(c.Eps) || math.IsInf(c.Eps, 0) {
		return &ErrInvalidConfig{Field: "eps", Value: c.Eps, Reason: "must be a finite positive number"}
	}

	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return &ErrInvalidConfig{
			Field:  fe.Field(),
			Value:  fe.Value(),
			Reason: fmt.Sprintf("must satisfy %s=%s", fe.Tag(), fe.Param()),
			cause:  err,
		}
	}
	return &ErrInvalidConfig{Field: "config", Value: c, Reason: err.Error(), cause: err}
}

// FileConfig is the YAML configuration file layout: the clustering
// parameters plus run options.
//
//	eps: 15
//	min_points: 22
//	target_cluster_count: 8
//	seed: 42
//	traversal: bfs
//	metric: l2
type FileConfig struct {
	Config    `yaml:",inline"`
	Seed      *int64 `yaml:"seed,omitempty"`
	Traversal string `yaml:"traversal,omitempty"`
	Metric    string `yaml:"metric,omitempty"`
}

// LoadConfig reads a YAML configuration file. The clustering parameters are
// not validated here; New validates them once flags and file are merged.
func LoadConfig(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseConfig(data)
}

// ParseConfig decodes a YAML configuration document. Unknown keys are rejected.
func ParseConfig(data []byte) (*FileConfig, error) {
	var fc FileConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil {
		if errors.Is(err, io.EOF) {
			return &fc, nil
		}
		return nil, &ErrInvalidConfig{Field: "file", Value: "yaml", Reason: err.Error(), cause: err}
	}
	return &fc, nil
}

// Options converts the file's run settings into engine options.
func (fc *FileConfig) Options() ([]Option, error) {
	var opts []Option
	if fc.Seed != nil {
		opts = append(opts, WithRandomSeed(*fc.Seed))
	}
	if fc.Traversal != "" {
		t, err := ParseTraversal(fc.Traversal)
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithTraversal(t))
	}
	if fc.Metric != "" {
		m, err := distance.ParseMetric(fc.Metric)
		if err != nil {
			return nil, &ErrInvalidConfig{Field: "metric", Value: fc.Metric, Reason: "unknown metric", cause: err}
		}
		opts = append(opts, WithMetric(m))
	}
	return opts, nil
}
