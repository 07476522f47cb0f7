package main

import (
	"fmt"
	"strconv"

	"github.com/hupe1980/dbscan"
	"github.com/hupe1980/dbscan/codec"
	"github.com/hupe1980/dbscan/internal/compression"
	"github.com/hupe1980/dbscan/pointio"
	"github.com/hupe1980/dbscan/promcollector"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"
)

// cliOptions holds the parsed flags.
type cliOptions struct {
	configPath    string
	seed          int64
	traversal     string
	metric        string
	out           string
	store         string
	bucket        string
	prefix        string
	endpoint      string
	region        string
	secure        bool
	compression   string
	summary       bool
	summaryFormat string
	prune         bool
	concurrency   int
	rateLimit     float64
	logLevel      string
	logFormat     string
	metrics       bool
}

func newRootCmd() *cobra.Command {
	var o cliOptions

	cmd := &cobra.Command{
		Use:   "dbscan <input> [n] [eps] [minpts]",
		Short: "Density-based clustering of 2-D points",
		Long: `dbscan reads "id x y" records, clusters them with DBSCAN and merges the
smallest clusters until n remain. Artifacts are written next to each other
under the input's base name: <name>_original.txt, <name>_cores.txt and
<name>_cluster_<i>.txt / <name>_xy_<i>.txt per reported cluster.

n, eps and minpts may come from --config instead of the command line;
arguments and flags override the file.`,
		Args:          cobra.RangeArgs(1, 4),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, &o)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&o.configPath, "config", "c", "", "YAML configuration file")
	f.Int64Var(&o.seed, "seed", 0, "visiting-order seed (default 1)")
	f.StringVar(&o.traversal, "traversal", "", "cluster expansion order: dfs or bfs (default dfs)")
	f.StringVar(&o.metric, "metric", "", "distance: l2, manhattan or chebyshev (default l2)")
	f.StringVarP(&o.out, "out", "o", "./data/output", "output directory (local store)")
	f.StringVar(&o.store, "store", "local", "blob store: local, s3 or minio")
	f.StringVar(&o.bucket, "bucket", "", "bucket for s3/minio stores")
	f.StringVar(&o.prefix, "prefix", "", "key prefix for s3/minio stores")
	f.StringVar(&o.endpoint, "endpoint", "", "endpoint for minio or S3-compatible stores")
	f.StringVar(&o.region, "region", "", "AWS region for the s3 store")
	f.BoolVar(&o.secure, "secure", false, "use HTTPS for the minio store")
	f.StringVar(&o.compression, "compression", "none", "artifact compression: none, lz4 or zstd")
	f.BoolVar(&o.summary, "summary", false, "also write a run summary")
	f.StringVar(&o.summaryFormat, "summary-format", "json", "summary encoding: json or yaml")
	f.BoolVar(&o.prune, "prune", false, "delete artifacts of earlier runs that this run did not write")
	f.IntVar(&o.concurrency, "concurrency", pointio.DefaultConcurrency, "parallel artifact uploads")
	f.Float64Var(&o.rateLimit, "rate-limit", 0, "max blob writes per second (0 = unlimited)")
	f.StringVar(&o.logLevel, "log-level", "info", "log level: debug, info, warn or error")
	f.StringVar(&o.logFormat, "log-format", "text", "log format: text or json")
	f.BoolVar(&o.metrics, "metrics", false, "print Prometheus metrics to stderr after the run")

	return cmd
}

func run(cmd *cobra.Command, args []string, o *cliOptions) error {
	ctx := cmd.Context()

	logger, err := newLogger(cmd.ErrOrStderr(), o.logLevel, o.logFormat)
	if err != nil {
		return err
	}

	cfg, engineOpts, err := resolveConfig(cmd, args, o)
	if err != nil {
		return err
	}

	var reg *prometheus.Registry
	if o.metrics {
		reg = prometheus.NewRegistry()
		engineOpts = append(engineOpts, dbscan.WithMetricsCollector(promcollector.New(reg)))
	}

	writerOpts, err := resolveWriter(o)
	if err != nil {
		return err
	}

	input := args[0]
	base := pointio.BaseName(input)
	log := logger.WithInput(input)

	stores, err := openStores(ctx, o, input)
	if err != nil {
		return err
	}

	records, err := pointio.ReadBlob(ctx, stores.in, stores.inName)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	log.WithCount(len(records)).InfoContext(ctx, "input loaded")

	eng, err := dbscan.New(cfg, append(engineOpts, dbscan.WithLogger(log))...)
	if err != nil {
		return err
	}
	res, err := eng.Cluster(ctx, records)
	if err != nil {
		return err
	}

	writerOpts = append(writerOpts, pointio.WithWriterLogger(log))
	names, err := pointio.NewWriter(stores.out, writerOpts...).Write(ctx, base, res)
	if err != nil {
		return err
	}
	log.InfoContext(ctx, "artifacts written", "location", stores.location, "count", len(names))

	w := cmd.OutOrStdout()
	for _, name := range names {
		fmt.Fprintln(w, name)
	}

	if reg != nil {
		return dumpMetrics(cmd.ErrOrStderr(), reg)
	}
	return nil
}

// resolveConfig merges the config file, positional arguments and flags.
func resolveConfig(cmd *cobra.Command, args []string, o *cliOptions) (dbscan.Config, []dbscan.Option, error) {
	fc := &dbscan.FileConfig{}
	if o.configPath != "" {
		loaded, err := dbscan.LoadConfig(o.configPath)
		if err != nil {
			return dbscan.Config{}, nil, fmt.Errorf("load config: %w", err)
		}
		fc = loaded
	}

	if len(args) > 1 {
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return dbscan.Config{}, nil, &dbscan.ErrInvalidConfig{Field: "target_cluster_count", Value: args[1], Reason: "not an integer"}
		}
		fc.TargetClusterCount = n
	}
	if len(args) > 2 {
		eps, err := strconv.ParseFloat(args[2], 64)
		if err != nil {
			return dbscan.Config{}, nil, &dbscan.ErrInvalidConfig{Field: "eps", Value: args[2], Reason: "not a number"}
		}
		fc.Eps = eps
	}
	if len(args) > 3 {
		minPts, err := strconv.Atoi(args[3])
		if err != nil {
			return dbscan.Config{}, nil, &dbscan.ErrInvalidConfig{Field: "min_points", Value: args[3], Reason: "not an integer"}
		}
		fc.MinPoints = minPts
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		fc.Seed = &o.seed
	}
	if flags.Changed("traversal") {
		fc.Traversal = o.traversal
	}
	if flags.Changed("metric") {
		fc.Metric = o.metric
	}

	if err := fc.Validate(); err != nil {
		return dbscan.Config{}, nil, err
	}
	opts, err := fc.Options()
	if err != nil {
		return dbscan.Config{}, nil, err
	}
	return fc.Config, opts, nil
}

func resolveWriter(o *cliOptions) ([]pointio.WriterOption, error) {
	ct, err := compression.Parse(o.compression)
	if err != nil {
		return nil, &dbscan.ErrInvalidConfig{Field: "compression", Value: o.compression, Reason: err.Error()}
	}

	opts := []pointio.WriterOption{
		pointio.WithCompression(ct),
		pointio.WithConcurrency(o.concurrency),
		pointio.WithPrune(o.prune),
	}
	if o.summary {
		c, ok := codec.ByName(o.summaryFormat)
		if !ok {
			return nil, &dbscan.ErrInvalidConfig{Field: "summary-format", Value: o.summaryFormat, Reason: "must be json or yaml"}
		}
		opts = append(opts, pointio.WithSummary(c))
	}
	if o.rateLimit > 0 {
		burst := max(1, int(o.rateLimit))
		opts = append(opts, pointio.WithRateLimit(rate.Limit(o.rateLimit), burst))
	}
	return opts, nil
}

