package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/butterfly/pkg/cache"
	"github.com/matzehuels/butterfly/pkg/chart"
	"github.com/matzehuels/butterfly/pkg/errors"
	"github.com/matzehuels/butterfly/pkg/httputil"
	"github.com/matzehuels/butterfly/pkg/ingest"
	"github.com/matzehuels/butterfly/pkg/observability"
	"github.com/matzehuels/butterfly/pkg/source"
)

// Runner encapsulates pipeline execution with a source cache.
// Both CLI and API use it to avoid duplicating stage wiring.
//
// The Runner is stateless except for the cache, client and logger; it
// doesn't store pipeline results. Multiple goroutines can safely use the
// same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Client *httputil.Client
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Client: httputil.NewClient(c, httputil.WithKeyer(keyer)),
		Logger: logger,
	}
}

// Execute runs the complete source → parse → layout → render pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	logger := opts.Logger

	result := &Result{}

	// Stage 1+2: Source and parse
	ds, res, stats, err := r.parse(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	result.Source = stats.source
	result.Dataset = ds
	result.Stats = stats.Stats

	logger.Info("parsed records",
		"records", len(ds.Records),
		"skipped", res.Skipped,
		"dropped", res.Dropped,
		"duration", result.Stats.ParseTime)

	// Stage 3: Layout
	layoutStart := time.Now()
	l, err := r.GenerateLayout(ctx, ds, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Layout = l
	result.Stats.LayoutTime = time.Since(layoutStart)

	logger.Info("computed layout",
		"rows", len(l.Rows),
		"domain", l.Domain,
		"duration", result.Stats.LayoutTime)

	// Stage 4: Render
	renderStart := time.Now()
	artifacts, err := r.Render(ctx, l, ds, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)

	logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Load returns the raw text the options select: inline text when set,
// otherwise the named source.
func (r *Runner) Load(ctx context.Context, opts Options) (text, name string, err error) {
	if opts.Text != "" {
		return opts.Text, "inline", nil
	}

	src, err := source.Open(opts.Input, source.Options{
		Sheet:  opts.Sheet,
		Client: r.Client,
		Stdin:  opts.Stdin,
	})
	if err != nil {
		return "", "", err
	}

	if opts.Refresh && src.Kind() == source.KindURL && r.Client != nil {
		if err := r.Client.Invalidate(ctx, opts.Input); err != nil {
			r.logger(opts).Warn("failed to invalidate cached source", "source", src.Name(), "error", err)
		}
	}

	hooks := observability.Pipeline()
	hooks.OnSourceStart(ctx, src.Name())
	start := time.Now()
	text, err = src.Read(ctx)
	hooks.OnSourceComplete(ctx, src.Name(), len(text), time.Since(start), err)
	if err != nil {
		return "", "", err
	}

	r.logger(opts).Debug("read source", "source", src.Name(), "kind", src.Kind(), "bytes", len(text))
	return text, src.Name(), nil
}

// Parse loads and ingests the input.
func (r *Runner) Parse(ctx context.Context, opts Options) (chart.Dataset, ingest.Result, error) {
	if opts.Input == "" && opts.Text == "" {
		return chart.Dataset{}, ingest.Result{}, errors.New(errors.ErrCodeInvalidInput, "input or text is required")
	}
	r.applyLogger(&opts)
	if err := opts.ValidateForParse(); err != nil {
		return chart.Dataset{}, ingest.Result{}, err
	}

	ds, res, _, err := r.parse(ctx, opts)
	return ds, res, err
}

type parseStats struct {
	Stats
	source string
}

func (r *Runner) parse(ctx context.Context, opts Options) (chart.Dataset, ingest.Result, parseStats, error) {
	var stats parseStats

	sourceStart := time.Now()
	text, name, err := r.Load(ctx, opts)
	if err != nil {
		return chart.Dataset{}, ingest.Result{}, stats, err
	}
	stats.source = name
	stats.SourceBytes = len(text)
	stats.SourceTime = time.Since(sourceStart)

	parseStart := time.Now()
	ds, res := Parse(text, opts)
	stats.ParseTime = time.Since(parseStart)
	stats.Records = len(res.Records)
	stats.Skipped = res.Skipped
	stats.Dropped = res.Dropped
	stats.Header = res.Header != nil

	observability.Pipeline().OnParseComplete(ctx, len(res.Records), res.Dropped, stats.ParseTime)
	if res.Skipped > 0 {
		r.logger(opts).Warn("skipped short rows", "rows", res.Skipped)
	}
	return ds, res, stats, nil
}

// GenerateLayout computes and exports the frame for ds.
func (r *Runner) GenerateLayout(ctx context.Context, ds chart.Dataset, opts Options) (chart.Layout, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return chart.Layout{}, err
	}
	if err := ctx.Err(); err != nil {
		return chart.Layout{}, err
	}

	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, len(ds.Records))
	start := time.Now()
	l := GenerateLayout(ds, opts)
	hooks.OnLayoutComplete(ctx, len(l.Rows), time.Since(start))
	return l, nil
}

// Render encodes the layout and dataset in the requested formats.
func (r *Runner) Render(ctx context.Context, l chart.Layout, ds chart.Dataset, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	artifacts, err := Render(l, ds, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) logger(opts Options) *log.Logger {
	if opts.Logger != nil {
		return opts.Logger
	}
	return r.Logger
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
