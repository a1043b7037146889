// Package pipeline runs the butterfly pipeline for the CLI and the HTTP API.
//
// This package implements the complete source → parse → layout → render
// pipeline. Centralizing it keeps every entry point on the same defaults
// and the same validation rules.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Source: Read raw text from a file, stdin, a workbook, or a URL
//  2. Parse: Ingest the text into a [chart.Dataset]
//  3. Layout: Compute frame geometry and export a [chart.Layout]
//  4. Render: Encode the layout or dataset (JSON, YAML, CSV, table)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Input:   "sales.csv",
//	    Formats: []string{"json", "csv"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	doc := result.Artifacts["json"]
//
// Run individual stages:
//
//	ds, res, err := runner.Parse(ctx, opts)
//	l, err := runner.GenerateLayout(ctx, ds, opts)
//	artifacts, err := runner.Render(ctx, l, ds, opts)
package pipeline

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/butterfly/pkg/chart"
	"github.com/matzehuels/butterfly/pkg/errors"
	"github.com/matzehuels/butterfly/pkg/ingest"
	"github.com/matzehuels/butterfly/pkg/layout"
	"github.com/matzehuels/butterfly/pkg/sink"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultWidth is the default frame width in user units.
	DefaultWidth = layout.DefaultWidth

	// DefaultHeight of 0 fits the frame height to the rows.
	DefaultHeight = 0.0

	// DefaultHeader is the default header detection strategy.
	DefaultHeader = ingest.HeaderAuto

	// DefaultNaN is the default policy for unparseable numbers.
	DefaultNaN = "zero"

	// DefaultDelimiter detects the delimiter from the first line.
	DefaultDelimiter = "auto"

	// DefaultFormat is the default output format.
	DefaultFormat = string(sink.JSON)

	// MaxWidth and MaxHeight bound the frame so a typo cannot request an
	// absurd layout.
	MaxWidth  = 100000.0
	MaxHeight = 100000.0
)

// Delimiter names accepted by [Options.Delimiter].
var delimiters = map[string]rune{
	"auto":  0,
	"tab":   ingest.Tab,
	"comma": ingest.Comma,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Source options
	Input string `json:"input,omitempty"` // path, "-", *.xlsx, or URL
	Text  string `json:"text,omitempty"`  // inline text; takes precedence over Input
	Sheet string `json:"sheet,omitempty"` // workbook sheet, empty for the first

	// Parse options
	Header     string `json:"header,omitempty"`    // auto, always, never
	NaN        string `json:"nan,omitempty"`       // zero, propagate, drop
	Delimiter  string `json:"delimiter,omitempty"` // auto, tab, comma
	Extras     bool   `json:"extras,omitempty"`
	LeftLabel  string `json:"left_label,omitempty"`
	RightLabel string `json:"right_label,omitempty"`

	// Layout options
	Width      float64             `json:"width,omitempty"`
	Height     float64             `json:"height,omitempty"`
	AxisWidth  float64             `json:"axis_width,omitempty"`
	TickCount  int                 `json:"tick_count,omitempty"`
	Display    chart.DisplayConfig `json:"display"`
	Appearance chart.Appearance    `json:"appearance"`

	// Render options
	Formats []string `json:"formats,omitempty"`

	// Refresh bypasses cached source fetches.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`
	Stdin  io.Reader   `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// DefaultOptions returns options with the editor's display defaults.
func DefaultOptions() Options {
	return Options{
		Display:    chart.DefaultDisplayConfig(),
		Appearance: chart.DefaultAppearance(),
	}
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Source names where the text came from.
	Source string

	// Dataset is the parsed dataset with series labels applied.
	Dataset chart.Dataset

	// Layout is the exported frame geometry.
	Layout chart.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	SourceBytes int
	Records     int
	Skipped     int
	Dropped     int
	Header      bool
	SourceTime  time.Duration
	ParseTime   time.Duration
	LayoutTime  time.Duration
	RenderTime  time.Duration
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if _, err := sink.ParseFormat(format); err != nil || format != strings.ToLower(format) {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: %s)", format, formatList())
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateDelimiter checks a delimiter name.
func ValidateDelimiter(name string) error {
	if _, ok := delimiters[name]; !ok && name != "" {
		return errors.New(errors.ErrCodeInvalidInput, "invalid delimiter: %q (must be one of: auto, tab, comma)", name)
	}
	return nil
}

func formatList() string {
	names := make([]string, len(sink.Formats))
	for i, f := range sink.Formats {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the
// full pipeline. It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Input == "" && o.Text == "" {
		return errors.New(errors.ErrCodeInvalidInput, "input or text is required")
	}
	if err := o.ValidateForParse(); err != nil {
		return err
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForParse checks parse settings and applies their defaults.
func (o *Options) ValidateForParse() error {
	if o.Header == "" {
		o.Header = DefaultHeader
	}
	if o.NaN == "" {
		o.NaN = DefaultNaN
	}
	if o.Delimiter == "" {
		o.Delimiter = DefaultDelimiter
	}
	if _, err := ingest.HeaderStrategyByName(o.Header); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid header mode")
	}
	if _, err := ingest.ParseNaNPolicy(o.NaN); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid nan policy")
	}
	if err := ValidateDelimiter(o.Delimiter); err != nil {
		return err
	}
	if o.Sheet != "" {
		if err := errors.ValidateSheetName(o.Sheet); err != nil {
			return err
		}
	}
	o.setLogger()
	return nil
}

// SetLayoutDefaults sets default values for layout computation. A zero
// display config is replaced by the editor defaults.
func (o *Options) SetLayoutDefaults() {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Display == (chart.DisplayConfig{}) {
		o.Display = chart.DefaultDisplayConfig()
	}
	if o.Appearance == (chart.Appearance{}) {
		o.Appearance = chart.DefaultAppearance()
	}
	o.setLogger()
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if o.Width < 0 || o.Width > MaxWidth {
		return errors.New(errors.ErrCodeInvalidInput, "width must be in (0, %v], got %v", MaxWidth, o.Width)
	}
	if o.Height < 0 || o.Height > MaxHeight {
		return errors.New(errors.ErrCodeInvalidInput, "height must be in [0, %v], got %v", MaxHeight, o.Height)
	}
	if o.AxisWidth < 0 || o.AxisWidth >= o.Width {
		return errors.New(errors.ErrCodeInvalidInput, "axis width must be in [0, width), got %v", o.AxisWidth)
	}
	if o.TickCount < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "tick count must not be negative, got %d", o.TickCount)
	}
	if o.Display.BarThickness < 0 || o.Display.GapBetweenGroups < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "bar thickness and gap must not be negative")
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{DefaultFormat}
	}
	o.setLogger()
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	return ValidateFormats(o.Formats)
}

// ParserOptions returns the ingest options these settings select. Call
// after ValidateForParse; invalid names fall back to the defaults.
func (o *Options) ParserOptions() []ingest.Option {
	var opts []ingest.Option
	if s, err := ingest.HeaderStrategyByName(o.Header); err == nil {
		opts = append(opts, ingest.WithHeaderStrategy(s))
	}
	if p, err := ingest.ParseNaNPolicy(o.NaN); err == nil {
		opts = append(opts, ingest.WithNaNPolicy(p))
	}
	if d := delimiters[o.Delimiter]; d != 0 {
		opts = append(opts, ingest.WithDelimiter(d))
	}
	if o.Extras {
		opts = append(opts, ingest.WithExtras())
	}
	return opts
}

// LayoutOptions returns the frame options these settings select.
func (o *Options) LayoutOptions() []layout.Option {
	var opts []layout.Option
	if o.AxisWidth > 0 {
		opts = append(opts, layout.WithCategoryAxisWidth(o.AxisWidth))
	}
	if o.TickCount > 0 {
		opts = append(opts, layout.WithTickCount(o.TickCount))
	}
	return opts
}

// HasFormat reports whether f is among the requested formats.
func (o *Options) HasFormat(f string) bool {
	for _, x := range o.Formats {
		if x == f {
			return true
		}
	}
	return false
}

func (o *Options) setLogger() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// String summarizes the options for debug logs.
func (o *Options) String() string {
	in := o.Input
	if o.Text != "" {
		in = fmt.Sprintf("<%d bytes inline>", len(o.Text))
	}
	return fmt.Sprintf("input=%s header=%s nan=%s formats=%v", in, o.Header, o.NaN, o.Formats)
}
