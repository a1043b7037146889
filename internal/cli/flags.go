package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/butterfly/pkg/pipeline"
)

// sourceFlags select and read the input.
type sourceFlags struct {
	sheet   string
	noCache bool
	refresh bool
}

func (f *sourceFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.sheet, "sheet", "", "workbook sheet to read (.xlsx inputs; default: first sheet)")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable the source cache")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "refetch URL sources even when cached")
}

func (f *sourceFlags) apply(opts *pipeline.Options) {
	opts.Sheet = f.sheet
	opts.Refresh = f.refresh
}

// parseFlags control ingestion. Unset flags keep the config values.
type parseFlags struct {
	header     string
	nan        string
	delimiter  string
	extras     bool
	leftLabel  string
	rightLabel string
}

func (f *parseFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.header, "header", "", "header detection: auto (default), always, never")
	cmd.Flags().StringVar(&f.nan, "nan", "", "unparseable numbers: zero (default), propagate, drop")
	cmd.Flags().StringVar(&f.delimiter, "delimiter", "", "column delimiter: auto (default), tab, comma")
	cmd.Flags().BoolVar(&f.extras, "extras", false, "keep cells beyond the third column")
	cmd.Flags().StringVar(&f.leftLabel, "left-label", "", "left series label (default: header column 2)")
	cmd.Flags().StringVar(&f.rightLabel, "right-label", "", "right series label (default: header column 3)")
}

func (f *parseFlags) apply(cmd *cobra.Command, opts *pipeline.Options) {
	changed := cmd.Flags().Changed
	if changed("header") {
		opts.Header = f.header
	}
	if changed("nan") {
		opts.NaN = f.nan
	}
	if changed("delimiter") {
		opts.Delimiter = f.delimiter
	}
	opts.Extras = f.extras
	opts.LeftLabel = f.leftLabel
	opts.RightLabel = f.rightLabel
}

// layoutFlags control frame geometry and the cosmetic pass-through fields.
type layoutFlags struct {
	width        float64
	height       float64
	barThickness float64
	gap          float64
	valueLabels  bool
	axisWidth    float64
	ticks        int
	title        string
	subtitle     string
	leftColor    string
	rightColor   string
	grid         bool
}

func (f *layoutFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.Float64Var(&f.width, "width", pipeline.DefaultWidth, "frame width")
	fs.Float64Var(&f.height, "height", pipeline.DefaultHeight, "frame height (0 fits the rows)")
	fs.Float64Var(&f.barThickness, "bar-thickness", 0, "bar thickness (default from config: 30)")
	fs.Float64Var(&f.gap, "gap", 0, "gap between category groups (default from config: 10)")
	fs.BoolVar(&f.valueLabels, "value-labels", true, "place value labels at bar ends")
	fs.Float64Var(&f.axisWidth, "axis-width", 0, "width reserved for category labels (default 120)")
	fs.IntVar(&f.ticks, "ticks", 0, "number of axis ticks (default 5)")
	fs.StringVar(&f.title, "title", "", "chart title")
	fs.StringVar(&f.subtitle, "subtitle", "", "chart subtitle")
	fs.StringVar(&f.leftColor, "left-color", "", "left series color")
	fs.StringVar(&f.rightColor, "right-color", "", "right series color")
	fs.BoolVar(&f.grid, "grid", true, "show grid lines")
}

func (f *layoutFlags) apply(cmd *cobra.Command, opts *pipeline.Options) {
	changed := cmd.Flags().Changed
	if changed("width") {
		opts.Width = f.width
	}
	if changed("height") {
		opts.Height = f.height
	}
	if changed("bar-thickness") {
		opts.Display.BarThickness = f.barThickness
	}
	if changed("gap") {
		opts.Display.GapBetweenGroups = f.gap
	}
	if changed("value-labels") {
		opts.Display.ShowValueLabels = f.valueLabels
	}
	if changed("left-color") {
		opts.Appearance.LeftColor = f.leftColor
	}
	if changed("right-color") {
		opts.Appearance.RightColor = f.rightColor
	}
	if changed("grid") {
		opts.Appearance.ShowGrid = f.grid
	}
	opts.AxisWidth = f.axisWidth
	opts.TickCount = f.ticks
	opts.Appearance.Title = f.title
	opts.Appearance.Subtitle = f.subtitle
}
