package layout

import (
	"math"

	"github.com/matzehuels/butterfly/pkg/chart"
	"github.com/matzehuels/butterfly/pkg/diverging"
)

// Defaults for [Build].
const (
	DefaultMarginRatio       = 0.05
	DefaultCategoryAxisWidth = 120.0
	DefaultTickCount         = 5
	DefaultWidth             = 800.0
)

type config struct {
	marginRatio   float64
	axisWidth     float64
	tickCount     int
	paddingFactor float64
}

// Option configures [Build].
type Option func(*config)

// WithMarginRatio sets the frame margin as a fraction of the frame size.
// Values outside [0, 0.5) are ignored.
func WithMarginRatio(r float64) Option {
	return func(c *config) {
		if r >= 0 && r < 0.5 {
			c.marginRatio = r
		}
	}
}

// WithCategoryAxisWidth sets the width of the band left of the plot that is
// reserved for category labels. Negative values are ignored.
func WithCategoryAxisWidth(w float64) Option {
	return func(c *config) {
		if w >= 0 {
			c.axisWidth = w
		}
	}
}

// WithTickCount sets how many ticks the value axis has. Zero disables ticks.
func WithTickCount(n int) Option {
	return func(c *config) {
		if n >= 0 {
			c.tickCount = n
		}
	}
}

// WithPaddingFactor overrides [diverging.PaddingFactor].
func WithPaddingFactor(f float64) Option {
	return func(c *config) { c.paddingFactor = f }
}

// Build lays out records in a width x height frame.
//
// Non-finite values are drawn as 0. A width of 0 or less uses
// [DefaultWidth]; a height of 0 or less fits the frame to the rows, with
// room for at least one row.
func Build(records []chart.Record, display chart.DisplayConfig, width, height float64, opts ...Option) Layout {
	cfg := config{
		marginRatio:   DefaultMarginRatio,
		axisWidth:     DefaultCategoryAxisWidth,
		tickCount:     DefaultTickCount,
		paddingFactor: diverging.PaddingFactor,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	display = normalizeDisplay(display)

	finite := make([]chart.Record, len(records))
	for i, r := range records {
		finite[i] = chart.Record{Category: r.Category, Left: finiteOrZero(r.Left), Right: finiteOrZero(r.Right)}
	}

	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = ContentHeight(max(len(records), 1), display) / (1 - 2*cfg.marginRatio)
	}

	l := Layout{
		FrameWidth:  width,
		FrameHeight: height,
		MarginX:     width * cfg.marginRatio,
		MarginY:     height * cfg.marginRatio,
		AxisWidth:   cfg.axisWidth,
		Domain:      diverging.Domain(diverging.ComputeDomainWithPadding(finite, cfg.paddingFactor)),
		Display:     display,
	}

	plotLeft := l.MarginX + l.AxisWidth
	plotWidth := math.Max(0, width-l.MarginX-plotLeft)
	l.HalfWidth = plotWidth / 2
	l.CenterX = plotLeft + l.HalfWidth

	l.Rows = buildRows(l, diverging.SignRecords(finite))
	l.Ticks = buildTicks(l, cfg.tickCount)
	return l
}

// ContentHeight returns the height n rows occupy without margins.
func ContentHeight(n int, display chart.DisplayConfig) float64 {
	if n <= 0 {
		return 0
	}
	return float64(n)*display.BarThickness + float64(n-1)*display.GapBetweenGroups
}

func buildRows(l Layout, signed []diverging.TransformedRecord) []Row {
	rows := make([]Row, len(signed))
	step := l.Display.BarThickness + l.Display.GapBetweenGroups
	for i, s := range signed {
		top := l.MarginY + float64(i)*step
		rows[i] = Row{
			Signed: s,
			Top:    top,
			Left:   buildBar(l, top, s.SignedLeft),
			Right:  buildBar(l, top, s.SignedRight),
		}
	}
	return rows
}

func buildBar(l Layout, top, value float64) Bar {
	b := Bar{
		Rect: diverging.Rect{
			X:      l.CenterX,
			Y:      top,
			Width:  l.X(value) - l.CenterX,
			Height: l.Display.BarThickness,
		},
		Value: value,
	}
	if anchor, ok := diverging.PlaceLabel(b.Rect, value, l.Display.ShowValueLabels); ok {
		b.Label = &anchor
	}
	return b
}

func buildTicks(l Layout, n int) []Tick {
	if n <= 0 {
		return nil
	}
	if n == 1 || l.Domain.IsDegenerate() {
		return []Tick{{Value: 0, X: l.CenterX, Label: "0"}}
	}
	ticks := make([]Tick, n)
	step := l.Domain.Span() / float64(n-1)
	for i := range ticks {
		v := l.Domain.Min() + float64(i)*step
		if i == n-1 {
			v = l.Domain.Max()
		}
		ticks[i] = Tick{Value: v, X: l.X(v), Label: diverging.FormatValue(math.Abs(v))}
	}
	return ticks
}

func normalizeDisplay(d chart.DisplayConfig) chart.DisplayConfig {
	if d.BarThickness < 0 {
		d.BarThickness = 0
	}
	if d.GapBetweenGroups < 0 {
		d.GapBetweenGroups = 0
	}
	return d
}

func finiteOrZero(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
