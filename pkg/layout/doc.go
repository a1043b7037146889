// Package layout computes the drawable frame of a butterfly chart.
//
// # Overview
//
// Given records, a [chart.DisplayConfig] and a frame size, [Build] places
// every bar, value label and axis tick. The result is everything a renderer
// needs; it never draws anything itself.
//
//	l := layout.Build(records, chart.DefaultDisplayConfig(), 800, 0)
//
// # Frame
//
// The frame is split into margins on every side ([WithMarginRatio]), a band
// on the left reserved for category labels ([WithCategoryAxisWidth]), and the
// plot area. Value 0 sits on the vertical center line of the plot area and
// the symmetric domain from [diverging.ComputeDomain] maps linearly onto its
// full width. A degenerate domain (no data, or only zeros) maps every value
// onto the center line.
//
// # Rows
//
// Records become rows stacked top to bottom in input order. Each row is
// BarThickness tall and rows are separated by GapBetweenGroups. Both bars
// start on the center line: the left bar has a negative width, the right bar
// a positive one. A frame height of 0 or less fits the height to the rows.
//
// # Options
//
//   - [WithMarginRatio]: frame margin as fraction of dimensions (default 0.05)
//   - [WithCategoryAxisWidth]: width of the category label band (default 120)
//   - [WithTickCount]: number of value axis ticks (default 5)
//   - [WithPaddingFactor]: domain headroom (default [diverging.PaddingFactor])
//
// # Serialization
//
// [Layout.Export] converts to [chart.Layout] for JSON output and [Parse]
// converts back.
package layout
