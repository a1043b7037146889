package layout

import (
	"github.com/matzehuels/butterfly/pkg/chart"
	"github.com/matzehuels/butterfly/pkg/diverging"
)

// Layout is a computed butterfly frame. All coordinates are in user units
// with the origin at the top-left and Y growing downward.
type Layout struct {
	FrameWidth  float64
	FrameHeight float64
	MarginX     float64
	MarginY     float64
	AxisWidth   float64

	// CenterX is the x coordinate of value 0.
	CenterX float64
	// HalfWidth is the distance from the center line to either plot edge.
	HalfWidth float64

	Domain  diverging.Domain
	Ticks   []Tick
	Rows    []Row
	Display chart.DisplayConfig
}

// Row is one category band.
type Row struct {
	Signed diverging.TransformedRecord
	Top    float64
	Left   Bar
	Right  Bar
}

// CenterY returns the vertical center of the row.
func (r Row) CenterY() float64 { return r.Left.Rect.Y + r.Left.Rect.Height/2 }

// Bar is one drawn bar with its optional value label.
type Bar struct {
	Rect  diverging.Rect
	Value float64
	Label *diverging.LabelAnchor
}

// Tick is a value axis tick. Label shows the magnitude.
type Tick struct {
	Value float64
	X     float64
	Label string
}

// X maps a signed value onto the frame.
func (l Layout) X(v float64) float64 {
	return scale(l.Domain, l.CenterX, l.HalfWidth, v)
}

// PlotLeft returns the left edge of the plot area.
func (l Layout) PlotLeft() float64 { return l.CenterX - l.HalfWidth }

// PlotRight returns the right edge of the plot area.
func (l Layout) PlotRight() float64 { return l.CenterX + l.HalfWidth }

func scale(d diverging.Domain, center, half, v float64) float64 {
	if d.IsDegenerate() {
		return center
	}
	return center + v/d.Max()*half
}
