package layout

import (
	"fmt"
	"math"

	"github.com/matzehuels/butterfly/pkg/chart"
	"github.com/matzehuels/butterfly/pkg/diverging"
)

// Export converts the layout to the serialization format.
//
// Use this when you need to hand the frame to a renderer:
//   - JSON file output (via chart.WriteLayoutFile)
//   - API responses
//
// Empty series labels fall back to [chart.DefaultLeftLabel] and
// [chart.DefaultRightLabel].
func (l Layout) Export(leftLabel, rightLabel string, ap chart.Appearance) chart.Layout {
	leftLabel, rightLabel = chart.Dataset{LeftLabel: leftLabel, RightLabel: rightLabel}.Labels()
	out := chart.Layout{
		Width:      l.FrameWidth,
		Height:     l.FrameHeight,
		MarginX:    l.MarginX,
		MarginY:    l.MarginY,
		AxisWidth:  l.AxisWidth,
		CenterX:    l.CenterX,
		Domain:     l.Domain.Max(),
		Rows:       make([]chart.Row, len(l.Rows)),
		LeftLabel:  leftLabel,
		RightLabel: rightLabel,
		Display:    l.Display,
		Appearance: ap,
	}
	for _, t := range l.Ticks {
		out.Ticks = append(out.Ticks, chart.Tick{Value: t.Value, X: t.X, Label: t.Label})
	}
	for i, r := range l.Rows {
		out.Rows[i] = chart.Row{
			Category:    r.Signed.Category,
			CenterY:     r.CenterY(),
			SignedLeft:  r.Signed.SignedLeft,
			SignedRight: r.Signed.SignedRight,
			LeftBar:     exportRect(r.Left.Rect),
			RightBar:    exportRect(r.Right.Rect),
			LeftValue:   exportLabel(r.Left.Label),
			RightValue:  exportLabel(r.Right.Label),
		}
	}
	return out
}

// Parse converts a serialized layout back to a Layout.
//
// Returns an error if the frame is not positive.
func Parse(cl chart.Layout) (Layout, error) {
	if cl.Width <= 0 || cl.Height <= 0 {
		return Layout{}, fmt.Errorf("invalid frame for layout: %vx%v", cl.Width, cl.Height)
	}

	l := Layout{
		FrameWidth:  cl.Width,
		FrameHeight: cl.Height,
		MarginX:     cl.MarginX,
		MarginY:     cl.MarginY,
		AxisWidth:   cl.AxisWidth,
		CenterX:     cl.CenterX,
		HalfWidth:   math.Max(0, cl.Width-cl.MarginX-cl.CenterX),
		Domain:      diverging.Domain(cl.Domain),
		Rows:        make([]Row, len(cl.Rows)),
		Display:     cl.Display,
	}
	for _, t := range cl.Ticks {
		l.Ticks = append(l.Ticks, Tick{Value: t.Value, X: t.X, Label: t.Label})
	}
	for i, r := range cl.Rows {
		l.Rows[i] = Row{
			Signed: diverging.TransformedRecord{
				Category:    r.Category,
				SignedLeft:  r.SignedLeft,
				SignedRight: r.SignedRight,
			},
			Top:   r.LeftBar.Y,
			Left:  Bar{Rect: parseRect(r.LeftBar), Value: r.SignedLeft, Label: parseLabel(r.LeftValue)},
			Right: Bar{Rect: parseRect(r.RightBar), Value: r.SignedRight, Label: parseLabel(r.RightValue)},
		}
	}
	return l, nil
}

// =============================================================================
// Conversion Helpers
// =============================================================================

func exportRect(r diverging.Rect) chart.Rect {
	return chart.Rect{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height}
}

func parseRect(r chart.Rect) diverging.Rect {
	return diverging.Rect{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height}
}

func exportLabel(a *diverging.LabelAnchor) *chart.Label {
	if a == nil {
		return nil
	}
	return &chart.Label{X: a.X, Y: a.Y, Align: a.Align, Text: a.Text}
}

func parseLabel(l *chart.Label) *diverging.LabelAnchor {
	if l == nil {
		return nil
	}
	return &diverging.LabelAnchor{X: l.X, Y: l.Y, Align: l.Align, Text: l.Text}
}
