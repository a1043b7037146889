package diverging

import (
	"math"
	"strconv"

	"github.com/matzehuels/butterfly/pkg/chart"
)

// LabelSpacing is the gap between a bar's free end and its value label.
const LabelSpacing = 5.0

// LabelSuffix is appended to every value label.
const LabelSuffix = "%"

// Rect is a bar's draw rectangle. Width is signed: a negative width means
// the bar extends leftward from X.
type Rect struct {
	X, Y, Width, Height float64
}

// LabelAnchor is where and how to draw a value label.
type LabelAnchor struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Align string  `json:"align"`
	Text  string  `json:"text"`
}

// PlaceLabel anchors the label for a bar drawn for value. ok is false when
// show is false and no label should be drawn.
//
// Degenerate rectangles (zero width or height) still get an anchor.
func PlaceLabel(bar Rect, value float64, show bool) (anchor LabelAnchor, ok bool) {
	if !show {
		return LabelAnchor{}, false
	}
	end := bar.X + bar.Width
	anchor = LabelAnchor{
		Y:    bar.Y + bar.Height/2,
		Text: FormatValue(math.Abs(value)) + LabelSuffix,
	}
	if value < 0 {
		anchor.X = end - LabelSpacing
		anchor.Align = chart.AlignEnd
	} else {
		anchor.X = end + LabelSpacing
		anchor.Align = chart.AlignStart
	}
	return anchor, true
}

// FormatValue prints v in the shortest decimal form that reads back to the
// same float64: 14, 12.5, 0.1.
func FormatValue(v float64) string {
	if v == 0 {
		// Drops the sign of negative zero.
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
