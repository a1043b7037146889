package layout

import (
	"math"
	"reflect"
	"testing"

	"github.com/matzehuels/butterfly/pkg/chart"
	"github.com/matzehuels/butterfly/pkg/diverging"
)

var testDisplay = chart.DisplayConfig{BarThickness: 30, GapBetweenGroups: 10, ShowValueLabels: true}

// buildSimple lays out a 1000 wide frame without margins whose plot area is
// [200, 1000] with the center line at 600 and a domain of 10.
func buildSimple(records []chart.Record, display chart.DisplayConfig) Layout {
	return Build(records, display, 1000, 0,
		WithMarginRatio(0),
		WithCategoryAxisWidth(200),
		WithPaddingFactor(1),
	)
}

func TestBuildFrame(t *testing.T) {
	l := buildSimple([]chart.Record{{Category: "A", Left: 5, Right: 10}, {Category: "B", Left: 2, Right: 3}}, testDisplay)

	if l.CenterX != 600 || l.HalfWidth != 400 {
		t.Errorf("CenterX, HalfWidth = %v, %v, want 600, 400", l.CenterX, l.HalfWidth)
	}
	if l.PlotLeft() != 200 || l.PlotRight() != 1000 {
		t.Errorf("plot = [%v, %v], want [200, 1000]", l.PlotLeft(), l.PlotRight())
	}
	if l.Domain != 10 {
		t.Errorf("Domain = %v, want 10", l.Domain)
	}
	if l.FrameHeight != 70 {
		t.Errorf("FrameHeight = %v, want 70", l.FrameHeight)
	}
}

func TestBuildMargins(t *testing.T) {
	l := Build([]chart.Record{{Left: 1, Right: 1}}, testDisplay, 800, 600)
	if l.MarginX != 40 || l.MarginY != 30 {
		t.Errorf("margins = %v, %v, want 40, 30", l.MarginX, l.MarginY)
	}
	if l.AxisWidth != DefaultCategoryAxisWidth {
		t.Errorf("AxisWidth = %v, want %v", l.AxisWidth, DefaultCategoryAxisWidth)
	}
	if want := 40 + 120 + (800-40-40-120)/2.0; l.CenterX != want {
		t.Errorf("CenterX = %v, want %v", l.CenterX, want)
	}
	if l.Rows[0].Top != 30 {
		t.Errorf("first row top = %v, want 30", l.Rows[0].Top)
	}
}

func TestBuildRows(t *testing.T) {
	l := buildSimple([]chart.Record{{Category: "A", Left: 5, Right: 10}, {Category: "B", Left: -2, Right: 0}}, testDisplay)

	if len(l.Rows) != 2 {
		t.Fatalf("len(Rows) = %d, want 2", len(l.Rows))
	}

	a := l.Rows[0]
	if a.Signed.Category != "A" || a.Top != 0 || a.CenterY() != 15 {
		t.Errorf("row A = %+v", a)
	}
	if want := (diverging.Rect{X: 600, Y: 0, Width: -200, Height: 30}); a.Left.Rect != want {
		t.Errorf("A left bar = %+v, want %+v", a.Left.Rect, want)
	}
	if want := (diverging.Rect{X: 600, Y: 0, Width: 400, Height: 30}); a.Right.Rect != want {
		t.Errorf("A right bar = %+v, want %+v", a.Right.Rect, want)
	}
	if want := (diverging.LabelAnchor{X: 395, Y: 15, Align: chart.AlignEnd, Text: "5%"}); *a.Left.Label != want {
		t.Errorf("A left label = %+v, want %+v", *a.Left.Label, want)
	}
	if want := (diverging.LabelAnchor{X: 1005, Y: 15, Align: chart.AlignStart, Text: "10%"}); *a.Right.Label != want {
		t.Errorf("A right label = %+v, want %+v", *a.Right.Label, want)
	}

	b := l.Rows[1]
	if b.Top != 40 {
		t.Errorf("row B top = %v, want 40", b.Top)
	}
	if b.Left.Value != -2 || b.Left.Rect.Width != -80 {
		t.Errorf("B left bar = %+v", b.Left)
	}
	if b.Right.Rect.Width != 0 {
		t.Errorf("B right width = %v, want 0", b.Right.Rect.Width)
	}
}

func TestBuildBarsProportional(t *testing.T) {
	records := []chart.Record{{Left: 1, Right: 2}, {Left: 4, Right: 8}}
	l := Build(records, testDisplay, 900, 500)
	for i, r := range l.Rows {
		if r.Left.Rect.Width > 0 || r.Right.Rect.Width < 0 {
			t.Errorf("row %d bars point the wrong way: %+v", i, r)
		}
		ratio := r.Right.Rect.Width / -r.Left.Rect.Width
		if math.Abs(ratio-2) > 1e-9 {
			t.Errorf("row %d right/left = %v, want 2", i, ratio)
		}
		if r.Right.Rect.X+r.Right.Rect.Width > l.PlotRight()+1e-9 {
			t.Errorf("row %d right bar overflows plot", i)
		}
		if r.Left.Rect.X+r.Left.Rect.Width < l.PlotLeft()-1e-9 {
			t.Errorf("row %d left bar overflows plot", i)
		}
	}
}

func TestBuildHiddenLabels(t *testing.T) {
	display := testDisplay
	display.ShowValueLabels = false
	l := buildSimple([]chart.Record{{Left: 1, Right: 2}}, display)
	if l.Rows[0].Left.Label != nil || l.Rows[0].Right.Label != nil {
		t.Errorf("labels = %v, %v, want nil", l.Rows[0].Left.Label, l.Rows[0].Right.Label)
	}
}

func TestBuildTicks(t *testing.T) {
	l := buildSimple([]chart.Record{{Left: 5, Right: 10}}, testDisplay)
	want := []Tick{
		{Value: -10, X: 200, Label: "10"},
		{Value: -5, X: 400, Label: "5"},
		{Value: 0, X: 600, Label: "0"},
		{Value: 5, X: 800, Label: "5"},
		{Value: 10, X: 1000, Label: "10"},
	}
	if !reflect.DeepEqual(l.Ticks, want) {
		t.Errorf("Ticks = %+v, want %+v", l.Ticks, want)
	}

	l = Build(nil, testDisplay, 1000, 0, WithTickCount(0))
	if l.Ticks != nil {
		t.Errorf("Ticks = %+v, want nil", l.Ticks)
	}
}

func TestBuildDegenerate(t *testing.T) {
	tests := []struct {
		name    string
		records []chart.Record
	}{
		{"empty", nil},
		{"zeros", []chart.Record{{Category: "z"}}},
		{"nan", []chart.Record{{Category: "n", Left: math.NaN(), Right: math.Inf(1)}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := buildSimple(tt.records, testDisplay)
			if !l.Domain.IsDegenerate() {
				t.Fatalf("Domain = %v, want degenerate", l.Domain)
			}
			if l.FrameHeight != 30 {
				t.Errorf("FrameHeight = %v, want 30", l.FrameHeight)
			}
			if want := []Tick{{Value: 0, X: 600, Label: "0"}}; !reflect.DeepEqual(l.Ticks, want) {
				t.Errorf("Ticks = %+v, want %+v", l.Ticks, want)
			}
			for _, r := range l.Rows {
				for _, b := range []Bar{r.Left, r.Right} {
					if b.Rect.X != 600 || b.Rect.Width != 0 {
						t.Errorf("bar = %+v, want zero width on center line", b.Rect)
					}
					if b.Label == nil || math.IsNaN(b.Label.X) || b.Label.Text != "0%" {
						t.Errorf("label = %+v", b.Label)
					}
				}
			}
		})
	}
}

func TestBuildDefaults(t *testing.T) {
	l := Build([]chart.Record{{Left: 1, Right: 1}}, testDisplay, 0, 0)
	if l.FrameWidth != DefaultWidth {
		t.Errorf("FrameWidth = %v, want %v", l.FrameWidth, DefaultWidth)
	}
	if len(l.Ticks) != DefaultTickCount {
		t.Errorf("len(Ticks) = %d, want %d", len(l.Ticks), DefaultTickCount)
	}
	if l.Domain != diverging.Domain(diverging.ComputeDomain([]chart.Record{{Left: 1, Right: 1}})) {
		t.Errorf("Domain = %v", l.Domain)
	}
}

func TestOptionsIgnoreInvalid(t *testing.T) {
	l := Build(nil, testDisplay, 1000, 500,
		WithMarginRatio(0.7),
		WithCategoryAxisWidth(-1),
		WithTickCount(-3),
	)
	if l.MarginX != 1000*DefaultMarginRatio {
		t.Errorf("MarginX = %v", l.MarginX)
	}
	if l.AxisWidth != DefaultCategoryAxisWidth {
		t.Errorf("AxisWidth = %v", l.AxisWidth)
	}
	if len(l.Ticks) != 1 {
		t.Errorf("len(Ticks) = %d, want 1", len(l.Ticks))
	}
}

func TestContentHeight(t *testing.T) {
	tests := []struct {
		n    int
		want float64
	}{
		{0, 0},
		{1, 30},
		{3, 110},
	}
	for _, tt := range tests {
		if got := ContentHeight(tt.n, testDisplay); got != tt.want {
			t.Errorf("ContentHeight(%d) = %v, want %v", tt.n, got, tt.want)
		}
	}
}

func TestExportParse(t *testing.T) {
	l := buildSimple([]chart.Record{{Category: "A", Left: 5, Right: 10}, {Category: "B", Left: 2, Right: 3}}, testDisplay)
	ap := chart.DefaultAppearance()
	ap.Title = "Income"

	cl := l.Export("Men", "", ap)
	if cl.LeftLabel != "Men" || cl.RightLabel != chart.DefaultRightLabel {
		t.Errorf("labels = %q/%q", cl.LeftLabel, cl.RightLabel)
	}
	if cl.Domain != 10 || cl.CenterX != 600 {
		t.Errorf("Domain, CenterX = %v, %v", cl.Domain, cl.CenterX)
	}
	if cl.Rows[1].Category != "B" || cl.Rows[1].CenterY != 55 {
		t.Errorf("row B = %+v", cl.Rows[1])
	}
	if cl.Rows[0].LeftValue == nil || cl.Rows[0].LeftValue.Align != chart.AlignEnd {
		t.Errorf("row A left label = %+v", cl.Rows[0].LeftValue)
	}
	if cl.Appearance.Title != "Income" {
		t.Errorf("Title = %q", cl.Appearance.Title)
	}

	back, err := Parse(cl)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !reflect.DeepEqual(back, l) {
		t.Errorf("Parse(Export) = %+v, want %+v", back, l)
	}
}

func TestParseRejectsEmptyFrame(t *testing.T) {
	if _, err := Parse(chart.Layout{Width: 100}); err == nil {
		t.Error("expected error for zero height")
	}
}
