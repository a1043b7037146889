package pipeline

import (
	"github.com/matzehuels/butterfly/pkg/chart"
	"github.com/matzehuels/butterfly/pkg/layout"
)

// GenerateLayout computes the frame for ds and exports it.
func GenerateLayout(ds chart.Dataset, opts Options) chart.Layout {
	l := layout.Build(ds.Records, opts.Display, opts.Width, opts.Height, opts.LayoutOptions()...)
	return l.Export(ds.LeftLabel, ds.RightLabel, opts.Appearance)
}
