package pipeline

import (
	"github.com/matzehuels/butterfly/pkg/chart"
	"github.com/matzehuels/butterfly/pkg/ingest"
)

// Parse ingests text with the parse options and applies label overrides.
// Like the ingestor itself it never fails.
func Parse(text string, opts Options) (chart.Dataset, ingest.Result) {
	res := ingest.NewParser(opts.ParserOptions()...).Parse(text)
	ds := res.Dataset()
	if opts.LeftLabel != "" {
		ds.LeftLabel = opts.LeftLabel
	}
	if opts.RightLabel != "" {
		ds.RightLabel = opts.RightLabel
	}
	return ds, res
}
