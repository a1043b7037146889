package pipeline

import (
	"fmt"

	"github.com/matzehuels/butterfly/pkg/chart"
	"github.com/matzehuels/butterfly/pkg/errors"
	"github.com/matzehuels/butterfly/pkg/sink"
)

// Render generates output artifacts in the requested formats.
//
// CSV has no layout encoding, so the csv artifact is the dataset written
// back to text. Every other format encodes the layout.
func Render(l chart.Layout, ds chart.Dataset, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, name := range opts.Formats {
		f, err := sink.ParseFormat(name)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "render")
		}

		var data []byte
		if f == sink.CSV {
			data, err = sink.RenderDataset(ds, f)
		} else {
			data, err = sink.RenderLayout(l, f)
		}
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", name, err)
		}
		artifacts[name] = data
	}
	return artifacts, nil
}

// RenderDataset encodes ds in each requested format.
func RenderDataset(ds chart.Dataset, formats []string) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(formats))
	for _, name := range formats {
		f, err := sink.ParseFormat(name)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "render")
		}
		data, err := sink.RenderDataset(ds, f)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", name, err)
		}
		artifacts[name] = data
	}
	return artifacts, nil
}
