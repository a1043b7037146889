package sink

import (
	"errors"
	"fmt"
	"strings"

	"github.com/matzehuels/butterfly/pkg/chart"
)

// Format names an output encoding.
type Format string

// Supported formats.
const (
	JSON  Format = "json"
	YAML  Format = "yaml"
	CSV   Format = "csv"
	Table Format = "table"
)

// ErrUnsupportedFormat is returned when a format cannot encode a document.
var ErrUnsupportedFormat = errors.New("unsupported format")

// Formats lists every format name, for flag help and validation.
var Formats = []Format{JSON, YAML, CSV, Table}

// ParseFormat looks up a format by name, case-insensitively.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// Ext returns the file extension for f, with the dot.
func (f Format) Ext() string {
	switch f {
	case Table:
		return ".txt"
	case YAML:
		return ".yaml"
	default:
		return "." + string(f)
	}
}

// RenderDataset encodes a dataset.
func RenderDataset(ds chart.Dataset, f Format) ([]byte, error) {
	switch f {
	case JSON:
		return chart.MarshalDataset(ds)
	case YAML:
		return RenderYAML(ds)
	case CSV:
		left, right := ds.Labels()
		return []byte(FormatCSV(ds.Records, left, right)), nil
	case Table:
		return []byte(RenderDatasetTable(ds)), nil
	default:
		return nil, fmt.Errorf("%w for dataset: %q", ErrUnsupportedFormat, f)
	}
}

// RenderLayout encodes a layout.
func RenderLayout(l chart.Layout, f Format) ([]byte, error) {
	switch f {
	case JSON:
		return chart.MarshalLayout(l)
	case YAML:
		return RenderYAML(l)
	case Table:
		return []byte(RenderLayoutTable(l)), nil
	default:
		return nil, fmt.Errorf("%w for layout: %q", ErrUnsupportedFormat, f)
	}
}
