package chart

import (
	"encoding/json"
	"fmt"
	"math"
)

// =============================================================================
// Constants - Single Source of Truth
// =============================================================================

// Default display values, matching the defaults a chart editor starts with.
const (
	DefaultBarThickness     = 30.0
	DefaultGapBetweenGroups = 10.0
	DefaultLeftLabel        = "Left"
	DefaultRightLabel       = "Right"
	DefaultLeftColor        = "#6dbf8a"
	DefaultRightColor       = "#95d15c"
)

// Label alignments for text anchored outside a bar.
const (
	AlignStart = "start"
	AlignEnd   = "end"
)

// =============================================================================
// Record - One Category Row
// =============================================================================

// Record is one category with a pair of values to compare.
// Order of records is significant; duplicate categories are legal.
type Record struct {
	Category string  `json:"category" yaml:"category"`
	Left     float64 `json:"left" yaml:"left"`
	Right    float64 `json:"right" yaml:"right"`
}

type recordJSON struct {
	Category string   `json:"category"`
	Left     *float64 `json:"left"`
	Right    *float64 `json:"right"`
}

// MarshalJSON encodes non-finite values as null, which encoding/json would
// otherwise reject.
func (r Record) MarshalJSON() ([]byte, error) {
	return json.Marshal(recordJSON{
		Category: r.Category,
		Left:     finitePtr(r.Left),
		Right:    finitePtr(r.Right),
	})
}

// UnmarshalJSON decodes an explicit null value as NaN. A missing value
// stays 0, so encoders that omit zero fields round-trip.
func (r *Record) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	var rec Record
	if c, ok := raw["category"]; ok {
		if err := json.Unmarshal(c, &rec.Category); err != nil {
			return fmt.Errorf("category: %w", err)
		}
	}
	var err error
	if rec.Left, err = decodeValue(raw["left"]); err != nil {
		return fmt.Errorf("left: %w", err)
	}
	if rec.Right, err = decodeValue(raw["right"]); err != nil {
		return fmt.Errorf("right: %w", err)
	}
	*r = rec
	return nil
}

// decodeValue maps a missing value to 0 and null to NaN.
func decodeValue(data json.RawMessage) (float64, error) {
	if len(data) == 0 {
		return 0, nil
	}
	if string(data) == "null" {
		return math.NaN(), nil
	}
	var v float64
	err := json.Unmarshal(data, &v)
	return v, err
}

func finitePtr(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// =============================================================================
// Extras - Optional Side-Table
// =============================================================================

// Extras holds cells beyond the third column, keyed by record index.
// It is kept apart from [Record] so records stay strongly typed.
type Extras map[int][]string

// Get returns the extra cells for record i, or nil.
func (e Extras) Get(i int) []string {
	if e == nil {
		return nil
	}
	return e[i]
}

// =============================================================================
// Dataset - Immutable Snapshot
// =============================================================================

// Dataset is an immutable snapshot of parsed records and their series labels.
// Stages never mutate a Dataset; they derive new values from it.
type Dataset struct {
	LeftLabel  string   `json:"left_label,omitempty" yaml:"left_label,omitempty"`
	RightLabel string   `json:"right_label,omitempty" yaml:"right_label,omitempty"`
	Records    []Record `json:"records" yaml:"records"`
	Extras     Extras   `json:"extras,omitempty" yaml:"extras,omitempty"`
}

// Len returns the number of records.
func (d Dataset) Len() int { return len(d.Records) }

// Labels returns the series labels, falling back to the defaults.
func (d Dataset) Labels() (left, right string) {
	left, right = d.LeftLabel, d.RightLabel
	if left == "" {
		left = DefaultLeftLabel
	}
	if right == "" {
		right = DefaultRightLabel
	}
	return left, right
}

// =============================================================================
// DisplayConfig - Options the Core Reads
// =============================================================================

// DisplayConfig is the immutable set of rendering options that affect the
// computed geometry.
type DisplayConfig struct {
	BarThickness     float64 `json:"bar_thickness" yaml:"bar_thickness" toml:"bar_thickness"`
	GapBetweenGroups float64 `json:"gap_between_groups" yaml:"gap_between_groups" toml:"gap_between_groups"`
	ShowValueLabels  bool    `json:"show_value_labels" yaml:"show_value_labels" toml:"show_value_labels"`
}

// DefaultDisplayConfig returns the editor defaults: 30 unit bars, 10 unit
// gaps, and value labels on.
func DefaultDisplayConfig() DisplayConfig {
	return DisplayConfig{
		BarThickness:     DefaultBarThickness,
		GapBetweenGroups: DefaultGapBetweenGroups,
		ShowValueLabels:  true,
	}
}

// Appearance holds cosmetic pass-through fields. The core never reads them;
// they travel with a layout so a renderer can draw titles and legends.
type Appearance struct {
	Title      string `json:"title,omitempty" yaml:"title,omitempty" toml:"title"`
	Subtitle   string `json:"subtitle,omitempty" yaml:"subtitle,omitempty" toml:"subtitle"`
	LeftColor  string `json:"left_color,omitempty" yaml:"left_color,omitempty" toml:"left_color"`
	RightColor string `json:"right_color,omitempty" yaml:"right_color,omitempty" toml:"right_color"`
	ShowGrid   bool   `json:"show_grid,omitempty" yaml:"show_grid,omitempty" toml:"show_grid"`
}

// DefaultAppearance returns the default colors with the grid enabled.
func DefaultAppearance() Appearance {
	return Appearance{
		LeftColor:  DefaultLeftColor,
		RightColor: DefaultRightColor,
		ShowGrid:   true,
	}
}
