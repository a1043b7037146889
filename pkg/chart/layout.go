package chart

import (
	"encoding/json"
	"fmt"
	"os"
)

// =============================================================================
// Layout - Renderer Contract
// =============================================================================

// Layout is the serialization format for a computed butterfly frame.
//
// All coordinates are in user units with the origin at the top-left and Y
// growing downward. Bars on the left side carry a negative width: they
// extend leftward from their X, which is always the center line.
type Layout struct {
	Width   float64 `json:"width" yaml:"width"`
	Height  float64 `json:"height" yaml:"height"`
	MarginX float64 `json:"margin_x" yaml:"margin_x"`
	MarginY float64 `json:"margin_y" yaml:"margin_y"`

	// AxisWidth is the band reserved left of the plot for category labels.
	AxisWidth float64 `json:"axis_width" yaml:"axis_width"`
	// CenterX is the x coordinate of value 0.
	CenterX float64 `json:"center_x" yaml:"center_x"`
	// Domain is the symmetric max magnitude: values span [-Domain, Domain].
	Domain float64 `json:"domain" yaml:"domain"`

	Ticks []Tick `json:"ticks,omitempty" yaml:"ticks,omitempty"`
	Rows  []Row  `json:"rows" yaml:"rows"`

	LeftLabel  string        `json:"left_label" yaml:"left_label"`
	RightLabel string        `json:"right_label" yaml:"right_label"`
	Display    DisplayConfig `json:"display" yaml:"display"`
	Appearance Appearance    `json:"appearance" yaml:"appearance"`
}

// Row is one category band with its two bars.
type Row struct {
	Category    string  `json:"category" yaml:"category"`
	CenterY     float64 `json:"center_y" yaml:"center_y"`
	SignedLeft  float64 `json:"signed_left" yaml:"signed_left"`
	SignedRight float64 `json:"signed_right" yaml:"signed_right"`
	LeftBar     Rect    `json:"left_bar" yaml:"left_bar"`
	RightBar    Rect    `json:"right_bar" yaml:"right_bar"`
	LeftValue   *Label  `json:"left_value,omitempty" yaml:"left_value,omitempty"`
	RightValue  *Label  `json:"right_value,omitempty" yaml:"right_value,omitempty"`
}

// Rect is a bar rectangle. Width may be negative.
type Rect struct {
	X      float64 `json:"x" yaml:"x"`
	Y      float64 `json:"y" yaml:"y"`
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// Label is a text anchor placed outside a bar.
type Label struct {
	X     float64 `json:"x" yaml:"x"`
	Y     float64 `json:"y" yaml:"y"`
	Align string  `json:"align" yaml:"align"` // "start" or "end"
	Text  string  `json:"text" yaml:"text"`
}

// Tick is an axis tick on the value axis.
type Tick struct {
	Value float64 `json:"value" yaml:"value"`
	X     float64 `json:"x" yaml:"x"`
	Label string  `json:"label" yaml:"label"`
}

// =============================================================================
// Layout Serialization API
// =============================================================================

// MarshalLayout serializes a Layout to pretty-printed JSON bytes.
func MarshalLayout(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// UnmarshalLayout deserializes JSON bytes into a Layout.
// It rejects documents without a frame.
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("unmarshal layout: %w", err)
	}
	if l.Width <= 0 || l.Height <= 0 {
		return Layout{}, fmt.Errorf("layout must have a positive frame, got %vx%v", l.Width, l.Height)
	}
	return l, nil
}

// WriteLayoutFile writes a Layout to a JSON file.
func WriteLayoutFile(l Layout, path string) error {
	data, err := MarshalLayout(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadLayoutFile reads a Layout from a JSON file.
func ReadLayoutFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalLayout(data)
}
