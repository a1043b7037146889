package chart

import (
	"encoding/json"
	"math"
	"path/filepath"
	"strings"
	"testing"
)

func TestRecordMarshalNaN(t *testing.T) {
	r := Record{Category: "x", Left: math.NaN(), Right: 3}

	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	if !strings.Contains(string(data), `"left":null`) {
		t.Errorf("NaN should encode as null, got %s", data)
	}

	var back Record
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if !math.IsNaN(back.Left) {
		t.Errorf("Left = %v, want NaN", back.Left)
	}
	if back.Right != 3 {
		t.Errorf("Right = %v, want 3", back.Right)
	}
}

func TestRecordUnmarshalValues(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantLeft  float64
		wantRight float64
		leftNaN   bool
		rightNaN  bool
		wantErr   bool
	}{
		{name: "both present", input: `{"category":"a","left":5,"right":2}`, wantLeft: 5, wantRight: 2},
		{name: "missing right", input: `{"category":"a","left":5}`, wantLeft: 5, wantRight: 0},
		{name: "missing both", input: `{"category":"a"}`},
		{name: "explicit null", input: `{"category":"a","left":5,"right":null}`, wantLeft: 5, rightNaN: true},
		{name: "null left", input: `{"category":"a","left":null,"right":1}`, leftNaN: true, wantRight: 1},
		{name: "string value", input: `{"category":"a","left":"5"}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var r Record
			err := json.Unmarshal([]byte(tt.input), &r)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Unmarshal() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if r.Category != "a" {
				t.Errorf("Category = %q, want a", r.Category)
			}
			if tt.leftNaN != math.IsNaN(r.Left) || (!tt.leftNaN && r.Left != tt.wantLeft) {
				t.Errorf("Left = %v, want %v (NaN=%v)", r.Left, tt.wantLeft, tt.leftNaN)
			}
			if tt.rightNaN != math.IsNaN(r.Right) || (!tt.rightNaN && r.Right != tt.wantRight) {
				t.Errorf("Right = %v, want %v (NaN=%v)", r.Right, tt.wantRight, tt.rightNaN)
			}
		})
	}
}

func TestDatasetLabels(t *testing.T) {
	tests := []struct {
		name      string
		d         Dataset
		wantLeft  string
		wantRight string
	}{
		{"defaults", Dataset{}, DefaultLeftLabel, DefaultRightLabel},
		{"explicit", Dataset{LeftLabel: "2022", RightLabel: "2023"}, "2022", "2023"},
		{"partial", Dataset{LeftLabel: "A"}, "A", DefaultRightLabel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, r := tt.d.Labels()
			if l != tt.wantLeft || r != tt.wantRight {
				t.Errorf("Labels() = %q, %q, want %q, %q", l, r, tt.wantLeft, tt.wantRight)
			}
		})
	}
}

func TestExtrasGet(t *testing.T) {
	var nilExtras Extras
	if nilExtras.Get(0) != nil {
		t.Error("nil Extras should return nil")
	}

	e := Extras{1: {"note"}}
	if got := e.Get(1); len(got) != 1 || got[0] != "note" {
		t.Errorf("Get(1) = %v, want [note]", got)
	}
	if e.Get(0) != nil {
		t.Error("Get(0) should be nil")
	}
}

func TestDatasetFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	d := Dataset{
		LeftLabel:  "2022",
		RightLabel: "2023",
		Records:    []Record{{Category: "a", Left: 1, Right: 2}, {Category: "a", Left: 3, Right: 4}},
	}

	if err := WriteDatasetFile(d, path); err != nil {
		t.Fatalf("WriteDatasetFile() error: %v", err)
	}
	got, err := ReadDatasetFile(path)
	if err != nil {
		t.Fatalf("ReadDatasetFile() error: %v", err)
	}
	if got.Len() != 2 || got.Records[1].Left != 3 {
		t.Errorf("round trip mismatch: %+v", got)
	}
}

func TestUnmarshalLayoutRejectsEmptyFrame(t *testing.T) {
	if _, err := UnmarshalLayout([]byte(`{"width":0,"height":0,"rows":[]}`)); err == nil {
		t.Error("expected error for empty frame")
	}
	if _, err := UnmarshalLayout([]byte(`not json`)); err == nil {
		t.Error("expected error for malformed JSON")
	}

	l, err := UnmarshalLayout([]byte(`{"width":800,"height":600,"rows":[]}`))
	if err != nil {
		t.Fatalf("UnmarshalLayout() error: %v", err)
	}
	if l.Width != 800 {
		t.Errorf("Width = %v, want 800", l.Width)
	}
}

func TestDefaultDisplayConfig(t *testing.T) {
	cfg := DefaultDisplayConfig()
	if cfg.BarThickness != 30 || cfg.GapBetweenGroups != 10 || !cfg.ShowValueLabels {
		t.Errorf("DefaultDisplayConfig() = %+v", cfg)
	}
}
