package sink

import (
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/butterfly/pkg/chart"
	"github.com/matzehuels/butterfly/pkg/ingest"
)

func TestFormatCSV(t *testing.T) {
	records := []chart.Record{
		{Category: "小于50w", Left: 14, Right: 15},
		{Category: "B", Left: 12.5, Right: -3},
		{Category: "", Left: 0, Right: 0},
	}
	got := FormatCSV(records, "2022年", "2023年")
	want := "Category,2022年,2023年\n小于50w,14,15\nB,12.5,-3\n,0,0\n"
	if got != want {
		t.Errorf("FormatCSV = %q, want %q", got, want)
	}
}

func TestFormatCSVEmpty(t *testing.T) {
	if got := FormatCSV(nil, "L", "R"); got != "Category,L,R\n" {
		t.Errorf("FormatCSV(nil) = %q", got)
	}
}

func TestFormatCSVNaN(t *testing.T) {
	got := FormatCSV([]chart.Record{{Category: "x", Left: math.NaN(), Right: 1}}, "L", "R")
	if !strings.Contains(got, "x,NaN,1\n") {
		t.Errorf("FormatCSV = %q", got)
	}
}

func TestFormatCSVRoundTrip(t *testing.T) {
	records := []chart.Record{
		{Category: "a", Left: 14, Right: 15},
		{Category: "b", Left: 0.1, Right: 1234567.891},
		{Category: "c", Left: -2, Right: 1e-7},
	}
	text := FormatCSV(records, "Men", "Women")
	res := ingest.NewParser().Parse(text)
	if !reflect.DeepEqual(res.Records, records) {
		t.Errorf("round trip = %+v, want %+v", res.Records, records)
	}
	if ds := res.Dataset(); ds.LeftLabel != "Men" || ds.RightLabel != "Women" {
		t.Errorf("labels = %q/%q", ds.LeftLabel, ds.RightLabel)
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"json", JSON, false},
		{"YAML", YAML, false},
		{" csv ", CSV, false},
		{"table", Table, false},
		{"svg", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFormat(%q) error = %v", tt.in, err)
			continue
		}
		if tt.wantErr && !errors.Is(err, ErrUnsupportedFormat) {
			t.Errorf("ParseFormat(%q) error = %v, want ErrUnsupportedFormat", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatExt(t *testing.T) {
	tests := map[Format]string{JSON: ".json", YAML: ".yaml", CSV: ".csv", Table: ".txt"}
	for f, want := range tests {
		if got := f.Ext(); got != want {
			t.Errorf("%s.Ext() = %q, want %q", f, got, want)
		}
	}
}

func testDataset() chart.Dataset {
	return chart.Dataset{
		LeftLabel:  "Men",
		RightLabel: "Women",
		Records: []chart.Record{
			{Category: "A", Left: 14, Right: 15},
			{Category: "B", Left: 12, Right: 13},
		},
	}
}

func TestRenderDataset(t *testing.T) {
	ds := testDataset()

	t.Run("json", func(t *testing.T) {
		data, err := RenderDataset(ds, JSON)
		if err != nil {
			t.Fatal(err)
		}
		back, err := chart.UnmarshalDataset(data)
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(back, ds) {
			t.Errorf("json round trip = %+v", back)
		}
	})

	t.Run("yaml", func(t *testing.T) {
		data, err := RenderDataset(ds, YAML)
		if err != nil {
			t.Fatal(err)
		}
		var back chart.Dataset
		if err := yaml.Unmarshal(data, &back); err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(back, ds) {
			t.Errorf("yaml round trip = %+v", back)
		}
		if !strings.Contains(string(data), "left_label: Men") {
			t.Errorf("yaml = %s", data)
		}
	})

	t.Run("csv", func(t *testing.T) {
		data, err := RenderDataset(ds, CSV)
		if err != nil {
			t.Fatal(err)
		}
		if want := "Category,Men,Women\nA,14,15\nB,12,13\n"; string(data) != want {
			t.Errorf("csv = %q, want %q", data, want)
		}
	})

	t.Run("table", func(t *testing.T) {
		data, err := RenderDataset(ds, Table)
		if err != nil {
			t.Fatal(err)
		}
		for _, s := range []string{"Category", "Men", "Women", "A", "14", "13"} {
			if !strings.Contains(string(data), s) {
				t.Errorf("table missing %q:\n%s", s, data)
			}
		}
	})

	t.Run("unknown", func(t *testing.T) {
		if _, err := RenderDataset(ds, "svg"); !errors.Is(err, ErrUnsupportedFormat) {
			t.Errorf("error = %v, want ErrUnsupportedFormat", err)
		}
	})
}

func TestRenderLayout(t *testing.T) {
	l := chart.Layout{
		Width:      800,
		Height:     100,
		Domain:     17,
		LeftLabel:  "Men",
		RightLabel: "Women",
		Rows: []chart.Row{{
			Category:    "A",
			SignedLeft:  -14,
			SignedRight: 15,
			LeftValue:   &chart.Label{Text: "14%", Align: chart.AlignEnd},
			RightValue:  &chart.Label{Text: "15%", Align: chart.AlignStart},
		}},
	}

	data, err := RenderLayout(l, JSON)
	if err != nil {
		t.Fatal(err)
	}
	if back, err := chart.UnmarshalLayout(data); err != nil || back.Rows[0].Category != "A" {
		t.Errorf("json round trip = %+v, %v", back, err)
	}

	data, err = RenderLayout(l, YAML)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "signed_left: -14") {
		t.Errorf("yaml = %s", data)
	}

	data, err = RenderLayout(l, Table)
	if err != nil {
		t.Fatal(err)
	}
	for _, s := range []string{"-14", "14%", "15%"} {
		if !strings.Contains(string(data), s) {
			t.Errorf("table missing %q:\n%s", s, data)
		}
	}

	if _, err := RenderLayout(l, CSV); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("csv error = %v, want ErrUnsupportedFormat", err)
	}
}
