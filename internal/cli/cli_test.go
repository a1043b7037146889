package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/butterfly/pkg/chart"
	"github.com/matzehuels/butterfly/pkg/pipeline"
)

const testData = "Category\tBefore\tAfter\nApples\t-10\t20\nPears\t5\t-40\n"

// runCLI executes the command tree with an isolated config that disables
// caching. It returns captured stdout and stderr.
func runCLI(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("BUTTERFLY_CACHE_BACKEND", "none")

	var stdout, stderr bytes.Buffer
	err := run(context.Background(), args, strings.NewReader(stdin), &stdout, &stderr)
	return stdout.String(), stderr.String(), err
}

func writeTemp(t *testing.T, name, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestExampleCommand(t *testing.T) {
	out, _, err := runCLI(t, "", "example")
	if err != nil {
		t.Fatalf("example: %v", err)
	}
	if out != chart.SampleCSV+"\n" {
		t.Errorf("example output = %q", out)
	}
}

func TestParseCommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "csv from stdin",
			args: []string{"parse", "-f", "csv"},
			want: "Category,Before,After\nApples,-10,20\nPears,5,-40\n",
		},
		{
			name: "label override",
			args: []string{"parse", "-f", "csv", "--left-label", "2022", "--right-label", "2023"},
			want: "Category,2022,2023\nApples,-10,20\nPears,5,-40\n",
		},
		{
			name: "header never keeps first row",
			args: []string{"parse", "-f", "CSV", "--header", "never", "--nan", "drop"},
			want: "Category,Left,Right\nApples,-10,20\nPears,5,-40\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := runCLI(t, testData, tt.args...)
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if out != tt.want {
				t.Errorf("output = %q, want %q", out, tt.want)
			}
		})
	}
}

func TestParseCommandJSON(t *testing.T) {
	path := writeTemp(t, "sales.csv", "Category,Before,After\nApples,-10,20\n")
	out, _, err := runCLI(t, "", "parse", path, "-f", "json")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	ds, err := chart.UnmarshalDataset([]byte(out))
	if err != nil {
		t.Fatalf("UnmarshalDataset: %v", err)
	}
	if ds.LeftLabel != "Before" || ds.RightLabel != "After" || len(ds.Records) != 1 {
		t.Errorf("dataset = %+v", ds)
	}
}

func TestParseCommandOutputFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.yaml")
	if _, _, err := runCLI(t, testData, "parse", "-f", "yaml", "-o", out); err != nil {
		t.Fatalf("parse: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "category: Apples") {
		t.Errorf("yaml output = %s", data)
	}
}

func TestCommandErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"missing file", []string{"parse", filepath.Join(t.TempDir(), "nope.csv")}},
		{"bad format", []string{"parse", "-f", "svg"}},
		{"bad nan policy", []string{"parse", "--nan", "maybe"}},
		{"bad delimiter", []string{"render", "--delimiter", "pipe"}},
		{"negative width", []string{"layout", "-o", "-", "--width", "-5"}},
		{"multiple formats to stdout", []string{"render", "-f", "json,yaml", "-o", "-"}},
		{"too many args", []string{"parse", "a.csv", "b.csv"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := runCLI(t, testData, tt.args...); err == nil {
				t.Errorf("%v: expected error", tt.args)
			}
		})
	}
}

func TestLayoutCommand(t *testing.T) {
	out := filepath.Join(t.TempDir(), "chart.layout.json")
	_, stderr, err := runCLI(t, testData, "layout", "-o", out, "--title", "Harvest")
	if err != nil {
		t.Fatalf("layout: %v", err)
	}
	if !strings.Contains(stderr, out) {
		t.Errorf("status output %q does not name %s", stderr, out)
	}

	l, err := chart.ReadLayoutFile(out)
	if err != nil {
		t.Fatalf("ReadLayoutFile: %v", err)
	}
	if l.Domain != 44 {
		t.Errorf("Domain = %v, want 44", l.Domain)
	}
	if len(l.Rows) != 2 || l.Rows[0].Category != "Apples" {
		t.Errorf("rows = %+v", l.Rows)
	}
	if l.LeftLabel != "Before" || l.RightLabel != "After" {
		t.Errorf("labels = %q, %q", l.LeftLabel, l.RightLabel)
	}
	if l.Appearance.Title != "Harvest" {
		t.Errorf("Title = %q", l.Appearance.Title)
	}
	for _, r := range l.Rows {
		if r.LeftBar.Width >= 0 || r.RightBar.Width <= 0 {
			t.Errorf("%s bars = %+v / %+v, want left negative and right positive", r.Category, r.LeftBar, r.RightBar)
		}
	}
}

func TestLayoutCommandDisplayFlags(t *testing.T) {
	out, _, err := runCLI(t, testData, "layout", "-o", "-", "--bar-thickness", "20", "--value-labels=false", "--width", "600")
	if err != nil {
		t.Fatalf("layout: %v", err)
	}
	l, err := chart.UnmarshalLayout([]byte(out))
	if err != nil {
		t.Fatalf("UnmarshalLayout: %v", err)
	}
	if l.Width != 600 || l.Display.BarThickness != 20 || l.Display.ShowValueLabels {
		t.Errorf("display flags not applied: width=%v display=%+v", l.Width, l.Display)
	}
	for _, r := range l.Rows {
		if r.LeftValue != nil || r.RightValue != nil {
			t.Errorf("row %q has value labels", r.Category)
		}
	}
}

func TestRenderCommand(t *testing.T) {
	out, _, err := runCLI(t, testData, "render", "-f", "table")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{"Apples", "Pears", "Before", "After"} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderCommandMultipleFormats(t *testing.T) {
	base := filepath.Join(t.TempDir(), "harvest")
	if _, _, err := runCLI(t, testData, "render", "-f", "json,csv,yaml", "-o", base); err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, ext := range []string{".json", ".csv", ".yaml"} {
		if _, err := os.Stat(base + ext); err != nil {
			t.Errorf("missing %s: %v", ext, err)
		}
	}
	data, err := os.ReadFile(base + ".csv")
	if err != nil {
		t.Fatal(err)
	}
	if want := "Category,Before,After\nApples,-10,20\nPears,5,-40\n"; string(data) != want {
		t.Errorf("csv = %q, want %q", data, want)
	}
}

func TestInspectCommandPlain(t *testing.T) {
	out, _, err := runCLI(t, testData, "inspect", "--plain")
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	if !strings.Contains(out, "Apples") {
		t.Errorf("inspect output missing rows:\n%s", out)
	}

	path := filepath.Join(t.TempDir(), "chart.layout.json")
	if _, _, err := runCLI(t, testData, "layout", "-o", path); err != nil {
		t.Fatalf("layout: %v", err)
	}
	out, _, err = runCLI(t, "", "inspect", path, "--plain")
	if err != nil {
		t.Fatalf("inspect layout file: %v", err)
	}
	if !strings.Contains(out, "Pears") {
		t.Errorf("inspect output missing rows:\n%s", out)
	}
}

func TestConfigCommands(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	if _, _, err := runCLI(t, "", "--config", path, "config", "init"); err != nil {
		t.Fatalf("config init: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config not written: %v", err)
	}

	_, stderr, err := runCLI(t, "", "--config", path, "config", "init")
	if err != nil {
		t.Fatalf("second config init: %v", err)
	}
	if !strings.Contains(stderr, "--force") {
		t.Errorf("second init should warn, got %q", stderr)
	}

	out, _, err := runCLI(t, "", "--config", path, "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	for _, want := range []string{"[chart]", "[cache]", `backend = "none"`} {
		if !strings.Contains(out, want) {
			t.Errorf("config show missing %q:\n%s", want, out)
		}
	}

	out, _, err = runCLI(t, "", "--config", path, "config", "path")
	if err != nil {
		t.Fatalf("config path: %v", err)
	}
	if strings.TrimSpace(out) != path {
		t.Errorf("config path = %q, want %q", out, path)
	}
}

func TestConfigFileDefaults(t *testing.T) {
	path := writeTemp(t, "config.toml", "[chart]\nformat = \"csv\"\n")
	out, _, err := runCLI(t, testData, "--config", path, "parse")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !strings.HasPrefix(out, "Category,Before,After\n") {
		t.Errorf("config format not applied: %q", out)
	}
}

func TestInvalidConfig(t *testing.T) {
	path := writeTemp(t, "config.toml", "[chart]\nformat = \"svg\"\n")
	if _, _, err := runCLI(t, testData, "--config", path, "parse"); err == nil {
		t.Error("expected error for invalid config")
	}
}

func TestCacheCommands(t *testing.T) {
	out, _, err := runCLI(t, "", "cache", "path")
	if err != nil {
		t.Fatalf("cache path: %v", err)
	}
	if strings.TrimSpace(out) != "none" {
		t.Errorf("cache path = %q, want none", out)
	}

	_, stderr, err := runCLI(t, "", "cache", "clear")
	if err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	if !strings.Contains(stderr, "disabled") {
		t.Errorf("cache clear output = %q", stderr)
	}
}

func TestCacheFileBackend(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "entry.json"), []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}
	path := writeTemp(t, "config.toml", "[cache]\nbackend = \"file\"\ndir = \""+filepath.ToSlash(dir)+"\"\n")

	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{"--config", path, "cache", "path"}, strings.NewReader(""), &stdout, &stderr)
	if err != nil {
		t.Fatalf("cache path: %v", err)
	}
	if strings.TrimSpace(stdout.String()) != filepath.ToSlash(dir) {
		t.Errorf("cache path = %q, want %q", stdout.String(), dir)
	}

	stderr.Reset()
	err = run(context.Background(), []string{"--config", path, "cache", "clear"}, strings.NewReader(""), &stdout, &stderr)
	if err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	if !strings.Contains(stderr.String(), "Cleared 1 cached entries") {
		t.Errorf("cache clear output = %q", stderr.String())
	}
	if _, err := os.Stat(filepath.Join(dir, "entry.json")); !os.IsNotExist(err) {
		t.Errorf("entry survived clear: %v", err)
	}
}

func TestStatsLine(t *testing.T) {
	line := statsLine(pipeline.Stats{Records: 3, Skipped: 1, Header: true})
	for _, want := range []string{"3 records", "1 skipped", "header"} {
		if !strings.Contains(line, want) {
			t.Errorf("statsLine() = %q, missing %q", line, want)
		}
	}
	if strings.Contains(line, "dropped") {
		t.Errorf("statsLine() = %q, should omit zero drops", line)
	}
}
