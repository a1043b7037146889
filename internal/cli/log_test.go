package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/butterfly/pkg/ingest"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{"info at info level", log.InfoLevel, func(l *log.Logger) { l.Info("parsed") }, true},
		{"debug at info level", log.InfoLevel, func(l *log.Logger) { l.Debug("cache hit") }, false},
		{"debug at debug level", log.DebugLevel, func(l *log.Logger) { l.Debug("cache hit") }, true},
		{"warn at error level", log.ErrorLevel, func(l *log.Logger) { l.Warn("dropped rows") }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.logFunc(newLogger(&buf, tt.level))
			if got := buf.Len() > 0; got != tt.wantLog {
				t.Errorf("got log output = %v, want %v", got, tt.wantLog)
			}
		})
	}
}

func TestProgressParsed(t *testing.T) {
	tests := []struct {
		name     string
		records  int
		res      ingest.Result
		want     []string
		wantWarn bool
	}{
		{
			name:    "clean csv with header",
			records: 3,
			res:     ingest.Result{Header: []string{"Category", "Men", "Women"}, Delimiter: ','},
			want:    []string{"parsed", "stage=parse", "records=3", "header=true", "delimiter=,", "elapsed="},
		},
		{
			name:     "dropped rows",
			records:  2,
			res:      ingest.Result{Delimiter: ';', Dropped: 4},
			want:     []string{"records=2", "header=false", "delimiter=;", "rows=4"},
			wantWarn: true,
		},
		{
			name:    "empty input",
			records: 0,
			res:     ingest.Result{},
			want:    []string{"records=0"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			prog := newProgress(newLogger(&buf, log.InfoLevel), "parse")
			prog.parsed(tt.records, tt.res)

			out := buf.String()
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("output %q missing %q", out, w)
				}
			}
			if got := strings.Contains(out, "dropped rows"); got != tt.wantWarn {
				t.Errorf("warned = %v, want %v (output %q)", got, tt.wantWarn, out)
			}
			if tt.res.Delimiter == 0 && strings.Contains(out, "delimiter") {
				t.Errorf("output %q should omit unknown delimiter", out)
			}
		})
	}
}

func TestProgressStageDebug(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, log.DebugLevel)

	prog := newProgress(logger, "layout")
	prog.done("computed layout", "rows", 5)

	out := buf.String()
	for _, w := range []string{"start", "stage=layout", "computed layout", "rows=5"} {
		if !strings.Contains(out, w) {
			t.Errorf("output %q missing %q", out, w)
		}
	}
}

func TestLoggerFromContext(t *testing.T) {
	var buf bytes.Buffer
	custom := newLogger(&buf, log.InfoLevel)

	if got := loggerFromContext(context.Background()); got == nil {
		t.Error("loggerFromContext should fall back to the default logger")
	}

	ctx := withLogger(context.Background(), custom)
	if got := loggerFromContext(ctx); got != custom {
		t.Error("loggerFromContext should return the attached logger")
	}
	loggerFromContext(ctx).Info("render done")
	if buf.Len() == 0 {
		t.Error("attached logger should write to its buffer")
	}
}
