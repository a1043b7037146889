package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/butterfly/pkg/ingest"
)

// newLogger returns a stderr-style logger with short "15:04:05.00" stamps.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress times one pipeline stage. Not safe for concurrent use.
type progress struct {
	logger *log.Logger
	stage  string
	start  time.Time
}

func newProgress(l *log.Logger, stage string) *progress {
	l.Debug("start", "stage", stage)
	return &progress{logger: l, stage: stage, start: time.Now()}
}

func (p *progress) elapsed() time.Duration {
	return time.Since(p.start).Round(time.Millisecond)
}

// done logs msg with the stage, any extra key-value pairs and the elapsed
// time.
func (p *progress) done(msg string, keyvals ...any) {
	kv := append([]any{"stage", p.stage}, keyvals...)
	kv = append(kv, "elapsed", p.elapsed())
	p.logger.Info(msg, kv...)
}

// parsed reports a finished parse, warning about any rows that did not
// make it into the dataset.
func (p *progress) parsed(records int, res ingest.Result) {
	kv := []any{"records", records, "header", res.Header != nil}
	if res.Delimiter != 0 {
		kv = append(kv, "delimiter", string(res.Delimiter))
	}
	p.done("parsed", kv...)
	if res.Dropped > 0 {
		p.logger.Warn("dropped rows with missing values", "rows", res.Dropped)
	}
}

type ctxKey int

const loggerKey ctxKey = 0

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the logger attached by withLogger, or
// log.Default() so commands run outside the root still log somewhere.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
