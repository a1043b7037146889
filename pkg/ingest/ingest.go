package ingest

import (
	"fmt"
	"math"
	"strings"

	"github.com/matzehuels/butterfly/pkg/chart"
)

// minColumns is the number of cells a data row needs: category, left, right.
const minColumns = 3

// NaNPolicy decides what happens to a numeric cell that cleans to NaN.
type NaNPolicy int

const (
	// NaNCoerceZero replaces NaN with 0. This is the default.
	NaNCoerceZero NaNPolicy = iota
	// NaNPropagate keeps NaN in the record. Consumers that need a finite
	// magnitude must handle it.
	NaNPropagate
	// NaNDropRow drops any row with a NaN value.
	NaNDropRow
)

var nanPolicyNames = map[NaNPolicy]string{
	NaNCoerceZero: "zero",
	NaNPropagate:  "propagate",
	NaNDropRow:    "drop",
}

// String returns the configuration name of the policy.
func (p NaNPolicy) String() string {
	if s, ok := nanPolicyNames[p]; ok {
		return s
	}
	return fmt.Sprintf("NaNPolicy(%d)", int(p))
}

// ParseNaNPolicy maps a configuration value to a policy.
// The empty string selects [NaNCoerceZero].
func ParseNaNPolicy(name string) (NaNPolicy, error) {
	if name == "" {
		return NaNCoerceZero, nil
	}
	for p, s := range nanPolicyNames {
		if s == name {
			return p, nil
		}
	}
	return 0, fmt.Errorf("unknown NaN policy: %q (must be one of: zero, propagate, drop)", name)
}

// Option configures a [Parser].
type Option func(*Parser)

// WithHeaderStrategy sets how the first line is classified.
// A nil strategy is ignored.
func WithHeaderStrategy(s HeaderStrategy) Option {
	return func(p *Parser) {
		if s != nil {
			p.header = s
		}
	}
}

// WithNaNPolicy sets how non-numeric cells are treated.
func WithNaNPolicy(policy NaNPolicy) Option {
	return func(p *Parser) { p.nan = policy }
}

// WithDelimiter forces a delimiter instead of detecting it.
// Zero restores detection.
func WithDelimiter(d rune) Option {
	return func(p *Parser) { p.delimiter = d }
}

// WithExtras collects cells beyond the third column into [Result.Extras].
func WithExtras() Option {
	return func(p *Parser) { p.extras = true }
}

// Parser converts delimited text into records. A Parser holds only its
// configuration and is safe for concurrent use.
type Parser struct {
	header    HeaderStrategy
	nan       NaNPolicy
	delimiter rune
	extras    bool
}

// NewParser creates a Parser with [NumericPeek] header detection, delimiter
// detection, and [NaNCoerceZero].
func NewParser(opts ...Option) *Parser {
	p := &Parser{header: NumericPeek{}}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Result is the outcome of one parse.
type Result struct {
	// Records in source line order.
	Records []chart.Record
	// Extras holds cells beyond column 3 when [WithExtras] is set.
	Extras chart.Extras
	// Header is the first line's cells when it was classified as a header.
	Header []string
	// Delimiter used for every line.
	Delimiter rune
	// Skipped counts non-blank rows dropped for having fewer than 3 cells.
	Skipped int
	// Dropped counts rows dropped by [NaNDropRow].
	Dropped int
}

// Dataset returns the records as a [chart.Dataset]. Series labels come from
// columns 2 and 3 of the header, when there is one.
func (r Result) Dataset() chart.Dataset {
	d := chart.Dataset{Records: r.Records, Extras: r.Extras}
	if len(r.Header) >= minColumns {
		d.LeftLabel = strings.TrimSpace(r.Header[1])
		d.RightLabel = strings.TrimSpace(r.Header[2])
	}
	return d
}

// Parse parses text with the default Parser.
func Parse(text string) []chart.Record {
	return NewParser().Parse(text).Records
}

// Parse converts text into records. It never fails; unusable rows are
// dropped and counted in the Result.
func (p *Parser) Parse(text string) Result {
	text = strings.TrimSpace(text)
	if text == "" {
		return Result{Records: []chart.Record{}, Delimiter: p.delimiterFor("")}
	}

	lines := strings.Split(text, "\n")
	res := Result{
		Records:   make([]chart.Record, 0, len(lines)),
		Delimiter: p.delimiterFor(lines[0]),
	}
	sep := string(res.Delimiter)

	start := 0
	if first := strings.Split(lines[0], sep); p.header.IsHeader(first) {
		res.Header = first
		start = 1
	}

	for _, raw := range lines[start:] {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		parts := strings.Split(line, sep)
		if len(parts) < minColumns {
			res.Skipped++
			continue
		}

		rec := chart.Record{
			Category: strings.TrimSpace(parts[0]),
			Left:     CleanNumber(parts[1]),
			Right:    CleanNumber(parts[2]),
		}
		if !p.applyNaNPolicy(&rec) {
			res.Dropped++
			continue
		}

		if p.extras && len(parts) > minColumns {
			if res.Extras == nil {
				res.Extras = make(chart.Extras)
			}
			res.Extras[len(res.Records)] = append([]string(nil), parts[minColumns:]...)
		}
		res.Records = append(res.Records, rec)
	}
	return res
}

func (p *Parser) delimiterFor(firstLine string) rune {
	if p.delimiter != 0 {
		return p.delimiter
	}
	return DetectDelimiter(firstLine)
}

// applyNaNPolicy reports whether the record should be kept.
func (p *Parser) applyNaNPolicy(rec *chart.Record) bool {
	leftNaN, rightNaN := math.IsNaN(rec.Left), math.IsNaN(rec.Right)
	if !leftNaN && !rightNaN {
		return true
	}
	switch p.nan {
	case NaNDropRow:
		return false
	case NaNPropagate:
		return true
	default:
		if leftNaN {
			rec.Left = 0
		}
		if rightNaN {
			rec.Right = 0
		}
		return true
	}
}
