package ingest

import (
	"fmt"
	"math"
	"strings"
)

// HeaderStrategy decides whether the first line of the input is a header.
// fields is the first line split by the detected delimiter.
type HeaderStrategy interface {
	IsHeader(fields []string) bool
}

// HeaderFunc adapts a plain function to a [HeaderStrategy].
type HeaderFunc func(fields []string) bool

// IsHeader calls f.
func (f HeaderFunc) IsHeader(fields []string) bool { return f(fields) }

// NumericPeek is the default strategy. The first line is a header when its
// second column, with the first "%" removed, does not start with a number.
//
// Fallback: a first line without a second column is a header.
//
// A header whose second column starts with a digit ("2022年") is read as
// data, and a data row whose second cell is non-numeric is read as a header.
// Both are accepted ambiguities of the heuristic.
type NumericPeek struct{}

// IsHeader implements [HeaderStrategy].
func (NumericPeek) IsHeader(fields []string) bool {
	if len(fields) < 2 {
		return true
	}
	return math.IsNaN(parseNumberPrefix(strings.Replace(fields[1], "%", "", 1)))
}

// AlwaysHeader treats the first line as a header unconditionally.
type AlwaysHeader struct{}

// IsHeader implements [HeaderStrategy].
func (AlwaysHeader) IsHeader([]string) bool { return true }

// NeverHeader treats the first line as data unconditionally.
type NeverHeader struct{}

// IsHeader implements [HeaderStrategy].
func (NeverHeader) IsHeader([]string) bool { return false }

// Header strategy names accepted by [HeaderStrategyByName].
const (
	HeaderAuto   = "auto"
	HeaderAlways = "always"
	HeaderNever  = "never"
)

// HeaderStrategyByName maps a configuration value to a strategy.
// The empty string selects [NumericPeek].
func HeaderStrategyByName(name string) (HeaderStrategy, error) {
	switch name {
	case "", HeaderAuto:
		return NumericPeek{}, nil
	case HeaderAlways:
		return AlwaysHeader{}, nil
	case HeaderNever:
		return NeverHeader{}, nil
	default:
		return nil, fmt.Errorf("unknown header strategy: %q (must be one of: auto, always, never)", name)
	}
}
