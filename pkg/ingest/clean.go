package ingest

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

// Delimiters recognized by [DetectDelimiter].
const (
	Tab   = '\t'
	Comma = ','
)

// DetectDelimiter returns Tab if firstLine contains a tab, Comma otherwise.
func DetectDelimiter(firstLine string) rune {
	if strings.ContainsRune(firstLine, Tab) {
		return Tab
	}
	return Comma
}

// CleanNumber strips decoration from a numeric cell and parses it.
//
// An empty cell yields 0. Otherwise every character other than 0-9, "." and
// "-" is removed and the longest numeric prefix is parsed, so "14%" is 14,
// "1,234" is 1234 and "50-100" is 50. NaN is returned when nothing numeric
// remains ("-", "n/a", " ").
func CleanNumber(s string) float64 {
	if s == "" {
		return 0
	}
	cleaned := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			return r
		}
		return -1
	}, s)
	return parseNumberPrefix(cleaned)
}

// parseNumberPrefix parses the longest leading decimal number in s, skipping
// leading whitespace. It accepts an optional sign, digits with an optional
// fraction, an optional exponent, and "Infinity". It returns NaN when s does
// not start with a number.
func parseNumberPrefix(s string) float64 {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)

	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	if strings.HasPrefix(s[i:], "Infinity") {
		if s[0] == '-' {
			return math.Inf(-1)
		}
		return math.Inf(1)
	}

	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
			digits++
		}
	}
	if digits == 0 {
		return math.NaN()
	}

	end := i
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		k := j
		for k < len(s) && isDigit(s[k]) {
			k++
		}
		if k > j {
			end = k
		}
	}

	v, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		// Out of range values come back as ±Inf alongside ErrRange.
		if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
			return v
		}
		return math.NaN()
	}
	return v
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
