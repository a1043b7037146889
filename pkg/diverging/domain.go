package diverging

import (
	"math"

	"github.com/matzehuels/butterfly/pkg/chart"
)

// PaddingFactor is the headroom applied to the largest magnitude before
// rounding up to the domain boundary.
const PaddingFactor = 1.1

// ComputeDomain returns ceil(max(|left|, |right|) * PaddingFactor) over all
// records, or 0 when records is empty. A NaN value makes the domain NaN.
func ComputeDomain(records []chart.Record) float64 {
	return ComputeDomainWithPadding(records, PaddingFactor)
}

// ComputeDomainWithPadding is [ComputeDomain] with a custom padding factor.
// Factors below 1 are treated as 1 so the domain never clips a bar.
func ComputeDomainWithPadding(records []chart.Record, factor float64) float64 {
	if !(factor >= 1) {
		factor = 1
	}
	return math.Ceil(MaxMagnitude(records) * factor)
}

// MaxMagnitude returns the largest absolute value across both series. It is
// 0 for an empty slice and NaN when any value is NaN.
func MaxMagnitude(records []chart.Record) float64 {
	var m float64
	for _, r := range records {
		for _, v := range [2]float64{r.Left, r.Right} {
			a := math.Abs(v)
			if math.IsNaN(a) {
				return math.NaN()
			}
			if a > m {
				m = a
			}
		}
	}
	return m
}

// Domain is the symmetric value range [-Domain, Domain].
type Domain float64

// Min returns the left boundary.
func (d Domain) Min() float64 { return -float64(d) }

// Max returns the right boundary.
func (d Domain) Max() float64 { return float64(d) }

// Span returns the width of the range.
func (d Domain) Span() float64 { return 2 * float64(d) }

// IsDegenerate reports whether the range has no usable width: zero,
// negative, or not finite. Scales over a degenerate domain must map every
// value to the center.
func (d Domain) IsDegenerate() bool {
	v := float64(d)
	return !(v > 0) || math.IsInf(v, 0)
}

// DomainOf returns the padded domain of records.
func DomainOf(records []chart.Record) Domain {
	return Domain(ComputeDomain(records))
}
