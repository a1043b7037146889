// Package diverging computes the geometry shared by both halves of a
// butterfly chart.
//
// # Signed Magnitudes
//
// A butterfly chart draws two series from one zero axis: the left series
// grows leftward, the right series grows rightward. [SignRecords] turns each
// [chart.Record] into a [TransformedRecord] whose left value is -|left| and
// whose right value is |right|. The sign only encodes draw direction; a
// negative source value is drawn with its magnitude like any other.
//
// # Domain
//
// [ComputeDomain] returns the max magnitude M of the symmetric value range
// [-M, M]. The largest absolute value is multiplied by [PaddingFactor] and
// rounded up, so the boundary is an integer that never clips a bar:
//
//	records 14/15 and 12/13  ->  ceil(15 * 1.1) = 17
//
// A NaN value propagates: the max, and so the domain, is NaN. Callers that
// need a drawable range coerce NaN first, as the layout package does. An
// empty record set has domain 0; see [Domain.IsDegenerate].
//
// # Labels
//
// [PlaceLabel] anchors a value label just outside the free end of a bar,
// [LabelSpacing] units away. Labels on leftward bars are end-aligned and
// grow away from the bar; labels on rightward bars are start-aligned.
//
// Everything in this package is a pure function of its arguments.
package diverging
