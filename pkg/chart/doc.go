// Package chart provides the shared data types and serialization formats for
// butterfly comparisons.
//
// This package defines the canonical wire format for butterfly data, used for
// JSON files, API responses, and cross-tool interoperability.
//
// # Architecture
//
// The package sits at the serialization boundary between the pure core and
// everything that consumes it:
//
//   - [Record], [Dataset], [DisplayConfig]: Inputs to the core (this package)
//   - pkg/diverging: Domain, sign transform, label placement
//   - pkg/layout: Frame geometry for a renderer
//   - [Layout]: Serialized frame geometry (this package)
//
// Use layout.Layout.Export and layout.Parse to convert between the internal
// and serialized layout representations.
//
// # Dataset Serialization
//
// Datasets use a small JSON document:
//
//	{
//	  "left_label": "2022",
//	  "right_label": "2023",
//	  "records": [{"category": "<50w", "left": 14, "right": 15}]
//	}
//
// Non-finite values (NaN produced by the propagate policy of pkg/ingest) are
// encoded as null and decoded back to NaN.
//
// # Layout Serialization
//
// A [Layout] is the renderer contract: frame dimensions, the symmetric domain,
// axis ticks, and one [Row] per record with both bar rectangles and their
// optional label anchors. See [MarshalLayout], [ReadLayoutFile].
package chart
