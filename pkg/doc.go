// Package pkg provides the libraries behind butterfly, a toolkit that turns
// tabular text pasted from a spreadsheet into the geometry of a butterfly
// chart: two series diverging from a shared zero axis.
//
// # Overview
//
// The pkg directory is organized into three areas:
//
//  1. Core - pure, synchronous computation with no I/O ([ingest],
//     [diverging], [layout])
//  2. Encoding - serialization types and output formats ([chart], [sink])
//  3. Infrastructure - sources, caching and orchestration ([source],
//     [cache], [httputil], [pipeline], [errors], [observability])
//
// # Architecture
//
// The typical data flow:
//
//	file / stdin / .xlsx / URL
//	         ↓
//	    [source] package (read raw text)
//	         ↓
//	    [ingest] package (records + series labels)
//	         ↓
//	    [diverging] package (signed values, padded domain, label anchors)
//	         ↓
//	    [layout] package (frame geometry)
//	         ↓
//	    [sink] package (json, yaml, csv, table)
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/butterfly/pkg/chart"
//	    "github.com/matzehuels/butterfly/pkg/diverging"
//	    "github.com/matzehuels/butterfly/pkg/ingest"
//	    "github.com/matzehuels/butterfly/pkg/layout"
//	)
//
//	records := ingest.Parse("Category\tBefore\tAfter\nApples\t40\t30\n")
//	domain := diverging.ComputeDomain(records) // 44
//	l := layout.Build(records, chart.DefaultDisplayConfig(), 800, 0)
//	doc := l.Export("Before", "After", chart.DefaultAppearance())
//
// The [pipeline] package wires the same stages behind one [pipeline.Runner]
// shared by the CLI and the HTTP API.
//
// # Testing
//
//	go test ./pkg/...                    # All tests
//	go test -run Example ./pkg/...       # Examples only
//
// Redis cache tests run only when BUTTERFLY_REDIS_ADDR is set.
//
// [ingest]: https://pkg.go.dev/github.com/matzehuels/butterfly/pkg/ingest
// [diverging]: https://pkg.go.dev/github.com/matzehuels/butterfly/pkg/diverging
// [layout]: https://pkg.go.dev/github.com/matzehuels/butterfly/pkg/layout
// [chart]: https://pkg.go.dev/github.com/matzehuels/butterfly/pkg/chart
// [sink]: https://pkg.go.dev/github.com/matzehuels/butterfly/pkg/sink
// [source]: https://pkg.go.dev/github.com/matzehuels/butterfly/pkg/source
// [cache]: https://pkg.go.dev/github.com/matzehuels/butterfly/pkg/cache
// [httputil]: https://pkg.go.dev/github.com/matzehuels/butterfly/pkg/httputil
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/butterfly/pkg/pipeline
// [pipeline.Runner]: https://pkg.go.dev/github.com/matzehuels/butterfly/pkg/pipeline#Runner
// [errors]: https://pkg.go.dev/github.com/matzehuels/butterfly/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/butterfly/pkg/observability
package pkg
