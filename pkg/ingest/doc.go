// Package ingest turns loosely formatted tabular text into ordered records.
//
// # Overview
//
// The ingestor accepts text pasted from a spreadsheet (tab separated) or a
// CSV file (comma separated) and produces one [chart.Record] per data row:
//
//	小于50w,14,15
//	50w-100w,12,13
//
// Parsing never fails. Rows that cannot be used are dropped and counted in
// [Result], and numeric cells are cleaned rather than rejected.
//
// # Detection
//
// The delimiter is chosen from the first line only: tab if it contains a tab,
// comma otherwise. Whether the first line is a header is decided by a
// [HeaderStrategy]. The default, [NumericPeek], treats the first line as a
// header when its second column does not start with a number once a "%" is
// removed. A header whose second column does start with a number (for
// example "2022年") is therefore read as data; this is the established
// behavior and is kept as is. Use [AlwaysHeader] or [NeverHeader] when the
// caller knows better.
//
// # Numeric Cleaning
//
// [CleanNumber] removes every character that is not a digit, "." or "-" and
// parses the longest numeric prefix of what remains. An empty cell is 0; a
// cell with nothing numeric left is NaN. What happens to NaN is a
// [NaNPolicy]: coerce it to 0 (default), keep it, or drop the row.
//
// # Extra Columns
//
// Columns after the third are ignored unless [WithExtras] is set, in which
// case they are collected into a [chart.Extras] side-table keyed by record
// index.
package ingest
