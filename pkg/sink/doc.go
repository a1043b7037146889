// Package sink encodes datasets and layouts for output.
//
// # Formats
//
//   - [JSON]: the documents from package chart, pretty printed
//   - [YAML]: the same documents as YAML
//   - [CSV]: records as comma separated text, see [FormatCSV]
//   - [Table]: a styled terminal table
//
// CSV output is only defined for datasets. Asking for it with a layout
// returns [ErrUnsupportedFormat].
//
// # CSV
//
// [FormatCSV] writes a "Category,<left>,<right>" header and one row per
// record with the raw numeric values. Re-parsing the output yields the same
// numbers, but the original delimiter and cell decoration are gone.
// Categories are written verbatim, so a category containing a comma does not
// survive the trip.
package sink
