// Package source obtains raw tabular text for the ingestor.
//
// An input string selects one of four sources:
//
//   - "-": standard input
//   - "http://..." or "https://...": a published spreadsheet export, fetched
//     through an [httputil.Client] with caching and retry
//   - "*.xlsx": one sheet of a workbook, read with excelize
//   - anything else: a local text file
//
// Every source yields text in the format the ingestor accepts. Workbook
// rows are joined with tabs, the same shape a spreadsheet produces when
// rows are copied to the clipboard.
//
//	src, err := source.Open("sales.xlsx", source.Options{Sheet: "2023"})
//	text, err := src.Read(ctx)
package source
