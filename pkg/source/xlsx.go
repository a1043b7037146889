package source

import (
	"bytes"
	"context"
	"io"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/matzehuels/butterfly/pkg/errors"
)

// WorkbookSource reads one sheet of an .xlsx workbook.
type WorkbookSource struct {
	path  string
	sheet string
}

// NewWorkbookSource returns a source for sheet in the workbook at path.
// An empty sheet selects the first one.
func NewWorkbookSource(path, sheet string) *WorkbookSource {
	return &WorkbookSource{path: path, sheet: sheet}
}

func (s *WorkbookSource) Name() string { return s.path }
func (s *WorkbookSource) Kind() Kind   { return KindXLSX }

func (s *WorkbookSource) Read(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	f, err := os.Open(s.path)
	if err != nil {
		return "", readError(s.path, err)
	}
	defer f.Close()
	return ReadWorkbook(f, s.sheet)
}

// ReadWorkbook renders one sheet of the workbook in r as tab-separated text.
// Empty rows are kept as blank lines, which the ingestor skips.
func ReadWorkbook(r io.Reader, sheet string) (string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidFormat, err, "open workbook")
	}
	defer f.Close()

	name, err := resolveSheet(f, sheet)
	if err != nil {
		return "", err
	}

	rows, err := f.GetRows(name)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidFormat, err, "read sheet %q", name)
	}

	var b strings.Builder
	for _, row := range rows {
		for i, cell := range row {
			if i > 0 {
				b.WriteByte('\t')
			}
			b.WriteString(flattenCell(cell))
		}
		b.WriteByte('\n')
	}
	return b.String(), nil
}

// SheetNames lists the sheets of the workbook in r in tab order.
func SheetNames(r io.Reader) ([]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "open workbook")
	}
	defer f.Close()
	return f.GetSheetList(), nil
}

func resolveSheet(f *excelize.File, sheet string) (string, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return "", errors.New(errors.ErrCodeSheetNotFound, "workbook has no sheets")
	}
	if sheet == "" {
		return sheets[0], nil
	}
	for _, name := range sheets {
		if name == sheet {
			return name, nil
		}
	}
	return "", errors.New(errors.ErrCodeSheetNotFound, "sheet %q not found (have %s)", sheet, strings.Join(sheets, ", "))
}

// flattenCell keeps a cell on one line of one column.
func flattenCell(s string) string {
	if !strings.ContainsAny(s, "\t\r\n") {
		return s
	}
	return strings.NewReplacer("\t", " ", "\r\n", " ", "\n", " ", "\r", " ").Replace(s)
}

func readWorkbookBytes(data []byte, sheet string) (string, error) {
	return ReadWorkbook(bytes.NewReader(data), sheet)
}
