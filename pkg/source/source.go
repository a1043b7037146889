package source

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/butterfly/pkg/errors"
	"github.com/matzehuels/butterfly/pkg/httputil"
)

// Kind identifies where raw text comes from.
type Kind string

const (
	KindFile  Kind = "file"
	KindStdin Kind = "stdin"
	KindXLSX  Kind = "xlsx"
	KindURL   Kind = "url"
)

// Stdin is the input name that selects standard input.
const Stdin = "-"

// Source produces raw tabular text.
type Source interface {
	// Name describes the source for logs and output file names.
	Name() string
	// Kind reports the source type.
	Kind() Kind
	// Read returns the full text.
	Read(ctx context.Context) (string, error)
}

// Options configures [Open].
type Options struct {
	// Sheet selects a workbook sheet. Empty selects the first sheet.
	Sheet string
	// Client fetches URL sources. Nil uses an uncached client.
	Client *httputil.Client
	// Stdin replaces os.Stdin for the "-" source.
	Stdin io.Reader
}

// Detect reports which source kind an input string selects.
func Detect(input string) Kind {
	switch {
	case input == Stdin:
		return KindStdin
	case strings.HasPrefix(input, "http://"), strings.HasPrefix(input, "https://"):
		return KindURL
	case isWorkbook(input):
		return KindXLSX
	default:
		return KindFile
	}
}

// Open validates input and returns the matching source.
func Open(input string, opts Options) (Source, error) {
	if err := errors.ValidateSheetName(opts.Sheet); err != nil {
		return nil, err
	}

	switch Detect(input) {
	case KindStdin:
		r := opts.Stdin
		if r == nil {
			r = os.Stdin
		}
		return &StdinSource{r: r}, nil
	case KindURL:
		if err := errors.ValidateURL(input); err != nil {
			return nil, err
		}
		client := opts.Client
		if client == nil {
			client = httputil.NewClient(nil)
		}
		return &URLSource{url: input, sheet: opts.Sheet, client: client}, nil
	case KindXLSX:
		if err := errors.ValidatePath(input); err != nil {
			return nil, err
		}
		return &WorkbookSource{path: input, sheet: opts.Sheet}, nil
	default:
		if err := errors.ValidatePath(input); err != nil {
			return nil, err
		}
		return &FileSource{path: input}, nil
	}
}

// Read opens input and reads it in one step.
func Read(ctx context.Context, input string, opts Options) (string, error) {
	src, err := Open(input, opts)
	if err != nil {
		return "", err
	}
	return src.Read(ctx)
}

// BaseName returns a file name stem for outputs derived from a source, such
// as "sales" for "data/sales.csv" or "sheet" for a URL ending in "/sheet".
func BaseName(src Source) string {
	name := src.Name()
	if src.Kind() == KindStdin {
		return "butterfly"
	}
	if src.Kind() == KindURL {
		if i := strings.IndexAny(name, "?#"); i >= 0 {
			name = name[:i]
		}
		name = strings.TrimRight(name, "/")
		name = name[strings.LastIndex(name, "/")+1:]
	}
	base := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	if base == "" || base == "." || strings.Contains(base, ":") {
		return "butterfly"
	}
	return base
}

func isWorkbook(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".xlsx" || ext == ".xlsm"
}
