package source

import (
	"context"
	"net/url"

	"github.com/matzehuels/butterfly/pkg/httputil"
)

// URLSource fetches text from an HTTP(S) URL, typically a spreadsheet
// published as CSV. A URL whose path ends in .xlsx is read as a workbook.
type URLSource struct {
	url    string
	sheet  string
	client *httputil.Client
}

// NewURLSource returns a source fetching rawURL through client.
func NewURLSource(rawURL, sheet string, client *httputil.Client) *URLSource {
	if client == nil {
		client = httputil.NewClient(nil)
	}
	return &URLSource{url: rawURL, sheet: sheet, client: client}
}

func (s *URLSource) Name() string { return s.url }
func (s *URLSource) Kind() Kind   { return KindURL }

func (s *URLSource) Read(ctx context.Context) (string, error) {
	body, err := s.client.Get(ctx, s.url)
	if err != nil {
		return "", err
	}
	if u, err := url.Parse(s.url); err == nil && isWorkbook(u.Path) {
		return readWorkbookBytes(body, s.sheet)
	}
	return string(body), nil
}
