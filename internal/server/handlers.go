package server

import (
	"encoding/json"
	"errors"
	"io"
	"math"
	"mime"
	"net/http"
	"strconv"

	"github.com/matzehuels/butterfly/pkg/buildinfo"
	"github.com/matzehuels/butterfly/pkg/chart"
	"github.com/matzehuels/butterfly/pkg/diverging"
	bferrors "github.com/matzehuels/butterfly/pkg/errors"
	"github.com/matzehuels/butterfly/pkg/pipeline"
	"github.com/matzehuels/butterfly/pkg/sink"
)

// =============================================================================
// Request and Response Types
// =============================================================================

// parseRequest selects ingest settings. Empty fields use the server defaults.
type parseRequest struct {
	Text       string `json:"text"`
	Header     string `json:"header,omitempty"`
	NaN        string `json:"nan,omitempty"`
	Delimiter  string `json:"delimiter,omitempty"`
	Extras     bool   `json:"extras,omitempty"`
	LeftLabel  string `json:"left_label,omitempty"`
	RightLabel string `json:"right_label,omitempty"`
}

type layoutRequest struct {
	parseRequest
	Dataset    *chart.Dataset       `json:"dataset,omitempty"`
	Display    *chart.DisplayConfig `json:"config,omitempty"`
	Appearance *chart.Appearance    `json:"appearance,omitempty"`
	Width      float64              `json:"width,omitempty"`
	Height     float64              `json:"height,omitempty"`
	AxisWidth  float64              `json:"axis_width,omitempty"`
	TickCount  int                  `json:"tick_count,omitempty"`
}

// transformResponse carries the domain bounds as pointers so a NaN domain,
// which encoding/json rejects, is written as null.
type transformResponse struct {
	Domain *float64                      `json:"domain"`
	Min    *float64                      `json:"min"`
	Max    *float64                      `json:"max"`
	Signed []diverging.TransformedRecord `json:"signed"`
}

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Version: buildinfo.Version, Commit: buildinfo.Commit})
}

// handleParse accepts raw text, or a JSON parseRequest when the content
// type is application/json. Raw requests take settings from the query
// string.
func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	var req parseRequest
	if isJSON(r) {
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, r, err)
			return
		}
	} else {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			writeError(w, r, bodyError(err))
			return
		}
		req = parseRequestFromQuery(r)
		req.Text = string(body)
	}

	opts := s.parseOptions(req)
	if err := opts.ValidateForParse(); err != nil {
		writeError(w, r, err)
		return
	}
	ds, res := pipeline.Parse(req.Text, opts)

	w.Header().Set("X-Skipped-Rows", strconv.Itoa(res.Skipped))
	w.Header().Set("X-Dropped-Rows", strconv.Itoa(res.Dropped))
	writeJSON(w, http.StatusOK, ds)
}

func (s *Server) handleTransform(w http.ResponseWriter, r *http.Request) {
	var ds chart.Dataset
	if err := s.decodeDataset(r, &ds); err != nil {
		writeError(w, r, err)
		return
	}
	domain := diverging.DomainOf(ds.Records)
	writeJSON(w, http.StatusOK, transformResponse{
		Domain: jsonNumber(domain.Max()),
		Min:    jsonNumber(domain.Min()),
		Max:    jsonNumber(domain.Max()),
		Signed: append([]diverging.TransformedRecord{}, diverging.SignRecords(ds.Records)...),
	})
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	if !acceptsJSON(r) {
		writeError(w, r, bferrors.New(bferrors.ErrCodeUnsupported, "content type must be application/json"))
		return
	}
	var req layoutRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	opts := s.parseOptions(req.parseRequest)
	if req.Display != nil {
		opts.Display = *req.Display
	}
	if req.Appearance != nil {
		opts.Appearance = *req.Appearance
	}
	if req.Width != 0 {
		opts.Width = req.Width
	}
	if req.Height != 0 {
		opts.Height = req.Height
	}
	opts.AxisWidth = req.AxisWidth
	opts.TickCount = req.TickCount

	var ds chart.Dataset
	switch {
	case req.Dataset != nil:
		ds = *req.Dataset
		if req.LeftLabel != "" {
			ds.LeftLabel = req.LeftLabel
		}
		if req.RightLabel != "" {
			ds.RightLabel = req.RightLabel
		}
	default:
		if err := opts.ValidateForParse(); err != nil {
			writeError(w, r, err)
			return
		}
		ds, _ = pipeline.Parse(req.Text, opts)
	}

	l, err := s.runner.GenerateLayout(r.Context(), ds, opts)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, l)
}

func (s *Server) handleCSV(w http.ResponseWriter, r *http.Request) {
	var ds chart.Dataset
	if err := s.decodeDataset(r, &ds); err != nil {
		writeError(w, r, err)
		return
	}
	left, right := ds.Labels()
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, sink.FormatCSV(ds.Records, left, right))
}

// =============================================================================
// Helpers
// =============================================================================

func (s *Server) parseOptions(req parseRequest) pipeline.Options {
	opts := s.defaults
	opts.Logger = s.logger
	opts.Text = req.Text
	if req.Header != "" {
		opts.Header = req.Header
	}
	if req.NaN != "" {
		opts.NaN = req.NaN
	}
	if req.Delimiter != "" {
		opts.Delimiter = req.Delimiter
	}
	opts.Extras = opts.Extras || req.Extras
	if req.LeftLabel != "" {
		opts.LeftLabel = req.LeftLabel
	}
	if req.RightLabel != "" {
		opts.RightLabel = req.RightLabel
	}
	return opts
}

func parseRequestFromQuery(r *http.Request) parseRequest {
	q := r.URL.Query()
	extras, _ := strconv.ParseBool(q.Get("extras"))
	return parseRequest{
		Header:     q.Get("header"),
		NaN:        q.Get("nan"),
		Delimiter:  q.Get("delimiter"),
		Extras:     extras,
		LeftLabel:  q.Get("left_label"),
		RightLabel: q.Get("right_label"),
	}
}

func (s *Server) decodeDataset(r *http.Request, ds *chart.Dataset) error {
	if !acceptsJSON(r) {
		return bferrors.New(bferrors.ErrCodeUnsupported, "content type must be application/json")
	}
	return decodeJSON(r, ds)
}

// jsonNumber returns nil for values JSON cannot represent.
func jsonNumber(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return bodyError(err)
	}
	return nil
}

func bodyError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return errTooLarge
	}
	if errors.Is(err, io.EOF) {
		return bferrors.New(bferrors.ErrCodeInvalidInput, "request body is empty")
	}
	return bferrors.Wrap(bferrors.ErrCodeInvalidInput, err, "invalid request body: %v", err)
}

func isJSON(r *http.Request) bool {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mt == "application/json"
}

// acceptsJSON allows a missing content type.
func acceptsJSON(r *http.Request) bool {
	return r.Header.Get("Content-Type") == "" || isJSON(r)
}
