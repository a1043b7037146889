package server

import (
	"encoding/json"
	"errors"
	"net/http"

	bferrors "github.com/matzehuels/butterfly/pkg/errors"
)

var (
	errNotFound = bferrors.New(bferrors.ErrCodeNotFound, "route not found")
	errTooLarge = bferrors.New(bferrors.ErrCodeInvalidInput, "request body too large")
)

type errorBody struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// statusFor maps an error code to an HTTP status.
func statusFor(err error) int {
	if errors.Is(err, errTooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	switch bferrors.GetCode(err) {
	case bferrors.ErrCodeInvalidInput, bferrors.ErrCodeInvalidFormat, bferrors.ErrCodeInvalidConfig,
		bferrors.ErrCodeInvalidPath, bferrors.ErrCodeInvalidSheet:
		return http.StatusBadRequest
	case bferrors.ErrCodeNotFound, bferrors.ErrCodeFileNotFound, bferrors.ErrCodeSheetNotFound:
		return http.StatusNotFound
	case bferrors.ErrCodeUnsupported:
		return http.StatusUnsupportedMediaType
	case bferrors.ErrCodeRateLimited:
		return http.StatusTooManyRequests
	case bferrors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	code := string(bferrors.GetCode(err))
	msg := bferrors.UserMessage(err)
	if code == "" || status == http.StatusInternalServerError {
		code = string(bferrors.ErrCodeInternal)
		msg = "internal error"
	}
	writeJSON(w, status, errorBody{Code: code, Message: msg, RequestID: RequestIDFrom(r.Context())})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}
