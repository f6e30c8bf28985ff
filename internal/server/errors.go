package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"energyaudit/internal/report"
)

var (
	ErrPDFRequired    = errors.New("PDF required")
	ErrUploadTooLarge = errors.New("upload too large")
)

type errorResponse struct {
	Error string `json:"error"`
}

// statusFor maps an error to the HTTP status and client-facing message.
// Anything unrecognised is an opaque internal error.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, ErrPDFRequired):
		return http.StatusBadRequest, ErrPDFRequired.Error()
	case errors.Is(err, ErrUploadTooLarge):
		return http.StatusRequestEntityTooLarge, ErrUploadTooLarge.Error()
	case errors.Is(err, report.ErrInvalidJSON):
		return http.StatusBadRequest, report.ErrInvalidJSON.Error()
	default:
		return http.StatusInternalServerError, "internal error"
	}
}

func writeError(w http.ResponseWriter, err error) {
	status, message := statusFor(err)
	writeJSON(w, status, errorResponse{Error: message})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
