// Package handlers provides shared HTTP response helpers for JSON APIs.
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// ErrorResponse is the JSON body returned for failed requests.
type ErrorResponse struct {
	Error string `json:"error"`
}

// RespondJSON writes value as a JSON response with the given status code.
func RespondJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(value); err != nil {
		// headers are already flushed; nothing left to do but log
		slog.Default().Error("encode response failed", "error", err)
	}
}

// RespondError logs the error and writes it as a JSON error body.
// Internal server errors are logged at error level, the rest at warn.
func RespondError(w http.ResponseWriter, logger *slog.Logger, status int, err error) {
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", "status", status, "error", err)
	} else {
		logger.Warn("request rejected", "status", status, "error", err)
	}

	RespondJSON(w, status, ErrorResponse{Error: err.Error()})
}
