// Package httputil holds the JSON response writers shared by every handler.
package httputil

import (
	"encoding/json"
	"net/http"

	dErrors "mergington/pkg/domain-errors"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// MessageResponse is the body of a successful command.
type MessageResponse struct {
	Message string `json:"message"`
}

// WriteJSON encodes v with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError translates a domain error into a status and detail body.
// Errors without a domain code, and internal errors, never leak their message.
func WriteError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	detail := "Internal server error"
	if de, ok := dErrors.As(err); ok {
		status = dErrors.ToHTTPStatus(de.Code)
		if de.Code != dErrors.CodeInternal {
			detail = de.Message
		}
	}
	WriteJSON(w, status, ErrorResponse{Detail: detail})
}
