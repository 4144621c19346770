// Package response writes the sandbox API's JSON responses.
//
// Success responses carry the resource itself. Every failure uses one
// envelope so clients can always find the text to show:
//
//	{ "status": "error", "message": "Name is required" }
package response

import (
	"encoding/json"
	"net/http"

	"github.com/aanand-mishra/students-client/internal/validation"
)

// Response is the error envelope.
type Response struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

const (
	StatusOK    = "ok"
	StatusError = "error"
)

// WriteJSON sets the content type and status, then encodes data.
func WriteJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// NoContent writes a bare 204.
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// GeneralError wraps any error in the envelope.
func GeneralError(err error) Response {
	return Response{Status: StatusError, Message: err.Error()}
}

// ValidationError reports every failed field in one message, using the
// same wording the client shows next to its form fields.
func ValidationError(errs []validation.FieldError) Response {
	return Response{Status: StatusError, Message: validation.Join(errs)}
}
