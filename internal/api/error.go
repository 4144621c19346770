package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"
)

// Error represents a non-2xx response from the backend.
type Error struct {
	StatusCode int
	// Message is the server-supplied message, if the body carried one.
	Message   string
	Body      []byte
	RequestID string
}

func newError(status int, body []byte, reqID string) *Error {
	return &Error{
		StatusCode: status,
		Message:    serverMessage(body),
		Body:       body,
		RequestID:  reqID,
	}
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Message != "" {
		return fmt.Sprintf("api: status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api: status %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// NotFound reports whether the backend answered 404.
func (e *Error) NotFound() bool {
	return e != nil && e.StatusCode == http.StatusNotFound
}

// serverMessage pulls a human-readable message out of an error body.
// "message" wins; "error" and "title" (ASP.NET problem details) are
// accepted as fallbacks when they are plain strings.
func serverMessage(body []byte) string {
	if len(body) == 0 || !gjson.ValidBytes(body) {
		return ""
	}
	for _, path := range []string{"message", "error", "title"} {
		r := gjson.GetBytes(body, path)
		if r.Type == gjson.String && strings.TrimSpace(r.Str) != "" {
			return r.Str
		}
	}
	return ""
}

// IsNotFound reports whether err is (or wraps) a 404 *Error.
func IsNotFound(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.NotFound()
}
