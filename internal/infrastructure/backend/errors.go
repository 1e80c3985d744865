package backend

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
)

// APIError - non-2xx answer of the travel REST API or the ML service
type APIError struct {
	StatusCode int
	Method     string
	Path       string
	Body       []byte
}

func (e *APIError) Error() string {
	if len(e.Body) == 0 {
		return fmt.Sprintf("backend %s %s: status %d", e.Method, e.Path, e.StatusCode)
	}
	body := e.Body
	if len(body) > 256 {
		body = body[:256]
	}
	return fmt.Sprintf("backend %s %s: status %d: %s", e.Method, e.Path, e.StatusCode, body)
}

// StatusOf returns the HTTP status carried by err, or 0 for transport errors.
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

func IsUnauthorized(err error) bool {
	return StatusOf(err) == http.StatusUnauthorized
}

func IsNotFound(err error) bool {
	return StatusOf(err) == http.StatusNotFound
}

// IsAlreadyExists matches the duplicate-favorite answers of the backend:
// a 409, or a 400 whose body says the entry already exists.
func IsAlreadyExists(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	if apiErr.StatusCode == http.StatusConflict {
		return true
	}
	return apiErr.StatusCode == http.StatusBadRequest &&
		bytes.Contains(bytes.ToLower(apiErr.Body), []byte("already"))
}
