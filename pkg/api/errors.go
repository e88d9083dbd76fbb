package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is the single classified error kind produced by the client. Callers
// branch on the presence of Status (0 means the request never yielded an HTTP
// response: network failure, cancelled context, invalid input) and on Message;
// there is deliberately no richer taxonomy.
type Error struct {
	// Message is the human-readable description shown to the operator.
	Message string

	// Status is the HTTP status code of the failed response, or 0 when no
	// response was obtained.
	Status int

	// Detail is the server-supplied detail string, when the response body
	// carried one.
	Detail string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Status == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
}

// AsError unwraps err into an *Error if one is present in its chain.
func AsError(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// StatusOf returns the HTTP status carried by err, or 0 if err is not an
// *Error or carries none.
func StatusOf(err error) int {
	if apiErr, ok := AsError(err); ok {
		return apiErr.Status
	}
	return 0
}

// IsNotFound reports whether err is an API error with status 404.
func IsNotFound(err error) bool {
	return StatusOf(err) == http.StatusNotFound
}

// IsUnauthorized reports whether err is an API error with status 401.
func IsUnauthorized(err error) bool {
	return StatusOf(err) == http.StatusUnauthorized
}

// transportError wraps a failure that occurred before any HTTP response was
// obtained (connection refused, DNS failure, cancelled context).
func transportError(err error) *Error {
	return &Error{Message: fmt.Sprintf("request failed: %v", err)}
}

// decodeError wraps a malformed or non-JSON success response.
func decodeError(err error) *Error {
	return &Error{Message: fmt.Sprintf("unexpected response from server: %v", err)}
}
