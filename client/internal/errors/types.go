// Package errors classifies failures of record operations so every call
// reports them the same way, whatever the endpoint.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind says where an operation failed.
type Kind int

const (
	// KindTransport covers failures before a response arrived: connection
	// refused, DNS, timeouts and context cancellation.
	KindTransport Kind = iota

	// KindStatus means the server answered with a non-success status.
	KindStatus

	// KindDecode means the response body was not valid JSON.
	KindDecode
)

// String returns a human-readable representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindStatus:
		return "status"
	case KindDecode:
		return "decode"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// APIError wraps a failed operation with classification metadata.
type APIError struct {
	Op         string // operation name, e.g. "create"
	Kind       Kind
	StatusCode int    // HTTP status code (0 for transport errors)
	Message    string // server-provided message, when the body carried one
	Body       []byte // raw response body for debugging
	Underlying error
}

// Error implements the error interface.
func (e *APIError) Error() string {
	switch {
	case e.StatusCode > 0 && e.Message != "":
		return fmt.Sprintf("%s: [%s] HTTP %d: %s", e.Op, e.Kind, e.StatusCode, e.Message)
	case e.StatusCode > 0:
		return fmt.Sprintf("%s: [%s] HTTP %d: %v", e.Op, e.Kind, e.StatusCode, e.Underlying)
	default:
		return fmt.Sprintf("%s: [%s] %v", e.Op, e.Kind, e.Underlying)
	}
}

// Unwrap returns the underlying error for error chain compatibility.
func (e *APIError) Unwrap() error {
	return e.Underlying
}

// IsKind reports whether err is an *APIError of the given kind.
func IsKind(err error, kind Kind) bool {
	var apiErr *APIError
	if stderrors.As(err, &apiErr) {
		return apiErr.Kind == kind
	}
	return false
}

// IsNotFound reports whether the server answered 404.
func IsNotFound(err error) bool {
	return StatusCode(err) == 404
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var apiErr *APIError
	if stderrors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}
