package errors

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// NewStatusError classifies a non-success response. When the body is an
// object with a "message" field the message is lifted onto the error;
// otherwise the raw body is kept as-is.
func NewStatusError(op string, statusCode int, body []byte) *APIError {
	var payload struct {
		Message string `json:"message"`
	}
	message := ""
	if err := json.Unmarshal(body, &payload); err == nil {
		message = payload.Message
	}
	return &APIError{
		Op:         op,
		Kind:       KindStatus,
		StatusCode: statusCode,
		Message:    message,
		Body:       body,
		Underlying: fmt.Errorf("%s failed: %s", op, statusText(statusCode)),
	}
}

// NewTransportError creates a classified error for network-level failures.
func NewTransportError(op string, err error) *APIError {
	return &APIError{
		Op:         op,
		Kind:       KindTransport,
		Underlying: fmt.Errorf("%s network error: %w", op, err),
	}
}

// NewDecodeError creates a classified error for a body that is not JSON.
func NewDecodeError(op string, statusCode int, body []byte, err error) *APIError {
	return &APIError{
		Op:         op,
		Kind:       KindDecode,
		StatusCode: statusCode,
		Body:       body,
		Underlying: fmt.Errorf("%s decode: %w", op, err),
	}
}

func statusText(code int) string {
	if text := http.StatusText(code); text != "" {
		return fmt.Sprintf("HTTP %d %s", code, text)
	}
	return fmt.Sprintf("HTTP %d", code)
}
