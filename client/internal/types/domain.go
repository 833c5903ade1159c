package types

// ------------------------------
// Core Domain Entities
// ------------------------------

// DefaultTransactionLevel is sent on update when the caller does not pick one.
// Its meaning is owned by the server.
const DefaultTransactionLevel = "NO TRANSACTION"

// Record represents a record as the reference server returns it.
type Record struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Age     int    `json:"age"`
	TrackID any    `json:"trackId"`
}

// ErrorPayload is the body a server sends alongside a non-success status.
type ErrorPayload struct {
	Error   string `json:"error,omitempty"`
	Code    int    `json:"code,omitempty"`
	Message string `json:"message"`
}
