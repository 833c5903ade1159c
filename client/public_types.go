package client

import "github.com/redema/records/client/internal/types"

// Public type aliases so SDK consumers can import only the client package.
type (
	// Requests
	RecordInput   = types.RecordInput
	UpdateRequest = types.UpdateRequest

	// Responses
	Result       = types.Result
	Record       = types.Record
	ErrorPayload = types.ErrorPayload
)

// DefaultTransactionLevel is sent by Update unless WithTransactionLevel is given.
const DefaultTransactionLevel = types.DefaultTransactionLevel

// UpdateOption adjusts an update request before it is sent.
type UpdateOption func(*types.UpdateRequest)

// WithTransactionLevel overrides the transaction level forwarded on update.
// The value is opaque to the client.
func WithTransactionLevel(level string) UpdateOption {
	return func(r *types.UpdateRequest) { r.TransactionLevel = level }
}
