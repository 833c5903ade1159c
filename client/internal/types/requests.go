package types

// ------------------------------
// Request Types
// ------------------------------

// RecordInput holds the fields sent on create. TrackID is forwarded as-is so
// numeric and string identifiers keep their JSON type.
type RecordInput struct {
	Name    string `json:"name"`
	Age     int    `json:"age"`
	TrackID any    `json:"trackId"`
}

// UpdateRequest holds the fields sent on update.
type UpdateRequest struct {
	RecordInput
	TransactionLevel string `json:"transactionLevel"`
}
