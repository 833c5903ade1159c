package types

import (
	"encoding/json"
	"errors"
)

// ------------------------------
// Response Types
// ------------------------------

// Result is a JSON document returned by the server, kept byte-for-byte.
type Result []byte

// MarshalJSON returns the raw document so a Result can be embedded in other payloads.
func (r Result) MarshalJSON() ([]byte, error) {
	if r == nil {
		return []byte("null"), nil
	}
	return r, nil
}

// UnmarshalJSON stores a copy of data.
func (r *Result) UnmarshalJSON(data []byte) error {
	if r == nil {
		return errors.New("types.Result: UnmarshalJSON on nil pointer")
	}
	*r = append((*r)[0:0], data...)
	return nil
}

// Decode binds the document into v.
func (r Result) Decode(v any) error {
	return json.Unmarshal(r, v)
}

// String returns the document as text.
func (r Result) String() string { return string(r) }
