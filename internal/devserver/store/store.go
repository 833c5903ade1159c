// Package store persists records for the local record server.
// Implementations live under internal/devserver/store/<driver>/ (postgres, sqlite);
// the in-memory store lives here.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
)

// ErrNotFound is returned when no record has the requested id.
var ErrNotFound = errors.New("record not found")

// Record is a stored record. TrackID keeps the JSON the caller sent so
// numeric and string track ids round-trip unchanged.
type Record struct {
	ID      int64           `json:"id"`
	Name    string          `json:"name"`
	Age     int             `json:"age"`
	TrackID json.RawMessage `json:"trackId"`
}

// Input holds the writable fields of a record.
type Input struct {
	Name    string
	Age     int
	TrackID json.RawMessage
}

// Store exposes the persistence operations the record handlers need.
type Store interface {
	Create(ctx context.Context, in Input) (*Record, error)
	List(ctx context.Context) ([]*Record, error)
	Get(ctx context.Context, id int64) (*Record, error)
	Update(ctx context.Context, id int64, in Input) (*Record, error)
	Delete(ctx context.Context, id int64) error
	Ping(ctx context.Context) error
	Close() error
}

// NullableTrackID returns the track id as text for a nullable column, or
// nil when it is absent or JSON null.
func NullableTrackID(raw json.RawMessage) any {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	return string(trimmed)
}

// TrackIDFromColumn converts a nullable column value back to JSON.
func TrackIDFromColumn(valid bool, s string) json.RawMessage {
	if !valid {
		return nil
	}
	return json.RawMessage(s)
}
