package api

import (
	"context"
	"encoding/json"

	"github.com/go-resty/resty/v2"

	"github.com/redema/records/client/internal/errors"
	"github.com/redema/records/client/internal/types"
)

// Operation names used in errors, logs and metric labels.
const (
	OpCreate   = "create"
	OpUpdate   = "update"
	OpDelete   = "delete"
	OpReadAll  = "read_all"
	OpReadByID = "read_by_id"
)

// Paths served by the record service. {id} is filled from the record id.
const (
	PathCreate   = "/create"
	PathUpdate   = "/update/{id}"
	PathDelete   = "/delete/{id}"
	PathReadAll  = "/read"
	PathReadByID = "/read/{id}"
)

// HeaderRequestID carries the per-call correlation id.
const HeaderRequestID = "X-Request-ID"

type requestIDKey struct{}

// WithRequestID returns a context whose requests carry id in HeaderRequestID.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID returns the correlation id stored by WithRequestID.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// send executes one exchange and applies the shared policy: transport
// failures, non-2xx statuses and non-JSON bodies all come back as
// *errors.APIError; otherwise the body is returned unchanged.
func send(ctx context.Context, op string, req *resty.Request, method, path string) (types.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.NewTransportError(op, err)
	}
	req.SetContext(ctx).SetHeader("Accept", "application/json")
	if id := RequestID(ctx); id != "" {
		req.SetHeader(HeaderRequestID, id)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return nil, errors.NewTransportError(op, err)
	}

	body := resp.Body()
	if !resp.IsSuccess() {
		return nil, errors.NewStatusError(op, resp.StatusCode(), body)
	}

	var probe json.RawMessage
	if err := json.Unmarshal(body, &probe); err != nil {
		return nil, errors.NewDecodeError(op, resp.StatusCode(), body, err)
	}
	return types.Result(body), nil
}

// jsonRequest prepares a request carrying body as JSON.
func jsonRequest(rc *resty.Client, body any) *resty.Request {
	return rc.R().
		SetHeader("Content-Type", "application/json").
		SetBody(body)
}
