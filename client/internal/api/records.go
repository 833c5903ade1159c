package api

import (
	"context"
	"net/http"

	"github.com/go-resty/resty/v2"

	"github.com/redema/records/client/internal/types"
)

// Create sends POST /create with {name, age, trackId}. Input is not validated;
// the server is the authority.
func Create(ctx context.Context, rc *resty.Client, in types.RecordInput) (types.Result, error) {
	return send(ctx, OpCreate, jsonRequest(rc, in), http.MethodPost, PathCreate)
}

// Update sends PUT /update/{id} with {name, age, trackId, transactionLevel}.
func Update(ctx context.Context, rc *resty.Client, id string, req types.UpdateRequest) (types.Result, error) {
	r := jsonRequest(rc, req).SetPathParam("id", id)
	return send(ctx, OpUpdate, r, http.MethodPut, PathUpdate)
}

// Delete sends DELETE /delete/{id} without a body.
func Delete(ctx context.Context, rc *resty.Client, id string) (types.Result, error) {
	return send(ctx, OpDelete, rc.R().SetPathParam("id", id), http.MethodDelete, PathDelete)
}

// ReadAll sends GET /read. The body is expected to be an array but that is
// not enforced.
func ReadAll(ctx context.Context, rc *resty.Client) (types.Result, error) {
	return send(ctx, OpReadAll, rc.R(), http.MethodGet, PathReadAll)
}

// ReadByID sends GET /read/{id}.
func ReadByID(ctx context.Context, rc *resty.Client, id string) (types.Result, error) {
	return send(ctx, OpReadByID, rc.R().SetPathParam("id", id), http.MethodGet, PathReadByID)
}
