package api

import (
	"context"
	stderrors "errors"
	"net/http"
	"testing"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redema/records/client/internal/errors"
	"github.com/redema/records/client/internal/types"
)

func TestCreate_PostsExactFieldsAndReturnsBody(t *testing.T) {
	t.Parallel()
	echo := `{"id":7,"name":"Ana","age":21,"trackId":"cs-101"}`
	rec, rc := newStub(t, http.StatusCreated, echo)

	got, err := Create(context.Background(), rc, types.RecordInput{Name: "Ana", Age: 21, TrackID: "cs-101"})
	require.NoError(t, err)
	assert.Equal(t, echo, got.String())

	reqs := rec.requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, http.MethodPost, reqs[0].Method)
	assert.Equal(t, "/create", reqs[0].Path)
	assert.JSONEq(t, `{"name":"Ana","age":21,"trackId":"cs-101"}`, reqs[0].Body)
	assert.Contains(t, reqs[0].Header.Get("Content-Type"), "application/json")
}

func TestUpdate_SendsTransactionLevel(t *testing.T) {
	t.Parallel()
	rec, rc := newStub(t, http.StatusOK, `{"id":3}`)

	req := types.UpdateRequest{
		RecordInput:      types.RecordInput{Name: "Ana", Age: 22, TrackID: 4},
		TransactionLevel: types.DefaultTransactionLevel,
	}
	_, err := Update(context.Background(), rc, "3", req)
	require.NoError(t, err)

	reqs := rec.requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, http.MethodPut, reqs[0].Method)
	assert.Equal(t, "/update/3", reqs[0].Path)
	assert.JSONEq(t, `{"name":"Ana","age":22,"trackId":4,"transactionLevel":"NO TRANSACTION"}`, reqs[0].Body)
}

func TestDelete_NoBody(t *testing.T) {
	t.Parallel()
	rec, rc := newStub(t, http.StatusOK, `{"message":"record 5 deleted"}`)

	got, err := Delete(context.Background(), rc, "5")
	require.NoError(t, err)
	assert.JSONEq(t, `{"message":"record 5 deleted"}`, got.String())

	reqs := rec.requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, http.MethodDelete, reqs[0].Method)
	assert.Equal(t, "/delete/5", reqs[0].Path)
	assert.Empty(t, reqs[0].Body)
	assert.False(t, reqs[0].HasLength)
}

func TestReadAll_ReturnsBodyVerbatim(t *testing.T) {
	t.Parallel()
	body := `[ {"id":1,"name":"a"},  {"id":2,"name":"b"} ]`
	rec, rc := newStub(t, http.StatusOK, body)

	got, err := ReadAll(context.Background(), rc)
	require.NoError(t, err)
	assert.Equal(t, body, got.String())

	reqs := rec.requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, http.MethodGet, reqs[0].Method)
	assert.Equal(t, "/read", reqs[0].Path)
}

func TestReadByID_Success(t *testing.T) {
	t.Parallel()
	rec, rc := newStub(t, http.StatusOK, `{"id":12,"name":"x","age":1,"trackId":null}`)

	got, err := ReadByID(context.Background(), rc, "12")
	require.NoError(t, err)
	var r types.Record
	require.NoError(t, got.Decode(&r))
	assert.Equal(t, int64(12), r.ID)
	assert.Equal(t, "/read/12", rec.requests()[0].Path)
}

func TestReadByID_NotFound(t *testing.T) {
	t.Parallel()
	_, rc := newStub(t, http.StatusNotFound, `{"message":"not found"}`)

	got, err := ReadByID(context.Background(), rc, "999")
	require.Error(t, err)
	assert.Nil(t, got)

	var apiErr *errors.APIError
	require.True(t, stderrors.As(err, &apiErr))
	assert.Equal(t, errors.KindStatus, apiErr.Kind)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "not found", apiErr.Message)
	assert.Equal(t, OpReadByID, apiErr.Op)
}

func TestPathIDIsEscaped(t *testing.T) {
	t.Parallel()
	rec, rc := newStub(t, http.StatusOK, `{}`)
	_, err := ReadByID(context.Background(), rc, "a/b c")
	require.NoError(t, err)
	assert.Equal(t, "/read/a%2Fb%20c", rec.requests()[0].Path)
}

func TestRecords_NonOKStatuses(t *testing.T) {
	t.Parallel()
	for _, status := range []int{http.StatusBadRequest, http.StatusConflict, http.StatusInternalServerError} {
		_, rc := newStub(t, status, `{"message":"nope"}`)
		ctx := context.Background()
		calls := map[string]func() (types.Result, error){
			OpCreate:   func() (types.Result, error) { return Create(ctx, rc, types.RecordInput{}) },
			OpUpdate:   func() (types.Result, error) { return Update(ctx, rc, "1", types.UpdateRequest{}) },
			OpDelete:   func() (types.Result, error) { return Delete(ctx, rc, "1") },
			OpReadAll:  func() (types.Result, error) { return ReadAll(ctx, rc) },
			OpReadByID: func() (types.Result, error) { return ReadByID(ctx, rc, "1") },
		}
		for op, call := range calls {
			got, err := call()
			assert.Nil(t, got, op)
			assert.True(t, errors.IsKind(err, errors.KindStatus), "%s: %v", op, err)
			assert.Equal(t, status, errors.StatusCode(err), op)
		}
	}
}

func TestRecords_DecodeErrors(t *testing.T) {
	t.Parallel()
	_, rc := newStub(t, http.StatusOK, "{bad json")
	ctx := context.Background()

	_, err := Create(ctx, rc, types.RecordInput{Name: "a"})
	assert.True(t, errors.IsKind(err, errors.KindDecode), "create: %v", err)
	_, err = ReadAll(ctx, rc)
	assert.True(t, errors.IsKind(err, errors.KindDecode), "read all: %v", err)
	_, err = Delete(ctx, rc, "1")
	assert.True(t, errors.IsKind(err, errors.KindDecode), "delete: %v", err)
}

func TestRecords_EmptyBodyIsDecodeError(t *testing.T) {
	t.Parallel()
	_, rc := newStub(t, http.StatusOK, "")
	_, err := ReadByID(context.Background(), rc, "1")
	assert.True(t, errors.IsKind(err, errors.KindDecode), "%v", err)
}

func TestRecords_HTTPDoError(t *testing.T) {
	t.Parallel()
	rc := resty.NewWithClient(&http.Client{Transport: &errRT{}}).SetBaseURL("http://example.com")
	ctx := context.Background()

	_, err := Create(ctx, rc, types.RecordInput{})
	assert.True(t, errors.IsKind(err, errors.KindTransport), "%v", err)
	_, err = Update(ctx, rc, "1", types.UpdateRequest{})
	assert.True(t, errors.IsKind(err, errors.KindTransport), "%v", err)
	_, err = Delete(ctx, rc, "1")
	assert.True(t, errors.IsKind(err, errors.KindTransport), "%v", err)
	_, err = ReadAll(ctx, rc)
	assert.True(t, errors.IsKind(err, errors.KindTransport), "%v", err)
	_, err = ReadByID(ctx, rc, "1")
	assert.True(t, errors.IsKind(err, errors.KindTransport), "%v", err)
}

func TestCreate_CtxCanceled(t *testing.T) {
	t.Parallel()
	rec, rc := newStub(t, http.StatusCreated, `{}`)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Create(ctx, rc, types.RecordInput{Name: "a"})
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, context.Canceled))
	assert.Empty(t, rec.requests(), "no request should leave a cancelled context")
}

func TestRequestIDHeader(t *testing.T) {
	t.Parallel()
	rec, rc := newStub(t, http.StatusOK, `[]`)
	ctx := WithRequestID(context.Background(), "req-1")
	assert.Equal(t, "req-1", RequestID(ctx))

	_, err := ReadAll(ctx, rc)
	require.NoError(t, err)
	assert.Equal(t, "req-1", rec.requests()[0].Header.Get(HeaderRequestID))
	assert.Equal(t, "application/json", rec.requests()[0].Header.Get("Accept"))
}
