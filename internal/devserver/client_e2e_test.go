package devserver_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redema/records/client"
	"github.com/redema/records/internal/devserver"
	"github.com/redema/records/internal/devserver/store"
)

func newClient(t *testing.T) *client.Client {
	t.Helper()
	srv := httptest.NewServer(devserver.NewRouter(store.NewMemory(), zerolog.Nop()))
	t.Cleanup(srv.Close)

	c, err := client.New(srv.URL, client.WithLogger(zerolog.Nop()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestClientAgainstDevServer_Lifecycle(t *testing.T) {
	c := newClient(t)
	ctx := context.Background()

	res, err := c.Create(ctx, "Ana", 21, "cs-101")
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":1,"name":"Ana","age":21,"trackId":"cs-101"}`, res.String())

	var rec client.Record
	require.NoError(t, res.Decode(&rec))
	assert.Equal(t, int64(1), rec.ID)
	assert.Equal(t, "cs-101", rec.TrackID)

	res, err = c.Create(ctx, "Bo", 30, 42)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":2,"name":"Bo","age":30,"trackId":42}`, res.String())

	res, err = c.FetchAll(ctx)
	require.NoError(t, err)
	var all []client.Record
	require.NoError(t, res.Decode(&all))
	require.Len(t, all, 2)
	assert.Equal(t, "Bo", all[1].Name)

	res, err = c.Update(ctx, "1", "Ann", 22, "cs-102", client.WithTransactionLevel("READ COMMITTED"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":1,"name":"Ann","age":22,"trackId":"cs-102"}`, res.String())

	res, err = c.FetchByID(ctx, "1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":1,"name":"Ann","age":22,"trackId":"cs-102"}`, res.String())

	res, err = c.Remove(ctx, "1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"message":"record 1 deleted"}`, res.String())

	res, err = c.FetchByID(ctx, "1")
	require.Error(t, err)
	assert.Nil(t, res)
	assert.True(t, client.IsNotFound(err))

	var apiErr *client.APIError
	require.True(t, client.AsAPIError(err, &apiErr))
	assert.Equal(t, client.KindStatus, apiErr.Kind)
	assert.Equal(t, "record 1 not found", apiErr.Message)
}

func TestClientAgainstDevServer_UniformErrors(t *testing.T) {
	c := newClient(t)
	ctx := context.Background()

	_, err := c.Update(ctx, "9", "x", 1, nil)
	assert.True(t, client.IsNotFound(err))

	_, err = c.Remove(ctx, "9")
	assert.True(t, client.IsNotFound(err))

	_, err = c.FetchByID(ctx, "not-a-number")
	assert.True(t, client.IsKind(err, client.KindStatus))

	_, err = c.Create(ctx, "", 1, nil)
	var apiErr *client.APIError
	require.True(t, client.AsAPIError(err, &apiErr))
	assert.Equal(t, 400, apiErr.StatusCode)
	assert.Equal(t, "name is required", apiErr.Message)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = c.FetchAll(cancelled)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestClientAgainstDevServer_ConcurrentCreates(t *testing.T) {
	c := newClient(t)
	ctx := context.Background()

	const n = 20
	var wg sync.WaitGroup
	ids := make(chan int64, n)
	for i := 0; i < n; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := c.Create(ctx, "worker", i, i)
			if !assert.NoError(t, err) {
				return
			}
			var rec client.Record
			if assert.NoError(t, res.Decode(&rec)) {
				ids <- rec.ID
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := map[int64]bool{}
	for id := range ids {
		assert.False(t, seen[id], "duplicate id %d", id)
		seen[id] = true
	}
	assert.Len(t, seen, n)
}
