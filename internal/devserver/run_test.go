package devserver

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redema/records/internal/config"
	"github.com/redema/records/internal/devserver/store"
)

func TestOpenStore(t *testing.T) {
	ctx := context.Background()

	st, err := OpenStore(ctx, &config.Server{Store: config.StoreMemory})
	require.NoError(t, err)
	assert.IsType(t, &store.Memory{}, st)
	require.NoError(t, st.Close())

	path := filepath.Join(t.TempDir(), "records.db")
	st, err = OpenStore(ctx, &config.Server{Store: config.StoreSQLite, SQLitePath: path})
	require.NoError(t, err)
	require.NoError(t, st.Ping(ctx))
	require.NoError(t, st.Close())

	_, err = OpenStore(ctx, &config.Server{Store: "mongo"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported store")
}

func TestServe_ShutsDownOnCancel(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Serve(ctx, ln, store.NewMemory(), zerolog.Nop()) }()

	url := fmt.Sprintf("http://%s/healthz", ln.Addr().String())
	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(15 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}
