// Package devserver is a local stand-in for the record service: the five
// CRUD routes over a memory, SQLite or Postgres store.
package devserver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/redema/records/internal/config"
	"github.com/redema/records/internal/devserver/store"
	"github.com/redema/records/internal/devserver/store/postgres"
	"github.com/redema/records/internal/devserver/store/sqlite"
)

// OpenStore builds the store selected by cfg.Store.
func OpenStore(ctx context.Context, cfg *config.Server) (store.Store, error) {
	switch cfg.Store {
	case config.StoreMemory:
		return store.NewMemory(), nil
	case config.StoreSQLite:
		return sqlite.New(ctx, cfg.SQLitePath)
	case config.StorePostgres:
		return postgres.New(ctx, cfg.PostgresDSN)
	default:
		return nil, fmt.Errorf("unsupported store: %s", cfg.Store)
	}
}

// Run opens the configured store and serves on cfg's port until ctx is cancelled.
func Run(ctx context.Context, cfg *config.Server, log zerolog.Logger) error {
	st, err := OpenStore(ctx, cfg)
	if err != nil {
		log.Error().Stack().Err(err).Str("store", cfg.Store).Msg("Store unavailable")
		return err
	}
	defer func() { _ = st.Close() }()

	ln, err := net.Listen("tcp", cfg.GetHTTPAddr())
	if err != nil {
		return err
	}
	log.Info().Str("addr", ln.Addr().String()).Str("store", cfg.Store).Msg("Record server starting")
	return Serve(ctx, ln, st, log)
}

// Serve handles requests on ln until ctx is cancelled, then shuts down gracefully.
func Serve(ctx context.Context, ln net.Listener, st store.Store, log zerolog.Logger) error {
	server := &http.Server{
		Handler:           NewRouter(st, log),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("Shutting down server")
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctxShutdown); err != nil {
			log.Error().Err(err).Msg("Server forced to shutdown")
			return err
		}
		log.Info().Msg("Server exited")
		return nil
	case err, ok := <-errCh:
		if ok && err != nil {
			log.Error().Err(err).Msg("HTTP server failed")
			return err
		}
		return nil
	}
}
