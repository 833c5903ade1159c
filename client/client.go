package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/redema/records/client/internal/api"
	clienterrors "github.com/redema/records/client/internal/errors"
	"github.com/redema/records/client/internal/types"
)

// --------------------------------------------------------------------
// Client core
// --------------------------------------------------------------------

// Client talks to a record service. It holds no per-call state and is safe
// for concurrent use; concurrent calls are independent and unordered.
type Client struct {
	baseURL   string
	http      *http.Client
	rest      *resty.Client
	logger    zerolog.Logger
	userAgent string

	closedOnce uint32 // ensures Close is idempotent
}

// New constructs a Client for the service at baseURL.
// Additional options can be provided via functional arguments.
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("baseURL cannot be empty")
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid baseURL %q: %w", baseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid baseURL %q: scheme and host are required", baseURL)
	}

	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
		logger:  log.Logger,
	}

	// Auto-enable debug via env variable without changing code.
	if debugLoggingRequested() {
		opts = append(opts, WithDebugLogging(true))
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	c.rest = resty.NewWithClient(c.http).
		SetBaseURL(c.baseURL).
		SetLogger(restyLogger{c.logger})
	if c.userAgent != "" {
		c.rest.SetHeader("User-Agent", c.userAgent)
	}
	return c, nil
}

// BaseURL returns the service root the client was built with.
func (c *Client) BaseURL() string { return c.baseURL }

// Close releases idle connections. Safe to call multiple times.
func (c *Client) Close() error {
	if !atomic.CompareAndSwapUint32(&c.closedOnce, 0, 1) {
		return nil
	}
	if c.http != nil {
		c.http.CloseIdleConnections()
	}
	return nil
}

// --------------------------------------------------------------------
// Record operations - delegated to internal/api
// --------------------------------------------------------------------

// Create adds a record. The server's reply is returned unchanged.
func (c *Client) Create(ctx context.Context, name string, age int, trackID any) (Result, error) {
	in := types.RecordInput{Name: name, Age: age, TrackID: trackID}
	return c.do(ctx, api.OpCreate, "", func(ctx context.Context) (Result, error) {
		return api.Create(ctx, c.rest, in)
	})
}

// Update replaces the record with the given id. The transaction level
// defaults to DefaultTransactionLevel; see WithTransactionLevel.
func (c *Client) Update(ctx context.Context, id string, name string, age int, trackID any, opts ...UpdateOption) (Result, error) {
	req := types.UpdateRequest{
		RecordInput:      types.RecordInput{Name: name, Age: age, TrackID: trackID},
		TransactionLevel: types.DefaultTransactionLevel,
	}
	for _, opt := range opts {
		opt(&req)
	}
	return c.do(ctx, api.OpUpdate, id, func(ctx context.Context) (Result, error) {
		return api.Update(ctx, c.rest, id, req)
	})
}

// Remove deletes the record with the given id.
func (c *Client) Remove(ctx context.Context, id string) (Result, error) {
	return c.do(ctx, api.OpDelete, id, func(ctx context.Context) (Result, error) {
		return api.Delete(ctx, c.rest, id)
	})
}

// FetchAll returns every record, as the server lists them.
func (c *Client) FetchAll(ctx context.Context) (Result, error) {
	return c.do(ctx, api.OpReadAll, "", func(ctx context.Context) (Result, error) {
		return api.ReadAll(ctx, c.rest)
	})
}

// FetchByID returns one record. When the server rejects the lookup its
// message is logged at warn level and a nil Result is returned with the error.
func (c *Client) FetchByID(ctx context.Context, id string) (Result, error) {
	res, err := c.do(ctx, api.OpReadByID, id, func(ctx context.Context) (Result, error) {
		return api.ReadByID(ctx, c.rest, id)
	})
	if err != nil {
		var apiErr *APIError
		if AsAPIError(err, &apiErr) && apiErr.Kind == KindStatus {
			c.logger.Warn().
				Str("id", id).
				Int("status_code", apiErr.StatusCode).
				Str("server_message", apiErr.Message).
				Msg("read record failed")
		}
		return nil, err
	}
	return res, nil
}

// do tags the call with a request id, then logs and measures it. Results
// are logged at info, failures at debug; callers report failures themselves.
func (c *Client) do(ctx context.Context, op, id string, call func(context.Context) (Result, error)) (Result, error) {
	requestID := uuid.NewString()
	ctx = api.WithRequestID(ctx, requestID)

	start := time.Now()
	res, err := call(ctx)
	elapsed := time.Since(start)

	requestDuration.WithLabelValues(op).Observe(elapsed.Seconds())
	requestsTotal.WithLabelValues(op, outcomeOf(err)).Inc()

	if err != nil {
		c.logger.Debug().
			Err(err).
			Str("op", op).
			Str("id", id).
			Str("request_id", requestID).
			Int("status_code", clienterrors.StatusCode(err)).
			Dur("elapsed", elapsed).
			Msg("record operation failed")
		return nil, err
	}

	c.logger.Info().
		Str("op", op).
		Str("id", id).
		Str("request_id", requestID).
		Int("bytes", len(res)).
		Dur("elapsed", elapsed).
		RawJSON("result", res).
		Msg("record operation completed")
	return res, nil
}

func outcomeOf(err error) string {
	if err == nil {
		return "ok"
	}
	var apiErr *APIError
	if AsAPIError(err, &apiErr) {
		return apiErr.Kind.String()
	}
	return "error"
}

// restyLogger routes resty's own warnings through zerolog.
type restyLogger struct{ l zerolog.Logger }

func (r restyLogger) Errorf(format string, v ...interface{}) { r.l.Error().Msgf(format, v...) }
func (r restyLogger) Warnf(format string, v ...interface{})  { r.l.Warn().Msgf(format, v...) }
func (r restyLogger) Debugf(format string, v ...interface{}) { r.l.Debug().Msgf(format, v...) }
