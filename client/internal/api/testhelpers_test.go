package api

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-resty/resty/v2"
)

// errRT is an http.RoundTripper that always returns an error (simulates network failure).
type errRT struct{}

func (e *errRT) RoundTrip(*http.Request) (*http.Response, error) { return nil, fmt.Errorf("boom") }

// captured is one request as the stub server saw it.
type captured struct {
	Method    string
	Path      string
	Body      string
	Header    http.Header
	HasLength bool
}

// recorder is a stub backend that records every request and replies with a
// fixed status and body.
type recorder struct {
	mu     sync.Mutex
	reqs   []captured
	status int
	body   string
}

func (rec *recorder) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b, _ := io.ReadAll(r.Body)
	rec.mu.Lock()
	rec.reqs = append(rec.reqs, captured{
		Method:    r.Method,
		Path:      r.URL.EscapedPath(),
		Body:      string(b),
		Header:    r.Header.Clone(),
		HasLength: r.ContentLength > 0,
	})
	rec.mu.Unlock()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(rec.status)
	_, _ = w.Write([]byte(rec.body))
}

func (rec *recorder) requests() []captured {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	return append([]captured(nil), rec.reqs...)
}

// newStub starts a recorder and returns a resty client bound to it.
func newStub(t *testing.T, status int, body string) (*recorder, *resty.Client) {
	t.Helper()
	rec := &recorder{status: status, body: body}
	srv := httptest.NewServer(rec)
	t.Cleanup(srv.Close)
	return rec, resty.NewWithClient(srv.Client()).SetBaseURL(srv.URL)
}
