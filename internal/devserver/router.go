package devserver

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/redema/records/internal/devserver/recovery"
	"github.com/redema/records/internal/devserver/respond"
	"github.com/redema/records/internal/devserver/store"
)

// NewRouter wires the five record routes plus /healthz and /metrics.
func NewRouter(st store.Store, log zerolog.Logger) *mux.Router {
	root := mux.NewRouter()
	root.Use(recovery.Middleware(log))
	root.Use(accessLog(log))

	h := NewRecordHandler(st, log)
	root.HandleFunc("/create", h.Create).Methods(http.MethodPost)
	root.HandleFunc("/read", h.List).Methods(http.MethodGet)
	root.HandleFunc("/read/{id}", h.Get).Methods(http.MethodGet)
	root.HandleFunc("/update/{id}", h.Update).Methods(http.MethodPut)
	root.HandleFunc("/delete/{id}", h.Delete).Methods(http.MethodDelete)

	root.HandleFunc("/healthz", health(st)).Methods(http.MethodGet)
	root.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	root.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respond.WriteNotFound(w, "no route for "+r.URL.Path)
	})
	root.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respond.WriteError(w, http.StatusMethodNotAllowed, r.Method+" not allowed on "+r.URL.Path)
	})
	return root
}

func health(st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := st.Ping(r.Context()); err != nil {
			respond.WriteError(w, http.StatusServiceUnavailable, err.Error())
			return
		}
		respond.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// accessLog logs each request and counts it by route template.
func accessLog(log zerolog.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)

			route := r.URL.Path
			if cur := mux.CurrentRoute(r); cur != nil {
				if tpl, err := cur.GetPathTemplate(); err == nil {
					route = tpl
				}
			}
			requestsTotal.WithLabelValues(route, r.Method, strconv.Itoa(rec.status)).Inc()

			log.Debug().
				Str("method", r.Method).
				Str("route", route).
				Str("path", r.URL.Path).
				Int("status_code", rec.status).
				Str("request_id", r.Header.Get(recovery.HeaderRequestID)).
				Dur("elapsed", time.Since(start)).
				Msg("request served")
		})
	}
}
