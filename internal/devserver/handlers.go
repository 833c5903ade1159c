package devserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/redema/records/internal/devserver/respond"
	"github.com/redema/records/internal/devserver/store"
)

// RecordHandler provides HTTP transport for record operations.
type RecordHandler struct {
	store store.Store
	log   zerolog.Logger
}

// NewRecordHandler returns handlers backed by st.
func NewRecordHandler(st store.Store, log zerolog.Logger) *RecordHandler {
	return &RecordHandler{store: st, log: log}
}

type createRecordRequest struct {
	Name    string          `json:"name"`
	Age     int             `json:"age"`
	TrackID json.RawMessage `json:"trackId"`
}

// Fields left out of an update keep their stored value.
type updateRecordRequest struct {
	Name             *string         `json:"name"`
	Age              *int            `json:"age"`
	TrackID          json.RawMessage `json:"trackId"`
	TransactionLevel string          `json:"transactionLevel"`
}

// Create POST /create
func (h *RecordHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "invalid JSON")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		respond.WriteBadRequest(w, "name is required")
		return
	}
	rec, err := h.store.Create(r.Context(), store.Input{Name: req.Name, Age: req.Age, TrackID: req.TrackID})
	if err != nil {
		h.log.Error().Err(err).Msg("create record")
		respond.WriteInternalError(w, err.Error())
		return
	}
	respond.WriteJSON(w, http.StatusCreated, rec)
}

// List GET /read
func (h *RecordHandler) List(w http.ResponseWriter, r *http.Request) {
	recs, err := h.store.List(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("list records")
		respond.WriteInternalError(w, err.Error())
		return
	}
	respond.WriteJSON(w, http.StatusOK, recs)
}

// Get GET /read/{id}
func (h *RecordHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := recordID(w, r)
	if !ok {
		return
	}
	rec, err := h.store.Get(r.Context(), id)
	if err != nil {
		h.writeStoreError(w, id, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, rec)
}

// Update PUT /update/{id}
func (h *RecordHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := recordID(w, r)
	if !ok {
		return
	}
	var req updateRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "invalid JSON")
		return
	}
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		respond.WriteBadRequest(w, "name is required")
		return
	}

	current, err := h.store.Get(r.Context(), id)
	if err != nil {
		h.writeStoreError(w, id, err)
		return
	}
	in := store.Input{Name: current.Name, Age: current.Age, TrackID: current.TrackID}
	if req.Name != nil {
		in.Name = *req.Name
	}
	if req.Age != nil {
		in.Age = *req.Age
	}
	if req.TrackID != nil {
		in.TrackID = req.TrackID
	}

	h.log.Info().
		Int64("id", id).
		Str("transaction_level", req.TransactionLevel).
		Msg("updating record")

	rec, err := h.store.Update(r.Context(), id, in)
	if err != nil {
		h.writeStoreError(w, id, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, rec)
}

// Delete DELETE /delete/{id}
func (h *RecordHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := recordID(w, r)
	if !ok {
		return
	}
	if err := h.store.Delete(r.Context(), id); err != nil {
		h.writeStoreError(w, id, err)
		return
	}
	respond.WriteMessage(w, http.StatusOK, fmt.Sprintf("record %d deleted", id))
}

func (h *RecordHandler) writeStoreError(w http.ResponseWriter, id int64, err error) {
	if errors.Is(err, store.ErrNotFound) {
		respond.WriteNotFound(w, fmt.Sprintf("record %d not found", id))
		return
	}
	h.log.Error().Err(err).Int64("id", id).Msg("record store failure")
	respond.WriteInternalError(w, err.Error())
}

func recordID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		respond.WriteBadRequest(w, fmt.Sprintf("invalid record id %q", raw))
		return 0, false
	}
	return id, true
}
