// Package server is a development backend implementing the item REST
// resource the client consumes.
package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/idilsaglam/catalog/internal/model"
)

const headerRequestID = "X-Request-ID"

type handler struct {
	store *Store
	log   *zap.Logger
}

// NewRouter wires the /api/items routes onto a mux router.
func NewRouter(store *Store, log *zap.Logger) *mux.Router {
	if log == nil {
		log = zap.NewNop()
	}
	h := &handler{store: store, log: log}

	r := mux.NewRouter()
	r.Use(h.logRequests)
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK\n"))
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/api/items").Subrouter()
	api.HandleFunc("", h.list).Methods(http.MethodGet)
	api.HandleFunc("", h.create).Methods(http.MethodPost)
	api.HandleFunc("/{id}", h.get).Methods(http.MethodGet)
	api.HandleFunc("/{id}", h.update).Methods(http.MethodPut)
	api.HandleFunc("/{id}", h.delete).Methods(http.MethodDelete)
	return r
}

func (h *handler) list(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.store.List())
}

func (h *handler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	it, found := h.store.Get(id)
	if !found {
		http.NotFound(w, r)
		return
	}
	h.writeJSON(w, http.StatusOK, it)
}

func (h *handler) create(w http.ResponseWriter, r *http.Request) {
	var d model.Draft
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
		http.Error(w, "malformed item", http.StatusBadRequest)
		return
	}
	it, err := h.store.Create(d)
	if err != nil {
		h.log.Error("create item", zap.Error(err))
		http.Error(w, "failed to save item", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Location", "/api/items/"+it.ID.String())
	h.writeJSON(w, http.StatusCreated, it)
}

func (h *handler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	var d model.Draft
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
		http.Error(w, "malformed item", http.StatusBadRequest)
		return
	}
	it, found, err := h.store.Update(id, d)
	switch {
	case err != nil:
		h.log.Error("update item", zap.Int64("id", id), zap.Error(err))
		http.Error(w, "failed to save item", http.StatusInternalServerError)
	case !found:
		http.NotFound(w, r)
	default:
		h.writeJSON(w, http.StatusOK, it)
	}
}

func (h *handler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	found, err := h.store.Delete(id)
	switch {
	case err != nil:
		h.log.Error("delete item", zap.Int64("id", id), zap.Error(err))
		http.Error(w, "failed to save items", http.StatusInternalServerError)
	case !found:
		http.NotFound(w, r)
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}

// pathID parses {id}. Non-numeric ids can never exist, so callers answer 404.
func pathID(r *http.Request) (int64, bool) {
	n, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	return n, err == nil
}

// writeJSON encodes before committing the status so an encode failure can
// still become a 500.
func (h *handler) writeJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		h.log.Error("encode response", zap.Error(err))
		w.Header().Del("Location")
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func (h *handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := r.Header.Get(headerRequestID)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		w.Header().Set(headerRequestID, reqID)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r)
		h.log.Info("http",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", reqID),
		)
	})
}
