package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mkarlsen/tally/internal/apperr"
	"github.com/mkarlsen/tally/internal/service"
	"github.com/mkarlsen/tally/internal/store"
)

// Handler holds API route handlers.
type Handler struct {
	svc *service.Service
}

// NewHandler creates a new Handler.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// writeSetError maps service errors onto HTTP statuses. A failure loading
// one set never touches any other set's state; the client shows the error
// inline and the rest of the page stays interactive.
func writeSetError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, apperr.ErrUnknownSet), errors.Is(err, apperr.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody(err.Error()))
	case errors.Is(err, apperr.ErrUnsupportedSource), errors.Is(err, apperr.ErrInvalidStatus):
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
	default:
		slog.Error("set request failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadGateway, errorBody("failed to load question set"))
	}
}

// ListSets handles GET /api/sets.
func (h *Handler) ListSets(w http.ResponseWriter, _ *http.Request) {
	sets := h.svc.Sets()
	writeJSON(w, http.StatusOK, map[string]any{
		"sets":  sets,
		"total": len(sets),
	})
}

// GetSet handles GET /api/sets/{id}: the fully rendered checklist view.
func (h *Handler) GetSet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	view, err := h.svc.LoadSet(r.Context(), id)
	if err != nil {
		writeSetError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// Answer handles PUT /api/sets/{id}/answers/{qid}.
func (h *Handler) Answer(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	qid := chi.URLParam(r, "qid")

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req struct {
		Status string `json:"status"`
		Notes  string `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	status, err := store.ParseStatus(req.Status)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}

	snap, err := h.svc.Answer(r.Context(), id, qid, status, req.Notes)
	if err != nil {
		writeSetError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   status,
		"progress": snap,
	})
}

// Note handles PATCH /api/sets/{id}/answers/{qid}/notes. Status and
// progress are untouched by note edits.
func (h *Handler) Note(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	qid := chi.URLParam(r, "qid")

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req struct {
		Notes string `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}

	state, err := h.svc.Note(r.Context(), id, qid, req.Notes)
	if err != nil {
		writeSetError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

// Progress handles GET /api/sets/{id}/progress.
func (h *Handler) Progress(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	snap, err := h.svc.Progress(r.Context(), id)
	if err != nil {
		writeSetError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// Export handles GET /api/sets/{id}/export: the answered checklist as a
// pretty-printed JSON download.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	doc, filename, err := h.svc.Export(r.Context(), id)
	if err != nil {
		writeSetError(w, err)
		return
	}
	data, err := doc.Marshal()
	if err != nil {
		slog.Error("export marshal failed", slog.String("set", id), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
