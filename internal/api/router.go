package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mkarlsen/tally/internal/service"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
// sseHandler, if non-nil, is mounted at GET /events inside the auth group.
func NewRouter(svc *service.Service, authEnabled bool, token string, sseHandler http.Handler) chi.Router {
	h := NewHandler(svc)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	r.Get("/sets", h.ListSets)
	r.Get("/sets/{id}", h.GetSet)
	r.Get("/sets/{id}/progress", h.Progress)
	r.Get("/sets/{id}/export", h.Export)
	r.Put("/sets/{id}/answers/{qid}", h.Answer)
	r.Patch("/sets/{id}/answers/{qid}/notes", h.Note)

	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}
