// internal/app/features/documents/routes.go
package documents

import "github.com/go-chi/chi/v5"

// Routes returns a subrouter for the document archive, mounted under
// /api/db/documents.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Upload)
	r.Get("/", h.List)
	return r
}
