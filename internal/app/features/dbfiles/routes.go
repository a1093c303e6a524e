// internal/app/features/dbfiles/routes.go
package dbfiles

import (
	"github.com/dalemusser/dossierhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes returns a subrouter for the file inventory, mounted under
// /api/db/files.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
	r.With(auth.RequireRole(roleAdmin)).Post("/purge", h.Purge)
	return r
}
