// internal/app/features/uploads/routes.go
package uploads

import "github.com/go-chi/chi/v5"

// Routes returns a subrouter with the typed-document endpoints. It is
// mounted under /api behind the signed-in middleware.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/upload/{type}", h.Upload)
	r.Get("/documents/catalog", h.CatalogList)
	r.Get("/documents/my-latest", h.MyLatest)
	r.Get("/documents/my-history", h.MyHistory)
	r.Get("/documents/my-uploads", h.MyUploads)
	r.Delete("/typed-documents", h.Clear)
	return r
}
