// internal/app/features/notify/routes.go
package notify

import "github.com/go-chi/chi/v5"

// Routes returns a subrouter with the notification endpoint, mounted under
// /api/notify.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/send-email", h.SendEmail)
	return r
}
