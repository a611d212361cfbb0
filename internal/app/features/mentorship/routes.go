// internal/app/features/mentorship/routes.go
package mentorship

import "github.com/go-chi/chi/v5"

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeState)
	r.Post("/toggle", h.HandleToggle)
	r.Post("/submit", h.HandleSubmit)
	r.Get("/results", h.ServeResults)
	r.Post("/reset", h.HandleReset)
	return r
}
