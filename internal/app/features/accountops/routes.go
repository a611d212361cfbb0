// internal/app/features/accountops/routes.go
package accountops

import "github.com/go-chi/chi/v5"

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/password", h.HandleChangePassword)
	r.Post("/email", h.HandleChangeEmail)
	r.Post("/delete", h.HandleDelete)
	return r
}
