// internal/app/features/login/routes.go
package login

import (
	"github.com/go-chi/chi/v5"
)

// Routes wires the sign-in page. The top-level router mounts it both at
// /login and at /signup; the old marketing pages linked to the latter and
// both render the same page.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeLogin)
	return r
}
