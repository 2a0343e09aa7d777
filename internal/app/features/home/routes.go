// internal/app/features/home/routes.go
package home

import (
	"github.com/go-chi/chi/v5"

	uierrors "github.com/elearnprepa/influencerhub/internal/app/features/errors"
)

// Routes serves the root path. Mounted at "/", it is also where every
// unmatched path lands, so the not-found page is wired here.
func Routes(h *Handler, errs *uierrors.Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeRoot)
	r.NotFound(errs.NotFound)
	return r
}
