// internal/app/features/authgoogle/routes.go
package authgoogle

import "github.com/go-chi/chi/v5"

// Routes returns the router that initiates the Google OAuth flow.
// Mounted under /auth/google. Public, no authentication required.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeLogin)
	return r
}

// CallbackRoutes returns the router for the OAuth callback. It is mounted
// under /api/auth/callback because that is the redirect URI registered
// with Google for this application.
func CallbackRoutes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeCallback)
	return r
}
