// internal/app/features/errors/errors.go
package errors

import (
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/microcosm-cc/bluemonday"

	"github.com/elearnprepa/influencerhub/internal/app/system/viewdata"
)

// pageData is the view model for error pages.
type pageData struct {
	viewdata.BaseVM
	Message string
	Email   string
}

// strict strips every HTML tag from user-influenced text before it is
// rendered on an error page.
var strict = bluemonday.StrictPolicy()

// Handler renders the error pages. It also satisfies guard.Renderer, so
// the guard middleware and the handler-level gates draw the exact same
// views.
type Handler struct{}

// NewHandler constructs an errors Handler.
func NewHandler() *Handler {
	return &Handler{}
}

// Unauthorized renders the "access denied" page shown when an
// authenticated identity has no influencer row. The offending email is
// displayed so the person knows which account to take up with the
// administrator. Their session is already revoked when this renders.
func (h *Handler) Unauthorized(w http.ResponseWriter, r *http.Request, email string) {
	data := pageData{
		BaseVM:  viewdata.NewBaseVM(r, "Access denied", "/login"),
		Message: "This area is reserved for Elearn Prepa partners.",
		Email:   strict.Sanitize(email),
	}

	w.WriteHeader(http.StatusForbidden)
	templates.Render(w, r, "error_unauthorized", data)
}

// CheckFailed renders a generic "could not verify your account" page.
// Used when the partner lookup fails; deliberately does not sign the
// viewer out, since the failure may be transient.
func (h *Handler) CheckFailed(w http.ResponseWriter, r *http.Request) {
	data := pageData{
		BaseVM:  viewdata.NewBaseVM(r, "Something went wrong", "/dashboard"),
		Message: "We could not verify your account right now. Please try again in a moment.",
	}

	w.WriteHeader(http.StatusServiceUnavailable)
	templates.Render(w, r, "error_checkfailed", data)
}

// NotFound renders the 404 page for unmatched paths.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	data := pageData{
		BaseVM:  viewdata.NewBaseVM(r, "Page not found", "/"),
		Message: "The page you are looking for does not exist.",
	}

	w.WriteHeader(http.StatusNotFound)
	templates.Render(w, r, "error_notfound", data)
}
