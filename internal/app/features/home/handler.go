// internal/app/features/home/handler.go
package home

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/elearnprepa/influencerhub/internal/app/system/guard"
)

// Handler serves the root path.
type Handler struct {
	Log *zap.Logger
}

func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{Log: logger}
}

// ServeRoot handles GET /. There is no landing page: authorized partners
// land on their dashboard, everyone else on the sign-in screen.
func (h *Handler) ServeRoot(w http.ResponseWriter, r *http.Request) {
	if guard.Classify(r) == guard.AuthorizedPartner {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
