// internal/app/features/login/handler.go
package login

import (
	"net/http"
	"net/url"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"

	"github.com/elearnprepa/influencerhub/internal/app/system/viewdata"
)

// Handler renders the sign-in page. Authentication itself is entirely
// delegated to the Google OAuth flow under /auth/google; this page only
// offers the button and displays flow errors.
type Handler struct {
	Log *zap.Logger
}

func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{Log: logger}
}

// strict strips markup from the free-text error fallback; the error code
// arrives in the query string and is attacker-controlled.
var strict = bluemonday.StrictPolicy()

// errorMessages maps the error codes the OAuth flow redirects back with
// to the message shown in the banner.
var errorMessages = map[string]string{
	"google_denied":  "Google sign-in was cancelled or refused.",
	"invalid_state":  "Your sign-in attempt expired. Please try again.",
	"token_exchange": "Sign-in could not be completed. Please try again.",
	"user_info":      "We could not read your Google account details. Please try again.",
	"not_authorized": "You are not authorized to access this page.",
	"session":        "Your session could not be created. Please try again.",
	"internal":       "An unexpected error occurred. Please try again.",
}

type loginPageData struct {
	viewdata.BaseVM
	ErrorMessage string
	AuthURL      string
}

// ServeLogin handles GET /login (and its /signup alias).
// Accepts ?redirectTo= (propagated into the OAuth flow) and ?error=
// (rendered as an inline banner). Already-authorized partners never reach
// this handler; the guard redirects them to the dashboard first.
func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	redirectTo := query.Get(r, "redirectTo")

	authURL := "/auth/google"
	if redirectTo != "" {
		authURL += "?redirectTo=" + url.QueryEscape(redirectTo)
	}

	data := loginPageData{
		BaseVM:       viewdata.NewBaseVM(r, "Sign in", "/"),
		ErrorMessage: errorMessage(query.Get(r, "error")),
		AuthURL:      authURL,
	}

	templates.Render(w, r, "login", data)
}

// errorMessage resolves an error code to its display text. Unknown codes
// are shown as-is after sanitization, so older deep links keep working.
func errorMessage(code string) string {
	if code == "" {
		return ""
	}
	if msg, ok := errorMessages[code]; ok {
		return msg
	}
	return strict.Sanitize(code)
}
