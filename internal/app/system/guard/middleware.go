// internal/app/system/guard/middleware.go
package guard

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/elearnprepa/influencerhub/internal/app/system/auth"
)

// Renderer draws the two terminal guard outcomes. Implemented by the
// errors feature; injected here to keep the guard free of template
// dependencies.
type Renderer interface {
	Unauthorized(w http.ResponseWriter, r *http.Request, email string)
	CheckFailed(w http.ResponseWriter, r *http.Request)
}

// Middleware applies Decide to every request. It must run after
// auth.LoadSessionUser, which is what Classify reads from.
func Middleware(rend Renderer, log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			state := Classify(r)
			Enforce(w, r, state, Decide(state, r.URL.Path), rend, log, next)
		})
	}
}

// Gate is the handler-level enforcement point. It re-runs the same
// decision as the middleware and reports whether the handler may proceed;
// when it may not, the response has already been written.
func Gate(w http.ResponseWriter, r *http.Request, rend Renderer, log *zap.Logger) (*auth.SessionUser, bool) {
	state := Classify(r)
	action := Decide(state, r.URL.Path)
	if action.Kind == Allow {
		u, _ := auth.CurrentUser(r)
		return u, true
	}
	Enforce(w, r, state, action, rend, log, nil)
	return nil, false
}

// Enforce executes a guard action. next is only consulted for Allow and
// may be nil at handler-level call sites.
func Enforce(w http.ResponseWriter, r *http.Request, state State, action Action, rend Renderer, log *zap.Logger, next http.Handler) {
	switch action.Kind {
	case RedirectLogin:
		http.Redirect(w, r, action.LoginURL(), http.StatusSeeOther)

	case RedirectDashboard:
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)

	case RenderUnauthorized:
		email, _ := auth.UnauthorizedEmail(r)
		log.Info("rendering unauthorized view",
			zap.String("email", email),
			zap.String("path", r.URL.Path))
		rend.Unauthorized(w, r, email)

	case RenderCheckFailed:
		rend.CheckFailed(w, r)

	default:
		if next != nil {
			next.ServeHTTP(w, r)
		}
	}
}
