// Package guard holds the one authoritative access-control decision for
// the whole application.
//
// Every enforcement point, whether the router-wide middleware or a
// handler-level gate, classifies the request into a State and feeds it
// through Decide. The decision table lives nowhere else, so the request-time
// gate and the render-time gate can never drift apart.
package guard

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/elearnprepa/influencerhub/internal/app/system/auth"
)

// State is the access-control classification of the current viewer.
type State int

const (
	// Anonymous: no authenticated identity.
	Anonymous State = iota
	// AuthorizedPartner: authenticated identity with an influencer row.
	AuthorizedPartner
	// UnauthorizedIdentity: authenticated identity with no influencer row.
	// The session has already been revoked by the auth middleware.
	UnauthorizedIdentity
	// CheckFailed: the partner check could not be completed. No sign-out.
	CheckFailed
)

// ActionKind enumerates what an enforcement point must do.
type ActionKind int

const (
	Allow ActionKind = iota
	RedirectLogin
	RedirectDashboard
	RenderUnauthorized
	RenderCheckFailed
)

// Action is the outcome of a guard decision. ReturnTo is set only for
// RedirectLogin and carries the originally requested path.
type Action struct {
	Kind     ActionKind
	ReturnTo string
}

// LoginURL builds the login redirect target for a RedirectLogin action.
func (a Action) LoginURL() string {
	if a.ReturnTo == "" {
		return "/login"
	}
	return "/login?redirectTo=" + url.QueryEscape(a.ReturnTo)
}

// Classify derives the guard state from what the auth middleware put in
// the request context.
func Classify(r *http.Request) State {
	if _, ok := auth.CurrentUser(r); ok {
		return AuthorizedPartner
	}
	if _, ok := auth.UnauthorizedEmail(r); ok {
		return UnauthorizedIdentity
	}
	if auth.CheckFailed(r) {
		return CheckFailed
	}
	return Anonymous
}

// Decide is the pure decision function: given a guard state and the
// requested path, it says what to do. It never inspects anything else.
//
// The table, in priority order:
//  1. an unauthorized identity sees the unauthorized view on every path;
//  2. a failed check on a protected path renders a generic error without
//     signing out, since the failure may be transient;
//  3. anonymous viewers of protected paths go to login, carrying the
//     original path so login can send them back;
//  4. authorized partners have no business on the auth pages and are
//     sent to the dashboard;
//  5. everything else is allowed.
func Decide(state State, path string) Action {
	switch {
	case state == UnauthorizedIdentity:
		return Action{Kind: RenderUnauthorized}

	case state == CheckFailed && isProtected(path):
		return Action{Kind: RenderCheckFailed}

	case state != AuthorizedPartner && isProtected(path):
		return Action{Kind: RedirectLogin, ReturnTo: path}

	case state == AuthorizedPartner && isAuthPage(path):
		return Action{Kind: RedirectDashboard}

	default:
		return Action{Kind: Allow}
	}
}

func isProtected(path string) bool {
	return path == "/dashboard" || strings.HasPrefix(path, "/dashboard/")
}

func isAuthPage(path string) bool {
	return path == "/login" || path == "/signup"
}
