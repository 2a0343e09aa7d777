package auth

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/sessions"
	"go.uber.org/zap"

	"github.com/elearnprepa/influencerhub/internal/app/system/authcheck"
)

/*─────────────────────────────────────────────────────────────────────────────*
| Session keys                                                                |
*─────────────────────────────────────────────────────────────────────────────*/

const (
	isAuthKey  = "is_authenticated"
	subjectKey = "oauth_subject"
	emailKey   = "user_email"
	nameKey    = "user_name"
)

// SessionUser is the per-request view of the signed-in, authorized partner.
// It is rebuilt on every request from the session cookie plus a fresh
// partner check, so revoking an influencer row takes effect immediately.
type SessionUser struct {
	InfluencerID string
	Name         string
	Email        string
}

type ctxKey string

const (
	currentUserKey       ctxKey = "currentUser"
	unauthorizedEmailKey ctxKey = "unauthorizedEmail"
	checkFailedKey       ctxKey = "authCheckFailed"
)

// CurrentUser returns the authorized partner for this request, if any.
func CurrentUser(r *http.Request) (*SessionUser, bool) {
	u, ok := r.Context().Value(currentUserKey).(*SessionUser)
	return u, ok
}

// UnauthorizedEmail returns the email of an authenticated identity that
// turned out not to be a partner. The session has already been revoked by
// the time this is set; the guard uses it to render the unauthorized view.
func UnauthorizedEmail(r *http.Request) (string, bool) {
	email, ok := r.Context().Value(unauthorizedEmailKey).(string)
	return email, ok
}

// CheckFailed reports whether the partner check could not be completed for
// this request. The session is intact; the guard shows a generic error.
func CheckFailed(r *http.Request) bool {
	failed, _ := r.Context().Value(checkFailedKey).(bool)
	return failed
}

/*─────────────────────────────────────────────────────────────────────────────*
| SessionManager                                                              |
*─────────────────────────────────────────────────────────────────────────────*/

// PartnerChecker classifies an authenticated email. Satisfied by
// *authcheck.Checker; handler tests substitute fakes.
type PartnerChecker interface {
	Check(ctx context.Context, email string) authcheck.Result
}

// SessionManager owns the cookie store and the middleware that turns a
// session cookie into request context.
type SessionManager struct {
	store   *sessions.CookieStore
	name    string
	log     *zap.Logger
	checker PartnerChecker
}

// NewSessionManager initializes a cookie-backed session manager.
//
// In production (secure=true) cookies are Secure + SameSite=Lax; over
// plain http in dev, secure must be false or the browser drops them.
func NewSessionManager(sessionKey, name, domain string, maxAge time.Duration, secure bool, logger *zap.Logger) (*SessionManager, error) {
	if sessionKey == "" {
		return nil, fmt.Errorf("session key is empty; provide ≥32 random chars")
	}
	if len(sessionKey) < 32 {
		logger.Warn("session key is short; 32+ chars recommended",
			zap.Int("length", len(sessionKey)))
	}

	store := sessions.NewCookieStore([]byte(sessionKey))
	store.Options = &sessions.Options{
		Domain:   domain,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		Secure:   secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	logger.Info("session store initialized",
		zap.Bool("secure", secure),
		zap.String("domain", domain))

	return &SessionManager{store: store, name: name, log: logger}, nil
}

// SetPartnerChecker wires the per-request partner check. Must be called
// before the middleware runs; without a checker every session loads as
// CheckFailed rather than silently authorized.
func (sm *SessionManager) SetPartnerChecker(c PartnerChecker) {
	sm.checker = c
}

// Store exposes the underlying cookie store (logout needs its options).
func (sm *SessionManager) Store() *sessions.CookieStore {
	return sm.store
}

// GetSession returns the request's session, creating a fresh one if the
// cookie is absent or fails to decode.
func (sm *SessionManager) GetSession(r *http.Request) (*sessions.Session, error) {
	return sm.store.Get(r, sm.name)
}

// SignIn marks the session authenticated for the given identity.
func (sm *SessionManager) SignIn(w http.ResponseWriter, r *http.Request, subject, email, name string) error {
	sess, err := sm.GetSession(r)
	if err != nil {
		// Decode failure: fall through with the fresh session Get returned.
		sm.log.Warn("session decode failed during sign-in, using fresh session", zap.Error(err))
	}
	sess.Values[isAuthKey] = true
	sess.Values[subjectKey] = subject
	sess.Values[emailKey] = email
	sess.Values[nameKey] = name
	return sess.Save(r, w)
}

// SignOut deletes the session cookie.
func (sm *SessionManager) SignOut(w http.ResponseWriter, r *http.Request) error {
	sess, err := sm.GetSession(r)
	if err != nil {
		sm.log.Warn("session decode failed during sign-out", zap.Error(err))
	}

	// The deletion-cookie must match the original store settings.
	if opts := sm.store.Options; opts != nil {
		sess.Options.Domain = opts.Domain
		sess.Options.Path = opts.Path
		sess.Options.Secure = opts.Secure
		sess.Options.HttpOnly = opts.HttpOnly
		sess.Options.SameSite = opts.SameSite
	}
	sess.Options.MaxAge = -1

	return sess.Save(r, w)
}

/*─────────────────────────────────────────────────────────────────────────────*
| Middleware                                                                  |
*─────────────────────────────────────────────────────────────────────────────*/

// LoadSessionUser resolves the session and runs the partner check, then
// stores exactly one of three things in the request context: the
// authorized SessionUser, the unauthorized email (after revoking the
// session), or a check-failed marker. Anonymous requests pass through
// untouched. Downstream, guard.Classify turns this into a guard state.
func (sm *SessionManager) LoadSessionUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, err := sm.GetSession(r)
		if err != nil {
			// Undecodable cookie: treat as anonymous.
			sm.log.Debug("session decode failed, treating as anonymous", zap.Error(err))
			next.ServeHTTP(w, r)
			return
		}

		isAuth, _ := sess.Values[isAuthKey].(bool)
		email, _ := sess.Values[emailKey].(string)
		if !isAuth || email == "" {
			next.ServeHTTP(w, r)
			return
		}

		if sm.checker == nil {
			sm.log.Error("no partner checker configured; treating session as check-failed")
			next.ServeHTTP(w, withCheckFailed(r))
			return
		}

		res := sm.checker.Check(r.Context(), email)
		switch res.Outcome {
		case authcheck.Authorized:
			name, _ := sess.Values[nameKey].(string)
			if name == "" {
				name = res.Influencer.Name
			}
			u := &SessionUser{
				InfluencerID: res.Influencer.ID.String(),
				Name:         name,
				Email:        res.Influencer.Email,
			}
			next.ServeHTTP(w, withUser(r, u))

		case authcheck.NotAuthorized:
			// Revoke the session right here, once, so a non-partner
			// identity cannot stay half-authenticated across reloads.
			if err := sm.SignOut(w, r); err != nil {
				sm.log.Error("sign-out of unauthorized identity failed", zap.Error(err))
			}
			sm.log.Info("authenticated identity is not a partner; session revoked",
				zap.String("email", email))
			next.ServeHTTP(w, withUnauthorizedEmail(r, email))

		default: // authcheck.CheckFailed
			sm.log.Error("partner check failed", zap.Error(res.Err), zap.String("email", email))
			next.ServeHTTP(w, withCheckFailed(r))
		}
	})
}

/*─────────────────────────────────────────────────────────────────────────────*
| Context helpers                                                             |
*─────────────────────────────────────────────────────────────────────────────*/

func withUser(r *http.Request, u *SessionUser) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentUserKey, u))
}

func withUnauthorizedEmail(r *http.Request, email string) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), unauthorizedEmailKey, email))
}

func withCheckFailed(r *http.Request) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), checkFailedKey, true))
}

// WithTestUser injects a user into the request context, bypassing the
// session middleware. Test use only.
func WithTestUser(r *http.Request, u *SessionUser) *http.Request {
	return withUser(r, u)
}

// WithTestUnauthorizedEmail injects the unauthorized-identity marker.
// Test use only.
func WithTestUnauthorizedEmail(r *http.Request, email string) *http.Request {
	return withUnauthorizedEmail(r, email)
}

// WithTestCheckFailed injects the check-failed marker. Test use only.
func WithTestCheckFailed(r *http.Request) *http.Request {
	return withCheckFailed(r)
}
