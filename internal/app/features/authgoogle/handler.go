// internal/app/features/authgoogle/handler.go
package authgoogle

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/urlutil"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/elearnprepa/influencerhub/internal/app/system/auth"
	"github.com/elearnprepa/influencerhub/internal/app/system/authcheck"
	"github.com/elearnprepa/influencerhub/internal/app/system/timeouts"
)

// stateTTL bounds how long a login attempt may sit on Google's consent
// screen before the state parameter expires.
const stateTTL = 10 * time.Minute

// StateStore persists one-time OAuth login states. Satisfied by the
// oauthstate Postgres store.
type StateStore interface {
	Save(ctx context.Context, state, returnURL string, expiresAt time.Time) error
	Validate(ctx context.Context, state string) (returnURL string, valid bool, err error)
}

// PartnerChecker resolves an email to a partner, or not.
type PartnerChecker interface {
	Check(ctx context.Context, email string) authcheck.Result
}

// Handler runs the Google OAuth flow. Only identities that resolve to a
// registered influencer get a session; everyone else is bounced back to
// the login page with an error code.
type Handler struct {
	Log        *zap.Logger
	SessionMgr *auth.SessionManager
	StateStore StateStore
	Partners   PartnerChecker

	ClientID     string
	ClientSecret string
	RedirectURL  string
}

func NewHandler(
	sessionMgr *auth.SessionManager,
	stateStore StateStore,
	partners PartnerChecker,
	clientID, clientSecret, baseURL string,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		Log:          logger,
		SessionMgr:   sessionMgr,
		StateStore:   stateStore,
		Partners:     partners,
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  baseURL + "/api/auth/callback",
	}
}

func (h *Handler) oauth2Config() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     h.ClientID,
		ClientSecret: h.ClientSecret,
		RedirectURL:  h.RedirectURL,
		Scopes: []string{
			"openid",
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: google.Endpoint,
	}
}

// IsConfigured returns true if Google OAuth credentials are present.
func (h *Handler) IsConfigured() bool {
	return h.ClientID != "" && h.ClientSecret != ""
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /auth/google                                                             |
| Starts the flow: persists a one-time state and redirects to Google.          |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	if !h.IsConfigured() {
		h.Log.Warn("Google OAuth not configured")
		http.Redirect(w, r, "/login?error=google_not_configured", http.StatusSeeOther)
		return
	}

	state, err := generateState()
	if err != nil {
		h.Log.Error("failed to generate OAuth state", zap.Error(err))
		http.Redirect(w, r, "/login?error=internal", http.StatusSeeOther)
		return
	}

	returnURL := query.Get(r, "redirectTo")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	expiresAt := time.Now().UTC().Add(stateTTL)
	if err := h.StateStore.Save(ctx, state, returnURL, expiresAt); err != nil {
		h.Log.Error("failed to save OAuth state", zap.Error(err))
		http.Redirect(w, r, "/login?error=internal", http.StatusSeeOther)
		return
	}

	url := h.oauth2Config().AuthCodeURL(state)

	h.Log.Debug("initiating Google OAuth flow",
		zap.String("return_url", returnURL))

	http.Redirect(w, r, url, http.StatusTemporaryRedirect)
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /api/auth/callback                                                       |
| Exchanges the code, resolves the Google identity to an influencer, and       |
| creates the session. A Google identity without an influencer row never       |
| gets a session.                                                              |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeCallback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if errParam := r.URL.Query().Get("error"); errParam != "" {
		h.Log.Warn("Google OAuth error",
			zap.String("error", errParam),
			zap.String("description", r.URL.Query().Get("error_description")))
		http.Redirect(w, r, "/login?error=google_denied", http.StatusSeeOther)
		return
	}

	// A callback without a code is not an OAuth response at all. Send the
	// visitor on to their destination and let the route guard sort it out.
	code := r.URL.Query().Get("code")
	if code == "" {
		h.Log.Warn("OAuth callback without code parameter")
		dest := urlutil.SafeReturn(query.Get(r, "redirectTo"), "", "/dashboard")
		http.Redirect(w, r, dest, http.StatusSeeOther)
		return
	}

	state := r.URL.Query().Get("state")
	if state == "" {
		h.Log.Warn("missing OAuth state parameter")
		http.Redirect(w, r, "/login?error=invalid_state", http.StatusSeeOther)
		return
	}

	ctxTimeout, cancel := context.WithTimeout(ctx, timeouts.Short())
	defer cancel()

	returnURL, valid, err := h.StateStore.Validate(ctxTimeout, state)
	if err != nil {
		h.Log.Error("failed to validate OAuth state", zap.Error(err))
		http.Redirect(w, r, "/login?error=internal", http.StatusSeeOther)
		return
	}
	if !valid {
		h.Log.Warn("invalid or expired OAuth state")
		http.Redirect(w, r, "/login?error=invalid_state", http.StatusSeeOther)
		return
	}

	exchangeCtx, cancelExchange := context.WithTimeout(ctx, timeouts.Medium())
	defer cancelExchange()

	token, err := h.oauth2Config().Exchange(exchangeCtx, code)
	if err != nil {
		h.Log.Error("failed to exchange OAuth code", zap.Error(err))
		http.Redirect(w, r, "/login?error=token_exchange", http.StatusSeeOther)
		return
	}

	googleUser, err := fetchGoogleUserInfo(ctx, token)
	if err != nil {
		h.Log.Error("failed to fetch Google user info", zap.Error(err))
		http.Redirect(w, r, "/login?error=user_info", http.StatusSeeOther)
		return
	}

	h.Log.Debug("Google user info fetched",
		zap.String("google_id", googleUser.ID),
		zap.String("email", googleUser.Email))

	result := h.Partners.Check(ctx, googleUser.Email)
	switch result.Outcome {
	case authcheck.Authorized:
		// fall through to session creation
	case authcheck.NotAuthorized:
		h.Log.Info("Google OAuth: no influencer registered for identity",
			zap.String("email", googleUser.Email))
		http.Redirect(w, r, "/login?error=not_authorized", http.StatusSeeOther)
		return
	default:
		h.Log.Error("influencer lookup failed during OAuth callback",
			zap.String("email", googleUser.Email),
			zap.Error(result.Err))
		http.Redirect(w, r, "/login?error=internal", http.StatusSeeOther)
		return
	}

	name := googleUser.Name
	if name == "" {
		name = result.Influencer.Name
	}

	if err := h.SessionMgr.SignIn(w, r, googleUser.ID, googleUser.Email, name); err != nil {
		h.Log.Error("save session failed",
			zap.Error(err),
			zap.String("email", googleUser.Email))
		http.Redirect(w, r, "/login?error=session", http.StatusSeeOther)
		return
	}

	h.Log.Info("influencer logged in via Google OAuth",
		zap.String("influencer_id", result.Influencer.ID.String()),
		zap.String("email", googleUser.Email))

	dest := urlutil.SafeReturn(returnURL, "", "/dashboard")
	http.Redirect(w, r, dest, http.StatusSeeOther)
}

/*─────────────────────────────────────────────────────────────────────────────*
| Helpers                                                                      |
*─────────────────────────────────────────────────────────────────────────────*/

// googleUserInfo represents user info returned from Google.
type googleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

// fetchGoogleUserInfo retrieves user information from Google's userinfo endpoint.
func fetchGoogleUserInfo(ctx context.Context, token *oauth2.Token) (*googleUserInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, timeouts.Medium())
	defer cancel()

	client := oauth2.NewClient(ctx, oauth2.StaticTokenSource(token))

	resp, err := client.Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user info: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("failed to decode user info: %w", err)
	}

	return &info, nil
}

// generateState creates a cryptographically secure random state string.
func generateState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}
