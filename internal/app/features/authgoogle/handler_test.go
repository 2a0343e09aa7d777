package authgoogle_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"github.com/elearnprepa/influencerhub/internal/app/features/authgoogle"
	"github.com/elearnprepa/influencerhub/internal/app/system/auth"
	"github.com/elearnprepa/influencerhub/internal/app/system/authcheck"
	"github.com/elearnprepa/influencerhub/internal/app/system/timeouts"
)

type fakeStateStore struct {
	saved     map[string]string // state -> returnURL
	saveErr   error
	validated string
	returnURL string
	valid     bool
	valErr    error
}

func (f *fakeStateStore) Save(_ context.Context, state, returnURL string, _ time.Time) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	if f.saved == nil {
		f.saved = make(map[string]string)
	}
	f.saved[state] = returnURL
	return nil
}

func (f *fakeStateStore) Validate(_ context.Context, state string) (string, bool, error) {
	f.validated = state
	return f.returnURL, f.valid, f.valErr
}

type fakeChecker struct {
	result authcheck.Result
}

func (f *fakeChecker) Check(_ context.Context, _ string) authcheck.Result {
	return f.result
}

func newTestHandler(t *testing.T, states *fakeStateStore, checker *fakeChecker) *authgoogle.Handler {
	t.Helper()

	sessionMgr, err := auth.NewSessionManager("test-session-key-for-testing-only", "test-session", "", 24*time.Hour, false, zap.NewNop())
	if err != nil {
		t.Fatalf("NewSessionManager failed: %v", err)
	}

	return authgoogle.NewHandler(sessionMgr, states, checker,
		"client-id", "client-secret", "http://localhost:3000", zap.NewNop())
}

func TestServeLogin_RedirectsToGoogle(t *testing.T) {
	states := &fakeStateStore{}
	h := newTestHandler(t, states, &fakeChecker{})

	req := httptest.NewRequest("GET", "/auth/google?redirectTo=/dashboard", nil)
	rec := httptest.NewRecorder()
	h.ServeLogin(rec, req)

	if rec.Code != http.StatusTemporaryRedirect {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusTemporaryRedirect)
	}

	loc, err := url.Parse(rec.Header().Get("Location"))
	if err != nil {
		t.Fatalf("parse Location: %v", err)
	}
	if loc.Host != "accounts.google.com" {
		t.Errorf("redirect host: got %q", loc.Host)
	}

	state := loc.Query().Get("state")
	if state == "" {
		t.Fatal("redirect carries no state parameter")
	}
	if got := states.saved[state]; got != "/dashboard" {
		t.Errorf("persisted return URL: got %q, want /dashboard", got)
	}

	if cb := loc.Query().Get("redirect_uri"); cb != "http://localhost:3000/api/auth/callback" {
		t.Errorf("redirect_uri: got %q", cb)
	}
}

func TestServeLogin_StatesAreUnique(t *testing.T) {
	states := &fakeStateStore{}
	h := newTestHandler(t, states, &fakeChecker{})

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest("GET", "/auth/google", nil)
		h.ServeLogin(httptest.NewRecorder(), req)
	}

	if len(states.saved) != 3 {
		t.Errorf("expected 3 distinct states, got %d", len(states.saved))
	}
}

func TestServeLogin_NotConfigured(t *testing.T) {
	h := newTestHandler(t, &fakeStateStore{}, &fakeChecker{})
	h.ClientID = ""
	h.ClientSecret = ""

	req := httptest.NewRequest("GET", "/auth/google", nil)
	rec := httptest.NewRecorder()
	h.ServeLogin(rec, req)

	if loc := rec.Header().Get("Location"); loc != "/login?error=google_not_configured" {
		t.Errorf("Location: got %q", loc)
	}
}

func TestServeLogin_StateSaveFailure(t *testing.T) {
	h := newTestHandler(t, &fakeStateStore{saveErr: errors.New("db down")}, &fakeChecker{})

	req := httptest.NewRequest("GET", "/auth/google", nil)
	rec := httptest.NewRecorder()
	h.ServeLogin(rec, req)

	if loc := rec.Header().Get("Location"); loc != "/login?error=internal" {
		t.Errorf("Location: got %q", loc)
	}
}

func TestServeCallback_ProviderError(t *testing.T) {
	h := newTestHandler(t, &fakeStateStore{}, &fakeChecker{})

	req := httptest.NewRequest("GET", "/api/auth/callback?error=access_denied", nil)
	rec := httptest.NewRecorder()
	h.ServeCallback(rec, req)

	if loc := rec.Header().Get("Location"); loc != "/login?error=google_denied" {
		t.Errorf("Location: got %q", loc)
	}
}

// A callback without a code is not an OAuth response; the visitor is
// passed on without touching the state store or creating a session.
func TestServeCallback_MissingCode(t *testing.T) {
	states := &fakeStateStore{}
	h := newTestHandler(t, states, &fakeChecker{})

	req := httptest.NewRequest("GET", "/api/auth/callback", nil)
	rec := httptest.NewRecorder()
	h.ServeCallback(rec, req)

	if loc := rec.Header().Get("Location"); loc != "/dashboard" {
		t.Errorf("Location: got %q, want /dashboard", loc)
	}
	if states.validated != "" {
		t.Error("state store should not be consulted without a code")
	}
	for _, c := range rec.Result().Cookies() {
		if c.Name == "test-session" && c.MaxAge >= 0 && c.Value != "" {
			t.Error("no session should be created without a code")
		}
	}
}

func TestServeCallback_MissingState(t *testing.T) {
	h := newTestHandler(t, &fakeStateStore{}, &fakeChecker{})

	req := httptest.NewRequest("GET", "/api/auth/callback?code=abc", nil)
	rec := httptest.NewRecorder()
	h.ServeCallback(rec, req)

	if loc := rec.Header().Get("Location"); loc != "/login?error=invalid_state" {
		t.Errorf("Location: got %q", loc)
	}
}

func TestServeCallback_UnknownState(t *testing.T) {
	states := &fakeStateStore{valid: false}
	h := newTestHandler(t, states, &fakeChecker{})

	req := httptest.NewRequest("GET", "/api/auth/callback?code=abc&state=forged", nil)
	rec := httptest.NewRecorder()
	h.ServeCallback(rec, req)

	if states.validated != "forged" {
		t.Errorf("validated state: got %q", states.validated)
	}
	if loc := rec.Header().Get("Location"); loc != "/login?error=invalid_state" {
		t.Errorf("Location: got %q", loc)
	}
}

func TestServeCallback_StateLookupFailure(t *testing.T) {
	states := &fakeStateStore{valErr: errors.New("db down")}
	h := newTestHandler(t, states, &fakeChecker{})

	req := httptest.NewRequest("GET", "/api/auth/callback?code=abc&state=s1", nil)
	rec := httptest.NewRecorder()
	h.ServeCallback(rec, req)

	if loc := rec.Header().Get("Location"); loc != "/login?error=internal" {
		t.Errorf("Location: got %q", loc)
	}
}

// stallingTransport hangs every request until its context is cancelled,
// standing in for an unresponsive token endpoint.
type stallingTransport struct {
	stall time.Duration
}

func (s stallingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	select {
	case <-req.Context().Done():
		return nil, req.Context().Err()
	case <-time.After(s.stall):
		return nil, errors.New("stalled endpoint answered")
	}
}

// The token exchange leaves the process; a stalled provider must not pin
// the request past the configured deadline.
func TestServeCallback_ExchangeBoundedByTimeout(t *testing.T) {
	ping, short, medium := timeouts.Ping(), timeouts.Short(), timeouts.Medium()
	timeouts.Configure(ping, short, 50*time.Millisecond)
	t.Cleanup(func() { timeouts.Configure(ping, short, medium) })

	states := &fakeStateStore{valid: true, returnURL: "/dashboard"}
	h := newTestHandler(t, states, &fakeChecker{})

	client := &http.Client{Transport: stallingTransport{stall: 5 * time.Second}}
	req := httptest.NewRequest("GET", "/api/auth/callback?code=abc&state=s1", nil)
	ctx := context.WithValue(req.Context(), oauth2.HTTPClient, client)

	rec := httptest.NewRecorder()
	start := time.Now()
	h.ServeCallback(rec, req.WithContext(ctx))
	elapsed := time.Since(start)

	if elapsed > time.Second {
		t.Fatalf("callback took %v with a 50ms exchange deadline", elapsed)
	}
	if loc := rec.Header().Get("Location"); loc != "/login?error=token_exchange" {
		t.Errorf("Location: got %q", loc)
	}
}

// Past state validation the handler talks to Google; everything from the
// exchange onward must fail closed, back to the login page.
func TestServeCallback_ExchangeFailureFailsClosed(t *testing.T) {
	states := &fakeStateStore{valid: true, returnURL: "/dashboard"}
	h := newTestHandler(t, states, &fakeChecker{})
	// Point the exchange at a dead endpoint instead of accounts.google.com.
	h.ClientID = "client-id"

	req := httptest.NewRequest("GET", "/api/auth/callback?code=bad&state=s1", nil)
	ctx, cancel := context.WithTimeout(req.Context(), 10*time.Millisecond)
	defer cancel()
	rec := httptest.NewRecorder()
	h.ServeCallback(rec, req.WithContext(ctx))

	loc := rec.Header().Get("Location")
	if !strings.HasPrefix(loc, "/login?error=") {
		t.Errorf("Location: got %q, want a /login?error= redirect", loc)
	}
	for _, c := range rec.Result().Cookies() {
		if c.Name == "test-session" && c.MaxAge >= 0 && c.Value != "" {
			t.Error("no session should be created when the exchange fails")
		}
	}
}
