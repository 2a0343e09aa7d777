package guard_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/elearnprepa/influencerhub/internal/app/system/auth"
	"github.com/elearnprepa/influencerhub/internal/app/system/guard"
)

func TestDecide_Table(t *testing.T) {
	cases := []struct {
		name  string
		state guard.State
		path  string
		want  guard.ActionKind
	}{
		{"anonymous on login", guard.Anonymous, "/login", guard.Allow},
		{"anonymous on signup", guard.Anonymous, "/signup", guard.Allow},
		{"anonymous on root", guard.Anonymous, "/", guard.Allow},
		{"anonymous on dashboard", guard.Anonymous, "/dashboard", guard.RedirectLogin},
		{"anonymous on dashboard subpath", guard.Anonymous, "/dashboard/details", guard.RedirectLogin},
		{"anonymous on dashboard lookalike", guard.Anonymous, "/dashboardfoo", guard.Allow},

		{"partner on dashboard", guard.AuthorizedPartner, "/dashboard", guard.Allow},
		{"partner on login", guard.AuthorizedPartner, "/login", guard.RedirectDashboard},
		{"partner on signup", guard.AuthorizedPartner, "/signup", guard.RedirectDashboard},
		{"partner on root", guard.AuthorizedPartner, "/", guard.Allow},

		{"unauthorized on dashboard", guard.UnauthorizedIdentity, "/dashboard", guard.RenderUnauthorized},
		{"unauthorized on login", guard.UnauthorizedIdentity, "/login", guard.RenderUnauthorized},
		{"unauthorized on root", guard.UnauthorizedIdentity, "/", guard.RenderUnauthorized},

		{"check failed on dashboard", guard.CheckFailed, "/dashboard", guard.RenderCheckFailed},
		{"check failed on login", guard.CheckFailed, "/login", guard.Allow},
		{"check failed on root", guard.CheckFailed, "/", guard.Allow},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := guard.Decide(tc.state, tc.path)
			if got.Kind != tc.want {
				t.Errorf("Decide(%v, %q).Kind = %v, want %v", tc.state, tc.path, got.Kind, tc.want)
			}
		})
	}
}

func TestDecide_RedirectLoginCarriesPath(t *testing.T) {
	action := guard.Decide(guard.Anonymous, "/dashboard")

	if action.ReturnTo != "/dashboard" {
		t.Errorf("ReturnTo: got %q, want %q", action.ReturnTo, "/dashboard")
	}
	if got := action.LoginURL(); got != "/login?redirectTo=%2Fdashboard" {
		t.Errorf("LoginURL: got %q", got)
	}
}

func TestDecide_LoginURLWithoutReturn(t *testing.T) {
	action := guard.Action{Kind: guard.RedirectLogin}
	if got := action.LoginURL(); got != "/login" {
		t.Errorf("LoginURL: got %q, want %q", got, "/login")
	}
}

// Decide must consider nothing but its two arguments; calling it twice
// with the same inputs always agrees.
func TestDecide_Deterministic(t *testing.T) {
	states := []guard.State{guard.Anonymous, guard.AuthorizedPartner, guard.UnauthorizedIdentity, guard.CheckFailed}
	paths := []string{"/", "/login", "/signup", "/dashboard", "/dashboard/x", "/health"}

	for _, s := range states {
		for _, p := range paths {
			first := guard.Decide(s, p)
			second := guard.Decide(s, p)
			if first != second {
				t.Errorf("Decide(%v, %q) not deterministic: %v vs %v", s, p, first, second)
			}
		}
	}
}

func TestClassify(t *testing.T) {
	base := httptest.NewRequest("GET", "/dashboard", nil)

	if got := guard.Classify(base); got != guard.Anonymous {
		t.Errorf("bare request: got %v, want Anonymous", got)
	}

	withUser := auth.WithTestUser(base, &auth.SessionUser{Email: "p@test.com"})
	if got := guard.Classify(withUser); got != guard.AuthorizedPartner {
		t.Errorf("with user: got %v, want AuthorizedPartner", got)
	}

	withEmail := auth.WithTestUnauthorizedEmail(base, "stranger@test.com")
	if got := guard.Classify(withEmail); got != guard.UnauthorizedIdentity {
		t.Errorf("with unauthorized email: got %v, want UnauthorizedIdentity", got)
	}

	withFailure := auth.WithTestCheckFailed(base)
	if got := guard.Classify(withFailure); got != guard.CheckFailed {
		t.Errorf("with failed check: got %v, want CheckFailed", got)
	}
}

type recordingRenderer struct {
	unauthorizedEmail string
	unauthorizedCalls int
	checkFailedCalls  int
}

func (r *recordingRenderer) Unauthorized(w http.ResponseWriter, _ *http.Request, email string) {
	r.unauthorizedCalls++
	r.unauthorizedEmail = email
	w.WriteHeader(http.StatusForbidden)
}

func (r *recordingRenderer) CheckFailed(w http.ResponseWriter, _ *http.Request) {
	r.checkFailedCalls++
	w.WriteHeader(http.StatusServiceUnavailable)
}
