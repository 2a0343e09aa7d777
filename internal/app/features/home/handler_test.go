package home_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/elearnprepa/influencerhub/internal/app/features/home"
	"github.com/elearnprepa/influencerhub/internal/testutil"
)

func TestServeRoot_AnonymousGoesToLogin(t *testing.T) {
	h := home.NewHandler(zap.NewNop())

	req := httptest.NewRequest("GET", "/", nil)
	rec := httptest.NewRecorder()
	h.ServeRoot(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if loc := rec.Header().Get("Location"); loc != "/login" {
		t.Errorf("Location: got %q, want /login", loc)
	}
}

func TestServeRoot_PartnerGoesToDashboard(t *testing.T) {
	h := home.NewHandler(zap.NewNop())

	req := testutil.NewAuthenticatedRequest("GET", "/", testutil.PartnerUser())
	rec := httptest.NewRecorder()
	h.ServeRoot(rec, req)

	if loc := rec.Header().Get("Location"); loc != "/dashboard" {
		t.Errorf("Location: got %q, want /dashboard", loc)
	}
}
