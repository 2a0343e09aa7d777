package testutil

import (
	"net/http"
	"net/http/httptest"

	"github.com/google/uuid"

	"github.com/elearnprepa/influencerhub/internal/app/system/auth"
)

// TestUser represents a signed-in partner for testing HTTP handlers.
type TestUser struct {
	InfluencerID string
	Name         string
	Email        string
}

// PartnerUser returns a TestUser representing an authorized partner.
func PartnerUser() TestUser {
	return TestUser{
		InfluencerID: uuid.NewString(),
		Name:         "Test Partner",
		Email:        "partner@test.com",
	}
}

// WithUser adds a partner to the request context for testing
// authenticated handlers. This bypasses the session middleware and
// injects the user directly.
func WithUser(r *http.Request, user TestUser) *http.Request {
	sessionUser := &auth.SessionUser{
		InfluencerID: user.InfluencerID,
		Name:         user.Name,
		Email:        user.Email,
	}
	return auth.WithTestUser(r, sessionUser)
}

// NewAuthenticatedRequest creates an HTTP request with a partner in context.
func NewAuthenticatedRequest(method, target string, user TestUser) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	return WithUser(req, user)
}
