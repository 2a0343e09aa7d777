package authcheck_test

import (
	"context"
	"errors"
	"testing"

	influencerstore "github.com/elearnprepa/influencerhub/internal/app/store/influencers"
	"github.com/elearnprepa/influencerhub/internal/app/system/authcheck"
	"github.com/elearnprepa/influencerhub/internal/domain/models"
)

type fakeSource struct {
	byEmail map[string]*models.Influencer
	err     error
}

func (f *fakeSource) GetByEmail(_ context.Context, email string) (*models.Influencer, error) {
	if f.err != nil {
		return nil, f.err
	}
	if inf, ok := f.byEmail[email]; ok {
		return inf, nil
	}
	return nil, influencerstore.ErrNotFound
}

func TestCheck_Authorized(t *testing.T) {
	inf := &models.Influencer{Name: "Ada", Email: "ada@test.com"}
	checker := authcheck.New(&fakeSource{byEmail: map[string]*models.Influencer{"ada@test.com": inf}})

	res := checker.Check(context.Background(), "ada@test.com")

	if res.Outcome != authcheck.Authorized {
		t.Fatalf("outcome: got %v, want Authorized", res.Outcome)
	}
	if res.Influencer == nil || res.Influencer.Email != "ada@test.com" {
		t.Errorf("influencer: got %+v", res.Influencer)
	}
	if res.Err != nil {
		t.Errorf("err should be nil, got %v", res.Err)
	}
}

func TestCheck_NotAuthorized(t *testing.T) {
	checker := authcheck.New(&fakeSource{})

	res := checker.Check(context.Background(), "stranger@test.com")

	if res.Outcome != authcheck.NotAuthorized {
		t.Fatalf("outcome: got %v, want NotAuthorized", res.Outcome)
	}
	if res.Influencer != nil {
		t.Errorf("influencer should be nil, got %+v", res.Influencer)
	}
}

// A failed lookup must never be classified as NotAuthorized; that
// distinction is what keeps a database outage from revoking sessions.
func TestCheck_LookupFailure(t *testing.T) {
	dbErr := errors.New("connection refused")
	checker := authcheck.New(&fakeSource{err: dbErr})

	res := checker.Check(context.Background(), "ada@test.com")

	if res.Outcome != authcheck.CheckFailed {
		t.Fatalf("outcome: got %v, want CheckFailed", res.Outcome)
	}
	if !errors.Is(res.Err, dbErr) {
		t.Errorf("err: got %v, want wrapped %v", res.Err, dbErr)
	}
}
