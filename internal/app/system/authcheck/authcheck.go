// Package authcheck answers one question: is this authenticated email an
// authorized influencer partner?
//
// The answer is deliberately three-valued. "No matching row" and "the
// lookup itself failed" must not be conflated: the first one revokes the
// session, the second one must leave it alone so a transient database
// outage cannot sign everyone out.
package authcheck

import (
	"context"
	"errors"

	influencerstore "github.com/elearnprepa/influencerhub/internal/app/store/influencers"
	"github.com/elearnprepa/influencerhub/internal/app/system/timeouts"
	"github.com/elearnprepa/influencerhub/internal/domain/models"
)

// Outcome classifies a partner check.
type Outcome int

const (
	// Authorized: a matching influencer row exists for the email.
	Authorized Outcome = iota
	// NotAuthorized: the lookup succeeded and found nothing. The caller
	// must invalidate the session so the identity cannot stay
	// half-authenticated.
	NotAuthorized
	// CheckFailed: the lookup could not be completed. The caller must NOT
	// sign the user out; surface a generic error instead.
	CheckFailed
)

// Result carries the outcome of a partner check plus the influencer row
// when the outcome is Authorized, or the underlying error when the
// outcome is CheckFailed.
type Result struct {
	Outcome    Outcome
	Influencer *models.Influencer
	Err        error
}

// InfluencerSource is the read surface the checker needs.
type InfluencerSource interface {
	GetByEmail(ctx context.Context, email string) (*models.Influencer, error)
}

// Checker performs partner checks against the influencer store.
type Checker struct {
	influencers InfluencerSource
}

// New creates a Checker over the given influencer source.
func New(src InfluencerSource) *Checker {
	return &Checker{influencers: src}
}

// Check looks up the email and classifies the result. The lookup is
// bounded by a short timeout; a deadline hit is a CheckFailed, never a
// NotAuthorized.
func (c *Checker) Check(ctx context.Context, email string) Result {
	ctx, cancel := context.WithTimeout(ctx, timeouts.Short())
	defer cancel()

	inf, err := c.influencers.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, influencerstore.ErrNotFound) {
			return Result{Outcome: NotAuthorized}
		}
		return Result{Outcome: CheckFailed, Err: err}
	}
	return Result{Outcome: Authorized, Influencer: inf}
}
