// internal/app/features/dashboard/handler.go
package dashboard

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/google/uuid"
	"go.uber.org/zap"

	uierrors "github.com/elearnprepa/influencerhub/internal/app/features/errors"
	influencerstore "github.com/elearnprepa/influencerhub/internal/app/store/influencers"
	"github.com/elearnprepa/influencerhub/internal/app/system/guard"
	"github.com/elearnprepa/influencerhub/internal/app/system/promostats"
	"github.com/elearnprepa/influencerhub/internal/app/system/timeouts"
	"github.com/elearnprepa/influencerhub/internal/app/system/viewdata"
	"github.com/elearnprepa/influencerhub/internal/domain/models"
)

// InfluencerSource resolves the signed-in partner's own record.
type InfluencerSource interface {
	GetByEmail(ctx context.Context, email string) (*models.Influencer, error)
}

// UsageSource lists a partner's promo-code usage history.
type UsageSource interface {
	ListByInfluencer(ctx context.Context, influencerID uuid.UUID) ([]models.PromoCodeUsage, error)
}

type Handler struct {
	Log         *zap.Logger
	Influencers InfluencerSource
	Usage       UsageSource
	Errors      *uierrors.Handler
}

func NewHandler(influencers InfluencerSource, usage UsageSource, errs *uierrors.Handler, logger *zap.Logger) *Handler {
	return &Handler{
		Log:         logger,
		Influencers: influencers,
		Usage:       usage,
		Errors:      errs,
	}
}

// ServeDashboard handles GET /dashboard.
func (h *Handler) ServeDashboard(w http.ResponseWriter, r *http.Request) {
	user, ok := guard.Gate(w, r, h.Errors, h.Log)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	inf, err := h.Influencers.GetByEmail(ctx, user.Email)
	cancel()
	if err != nil {
		// The partner check passed moments ago, so even ErrNotFound here
		// means the store is misbehaving rather than a revoked account.
		if errors.Is(err, influencerstore.ErrNotFound) {
			h.Log.Warn("influencer row vanished between check and dashboard",
				zap.String("email", user.Email))
		} else {
			h.Log.Error("load influencer for dashboard",
				zap.String("email", user.Email),
				zap.Error(err))
		}
		h.Errors.CheckFailed(w, r)
		return
	}

	ctx, cancel = context.WithTimeout(r.Context(), timeouts.Medium())
	events, err := h.Usage.ListByInfluencer(ctx, inf.ID)
	cancel()
	if err != nil {
		h.Log.Error("load promo usage for dashboard",
			zap.String("influencer_id", inf.ID.String()),
			zap.Error(err))
		h.Errors.CheckFailed(w, r)
		return
	}

	vm := newDashboardVM(r, inf, len(events))

	summary, aggErr := promostats.Aggregate(events, inf.DiscountPercentage)
	rows, rowsErr := promostats.ExtendRows(events, inf.DiscountPercentage)
	if aggErr != nil || rowsErr != nil {
		err := aggErr
		if err == nil {
			err = rowsErr
		}
		// A bad discount percentage poisons every derived figure. Show the
		// promo card and raw history, but no reconstructed amounts.
		h.Log.Error("aggregate promo usage",
			zap.String("influencer_id", inf.ID.String()),
			zap.String("discount_percentage", inf.DiscountPercentage.String()),
			zap.Error(err))
		vm.DataError = "Your revenue figures cannot be computed right now. Our team has been notified."
		templates.Render(w, r, "dashboard", vm)
		return
	}

	vm.Stats = newStatsVM(summary)
	vm.Series = newSeriesVM(summary.Series)
	vm.Rows = newRowVMs(rows)

	templates.Render(w, r, "dashboard", vm)
}

func newDashboardVM(r *http.Request, inf *models.Influencer, totalEvents int) *dashboardVM {
	vm := &dashboardVM{
		BaseVM:             viewdata.NewBaseVM(r, "Dashboard", "/"),
		InfluencerName:     inf.Name,
		PromoCode:          inf.PromoCode,
		DiscountPercentage: inf.DiscountPercentage.String(),
		TotalEvents:        totalEvents,
	}
	if inf.HasExpiry() {
		vm.ValidUntil = inf.ValidUntil.Format("2006-01-02")
		vm.Expired = inf.ValidUntil.Before(time.Now().UTC())
	}
	return vm
}
