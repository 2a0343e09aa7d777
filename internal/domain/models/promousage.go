// internal/domain/models/promousage.go
package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PromoCodeUsage records one redemption of an influencer's promo code,
// joined with its payment. Each usage references at most one payment;
// Payment is nil when the payment row is missing (abandoned checkout).
type PromoCodeUsage struct {
	ID             uuid.UUID       `json:"id"`
	InfluencerID   uuid.UUID       `json:"influencer_id"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	CreatedAt      time.Time       `json:"created_at"`
	Payment        *Payment        `json:"payment,omitempty"`
}
