// internal/domain/models/influencer.go
package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Influencer is a partner entitled to a promo code and dashboard access.
//
// Rows are provisioned out-of-band by the commerce back office; this
// application only ever reads them. An influencer row existing for an
// email is what authorizes that email to use the dashboard.
type Influencer struct {
	ID                 uuid.UUID       `json:"id"`
	Name               string          `json:"name"`
	Email              string          `json:"email"` // unique, lowercased; join key to the OAuth identity
	PromoCode          string          `json:"promo_code"`
	DiscountPercentage decimal.Decimal `json:"discount_percentage"` // 0–100
	ValidFrom          time.Time       `json:"valid_from"`
	ValidUntil         *time.Time      `json:"valid_until,omitempty"` // nil means no expiry
	CreatedAt          time.Time       `json:"created_at"`
}

// HasExpiry reports whether the promo code has an end date.
func (i Influencer) HasExpiry() bool {
	return i.ValidUntil != nil
}
