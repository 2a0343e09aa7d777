// internal/domain/models/payment.go
package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Payment statuses as written by the commerce system. Anything else is
// treated as "other" for display and excluded from financial totals.
const (
	PaymentCompleted   = "completed"
	PaymentPending     = "pending"
	PaymentInitialized = "initialized"
)

// Payment is the charge associated with a promo code redemption.
// Amount is what was actually charged, i.e. after the discount.
type Payment struct {
	ID           uuid.UUID       `json:"id"`
	Amount       decimal.Decimal `json:"amount"`
	TrxReference string          `json:"trx_reference"`
	Status       string          `json:"status"`
	CreatedAt    time.Time       `json:"created_at"`
	UserID       uuid.UUID       `json:"user_id"`
	CartID       uuid.UUID       `json:"cart_id"`
}

// IsCompleted reports whether the payment settled.
func (p Payment) IsCompleted() bool {
	return p.Status == PaymentCompleted
}

// StatusLabel returns a display bucket for the payment status.
func StatusLabel(status string) string {
	switch status {
	case PaymentCompleted, PaymentPending, PaymentInitialized:
		return status
	default:
		return "other"
	}
}
