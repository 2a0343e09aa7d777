// internal/app/store/promousage/store.go
package promousage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/elearnprepa/influencerhub/internal/domain/models"
)

// Store reads promo code usage rows joined with their payments.
type Store struct {
	pool *pgxpool.Pool
}

// New creates a usage Store backed by the given pool.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// ListByInfluencer returns all usage rows for one influencer, newest first,
// each joined with its payment when one exists.
func (s *Store) ListByInfluencer(ctx context.Context, influencerID uuid.UUID) ([]models.PromoCodeUsage, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT u.id, u.influencer_id, u.discount_amount, u.created_at,
		       p.id, p.amount, p.trx_reference, p.status, p.created_at,
		       p.user_id, p.cart_id
		FROM promo_code_usage u
		LEFT JOIN payments p ON p.id = u.payment_id
		WHERE u.influencer_id = $1
		ORDER BY u.created_at DESC`,
		influencerID)
	if err != nil {
		return nil, fmt.Errorf("list promo usage: %w", err)
	}
	defer rows.Close()

	var usages []models.PromoCodeUsage
	for rows.Next() {
		var (
			u models.PromoCodeUsage

			payID     *uuid.UUID
			payAmount *decimal.Decimal
			payTrxRef *string
			payStatus *string
			payAt     *time.Time
			payUser   *uuid.UUID
			payCart   *uuid.UUID
		)
		err := rows.Scan(
			&u.ID, &u.InfluencerID, &u.DiscountAmount, &u.CreatedAt,
			&payID, &payAmount, &payTrxRef, &payStatus, &payAt,
			&payUser, &payCart,
		)
		if err != nil {
			return nil, fmt.Errorf("scan promo usage: %w", err)
		}

		if payID != nil {
			p := models.Payment{
				ID:        *payID,
				Amount:    *payAmount,
				Status:    *payStatus,
				CreatedAt: *payAt,
			}
			if payTrxRef != nil {
				p.TrxReference = *payTrxRef
			}
			if payUser != nil {
				p.UserID = *payUser
			}
			if payCart != nil {
				p.CartID = *payCart
			}
			u.Payment = &p
		}

		usages = append(usages, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate promo usage: %w", err)
	}

	return usages, nil
}
