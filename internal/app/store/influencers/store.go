// internal/app/store/influencers/store.go
package influencers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/elearnprepa/influencerhub/internal/domain/models"
)

// ErrNotFound is returned when no influencer row matches the lookup.
// Callers must distinguish it from infrastructure errors: a missing row
// means "not an authorized partner", anything else means "could not check".
var ErrNotFound = errors.New("influencer not found")

// Store reads influencer rows. All rows are provisioned out-of-band;
// this store never writes.
type Store struct {
	pool *pgxpool.Pool
}

// New creates an influencer Store backed by the given pool.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

const selectColumns = `id, name, email, promo_code, discount_percentage,
	valid_from, valid_until, created_at`

// GetByEmail returns the influencer with the given email (exact match,
// case-insensitive via lowercasing).
func (s *Store) GetByEmail(ctx context.Context, email string) (*models.Influencer, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+selectColumns+` FROM influencers WHERE email = $1`,
		strings.ToLower(strings.TrimSpace(email)))

	inf, err := scanInfluencer(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get influencer by email: %w", err)
	}
	return inf, nil
}

func scanInfluencer(row pgx.Row) (*models.Influencer, error) {
	var inf models.Influencer
	err := row.Scan(
		&inf.ID,
		&inf.Name,
		&inf.Email,
		&inf.PromoCode,
		&inf.DiscountPercentage,
		&inf.ValidFrom,
		&inf.ValidUntil,
		&inf.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &inf, nil
}
