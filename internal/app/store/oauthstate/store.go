// internal/app/store/oauthstate/store.go
package oauthstate

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store manages one-time OAuth2 state tokens used for CSRF protection
// during the login flow.
type Store struct {
	pool *pgxpool.Pool
}

// New creates an OAuth state Store.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Save stores a state token with the given expiration time, optionally
// carrying the URL to return to after authentication.
func (s *Store) Save(ctx context.Context, state, returnURL string, expiresAt time.Time) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO oauth_states (state, return_url, expires_at, created_at)
		VALUES ($1, $2, $3, $4)`,
		state, returnURL, expiresAt.UTC(), time.Now().UTC())
	return err
}

// Validate checks that a state token exists and has not expired. A valid
// token is deleted on the way out (one-time use) and its return URL is
// returned. Invalid or expired states yield valid=false with no error.
func (s *Store) Validate(ctx context.Context, state string) (returnURL string, valid bool, err error) {
	row := s.pool.QueryRow(ctx, `
		DELETE FROM oauth_states
		WHERE state = $1 AND expires_at > now()
		RETURNING return_url`,
		state)

	if err := row.Scan(&returnURL); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, err
	}
	return returnURL, true, nil
}

// CleanupExpired removes expired state tokens. Called periodically by the
// background worker; Validate already ignores expired rows, so this only
// keeps the table from growing.
func (s *Store) CleanupExpired(ctx context.Context) (int64, error) {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM oauth_states WHERE expires_at < now()`)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
