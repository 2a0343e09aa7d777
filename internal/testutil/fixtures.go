package testutil

import (
	"context"
	"io/fs"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	influencerhub "github.com/elearnprepa/influencerhub"
	"github.com/elearnprepa/influencerhub/internal/app/store/postgres"
	"github.com/elearnprepa/influencerhub/internal/domain/models"
)

// TestContext returns a context with a generous timeout for test database
// operations.
func TestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 30*time.Second)
}

// SetupTestDB connects to the Postgres instance named by TEST_DATABASE_URL,
// applies migrations, and truncates all application tables. Tests that call
// it are skipped when the variable is unset, so the suite still passes on
// machines without a database.
func SetupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping database test")
	}

	ctx, cancel := TestContext()
	defer cancel()

	pool, err := postgres.NewPool(ctx, dsn, 4, 0)
	if err != nil {
		t.Fatalf("connect test database: %v", err)
	}
	t.Cleanup(pool.Close)

	migrations, err := fs.Sub(influencerhub.MigrationsFS, "migrations")
	if err != nil {
		t.Fatalf("open embedded migrations: %v", err)
	}
	if err := postgres.RunMigrations(dsn, migrations, zap.NewNop()); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}

	_, err = pool.Exec(ctx, `TRUNCATE promo_code_usage, payments, influencers, oauth_states CASCADE`)
	if err != nil {
		t.Fatalf("truncate test tables: %v", err)
	}

	return pool
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	pool *pgxpool.Pool
	t    *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, pool *pgxpool.Pool) *Fixtures {
	t.Helper()
	return &Fixtures{pool: pool, t: t}
}

// Pool returns the underlying pool for direct access in tests.
func (f *Fixtures) Pool() *pgxpool.Pool {
	return f.pool
}

// CreateInfluencer inserts a partner row and returns the model.
func (f *Fixtures) CreateInfluencer(ctx context.Context, name, email, promoCode string, discountPct int64) models.Influencer {
	f.t.Helper()

	now := time.Now().UTC()
	inf := models.Influencer{
		ID:                 uuid.New(),
		Name:               name,
		Email:              email,
		PromoCode:          promoCode,
		DiscountPercentage: decimal.NewFromInt(discountPct),
		ValidFrom:          now,
		CreatedAt:          now,
	}

	_, err := f.pool.Exec(ctx, `
		INSERT INTO influencers (id, name, email, promo_code, discount_percentage, valid_from, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		inf.ID, inf.Name, inf.Email, inf.PromoCode, inf.DiscountPercentage, inf.ValidFrom, inf.CreatedAt)
	if err != nil {
		f.t.Fatalf("failed to create test influencer: %v", err)
	}

	return inf
}

// CreateUsage inserts a payment with the given status plus the promo usage
// event pointing at it. Amount is what was charged after the discount.
func (f *Fixtures) CreateUsage(ctx context.Context, influencerID uuid.UUID, amount decimal.Decimal, status string, createdAt time.Time) models.PromoCodeUsage {
	f.t.Helper()

	payment := models.Payment{
		ID:           uuid.New(),
		Amount:       amount,
		TrxReference: "TRX-" + uuid.NewString()[:8],
		Status:       status,
		CreatedAt:    createdAt,
		UserID:       uuid.New(),
		CartID:       uuid.New(),
	}

	_, err := f.pool.Exec(ctx, `
		INSERT INTO payments (id, amount, trx_reference, status, created_at, user_id, cart_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		payment.ID, payment.Amount, payment.TrxReference, payment.Status, payment.CreatedAt, payment.UserID, payment.CartID)
	if err != nil {
		f.t.Fatalf("failed to create test payment: %v", err)
	}

	usage := models.PromoCodeUsage{
		ID:           uuid.New(),
		InfluencerID: influencerID,
		// Discount recorded at purchase time is not used by the dashboard
		// math; a zero placeholder keeps fixtures simple.
		DiscountAmount: decimal.Zero,
		CreatedAt:      createdAt,
		Payment:        &payment,
	}

	paymentID := payment.ID
	_, err = f.pool.Exec(ctx, `
		INSERT INTO promo_code_usage (id, influencer_id, payment_id, discount_amount, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		usage.ID, usage.InfluencerID, paymentID, usage.DiscountAmount, usage.CreatedAt)
	if err != nil {
		f.t.Fatalf("failed to create test promo usage: %v", err)
	}

	return usage
}

// CreateUsageWithoutPayment inserts a usage event with no linked payment.
func (f *Fixtures) CreateUsageWithoutPayment(ctx context.Context, influencerID uuid.UUID, createdAt time.Time) models.PromoCodeUsage {
	f.t.Helper()

	usage := models.PromoCodeUsage{
		ID:             uuid.New(),
		InfluencerID:   influencerID,
		DiscountAmount: decimal.Zero,
		CreatedAt:      createdAt,
	}

	_, err := f.pool.Exec(ctx, `
		INSERT INTO promo_code_usage (id, influencer_id, payment_id, discount_amount, created_at)
		VALUES ($1, $2, NULL, $3, $4)`,
		usage.ID, usage.InfluencerID, usage.DiscountAmount, usage.CreatedAt)
	if err != nil {
		f.t.Fatalf("failed to create test promo usage: %v", err)
	}

	return usage
}

// SaveOAuthState inserts a login state row directly.
func (f *Fixtures) SaveOAuthState(ctx context.Context, state, returnURL string, expiresAt time.Time) {
	f.t.Helper()

	_, err := f.pool.Exec(ctx, `
		INSERT INTO oauth_states (state, return_url, expires_at)
		VALUES ($1, $2, $3)`,
		state, returnURL, expiresAt)
	if err != nil {
		f.t.Fatalf("failed to create test oauth state: %v", err)
	}
}
