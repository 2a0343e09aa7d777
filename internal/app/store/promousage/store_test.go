package promousage_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/elearnprepa/influencerhub/internal/app/store/promousage"
	"github.com/elearnprepa/influencerhub/internal/domain/models"
	"github.com/elearnprepa/influencerhub/internal/testutil"
)

func TestListByInfluencer(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, pool)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	inf := fixtures.CreateInfluencer(ctx, "Ada Partner", "ada@test.com", "ADA20", 20)
	other := fixtures.CreateInfluencer(ctx, "Bob Partner", "bob@test.com", "BOB10", 10)

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	fixtures.CreateUsage(ctx, inf.ID, decimal.NewFromInt(8000), models.PaymentCompleted, base)
	fixtures.CreateUsage(ctx, inf.ID, decimal.NewFromInt(5000), models.PaymentPending, base.Add(24*time.Hour))
	fixtures.CreateUsage(ctx, other.ID, decimal.NewFromInt(999), models.PaymentCompleted, base)

	store := promousage.New(pool)

	got, err := store.ListByInfluencer(ctx, inf.ID)
	if err != nil {
		t.Fatalf("ListByInfluencer failed: %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("rows: got %d, want 2 (other partners' rows must not leak)", len(got))
	}

	// Newest first.
	if !got[0].CreatedAt.After(got[1].CreatedAt) {
		t.Errorf("rows not in descending order: %v then %v", got[0].CreatedAt, got[1].CreatedAt)
	}

	if got[0].Payment == nil || got[0].Payment.Status != models.PaymentPending {
		t.Errorf("newest row payment: got %+v", got[0].Payment)
	}
	if !got[1].Payment.Amount.Equal(decimal.NewFromInt(8000)) {
		t.Errorf("oldest row amount: got %s", got[1].Payment.Amount)
	}
	if got[1].Payment.TrxReference == "" {
		t.Error("payment reference should survive the join")
	}
}

func TestListByInfluencer_UsageWithoutPayment(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, pool)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	inf := fixtures.CreateInfluencer(ctx, "Ada Partner", "ada@test.com", "ADA20", 20)
	fixtures.CreateUsageWithoutPayment(ctx, inf.ID, time.Now().UTC())

	store := promousage.New(pool)

	got, err := store.ListByInfluencer(ctx, inf.ID)
	if err != nil {
		t.Fatalf("ListByInfluencer failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("rows: got %d, want 1", len(got))
	}
	if got[0].Payment != nil {
		t.Errorf("expected nil payment, got %+v", got[0].Payment)
	}
}

func TestListByInfluencer_Empty(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, pool)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	inf := fixtures.CreateInfluencer(ctx, "Ada Partner", "ada@test.com", "ADA20", 20)

	store := promousage.New(pool)

	got, err := store.ListByInfluencer(ctx, inf.ID)
	if err != nil {
		t.Fatalf("ListByInfluencer failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("rows: got %d, want 0", len(got))
	}
}
