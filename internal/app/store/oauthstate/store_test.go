package oauthstate_test

import (
	"testing"
	"time"

	"github.com/elearnprepa/influencerhub/internal/app/store/oauthstate"
	"github.com/elearnprepa/influencerhub/internal/testutil"
)

func TestValidate_OneTimeUse(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := oauthstate.New(pool)

	if err := store.Save(ctx, "state-1", "/dashboard", time.Now().UTC().Add(10*time.Minute)); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	returnURL, valid, err := store.Validate(ctx, "state-1")
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if !valid {
		t.Fatal("fresh state should validate")
	}
	if returnURL != "/dashboard" {
		t.Errorf("return URL: got %q", returnURL)
	}

	// Second use of the same state must fail.
	_, valid, err = store.Validate(ctx, "state-1")
	if err != nil {
		t.Fatalf("second Validate failed: %v", err)
	}
	if valid {
		t.Error("a state must only validate once")
	}
}

func TestValidate_ExpiredState(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := oauthstate.New(pool)

	if err := store.Save(ctx, "expired", "", time.Now().UTC().Add(-time.Minute)); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	_, valid, err := store.Validate(ctx, "expired")
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if valid {
		t.Error("an expired state must not validate")
	}
}

func TestValidate_UnknownState(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := oauthstate.New(pool)

	_, valid, err := store.Validate(ctx, "never-saved")
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if valid {
		t.Error("an unknown state must not validate")
	}
}

func TestCleanupExpired(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := oauthstate.New(pool)

	now := time.Now().UTC()
	if err := store.Save(ctx, "old-1", "", now.Add(-time.Hour)); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := store.Save(ctx, "old-2", "", now.Add(-time.Minute)); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := store.Save(ctx, "fresh", "/dashboard", now.Add(time.Hour)); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	removed, err := store.CleanupExpired(ctx)
	if err != nil {
		t.Fatalf("CleanupExpired failed: %v", err)
	}
	if removed != 2 {
		t.Errorf("removed: got %d, want 2", removed)
	}

	// The fresh state must survive the sweep.
	_, valid, err := store.Validate(ctx, "fresh")
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if !valid {
		t.Error("unexpired state should survive cleanup")
	}
}
