package testutil_test

import (
	"testing"

	"pocketledger/internal/errors"
	"pocketledger/internal/models"
	"pocketledger/internal/testutil"

	"github.com/shopspring/decimal"
)

func TestSetupTestDB(t *testing.T) {
	db := testutil.SetupTestDB(t)

	var count int64
	for _, table := range []string{"users", "profiles", "categories", "transactions", "audit_logs"} {
		if err := db.Table(table).Count(&count).Error; err != nil {
			t.Errorf("table %q should exist after migration: %v", table, err)
		}
	}
}

func TestSetupTestDBIsIsolated(t *testing.T) {
	first := testutil.SetupTestDB(t)
	second := testutil.SetupTestDB(t)

	testutil.CreateTestUser(t, first)

	if n := testutil.CountRows(t, second, &models.User{}, ""); n != 0 {
		t.Errorf("expected an empty second database, found %d users", n)
	}
}

func TestFixtures(t *testing.T) {
	db := testutil.SetupTestDB(t)

	user := testutil.CreateTestUser(t, db)
	if user.ID == "" {
		t.Fatal("user should have an ID")
	}

	profile := testutil.CreateTestProfileWithBalance(t, db, user.ID, "50.25")
	reloaded := testutil.ReloadProfile(t, db, profile.ID)
	testutil.AssertDecimal(t, reloaded.Balance, "50.25")
	testutil.AssertDecimal(t, reloaded.OpeningBalance, "50.25")

	category := testutil.CreateTestCategory(t, db, user.ID)
	tx := testutil.CreateTestTransaction(t, db, user.ID, profile.ID, category.ID, "-10.5")
	testutil.AssertDecimal(t, tx.Balance, "-10.5")

	if n := testutil.CountRows(t, db, &models.Transaction{}, "profile_id = ?", profile.ID); n != 1 {
		t.Errorf("expected 1 transaction, got %d", n)
	}
}

func TestAssertAppError(t *testing.T) {
	err := errors.WithMessage(errors.ErrProfileNotFound, "custom message")
	testutil.AssertAppError(t, err, "PROFILE_NOT_FOUND")
	testutil.AssertReference(t, errors.ErrCategoryReferenceNotFound, "category")
}

func TestAssertNoError(t *testing.T) {
	testutil.AssertNoError(t, nil)
	testutil.AssertDecimal(t, decimal.New(150, -2), "1.5")
}
