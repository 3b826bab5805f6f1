package services

import (
	"testing"

	"pocketledger/internal/events"
	"pocketledger/internal/ledger"
	"pocketledger/internal/testutil"

	"github.com/shopspring/decimal"
)

func TestCreateCategory(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		s := newStack(t)
		user := testutil.CreateTestUser(t, s.db)

		cat, err := s.categories.CreateCategory(ctx, user.ID, "Groceries")
		testutil.AssertNoError(t, err)

		if cat.ID == "" {
			t.Fatal("expected a category ID")
		}
		if cat.UserID != user.ID {
			t.Errorf("expected owner %s, got %s", user.ID, cat.UserID)
		}
	})

	t.Run("empty_name", func(t *testing.T) {
		s := newStack(t)
		user := testutil.CreateTestUser(t, s.db)

		_, err := s.categories.CreateCategory(ctx, user.ID, "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("unauthenticated", func(t *testing.T) {
		s := newStack(t)

		_, err := s.categories.CreateCategory(ctx, "", "Food")
		testutil.AssertAppError(t, err, "UNAUTHORIZED")
	})
}

func TestUpdateCategory(t *testing.T) {
	s := newStack(t)
	user := testutil.CreateTestUser(t, s.db)
	cat := testutil.CreateTestCategory(t, s.db, user.ID)

	updated, err := s.categories.UpdateCategory(ctx, user.ID, cat.ID, "Rent")
	testutil.AssertNoError(t, err)
	if updated.Name != "Rent" {
		t.Errorf("expected Rent, got %s", updated.Name)
	}

	fetched, err := s.categories.GetCategoryByID(ctx, user.ID, cat.ID)
	testutil.AssertNoError(t, err)
	if fetched.Name != "Rent" {
		t.Errorf("expected stored name Rent, got %s", fetched.Name)
	}

	_, err = s.categories.UpdateCategory(ctx, testutil.CreateTestUser(t, s.db).ID, cat.ID, "Stolen")
	testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
}

func TestDeleteCategory(t *testing.T) {
	s := newStack(t)
	user := testutil.CreateTestUser(t, s.db)
	wallet := testutil.CreateTestProfileWithBalance(t, s.db, user.ID, "100.00")
	food := testutil.CreateTestCategory(t, s.db, user.ID)

	for _, amount := range []int64{-10, -5} {
		_, err := s.transactions.CreateTransaction(ctx, user.ID, ledger.Entry{
			ProfileID: wallet.ID, CategoryID: food.ID, Balance: decimal.NewFromInt(amount),
		})
		testutil.AssertNoError(t, err)
	}

	testutil.AssertNoError(t, s.categories.DeleteCategory(ctx, user.ID, food.ID))
	testutil.AssertDecimal(t, testutil.ReloadProfile(t, s.db, wallet.ID).Balance, "100.00")

	event := s.publisher.last(t)
	if event.Type != events.CategoryDeleted || event.RemovedTransactions != 2 {
		t.Errorf("unexpected event %+v", event)
	}
	if len(event.Balances) != 1 || !event.Balances[0].Balance.Equal(decimal.NewFromInt(100)) {
		t.Errorf("unexpected balances %+v", event.Balances)
	}

	_, err := s.categories.GetCategoryByID(ctx, user.ID, food.ID)
	testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
}
