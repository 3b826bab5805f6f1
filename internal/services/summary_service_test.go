package services

import (
	"encoding/json"
	"testing"

	"pocketledger/internal/events"
	"pocketledger/internal/ledger"
	"pocketledger/internal/models"
	"pocketledger/internal/repository"
	"pocketledger/internal/testutil"

	"github.com/shopspring/decimal"
)

func TestGetSummary(t *testing.T) {
	s := newStack(t)
	user := testutil.CreateTestUser(t, s.db)
	wallet := testutil.CreateTestProfileWithBalance(t, s.db, user.ID, "100")
	bank := testutil.CreateTestProfileWithBalance(t, s.db, user.ID, "50")
	food := testutil.CreateTestCategory(t, s.db, user.ID)
	salary := testutil.CreateTestCategory(t, s.db, user.ID)

	entries := []ledger.Entry{
		{ProfileID: wallet.ID, CategoryID: food.ID, Balance: decimal.RequireFromString("-12.5")},
		{ProfileID: bank.ID, CategoryID: food.ID, Balance: decimal.RequireFromString("-7.5")},
		{ProfileID: bank.ID, CategoryID: salary.ID, Balance: decimal.RequireFromString("1000")},
	}
	for _, e := range entries {
		_, err := s.transactions.CreateTransaction(ctx, user.ID, e)
		testutil.AssertNoError(t, err)
	}

	summary, err := s.summary.GetSummary(ctx, user.ID)
	testutil.AssertNoError(t, err)

	testutil.AssertDecimal(t, summary.Total, "1130")
	if len(summary.Profiles) != 2 || len(summary.Categories) != 2 {
		t.Fatalf("unexpected summary shape %+v", summary)
	}

	totals := map[string]decimal.Decimal{}
	counts := map[string]int{}
	for _, c := range summary.Categories {
		totals[c.CategoryID] = c.Total
		counts[c.CategoryID] = c.TransactionCount
	}
	testutil.AssertDecimal(t, totals[food.ID], "-20")
	testutil.AssertDecimal(t, totals[salary.ID], "1000")
	if counts[food.ID] != 2 {
		t.Errorf("expected 2 food transactions, got %d", counts[food.ID])
	}
}

func TestCheckLedger(t *testing.T) {
	s := newStack(t)
	user := testutil.CreateTestUser(t, s.db)
	wallet := testutil.CreateTestProfileWithBalance(t, s.db, user.ID, "10")

	discrepancies, err := s.summary.CheckLedger(ctx, user.ID)
	testutil.AssertNoError(t, err)
	if len(discrepancies) != 0 {
		t.Fatalf("expected a clean ledger, got %+v", discrepancies)
	}

	testutil.AssertNoError(t, s.db.Model(&models.Profile{}).Where("id = ?", wallet.ID).Update("balance", decimal.NewFromInt(11)).Error)

	discrepancies, err = s.summary.CheckLedger(ctx, user.ID)
	testutil.AssertNoError(t, err)
	if len(discrepancies) != 1 || discrepancies[0].ProfileID != wallet.ID {
		t.Errorf("expected the wallet to be reported, got %+v", discrepancies)
	}

	_, err = s.summary.CheckLedger(ctx, "")
	testutil.AssertAppError(t, err, "UNAUTHORIZED")
}

func TestLedgerAuditor(t *testing.T) {
	db := testutil.SetupTestDB(t)
	user := testutil.CreateTestUser(t, db)
	wallet := testutil.CreateTestProfileWithBalance(t, db, user.ID, "10")
	category := testutil.CreateTestCategory(t, db, user.ID)
	pub := &recorder{}
	svc := NewTransactionService(repository.NewTransactions(db), ledger.New(db), events.Fanout{pub, NewLedgerAuditor(db)})

	tx, err := svc.CreateTransaction(ctx, user.ID, ledger.Entry{
		ProfileID: wallet.ID, CategoryID: category.ID, Balance: decimal.RequireFromString("-2.5"),
	})
	testutil.AssertNoError(t, err)

	var entry models.AuditLog
	testutil.AssertNoError(t, db.Where("user_id = ? AND action = ?", user.ID, events.TransactionCreated).First(&entry).Error)
	if entry.ResourceType != "transaction" || entry.ResourceID != tx.ID {
		t.Errorf("unexpected audit entry %+v", entry)
	}

	var changes struct {
		Balances []events.Balance `json:"balances"`
	}
	testutil.AssertNoError(t, json.Unmarshal([]byte(entry.Changes), &changes))
	if len(changes.Balances) != 1 || changes.Balances[0].ProfileID != wallet.ID {
		t.Fatalf("unexpected balances %+v", changes.Balances)
	}
	testutil.AssertDecimal(t, changes.Balances[0].Balance, "7.5")
	if got := pub.types(); len(got) != 1 || got[0] != events.TransactionCreated {
		t.Errorf("expected the broker to see the event too, got %v", got)
	}
}

func TestAuditLog(t *testing.T) {
	s := newStack(t)
	user := testutil.CreateTestUser(t, s.db)
	profile := testutil.CreateTestProfile(t, s.db, user.ID)

	s.audit.Log(ctx, user.ID, "DELETE_PROFILE", "profile", profile.ID, "127.0.0.1", map[string]interface{}{"name": profile.Name})

	var entry models.AuditLog
	testutil.AssertNoError(t, s.db.Where("user_id = ?", user.ID).First(&entry).Error)
	if entry.Action != "DELETE_PROFILE" || entry.ResourceID != profile.ID {
		t.Errorf("unexpected audit entry %+v", entry)
	}
	if entry.Changes == "" {
		t.Error("expected changes to be recorded")
	}
}
