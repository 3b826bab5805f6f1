// Package ledger keeps every profile's stored balance equal to its opening
// balance plus the signed sum of its transactions.
//
// Each operation runs as one store transaction: the transaction-side and
// profile-side writes commit together or not at all.
//
// Locking: a category is locked before any profile, and profiles are locked
// in ascending id order. Any change to a transaction's amount or profile
// happens under the lock of the profile it currently belongs to, so facts
// read before taking that lock are read again afterwards; if they moved,
// the operation fails with a retryable conflict. The ledger never retries
// by itself.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"pocketledger/internal/database"
	apperrors "pocketledger/internal/errors"
	"pocketledger/internal/logger"
	"pocketledger/internal/models"
	"pocketledger/internal/repository"
	"pocketledger/internal/uuid"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Entry holds the caller-supplied fields of a transaction.
type Entry = repository.TransactionFields

// ProfileBalance is a profile's balance after a committed operation.
type ProfileBalance struct {
	ProfileID string          `json:"profile_id"`
	Balance   decimal.Decimal `json:"balance"`
}

// Result describes the effect of a committed ledger operation.
type Result struct {
	// Transaction is the created or edited transaction, nil for deletes.
	Transaction *models.Transaction
	// Balances lists every surviving profile whose balance changed, by id.
	Balances []ProfileBalance
	// RemovedTransactions counts transactions deleted by a cascade.
	RemovedTransactions int64
}

// Ledger applies balance-affecting operations.
type Ledger struct {
	db           *gorm.DB
	profiles     *repository.Profiles
	categories   *repository.Categories
	transactions *repository.Transactions
}

// New creates a Ledger over db.
func New(db *gorm.DB) *Ledger {
	return &Ledger{
		db:           db,
		profiles:     repository.NewProfiles(db),
		categories:   repository.NewCategories(db),
		transactions: repository.NewTransactions(db),
	}
}

// unit is the set of repositories bound to one store transaction.
type unit struct {
	profiles     *repository.Profiles
	categories   *repository.Categories
	transactions *repository.Transactions
}

func (l *Ledger) atomic(ctx context.Context, fn func(u unit) error) error {
	return database.Atomic(ctx, l.db, func(tx *gorm.DB) error {
		return fn(unit{
			profiles:     l.profiles.WithTx(tx),
			categories:   l.categories.WithTx(tx),
			transactions: l.transactions.WithTx(tx),
		})
	})
}

// AddTransaction records a new transaction and credits its amount to the
// profile.
func (l *Ledger) AddTransaction(ctx context.Context, ownerID string, in Entry) (*Result, error) {
	var res Result
	err := l.atomic(ctx, func(u unit) error {
		categoryErr := lockCategory(ctx, u.categories, ownerID, in.CategoryID)
		if categoryErr != nil && !errors.Is(categoryErr, apperrors.ErrCategoryReferenceNotFound) {
			return categoryErr
		}
		profile, err := u.profiles.FindByIDForUpdate(ctx, ownerID, in.ProfileID)
		if err != nil {
			return asReference(err, apperrors.ErrProfileNotFound, apperrors.ErrProfileReferenceNotFound)
		}
		if categoryErr != nil {
			return categoryErr
		}

		tx := &models.Transaction{
			ProfileID:   profile.ID,
			CategoryID:  in.CategoryID,
			Description: in.Description,
			Balance:     in.Balance,
			Date:        in.Date,
		}
		if err := u.transactions.Create(ctx, ownerID, tx); err != nil {
			return err
		}

		balance := profile.Balance.Add(in.Balance)
		if err := setBalance(ctx, u.profiles, ownerID, profile.ID, balance); err != nil {
			return err
		}

		res = Result{
			Transaction: tx,
			Balances:    []ProfileBalance{{ProfileID: profile.ID, Balance: balance}},
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// EditTransaction replaces every field of an existing transaction and moves
// the balance difference onto the affected profile or profiles.
func (l *Ledger) EditTransaction(ctx context.Context, ownerID, id string, in Entry) (*Result, error) {
	var res Result
	err := l.atomic(ctx, func(u unit) error {
		tx, err := u.transactions.FindByID(ctx, ownerID, id)
		if err != nil {
			return err
		}

		categoryErr := lockCategory(ctx, u.categories, ownerID, in.CategoryID)
		if categoryErr != nil && !errors.Is(categoryErr, apperrors.ErrCategoryReferenceNotFound) {
			return categoryErr
		}

		oldID := tx.ProfileID
		newID := uuid.Canonical(in.ProfileID)
		locked, err := lockProfiles(ctx, u.profiles, ownerID, oldID, newID)
		if err != nil {
			return err
		}
		if tx, err = reread(ctx, u.transactions, ownerID, tx); err != nil {
			return err
		}

		oldProfile, ok := locked[oldID]
		if !ok {
			return integrityViolation(ownerID, "transaction references a missing profile",
				"transaction_id", tx.ID, "profile_id", oldID)
		}
		newProfile, ok := locked[newID]
		if !ok {
			return apperrors.ErrProfileReferenceNotFound
		}
		if categoryErr != nil {
			return categoryErr
		}

		var balances []ProfileBalance
		if newProfile.ID == oldProfile.ID {
			balance := oldProfile.Balance.Add(in.Balance.Sub(tx.Balance))
			if err := setBalance(ctx, u.profiles, ownerID, oldProfile.ID, balance); err != nil {
				return err
			}
			balances = append(balances, ProfileBalance{ProfileID: oldProfile.ID, Balance: balance})
		} else {
			oldBalance := oldProfile.Balance.Sub(tx.Balance)
			newBalance := newProfile.Balance.Add(in.Balance)
			if err := setBalance(ctx, u.profiles, ownerID, oldProfile.ID, oldBalance); err != nil {
				return err
			}
			if err := setBalance(ctx, u.profiles, ownerID, newProfile.ID, newBalance); err != nil {
				return err
			}
			balances = append(balances,
				ProfileBalance{ProfileID: oldProfile.ID, Balance: oldBalance},
				ProfileBalance{ProfileID: newProfile.ID, Balance: newBalance},
			)
		}

		if err := u.transactions.Update(ctx, ownerID, tx, in); err != nil {
			return err
		}

		res = Result{Transaction: tx, Balances: sortBalances(balances)}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// DeleteTransaction removes a transaction and reverses its amount on the
// profile.
func (l *Ledger) DeleteTransaction(ctx context.Context, ownerID, id string) (*Result, error) {
	var res Result
	err := l.atomic(ctx, func(u unit) error {
		tx, err := u.transactions.FindByID(ctx, ownerID, id)
		if err != nil {
			return err
		}

		profile, err := u.profiles.FindByIDForUpdate(ctx, ownerID, tx.ProfileID)
		if err != nil && !errors.Is(err, apperrors.ErrProfileNotFound) {
			return err
		}
		if tx, err = reread(ctx, u.transactions, ownerID, tx); err != nil {
			return err
		}
		if profile == nil {
			return integrityViolation(ownerID, "transaction references a missing profile",
				"transaction_id", tx.ID, "profile_id", tx.ProfileID)
		}

		balance := profile.Balance.Sub(tx.Balance)
		if err := setBalance(ctx, u.profiles, ownerID, profile.ID, balance); err != nil {
			return err
		}
		if err := u.transactions.Delete(ctx, ownerID, tx.ID); err != nil {
			return err
		}

		res = Result{Balances: []ProfileBalance{{ProfileID: profile.ID, Balance: balance}}}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// DeleteProfile removes a profile together with every transaction against it.
func (l *Ledger) DeleteProfile(ctx context.Context, ownerID, id string) (*Result, error) {
	var res Result
	err := l.atomic(ctx, func(u unit) error {
		profile, err := u.profiles.FindByIDForUpdate(ctx, ownerID, id)
		if err != nil {
			return err
		}

		removed, err := u.transactions.DeleteAllByProfile(ctx, ownerID, profile.ID)
		if err != nil {
			return err
		}
		if err := u.profiles.Delete(ctx, ownerID, profile.ID); err != nil {
			return err
		}

		res = Result{RemovedTransactions: removed}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// DeleteCategory removes a category together with every transaction under
// it, first reversing each transaction's amount on its profile.
func (l *Ledger) DeleteCategory(ctx context.Context, ownerID, id string) (*Result, error) {
	var res Result
	err := l.atomic(ctx, func(u unit) error {
		category, err := u.categories.FindByIDForUpdate(ctx, ownerID, id)
		if err != nil {
			return err
		}

		txs, err := u.transactions.FindAllByCategory(ctx, ownerID, category.ID)
		if err != nil {
			return err
		}

		decrements := make(map[string]decimal.Decimal)
		ids := make([]string, 0)
		for _, tx := range txs {
			if _, ok := decrements[tx.ProfileID]; !ok {
				ids = append(ids, tx.ProfileID)
			}
			decrements[tx.ProfileID] = decrements[tx.ProfileID].Add(tx.Balance)
		}
		locked, err := lockProfiles(ctx, u.profiles, ownerID, ids...)
		if err != nil {
			return err
		}

		current, err := u.transactions.FindAllByCategory(ctx, ownerID, category.ID)
		if err != nil {
			return err
		}
		if !sameTransactions(txs, current) {
			return apperrors.Wrap(apperrors.ErrConflict, errors.New("category transactions changed while locking profiles"))
		}

		balances := make([]ProfileBalance, 0, len(decrements))
		for profileID, sum := range decrements {
			profile, ok := locked[profileID]
			if !ok {
				return integrityViolation(ownerID, "category transactions reference a missing profile",
					"category_id", category.ID, "profile_id", profileID)
			}
			balance := profile.Balance.Sub(sum)
			if err := setBalance(ctx, u.profiles, ownerID, profileID, balance); err != nil {
				return err
			}
			balances = append(balances, ProfileBalance{ProfileID: profileID, Balance: balance})
		}

		removed, err := u.transactions.DeleteAllByCategory(ctx, ownerID, category.ID)
		if err != nil {
			return err
		}
		if err := u.categories.Delete(ctx, ownerID, category.ID); err != nil {
			return err
		}

		res = Result{Balances: sortBalances(balances), RemovedTransactions: removed}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// lockProfiles row-locks the distinct profiles among ids in ascending id
// order and returns those that exist, keyed by id. Missing profiles are
// left for the caller to judge; only store errors are returned.
func lockProfiles(ctx context.Context, profiles *repository.Profiles, ownerID string, ids ...string) (map[string]*models.Profile, error) {
	distinct := make([]string, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			distinct = append(distinct, id)
		}
	}
	sort.Strings(distinct)

	locked := make(map[string]*models.Profile, len(distinct))
	for _, id := range distinct {
		profile, err := profiles.FindByIDForUpdate(ctx, ownerID, id)
		if err != nil {
			if errors.Is(err, apperrors.ErrProfileNotFound) {
				continue
			}
			return nil, err
		}
		locked[id] = profile
	}
	return locked, nil
}

// lockCategory share-locks the category a transaction is about to reference.
func lockCategory(ctx context.Context, categories *repository.Categories, ownerID, id string) error {
	_, err := categories.FindByIDForShare(ctx, ownerID, id)
	return asReference(err, apperrors.ErrCategoryNotFound, apperrors.ErrCategoryReferenceNotFound)
}

// reread loads tx again once its profile lock is held. A transaction that
// moved to another profile in between is a conflict.
func reread(ctx context.Context, transactions *repository.Transactions, ownerID string, tx *models.Transaction) (*models.Transaction, error) {
	current, err := transactions.FindByID(ctx, ownerID, tx.ID)
	if err != nil {
		return nil, err
	}
	if current.ProfileID != tx.ProfileID {
		return nil, apperrors.Wrap(apperrors.ErrConflict, errors.New("transaction moved to another profile"))
	}
	return current, nil
}

func sameTransactions(a, b []models.Transaction) bool {
	if len(a) != len(b) {
		return false
	}
	byID := make(map[string]models.Transaction, len(a))
	for _, tx := range a {
		byID[tx.ID] = tx
	}
	for _, tx := range b {
		prev, ok := byID[tx.ID]
		if !ok || prev.ProfileID != tx.ProfileID || !prev.Balance.Equal(tx.Balance) {
			return false
		}
	}
	return true
}

// setBalance stores a profile's new balance, rejecting one that no longer
// fits a stored amount.
func setBalance(ctx context.Context, profiles *repository.Profiles, ownerID, id string, balance decimal.Decimal) error {
	if !models.AmountInRange(balance) {
		return apperrors.WithMessage(apperrors.ErrInvalidInput,
			fmt.Sprintf("resulting profile balance must be less than %s in magnitude", models.AmountLimit()))
	}
	return profiles.SetBalance(ctx, ownerID, id, balance)
}

// asReference turns the not-found error of a referenced entity into the
// matching reference error.
func asReference(err error, notFound, reference *apperrors.AppError) error {
	if errors.Is(err, notFound) {
		return reference
	}
	return err
}

func integrityViolation(ownerID, msg string, keysAndValues ...interface{}) error {
	logger.Get().Errorw("ledger integrity violation: "+msg, append([]interface{}{"user_id", ownerID}, keysAndValues...)...)
	return apperrors.WithMessage(apperrors.ErrDataIntegrity, msg)
}

func sortBalances(balances []ProfileBalance) []ProfileBalance {
	sort.Slice(balances, func(i, j int) bool { return balances[i].ProfileID < balances[j].ProfileID })
	return balances
}
