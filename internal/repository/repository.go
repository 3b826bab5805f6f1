// Package repository holds the owner-scoped data access for each entity.
//
// Every query is constrained by the owner's user id, so an entity that
// belongs to someone else is reported exactly like one that does not exist.
// Repositories are bound to a *gorm.DB; WithTx rebinds them to an open
// store transaction.
package repository

import (
	"context"
	"errors"

	"pocketledger/internal/database"
	apperrors "pocketledger/internal/errors"
	"pocketledger/internal/uuid"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	forUpdate = clause.Locking{Strength: "UPDATE"}
	forShare  = clause.Locking{Strength: "SHARE"}
)

// findOwned loads one row of T by id under ownerID, applying the given
// locking clauses. A malformed id is reported as notFound.
func findOwned[T any](ctx context.Context, db *gorm.DB, ownerID, id string, notFound *apperrors.AppError, clauses ...clause.Expression) (*T, error) {
	if !uuid.IsValid(id) {
		return nil, notFound
	}

	var out T
	err := db.WithContext(ctx).
		Clauses(clauses...).
		Where("id = ? AND user_id = ?", uuid.Canonical(id), ownerID).
		First(&out).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound
		}
		return nil, database.Classify(err)
	}
	return &out, nil
}

// findAllOwned loads every row of T under ownerID matching the extra condition.
func findAllOwned[T any](ctx context.Context, db *gorm.DB, ownerID string, order string, conds ...interface{}) ([]T, error) {
	q := db.WithContext(ctx).Where("user_id = ?", ownerID)
	if len(conds) > 0 {
		q = q.Where(conds[0], conds[1:]...)
	}

	out := []T{}
	if err := q.Order(order).Find(&out).Error; err != nil {
		return nil, database.Classify(err)
	}
	return out, nil
}

// deleteOwned hard-deletes one row of T by id under ownerID.
func deleteOwned[T any](ctx context.Context, db *gorm.DB, ownerID, id string, notFound *apperrors.AppError) error {
	if !uuid.IsValid(id) {
		return notFound
	}

	var model T
	result := db.WithContext(ctx).
		Where("id = ? AND user_id = ?", uuid.Canonical(id), ownerID).
		Delete(&model)
	if result.Error != nil {
		return database.Classify(result.Error)
	}
	if result.RowsAffected == 0 {
		return notFound
	}
	return nil
}
