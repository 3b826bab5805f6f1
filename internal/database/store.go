package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"

	apperrors "pocketledger/internal/errors"
)

// Atomic runs fn inside a single store transaction and waits for it to
// commit or roll back. Any error returned by fn rolls the whole unit back.
// The returned error is always an *AppError: errors produced by fn pass
// through unchanged and store failures are classified.
func Atomic(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error, opts ...*sql.TxOptions) error {
	return Classify(db.WithContext(ctx).Transaction(fn, opts...))
}

// Snapshot is the option set for read-only units that need one consistent
// view across several queries.
var Snapshot = &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}

// Classify tags a store error with the kind the caller needs to decide
// whether to retry. AppErrors are returned untouched. Contention becomes
// ErrConflict and an out-of-range amount becomes ErrInvalidInput; every other
// store failure becomes ErrStoreUnavailable.
func Classify(err error) error {
	if err == nil {
		return nil
	}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return err
	}

	if isConflict(err) {
		return apperrors.Wrap(apperrors.ErrConflict, err)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "22003" { // numeric_value_out_of_range
		return apperrors.Wrap(apperrors.ErrInvalidInput, err)
	}
	return apperrors.Wrap(apperrors.ErrStoreUnavailable, err)
}

func isConflict(err error) bool {
	// A referenced row vanished under a concurrent delete.
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "40001", // serialization_failure
			"40P01", // deadlock_detected
			"55P03", // lock_not_available
			"23503": // foreign_key_violation
			return true
		}
		return false
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code == sqlite3.ErrBusy || sqliteErr.Code == sqlite3.ErrLocked
	}

	return false
}
