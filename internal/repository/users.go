package repository

import (
	"context"
	"errors"

	"pocketledger/internal/database"
	apperrors "pocketledger/internal/errors"
	"pocketledger/internal/models"
	"pocketledger/internal/uuid"

	"gorm.io/gorm"
)

// Users reads and writes user accounts. Users own themselves, so lookups
// are not owner-scoped.
type Users struct {
	db *gorm.DB
}

// NewUsers creates a Users repository.
func NewUsers(db *gorm.DB) *Users {
	return &Users{db: db}
}

// WithTx returns a copy bound to tx.
func (r *Users) WithTx(tx *gorm.DB) *Users {
	return &Users{db: tx}
}

// FindByID returns the user with the given id.
func (r *Users) FindByID(ctx context.Context, id string) (*models.User, error) {
	if !uuid.IsValid(id) {
		return nil, apperrors.ErrUserNotFound
	}
	return r.first(ctx, "id = ?", uuid.Canonical(id))
}

// FindByUsername returns the user with the given username. Usernames are
// matched exactly.
func (r *Users) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.first(ctx, "username = ?", username)
}

func (r *Users) first(ctx context.Context, query string, args ...interface{}) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where(query, args...).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, database.Classify(err)
	}
	return &user, nil
}

// Create inserts user. A taken username yields ErrDuplicateUsername.
func (r *Users) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.ErrDuplicateUsername
		}
		return database.Classify(err)
	}
	return nil
}
