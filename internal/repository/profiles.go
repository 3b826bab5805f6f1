package repository

import (
	"context"

	"pocketledger/internal/database"
	apperrors "pocketledger/internal/errors"
	"pocketledger/internal/models"
	"pocketledger/internal/uuid"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProfileFields holds the user-editable profile fields. Nil fields are left
// unchanged. The balance is deliberately absent.
type ProfileFields struct {
	Name        *string
	Description *string
}

// Profiles is the owner-scoped profile repository.
type Profiles struct {
	db *gorm.DB
}

// NewProfiles creates a Profiles repository.
func NewProfiles(db *gorm.DB) *Profiles {
	return &Profiles{db: db}
}

// WithTx returns a copy bound to tx.
func (r *Profiles) WithTx(tx *gorm.DB) *Profiles {
	return &Profiles{db: tx}
}

// FindByID returns the owner's profile or ErrProfileNotFound.
func (r *Profiles) FindByID(ctx context.Context, ownerID, id string) (*models.Profile, error) {
	return findOwned[models.Profile](ctx, r.db, ownerID, id, apperrors.ErrProfileNotFound)
}

// FindByIDForUpdate is FindByID with an exclusive row lock held until the
// enclosing transaction ends.
func (r *Profiles) FindByIDForUpdate(ctx context.Context, ownerID, id string) (*models.Profile, error) {
	return findOwned[models.Profile](ctx, r.db, ownerID, id, apperrors.ErrProfileNotFound, forUpdate)
}

// FindAllByOwner lists the owner's profiles by name.
func (r *Profiles) FindAllByOwner(ctx context.Context, ownerID string) ([]models.Profile, error) {
	return findAllOwned[models.Profile](ctx, r.db, ownerID, "name, id")
}

// Create inserts profile under ownerID. The current balance starts at the
// opening balance.
func (r *Profiles) Create(ctx context.Context, ownerID string, profile *models.Profile) error {
	profile.UserID = ownerID
	profile.Balance = profile.OpeningBalance
	if err := r.db.WithContext(ctx).Create(profile).Error; err != nil {
		return database.Classify(err)
	}
	return nil
}

// Update applies fields to the owner's profile and returns the result.
func (r *Profiles) Update(ctx context.Context, ownerID, id string, fields ProfileFields) (*models.Profile, error) {
	profile, err := r.FindByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if fields.Name != nil {
		updates["name"] = *fields.Name
	}
	if fields.Description != nil {
		updates["description"] = *fields.Description
	}
	if len(updates) == 0 {
		return profile, nil
	}

	if err := r.db.WithContext(ctx).Model(profile).Where("user_id = ?", ownerID).Updates(updates).Error; err != nil {
		return nil, database.Classify(err)
	}
	return r.FindByID(ctx, ownerID, id)
}

// SetBalance overwrites the stored balance of the owner's profile. Only the
// ledger calls it, inside the transaction holding the profile's row lock.
func (r *Profiles) SetBalance(ctx context.Context, ownerID, id string, balance decimal.Decimal) error {
	result := r.db.WithContext(ctx).
		Model(&models.Profile{}).
		Where("id = ? AND user_id = ?", uuid.Canonical(id), ownerID).
		Update("balance", balance)
	if result.Error != nil {
		return database.Classify(result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrProfileNotFound
	}
	return nil
}

// Delete hard-deletes the owner's profile.
func (r *Profiles) Delete(ctx context.Context, ownerID, id string) error {
	return deleteOwned[models.Profile](ctx, r.db, ownerID, id, apperrors.ErrProfileNotFound)
}
