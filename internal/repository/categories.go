package repository

import (
	"context"

	"pocketledger/internal/database"
	apperrors "pocketledger/internal/errors"
	"pocketledger/internal/models"

	"gorm.io/gorm"
)

// Categories is the owner-scoped category repository.
type Categories struct {
	db *gorm.DB
}

// NewCategories creates a Categories repository.
func NewCategories(db *gorm.DB) *Categories {
	return &Categories{db: db}
}

// WithTx returns a copy bound to tx.
func (r *Categories) WithTx(tx *gorm.DB) *Categories {
	return &Categories{db: tx}
}

// FindByID returns the owner's category or ErrCategoryNotFound.
func (r *Categories) FindByID(ctx context.Context, ownerID, id string) (*models.Category, error) {
	return findOwned[models.Category](ctx, r.db, ownerID, id, apperrors.ErrCategoryNotFound)
}

// FindByIDForShare is FindByID with a shared row lock, which keeps the
// category from being deleted until the enclosing transaction ends.
func (r *Categories) FindByIDForShare(ctx context.Context, ownerID, id string) (*models.Category, error) {
	return findOwned[models.Category](ctx, r.db, ownerID, id, apperrors.ErrCategoryNotFound, forShare)
}

// FindByIDForUpdate is FindByID with an exclusive row lock.
func (r *Categories) FindByIDForUpdate(ctx context.Context, ownerID, id string) (*models.Category, error) {
	return findOwned[models.Category](ctx, r.db, ownerID, id, apperrors.ErrCategoryNotFound, forUpdate)
}

// FindAllByOwner lists the owner's categories by name.
func (r *Categories) FindAllByOwner(ctx context.Context, ownerID string) ([]models.Category, error) {
	return findAllOwned[models.Category](ctx, r.db, ownerID, "name, id")
}

// Create inserts category under ownerID.
func (r *Categories) Create(ctx context.Context, ownerID string, category *models.Category) error {
	category.UserID = ownerID
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		return database.Classify(err)
	}
	return nil
}

// Rename changes the owner's category name and returns the result.
func (r *Categories) Rename(ctx context.Context, ownerID, id, name string) (*models.Category, error) {
	category, err := r.FindByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).Model(category).Where("user_id = ?", ownerID).Update("name", name).Error; err != nil {
		return nil, database.Classify(err)
	}
	category.Name = name
	return category, nil
}

// Delete hard-deletes the owner's category.
func (r *Categories) Delete(ctx context.Context, ownerID, id string) error {
	return deleteOwned[models.Category](ctx, r.db, ownerID, id, apperrors.ErrCategoryNotFound)
}
