package repository

import (
	"context"
	"errors"
	"time"

	"pocketledger/internal/database"
	apperrors "pocketledger/internal/errors"
	"pocketledger/internal/models"
	"pocketledger/internal/pagination"
	"pocketledger/internal/uuid"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TransactionFields is the full set of editable transaction fields. An edit
// replaces all of them.
type TransactionFields struct {
	ProfileID   string
	CategoryID  string
	Description string
	Balance     decimal.Decimal
	Date        time.Time
}

// TransactionFilter narrows a transaction listing. Empty fields match all.
type TransactionFilter struct {
	ProfileID  string
	CategoryID string
}

// Transactions is the owner-scoped transaction repository.
type Transactions struct {
	db *gorm.DB
}

// NewTransactions creates a Transactions repository.
func NewTransactions(db *gorm.DB) *Transactions {
	return &Transactions{db: db}
}

// WithTx returns a copy bound to tx.
func (r *Transactions) WithTx(tx *gorm.DB) *Transactions {
	return &Transactions{db: tx}
}

// FindByID returns the owner's transaction with bare references.
func (r *Transactions) FindByID(ctx context.Context, ownerID, id string) (*models.Transaction, error) {
	return findOwned[models.Transaction](ctx, r.db, ownerID, id, apperrors.ErrTransactionNotFound)
}

// FindByIDWithReferences returns the owner's transaction with its profile
// and category loaded.
func (r *Transactions) FindByIDWithReferences(ctx context.Context, ownerID, id string) (*models.TransactionDetail, error) {
	if !uuid.IsValid(id) {
		return nil, apperrors.ErrTransactionNotFound
	}

	var detail models.TransactionDetail
	err := r.withReferences(ctx).
		Where("id = ? AND user_id = ?", uuid.Canonical(id), ownerID).
		First(&detail).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, database.Classify(err)
	}
	return &detail, nil
}

// FindAllByProfile lists the owner's transactions against profileID.
func (r *Transactions) FindAllByProfile(ctx context.Context, ownerID, profileID string) ([]models.Transaction, error) {
	return findAllOwned[models.Transaction](ctx, r.db, ownerID, "date, id", "profile_id = ?", uuid.Canonical(profileID))
}

// FindAllByCategory lists the owner's transactions classified under categoryID.
func (r *Transactions) FindAllByCategory(ctx context.Context, ownerID, categoryID string) ([]models.Transaction, error) {
	return findAllOwned[models.Transaction](ctx, r.db, ownerID, "date, id", "category_id = ?", uuid.Canonical(categoryID))
}

// FindAllByOwner lists every transaction of the owner.
func (r *Transactions) FindAllByOwner(ctx context.Context, ownerID string) ([]models.Transaction, error) {
	return findAllOwned[models.Transaction](ctx, r.db, ownerID, "date, id")
}

// FindPage returns one page of the owner's transactions, newest first, with
// references loaded.
func (r *Transactions) FindPage(ctx context.Context, ownerID string, filter TransactionFilter, page pagination.PageRequest) (*pagination.PageResponse[models.TransactionDetail], error) {
	page.Defaults()

	q := r.db.WithContext(ctx).Model(&models.TransactionDetail{}).Where("user_id = ?", ownerID)
	if filter.ProfileID != "" {
		q = q.Where("profile_id = ?", uuid.Canonical(filter.ProfileID))
	}
	if filter.CategoryID != "" {
		q = q.Where("category_id = ?", uuid.Canonical(filter.CategoryID))
	}
	base := q.Session(&gorm.Session{})

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, database.Classify(err)
	}

	var details []models.TransactionDetail
	err := base.
		Preload("Profile").
		Preload("Category").
		Order("date DESC, id DESC").
		Scopes(pagination.Paginate(page)).
		Find(&details).Error
	if err != nil {
		return nil, database.Classify(err)
	}

	result := pagination.NewPageResponse(details, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// Create inserts tx under ownerID.
func (r *Transactions) Create(ctx context.Context, ownerID string, tx *models.Transaction) error {
	tx.UserID = ownerID
	tx.ProfileID = uuid.Canonical(tx.ProfileID)
	tx.CategoryID = uuid.Canonical(tx.CategoryID)
	if err := r.db.WithContext(ctx).Create(tx).Error; err != nil {
		return database.Classify(err)
	}
	return nil
}

// Update replaces the editable fields of tx, which must have been loaded
// for ownerID, and writes them back.
func (r *Transactions) Update(ctx context.Context, ownerID string, tx *models.Transaction, fields TransactionFields) error {
	tx.ProfileID = uuid.Canonical(fields.ProfileID)
	tx.CategoryID = uuid.Canonical(fields.CategoryID)
	tx.Description = fields.Description
	tx.Balance = fields.Balance
	tx.Date = fields.Date
	tx.TimeZone = models.ZoneName(fields.Date)

	result := r.db.WithContext(ctx).
		Model(tx).
		Where("user_id = ?", ownerID).
		Select("profile_id", "category_id", "description", "balance", "date", "time_zone", "updated_at").
		Updates(tx)
	if result.Error != nil {
		return database.Classify(result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrTransactionNotFound
	}
	return nil
}

// Delete hard-deletes the owner's transaction.
func (r *Transactions) Delete(ctx context.Context, ownerID, id string) error {
	return deleteOwned[models.Transaction](ctx, r.db, ownerID, id, apperrors.ErrTransactionNotFound)
}

// DeleteAllByProfile deletes every transaction of the owner against profileID.
func (r *Transactions) DeleteAllByProfile(ctx context.Context, ownerID, profileID string) (int64, error) {
	return r.deleteWhere(ctx, ownerID, "profile_id = ?", uuid.Canonical(profileID))
}

// DeleteAllByCategory deletes every transaction of the owner under categoryID.
func (r *Transactions) DeleteAllByCategory(ctx context.Context, ownerID, categoryID string) (int64, error) {
	return r.deleteWhere(ctx, ownerID, "category_id = ?", uuid.Canonical(categoryID))
}

func (r *Transactions) deleteWhere(ctx context.Context, ownerID, query string, arg string) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Where(query, arg).
		Delete(&models.Transaction{})
	if result.Error != nil {
		return 0, database.Classify(result.Error)
	}
	return result.RowsAffected, nil
}

func (r *Transactions) withReferences(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Profile").Preload("Category")
}
