package services

import (
	"context"

	"pocketledger/internal/ledger"
	"pocketledger/internal/models"
	"pocketledger/internal/pagination"
	"pocketledger/internal/repository"

	"github.com/shopspring/decimal"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	Register(ctx context.Context, username, password string) (*models.User, error)
	Authenticate(ctx context.Context, username, password string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// ProfileServicer defines the contract for profile-related business logic.
type ProfileServicer interface {
	CreateProfile(ctx context.Context, ownerID, name, description string, initialBalance decimal.Decimal) (*models.Profile, error)
	GetProfiles(ctx context.Context, ownerID string) ([]models.Profile, error)
	GetProfileByID(ctx context.Context, ownerID, profileID string) (*models.Profile, error)
	UpdateProfile(ctx context.Context, ownerID, profileID string, fields repository.ProfileFields) (*models.Profile, error)
	DeleteProfile(ctx context.Context, ownerID, profileID string) error
}

// CategoryServicer defines the contract for category-related business logic.
type CategoryServicer interface {
	CreateCategory(ctx context.Context, ownerID, name string) (*models.Category, error)
	GetCategories(ctx context.Context, ownerID string) ([]models.Category, error)
	GetCategoryByID(ctx context.Context, ownerID, categoryID string) (*models.Category, error)
	UpdateCategory(ctx context.Context, ownerID, categoryID, name string) (*models.Category, error)
	DeleteCategory(ctx context.Context, ownerID, categoryID string) error
}

// TransactionServicer defines the contract for transaction-related business logic.
type TransactionServicer interface {
	CreateTransaction(ctx context.Context, ownerID string, entry ledger.Entry) (*models.Transaction, error)
	GetTransactions(ctx context.Context, ownerID string, filter repository.TransactionFilter, page pagination.PageRequest) (*pagination.PageResponse[models.TransactionDetail], error)
	GetTransactionByID(ctx context.Context, ownerID, transactionID string) (*models.TransactionDetail, error)
	UpdateTransaction(ctx context.Context, ownerID, transactionID string, entry ledger.Entry) (*models.Transaction, error)
	DeleteTransaction(ctx context.Context, ownerID, transactionID string) error
}

// ProfileSummary is a profile's balance in a Summary.
type ProfileSummary struct {
	ProfileID string          `json:"profile_id"`
	Name      string          `json:"name"`
	Balance   decimal.Decimal `json:"balance"`
}

// CategorySummary is the running total of a category's transactions.
type CategorySummary struct {
	CategoryID       string          `json:"category_id"`
	Name             string          `json:"name"`
	Total            decimal.Decimal `json:"total"`
	TransactionCount int             `json:"transaction_count"`
}

// Summary contains the per-profile balances and per-category totals of a user.
type Summary struct {
	Total      decimal.Decimal   `json:"total"`
	Profiles   []ProfileSummary  `json:"profiles"`
	Categories []CategorySummary `json:"categories"`
}

// SummaryServicer defines the contract for read-only reporting.
type SummaryServicer interface {
	GetSummary(ctx context.Context, ownerID string) (*Summary, error)
	CheckLedger(ctx context.Context, ownerID string) ([]ledger.Discrepancy, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(ctx context.Context, userID, action, resourceType, resourceID, ipAddress string, changes map[string]interface{})
}
