package handlers

import (
	"context"

	"github.com/shopspring/decimal"

	"pocketledger/internal/ledger"
	"pocketledger/internal/models"
	"pocketledger/internal/pagination"
	"pocketledger/internal/repository"
	"pocketledger/internal/services"
)

// --- mock user service ---

type mockUserService struct {
	registerFn     func(ctx context.Context, username, password string) (*models.User, error)
	authenticateFn func(ctx context.Context, username, password string) (*models.User, error)
	getUserByIDFn  func(ctx context.Context, id string) (*models.User, error)
}

func (m *mockUserService) Register(ctx context.Context, username, password string) (*models.User, error) {
	if m.registerFn != nil {
		return m.registerFn(ctx, username, password)
	}
	return &models.User{Base: models.Base{ID: testUserID}, Username: username}, nil
}

func (m *mockUserService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	if m.authenticateFn != nil {
		return m.authenticateFn(ctx, username, password)
	}
	return &models.User{Base: models.Base{ID: testUserID}, Username: username}, nil
}

func (m *mockUserService) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	if m.getUserByIDFn != nil {
		return m.getUserByIDFn(ctx, id)
	}
	return &models.User{Base: models.Base{ID: id}, Username: "alice"}, nil
}

var _ services.UserServicer = (*mockUserService)(nil)

// --- mock profile service ---

type mockProfileService struct {
	createProfileFn  func(ctx context.Context, ownerID, name, description string, initialBalance decimal.Decimal) (*models.Profile, error)
	getProfilesFn    func(ctx context.Context, ownerID string) ([]models.Profile, error)
	getProfileByIDFn func(ctx context.Context, ownerID, profileID string) (*models.Profile, error)
	updateProfileFn  func(ctx context.Context, ownerID, profileID string, fields repository.ProfileFields) (*models.Profile, error)
	deleteProfileFn  func(ctx context.Context, ownerID, profileID string) error
}

func (m *mockProfileService) CreateProfile(ctx context.Context, ownerID, name, description string, initialBalance decimal.Decimal) (*models.Profile, error) {
	if m.createProfileFn != nil {
		return m.createProfileFn(ctx, ownerID, name, description, initialBalance)
	}
	return &models.Profile{}, nil
}

func (m *mockProfileService) GetProfiles(ctx context.Context, ownerID string) ([]models.Profile, error) {
	if m.getProfilesFn != nil {
		return m.getProfilesFn(ctx, ownerID)
	}
	return []models.Profile{}, nil
}

func (m *mockProfileService) GetProfileByID(ctx context.Context, ownerID, profileID string) (*models.Profile, error) {
	if m.getProfileByIDFn != nil {
		return m.getProfileByIDFn(ctx, ownerID, profileID)
	}
	return &models.Profile{}, nil
}

func (m *mockProfileService) UpdateProfile(ctx context.Context, ownerID, profileID string, fields repository.ProfileFields) (*models.Profile, error) {
	if m.updateProfileFn != nil {
		return m.updateProfileFn(ctx, ownerID, profileID, fields)
	}
	return &models.Profile{}, nil
}

func (m *mockProfileService) DeleteProfile(ctx context.Context, ownerID, profileID string) error {
	if m.deleteProfileFn != nil {
		return m.deleteProfileFn(ctx, ownerID, profileID)
	}
	return nil
}

var _ services.ProfileServicer = (*mockProfileService)(nil)

// --- mock category service ---

type mockCategoryService struct {
	createCategoryFn  func(ctx context.Context, ownerID, name string) (*models.Category, error)
	getCategoriesFn   func(ctx context.Context, ownerID string) ([]models.Category, error)
	getCategoryByIDFn func(ctx context.Context, ownerID, categoryID string) (*models.Category, error)
	updateCategoryFn  func(ctx context.Context, ownerID, categoryID, name string) (*models.Category, error)
	deleteCategoryFn  func(ctx context.Context, ownerID, categoryID string) error
}

func (m *mockCategoryService) CreateCategory(ctx context.Context, ownerID, name string) (*models.Category, error) {
	if m.createCategoryFn != nil {
		return m.createCategoryFn(ctx, ownerID, name)
	}
	return &models.Category{}, nil
}

func (m *mockCategoryService) GetCategories(ctx context.Context, ownerID string) ([]models.Category, error) {
	if m.getCategoriesFn != nil {
		return m.getCategoriesFn(ctx, ownerID)
	}
	return []models.Category{}, nil
}

func (m *mockCategoryService) GetCategoryByID(ctx context.Context, ownerID, categoryID string) (*models.Category, error) {
	if m.getCategoryByIDFn != nil {
		return m.getCategoryByIDFn(ctx, ownerID, categoryID)
	}
	return &models.Category{}, nil
}

func (m *mockCategoryService) UpdateCategory(ctx context.Context, ownerID, categoryID, name string) (*models.Category, error) {
	if m.updateCategoryFn != nil {
		return m.updateCategoryFn(ctx, ownerID, categoryID, name)
	}
	return &models.Category{}, nil
}

func (m *mockCategoryService) DeleteCategory(ctx context.Context, ownerID, categoryID string) error {
	if m.deleteCategoryFn != nil {
		return m.deleteCategoryFn(ctx, ownerID, categoryID)
	}
	return nil
}

var _ services.CategoryServicer = (*mockCategoryService)(nil)

// --- mock transaction service ---

type mockTransactionService struct {
	createTransactionFn  func(ctx context.Context, ownerID string, entry ledger.Entry) (*models.Transaction, error)
	getTransactionsFn    func(ctx context.Context, ownerID string, filter repository.TransactionFilter, page pagination.PageRequest) (*pagination.PageResponse[models.TransactionDetail], error)
	getTransactionByIDFn func(ctx context.Context, ownerID, transactionID string) (*models.TransactionDetail, error)
	updateTransactionFn  func(ctx context.Context, ownerID, transactionID string, entry ledger.Entry) (*models.Transaction, error)
	deleteTransactionFn  func(ctx context.Context, ownerID, transactionID string) error
}

func (m *mockTransactionService) CreateTransaction(ctx context.Context, ownerID string, entry ledger.Entry) (*models.Transaction, error) {
	if m.createTransactionFn != nil {
		return m.createTransactionFn(ctx, ownerID, entry)
	}
	return &models.Transaction{}, nil
}

func (m *mockTransactionService) GetTransactions(ctx context.Context, ownerID string, filter repository.TransactionFilter, page pagination.PageRequest) (*pagination.PageResponse[models.TransactionDetail], error) {
	if m.getTransactionsFn != nil {
		return m.getTransactionsFn(ctx, ownerID, filter, page)
	}
	resp := pagination.NewPageResponse([]models.TransactionDetail{}, 1, 20, 0)
	return &resp, nil
}

func (m *mockTransactionService) GetTransactionByID(ctx context.Context, ownerID, transactionID string) (*models.TransactionDetail, error) {
	if m.getTransactionByIDFn != nil {
		return m.getTransactionByIDFn(ctx, ownerID, transactionID)
	}
	return &models.TransactionDetail{}, nil
}

func (m *mockTransactionService) UpdateTransaction(ctx context.Context, ownerID, transactionID string, entry ledger.Entry) (*models.Transaction, error) {
	if m.updateTransactionFn != nil {
		return m.updateTransactionFn(ctx, ownerID, transactionID, entry)
	}
	return &models.Transaction{}, nil
}

func (m *mockTransactionService) DeleteTransaction(ctx context.Context, ownerID, transactionID string) error {
	if m.deleteTransactionFn != nil {
		return m.deleteTransactionFn(ctx, ownerID, transactionID)
	}
	return nil
}

var _ services.TransactionServicer = (*mockTransactionService)(nil)

// --- mock summary service ---

type mockSummaryService struct {
	getSummaryFn  func(ctx context.Context, ownerID string) (*services.Summary, error)
	checkLedgerFn func(ctx context.Context, ownerID string) ([]ledger.Discrepancy, error)
}

func (m *mockSummaryService) GetSummary(ctx context.Context, ownerID string) (*services.Summary, error) {
	if m.getSummaryFn != nil {
		return m.getSummaryFn(ctx, ownerID)
	}
	return &services.Summary{}, nil
}

func (m *mockSummaryService) CheckLedger(ctx context.Context, ownerID string) ([]ledger.Discrepancy, error) {
	if m.checkLedgerFn != nil {
		return m.checkLedgerFn(ctx, ownerID)
	}
	return []ledger.Discrepancy{}, nil
}

var _ services.SummaryServicer = (*mockSummaryService)(nil)
