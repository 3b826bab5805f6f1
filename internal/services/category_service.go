package services

import (
	"context"

	"pocketledger/internal/events"
	"pocketledger/internal/ledger"
	"pocketledger/internal/models"
	"pocketledger/internal/repository"
)

// categoryService handles category-related business logic.
type categoryService struct {
	categories *repository.Categories
	ledger     *ledger.Ledger
	publisher  events.Publisher
}

// NewCategoryService creates a new CategoryServicer.
func NewCategoryService(categories *repository.Categories, l *ledger.Ledger, publisher events.Publisher) CategoryServicer {
	return &categoryService{categories: categories, ledger: l, publisher: publisher}
}

// CreateCategory creates a new category for a user
func (s *categoryService) CreateCategory(ctx context.Context, ownerID, name string) (*models.Category, error) {
	if err := requireOwner(ownerID); err != nil {
		return nil, err
	}
	name, err := cleanName("category name", name)
	if err != nil {
		return nil, err
	}

	category := &models.Category{Name: name}
	if err := s.categories.Create(ctx, ownerID, category); err != nil {
		return nil, err
	}
	return category, nil
}

// GetCategories lists the owner's categories.
func (s *categoryService) GetCategories(ctx context.Context, ownerID string) ([]models.Category, error) {
	if err := requireOwner(ownerID); err != nil {
		return nil, err
	}
	return s.categories.FindAllByOwner(ctx, ownerID)
}

// GetCategoryByID retrieves a category by ID for a specific user
func (s *categoryService) GetCategoryByID(ctx context.Context, ownerID, categoryID string) (*models.Category, error) {
	if err := requireOwner(ownerID); err != nil {
		return nil, err
	}
	return s.categories.FindByID(ctx, ownerID, categoryID)
}

// UpdateCategory renames a category.
func (s *categoryService) UpdateCategory(ctx context.Context, ownerID, categoryID, name string) (*models.Category, error) {
	if err := requireOwner(ownerID); err != nil {
		return nil, err
	}
	name, err := cleanName("category name", name)
	if err != nil {
		return nil, err
	}
	return s.categories.Rename(ctx, ownerID, categoryID, name)
}

// DeleteCategory removes the category and its transactions, reversing their
// amounts on the profiles they were recorded against.
func (s *categoryService) DeleteCategory(ctx context.Context, ownerID, categoryID string) error {
	if err := requireOwner(ownerID); err != nil {
		return err
	}

	res, err := s.ledger.DeleteCategory(ctx, ownerID, categoryID)
	if err != nil {
		return err
	}

	publish(ctx, s.publisher, eventFor(events.CategoryDeleted, ownerID, categoryID, res))
	return nil
}
