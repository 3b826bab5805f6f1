package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"pocketledger/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// TestPassword is the plain-text password of every fixture user.
const TestPassword = "password123"

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique username.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	return CreateTestUserWithUsername(t, db, fmt.Sprintf("user%d", nextID()))
}

// CreateTestUserWithUsername creates a user with the given username.
func CreateTestUserWithUsername(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Username: username,
		Password: string(hash),
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestProfile creates a profile with a zero opening balance.
func CreateTestProfile(t *testing.T, db *gorm.DB, userID string) *models.Profile {
	t.Helper()
	return CreateTestProfileWithBalance(t, db, userID, "0")
}

// CreateTestProfileWithBalance creates a profile whose opening and current
// balance are both the given decimal string.
func CreateTestProfileWithBalance(t *testing.T, db *gorm.DB, userID, balance string) *models.Profile {
	t.Helper()

	amount := decimal.RequireFromString(balance)
	profile := &models.Profile{
		UserID:         userID,
		Name:           fmt.Sprintf("Test Profile %d", nextID()),
		OpeningBalance: amount,
		Balance:        amount,
	}
	if err := db.Create(profile).Error; err != nil {
		t.Fatalf("failed to create test profile: %v", err)
	}
	return profile
}

// CreateTestCategory creates a category.
func CreateTestCategory(t *testing.T, db *gorm.DB, userID string) *models.Category {
	t.Helper()

	category := &models.Category{
		UserID: userID,
		Name:   fmt.Sprintf("Test Category %d", nextID()),
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}

// CreateTestTransaction inserts a transaction row directly. It does not touch
// the profile balance; use the ledger when the balance must follow.
func CreateTestTransaction(t *testing.T, db *gorm.DB, userID, profileID, categoryID, balance string) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		UserID:      userID,
		ProfileID:   profileID,
		CategoryID:  categoryID,
		Description: fmt.Sprintf("Test Transaction %d", nextID()),
		Balance:     decimal.RequireFromString(balance),
		Date:        time.Now().UTC(),
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}

// ReloadProfile reads the profile back from the database.
func ReloadProfile(t *testing.T, db *gorm.DB, id string) *models.Profile {
	t.Helper()

	var profile models.Profile
	if err := db.First(&profile, "id = ?", id).Error; err != nil {
		t.Fatalf("failed to reload profile %s: %v", id, err)
	}
	return &profile
}

// CountRows returns the number of rows of model matching the optional condition.
func CountRows(t *testing.T, db *gorm.DB, model interface{}, query string, args ...interface{}) int64 {
	t.Helper()

	var count int64
	q := db.Model(model)
	if query != "" {
		q = q.Where(query, args...)
	}
	if err := q.Count(&count).Error; err != nil {
		t.Fatalf("failed to count rows: %v", err)
	}
	return count
}
