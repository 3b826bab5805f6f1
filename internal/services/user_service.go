package services

import (
	"context"
	"errors"
	"unicode/utf8"

	apperrors "pocketledger/internal/errors"
	"pocketledger/internal/models"
	"pocketledger/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

const (
	minPasswordLength = 8
	maxPasswordLength = 64
)

// userService handles user-related business logic.
type userService struct {
	users *repository.Users
	cost  int
}

// NewUserService creates a new UserServicer. cost is the bcrypt cost;
// zero selects bcrypt.DefaultCost.
func NewUserService(users *repository.Users, cost int) UserServicer {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &userService{users: users, cost: cost}
}

// Register creates a user with a hashed password. Usernames are
// case-sensitive and unique.
func (s *userService) Register(ctx context.Context, username, password string) (*models.User, error) {
	if username == "" || utf8.RuneCountInString(username) > maxNameLength {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "username must be between 1 and 64 characters")
	}
	if n := utf8.RuneCountInString(password); n < minPasswordLength || n > maxPasswordLength {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "password must be between 8 and 64 characters")
	}

	if _, err := s.users.FindByUsername(ctx, username); err == nil {
		return nil, apperrors.ErrDuplicateUsername
	} else if !errors.Is(err, apperrors.ErrUserNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	user := &models.User{
		Username: username,
		Password: string(hashedPassword),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate returns the user matching the credentials. An unknown
// username and a wrong password are indistinguishable.
func (s *userService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}
	return user, nil
}

// GetUserByID retrieves a user by ID
func (s *userService) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	if err := requireOwner(id); err != nil {
		return nil, err
	}
	return s.users.FindByID(ctx, id)
}
