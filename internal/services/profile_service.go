package services

import (
	"context"

	"pocketledger/internal/events"
	"pocketledger/internal/ledger"
	"pocketledger/internal/models"
	"pocketledger/internal/repository"

	"github.com/shopspring/decimal"
)

// profileService handles profile-related business logic. Plain edits go to
// the repository; deletion cascades through the ledger.
type profileService struct {
	profiles  *repository.Profiles
	ledger    *ledger.Ledger
	publisher events.Publisher
}

// NewProfileService creates a new ProfileServicer.
func NewProfileService(profiles *repository.Profiles, l *ledger.Ledger, publisher events.Publisher) ProfileServicer {
	return &profileService{profiles: profiles, ledger: l, publisher: publisher}
}

// CreateProfile creates a profile whose balance starts at initialBalance.
func (s *profileService) CreateProfile(ctx context.Context, ownerID, name, description string, initialBalance decimal.Decimal) (*models.Profile, error) {
	if err := requireOwner(ownerID); err != nil {
		return nil, err
	}
	name, err := cleanName("profile name", name)
	if err != nil {
		return nil, err
	}
	if err := checkDescription(description); err != nil {
		return nil, err
	}
	if err := checkAmount("initial balance", initialBalance); err != nil {
		return nil, err
	}

	profile := &models.Profile{
		Name:           name,
		Description:    description,
		OpeningBalance: initialBalance,
	}
	if err := s.profiles.Create(ctx, ownerID, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// GetProfiles lists the owner's profiles.
func (s *profileService) GetProfiles(ctx context.Context, ownerID string) ([]models.Profile, error) {
	if err := requireOwner(ownerID); err != nil {
		return nil, err
	}
	return s.profiles.FindAllByOwner(ctx, ownerID)
}

// GetProfileByID retrieves one of the owner's profiles.
func (s *profileService) GetProfileByID(ctx context.Context, ownerID, profileID string) (*models.Profile, error) {
	if err := requireOwner(ownerID); err != nil {
		return nil, err
	}
	return s.profiles.FindByID(ctx, ownerID, profileID)
}

// UpdateProfile changes the name and/or description. The balance cannot be
// set this way.
func (s *profileService) UpdateProfile(ctx context.Context, ownerID, profileID string, fields repository.ProfileFields) (*models.Profile, error) {
	if err := requireOwner(ownerID); err != nil {
		return nil, err
	}
	if fields.Name != nil {
		name, err := cleanName("profile name", *fields.Name)
		if err != nil {
			return nil, err
		}
		fields.Name = &name
	}
	if fields.Description != nil {
		if err := checkDescription(*fields.Description); err != nil {
			return nil, err
		}
	}
	return s.profiles.Update(ctx, ownerID, profileID, fields)
}

// DeleteProfile removes the profile and all of its transactions.
func (s *profileService) DeleteProfile(ctx context.Context, ownerID, profileID string) error {
	if err := requireOwner(ownerID); err != nil {
		return err
	}

	res, err := s.ledger.DeleteProfile(ctx, ownerID, profileID)
	if err != nil {
		return err
	}

	publish(ctx, s.publisher, eventFor(events.ProfileDeleted, ownerID, profileID, res))
	return nil
}
