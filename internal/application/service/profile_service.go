package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/medibill/billing-api/internal/domain/billing"
	"github.com/medibill/billing-api/internal/domain/entity"
	"github.com/medibill/billing-api/internal/domain/repository"
)

// ProfileService handles store profile business logic
type ProfileService struct {
	profileRepo repository.StoreProfileRepository
}

// NewProfileService creates a new profile service
func NewProfileService(profileRepo repository.StoreProfileRepository) *ProfileService {
	return &ProfileService{
		profileRepo: profileRepo,
	}
}

// GetProfile retrieves the store profile, creating the default one if the
// seed has not run.
func (s *ProfileService) GetProfile(ctx context.Context) (*entity.StoreProfile, error) {
	profile, err := s.profileRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	if profile == nil {
		profile = &entity.StoreProfile{
			StoreName:   billing.DefaultStoreName,
			Address:     billing.DefaultStoreAddress,
			Phone:       billing.DefaultStorePhone,
			AltPhone:    billing.DefaultStoreAlt,
			ManagerName: billing.DefaultManagerName,
		}
		if err := s.profileRepo.Create(ctx, profile); err != nil {
			return nil, err
		}
	}

	return profile, nil
}

// UpdateProfileInput represents the input for updating the store profile
type UpdateProfileInput struct {
	StoreName   string
	Address     string
	Phone       string
	AltPhone    string
	TaxID       string
	ManagerName string
}

// UpdateProfile updates the store profile
func (s *ProfileService) UpdateProfile(ctx context.Context, input *UpdateProfileInput) (*entity.StoreProfile, error) {
	profile, err := s.profileRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	if profile == nil {
		profile = &entity.StoreProfile{}
	}

	profile.StoreName = input.StoreName
	profile.Address = input.Address
	profile.Phone = input.Phone
	profile.AltPhone = input.AltPhone
	profile.TaxID = input.TaxID
	profile.ManagerName = input.ManagerName

	if profile.ID == uuid.Nil {
		if err := s.profileRepo.Create(ctx, profile); err != nil {
			return nil, err
		}
	} else {
		if err := s.profileRepo.Update(ctx, profile); err != nil {
			return nil, err
		}
	}

	return profile, nil
}
