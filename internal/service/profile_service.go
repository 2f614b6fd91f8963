package service

import (
	"context"
	"fmt"

	"github.com/kencs/dietadvisor-backend/internal/domain"
	"github.com/kencs/dietadvisor-backend/internal/identity"
	"github.com/kencs/dietadvisor-backend/internal/model"
	"github.com/kencs/dietadvisor-backend/internal/repository"
)

// ProfileService orchestrates identity-scoped profile operations.
// Every operation is scoped to the verified identity's provider id;
// callers cannot address another identity's record.
type ProfileService interface {
	CreateProfile(ctx context.Context, ident *identity.Identity, req *model.ProfileRequest) (*domain.Profile, error)
	GetProfile(ctx context.Context, ident *identity.Identity) (*domain.Profile, error)
	UpdateProfile(ctx context.Context, ident *identity.Identity, req *model.ProfileRequest) (*domain.Profile, error)
	DeleteProfile(ctx context.Context, ident *identity.Identity) (*domain.Profile, error)
}

// profileService implements ProfileService
type profileService struct {
	repo repository.ProfileRepository
}

// NewProfileService creates a new profile service
func NewProfileService(repo repository.ProfileRepository) ProfileService {
	return &profileService{repo: repo}
}

// CreateProfile binds the verified identity onto the submitted payload
// and inserts it. Client-supplied identity fields never reach the store;
// the storage-layer unique constraint decides create/conflict.
func (s *profileService) CreateProfile(ctx context.Context, ident *identity.Identity, req *model.ProfileRequest) (*domain.Profile, error) {
	profile := req.ToDomain(ident.ID, ident.Name)
	if err := profile.Validate(); err != nil {
		return nil, fmt.Errorf("invalid profile: %w", err)
	}

	if err := s.repo.Create(ctx, profile); err != nil {
		return nil, err
	}

	return profile, nil
}

// GetProfile returns the profile owned by the verified identity
func (s *profileService) GetProfile(ctx context.Context, ident *identity.Identity) (*domain.Profile, error) {
	return s.repo.Get(ctx, ident.ID)
}

// UpdateProfile replaces the stored profile with the submitted payload,
// identity fields rebound from the verified identity. The previous
// document is returned; no profile is created when none exists.
func (s *profileService) UpdateProfile(ctx context.Context, ident *identity.Identity, req *model.ProfileRequest) (*domain.Profile, error) {
	profile := req.ToDomain(ident.ID, ident.Name)
	if err := profile.Validate(); err != nil {
		return nil, fmt.Errorf("invalid profile: %w", err)
	}

	return s.repo.Replace(ctx, ident.ID, profile)
}

// DeleteProfile physically removes the identity's profile
func (s *profileService) DeleteProfile(ctx context.Context, ident *identity.Identity) (*domain.Profile, error) {
	return s.repo.Delete(ctx, ident.ID)
}
