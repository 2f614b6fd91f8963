package repository

import (
	"context"
	"errors"

	"github.com/kencs/dietadvisor-backend/internal/domain"
)

// Repository-level errors
var (
	// ErrProfileExists is returned when a create collides with an
	// existing profile for the same provider id
	ErrProfileExists = errors.New("profile already exists for this identity")

	// ErrProfileNotFound is returned when no profile matches the
	// provider id
	ErrProfileNotFound = errors.New("profile not found")
)

// ProfileRepository defines the interface for profile data operations.
// The repository exclusively owns the store handle; no other component
// reads or writes the profile collection.
type ProfileRepository interface {
	// Exists reports whether a profile for the provider id is stored
	Exists(ctx context.Context, providerID string) (bool, error)

	// Create inserts a new profile. The storage layer's unique
	// constraint on the provider id is authoritative: a duplicate
	// insert fails with ErrProfileExists, never a silent overwrite.
	Create(ctx context.Context, profile *domain.Profile) error

	// Get returns the stored profile, or ErrProfileNotFound
	Get(ctx context.Context, providerID string) (*domain.Profile, error)

	// Replace swaps the entire stored document and returns the
	// previous one. ErrProfileNotFound when no match exists; a replace
	// never creates.
	Replace(ctx context.Context, providerID string, profile *domain.Profile) (*domain.Profile, error)

	// Delete removes the stored document and returns it.
	// ErrProfileNotFound when no match exists.
	Delete(ctx context.Context, providerID string) (*domain.Profile, error)
}
