package model

import (
	"github.com/kencs/dietadvisor-backend/internal/domain"
)

// ProfileRequest is the client-submitted profile payload. It carries no
// identity fields; providerId and displayName are bound server-side from
// the verified identity.
type ProfileRequest struct {
	PersonalInfo     domain.PersonalInfo     `json:"personalInfo"`
	BodyMeasurements domain.BodyMeasurements `json:"bodyMeasurements"`
	DietaryInfo      domain.DietaryInfo      `json:"dietaryInfo"`
	IntakeHistory    []domain.IntakeEntry    `json:"intakeHistory,omitempty"`
	LastMeal         *domain.IntakeEntry     `json:"lastMeal,omitempty"`
}

// ToDomain converts the request payload to a domain profile owned by the
// given verified identity.
func (r *ProfileRequest) ToDomain(providerID, displayName string) *domain.Profile {
	return &domain.Profile{
		ProviderID:       providerID,
		DisplayName:      displayName,
		PersonalInfo:     r.PersonalInfo,
		BodyMeasurements: r.BodyMeasurements,
		DietaryInfo:      r.DietaryInfo,
		IntakeHistory:    r.IntakeHistory,
		LastMeal:         r.LastMeal,
	}
}

// ProfileResponse is the profile representation returned to clients
type ProfileResponse struct {
	ProviderID       string                  `json:"providerId"`
	DisplayName      string                  `json:"displayName"`
	PersonalInfo     domain.PersonalInfo     `json:"personalInfo"`
	BodyMeasurements domain.BodyMeasurements `json:"bodyMeasurements"`
	DietaryInfo      domain.DietaryInfo      `json:"dietaryInfo"`
	IntakeHistory    []domain.IntakeEntry    `json:"intakeHistory,omitempty"`
	LastMeal         *domain.IntakeEntry     `json:"lastMeal,omitempty"`
}

// FromDomain populates the response from a domain profile
func (r *ProfileResponse) FromDomain(p *domain.Profile) {
	r.ProviderID = p.ProviderID
	r.DisplayName = p.DisplayName
	r.PersonalInfo = p.PersonalInfo
	r.BodyMeasurements = p.BodyMeasurements
	r.DietaryInfo = p.DietaryInfo
	r.IntakeHistory = p.IntakeHistory
	r.LastMeal = p.LastMeal
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Status  string        `json:"status"`
	Message string        `json:"message"`
	Details []ErrorDetail `json:"details,omitempty"`
}

// ErrorDetail represents detailed error information
type ErrorDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// SuccessResponse represents a generic success response
type SuccessResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
