package domain

import (
	"fmt"
	"time"
)

// Gender values accepted in a profile
const (
	GenderFemale    = "Female"
	GenderMale      = "Male"
	GenderNonBinary = "Non-binary"
)

// Language values accepted in a profile
const (
	LanguageChinese = "Chinese"
	LanguageEnglish = "English"
)

// Dietary goal values accepted in a profile
const (
	GoalLoseWeight = "Lose weight"
	GoalStaySame   = "Stay the same"
	GoalGainWeight = "Gain weight"
)

// PersonalInfo holds the descriptive attributes of a user
type PersonalInfo struct {
	BirthDate string `json:"birthDate"` // "YYYY-MM-DD"
	Gender    string `json:"gender"`
	Language  string `json:"language"`
}

// BodyMeasurements holds the physical attributes used for calorie math
type BodyMeasurements struct {
	Weight           float64 `json:"weight"` // kg
	Height           float64 `json:"height"` // cm
	PhysicalActivity float64 `json:"physicalActivity"`
}

// DietaryInfo holds the user's goal settings
type DietaryInfo struct {
	DietaryGoal       string  `json:"dietaryGoal"`
	DietaryGoalAmount float64 `json:"dietaryGoalAmount"`
	TDEE              float64 `json:"tdee"`
}

// IntakeEntry is one recorded nutritional intake
type IntakeEntry struct {
	Calorie    float64   `json:"calorie"`
	Protein    float64   `json:"protein"`
	Fat        float64   `json:"fat"`
	Carb       float64   `json:"carb"`
	RecordedAt time.Time `json:"recordedAt,omitempty"`
}

// Profile is the durable per-user record, keyed by the identity
// provider's user id. ProviderID and DisplayName are always bound from
// a verified identity, never from client input.
type Profile struct {
	ProviderID       string           `json:"providerId"`
	DisplayName      string           `json:"displayName"`
	PersonalInfo     PersonalInfo     `json:"personalInfo"`
	BodyMeasurements BodyMeasurements `json:"bodyMeasurements"`
	DietaryInfo      DietaryInfo      `json:"dietaryInfo"`
	IntakeHistory    []IntakeEntry    `json:"intakeHistory,omitempty"`
	LastMeal         *IntakeEntry     `json:"lastMeal,omitempty"`
}

// Validate checks the enum-valued fields and the birth date format
func (p *Profile) Validate() error {
	switch p.PersonalInfo.Gender {
	case GenderFemale, GenderMale, GenderNonBinary:
	default:
		return fmt.Errorf("invalid gender %q", p.PersonalInfo.Gender)
	}

	switch p.PersonalInfo.Language {
	case LanguageChinese, LanguageEnglish:
	default:
		return fmt.Errorf("invalid language %q", p.PersonalInfo.Language)
	}

	switch p.DietaryInfo.DietaryGoal {
	case GoalLoseWeight, GoalStaySame, GoalGainWeight:
	default:
		return fmt.Errorf("invalid dietary goal %q", p.DietaryInfo.DietaryGoal)
	}

	if p.PersonalInfo.BirthDate != "" {
		if _, err := time.Parse("2006-01-02", p.PersonalInfo.BirthDate); err != nil {
			return fmt.Errorf("birthDate must be YYYY-MM-DD: %w", err)
		}
	}

	return nil
}

// Age returns the user's age in whole years at the given reference time,
// or 0 if no birth date is set.
func (p *Profile) Age(now time.Time) int {
	if p.PersonalInfo.BirthDate == "" {
		return 0
	}
	birth, err := time.Parse("2006-01-02", p.PersonalInfo.BirthDate)
	if err != nil {
		return 0
	}
	years := now.Year() - birth.Year()
	if now.YearDay() < birth.YearDay() {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}
