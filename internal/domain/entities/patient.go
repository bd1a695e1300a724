package entities

import (
	"strings"

	apperrors "github.com/zatekoja/clinicrecords/pkg/errors"
)

// Gender is the constrained set of patient genders
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

// Valid reports whether g is one of the known genders
func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

// Patient represents a registered patient
type Patient struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	AgeYears  int    `json:"ageYears"`
	AgeMonths int    `json:"ageMonths"`
	Gender    Gender `json:"gender"`
	Disease   string `json:"disease"`
}

// Normalize trims free-text fields in place
func (p *Patient) Normalize() {
	p.Name = strings.TrimSpace(p.Name)
	p.Disease = strings.TrimSpace(p.Disease)
	p.Gender = Gender(strings.TrimSpace(string(p.Gender)))
}

// Validate checks the fields required to store a patient. The id is not checked.
func (p *Patient) Validate() error {
	if p.Name == "" {
		return apperrors.NewValidationError("name", "name is required")
	}
	if p.AgeYears < 0 {
		return apperrors.NewValidationError("ageYears", "ageYears must not be negative")
	}
	if p.AgeMonths < 0 || p.AgeMonths >= 12 {
		return apperrors.NewValidationError("ageMonths", "ageMonths must be between 0 and 11")
	}
	if !p.Gender.Valid() {
		return apperrors.NewValidationError("gender", "gender must be one of Male, Female, Other")
	}
	return nil
}
