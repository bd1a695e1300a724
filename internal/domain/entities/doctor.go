package entities

import (
	"math"
	"strings"

	apperrors "github.com/zatekoja/clinicrecords/pkg/errors"
)

// Rating bounds accepted from appointment feedback
const (
	MinRating = 1
	MaxRating = 5
)

// Doctor represents a doctor and their running rating
type Doctor struct {
	ID            int     `json:"id"`
	Name          string  `json:"name"`
	Specialty     string  `json:"specialty"`
	AvailableDays string  `json:"availableDays"`
	ContactNumber string  `json:"contactNumber"`
	VisitFee      float64 `json:"visitFee"`
	AvailableTime string  `json:"availableTime"`
	TotalRating   int     `json:"totalRating"`
	RatingCount   int     `json:"ratingCount"`
}

// Normalize trims free-text fields in place
func (d *Doctor) Normalize() {
	d.Name = strings.TrimSpace(d.Name)
	d.Specialty = strings.TrimSpace(d.Specialty)
	d.AvailableDays = strings.TrimSpace(d.AvailableDays)
	d.ContactNumber = strings.TrimSpace(d.ContactNumber)
	d.AvailableTime = strings.TrimSpace(d.AvailableTime)
}

// Validate checks the fields required to store a doctor. The id is not checked.
func (d *Doctor) Validate() error {
	if d.Name == "" {
		return apperrors.NewValidationError("name", "name is required")
	}
	if d.Specialty == "" {
		return apperrors.NewValidationError("specialty", "specialty is required")
	}
	if d.VisitFee < 0 || math.IsNaN(d.VisitFee) || math.IsInf(d.VisitFee, 0) {
		return apperrors.NewValidationError("visitFee", "visitFee must be a non-negative amount")
	}
	if d.TotalRating < 0 || d.RatingCount < 0 {
		return apperrors.NewValidationError("rating", "rating totals must not be negative")
	}
	return nil
}

// AverageRating returns totalRating/ratingCount, or false when never rated.
func (d *Doctor) AverageRating() (float64, bool) {
	if d.RatingCount <= 0 {
		return 0, false
	}
	return float64(d.TotalRating) / float64(d.RatingCount), true
}

// ValidateRating checks a single submitted rating value
func ValidateRating(value int) error {
	if value < MinRating || value > MaxRating {
		return apperrors.NewValidationError("rating", "rating must be between 1 and 5")
	}
	return nil
}
