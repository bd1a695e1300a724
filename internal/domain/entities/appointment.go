package entities

import (
	"strings"
	"unicode/utf8"

	apperrors "github.com/zatekoja/clinicrecords/pkg/errors"
)

// MaxFeedbackLength is the longest feedback text accepted, in characters
const MaxFeedbackLength = 1000

// AppointmentKey identifies an appointment. There is at most one appointment
// per patient/doctor pair.
type AppointmentKey struct {
	PatientID int `json:"patientId"`
	DoctorID  int `json:"doctorId"`
}

// Appointment represents a booked visit of a patient with a doctor
type Appointment struct {
	PatientID int       `json:"patientId"`
	DoctorID  int       `json:"doctorId"`
	Date      LocalTime `json:"date"`
	Feedback  string    `json:"feedback"`
	// Rating is 0 while unrated.
	Rating int `json:"rating"`
}

// Key returns the composite key of the appointment
func (a *Appointment) Key() AppointmentKey {
	return AppointmentKey{PatientID: a.PatientID, DoctorID: a.DoctorID}
}

// Rated reports whether feedback with a rating was submitted
func (a *Appointment) Rated() bool {
	return a.Rating != 0
}

// Normalize trims free-text fields in place
func (a *Appointment) Normalize() {
	a.Feedback = strings.TrimSpace(a.Feedback)
}

// Validate checks the fields required to book an appointment. The referenced
// patient and doctor are not required to exist.
func (a *Appointment) Validate() error {
	if a.PatientID <= 0 {
		return apperrors.NewValidationError("patientId", "patientId is required")
	}
	if a.DoctorID <= 0 {
		return apperrors.NewValidationError("doctorId", "doctorId is required")
	}
	if a.Date.IsZero() {
		return apperrors.NewValidationError("date", "date is required")
	}
	if utf8.RuneCountInString(a.Feedback) > MaxFeedbackLength {
		return apperrors.NewValidationError("feedback", "feedback is too long")
	}
	if a.Rating != 0 {
		if err := ValidateRating(a.Rating); err != nil {
			return err
		}
	}
	return nil
}
