package repositories

import (
	"context"

	"github.com/zatekoja/clinicrecords/internal/domain/entities"
)

// AppointmentRepository defines the interface for appointment data operations.
// Appointments are keyed by their patient/doctor pair.
type AppointmentRepository interface {
	// Save stores the appointment. An appointment already stored for the
	// same pair is replaced in place; replaced reports whether that happened.
	Save(ctx context.Context, appointment *entities.Appointment) (replaced bool, err error)

	// Get retrieves the appointment for a pair
	Get(ctx context.Context, key entities.AppointmentKey) (*entities.Appointment, error)

	// List returns all appointments in insertion order
	List(ctx context.Context) ([]entities.Appointment, error)

	// Search returns appointments whose patient or doctor id, in decimal,
	// contains term
	Search(ctx context.Context, term string) ([]entities.Appointment, error)

	// Rate stores feedback and a rating on the appointment for key and
	// returns the rated record. It fails with CONFLICT when the appointment
	// is already rated.
	Rate(ctx context.Context, key entities.AppointmentKey, feedback string, rating int) (*entities.Appointment, error)

	// Unrate clears the feedback and rating of an appointment stored by Rate.
	// Nothing changes when the stored record no longer equals rated, for
	// example after a rebook; the result reports whether it was cleared.
	Unrate(ctx context.Context, rated *entities.Appointment) (bool, error)

	// Cancel removes the appointment for a pair; it reports whether one was removed
	Cancel(ctx context.Context, key entities.AppointmentKey) (bool, error)
}
