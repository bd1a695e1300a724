package repositories

import (
	"context"

	"github.com/zatekoja/clinicrecords/internal/domain/entities"
)

// DoctorRepository defines the interface for doctor data operations
type DoctorRepository interface {
	// Add validates the doctor, assigns the next id and stores it
	Add(ctx context.Context, doctor *entities.Doctor) error

	// Update replaces the profile fields of the stored doctor with the same
	// id. Rating totals are kept.
	Update(ctx context.Context, doctor *entities.Doctor) error

	// GetByID retrieves a doctor by id
	GetByID(ctx context.Context, id int) (*entities.Doctor, error)

	// List returns all doctors in insertion order
	List(ctx context.Context) ([]entities.Doctor, error)

	// Search returns doctors whose name or specialty contains term, ignoring case
	Search(ctx context.Context, term string) ([]entities.Doctor, error)

	// Delete removes the doctor with id; it reports whether one was removed
	Delete(ctx context.Context, id int) (bool, error)

	// AddRating adds value to the doctor's total and increments the count
	AddRating(ctx context.Context, id int, value int) (*entities.Doctor, error)
}
