package repositories

import (
	"context"

	"github.com/zatekoja/clinicrecords/internal/domain/entities"
)

// PatientRepository defines the interface for patient data operations
type PatientRepository interface {
	// Add validates the patient, assigns the next id and stores it
	Add(ctx context.Context, patient *entities.Patient) error

	// Update replaces the stored patient with the same id
	Update(ctx context.Context, patient *entities.Patient) error

	// GetByID retrieves a patient by id
	GetByID(ctx context.Context, id int) (*entities.Patient, error)

	// List returns all patients in insertion order
	List(ctx context.Context) ([]entities.Patient, error)

	// Search returns patients whose name contains term, ignoring case
	Search(ctx context.Context, term string) ([]entities.Patient, error)

	// Delete removes the patient with id; it reports whether one was removed
	Delete(ctx context.Context, id int) (bool, error)
}
