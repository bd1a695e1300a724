package services

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/zatekoja/clinicrecords/internal/domain/entities"
	"github.com/zatekoja/clinicrecords/internal/domain/repositories"
	"github.com/zatekoja/clinicrecords/internal/infrastructure/observability"
)

// PatientService handles patient records
type PatientService struct {
	repo repositories.PatientRepository
}

// NewPatientService creates a new patient service
func NewPatientService(repo repositories.PatientRepository) *PatientService {
	return &PatientService{repo: repo}
}

// Add registers a new patient
func (s *PatientService) Add(ctx context.Context, patient *entities.Patient) error {
	ctx, span := observability.StartSpan(ctx, "PatientService.Add")
	defer span.End()

	if err := s.repo.Add(ctx, patient); err != nil {
		observability.RecordError(span, err)
		return err
	}

	observability.SetSpanAttributes(span, attribute.Int("patient.id", patient.ID))
	observability.LoggerFromContext(ctx).Info().Int("patient_id", patient.ID).Msg("patient.added")
	return nil
}

// Update replaces an existing patient
func (s *PatientService) Update(ctx context.Context, patient *entities.Patient) error {
	ctx, span := observability.StartSpan(ctx, "PatientService.Update", attribute.Int("patient.id", patient.ID))
	defer span.End()

	if err := s.repo.Update(ctx, patient); err != nil {
		observability.RecordError(span, err)
		return err
	}

	observability.LoggerFromContext(ctx).Info().Int("patient_id", patient.ID).Msg("patient.updated")
	return nil
}

// Get retrieves a patient by id
func (s *PatientService) Get(ctx context.Context, id int) (*entities.Patient, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns all patients
func (s *PatientService) List(ctx context.Context) ([]entities.Patient, error) {
	return s.repo.List(ctx)
}

// Search returns patients whose name contains term
func (s *PatientService) Search(ctx context.Context, term string) ([]entities.Patient, error) {
	ctx, span := observability.StartSpan(ctx, "PatientService.Search", attribute.String("search.term", term))
	defer span.End()

	patients, err := s.repo.Search(ctx, term)
	if err != nil {
		observability.RecordError(span, err)
		return nil, err
	}
	observability.SetSpanAttributes(span, attribute.Int("search.results", len(patients)))
	return patients, nil
}

// Delete removes a patient. Appointments referencing it are kept and
// become dangling.
func (s *PatientService) Delete(ctx context.Context, id int) (bool, error) {
	ctx, span := observability.StartSpan(ctx, "PatientService.Delete", attribute.Int("patient.id", id))
	defer span.End()

	removed, err := s.repo.Delete(ctx, id)
	if err != nil {
		observability.RecordError(span, err)
		return false, err
	}

	observability.LoggerFromContext(ctx).Info().
		Int("patient_id", id).
		Bool("removed", removed).
		Msg("patient.deleted")
	return removed, nil
}
