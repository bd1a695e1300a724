package collection

import (
	"context"

	"github.com/zatekoja/clinicrecords/internal/domain/entities"
	"github.com/zatekoja/clinicrecords/internal/domain/providers"
	"github.com/zatekoja/clinicrecords/internal/domain/repositories"
	"github.com/zatekoja/clinicrecords/internal/infrastructure/observability"
	"github.com/zatekoja/clinicrecords/internal/query"
	apperrors "github.com/zatekoja/clinicrecords/pkg/errors"
)

// PatientAdapter implements the PatientRepository interface
type PatientAdapter struct {
	c *collection[entities.Patient]
}

var _ repositories.PatientRepository = (*PatientAdapter)(nil)

// NewPatientAdapter loads the patients collection from kv
func NewPatientAdapter(ctx context.Context, kv providers.KVStore, metrics *observability.Metrics, opts ...Option) *PatientAdapter {
	return &PatientAdapter{
		c: loadCollection(ctx, kv, PatientsKey, func(p entities.Patient) int { return p.ID }, metrics, opts),
	}
}

// Reload re-reads the patients collection from the store
func (a *PatientAdapter) Reload(ctx context.Context) {
	a.c.reload(ctx)
}

// Add validates the patient and stores it under the next id, which is written back to patient
func (a *PatientAdapter) Add(ctx context.Context, patient *entities.Patient) error {
	patient.Normalize()
	if err := patient.Validate(); err != nil {
		return err
	}

	stored, err := a.c.insert(ctx, func(id int) entities.Patient {
		p := *patient
		p.ID = id
		return p
	})
	if err != nil {
		return err
	}
	patient.ID = stored.ID
	return nil
}

// Update replaces the patient with the same id
func (a *PatientAdapter) Update(ctx context.Context, patient *entities.Patient) error {
	patient.Normalize()
	if err := patient.Validate(); err != nil {
		return err
	}

	_, err := a.c.apply(ctx, "update", func(items []entities.Patient) ([]entities.Patient, bool, error) {
		for i := range items {
			if items[i].ID == patient.ID {
				items[i] = *patient
				return items, true, nil
			}
		}
		return nil, false, apperrors.NewNotFoundError("patient with id %d not found", patient.ID)
	})
	return err
}

// GetByID retrieves a patient by id
func (a *PatientAdapter) GetByID(ctx context.Context, id int) (*entities.Patient, error) {
	patient, ok := a.c.find(func(p entities.Patient) bool { return p.ID == id })
	if !ok {
		return nil, apperrors.NewNotFoundError("patient with id %d not found", id)
	}
	return &patient, nil
}

// List returns all patients in insertion order
func (a *PatientAdapter) List(ctx context.Context) ([]entities.Patient, error) {
	return a.c.snapshot(), nil
}

// Search matches term against patient names
func (a *PatientAdapter) Search(ctx context.Context, term string) ([]entities.Patient, error) {
	return query.Filter(a.c.snapshot(), term, func(p entities.Patient) []string {
		return []string{p.Name}
	}), nil
}

// Delete removes the patient with id
func (a *PatientAdapter) Delete(ctx context.Context, id int) (bool, error) {
	return a.c.apply(ctx, "delete", func(items []entities.Patient) ([]entities.Patient, bool, error) {
		kept, removed := removeWhere(items, func(p entities.Patient) bool { return p.ID == id })
		return kept, removed, nil
	})
}
