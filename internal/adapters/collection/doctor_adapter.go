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

// DoctorAdapter implements the DoctorRepository interface
type DoctorAdapter struct {
	c *collection[entities.Doctor]
}

var _ repositories.DoctorRepository = (*DoctorAdapter)(nil)

// NewDoctorAdapter loads the doctors collection from kv
func NewDoctorAdapter(ctx context.Context, kv providers.KVStore, metrics *observability.Metrics, opts ...Option) *DoctorAdapter {
	return &DoctorAdapter{
		c: loadCollection(ctx, kv, DoctorsKey, func(d entities.Doctor) int { return d.ID }, metrics, opts),
	}
}

// Reload re-reads the doctors collection from the store
func (a *DoctorAdapter) Reload(ctx context.Context) {
	a.c.reload(ctx)
}

// Add validates the doctor and stores it under the next id. A new doctor
// always starts unrated.
func (a *DoctorAdapter) Add(ctx context.Context, doctor *entities.Doctor) error {
	doctor.Normalize()
	doctor.TotalRating, doctor.RatingCount = 0, 0
	if err := doctor.Validate(); err != nil {
		return err
	}

	stored, err := a.c.insert(ctx, func(id int) entities.Doctor {
		d := *doctor
		d.ID = id
		return d
	})
	if err != nil {
		return err
	}
	doctor.ID = stored.ID
	return nil
}

// Update replaces the profile of the doctor with the same id. The stored
// rating totals win over whatever doctor carries.
func (a *DoctorAdapter) Update(ctx context.Context, doctor *entities.Doctor) error {
	doctor.Normalize()
	if err := doctor.Validate(); err != nil {
		return err
	}

	_, err := a.c.apply(ctx, "update", func(items []entities.Doctor) ([]entities.Doctor, bool, error) {
		for i := range items {
			if items[i].ID == doctor.ID {
				doctor.TotalRating = items[i].TotalRating
				doctor.RatingCount = items[i].RatingCount
				items[i] = *doctor
				return items, true, nil
			}
		}
		return nil, false, apperrors.NewNotFoundError("doctor with id %d not found", doctor.ID)
	})
	return err
}

// GetByID retrieves a doctor by id
func (a *DoctorAdapter) GetByID(ctx context.Context, id int) (*entities.Doctor, error) {
	doctor, ok := a.c.find(func(d entities.Doctor) bool { return d.ID == id })
	if !ok {
		return nil, apperrors.NewNotFoundError("doctor with id %d not found", id)
	}
	return &doctor, nil
}

// List returns all doctors in insertion order
func (a *DoctorAdapter) List(ctx context.Context) ([]entities.Doctor, error) {
	return a.c.snapshot(), nil
}

// Search matches term against doctor names and specialties
func (a *DoctorAdapter) Search(ctx context.Context, term string) ([]entities.Doctor, error) {
	return query.Filter(a.c.snapshot(), term, func(d entities.Doctor) []string {
		return []string{d.Name, d.Specialty}
	}), nil
}

// Delete removes the doctor with id
func (a *DoctorAdapter) Delete(ctx context.Context, id int) (bool, error) {
	return a.c.apply(ctx, "delete", func(items []entities.Doctor) ([]entities.Doctor, bool, error) {
		kept, removed := removeWhere(items, func(d entities.Doctor) bool { return d.ID == id })
		return kept, removed, nil
	})
}

// AddRating adds value to the doctor's rating totals
func (a *DoctorAdapter) AddRating(ctx context.Context, id int, value int) (*entities.Doctor, error) {
	if err := entities.ValidateRating(value); err != nil {
		return nil, err
	}

	var updated entities.Doctor
	_, err := a.c.apply(ctx, "rate", func(items []entities.Doctor) ([]entities.Doctor, bool, error) {
		for i := range items {
			if items[i].ID == id {
				items[i].TotalRating += value
				items[i].RatingCount++
				updated = items[i]
				return items, true, nil
			}
		}
		return nil, false, apperrors.NewNotFoundError("doctor with id %d not found", id)
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}
