package collection

import (
	"context"
	"strconv"

	"github.com/zatekoja/clinicrecords/internal/domain/entities"
	"github.com/zatekoja/clinicrecords/internal/domain/providers"
	"github.com/zatekoja/clinicrecords/internal/domain/repositories"
	"github.com/zatekoja/clinicrecords/internal/infrastructure/observability"
	"github.com/zatekoja/clinicrecords/internal/query"
	apperrors "github.com/zatekoja/clinicrecords/pkg/errors"
)

// AppointmentAdapter implements the AppointmentRepository interface
type AppointmentAdapter struct {
	c *collection[entities.Appointment]
}

var _ repositories.AppointmentRepository = (*AppointmentAdapter)(nil)

// NewAppointmentAdapter loads the appointments collection from kv
func NewAppointmentAdapter(ctx context.Context, kv providers.KVStore, metrics *observability.Metrics, opts ...Option) *AppointmentAdapter {
	return &AppointmentAdapter{
		c: loadCollection[entities.Appointment](ctx, kv, AppointmentsKey, nil, metrics, opts),
	}
}

// Reload re-reads the appointments collection from the store
func (a *AppointmentAdapter) Reload(ctx context.Context) {
	a.c.reload(ctx)
}

// Save stores the appointment, replacing the one held for the same pair in place
func (a *AppointmentAdapter) Save(ctx context.Context, appointment *entities.Appointment) (bool, error) {
	appointment.Normalize()
	if err := appointment.Validate(); err != nil {
		return false, err
	}

	replaced := false
	_, err := a.c.apply(ctx, "save", func(items []entities.Appointment) ([]entities.Appointment, bool, error) {
		key := appointment.Key()
		for i := range items {
			if items[i].Key() == key {
				items[i] = *appointment
				replaced = true
				return items, true, nil
			}
		}
		return append(items, *appointment), true, nil
	})
	if err != nil {
		return false, err
	}
	return replaced, nil
}

// Get retrieves the appointment for a pair
func (a *AppointmentAdapter) Get(ctx context.Context, key entities.AppointmentKey) (*entities.Appointment, error) {
	appointment, ok := a.c.find(func(ap entities.Appointment) bool { return ap.Key() == key })
	if !ok {
		return nil, apperrors.NewNotFoundError("appointment for patient %d and doctor %d not found", key.PatientID, key.DoctorID)
	}
	return &appointment, nil
}

// List returns all appointments in insertion order
func (a *AppointmentAdapter) List(ctx context.Context) ([]entities.Appointment, error) {
	return a.c.snapshot(), nil
}

// Search matches term against the decimal patient and doctor ids
func (a *AppointmentAdapter) Search(ctx context.Context, term string) ([]entities.Appointment, error) {
	return query.Filter(a.c.snapshot(), term, func(ap entities.Appointment) []string {
		return []string{strconv.Itoa(ap.PatientID), strconv.Itoa(ap.DoctorID)}
	}), nil
}

// Rate sets feedback and rating on a stored unrated appointment
func (a *AppointmentAdapter) Rate(ctx context.Context, key entities.AppointmentKey, feedback string, rating int) (*entities.Appointment, error) {
	var rated entities.Appointment
	_, err := a.c.apply(ctx, "rate", func(items []entities.Appointment) ([]entities.Appointment, bool, error) {
		for i := range items {
			if items[i].Key() != key {
				continue
			}
			if items[i].Rated() {
				return nil, false, apperrors.NewConflictError("appointment for patient %d and doctor %d is already rated", key.PatientID, key.DoctorID)
			}
			rated = items[i]
			rated.Feedback = feedback
			rated.Rating = rating
			rated.Normalize()
			if err := rated.Validate(); err != nil {
				return nil, false, err
			}
			items[i] = rated
			return items, true, nil
		}
		return nil, false, apperrors.NewNotFoundError("appointment for patient %d and doctor %d not found", key.PatientID, key.DoctorID)
	})
	if err != nil {
		return nil, err
	}
	return &rated, nil
}

// Unrate clears the rating set by Rate if the stored record is still rated
func (a *AppointmentAdapter) Unrate(ctx context.Context, rated *entities.Appointment) (bool, error) {
	key := rated.Key()
	return a.c.apply(ctx, "unrate", func(items []entities.Appointment) ([]entities.Appointment, bool, error) {
		for i := range items {
			if items[i].Key() != key {
				continue
			}
			current := items[i]
			if !current.Date.Equal(rated.Date.Time) || current.Feedback != rated.Feedback || current.Rating != rated.Rating {
				return items, false, nil
			}
			items[i].Feedback, items[i].Rating = "", 0
			return items, true, nil
		}
		return items, false, nil
	})
}

// Cancel removes the appointment for a pair
func (a *AppointmentAdapter) Cancel(ctx context.Context, key entities.AppointmentKey) (bool, error) {
	return a.c.apply(ctx, "cancel", func(items []entities.Appointment) ([]entities.Appointment, bool, error) {
		kept, removed := removeWhere(items, func(ap entities.Appointment) bool { return ap.Key() == key })
		return kept, removed, nil
	})
}
