package services

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/zatekoja/clinicrecords/internal/domain/entities"
	"github.com/zatekoja/clinicrecords/internal/domain/repositories"
	"github.com/zatekoja/clinicrecords/internal/infrastructure/observability"
	apperrors "github.com/zatekoja/clinicrecords/pkg/errors"
)

// BillingService joins appointments with the patient and doctor records they
// reference and maintains doctor ratings.
type BillingService struct {
	patients repositories.PatientRepository
	doctors  repositories.DoctorRepository
}

// NewBillingService creates a new billing service
func NewBillingService(patients repositories.PatientRepository, doctors repositories.DoctorRepository) *BillingService {
	return &BillingService{
		patients: patients,
		doctors:  doctors,
	}
}

// GenerateBill builds the bill for appointment from the current patient and
// doctor records. Nothing is written.
func (s *BillingService) GenerateBill(ctx context.Context, appointment *entities.Appointment) (*entities.Bill, error) {
	ctx, span := observability.StartSpan(ctx, "BillingService.GenerateBill",
		attribute.Int("patient.id", appointment.PatientID),
		attribute.Int("doctor.id", appointment.DoctorID),
	)
	defer span.End()

	doctor, err := s.doctors.GetByID(ctx, appointment.DoctorID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			err = apperrors.NewNotFoundError("appointment references missing doctor %d", appointment.DoctorID)
		}
		observability.RecordError(span, err)
		return nil, err
	}

	patient, err := s.patients.GetByID(ctx, appointment.PatientID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			err = apperrors.NewNotFoundError("appointment references missing patient %d", appointment.PatientID)
		}
		observability.RecordError(span, err)
		return nil, err
	}

	return &entities.Bill{
		PatientName: patient.Name,
		DoctorName:  doctor.Name,
		VisitFee:    doctor.VisitFee,
		Date:        appointment.Date,
	}, nil
}

// RecordRating adds a 1..5 rating to the doctor's totals
func (s *BillingService) RecordRating(ctx context.Context, doctorID, value int) (*entities.Doctor, error) {
	ctx, span := observability.StartSpan(ctx, "BillingService.RecordRating",
		attribute.Int("doctor.id", doctorID),
		attribute.Int("rating", value),
	)
	defer span.End()

	doctor, err := s.doctors.AddRating(ctx, doctorID, value)
	if err != nil {
		observability.RecordError(span, err)
		return nil, err
	}

	observability.LoggerFromContext(ctx).Info().
		Int("doctor_id", doctorID).
		Int("rating", value).
		Int("rating_count", doctor.RatingCount).
		Msg("doctor.rated")
	return doctor, nil
}
