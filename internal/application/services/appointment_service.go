package services

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/zatekoja/clinicrecords/internal/domain/entities"
	"github.com/zatekoja/clinicrecords/internal/domain/repositories"
	"github.com/zatekoja/clinicrecords/internal/infrastructure/observability"
	apperrors "github.com/zatekoja/clinicrecords/pkg/errors"
)

// Booking is the outcome of booking an appointment. Bill is nil when the
// appointment references a patient or doctor that does not exist.
type Booking struct {
	Appointment *entities.Appointment `json:"appointment"`
	Bill        *entities.Bill        `json:"bill"`
	Replaced    bool                  `json:"replaced"`
}

// AppointmentService handles booking, cancelling and rating appointments
type AppointmentService struct {
	repo    repositories.AppointmentRepository
	billing *BillingService
}

// NewAppointmentService creates a new appointment service
func NewAppointmentService(repo repositories.AppointmentRepository, billing *BillingService) *AppointmentService {
	return &AppointmentService{
		repo:    repo,
		billing: billing,
	}
}

// Book stores the appointment and generates its bill. Booking a pair that
// already has an appointment replaces it. Ratings are only taken through
// SubmitFeedback, so any feedback on the request is dropped.
func (s *AppointmentService) Book(ctx context.Context, appointment *entities.Appointment) (*Booking, error) {
	ctx, span := observability.StartSpan(ctx, "AppointmentService.Book",
		attribute.Int("patient.id", appointment.PatientID),
		attribute.Int("doctor.id", appointment.DoctorID),
	)
	defer span.End()

	logger := observability.LoggerFromContext(ctx)

	appointment.Feedback, appointment.Rating = "", 0
	replaced, err := s.repo.Save(ctx, appointment)
	if err != nil {
		observability.RecordError(span, err)
		return nil, err
	}

	booking := &Booking{Appointment: appointment, Replaced: replaced}

	bill, err := s.billing.GenerateBill(ctx, appointment)
	switch {
	case err == nil:
		booking.Bill = bill
	case apperrors.IsNotFound(err):
		logger.Warn().Err(err).
			Int("patient_id", appointment.PatientID).
			Int("doctor_id", appointment.DoctorID).
			Msg("appointment.bill.unavailable")
	default:
		observability.RecordError(span, err)
		return nil, err
	}

	logger.Info().
		Int("patient_id", appointment.PatientID).
		Int("doctor_id", appointment.DoctorID).
		Str("date", appointment.Date.String()).
		Bool("replaced", replaced).
		Msg("appointment.booked")
	return booking, nil
}

// Get retrieves the appointment for a pair
func (s *AppointmentService) Get(ctx context.Context, key entities.AppointmentKey) (*entities.Appointment, error) {
	return s.repo.Get(ctx, key)
}

// Bill generates the bill of a stored appointment
func (s *AppointmentService) Bill(ctx context.Context, key entities.AppointmentKey) (*entities.Bill, error) {
	appointment, err := s.repo.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	return s.billing.GenerateBill(ctx, appointment)
}

// List returns all appointments
func (s *AppointmentService) List(ctx context.Context) ([]entities.Appointment, error) {
	return s.repo.List(ctx)
}

// Search returns appointments whose patient or doctor id contains term
func (s *AppointmentService) Search(ctx context.Context, term string) ([]entities.Appointment, error) {
	ctx, span := observability.StartSpan(ctx, "AppointmentService.Search", attribute.String("search.term", term))
	defer span.End()

	appointments, err := s.repo.Search(ctx, term)
	if err != nil {
		observability.RecordError(span, err)
		return nil, err
	}
	observability.SetSpanAttributes(span, attribute.Int("search.results", len(appointments)))
	return appointments, nil
}

// Cancel removes the appointment for a pair. Cancelling a pair without an
// appointment is not an error.
func (s *AppointmentService) Cancel(ctx context.Context, key entities.AppointmentKey) (bool, error) {
	ctx, span := observability.StartSpan(ctx, "AppointmentService.Cancel",
		attribute.Int("patient.id", key.PatientID),
		attribute.Int("doctor.id", key.DoctorID),
	)
	defer span.End()

	removed, err := s.repo.Cancel(ctx, key)
	if err != nil {
		observability.RecordError(span, err)
		return false, err
	}

	observability.LoggerFromContext(ctx).Info().
		Int("patient_id", key.PatientID).
		Int("doctor_id", key.DoctorID).
		Bool("removed", removed).
		Msg("appointment.cancelled")
	return removed, nil
}

// SubmitFeedback stores feedback and a rating on an appointment and adds the
// rating to the doctor. An appointment can be rated once. If the doctor
// cannot take the rating the appointment is left unrated.
func (s *AppointmentService) SubmitFeedback(ctx context.Context, key entities.AppointmentKey, feedback string, rating int) (*entities.Appointment, error) {
	ctx, span := observability.StartSpan(ctx, "AppointmentService.SubmitFeedback",
		attribute.Int("patient.id", key.PatientID),
		attribute.Int("doctor.id", key.DoctorID),
		attribute.Int("rating", rating),
	)
	defer span.End()

	fail := func(err error) (*entities.Appointment, error) {
		observability.RecordError(span, err)
		return nil, err
	}

	if err := entities.ValidateRating(rating); err != nil {
		return fail(err)
	}

	rated, err := s.repo.Rate(ctx, key, feedback, rating)
	if err != nil {
		return fail(err)
	}

	if _, err := s.billing.RecordRating(ctx, key.DoctorID, rating); err != nil {
		if _, restoreErr := s.repo.Unrate(ctx, rated); restoreErr != nil {
			observability.LoggerFromContext(ctx).Error().Err(restoreErr).
				Int("patient_id", key.PatientID).
				Int("doctor_id", key.DoctorID).
				Msg("appointment.feedback.restore_failed")
		}
		return fail(err)
	}

	observability.LoggerFromContext(ctx).Info().
		Int("patient_id", key.PatientID).
		Int("doctor_id", key.DoctorID).
		Int("rating", rating).
		Msg("appointment.feedback.submitted")
	return rated, nil
}
