package services

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/zatekoja/clinicrecords/internal/domain/entities"
	"github.com/zatekoja/clinicrecords/internal/domain/repositories"
	"github.com/zatekoja/clinicrecords/internal/infrastructure/observability"
)

// DoctorListing is a doctor with its derived average rating. AverageRating
// is nil for a doctor nobody has rated yet.
type DoctorListing struct {
	entities.Doctor
	AverageRating *float64 `json:"averageRating"`
}

// NewDoctorListing derives the listing for doctor
func NewDoctorListing(doctor entities.Doctor) DoctorListing {
	listing := DoctorListing{Doctor: doctor}
	if avg, ok := doctor.AverageRating(); ok {
		listing.AverageRating = &avg
	}
	return listing
}

// DoctorService handles doctor records
type DoctorService struct {
	repo repositories.DoctorRepository
}

// NewDoctorService creates a new doctor service
func NewDoctorService(repo repositories.DoctorRepository) *DoctorService {
	return &DoctorService{repo: repo}
}

// Add registers a new doctor
func (s *DoctorService) Add(ctx context.Context, doctor *entities.Doctor) error {
	ctx, span := observability.StartSpan(ctx, "DoctorService.Add")
	defer span.End()

	if err := s.repo.Add(ctx, doctor); err != nil {
		observability.RecordError(span, err)
		return err
	}

	observability.SetSpanAttributes(span, attribute.Int("doctor.id", doctor.ID))
	observability.LoggerFromContext(ctx).Info().Int("doctor_id", doctor.ID).Msg("doctor.added")
	return nil
}

// Update replaces the profile of an existing doctor
func (s *DoctorService) Update(ctx context.Context, doctor *entities.Doctor) error {
	ctx, span := observability.StartSpan(ctx, "DoctorService.Update", attribute.Int("doctor.id", doctor.ID))
	defer span.End()

	if err := s.repo.Update(ctx, doctor); err != nil {
		observability.RecordError(span, err)
		return err
	}

	observability.LoggerFromContext(ctx).Info().Int("doctor_id", doctor.ID).Msg("doctor.updated")
	return nil
}

// Get retrieves a doctor by id
func (s *DoctorService) Get(ctx context.Context, id int) (*DoctorListing, error) {
	doctor, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	listing := NewDoctorListing(*doctor)
	return &listing, nil
}

// List returns all doctors
func (s *DoctorService) List(ctx context.Context) ([]DoctorListing, error) {
	doctors, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return toListings(doctors), nil
}

// Search returns doctors whose name or specialty contains term
func (s *DoctorService) Search(ctx context.Context, term string) ([]DoctorListing, error) {
	ctx, span := observability.StartSpan(ctx, "DoctorService.Search", attribute.String("search.term", term))
	defer span.End()

	doctors, err := s.repo.Search(ctx, term)
	if err != nil {
		observability.RecordError(span, err)
		return nil, err
	}
	observability.SetSpanAttributes(span, attribute.Int("search.results", len(doctors)))
	return toListings(doctors), nil
}

// Delete removes a doctor
func (s *DoctorService) Delete(ctx context.Context, id int) (bool, error) {
	ctx, span := observability.StartSpan(ctx, "DoctorService.Delete", attribute.Int("doctor.id", id))
	defer span.End()

	removed, err := s.repo.Delete(ctx, id)
	if err != nil {
		observability.RecordError(span, err)
		return false, err
	}

	observability.LoggerFromContext(ctx).Info().
		Int("doctor_id", id).
		Bool("removed", removed).
		Msg("doctor.deleted")
	return removed, nil
}

func toListings(doctors []entities.Doctor) []DoctorListing {
	listings := make([]DoctorListing, 0, len(doctors))
	for _, d := range doctors {
		listings = append(listings, NewDoctorListing(d))
	}
	return listings
}
