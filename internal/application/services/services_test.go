package services_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/zatekoja/clinicrecords/internal/adapters/collection"
	"github.com/zatekoja/clinicrecords/internal/adapters/store"
	"github.com/zatekoja/clinicrecords/internal/application/services"
	"github.com/zatekoja/clinicrecords/internal/domain/entities"
	"github.com/zatekoja/clinicrecords/internal/domain/repositories"
	apperrors "github.com/zatekoja/clinicrecords/pkg/errors"
)

type clinic struct {
	patients     *services.PatientService
	doctors      *services.DoctorService
	appointments *services.AppointmentService
	billing      *services.BillingService
}

func newClinic(t *testing.T) *clinic {
	t.Helper()
	ctx := context.Background()
	kv := store.NewMemoryStore()

	patientRepo := collection.NewPatientAdapter(ctx, kv, nil)
	doctorRepo := collection.NewDoctorAdapter(ctx, kv, nil)
	appointmentRepo := collection.NewAppointmentAdapter(ctx, kv, nil)
	billing := services.NewBillingService(patientRepo, doctorRepo)

	return &clinic{
		patients:     services.NewPatientService(patientRepo),
		doctors:      services.NewDoctorService(doctorRepo),
		appointments: services.NewAppointmentService(appointmentRepo, billing),
		billing:      billing,
	}
}

func TestClinic_BookThenDeleteDoctor(t *testing.T) {
	ctx := context.Background()
	c := newClinic(t)

	doctor := &entities.Doctor{Name: "Dr. Lee", Specialty: "Cardiology", VisitFee: 150}
	require.NoError(t, c.doctors.Add(ctx, doctor))
	patient := &entities.Patient{Name: "Jo", AgeYears: 30, Gender: entities.GenderOther}
	require.NoError(t, c.patients.Add(ctx, patient))
	require.Equal(t, 1, doctor.ID)
	require.Equal(t, 1, patient.ID)

	booking, err := c.appointments.Book(ctx, &entities.Appointment{
		PatientID: 1,
		DoctorID:  1,
		Date:      entities.MustParseLocalTime("2024-01-01T10:00"),
	})
	require.NoError(t, err)
	require.NotNil(t, booking.Bill)
	assert.Equal(t, entities.Bill{
		PatientName: "Jo",
		DoctorName:  "Dr. Lee",
		VisitFee:    150,
		Date:        entities.MustParseLocalTime("2024-01-01T10:00"),
	}, *booking.Bill)

	removed, err := c.doctors.Delete(ctx, 1)
	require.NoError(t, err)
	assert.True(t, removed)

	_, err = c.appointments.Bill(ctx, entities.AppointmentKey{PatientID: 1, DoctorID: 1})
	assert.True(t, apperrors.IsNotFound(err))

	appointments, err := c.appointments.List(ctx)
	require.NoError(t, err)
	assert.Len(t, appointments, 1)
}

func TestClinic_CancelTwice(t *testing.T) {
	ctx := context.Background()
	c := newClinic(t)
	key := entities.AppointmentKey{PatientID: 1, DoctorID: 1}

	_, err := c.appointments.Book(ctx, &entities.Appointment{PatientID: 1, DoctorID: 1, Date: entities.MustParseLocalTime("2024-01-01T10:00")})
	require.NoError(t, err)

	removed, err := c.appointments.Cancel(ctx, key)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = c.appointments.Cancel(ctx, key)
	require.NoError(t, err)
	assert.False(t, removed)

	list, err := c.appointments.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestClinic_FeedbackRatesOnce(t *testing.T) {
	ctx := context.Background()
	c := newClinic(t)

	doctor := &entities.Doctor{Name: "Dr. Lee", Specialty: "Cardiology", VisitFee: 150}
	require.NoError(t, c.doctors.Add(ctx, doctor))
	require.NoError(t, c.patients.Add(ctx, &entities.Patient{Name: "Jo", Gender: entities.GenderOther}))
	_, err := c.appointments.Book(ctx, &entities.Appointment{PatientID: 1, DoctorID: 1, Date: entities.MustParseLocalTime("2024-01-01T10:00")})
	require.NoError(t, err)

	key := entities.AppointmentKey{PatientID: 1, DoctorID: 1}
	_, err = c.appointments.SubmitFeedback(ctx, key, " very kind ", 5)
	require.NoError(t, err)
	_, err = c.appointments.SubmitFeedback(ctx, key, "again", 1)
	assert.True(t, apperrors.IsConflict(err))

	stored, err := c.appointments.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "very kind", stored.Feedback)

	_, err = c.billing.RecordRating(ctx, 1, 4)
	require.NoError(t, err)

	listing, err := c.doctors.Get(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, listing.AverageRating)
	assert.InDelta(t, 4.5, *listing.AverageRating, 1e-9)
	assert.Equal(t, 2, listing.RatingCount)
}

// rebookingRepo books the pair again right after it is rated, as a
// concurrent request would
type rebookingRepo struct {
	repositories.AppointmentRepository
	rebook func(ctx context.Context)
}

func (r *rebookingRepo) Rate(ctx context.Context, key entities.AppointmentKey, feedback string, rating int) (*entities.Appointment, error) {
	rated, err := r.AppointmentRepository.Rate(ctx, key, feedback, rating)
	if err == nil {
		r.rebook(ctx)
	}
	return rated, err
}

func TestAppointmentService_FeedbackRollbackKeepsRebook(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryStore()
	appointmentRepo := collection.NewAppointmentAdapter(ctx, kv, nil)
	billing := services.NewBillingService(collection.NewPatientAdapter(ctx, kv, nil), collection.NewDoctorAdapter(ctx, kv, nil))

	rebooked := entities.MustParseLocalTime("2024-02-02T09:00")
	repo := &rebookingRepo{
		AppointmentRepository: appointmentRepo,
		rebook: func(ctx context.Context) {
			_, err := appointmentRepo.Save(ctx, &entities.Appointment{PatientID: 1, DoctorID: 1, Date: rebooked})
			require.NoError(t, err)
		},
	}
	appointments := services.NewAppointmentService(repo, billing)

	_, err := appointments.Book(ctx, &entities.Appointment{PatientID: 1, DoctorID: 1, Date: entities.MustParseLocalTime("2024-01-01T10:00")})
	require.NoError(t, err)

	// no doctor 1, so the rating cannot be recorded and is rolled back
	key := entities.AppointmentKey{PatientID: 1, DoctorID: 1}
	_, err = appointments.SubmitFeedback(ctx, key, "kind", 4)
	assert.True(t, apperrors.IsNotFound(err))

	stored, err := appointmentRepo.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "2024-02-02T09:00", stored.Date.String())
	assert.False(t, stored.Rated())
}

func TestClinic_ConcurrentFeedbackRatesOnce(t *testing.T) {
	ctx := context.Background()
	c := newClinic(t)

	require.NoError(t, c.doctors.Add(ctx, &entities.Doctor{Name: "Dr. Lee", Specialty: "Cardiology", VisitFee: 150}))
	_, err := c.appointments.Book(ctx, &entities.Appointment{PatientID: 1, DoctorID: 1, Date: entities.MustParseLocalTime("2024-01-01T10:00")})
	require.NoError(t, err)

	key := entities.AppointmentKey{PatientID: 1, DoctorID: 1}
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
	)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.appointments.SubmitFeedback(ctx, key, "kind", 5)
			if err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
				return
			}
			assert.True(t, apperrors.IsConflict(err))
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	listing, err := c.doctors.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, listing.RatingCount)
}

func TestDoctorService_ListCarriesAverage(t *testing.T) {
	repo := new(MockDoctorRepository)
	service := services.NewDoctorService(repo)

	repo.On("List", mock.Anything).Return([]entities.Doctor{
		{ID: 1, Name: "Dr. Lee", TotalRating: 7, RatingCount: 2},
		{ID: 2, Name: "Dr. Kim"},
	}, nil)

	listings, err := service.List(context.Background())

	require.NoError(t, err)
	require.Len(t, listings, 2)
	require.NotNil(t, listings[0].AverageRating)
	assert.InDelta(t, 3.5, *listings[0].AverageRating, 1e-9)
	assert.Nil(t, listings[1].AverageRating)
}

func TestPatientService_SearchAndDelete(t *testing.T) {
	ctx := context.Background()
	c := newClinic(t)

	for _, name := range []string{"Jo", "Ann", "Joanne"} {
		require.NoError(t, c.patients.Add(ctx, &entities.Patient{Name: name, Gender: entities.GenderFemale}))
	}

	found, err := c.patients.Search(ctx, "JO")
	require.NoError(t, err)
	assert.Len(t, found, 2)

	removed, err := c.patients.Delete(ctx, 2)
	require.NoError(t, err)
	assert.True(t, removed)

	_, err = c.patients.Get(ctx, 2)
	assert.True(t, apperrors.IsNotFound(err))

	next := &entities.Patient{Name: "Bo", Gender: entities.GenderMale}
	require.NoError(t, c.patients.Add(ctx, next))
	assert.Equal(t, 4, next.ID)
}
