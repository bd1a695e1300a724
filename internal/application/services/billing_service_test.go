package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/zatekoja/clinicrecords/internal/application/services"
	"github.com/zatekoja/clinicrecords/internal/domain/entities"
	apperrors "github.com/zatekoja/clinicrecords/pkg/errors"
)

func TestBillingService_GenerateBill(t *testing.T) {
	appointment := &entities.Appointment{PatientID: 1, DoctorID: 1, Date: entities.MustParseLocalTime("2024-01-01T10:00")}

	t.Run("joins patient and doctor", func(t *testing.T) {
		patients := new(MockPatientRepository)
		doctors := new(MockDoctorRepository)
		service := services.NewBillingService(patients, doctors)

		doctors.On("GetByID", mock.Anything, 1).Return(&entities.Doctor{ID: 1, Name: "Dr. Lee", VisitFee: 150}, nil)
		patients.On("GetByID", mock.Anything, 1).Return(&entities.Patient{ID: 1, Name: "Jo"}, nil)

		bill, err := service.GenerateBill(context.Background(), appointment)

		require.NoError(t, err)
		assert.Equal(t, "Jo", bill.PatientName)
		assert.Equal(t, "Dr. Lee", bill.DoctorName)
		assert.Equal(t, 150.0, bill.Total())
		assert.Equal(t, "2024-01-01T10:00", bill.Date.String())
		patients.AssertExpectations(t)
		doctors.AssertExpectations(t)
	})

	t.Run("missing doctor", func(t *testing.T) {
		patients := new(MockPatientRepository)
		doctors := new(MockDoctorRepository)
		service := services.NewBillingService(patients, doctors)

		doctors.On("GetByID", mock.Anything, 1).Return(nil, apperrors.NewNotFoundError("doctor with id %d not found", 1))

		bill, err := service.GenerateBill(context.Background(), appointment)

		assert.Nil(t, bill)
		assert.True(t, apperrors.IsNotFound(err))
		assert.Contains(t, err.Error(), "missing doctor 1")
		patients.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("missing patient", func(t *testing.T) {
		patients := new(MockPatientRepository)
		doctors := new(MockDoctorRepository)
		service := services.NewBillingService(patients, doctors)

		doctors.On("GetByID", mock.Anything, 1).Return(&entities.Doctor{ID: 1, Name: "Dr. Lee"}, nil)
		patients.On("GetByID", mock.Anything, 1).Return(nil, apperrors.NewNotFoundError("patient with id %d not found", 1))

		_, err := service.GenerateBill(context.Background(), appointment)

		assert.True(t, apperrors.IsNotFound(err))
		assert.Contains(t, err.Error(), "missing patient 1")
	})
}

func TestBillingService_RecordRating(t *testing.T) {
	doctors := new(MockDoctorRepository)
	service := services.NewBillingService(new(MockPatientRepository), doctors)

	doctors.On("AddRating", mock.Anything, 3, 4).Return(&entities.Doctor{ID: 3, TotalRating: 4, RatingCount: 1}, nil)
	doctors.On("AddRating", mock.Anything, 3, 9).Return(nil, apperrors.NewValidationError("rating", "rating must be between 1 and 5"))

	doctor, err := service.RecordRating(context.Background(), 3, 4)
	require.NoError(t, err)
	assert.Equal(t, 1, doctor.RatingCount)

	_, err = service.RecordRating(context.Background(), 3, 9)
	assert.True(t, apperrors.IsValidation(err))
	doctors.AssertExpectations(t)
}
