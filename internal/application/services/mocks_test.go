package services_test

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/zatekoja/clinicrecords/internal/domain/entities"
)

type MockPatientRepository struct {
	mock.Mock
}

func (m *MockPatientRepository) Add(ctx context.Context, patient *entities.Patient) error {
	args := m.Called(ctx, patient)
	return args.Error(0)
}

func (m *MockPatientRepository) Update(ctx context.Context, patient *entities.Patient) error {
	args := m.Called(ctx, patient)
	return args.Error(0)
}

func (m *MockPatientRepository) GetByID(ctx context.Context, id int) (*entities.Patient, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Patient), args.Error(1)
}

func (m *MockPatientRepository) List(ctx context.Context) ([]entities.Patient, error) {
	args := m.Called(ctx)
	return args.Get(0).([]entities.Patient), args.Error(1)
}

func (m *MockPatientRepository) Search(ctx context.Context, term string) ([]entities.Patient, error) {
	args := m.Called(ctx, term)
	return args.Get(0).([]entities.Patient), args.Error(1)
}

func (m *MockPatientRepository) Delete(ctx context.Context, id int) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type MockDoctorRepository struct {
	mock.Mock
}

func (m *MockDoctorRepository) Add(ctx context.Context, doctor *entities.Doctor) error {
	args := m.Called(ctx, doctor)
	return args.Error(0)
}

func (m *MockDoctorRepository) Update(ctx context.Context, doctor *entities.Doctor) error {
	args := m.Called(ctx, doctor)
	return args.Error(0)
}

func (m *MockDoctorRepository) GetByID(ctx context.Context, id int) (*entities.Doctor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Doctor), args.Error(1)
}

func (m *MockDoctorRepository) List(ctx context.Context) ([]entities.Doctor, error) {
	args := m.Called(ctx)
	return args.Get(0).([]entities.Doctor), args.Error(1)
}

func (m *MockDoctorRepository) Search(ctx context.Context, term string) ([]entities.Doctor, error) {
	args := m.Called(ctx, term)
	return args.Get(0).([]entities.Doctor), args.Error(1)
}

func (m *MockDoctorRepository) Delete(ctx context.Context, id int) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockDoctorRepository) AddRating(ctx context.Context, id int, value int) (*entities.Doctor, error) {
	args := m.Called(ctx, id, value)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Doctor), args.Error(1)
}

type MockAppointmentRepository struct {
	mock.Mock
}

func (m *MockAppointmentRepository) Save(ctx context.Context, appointment *entities.Appointment) (bool, error) {
	args := m.Called(ctx, appointment)
	return args.Bool(0), args.Error(1)
}

func (m *MockAppointmentRepository) Get(ctx context.Context, key entities.AppointmentKey) (*entities.Appointment, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) List(ctx context.Context) ([]entities.Appointment, error) {
	args := m.Called(ctx)
	return args.Get(0).([]entities.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) Search(ctx context.Context, term string) ([]entities.Appointment, error) {
	args := m.Called(ctx, term)
	return args.Get(0).([]entities.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) Rate(ctx context.Context, key entities.AppointmentKey, feedback string, rating int) (*entities.Appointment, error) {
	args := m.Called(ctx, key, feedback, rating)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) Unrate(ctx context.Context, rated *entities.Appointment) (bool, error) {
	args := m.Called(ctx, rated)
	return args.Bool(0), args.Error(1)
}

func (m *MockAppointmentRepository) Cancel(ctx context.Context, key entities.AppointmentKey) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}
