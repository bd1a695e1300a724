package main

import (
	"context"
	"errors"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/zatekoja/clinicrecords/internal/adapters/collection"
	"github.com/zatekoja/clinicrecords/internal/adapters/store"
	"github.com/zatekoja/clinicrecords/internal/application/services"
	"github.com/zatekoja/clinicrecords/internal/domain/entities"
	"github.com/zatekoja/clinicrecords/internal/infrastructure/observability"
	"github.com/zatekoja/clinicrecords/pkg/config"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warn().Err(err).Msg("failed to read .env")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	observability.InitLogger(cfg.App.Name+"-seed", cfg.App.Env)
	logger := observability.GetLogger()

	ctx := context.Background()

	kv, closer, err := store.Open(ctx, cfg, nil)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open store")
	}
	defer closer.Close()

	if os.Getenv("RESET_DB") == "true" {
		logger.Info().Msg("RESET_DB=true detected, clearing collections before seeding")
		if err := collection.Reset(ctx, kv); err != nil {
			logger.Fatal().Err(err).Msg("failed to reset collections")
		}
	}

	patientRepo := collection.NewPatientAdapter(ctx, kv, nil)
	doctorRepo := collection.NewDoctorAdapter(ctx, kv, nil)
	appointmentRepo := collection.NewAppointmentAdapter(ctx, kv, nil)

	billing := services.NewBillingService(patientRepo, doctorRepo)
	patientService := services.NewPatientService(patientRepo)
	doctorService := services.NewDoctorService(doctorRepo)
	appointmentService := services.NewAppointmentService(appointmentRepo, billing)

	// 1. Seed Doctors
	doctors := []entities.Doctor{
		{Name: "Dr. Adaeze Okafor", Specialty: "Cardiology", AvailableDays: "Mon, Wed, Fri", ContactNumber: "+234 801 234 5678", VisitFee: 150, AvailableTime: "09:00-13:00"},
		{Name: "Dr. Tunde Bakare", Specialty: "Pediatrics", AvailableDays: "Tue, Thu", ContactNumber: "+234 802 345 6789", VisitFee: 90, AvailableTime: "10:00-16:00"},
		{Name: "Dr. Grace Eze", Specialty: "Dermatology", AvailableDays: "Mon-Fri", ContactNumber: "+234 803 456 7890", VisitFee: 120, AvailableTime: "08:00-12:00"},
	}
	for i := range doctors {
		if err := doctorService.Add(ctx, &doctors[i]); err != nil {
			logger.Error().Err(err).Str("doctor", doctors[i].Name).Msg("failed to create doctor")
		}
	}

	// 2. Seed Patients
	patients := []entities.Patient{
		{Name: "Chinedu Obi", AgeYears: 42, Gender: entities.GenderMale, Disease: "Hypertension"},
		{Name: "Amaka Nwosu", AgeYears: 6, AgeMonths: 4, Gender: entities.GenderFemale, Disease: "Asthma"},
		{Name: "Sam Ade", AgeYears: 29, Gender: entities.GenderOther, Disease: "Eczema"},
	}
	for i := range patients {
		if err := patientService.Add(ctx, &patients[i]); err != nil {
			logger.Error().Err(err).Str("patient", patients[i].Name).Msg("failed to create patient")
		}
	}

	// 3. Book one appointment per patient with the matching doctor
	dates := []string{"2024-01-08T09:30", "2024-01-09T11:00", "2024-01-10T08:15"}
	for i := range patients {
		if patients[i].ID == 0 || doctors[i].ID == 0 {
			continue
		}
		booking, err := appointmentService.Book(ctx, &entities.Appointment{
			PatientID: patients[i].ID,
			DoctorID:  doctors[i].ID,
			Date:      entities.MustParseLocalTime(dates[i]),
		})
		if err != nil {
			logger.Error().Err(err).Str("patient", patients[i].Name).Msg("failed to book appointment")
			continue
		}
		if booking.Bill != nil {
			logger.Info().
				Str("patient", booking.Bill.PatientName).
				Str("doctor", booking.Bill.DoctorName).
				Float64("total", booking.Bill.Total()).
				Msg("appointment seeded")
		}
	}

	logger.Info().Str("driver", cfg.Store.Driver).Msg("seeding completed")
}
