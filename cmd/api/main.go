package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/zatekoja/clinicrecords/internal/adapters/collection"
	"github.com/zatekoja/clinicrecords/internal/adapters/events"
	"github.com/zatekoja/clinicrecords/internal/adapters/store"
	"github.com/zatekoja/clinicrecords/internal/api/handlers"
	"github.com/zatekoja/clinicrecords/internal/api/routes"
	"github.com/zatekoja/clinicrecords/internal/application/services"
	redisclient "github.com/zatekoja/clinicrecords/internal/infrastructure/clients/redis"
	"github.com/zatekoja/clinicrecords/internal/infrastructure/observability"
	"github.com/zatekoja/clinicrecords/pkg/config"
)

func main() {
	// A missing .env is fine; the environment is the source of truth
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warn().Err(err).Msg("failed to read .env")
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	observability.InitLogger(cfg.App.Name, cfg.App.Env)
	logger := observability.GetLogger()

	// Set up context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(ctx, cfg.OTEL.ServiceName, cfg.OTEL.ServiceVersion, cfg.OTEL.Endpoint)
		if err != nil {
			logger.Warn().Err(err).Msg("failed to set up OpenTelemetry")
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					logger.Error().Err(err).Msg("error shutting down OpenTelemetry")
				}
			}()
			logger.Info().Str("endpoint", cfg.OTEL.Endpoint).Msg("OpenTelemetry initialized")
		}
	}

	// Initialize metrics
	metrics, err := observability.InitMetrics()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize metrics")
	}

	// Open the key-value store behind the collections
	kv, closer, err := store.Open(ctx, cfg, metrics)
	if err != nil {
		logger.Fatal().Err(err).Str("driver", cfg.Store.Driver).Msg("failed to open store")
	}
	defer func() {
		if err := closer.Close(); err != nil {
			logger.Error().Err(err).Msg("error closing store")
		}
	}()

	// Optionally share mutations with other processes using the same store
	var (
		collectionSync *events.CollectionSync
		repoOpts       []collection.Option
	)
	if cfg.Sync.Enabled {
		redisClient, err := redisclient.NewClient(ctx, &cfg.Redis)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to Redis for collection sync")
		}
		defer redisClient.Close()

		eventBus := events.NewRedisEventBus(redisClient, cfg.Store.KeyPrefix)
		defer eventBus.Close()

		collectionSync = events.NewCollectionSync(eventBus)
		repoOpts = append(repoOpts, collection.WithNotifier(collectionSync))
	}

	// Initialize repositories
	patientRepo := collection.NewPatientAdapter(ctx, kv, metrics, repoOpts...)
	doctorRepo := collection.NewDoctorAdapter(ctx, kv, metrics, repoOpts...)
	appointmentRepo := collection.NewAppointmentAdapter(ctx, kv, metrics, repoOpts...)

	if collectionSync != nil {
		collectionSync.Register(collection.PatientsKey, patientRepo)
		collectionSync.Register(collection.DoctorsKey, doctorRepo)
		collectionSync.Register(collection.AppointmentsKey, appointmentRepo)
		go func() {
			if err := collectionSync.Run(ctx); err != nil {
				logger.Error().Err(err).Msg("collection sync stopped")
			}
		}()
		logger.Info().Str("origin", collectionSync.Origin()).Msg("collection sync enabled")
	}

	// Initialize services
	billingService := services.NewBillingService(patientRepo, doctorRepo)
	patientService := services.NewPatientService(patientRepo)
	doctorService := services.NewDoctorService(doctorRepo)
	appointmentService := services.NewAppointmentService(appointmentRepo, billingService)

	// Initialize handlers
	patientHandler := handlers.NewPatientHandler(patientService)
	doctorHandler := handlers.NewDoctorHandler(doctorService, billingService)
	appointmentHandler := handlers.NewAppointmentHandler(appointmentService)

	router := routes.NewRouter(
		patientHandler,
		doctorHandler,
		appointmentHandler,
		cfg.Server,
		cfg.Auth,
		metrics,
	)
	handler := router.SetupRoutes()

	if cfg.Auth.Username == "" {
		logger.Warn().Msg("AUTH_USERNAME is not set; the API is served without authentication")
	}

	serverAddr := cfg.Server.ServerAddr()
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", serverAddr).Str("env", cfg.App.Env).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("server shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("error during server shutdown")
	}

	logger.Info().Msg("server stopped")
}
