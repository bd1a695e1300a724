package routes

import (
	"net/http"

	"github.com/zatekoja/clinicrecords/internal/api/handlers"
	"github.com/zatekoja/clinicrecords/internal/api/middleware"
	"github.com/zatekoja/clinicrecords/internal/infrastructure/observability"
	"github.com/zatekoja/clinicrecords/pkg/config"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	patientHandler     *handlers.PatientHandler
	doctorHandler      *handlers.DoctorHandler
	appointmentHandler *handlers.AppointmentHandler

	server  config.ServerConfig
	auth    config.AuthConfig
	metrics *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	patientHandler *handlers.PatientHandler,
	doctorHandler *handlers.DoctorHandler,
	appointmentHandler *handlers.AppointmentHandler,
	server config.ServerConfig,
	auth config.AuthConfig,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux:                http.NewServeMux(),
		patientHandler:     patientHandler,
		doctorHandler:      doctorHandler,
		appointmentHandler: appointmentHandler,
		server:             server,
		auth:               auth,
		metrics:            metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Health check endpoint
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Patient endpoints
	r.mux.HandleFunc("GET /api/patients", r.patientHandler.ListPatients)
	r.mux.HandleFunc("POST /api/patients", r.patientHandler.CreatePatient)
	r.mux.HandleFunc("GET /api/patients/{id}", r.patientHandler.GetPatient)
	r.mux.HandleFunc("PUT /api/patients/{id}", r.patientHandler.UpdatePatient)
	r.mux.HandleFunc("DELETE /api/patients/{id}", r.patientHandler.DeletePatient)

	// Doctor endpoints
	r.mux.HandleFunc("GET /api/doctors", r.doctorHandler.ListDoctors)
	r.mux.HandleFunc("POST /api/doctors", r.doctorHandler.CreateDoctor)
	r.mux.HandleFunc("GET /api/doctors/{id}", r.doctorHandler.GetDoctor)
	r.mux.HandleFunc("PUT /api/doctors/{id}", r.doctorHandler.UpdateDoctor)
	r.mux.HandleFunc("DELETE /api/doctors/{id}", r.doctorHandler.DeleteDoctor)
	r.mux.HandleFunc("POST /api/doctors/{id}/ratings", r.doctorHandler.RateDoctor)

	// Appointment endpoints
	r.mux.HandleFunc("GET /api/appointments", r.appointmentHandler.ListAppointments)
	r.mux.HandleFunc("POST /api/appointments", r.appointmentHandler.BookAppointment)
	r.mux.HandleFunc("GET /api/appointments/{patientId}/{doctorId}", r.appointmentHandler.GetAppointment)
	r.mux.HandleFunc("DELETE /api/appointments/{patientId}/{doctorId}", r.appointmentHandler.CancelAppointment)
	r.mux.HandleFunc("GET /api/appointments/{patientId}/{doctorId}/bill", r.appointmentHandler.GetBill)
	r.mux.HandleFunc("POST /api/appointments/{patientId}/{doctorId}/feedback", r.appointmentHandler.SubmitFeedback)

	// Apply middleware in reverse order (last middleware wraps first).
	// Observability sits directly on the mux so it sees the matched pattern.
	var handler http.Handler = r.mux
	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	handler = middleware.Compression(handler)
	handler = middleware.BasicAuth(r.auth)(handler)
	handler = middleware.LoggingMiddleware(handler)
	// CORS wraps everything so rejected requests still carry the headers
	handler = middleware.CORSMiddleware(r.server.AllowedOrigins)(handler)

	return handler
}
