package handlers

import (
	"net/http"

	"github.com/zatekoja/clinicrecords/internal/application/services"
	"github.com/zatekoja/clinicrecords/internal/domain/entities"
)

// AppointmentHandler handles appointment-related HTTP requests
type AppointmentHandler struct {
	service *services.AppointmentService
}

// NewAppointmentHandler creates a new appointment handler
func NewAppointmentHandler(service *services.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{service: service}
}

type bookAppointmentRequest struct {
	PatientID int                `json:"patientId"`
	DoctorID  int                `json:"doctorId"`
	Date      entities.LocalTime `json:"date"`
}

type feedbackRequest struct {
	Feedback string `json:"feedback"`
	Rating   int    `json:"rating"`
}

// ListAppointments handles GET /api/appointments?q=
func (h *AppointmentHandler) ListAppointments(w http.ResponseWriter, r *http.Request) {
	appointments, err := h.service.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"appointments": appointments,
		"count":        len(appointments),
	})
}

// BookAppointment handles POST /api/appointments
func (h *AppointmentHandler) BookAppointment(w http.ResponseWriter, r *http.Request) {
	var req bookAppointmentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithAppError(w, r, err)
		return
	}

	booking, err := h.service.Book(r.Context(), &entities.Appointment{
		PatientID: req.PatientID,
		DoctorID:  req.DoctorID,
		Date:      req.Date,
	})
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	status := http.StatusCreated
	if booking.Replaced {
		status = http.StatusOK
	}
	respondWithJSON(w, status, booking)
}

// GetAppointment handles GET /api/appointments/{patientId}/{doctorId}
func (h *AppointmentHandler) GetAppointment(w http.ResponseWriter, r *http.Request) {
	key, err := appointmentKey(r)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	appointment, err := h.service.Get(r.Context(), key)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, appointment)
}

// CancelAppointment handles DELETE /api/appointments/{patientId}/{doctorId}
func (h *AppointmentHandler) CancelAppointment(w http.ResponseWriter, r *http.Request) {
	key, err := appointmentKey(r)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	removed, err := h.service.Cancel(r.Context(), key)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]bool{"removed": removed})
}

// GetBill handles GET /api/appointments/{patientId}/{doctorId}/bill
func (h *AppointmentHandler) GetBill(w http.ResponseWriter, r *http.Request) {
	key, err := appointmentKey(r)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	bill, err := h.service.Bill(r.Context(), key)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"bill":  bill,
		"total": bill.Total(),
	})
}

// SubmitFeedback handles POST /api/appointments/{patientId}/{doctorId}/feedback
func (h *AppointmentHandler) SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	key, err := appointmentKey(r)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	var req feedbackRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithAppError(w, r, err)
		return
	}

	appointment, err := h.service.SubmitFeedback(r.Context(), key, req.Feedback, req.Rating)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, appointment)
}

func appointmentKey(r *http.Request) (entities.AppointmentKey, error) {
	patientID, err := pathID(r, "patientId")
	if err != nil {
		return entities.AppointmentKey{}, err
	}
	doctorID, err := pathID(r, "doctorId")
	if err != nil {
		return entities.AppointmentKey{}, err
	}
	return entities.AppointmentKey{PatientID: patientID, DoctorID: doctorID}, nil
}
