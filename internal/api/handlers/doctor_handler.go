package handlers

import (
	"net/http"

	"github.com/zatekoja/clinicrecords/internal/application/services"
	"github.com/zatekoja/clinicrecords/internal/domain/entities"
)

// DoctorHandler handles doctor-related HTTP requests
type DoctorHandler struct {
	service *services.DoctorService
	billing *services.BillingService
}

// NewDoctorHandler creates a new doctor handler
func NewDoctorHandler(service *services.DoctorService, billing *services.BillingService) *DoctorHandler {
	return &DoctorHandler{
		service: service,
		billing: billing,
	}
}

// doctorRequest is the writable part of a doctor. Rating totals are only
// changed through ratings.
type doctorRequest struct {
	Name          string  `json:"name"`
	Specialty     string  `json:"specialty"`
	AvailableDays string  `json:"availableDays"`
	ContactNumber string  `json:"contactNumber"`
	VisitFee      float64 `json:"visitFee"`
	AvailableTime string  `json:"availableTime"`
}

func (d doctorRequest) toEntity(id int) *entities.Doctor {
	return &entities.Doctor{
		ID:            id,
		Name:          d.Name,
		Specialty:     d.Specialty,
		AvailableDays: d.AvailableDays,
		ContactNumber: d.ContactNumber,
		VisitFee:      d.VisitFee,
		AvailableTime: d.AvailableTime,
	}
}

type ratingRequest struct {
	Rating int `json:"rating"`
}

// ListDoctors handles GET /api/doctors?q=
func (h *DoctorHandler) ListDoctors(w http.ResponseWriter, r *http.Request) {
	doctors, err := h.service.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"doctors": doctors,
		"count":   len(doctors),
	})
}

// CreateDoctor handles POST /api/doctors
func (h *DoctorHandler) CreateDoctor(w http.ResponseWriter, r *http.Request) {
	var req doctorRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithAppError(w, r, err)
		return
	}

	doctor := req.toEntity(0)
	if err := h.service.Add(r.Context(), doctor); err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, services.NewDoctorListing(*doctor))
}

// GetDoctor handles GET /api/doctors/{id}
func (h *DoctorHandler) GetDoctor(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	doctor, err := h.service.Get(r.Context(), id)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, doctor)
}

// UpdateDoctor handles PUT /api/doctors/{id}
func (h *DoctorHandler) UpdateDoctor(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	var req doctorRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithAppError(w, r, err)
		return
	}

	doctor := req.toEntity(id)
	if err := h.service.Update(r.Context(), doctor); err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, services.NewDoctorListing(*doctor))
}

// DeleteDoctor handles DELETE /api/doctors/{id}
func (h *DoctorHandler) DeleteDoctor(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	removed, err := h.service.Delete(r.Context(), id)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]bool{"removed": removed})
}

// RateDoctor handles POST /api/doctors/{id}/ratings
func (h *DoctorHandler) RateDoctor(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	var req ratingRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithAppError(w, r, err)
		return
	}

	doctor, err := h.billing.RecordRating(r.Context(), id, req.Rating)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, services.NewDoctorListing(*doctor))
}
