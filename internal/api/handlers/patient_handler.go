package handlers

import (
	"net/http"

	"github.com/zatekoja/clinicrecords/internal/application/services"
	"github.com/zatekoja/clinicrecords/internal/domain/entities"
)

// PatientHandler handles patient-related HTTP requests
type PatientHandler struct {
	service *services.PatientService
}

// NewPatientHandler creates a new patient handler
func NewPatientHandler(service *services.PatientService) *PatientHandler {
	return &PatientHandler{service: service}
}

// patientRequest is the writable part of a patient
type patientRequest struct {
	Name      string          `json:"name"`
	AgeYears  int             `json:"ageYears"`
	AgeMonths int             `json:"ageMonths"`
	Gender    entities.Gender `json:"gender"`
	Disease   string          `json:"disease"`
}

func (p patientRequest) toEntity(id int) *entities.Patient {
	return &entities.Patient{
		ID:        id,
		Name:      p.Name,
		AgeYears:  p.AgeYears,
		AgeMonths: p.AgeMonths,
		Gender:    p.Gender,
		Disease:   p.Disease,
	}
}

// ListPatients handles GET /api/patients?q=
func (h *PatientHandler) ListPatients(w http.ResponseWriter, r *http.Request) {
	patients, err := h.service.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"patients": patients,
		"count":    len(patients),
	})
}

// CreatePatient handles POST /api/patients
func (h *PatientHandler) CreatePatient(w http.ResponseWriter, r *http.Request) {
	var req patientRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithAppError(w, r, err)
		return
	}

	patient := req.toEntity(0)
	if err := h.service.Add(r.Context(), patient); err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, patient)
}

// GetPatient handles GET /api/patients/{id}
func (h *PatientHandler) GetPatient(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	patient, err := h.service.Get(r.Context(), id)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, patient)
}

// UpdatePatient handles PUT /api/patients/{id}
func (h *PatientHandler) UpdatePatient(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	var req patientRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithAppError(w, r, err)
		return
	}

	patient := req.toEntity(id)
	if err := h.service.Update(r.Context(), patient); err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, patient)
}

// DeletePatient handles DELETE /api/patients/{id}
func (h *PatientHandler) DeletePatient(w http.ResponseWriter, r *http.Request) {
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
