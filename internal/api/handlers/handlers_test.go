package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zatekoja/clinicrecords/internal/adapters/collection"
	"github.com/zatekoja/clinicrecords/internal/adapters/store"
	"github.com/zatekoja/clinicrecords/internal/api/handlers"
	"github.com/zatekoja/clinicrecords/internal/application/services"
	apperrors "github.com/zatekoja/clinicrecords/pkg/errors"
)

type testAPI struct {
	mux *http.ServeMux
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	ctx := context.Background()
	kv := store.NewMemoryStore()

	patientRepo := collection.NewPatientAdapter(ctx, kv, nil)
	doctorRepo := collection.NewDoctorAdapter(ctx, kv, nil)
	appointmentRepo := collection.NewAppointmentAdapter(ctx, kv, nil)
	billing := services.NewBillingService(patientRepo, doctorRepo)

	patients := handlers.NewPatientHandler(services.NewPatientService(patientRepo))
	doctors := handlers.NewDoctorHandler(services.NewDoctorService(doctorRepo), billing)
	appointments := handlers.NewAppointmentHandler(services.NewAppointmentService(appointmentRepo, billing))

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/patients", patients.ListPatients)
	mux.HandleFunc("POST /api/patients", patients.CreatePatient)
	mux.HandleFunc("GET /api/patients/{id}", patients.GetPatient)
	mux.HandleFunc("PUT /api/patients/{id}", patients.UpdatePatient)
	mux.HandleFunc("DELETE /api/patients/{id}", patients.DeletePatient)
	mux.HandleFunc("GET /api/doctors", doctors.ListDoctors)
	mux.HandleFunc("POST /api/doctors", doctors.CreateDoctor)
	mux.HandleFunc("GET /api/doctors/{id}", doctors.GetDoctor)
	mux.HandleFunc("PUT /api/doctors/{id}", doctors.UpdateDoctor)
	mux.HandleFunc("DELETE /api/doctors/{id}", doctors.DeleteDoctor)
	mux.HandleFunc("POST /api/doctors/{id}/ratings", doctors.RateDoctor)
	mux.HandleFunc("GET /api/appointments", appointments.ListAppointments)
	mux.HandleFunc("POST /api/appointments", appointments.BookAppointment)
	mux.HandleFunc("GET /api/appointments/{patientId}/{doctorId}", appointments.GetAppointment)
	mux.HandleFunc("DELETE /api/appointments/{patientId}/{doctorId}", appointments.CancelAppointment)
	mux.HandleFunc("GET /api/appointments/{patientId}/{doctorId}/bill", appointments.GetBill)
	mux.HandleFunc("POST /api/appointments/{patientId}/{doctorId}/feedback", appointments.SubmitFeedback)

	return &testAPI{mux: mux}
}

func (a *testAPI) do(t *testing.T, method, path, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	w := httptest.NewRecorder()
	a.mux.ServeHTTP(w, req)

	var response map[string]interface{}
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	}
	return w, response
}

func TestPatientHandler_Lifecycle(t *testing.T) {
	api := newTestAPI(t)

	w, created := api.do(t, "POST", "/api/patients", `{"name":"Jo","ageYears":30,"ageMonths":2,"gender":"Other","disease":"flu"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, float64(1), created["id"])
	assert.Equal(t, "Jo", created["name"])

	w, _ = api.do(t, "PUT", "/api/patients/1", `{"name":"Jo","ageYears":31,"gender":"Other"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w, got := api.do(t, "GET", "/api/patients/1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(31), got["ageYears"])

	w, list := api.do(t, "GET", "/api/patients?q=jo", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), list["count"])

	w, removed := api.do(t, "DELETE", "/api/patients/1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, removed["removed"])

	w, _ = api.do(t, "GET", "/api/patients/1", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPatientHandler_Validation(t *testing.T) {
	api := newTestAPI(t)

	tests := []struct {
		name string
		body string
	}{
		{name: "missing name", body: `{"gender":"Male"}`},
		{name: "bad gender", body: `{"name":"Jo","gender":"robot"}`},
		{name: "malformed json", body: `{"name":`},
		{name: "unknown field", body: `{"name":"Jo","gender":"Male","id":9}`},
		{name: "empty body", body: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, response := api.do(t, "POST", "/api/patients", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.NotEmpty(t, response["error"])
		})
	}

	w, _ := api.do(t, "GET", "/api/patients/abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAppointmentHandler_BookAndBill(t *testing.T) {
	api := newTestAPI(t)

	w, _ := api.do(t, "POST", "/api/doctors", `{"name":"Dr. Lee","specialty":"Cardiology","visitFee":150}`)
	require.Equal(t, http.StatusCreated, w.Code)
	w, _ = api.do(t, "POST", "/api/patients", `{"name":"Jo","gender":"Other"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w, booking := api.do(t, "POST", "/api/appointments", `{"patientId":1,"doctorId":1,"date":"2024-01-01T10:00"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	bill, ok := booking["bill"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Jo", bill["patientName"])
	assert.Equal(t, "Dr. Lee", bill["doctorName"])
	assert.Equal(t, float64(150), bill["visitFee"])
	assert.Equal(t, "2024-01-01T10:00", bill["date"])

	w, rebooked := api.do(t, "POST", "/api/appointments", `{"patientId":1,"doctorId":1,"date":"2024-01-02T11:00"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, rebooked["replaced"])

	w, list := api.do(t, "GET", "/api/appointments", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), list["count"])

	w, got := api.do(t, "GET", "/api/appointments/1/1/bill", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(150), got["total"])

	w, _ = api.do(t, "DELETE", "/api/doctors/1", "")
	require.Equal(t, http.StatusOK, w.Code)

	w, response := api.do(t, "GET", "/api/appointments/1/1/bill", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, response["error"], "doctor")
}

func TestAppointmentHandler_DanglingBookingHasNoBill(t *testing.T) {
	api := newTestAPI(t)

	w, booking := api.do(t, "POST", "/api/appointments", `{"patientId":4,"doctorId":5,"date":"2024-01-01T10:00"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Nil(t, booking["bill"])
	assert.NotNil(t, booking["appointment"])

	w, _ = api.do(t, "POST", "/api/appointments", `{"patientId":4,"doctorId":5,"date":"tomorrow"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAppointmentHandler_CancelTwice(t *testing.T) {
	api := newTestAPI(t)

	w, _ := api.do(t, "POST", "/api/appointments", `{"patientId":1,"doctorId":2,"date":"2024-01-01T10:00"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w, got := api.do(t, "GET", "/api/appointments/1/2", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "2024-01-01T10:00", got["date"])

	w, first := api.do(t, "DELETE", "/api/appointments/1/2", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, first["removed"])

	w, _ = api.do(t, "GET", "/api/appointments/1/2", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, second := api.do(t, "DELETE", "/api/appointments/1/2", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, second["removed"])
}

func TestAppointmentHandler_Feedback(t *testing.T) {
	api := newTestAPI(t)

	api.do(t, "POST", "/api/doctors", `{"name":"Dr. Lee","specialty":"Cardiology","visitFee":150}`)
	api.do(t, "POST", "/api/patients", `{"name":"Jo","gender":"Other"}`)
	api.do(t, "POST", "/api/appointments", `{"patientId":1,"doctorId":1,"date":"2024-01-01T10:00"}`)

	w, _ := api.do(t, "POST", "/api/appointments/1/1/feedback", `{"feedback":"great","rating":6}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, response := api.do(t, "POST", "/api/appointments/1/1/feedback", `{"feedback":"`+strings.Repeat("a", 1001)+`","rating":5}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, response["error"], "feedback")

	w, rated := api.do(t, "POST", "/api/appointments/1/1/feedback", `{"feedback":"great","rating":5}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(5), rated["rating"])

	w, _ = api.do(t, "POST", "/api/appointments/1/1/feedback", `{"feedback":"again","rating":1}`)
	assert.Equal(t, http.StatusConflict, w.Code)

	w, _ = api.do(t, "POST", "/api/appointments/9/9/feedback", `{"rating":3}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, doctor := api.do(t, "GET", "/api/doctors/1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(5), doctor["averageRating"])
	assert.Equal(t, float64(1), doctor["ratingCount"])
}

func TestDoctorHandler_Ratings(t *testing.T) {
	api := newTestAPI(t)

	w, created := api.do(t, "POST", "/api/doctors", `{"name":"Dr. Kim","specialty":"Dermatology","visitFee":80}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Nil(t, created["averageRating"])

	api.do(t, "POST", "/api/doctors/1/ratings", `{"rating":4}`)
	w, rated := api.do(t, "POST", "/api/doctors/1/ratings", `{"rating":5}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 4.5, rated["averageRating"])

	w, _ = api.do(t, "POST", "/api/doctors/1/ratings", `{"rating":0}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w, _ = api.do(t, "POST", "/api/doctors/2/ratings", `{"rating":3}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, list := api.do(t, "GET", "/api/doctors?q=derma", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), list["count"])
}

func TestStatusForError(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{apperrors.NewValidationError("name", "name is required"), http.StatusBadRequest},
		{apperrors.NewNotFoundError("patient %d", 1), http.StatusNotFound},
		{apperrors.NewConflictError("already rated"), http.StatusConflict},
		{apperrors.NewUnauthorizedError("no"), http.StatusUnauthorized},
		{apperrors.NewInternalError("store", errors.New("down")), http.StatusInternalServerError},
		{errors.New("plain"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.status, handlers.StatusForError(tt.err), tt.err.Error())
	}
}
