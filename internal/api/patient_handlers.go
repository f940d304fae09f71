package api

import (
	"encoding/json"
	"net/http"

	"github.com/nac3nt/Appoint/internal/auth"
	"github.com/nac3nt/Appoint/internal/service"
)

type PatientHandler struct {
	Requests     *service.RequestService
	Appointments *service.AppointmentService
}

func NewPatientHandler(requests *service.RequestService, appointments *service.AppointmentService) *PatientHandler {
	return &PatientHandler{Requests: requests, Appointments: appointments}
}

func (h *PatientHandler) CreateRequest(w http.ResponseWriter, r *http.Request) {
	var req CreateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	request, err := h.Requests.Submit(auth.UserID(r), req.Date, req.StartTime, req.EndTime)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, request)
}

func (h *PatientHandler) ListRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := h.Requests.ListByPatient(auth.UserID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, requests)
}

func (h *PatientHandler) ListAppointments(w http.ResponseWriter, r *http.Request) {
	appointments, err := h.Appointments.ListByPatient(auth.UserID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, appointments)
}
