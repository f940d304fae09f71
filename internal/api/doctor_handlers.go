package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/nac3nt/Appoint/internal/auth"
	"github.com/nac3nt/Appoint/internal/service"
)

type DoctorHandler struct {
	Availability *service.AvailabilityService
	Appointments *service.AppointmentService
}

func NewDoctorHandler(availability *service.AvailabilityService, appointments *service.AppointmentService) *DoctorHandler {
	return &DoctorHandler{Availability: availability, Appointments: appointments}
}

func (h *DoctorHandler) AddAvailability(w http.ResponseWriter, r *http.Request) {
	var req CreateAvailabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	window, err := h.Availability.AddWindow(auth.UserID(r), req.Date, req.StartTime, req.EndTime)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, window)
}

func (h *DoctorHandler) ListAvailability(w http.ResponseWriter, r *http.Request) {
	windows, err := h.Availability.ListByDoctor(auth.UserID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, windows)
}

func (h *DoctorHandler) DeleteAvailability(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}

	if err := h.Availability.RemoveWindow(auth.UserID(r), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Availability deleted"})
}

func (h *DoctorHandler) ListAppointments(w http.ResponseWriter, r *http.Request) {
	appointments, err := h.Appointments.ListByDoctor(auth.UserID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, appointments)
}
