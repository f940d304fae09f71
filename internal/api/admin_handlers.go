package api

import (
	"encoding/json"
	"net/http"

	"github.com/nac3nt/Appoint/internal/entities"
	"github.com/nac3nt/Appoint/internal/repository"
	"github.com/nac3nt/Appoint/internal/service"
)

type AdminHandler struct {
	Requests     *service.RequestService
	Assignments  *service.AssignmentService
	Appointments *service.AppointmentService
	Users        repository.UserRepository
}

func NewAdminHandler(requests *service.RequestService, assignments *service.AssignmentService, appointments *service.AppointmentService, users repository.UserRepository) *AdminHandler {
	return &AdminHandler{
		Requests:     requests,
		Assignments:  assignments,
		Appointments: appointments,
		Users:        users,
	}
}

func (h *AdminHandler) PendingRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := h.Requests.ListPending()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, requests)
}

func (h *AdminHandler) AvailableDoctors(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	startTime := r.URL.Query().Get("start_time")
	endTime := r.URL.Query().Get("end_time")

	doctors, err := h.Assignments.FindCandidateDoctors(date, startTime, endTime)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doctors)
}

func (h *AdminHandler) Assign(w http.ResponseWriter, r *http.Request) {
	var req AssignAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	appointment, err := h.Assignments.Assign(req.RequestID, req.DoctorID, req.AvailabilityID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, appointment)
}

func (h *AdminHandler) AllAppointments(w http.ResponseWriter, r *http.Request) {
	appointments, err := h.Appointments.ListAll()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, appointments)
}

func (h *AdminHandler) AllUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.Users.ListAll()
	if err != nil {
		writeError(w, err)
		return
	}
	responses := make([]entities.UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, entities.FromUser(u))
	}
	writeJSON(w, http.StatusOK, responses)
}
