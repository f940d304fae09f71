package service

import (
	"fmt"

	"github.com/nac3nt/Appoint/internal/db"
	"github.com/nac3nt/Appoint/internal/entities"
	"github.com/nac3nt/Appoint/internal/repository"
)

// AppointmentService exposes the ledger's read paths.
type AppointmentService struct {
	appointmentRepo repository.AppointmentRepository
}

func NewAppointmentService(appointmentRepo repository.AppointmentRepository) *AppointmentService {
	return &AppointmentService{appointmentRepo: appointmentRepo}
}

func (s *AppointmentService) ListByDoctor(doctorID int) ([]entities.AppointmentResponse, error) {
	appointments, err := s.appointmentRepo.ListByDoctor(doctorID)
	if err != nil {
		return nil, fmt.Errorf("error listing doctor appointments: %w", err)
	}
	return toAppointmentResponses(appointments), nil
}

func (s *AppointmentService) ListByPatient(patientID int) ([]entities.AppointmentResponse, error) {
	appointments, err := s.appointmentRepo.ListByPatient(patientID)
	if err != nil {
		return nil, fmt.Errorf("error listing patient appointments: %w", err)
	}
	return toAppointmentResponses(appointments), nil
}

func (s *AppointmentService) ListAll() ([]entities.AppointmentResponse, error) {
	appointments, err := s.appointmentRepo.ListAll()
	if err != nil {
		return nil, fmt.Errorf("error listing appointments: %w", err)
	}
	return toAppointmentResponses(appointments), nil
}

func toAppointmentResponses(appointments []db.Appointment) []entities.AppointmentResponse {
	responses := make([]entities.AppointmentResponse, 0, len(appointments))
	for _, a := range appointments {
		responses = append(responses, entities.FromAppointment(a))
	}
	return responses
}
