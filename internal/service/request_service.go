package service

import (
	"fmt"
	"time"

	"github.com/nac3nt/Appoint/internal/db"
	"github.com/nac3nt/Appoint/internal/entities"
	"github.com/nac3nt/Appoint/internal/repository"
)

type RequestService struct {
	requestRepo repository.RequestRepository
}

func NewRequestService(requestRepo repository.RequestRepository) *RequestService {
	return &RequestService{requestRepo: requestRepo}
}

// Submit queues a patient request as Pending. There is no conflict check at
// submission time; conflicts are resolved when an administrator assigns a
// doctor.
func (s *RequestService) Submit(patientID int, dateStr, startStr, endStr string) (*entities.RequestResponse, error) {
	interval, err := entities.ParseInterval(dateStr, startStr, endStr)
	if err != nil {
		return nil, err
	}

	request := &db.AppointmentRequest{
		PatientID:   patientID,
		Date:        interval.Date,
		StartMinute: int(interval.Start),
		EndMinute:   int(interval.End),
		Status:      db.RequestPending,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.requestRepo.Create(request); err != nil {
		return nil, fmt.Errorf("error creating appointment request: %w", err)
	}

	resp := entities.FromRequest(*request)
	return &resp, nil
}

// ListPending returns the triage queue ordered by requested date then start.
func (s *RequestService) ListPending() ([]entities.RequestResponse, error) {
	requests, err := s.requestRepo.ListPending()
	if err != nil {
		return nil, fmt.Errorf("error listing pending requests: %w", err)
	}
	return toRequestResponses(requests), nil
}

func (s *RequestService) ListByPatient(patientID int) ([]entities.RequestResponse, error) {
	requests, err := s.requestRepo.ListByPatient(patientID)
	if err != nil {
		return nil, fmt.Errorf("error listing patient requests: %w", err)
	}
	return toRequestResponses(requests), nil
}

func toRequestResponses(requests []db.AppointmentRequest) []entities.RequestResponse {
	responses := make([]entities.RequestResponse, 0, len(requests))
	for _, r := range requests {
		responses = append(responses, entities.FromRequest(r))
	}
	return responses
}
