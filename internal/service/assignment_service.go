package service

import (
	"fmt"
	"log"
	"sort"

	"github.com/google/uuid"

	"github.com/nac3nt/Appoint/internal/db"
	"github.com/nac3nt/Appoint/internal/entities"
	apperr "github.com/nac3nt/Appoint/internal/errors"
	"github.com/nac3nt/Appoint/internal/repository"
)

// ConfirmationNotifier receives the confirmed appointment after the
// assignment commits. Delivery is fire-and-forget: its failure never rolls
// back the assignment.
type ConfirmationNotifier interface {
	AppointmentConfirmed(appointment db.Appointment)
}

// AssignmentService coordinates the admin triage flow: finding doctors whose
// coverage fits a request and converting a Pending request into a Scheduled
// appointment without double-booking.
type AssignmentService struct {
	requestRepo      repository.RequestRepository
	availabilityRepo repository.AvailabilityRepository
	appointmentRepo  repository.AppointmentRepository
	userRepo         repository.UserRepository
	notifier         ConfirmationNotifier
	locks            *ScheduleLock
}

func NewAssignmentService(
	requestRepo repository.RequestRepository,
	availabilityRepo repository.AvailabilityRepository,
	appointmentRepo repository.AppointmentRepository,
	userRepo repository.UserRepository,
	notifier ConfirmationNotifier,
	locks *ScheduleLock,
) *AssignmentService {
	return &AssignmentService{
		requestRepo:      requestRepo,
		availabilityRepo: availabilityRepo,
		appointmentRepo:  appointmentRepo,
		userRepo:         userRepo,
		notifier:         notifier,
		locks:            locks,
	}
}

// FindCandidateDoctors returns every doctor whose merged coverage contains
// the interval and who has no conflicting Scheduled appointment. The two
// predicates are exactly the ones Assign re-validates, so an immediately
// following Assign cannot fail absent concurrent interference.
func (s *AssignmentService) FindCandidateDoctors(dateStr, startStr, endStr string) ([]entities.CandidateDoctor, error) {
	requested, err := entities.ParseInterval(dateStr, startStr, endStr)
	if err != nil {
		return nil, err
	}

	windows, err := s.availabilityRepo.ListByDate(requested.Date)
	if err != nil {
		return nil, fmt.Errorf("error listing availability for date: %w", err)
	}

	byDoctor := make(map[int][]db.DoctorAvailability)
	for _, w := range windows {
		byDoctor[w.DoctorID] = append(byDoctor[w.DoctorID], w)
	}
	doctorIDs := make([]int, 0, len(byDoctor))
	for id := range byDoctor {
		doctorIDs = append(doctorIDs, id)
	}
	sort.Ints(doctorIDs)

	candidates := make([]entities.CandidateDoctor, 0)
	for _, doctorID := range doctorIDs {
		regions := MergeWindows(byDoctor[doctorID])

		windowID := 0
		for _, region := range regions {
			if region.Interval.Covers(requested) {
				windowID = region.WindowID
				break
			}
		}
		if windowID == 0 {
			continue
		}

		conflict, err := s.appointmentRepo.HasConflict(doctorID, requested.Date, int(requested.Start), int(requested.End))
		if err != nil {
			return nil, fmt.Errorf("error checking conflicts for doctor %d: %w", doctorID, err)
		}
		if conflict {
			continue
		}

		doctor, err := s.userRepo.GetByID(doctorID)
		if err != nil {
			return nil, fmt.Errorf("error loading doctor %d: %w", doctorID, err)
		}
		if doctor == nil {
			continue
		}

		candidates = append(candidates, entities.CandidateDoctor{
			AvailabilityID: windowID,
			DoctorID:       doctorID,
			DoctorName:     doctor.Name,
		})
	}
	return candidates, nil
}

// Assign converts a Pending request into a Scheduled appointment for the
// chosen doctor. The window id is evidence the doctor came out of a valid
// candidate search; the authoritative conflict check is re-run here, under
// the per-doctor-per-day exclusive section, because the world may have
// changed since the search.
func (s *AssignmentService) Assign(requestID, doctorID, windowID int) (*entities.AppointmentResponse, error) {
	request, err := s.requestRepo.GetByID(requestID)
	if err != nil {
		return nil, fmt.Errorf("error loading request: %w", err)
	}
	if request == nil {
		return nil, apperr.NewNotFound("appointment request not found")
	}
	if request.Status != db.RequestPending {
		return nil, apperr.NewConflict("appointment request has already been processed")
	}

	window, err := s.availabilityRepo.GetByID(windowID)
	if err != nil {
		return nil, fmt.Errorf("error loading availability window: %w", err)
	}
	if window == nil {
		return nil, apperr.NewNotFound("availability slot not found")
	}

	if !s.locks.TryLock(doctorID, request.Date) {
		return nil, apperr.NewConflict("another scheduling operation for this doctor is in progress")
	}
	defer s.locks.Unlock(doctorID, request.Date)

	conflict, err := s.appointmentRepo.HasConflict(doctorID, request.Date, request.StartMinute, request.EndMinute)
	if err != nil {
		return nil, fmt.Errorf("error checking appointment conflict: %w", err)
	}
	if conflict {
		return nil, apperr.NewConflict("doctor already has an appointment at this time")
	}

	appointment, err := s.appointmentRepo.AssignApprove(request, doctorID, uuid.NewString())
	if err != nil {
		switch err {
		case repository.ErrSlotTaken:
			return nil, apperr.NewConflict("doctor already has an appointment at this time")
		case repository.ErrRequestNotPending:
			return nil, apperr.NewConflict("appointment request has already been processed")
		}
		return nil, fmt.Errorf("error committing assignment: %w", err)
	}

	if s.notifier != nil {
		go s.notifier.AppointmentConfirmed(*appointment)
	}
	log.Printf("Assigned request %d to doctor %d as appointment %d", requestID, doctorID, appointment.ID)

	resp := entities.FromAppointment(*appointment)
	return &resp, nil
}
