package service

import (
	"fmt"
	"sort"
	"time"

	"github.com/nac3nt/Appoint/internal/db"
	"github.com/nac3nt/Appoint/internal/entities"
	apperr "github.com/nac3nt/Appoint/internal/errors"
	"github.com/nac3nt/Appoint/internal/repository"
)

type AvailabilityService struct {
	availabilityRepo repository.AvailabilityRepository
	appointmentRepo  repository.AppointmentRepository
	locks            *ScheduleLock
}

func NewAvailabilityService(availabilityRepo repository.AvailabilityRepository, appointmentRepo repository.AppointmentRepository, locks *ScheduleLock) *AvailabilityService {
	return &AvailabilityService{
		availabilityRepo: availabilityRepo,
		appointmentRepo:  appointmentRepo,
		locks:            locks,
	}
}

// AddWindow registers a reachable window for the doctor. A window strictly
// overlapping an existing one for the same date is rejected; adjacency is
// fine, doctors may deliberately split a day into touching windows.
func (s *AvailabilityService) AddWindow(doctorID int, dateStr, startStr, endStr string) (*entities.AvailabilityResponse, error) {
	interval, err := entities.ParseInterval(dateStr, startStr, endStr)
	if err != nil {
		return nil, err
	}

	if !s.locks.TryLock(doctorID, interval.Date) {
		return nil, apperr.NewConflict("another scheduling operation for this doctor is in progress")
	}
	defer s.locks.Unlock(doctorID, interval.Date)

	overlaps, err := s.availabilityRepo.HasOverlapping(doctorID, interval.Date, int(interval.Start), int(interval.End))
	if err != nil {
		return nil, fmt.Errorf("error checking existing availability: %w", err)
	}
	if overlaps {
		return nil, apperr.NewConflict("this time overlaps with your existing availability; choose a different time or delete the overlapping slot first")
	}

	window := &db.DoctorAvailability{
		DoctorID:    doctorID,
		Date:        interval.Date,
		StartMinute: int(interval.Start),
		EndMinute:   int(interval.End),
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.availabilityRepo.Create(window); err != nil {
		return nil, fmt.Errorf("error creating availability window: %w", err)
	}

	resp := entities.FromAvailability(*window)
	return &resp, nil
}

// RemoveWindow deletes one of the doctor's own windows. A window with a
// Scheduled appointment intersecting it cannot be withdrawn; the check runs
// against the window itself, not the merged coverage, because deletion
// operates on individual windows.
func (s *AvailabilityService) RemoveWindow(doctorID, windowID int) error {
	window, err := s.availabilityRepo.GetByID(windowID)
	if err != nil {
		return fmt.Errorf("error loading availability window: %w", err)
	}
	if window == nil {
		return apperr.NewNotFound("availability slot not found")
	}
	if window.DoctorID != doctorID {
		return apperr.NewForbidden("you are not authorized to delete this availability")
	}

	if !s.locks.TryLock(doctorID, window.Date) {
		return apperr.NewConflict("another scheduling operation for this doctor is in progress")
	}
	defer s.locks.Unlock(doctorID, window.Date)

	booked, err := s.appointmentRepo.HasConflict(doctorID, window.Date, window.StartMinute, window.EndMinute)
	if err != nil {
		return fmt.Errorf("error checking appointments for window: %w", err)
	}
	if booked {
		return apperr.NewConflict("cannot delete availability slot with existing appointments")
	}

	if err := s.availabilityRepo.Delete(windowID); err != nil {
		return fmt.Errorf("error deleting availability window: %w", err)
	}
	return nil
}

func (s *AvailabilityService) ListByDoctor(doctorID int) ([]entities.AvailabilityResponse, error) {
	windows, err := s.availabilityRepo.ListByDoctor(doctorID)
	if err != nil {
		return nil, fmt.Errorf("error listing availability: %w", err)
	}
	responses := make([]entities.AvailabilityResponse, 0, len(windows))
	for _, w := range windows {
		responses = append(responses, entities.FromAvailability(w))
	}
	return responses, nil
}

// MergedCoverage computes the doctor's coverage regions for a date.
func (s *AvailabilityService) MergedCoverage(doctorID int, date time.Time) ([]entities.CoverageRegion, error) {
	windows, err := s.availabilityRepo.ListByDoctorAndDate(doctorID, date)
	if err != nil {
		return nil, fmt.Errorf("error listing availability for date: %w", err)
	}
	return MergeWindows(windows), nil
}

// CoveringWindowID returns the representative window id of the first merged
// region that covers the requested interval, or false when none does.
func (s *AvailabilityService) CoveringWindowID(doctorID int, requested entities.TimeInterval) (int, bool, error) {
	regions, err := s.MergedCoverage(doctorID, requested.Date)
	if err != nil {
		return 0, false, err
	}
	for _, region := range regions {
		if region.Interval.Covers(requested) {
			return region.WindowID, true, nil
		}
	}
	return 0, false, nil
}

// MergeWindows folds availability windows into coverage regions: sort by
// start time, extend the running region while the next window is adjacent or
// overlapping, flush otherwise. The result is deterministic for a given set
// regardless of insertion order, and merging an already-merged set yields
// the same regions. Each region keeps the id of its first window (lowest id
// on equal starts) as a stable handle.
func MergeWindows(windows []db.DoctorAvailability) []entities.CoverageRegion {
	if len(windows) == 0 {
		return nil
	}

	sorted := make([]db.DoctorAvailability, len(windows))
	copy(sorted, windows)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].StartMinute != sorted[j].StartMinute {
			return sorted[i].StartMinute < sorted[j].StartMinute
		}
		return sorted[i].ID < sorted[j].ID
	})

	var regions []entities.CoverageRegion
	current := entities.CoverageRegion{
		WindowID: sorted[0].ID,
		Interval: entities.IntervalOf(sorted[0].Date, sorted[0].StartMinute, sorted[0].EndMinute),
	}
	for _, w := range sorted[1:] {
		next := entities.IntervalOf(w.Date, w.StartMinute, w.EndMinute)
		if current.Interval.AdjacentOrOverlapping(next) {
			if next.End > current.Interval.End {
				current.Interval.End = next.End
			}
			continue
		}
		regions = append(regions, current)
		current = entities.CoverageRegion{WindowID: w.ID, Interval: next}
	}
	return append(regions, current)
}
