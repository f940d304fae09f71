package service

import (
	"fmt"
	"log"

	"github.com/nac3nt/Appoint/internal/db"
	"github.com/nac3nt/Appoint/internal/repository"
)

type JobService struct {
	Repo *repository.JobRepository
}

func NewJobService(repo *repository.JobRepository) *JobService {
	return &JobService{Repo: repo}
}

// CompleteElapsedAppointments finds Scheduled appointments whose interval
// has fully elapsed and marks them Completed.
func (s *JobService) CompleteElapsedAppointments() error {
	log.Println("Cron Job: Checking for appointments to mark as 'Completed'...")

	appointmentIDs, err := s.Repo.GetScheduledAppointmentIDsPastEnd()
	if err != nil {
		return fmt.Errorf("cron job: failed to get scheduled appointments past end time: %w", err)
	}

	if len(appointmentIDs) == 0 {
		log.Println("Cron Job: No scheduled appointments found past their end time.")
		return nil
	}

	log.Printf("Cron Job: Found %d appointments to mark as 'Completed'. IDs: %v", len(appointmentIDs), appointmentIDs)

	if err := s.Repo.UpdateAppointmentStatuses(appointmentIDs, db.AppointmentCompleted); err != nil {
		return fmt.Errorf("cron job: failed to update appointment statuses: %w", err)
	}

	log.Printf("Cron Job: Successfully updated %d appointments to 'Completed'.", len(appointmentIDs))
	return nil
}
