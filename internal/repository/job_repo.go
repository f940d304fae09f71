package repository

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/lib/pq"

	"github.com/nac3nt/Appoint/internal/db"
)

type JobRepository struct {
	DB *sql.DB
}

func NewJobRepository(database *sql.DB) *JobRepository {
	return &JobRepository{DB: database}
}

// GetScheduledAppointmentIDsPastEnd finds Scheduled appointments whose
// interval has fully elapsed. Appointment times are wall-clock minutes on a
// calendar date, so the end instant is date + end_minute.
func (r *JobRepository) GetScheduledAppointmentIDsPastEnd() ([]int, error) {
	query := `
		SELECT id FROM appointments
		WHERE status = $1
		  AND appointment_date + make_interval(mins => end_minute) < NOW()`
	rows, err := r.DB.Query(query, db.AppointmentScheduled)
	if err != nil {
		return nil, fmt.Errorf("error querying elapsed appointments: %w", err)
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning appointment ID: %w", err)
		}
		ids = append(ids, id)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating rows: %w", err)
	}
	return ids, nil
}

func (r *JobRepository) UpdateAppointmentStatuses(ids []int, newStatus string) error {
	if len(ids) == 0 {
		return nil
	}
	result, err := r.DB.Exec(`UPDATE appointments SET status = $1 WHERE id = ANY($2)`, newStatus, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("error updating appointment statuses: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Printf("Could not get rows affected: %v", err)
	} else {
		log.Printf("Updated status for %d appointments to '%s'", rowsAffected, newStatus)
	}
	return nil
}
