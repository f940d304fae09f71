package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/nac3nt/Appoint/internal/db"
)

type AvailabilityRepository interface {
	Create(w *db.DoctorAvailability) error
	GetByID(id int) (*db.DoctorAvailability, error)
	ListByDoctor(doctorID int) ([]db.DoctorAvailability, error)
	ListByDoctorAndDate(doctorID int, date time.Time) ([]db.DoctorAvailability, error)
	ListByDate(date time.Time) ([]db.DoctorAvailability, error)
	Delete(id int) error
	HasOverlapping(doctorID int, date time.Time, startMinute, endMinute int) (bool, error)
}

type availabilityRepository struct {
	db *sql.DB
}

func NewAvailabilityRepository(database *sql.DB) AvailabilityRepository {
	return &availabilityRepository{db: database}
}

func (r *availabilityRepository) Create(w *db.DoctorAvailability) error {
	query := `
		INSERT INTO doctor_availability (doctor_id, available_date, start_minute, end_minute, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`
	return r.db.QueryRow(query,
		w.DoctorID,
		w.Date,
		w.StartMinute,
		w.EndMinute,
		w.CreatedAt,
	).Scan(&w.ID, &w.CreatedAt)
}

func (r *availabilityRepository) GetByID(id int) (*db.DoctorAvailability, error) {
	var w db.DoctorAvailability
	query := `
		SELECT id, doctor_id, available_date, start_minute, end_minute, created_at
		FROM doctor_availability WHERE id = $1`
	err := r.db.QueryRow(query, id).Scan(
		&w.ID, &w.DoctorID, &w.Date, &w.StartMinute, &w.EndMinute, &w.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error querying availability: %w", err)
	}
	return &w, nil
}

func (r *availabilityRepository) ListByDoctor(doctorID int) ([]db.DoctorAvailability, error) {
	query := `
		SELECT id, doctor_id, available_date, start_minute, end_minute, created_at
		FROM doctor_availability
		WHERE doctor_id = $1
		ORDER BY available_date, start_minute`
	return r.queryWindows(query, doctorID)
}

func (r *availabilityRepository) ListByDoctorAndDate(doctorID int, date time.Time) ([]db.DoctorAvailability, error) {
	query := `
		SELECT id, doctor_id, available_date, start_minute, end_minute, created_at
		FROM doctor_availability
		WHERE doctor_id = $1 AND available_date = $2
		ORDER BY start_minute, id`
	return r.queryWindows(query, doctorID, date)
}

func (r *availabilityRepository) ListByDate(date time.Time) ([]db.DoctorAvailability, error) {
	query := `
		SELECT id, doctor_id, available_date, start_minute, end_minute, created_at
		FROM doctor_availability
		WHERE available_date = $1
		ORDER BY doctor_id, start_minute, id`
	return r.queryWindows(query, date)
}

func (r *availabilityRepository) queryWindows(query string, args ...interface{}) ([]db.DoctorAvailability, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying availability windows: %w", err)
	}
	defer rows.Close()

	var windows []db.DoctorAvailability
	for rows.Next() {
		var w db.DoctorAvailability
		if err := rows.Scan(&w.ID, &w.DoctorID, &w.Date, &w.StartMinute, &w.EndMinute, &w.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning availability window: %w", err)
		}
		windows = append(windows, w)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating availability rows: %w", err)
	}
	return windows, nil
}

func (r *availabilityRepository) Delete(id int) error {
	_, err := r.db.Exec(`DELETE FROM doctor_availability WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting availability: %w", err)
	}
	return nil
}

// HasOverlapping uses the strict half-open predicate: windows that merely
// touch at an endpoint do not count, so doctors can split a day into
// adjacent windows.
func (r *availabilityRepository) HasOverlapping(doctorID int, date time.Time, startMinute, endMinute int) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM doctor_availability
			WHERE doctor_id = $1
			  AND available_date = $2
			  AND start_minute < $4
			  AND end_minute > $3
		)`
	var exists bool
	err := r.db.QueryRow(query, doctorID, date, startMinute, endMinute).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking overlapping availability: %w", err)
	}
	return exists, nil
}
