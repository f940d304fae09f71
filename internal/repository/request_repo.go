package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/nac3nt/Appoint/internal/db"
)

type RequestRepository interface {
	Create(r *db.AppointmentRequest) error
	GetByID(id int) (*db.AppointmentRequest, error)
	ListPending() ([]db.AppointmentRequest, error)
	ListByPatient(patientID int) ([]db.AppointmentRequest, error)
}

type requestRepository struct {
	db *sql.DB
}

func NewRequestRepository(database *sql.DB) RequestRepository {
	return &requestRepository{db: database}
}

func (r *requestRepository) Create(req *db.AppointmentRequest) error {
	query := `
		INSERT INTO appointment_requests (patient_id, request_date, start_minute, end_minute, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`
	return r.db.QueryRow(query,
		req.PatientID,
		req.Date,
		req.StartMinute,
		req.EndMinute,
		req.Status,
		req.CreatedAt,
	).Scan(&req.ID, &req.CreatedAt)
}

func (r *requestRepository) GetByID(id int) (*db.AppointmentRequest, error) {
	var req db.AppointmentRequest
	query := `
		SELECT id, patient_id, request_date, start_minute, end_minute, status, created_at
		FROM appointment_requests WHERE id = $1`
	err := r.db.QueryRow(query, id).Scan(
		&req.ID, &req.PatientID, &req.Date, &req.StartMinute, &req.EndMinute, &req.Status, &req.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error querying appointment request: %w", err)
	}
	return &req, nil
}

// ListPending returns the triage queue, oldest-scheduled first.
func (r *requestRepository) ListPending() ([]db.AppointmentRequest, error) {
	query := `
		SELECT id, patient_id, request_date, start_minute, end_minute, status, created_at
		FROM appointment_requests
		WHERE status = $1
		ORDER BY request_date, start_minute`
	return r.queryRequests(query, db.RequestPending)
}

func (r *requestRepository) ListByPatient(patientID int) ([]db.AppointmentRequest, error) {
	query := `
		SELECT id, patient_id, request_date, start_minute, end_minute, status, created_at
		FROM appointment_requests
		WHERE patient_id = $1
		ORDER BY request_date, start_minute`
	return r.queryRequests(query, patientID)
}

func (r *requestRepository) queryRequests(query string, args ...interface{}) ([]db.AppointmentRequest, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying appointment requests: %w", err)
	}
	defer rows.Close()

	var requests []db.AppointmentRequest
	for rows.Next() {
		var req db.AppointmentRequest
		if err := rows.Scan(&req.ID, &req.PatientID, &req.Date, &req.StartMinute, &req.EndMinute, &req.Status, &req.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning appointment request: %w", err)
		}
		requests = append(requests, req)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating request rows: %w", err)
	}
	return requests, nil
}
