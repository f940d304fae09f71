package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/nac3nt/Appoint/internal/db"
)

var (
	// ErrSlotTaken is returned when the doctor already has a Scheduled
	// appointment overlapping the requested interval.
	ErrSlotTaken = errors.New("doctor already has an appointment in this interval")

	// ErrRequestNotPending is returned when the request was already
	// approved, by this or another concurrent assignment.
	ErrRequestNotPending = errors.New("request is not pending")
)

type AppointmentRepository interface {
	HasConflict(doctorID int, date time.Time, startMinute, endMinute int) (bool, error)
	AssignApprove(request *db.AppointmentRequest, doctorID int, code string) (*db.Appointment, error)
	GetByID(id int) (*db.Appointment, error)
	ListByDoctor(doctorID int) ([]db.Appointment, error)
	ListByPatient(patientID int) ([]db.Appointment, error)
	ListAll() ([]db.Appointment, error)
}

type appointmentRepository struct {
	db *sql.DB
}

func NewAppointmentRepository(database *sql.DB) AppointmentRepository {
	return &appointmentRepository{db: database}
}

// HasConflict runs the strict half-open overlap test against every Scheduled
// appointment of the doctor on that date. Touching endpoints do not
// conflict, so back-to-back bookings are allowed.
func (r *appointmentRepository) HasConflict(doctorID int, date time.Time, startMinute, endMinute int) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM appointments
			WHERE doctor_id = $1
			  AND appointment_date = $2
			  AND status = $3
			  AND start_minute < $5
			  AND end_minute > $4
		)`
	var exists bool
	err := r.db.QueryRow(query, doctorID, date, db.AppointmentScheduled, startMinute, endMinute).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking appointment conflict: %w", err)
	}
	return exists, nil
}

// AssignApprove commits the assignment as one transaction: re-check the
// conflict, insert the appointment, flip the request to Approved. The UPDATE
// is guarded on the Pending status so a request can be fulfilled exactly
// once; the unique constraint on request_id backs that up at the storage
// layer.
func (r *appointmentRepository) AssignApprove(request *db.AppointmentRequest, doctorID int, code string) (*db.Appointment, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("error starting assignment transaction: %w", err)
	}
	defer tx.Rollback()

	var exists bool
	err = tx.QueryRow(`
		SELECT EXISTS(
			SELECT 1 FROM appointments
			WHERE doctor_id = $1
			  AND appointment_date = $2
			  AND status = $3
			  AND start_minute < $5
			  AND end_minute > $4
		)`, doctorID, request.Date, db.AppointmentScheduled, request.StartMinute, request.EndMinute).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("error re-checking conflict: %w", err)
	}
	if exists {
		return nil, ErrSlotTaken
	}

	appt := &db.Appointment{
		Code:        code,
		RequestID:   request.ID,
		PatientID:   request.PatientID,
		DoctorID:    doctorID,
		Date:        request.Date,
		StartMinute: request.StartMinute,
		EndMinute:   request.EndMinute,
		Status:      db.AppointmentScheduled,
		CreatedAt:   time.Now().UTC(),
	}
	err = tx.QueryRow(`
		INSERT INTO appointments (code, request_id, patient_id, doctor_id, appointment_date, start_minute, end_minute, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at`,
		appt.Code, appt.RequestID, appt.PatientID, appt.DoctorID,
		appt.Date, appt.StartMinute, appt.EndMinute, appt.Status, appt.CreatedAt,
	).Scan(&appt.ID, &appt.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, ErrRequestNotPending
		}
		return nil, fmt.Errorf("error inserting appointment: %w", err)
	}

	result, err := tx.Exec(`
		UPDATE appointment_requests SET status = $1
		WHERE id = $2 AND status = $3`,
		db.RequestApproved, request.ID, db.RequestPending)
	if err != nil {
		return nil, fmt.Errorf("error approving request: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("error reading rows affected: %w", err)
	}
	if affected == 0 {
		return nil, ErrRequestNotPending
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("error committing assignment: %w", err)
	}
	return appt, nil
}

func (r *appointmentRepository) GetByID(id int) (*db.Appointment, error) {
	var a db.Appointment
	query := `
		SELECT id, code, request_id, patient_id, doctor_id, appointment_date, start_minute, end_minute, status, created_at
		FROM appointments WHERE id = $1`
	err := r.db.QueryRow(query, id).Scan(
		&a.ID, &a.Code, &a.RequestID, &a.PatientID, &a.DoctorID,
		&a.Date, &a.StartMinute, &a.EndMinute, &a.Status, &a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error querying appointment: %w", err)
	}
	return &a, nil
}

func (r *appointmentRepository) ListByDoctor(doctorID int) ([]db.Appointment, error) {
	return r.queryAppointments(`
		SELECT id, code, request_id, patient_id, doctor_id, appointment_date, start_minute, end_minute, status, created_at
		FROM appointments
		WHERE doctor_id = $1
		ORDER BY appointment_date, start_minute`, doctorID)
}

func (r *appointmentRepository) ListByPatient(patientID int) ([]db.Appointment, error) {
	return r.queryAppointments(`
		SELECT id, code, request_id, patient_id, doctor_id, appointment_date, start_minute, end_minute, status, created_at
		FROM appointments
		WHERE patient_id = $1
		ORDER BY appointment_date, start_minute`, patientID)
}

func (r *appointmentRepository) ListAll() ([]db.Appointment, error) {
	return r.queryAppointments(`
		SELECT id, code, request_id, patient_id, doctor_id, appointment_date, start_minute, end_minute, status, created_at
		FROM appointments
		ORDER BY appointment_date, start_minute`)
}

func (r *appointmentRepository) queryAppointments(query string, args ...interface{}) ([]db.Appointment, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying appointments: %w", err)
	}
	defer rows.Close()

	var appointments []db.Appointment
	for rows.Next() {
		var a db.Appointment
		if err := rows.Scan(
			&a.ID, &a.Code, &a.RequestID, &a.PatientID, &a.DoctorID,
			&a.Date, &a.StartMinute, &a.EndMinute, &a.Status, &a.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("error scanning appointment: %w", err)
		}
		appointments = append(appointments, a)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating appointment rows: %w", err)
	}
	return appointments, nil
}
