package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/nac3nt/Appoint/internal/db"
)

type NotificationRepository interface {
	Create(n *db.Notification) error
	GetByID(id int) (*db.Notification, error)
	ListByUser(userID int) ([]db.Notification, error)
	CountByUser(userID int) (int, error)
	Delete(id int) error
}

type notificationRepository struct {
	db *sql.DB
}

func NewNotificationRepository(database *sql.DB) NotificationRepository {
	return &notificationRepository{db: database}
}

func (r *notificationRepository) Create(n *db.Notification) error {
	query := `
		INSERT INTO notifications (user_id, title, message, doctor_name, patient_name, appointment_date, start_minute, end_minute, appointment_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at`
	return r.db.QueryRow(query,
		n.UserID, n.Title, n.Message, n.DoctorName, n.PatientName,
		n.Date, n.StartMinute, n.EndMinute, n.AppointmentID, n.CreatedAt,
	).Scan(&n.ID, &n.CreatedAt)
}

func (r *notificationRepository) GetByID(id int) (*db.Notification, error) {
	var n db.Notification
	query := `
		SELECT id, user_id, title, message, doctor_name, patient_name, appointment_date, start_minute, end_minute, appointment_id, created_at
		FROM notifications WHERE id = $1`
	err := r.db.QueryRow(query, id).Scan(
		&n.ID, &n.UserID, &n.Title, &n.Message, &n.DoctorName, &n.PatientName,
		&n.Date, &n.StartMinute, &n.EndMinute, &n.AppointmentID, &n.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error querying notification: %w", err)
	}
	return &n, nil
}

func (r *notificationRepository) ListByUser(userID int) ([]db.Notification, error) {
	query := `
		SELECT id, user_id, title, message, doctor_name, patient_name, appointment_date, start_minute, end_minute, appointment_id, created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC`
	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("error querying notifications: %w", err)
	}
	defer rows.Close()

	var notifications []db.Notification
	for rows.Next() {
		var n db.Notification
		if err := rows.Scan(
			&n.ID, &n.UserID, &n.Title, &n.Message, &n.DoctorName, &n.PatientName,
			&n.Date, &n.StartMinute, &n.EndMinute, &n.AppointmentID, &n.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("error scanning notification: %w", err)
		}
		notifications = append(notifications, n)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating notification rows: %w", err)
	}
	return notifications, nil
}

func (r *notificationRepository) CountByUser(userID int) (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM notifications WHERE user_id = $1`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting notifications: %w", err)
	}
	return count, nil
}

func (r *notificationRepository) Delete(id int) error {
	_, err := r.db.Exec(`DELETE FROM notifications WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting notification: %w", err)
	}
	return nil
}
