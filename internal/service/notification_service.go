package service

import (
	"fmt"
	"log"
	"time"

	"github.com/nac3nt/Appoint/internal/db"
	"github.com/nac3nt/Appoint/internal/entities"
	apperr "github.com/nac3nt/Appoint/internal/errors"
	"github.com/nac3nt/Appoint/internal/repository"
)

// NotificationService persists in-app notifications and triggers the
// external email/SMS fan-out after a confirmed assignment.
type NotificationService struct {
	notificationRepo repository.NotificationRepository
	userRepo         repository.UserRepository
	sender           *SenderService
}

func NewNotificationService(notificationRepo repository.NotificationRepository, userRepo repository.UserRepository, sender *SenderService) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		sender:           sender,
	}
}

// AppointmentConfirmed creates one notification row for the patient and one
// for the doctor, then hands off to the external senders. It runs after the
// assignment has committed; failures here are logged and never undo the
// booking.
func (s *NotificationService) AppointmentConfirmed(appointment db.Appointment) {
	patient, err := s.userRepo.GetByID(appointment.PatientID)
	if err != nil || patient == nil {
		log.Printf("Notification skipped for appointment %d: patient %d not found (%v)", appointment.ID, appointment.PatientID, err)
		return
	}
	doctor, err := s.userRepo.GetByID(appointment.DoctorID)
	if err != nil || doctor == nil {
		log.Printf("Notification skipped for appointment %d: doctor %d not found (%v)", appointment.ID, appointment.DoctorID, err)
		return
	}

	patientNotification := &db.Notification{
		UserID:        appointment.PatientID,
		Title:         "Appointment Confirmed",
		Message:       "Your appointment has been confirmed!",
		DoctorName:    doctor.Name,
		Date:          appointment.Date,
		StartMinute:   appointment.StartMinute,
		EndMinute:     appointment.EndMinute,
		AppointmentID: appointment.ID,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.notificationRepo.Create(patientNotification); err != nil {
		log.Printf("Failed to create patient notification for appointment %d: %v", appointment.ID, err)
	}

	doctorNotification := &db.Notification{
		UserID:        appointment.DoctorID,
		Title:         "New Appointment",
		Message:       "You have a new appointment!",
		PatientName:   patient.Name,
		Date:          appointment.Date,
		StartMinute:   appointment.StartMinute,
		EndMinute:     appointment.EndMinute,
		AppointmentID: appointment.ID,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.notificationRepo.Create(doctorNotification); err != nil {
		log.Printf("Failed to create doctor notification for appointment %d: %v", appointment.ID, err)
	}

	if s.sender != nil {
		s.sender.SendConfirmationEmail(patient.Email, patient.Name, doctor.Name, appointment)
		if patient.Phone != "" {
			s.sender.SendConfirmationSMS(patient.Phone, doctor.Name, appointment)
		}
	}

	log.Printf("Created notifications for appointment %d", appointment.ID)
}

func (s *NotificationService) ListByUser(userID int) ([]entities.NotificationResponse, error) {
	notifications, err := s.notificationRepo.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("error listing notifications: %w", err)
	}
	responses := make([]entities.NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		responses = append(responses, entities.FromNotification(n))
	}
	return responses, nil
}

func (s *NotificationService) CountByUser(userID int) (int, error) {
	count, err := s.notificationRepo.CountByUser(userID)
	if err != nil {
		return 0, fmt.Errorf("error counting notifications: %w", err)
	}
	return count, nil
}

func (s *NotificationService) Delete(notificationID, userID int) error {
	notification, err := s.notificationRepo.GetByID(notificationID)
	if err != nil {
		return fmt.Errorf("error loading notification: %w", err)
	}
	if notification == nil {
		return apperr.NewNotFound("notification not found")
	}
	if notification.UserID != userID {
		return apperr.NewForbidden("you are not authorized to delete this notification")
	}
	if err := s.notificationRepo.Delete(notificationID); err != nil {
		return fmt.Errorf("error deleting notification: %w", err)
	}
	return nil
}
