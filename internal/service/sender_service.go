package service

import (
	"fmt"
	"log"

	"github.com/nac3nt/Appoint/internal/db"
	"github.com/nac3nt/Appoint/internal/entities"
)

// SenderService formats and dispatches confirmation messages to patients.
// Sends are fire-and-forget: failures are logged, the appointment stands.
type SenderService struct {
}

func NewSenderService() *SenderService {
	return &SenderService{}
}

func (s *SenderService) SendConfirmationEmail(toEmail, patientName, doctorName string, appointment db.Appointment) {
	subject := fmt.Sprintf("Your appointment is confirmed - Code: %s", appointment.Code)
	plainTextBody := fmt.Sprintf(
		"Hello %s,\n\nYour appointment has been confirmed.\n\n"+
			"Appointment details:\n"+
			"Code: %s\n"+
			"Doctor: %s\n"+
			"Date: %s\n"+
			"Time: %s - %s\n\n"+
			"Thank you for using Appoint.",
		patientName,
		appointment.Code,
		doctorName,
		appointment.Date.Format("02 Jan 2006"),
		entities.Minutes(appointment.StartMinute),
		entities.Minutes(appointment.EndMinute),
	)

	go func() {
		if err := SendEmailWithSendGrid(toEmail, patientName, subject, plainTextBody); err != nil {
			log.Printf("Failed to send confirmation email for appointment %s: %v", appointment.Code, err)
		}
	}()
}

func (s *SenderService) SendConfirmationSMS(toNumber, doctorName string, appointment db.Appointment) {
	message := fmt.Sprintf("Appoint: your appointment %s with Dr. %s is confirmed!\n%s %s-%s.\nMore details in your email.",
		appointment.Code,
		doctorName,
		appointment.Date.Format("02/01"),
		entities.Minutes(appointment.StartMinute),
		entities.Minutes(appointment.EndMinute),
	)

	go func() {
		if err := SendSMS(toNumber, message); err != nil {
			log.Printf("Appointment %s was booked, but the confirmation SMS to %s failed: %v", appointment.Code, toNumber, err)
		}
	}()
}
