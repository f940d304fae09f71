package entities

import (
	"time"

	"github.com/nac3nt/Appoint/internal/db"
)

type AvailabilityResponse struct {
	ID        int       `json:"id"`
	DoctorID  int       `json:"doctor_id"`
	Date      string    `json:"available_date"`
	StartTime string    `json:"start_time"`
	EndTime   string    `json:"end_time"`
	CreatedAt time.Time `json:"created_at"`
}

func FromAvailability(w db.DoctorAvailability) AvailabilityResponse {
	return AvailabilityResponse{
		ID:        w.ID,
		DoctorID:  w.DoctorID,
		Date:      w.Date.Format("2006-01-02"),
		StartTime: Minutes(w.StartMinute).String(),
		EndTime:   Minutes(w.EndMinute).String(),
		CreatedAt: w.CreatedAt,
	}
}

type RequestResponse struct {
	ID        int       `json:"id"`
	PatientID int       `json:"patient_id"`
	Date      string    `json:"request_date"`
	StartTime string    `json:"start_time"`
	EndTime   string    `json:"end_time"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

func FromRequest(r db.AppointmentRequest) RequestResponse {
	return RequestResponse{
		ID:        r.ID,
		PatientID: r.PatientID,
		Date:      r.Date.Format("2006-01-02"),
		StartTime: Minutes(r.StartMinute).String(),
		EndTime:   Minutes(r.EndMinute).String(),
		Status:    r.Status,
		CreatedAt: r.CreatedAt,
	}
}

type AppointmentResponse struct {
	ID        int       `json:"id"`
	Code      string    `json:"code"`
	RequestID int       `json:"request_id"`
	PatientID int       `json:"patient_id"`
	DoctorID  int       `json:"doctor_id"`
	Date      string    `json:"appointment_date"`
	StartTime string    `json:"start_time"`
	EndTime   string    `json:"end_time"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

func FromAppointment(a db.Appointment) AppointmentResponse {
	return AppointmentResponse{
		ID:        a.ID,
		Code:      a.Code,
		RequestID: a.RequestID,
		PatientID: a.PatientID,
		DoctorID:  a.DoctorID,
		Date:      a.Date.Format("2006-01-02"),
		StartTime: Minutes(a.StartMinute).String(),
		EndTime:   Minutes(a.EndMinute).String(),
		Status:    a.Status,
		CreatedAt: a.CreatedAt,
	}
}

type UserResponse struct {
	ID        int       `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func FromUser(u db.User) UserResponse {
	return UserResponse{ID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role, CreatedAt: u.CreatedAt}
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type NotificationResponse struct {
	ID            int       `json:"id"`
	Title         string    `json:"title"`
	Message       string    `json:"message"`
	DoctorName    string    `json:"doctor_name,omitempty"`
	PatientName   string    `json:"patient_name,omitempty"`
	Date          string    `json:"appointment_date"`
	StartTime     string    `json:"start_time"`
	EndTime       string    `json:"end_time"`
	AppointmentID int       `json:"appointment_id"`
	CreatedAt     time.Time `json:"created_at"`
}

func FromNotification(n db.Notification) NotificationResponse {
	return NotificationResponse{
		ID:            n.ID,
		Title:         n.Title,
		Message:       n.Message,
		DoctorName:    n.DoctorName,
		PatientName:   n.PatientName,
		Date:          n.Date.Format("2006-01-02"),
		StartTime:     Minutes(n.StartMinute).String(),
		EndTime:       Minutes(n.EndMinute).String(),
		AppointmentID: n.AppointmentID,
		CreatedAt:     n.CreatedAt,
	}
}
