package db

import "time"

// Request lifecycle. A request ends its life at Approved; the downstream
// lifecycle belongs to the appointment.
const (
	RequestPending  = "Pending"
	RequestApproved = "Approved"
)

// Appointment lifecycle.
const (
	AppointmentScheduled = "Scheduled"
	AppointmentCompleted = "Completed"
	AppointmentCancelled = "Cancelled"
)

type User struct {
	ID           int
	Email        string
	PasswordHash string
	Role         string
	Name         string
	Phone        string
	CreatedAt    time.Time
}

// DoctorAvailability is a single reachable window registered by a doctor.
// Windows for the same doctor and date may be adjacent; they are merged into
// coverage regions on read, never in storage.
type DoctorAvailability struct {
	ID          int
	DoctorID    int
	Date        time.Time
	StartMinute int
	EndMinute   int
	CreatedAt   time.Time
}

type AppointmentRequest struct {
	ID          int
	PatientID   int
	Date        time.Time
	StartMinute int
	EndMinute   int
	Status      string
	CreatedAt   time.Time
}

type Appointment struct {
	ID          int
	Code        string
	RequestID   int
	PatientID   int
	DoctorID    int
	Date        time.Time
	StartMinute int
	EndMinute   int
	Status      string
	CreatedAt   time.Time
}

type Notification struct {
	ID            int
	UserID        int
	Title         string
	Message       string
	DoctorName    string
	PatientName   string
	Date          time.Time
	StartMinute   int
	EndMinute     int
	AppointmentID int
	CreatedAt     time.Time
}
