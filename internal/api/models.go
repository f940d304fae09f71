package api

// Auth
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	Phone    string `json:"phone,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Doctor availability
type CreateAvailabilityRequest struct {
	Date      string `json:"available_date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// Patient request
type CreateAppointmentRequest struct {
	Date      string `json:"request_date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// Admin assignment
type AssignAppointmentRequest struct {
	RequestID      int `json:"request_id"`
	DoctorID       int `json:"doctor_id"`
	AvailabilityID int `json:"availability_id"`
}
