package service

import (
	"sync"
	"time"

	"github.com/nac3nt/Appoint/internal/db"
	"github.com/nac3nt/Appoint/internal/repository"
)

// In-memory repositories backing the service tests. They mirror the SQL
// semantics: half-open overlap predicates and a single-writer AssignApprove.

type fakeAvailabilityRepo struct {
	mu      sync.Mutex
	nextID  int
	windows map[int]db.DoctorAvailability
}

func newFakeAvailabilityRepo() *fakeAvailabilityRepo {
	return &fakeAvailabilityRepo{nextID: 1, windows: make(map[int]db.DoctorAvailability)}
}

func (f *fakeAvailabilityRepo) Create(w *db.DoctorAvailability) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	w.ID = f.nextID
	f.nextID++
	f.windows[w.ID] = *w
	return nil
}

func (f *fakeAvailabilityRepo) GetByID(id int) (*db.DoctorAvailability, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if w, ok := f.windows[id]; ok {
		copied := w
		return &copied, nil
	}
	return nil, nil
}

func (f *fakeAvailabilityRepo) ListByDoctor(doctorID int) ([]db.DoctorAvailability, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []db.DoctorAvailability
	for _, w := range f.windows {
		if w.DoctorID == doctorID {
			out = append(out, w)
		}
	}
	return out, nil
}

func (f *fakeAvailabilityRepo) ListByDoctorAndDate(doctorID int, date time.Time) ([]db.DoctorAvailability, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []db.DoctorAvailability
	for _, w := range f.windows {
		if w.DoctorID == doctorID && w.Date.Equal(date) {
			out = append(out, w)
		}
	}
	return out, nil
}

func (f *fakeAvailabilityRepo) ListByDate(date time.Time) ([]db.DoctorAvailability, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []db.DoctorAvailability
	for _, w := range f.windows {
		if w.Date.Equal(date) {
			out = append(out, w)
		}
	}
	return out, nil
}

func (f *fakeAvailabilityRepo) Delete(id int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.windows, id)
	return nil
}

func (f *fakeAvailabilityRepo) HasOverlapping(doctorID int, date time.Time, startMinute, endMinute int) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, w := range f.windows {
		if w.DoctorID == doctorID && w.Date.Equal(date) && w.StartMinute < endMinute && w.EndMinute > startMinute {
			return true, nil
		}
	}
	return false, nil
}

type fakeRequestRepo struct {
	mu       sync.Mutex
	nextID   int
	requests map[int]db.AppointmentRequest
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{nextID: 1, requests: make(map[int]db.AppointmentRequest)}
}

func (f *fakeRequestRepo) Create(r *db.AppointmentRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	r.ID = f.nextID
	f.nextID++
	f.requests[r.ID] = *r
	return nil
}

func (f *fakeRequestRepo) GetByID(id int) (*db.AppointmentRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if r, ok := f.requests[id]; ok {
		copied := r
		return &copied, nil
	}
	return nil, nil
}

func (f *fakeRequestRepo) ListPending() ([]db.AppointmentRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []db.AppointmentRequest
	for _, r := range f.requests {
		if r.Status == db.RequestPending {
			out = append(out, r)
		}
	}
	sortRequests(out)
	return out, nil
}

func (f *fakeRequestRepo) ListByPatient(patientID int) ([]db.AppointmentRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []db.AppointmentRequest
	for _, r := range f.requests {
		if r.PatientID == patientID {
			out = append(out, r)
		}
	}
	sortRequests(out)
	return out, nil
}

func sortRequests(requests []db.AppointmentRequest) {
	for i := 1; i < len(requests); i++ {
		for j := i; j > 0; j-- {
			a, b := requests[j-1], requests[j]
			if a.Date.Before(b.Date) || (a.Date.Equal(b.Date) && a.StartMinute <= b.StartMinute) {
				break
			}
			requests[j-1], requests[j] = b, a
		}
	}
}

// fakeAppointmentRepo keeps AssignApprove atomic under its own mutex so the
// concurrency tests exercise a store with transactional semantics.
type fakeAppointmentRepo struct {
	mu           sync.Mutex
	nextID       int
	appointments map[int]db.Appointment
	requests     *fakeRequestRepo
}

func newFakeAppointmentRepo(requests *fakeRequestRepo) *fakeAppointmentRepo {
	return &fakeAppointmentRepo{nextID: 1, appointments: make(map[int]db.Appointment), requests: requests}
}

func (f *fakeAppointmentRepo) HasConflict(doctorID int, date time.Time, startMinute, endMinute int) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hasConflictLocked(doctorID, date, startMinute, endMinute), nil
}

func (f *fakeAppointmentRepo) hasConflictLocked(doctorID int, date time.Time, startMinute, endMinute int) bool {
	for _, a := range f.appointments {
		if a.DoctorID == doctorID && a.Date.Equal(date) && a.Status == db.AppointmentScheduled &&
			a.StartMinute < endMinute && a.EndMinute > startMinute {
			return true
		}
	}
	return false
}

func (f *fakeAppointmentRepo) AssignApprove(request *db.AppointmentRequest, doctorID int, code string) (*db.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.hasConflictLocked(doctorID, request.Date, request.StartMinute, request.EndMinute) {
		return nil, repository.ErrSlotTaken
	}

	f.requests.mu.Lock()
	stored, ok := f.requests.requests[request.ID]
	if !ok || stored.Status != db.RequestPending {
		f.requests.mu.Unlock()
		return nil, repository.ErrRequestNotPending
	}
	stored.Status = db.RequestApproved
	f.requests.requests[request.ID] = stored
	f.requests.mu.Unlock()

	appt := db.Appointment{
		ID:          f.nextID,
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
	f.nextID++
	f.appointments[appt.ID] = appt
	return &appt, nil
}

func (f *fakeAppointmentRepo) GetByID(id int) (*db.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if a, ok := f.appointments[id]; ok {
		copied := a
		return &copied, nil
	}
	return nil, nil
}

func (f *fakeAppointmentRepo) ListByDoctor(doctorID int) ([]db.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []db.Appointment
	for _, a := range f.appointments {
		if a.DoctorID == doctorID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAppointmentRepo) ListByPatient(patientID int) ([]db.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []db.Appointment
	for _, a := range f.appointments {
		if a.PatientID == patientID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAppointmentRepo) ListAll() ([]db.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]db.Appointment, 0, len(f.appointments))
	for _, a := range f.appointments {
		out = append(out, a)
	}
	return out, nil
}

type fakeUserRepo struct {
	mu     sync.Mutex
	nextID int
	users  map[int]db.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{nextID: 1, users: make(map[int]db.User)}
}

func (f *fakeUserRepo) Create(u *db.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return repository.ErrEmailTaken
		}
	}
	u.ID = f.nextID
	f.nextID++
	f.users[u.ID] = *u
	return nil
}

func (f *fakeUserRepo) GetByEmail(email string) (*db.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			copied := u
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) GetByID(id int) (*db.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[id]; ok {
		copied := u
		return &copied, nil
	}
	return nil, nil
}

func (f *fakeUserRepo) ListAll() ([]db.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]db.User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeUserRepo) addDoctor(name string) int {
	u := &db.User{Email: name + "@clinic.test", Role: "Doctor", Name: name}
	_ = f.Create(u)
	return u.ID
}
