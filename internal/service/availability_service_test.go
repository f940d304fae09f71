package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nac3nt/Appoint/internal/db"
	"github.com/nac3nt/Appoint/internal/entities"
	apperr "github.com/nac3nt/Appoint/internal/errors"
)

func testDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := entities.ParseDate(s)
	require.NoError(t, err)
	return d
}

func newAvailabilityFixture() (*AvailabilityService, *fakeAvailabilityRepo, *fakeAppointmentRepo, *fakeRequestRepo) {
	availabilityRepo := newFakeAvailabilityRepo()
	requestRepo := newFakeRequestRepo()
	appointmentRepo := newFakeAppointmentRepo(requestRepo)
	svc := NewAvailabilityService(availabilityRepo, appointmentRepo, NewScheduleLock())
	return svc, availabilityRepo, appointmentRepo, requestRepo
}

func TestAddWindow(t *testing.T) {
	svc, _, _, _ := newAvailabilityFixture()

	window, err := svc.AddWindow(1, "2026-03-10", "09:00", "12:00")
	require.NoError(t, err)
	assert.Equal(t, "2026-03-10", window.Date)
	assert.Equal(t, "09:00", window.StartTime)
	assert.Equal(t, "12:00", window.EndTime)
	assert.NotZero(t, window.ID)
}

func TestAddWindowRejectsOverlap(t *testing.T) {
	svc, _, _, _ := newAvailabilityFixture()

	_, err := svc.AddWindow(1, "2026-03-10", "09:00", "12:00")
	require.NoError(t, err)

	_, err = svc.AddWindow(1, "2026-03-10", "11:00", "13:00")
	assert.True(t, apperr.IsConflict(err), "overlapping window must be rejected")

	// Another doctor is unaffected by the first doctor's windows.
	_, err = svc.AddWindow(2, "2026-03-10", "11:00", "13:00")
	assert.NoError(t, err)

	// Same doctor, different date.
	_, err = svc.AddWindow(1, "2026-03-11", "11:00", "13:00")
	assert.NoError(t, err)
}

func TestAddWindowAllowsTouchingEndpoints(t *testing.T) {
	svc, _, _, _ := newAvailabilityFixture()

	_, err := svc.AddWindow(1, "2026-03-10", "09:00", "12:00")
	require.NoError(t, err)

	_, err = svc.AddWindow(1, "2026-03-10", "12:00", "14:00")
	assert.NoError(t, err, "a window starting where another ends is not an overlap")
}

func TestAddWindowValidation(t *testing.T) {
	svc, _, _, _ := newAvailabilityFixture()

	_, err := svc.AddWindow(1, "2026-03-10", "12:00", "09:00")
	assert.True(t, apperr.IsValidation(err))

	_, err = svc.AddWindow(1, "not-a-date", "09:00", "12:00")
	assert.True(t, apperr.IsValidation(err))
}

func TestRemoveWindow(t *testing.T) {
	svc, _, _, _ := newAvailabilityFixture()

	window, err := svc.AddWindow(1, "2026-03-10", "09:00", "12:00")
	require.NoError(t, err)

	require.NoError(t, svc.RemoveWindow(1, window.ID))

	// Once removed, the slot can be re-added.
	_, err = svc.AddWindow(1, "2026-03-10", "09:00", "12:00")
	assert.NoError(t, err)
}

func TestRemoveWindowNotFound(t *testing.T) {
	svc, _, _, _ := newAvailabilityFixture()

	err := svc.RemoveWindow(1, 42)
	assert.True(t, apperr.IsNotFound(err))
}

func TestRemoveWindowForbiddenForOtherDoctor(t *testing.T) {
	svc, _, _, _ := newAvailabilityFixture()

	window, err := svc.AddWindow(1, "2026-03-10", "09:00", "12:00")
	require.NoError(t, err)

	err = svc.RemoveWindow(2, window.ID)
	assert.True(t, apperr.IsForbidden(err), "another doctor must not delete the window")
}

func TestRemoveWindowWithBookedAppointment(t *testing.T) {
	svc, _, appointmentRepo, requestRepo := newAvailabilityFixture()

	window, err := svc.AddWindow(1, "2026-03-10", "09:00", "12:00")
	require.NoError(t, err)

	request := &db.AppointmentRequest{
		PatientID:   7,
		Date:        testDate(t, "2026-03-10"),
		StartMinute: 600,
		EndMinute:   660,
		Status:      db.RequestPending,
		CreatedAt:   time.Now().UTC(),
	}
	require.NoError(t, requestRepo.Create(request))
	_, err = appointmentRepo.AssignApprove(request, 1, "code-1")
	require.NoError(t, err)

	err = svc.RemoveWindow(1, window.ID)
	assert.True(t, apperr.IsConflict(err), "a window with a booked appointment cannot be withdrawn")
}

func TestMergeWindows(t *testing.T) {
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	w := func(id, start, end int) db.DoctorAvailability {
		return db.DoctorAvailability{ID: id, DoctorID: 1, Date: date, StartMinute: start, EndMinute: end}
	}

	t.Run("adjacent windows merge into one region", func(t *testing.T) {
		regions := MergeWindows([]db.DoctorAvailability{w(1, 540, 600), w(2, 600, 660)})
		require.Len(t, regions, 1)
		assert.Equal(t, 1, regions[0].WindowID)
		assert.Equal(t, entities.Minutes(540), regions[0].Interval.Start)
		assert.Equal(t, entities.Minutes(660), regions[0].Interval.End)
	})

	t.Run("gap splits regions", func(t *testing.T) {
		regions := MergeWindows([]db.DoctorAvailability{w(1, 540, 600), w(2, 660, 720)})
		require.Len(t, regions, 2)
		assert.Equal(t, 1, regions[0].WindowID)
		assert.Equal(t, 2, regions[1].WindowID)
	})

	t.Run("insertion order does not matter", func(t *testing.T) {
		forward := MergeWindows([]db.DoctorAvailability{w(1, 540, 600), w(2, 600, 660), w(3, 720, 780)})
		backward := MergeWindows([]db.DoctorAvailability{w(3, 720, 780), w(2, 600, 660), w(1, 540, 600)})
		assert.Equal(t, forward, backward)
	})

	t.Run("merging merged regions is a no-op", func(t *testing.T) {
		once := MergeWindows([]db.DoctorAvailability{w(1, 540, 600), w(2, 600, 660)})
		asWindows := make([]db.DoctorAvailability, 0, len(once))
		for _, region := range once {
			asWindows = append(asWindows, w(region.WindowID, int(region.Interval.Start), int(region.Interval.End)))
		}
		assert.Equal(t, once, MergeWindows(asWindows))
	})

	t.Run("contained window does not extend the region", func(t *testing.T) {
		regions := MergeWindows([]db.DoctorAvailability{w(1, 540, 720), w(2, 600, 660)})
		require.Len(t, regions, 1)
		assert.Equal(t, entities.Minutes(720), regions[0].Interval.End)
	})

	t.Run("lowest id wins on equal starts", func(t *testing.T) {
		regions := MergeWindows([]db.DoctorAvailability{w(5, 540, 600), w(2, 540, 660)})
		require.Len(t, regions, 1)
		assert.Equal(t, 2, regions[0].WindowID)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Nil(t, MergeWindows(nil))
	})
}

func TestCoveringWindowID(t *testing.T) {
	svc, _, _, _ := newAvailabilityFixture()

	first, err := svc.AddWindow(1, "2026-03-10", "09:00", "10:00")
	require.NoError(t, err)
	_, err = svc.AddWindow(1, "2026-03-10", "10:00", "11:00")
	require.NoError(t, err)

	// The request spans both windows; the merged region covers it.
	requested := entities.IntervalOf(testDate(t, "2026-03-10"), 570, 630)
	windowID, ok, err := svc.CoveringWindowID(1, requested)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, first.ID, windowID)

	// Outside any region.
	_, ok, err = svc.CoveringWindowID(1, entities.IntervalOf(testDate(t, "2026-03-10"), 720, 780))
	require.NoError(t, err)
	assert.False(t, ok)
}
