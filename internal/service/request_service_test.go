package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nac3nt/Appoint/internal/db"
	apperr "github.com/nac3nt/Appoint/internal/errors"
)

func TestSubmit(t *testing.T) {
	svc := NewRequestService(newFakeRequestRepo())

	request, err := svc.Submit(7, "2026-03-10", "10:00", "11:00")
	require.NoError(t, err)
	assert.Equal(t, db.RequestPending, request.Status, "every submission starts Pending")
	assert.Equal(t, 7, request.PatientID)
	assert.Equal(t, "2026-03-10", request.Date)
	assert.Equal(t, "10:00", request.StartTime)
	assert.Equal(t, "11:00", request.EndTime)
	assert.NotZero(t, request.ID)
}

func TestSubmitDoesNotCheckConflicts(t *testing.T) {
	svc := NewRequestService(newFakeRequestRepo())

	// Two identical requests both queue; conflicts surface at assignment.
	_, err := svc.Submit(7, "2026-03-10", "10:00", "11:00")
	require.NoError(t, err)
	_, err = svc.Submit(8, "2026-03-10", "10:00", "11:00")
	assert.NoError(t, err)
}

func TestSubmitValidation(t *testing.T) {
	svc := NewRequestService(newFakeRequestRepo())

	_, err := svc.Submit(7, "2026-03-10", "11:00", "10:00")
	assert.True(t, apperr.IsValidation(err))

	_, err = svc.Submit(7, "2026-03-10", "10:00", "10:00")
	assert.True(t, apperr.IsValidation(err))

	_, err = svc.Submit(7, "03/10/2026", "10:00", "11:00")
	assert.True(t, apperr.IsValidation(err))
}

func TestListPendingOrder(t *testing.T) {
	repo := newFakeRequestRepo()
	svc := NewRequestService(repo)

	// Submitted out of order on purpose.
	_, err := svc.Submit(7, "2026-03-11", "09:00", "10:00")
	require.NoError(t, err)
	_, err = svc.Submit(8, "2026-03-10", "14:00", "15:00")
	require.NoError(t, err)
	_, err = svc.Submit(9, "2026-03-10", "09:00", "10:00")
	require.NoError(t, err)

	pending, err := svc.ListPending()
	require.NoError(t, err)
	require.Len(t, pending, 3)
	assert.Equal(t, 9, pending[0].PatientID)
	assert.Equal(t, 8, pending[1].PatientID)
	assert.Equal(t, 7, pending[2].PatientID)
}

func TestListPendingExcludesApproved(t *testing.T) {
	repo := newFakeRequestRepo()
	appointmentRepo := newFakeAppointmentRepo(repo)
	svc := NewRequestService(repo)

	first, err := svc.Submit(7, "2026-03-10", "09:00", "10:00")
	require.NoError(t, err)
	_, err = svc.Submit(8, "2026-03-10", "14:00", "15:00")
	require.NoError(t, err)

	stored, err := repo.GetByID(first.ID)
	require.NoError(t, err)
	_, err = appointmentRepo.AssignApprove(stored, 1, "code-1")
	require.NoError(t, err)

	pending, err := svc.ListPending()
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, 8, pending[0].PatientID)
}

func TestListByPatient(t *testing.T) {
	svc := NewRequestService(newFakeRequestRepo())

	_, err := svc.Submit(7, "2026-03-10", "09:00", "10:00")
	require.NoError(t, err)
	_, err = svc.Submit(8, "2026-03-10", "14:00", "15:00")
	require.NoError(t, err)

	mine, err := svc.ListByPatient(7)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, 7, mine[0].PatientID)
}
