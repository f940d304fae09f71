package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nac3nt/Appoint/internal/errors"
	"github.com/nac3nt/Appoint/internal/utils"
)

func TestRegister(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo())

	user, err := svc.Register("ana@clinic.test", "secret", "Ana", utils.RolePatient, "+15551234567")
	require.NoError(t, err)
	assert.Equal(t, "ana@clinic.test", user.Email)
	assert.Equal(t, utils.RolePatient, user.Role)
	assert.NotZero(t, user.ID)
}

func TestRegisterValidation(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo())

	_, err := svc.Register("", "secret", "Ana", utils.RolePatient, "")
	assert.True(t, errors.IsValidation(err))

	_, err = svc.Register("ana@clinic.test", "ab", "Ana", utils.RolePatient, "")
	assert.True(t, errors.IsValidation(err))

	_, err = svc.Register("ana@clinic.test", "secret", "Ana", "Janitor", "")
	assert.True(t, errors.IsValidation(err))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo())

	_, err := svc.Register("ana@clinic.test", "secret", "Ana", utils.RolePatient, "")
	require.NoError(t, err)

	_, err = svc.Register("ana@clinic.test", "other", "Ana B", utils.RoleDoctor, "")
	assert.True(t, errors.IsConflict(err))
}

func TestLogin(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	svc := NewAuthService(newFakeUserRepo())

	_, err := svc.Register("ana@clinic.test", "secret", "Ana", utils.RolePatient, "")
	require.NoError(t, err)

	resp, err := svc.Login("ana@clinic.test", "secret")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "ana@clinic.test", resp.User.Email)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	svc := NewAuthService(newFakeUserRepo())

	_, err := svc.Register("ana@clinic.test", "secret", "Ana", utils.RolePatient, "")
	require.NoError(t, err)

	_, err = svc.Login("ana@clinic.test", "wrong")
	assert.Error(t, err)

	_, err = svc.Login("nobody@clinic.test", "secret")
	assert.Error(t, err)
}
