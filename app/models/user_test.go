package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUserHashesPassword(t *testing.T) {
	user, err := CreateUser("Asha Rao", "asha@example.com", "correct horse battery")
	require.NoError(t, err)

	assert.NotEqual(t, "correct horse battery", user.Password)
	assert.True(t, user.CheckPassword("correct horse battery"))
	assert.False(t, user.CheckPassword("wrong password"))
	assert.Equal(t, ROLE_CITIZEN, user.Role)
	assert.Equal(t, STATUS_ACTIVE, user.Status)
}

func TestCreateUserRejectsInvalidInput(t *testing.T) {
	_, err := CreateUser("", "asha@example.com", "password123")
	assert.Error(t, err)

	_, err = CreateUser("Asha Rao", "not-an-email", "password123")
	assert.Error(t, err)

	_, err = CreateUser("Asha Rao", "asha@example.com", "short")
	assert.Error(t, err)
}

func TestUserRoleHelpers(t *testing.T) {
	citizen := &User{Role: ROLE_CITIZEN, Status: STATUS_ACTIVE}
	assert.False(t, citizen.IsAuthority())
	assert.True(t, citizen.IsActive())

	authority := &User{Role: ROLE_AUTHORITY, Status: STATUS_DISABLED}
	assert.True(t, authority.IsAuthority())
	assert.False(t, authority.IsActive())
}
