package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestSyntheticEmail(t *testing.T) {
	testCases := []struct {
		name     string
		phone    string
		expected string
	}{
		{"международный формат", "+34600123456", "34600123456@phone.quorum.app"},
		{"с пробелами", "+34 600 12 34 56", "34600123456@phone.quorum.app"},
		{"только цифры", "600123456", "600123456@phone.quorum.app"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, SyntheticEmail(tc.phone))
		})
	}
}

func TestUser_CheckPassword(t *testing.T) {
	// Arrange
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	require.NoError(t, err)
	user := &User{Password: string(hash)}

	// Act & Assert
	assert.True(t, user.CheckPassword("secret123"))
	assert.False(t, user.CheckPassword("wrong"))
	assert.False(t, user.CheckPassword(""))
}

func TestUser_BeforeSave_HashesPlainPassword(t *testing.T) {
	// Arrange
	user := &User{Phone: "+34600123456", Password: "plain-password"}

	// Act
	err := user.BeforeSave(nil)

	// Assert
	require.NoError(t, err)
	assert.NotEqual(t, "plain-password", user.Password, "пароль должен быть захеширован")
	assert.True(t, user.CheckPassword("plain-password"))
}

func TestUser_BeforeSave_DoesNotRehash(t *testing.T) {
	// Arrange
	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.DefaultCost)
	require.NoError(t, err)
	user := &User{Password: string(hash)}

	// Act
	err = user.BeforeSave(nil)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, string(hash), user.Password, "bcrypt-хеш не должен хешироваться повторно")
}

func TestUser_AffiliationFor(t *testing.T) {
	user := &User{PartyID: 2, TeamID: 5}
	assert.Equal(t, uint(2), user.AffiliationFor(ModulePolitics))
	assert.Equal(t, uint(5), user.AffiliationFor(ModuleFootball))
}

func TestComment_CanBeDeletedBy(t *testing.T) {
	comment := &Comment{ID: 1, UserID: 42}

	assert.True(t, comment.CanBeDeletedBy(42, false), "автор может удалить свой комментарий")
	assert.True(t, comment.CanBeDeletedBy(7, true), "админ может удалить любой комментарий")
	assert.False(t, comment.CanBeDeletedBy(7, false), "чужой пользователь удалить не может")
}
