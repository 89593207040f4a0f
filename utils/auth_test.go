package utils_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Rahul-624/FreshMart/models"
	"github.com/Rahul-624/FreshMart/utils"
)

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := utils.HashPassword("Str0ngPass")
	require.NoError(t, err)
	assert.NotEqual(t, "Str0ngPass", hash)

	assert.True(t, utils.CheckPassword("Str0ngPass", hash))
	assert.False(t, utils.CheckPassword("wrong", hash))
}

func TestAdminTokenRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	admin := &models.Admin{Model: gorm.Model{ID: 7}, Email: "staff@freshmart.test"}
	token, err := utils.GenerateAdminToken(admin)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	adminID, err := utils.ValidateAdminToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), adminID)
}

func TestValidateAdminTokenRejectsTampering(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	admin := &models.Admin{Model: gorm.Model{ID: 7}}
	token, err := utils.GenerateAdminToken(admin)
	require.NoError(t, err)

	_, err = utils.ValidateAdminToken(token + "x")
	assert.Error(t, err)

	t.Setenv("JWT_SECRET", "different-secret")
	_, err = utils.ValidateAdminToken(token)
	assert.Error(t, err, "a token signed with another secret must not validate")
}
