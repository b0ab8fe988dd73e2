package service

import (
	"testing"

	"media-uploader/backend/common"
	"media-uploader/backend/model"

	"github.com/stretchr/testify/assert"
)

func init() {
	common.JWTSecret = "test-jwt-secret-key-for-unit-tests"
}

func TestGenerateToken(t *testing.T) {
	user := &model.User{Id: 1, Username: "testuser"}

	token, err := GenerateToken(user)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
}

func TestValidateToken_ValidToken(t *testing.T) {
	user := &model.User{Id: 42, Username: "alice"}

	token, err := GenerateToken(user)
	assert.NoError(t, err)

	claims, err := ValidateToken(token)
	assert.NoError(t, err)
	assert.NotNil(t, claims)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "media-uploader", claims.Issuer)
}

func TestValidateToken_InvalidToken(t *testing.T) {
	claims, err := ValidateToken("invalid-token-string")
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestValidateToken_TamperedToken(t *testing.T) {
	user := &model.User{Id: 1, Username: "testuser"}

	token, err := GenerateToken(user)
	assert.NoError(t, err)

	claims, err := ValidateToken(token + "tampered")
	assert.Error(t, err)
	assert.Nil(t, claims)
}
