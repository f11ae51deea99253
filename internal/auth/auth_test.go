package auth

import (
	"testing"

	"tradejournal_backend/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	cfg := &config.Config{}
	cfg.JWT.Secret = "unit-test-secret"
	cfg.JWT.TTL = 1
	config.AppConfig = cfg
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("password123")
	require.NoError(t, err)
	assert.NotEqual(t, "password123", hash)

	assert.True(t, CheckPasswordHash("password123", hash))
	assert.False(t, CheckPasswordHash("password124", hash))
	assert.False(t, CheckPasswordHash("", hash))
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("password123"))
	assert.Error(t, ValidatePassword("short"))
}

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken("user-1", "alice")
	require.NoError(t, err)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "user-1", claims.Subject)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	_, err := ParseToken("not.a.token")
	assert.Error(t, err)
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	token, err := GenerateToken("user-1", "alice")
	require.NoError(t, err)

	config.AppConfig.JWT.Secret = "different-secret"
	defer func() { config.AppConfig.JWT.Secret = "unit-test-secret" }()

	_, err = ParseToken(token)
	assert.Error(t, err)
}
