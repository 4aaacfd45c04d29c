package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/job-assessor/internal/config"
)

func newTestJWTService() *JWTService {
	return NewJWTService(&config.JWTConfig{Secret: "test-secret-key", ExpirationHours: 1})
}

func TestGenerateAndValidateToken(t *testing.T) {
	svc := newTestJWTService()

	token, err := svc.GenerateToken("alice")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "alice", claims.GetUsername())
}

func TestValidateTokenFailures(t *testing.T) {
	svc := newTestJWTService()

	t.Run("empty token", func(t *testing.T) {
		_, err := svc.ValidateToken("")
		assert.Error(t, err)
	})

	t.Run("malformed token", func(t *testing.T) {
		_, err := svc.ValidateToken("not.a.token")
		assert.Error(t, err)
	})

	t.Run("wrong secret", func(t *testing.T) {
		token, err := svc.GenerateToken("alice")
		require.NoError(t, err)

		other := NewJWTService(&config.JWTConfig{Secret: "different-secret", ExpirationHours: 1})
		_, err = other.ValidateToken(token)
		assert.Error(t, err)
	})

	t.Run("expired token", func(t *testing.T) {
		expired := NewJWTService(&config.JWTConfig{Secret: "test-secret-key", ExpirationHours: -1})
		token, err := expired.GenerateToken("alice")
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		assert.Error(t, err)
	})
}

func TestAsTokenValidator(t *testing.T) {
	svc := newTestJWTService()
	token, err := svc.GenerateToken("bob")
	require.NoError(t, err)

	getter, err := svc.AsTokenValidator().ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "bob", getter.GetUsername())
}
