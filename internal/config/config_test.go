package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeTempConfig(t, `{
		"port": 8080,
		"database_url": "postgres://localhost/assessor",
		"models": {"advanced": "gemini-2.5-pro"},
		"use_browser": true
	}`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "postgres://localhost/assessor", cfg.DatabaseURL)
	assert.Equal(t, "gemini-2.5-pro", cfg.Models["advanced"])
	assert.True(t, cfg.UseBrowser)
	assert.NoError(t, cfg.Validate())
}

func TestLoadErrors(t *testing.T) {
	_, err := Load("")
	assert.Error(t, err)

	_, err = Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	path := writeTempConfig(t, `{not json`)
	_, err = Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	bad := &Config{Port: 70000}
	assert.Error(t, bad.Validate())

	badTier := &Config{Models: map[string]string{"turbo": "x"}}
	assert.Error(t, badTier.Validate())

	ok := &Config{Port: 9000, Models: map[string]string{"lite": "gemini-2.5-flash-lite"}}
	assert.NoError(t, ok.Validate())
}

func TestPasswordHashAndVerify(t *testing.T) {
	t.Setenv("BCRYPT_COST", "10") // keep the test fast
	t.Setenv("PASSWORD_PEPPER", "")

	cfg, err := NewPasswordConfig()
	require.NoError(t, err)

	hash, err := cfg.HashPassword("correct horse battery")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery", hash)

	assert.True(t, cfg.VerifyPassword("correct horse battery", hash))
	assert.False(t, cfg.VerifyPassword("wrong", hash))
}

func TestPasswordConfigValidation(t *testing.T) {
	t.Setenv("BCRYPT_COST", "99")
	_, err := NewPasswordConfig()
	assert.Error(t, err)

	t.Setenv("BCRYPT_COST", "not-a-number")
	_, err = NewPasswordConfig()
	assert.Error(t, err)
}

func TestJWTConfig(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("JWT_EXPIRATION_HOURS", "")

	cfg, err := NewJWTConfig()
	require.NoError(t, err)
	assert.Equal(t, 24, cfg.ExpirationHours)

	t.Setenv("JWT_EXPIRATION_HOURS", "0")
	_, err = NewJWTConfig()
	assert.Error(t, err)

	t.Setenv("JWT_SECRET", "")
	_, err = NewJWTConfig()
	assert.Error(t, err)
}
