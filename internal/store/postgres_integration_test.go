//go:build integration
// +build integration

package store

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/job-assessor/internal/types"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		t.Skip("DATABASE_URL not set, skipping integration test")
	}

	ctx := context.Background()
	db, err := Connect(ctx, databaseURL)
	require.NoError(t, err)
	require.NoError(t, db.Migrate(ctx))
	return db
}

func TestIntegration_AccountLifecycle(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()

	username := "it-" + uuid.New().String()
	acct := &types.Account{
		Username:     username,
		PasswordHash: "$2a$12$test",
		Identity: types.Identity{
			Profiles:        []types.Profile{{ID: "main", Label: types.DefaultProfileLabel, Skills: []string{}}},
			ActiveProfileID: "main",
			PreferredTone:   types.ToneProfessional,
		},
	}
	require.NoError(t, db.CreateAccount(ctx, acct))

	err := db.CreateAccount(ctx, acct)
	assert.ErrorIs(t, err, ErrDuplicateUsername)

	loaded, err := db.GetAccount(ctx, username)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "$2a$12$test", loaded.PasswordHash)
	assert.Equal(t, types.ToneProfessional, loaded.Identity.PreferredTone)
	assert.NotNil(t, loaded.History)

	// Whole-record overwrite.
	loaded.History = []types.SavedJob{{ID: "j1", JobTitle: "Go dev", Status: types.StatusLead}}
	require.NoError(t, db.SaveAccount(ctx, loaded))

	again, err := db.GetAccount(ctx, username)
	require.NoError(t, err)
	require.Len(t, again.History, 1)

	missing, err := db.GetAccount(ctx, "no-such-"+uuid.New().String())
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestIntegration_SessionPointer(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()

	username := "it-" + uuid.New().String()
	require.NoError(t, db.CreateAccount(ctx, &types.Account{
		Username: username,
		Identity: types.Identity{
			Profiles:        []types.Profile{{ID: "main", Skills: []string{}}},
			ActiveProfileID: "main",
		},
	}))

	require.NoError(t, db.SetCurrentUsername(ctx, username))
	current, err := db.GetCurrentUsername(ctx)
	require.NoError(t, err)
	assert.Equal(t, username, current)

	require.NoError(t, db.ClearCurrentUsername(ctx))
	current, err = db.GetCurrentUsername(ctx)
	require.NoError(t, err)
	assert.Equal(t, "", current)
}
