// Package store provides the durable account store. The persisted layout
// mirrors the original application's storage: one keyed mapping from
// username to the full account record, and one pointer holding the
// currently logged-in username. Account writes are whole-record overwrites
// with last-writer-wins semantics; there is no merge and no version check.
package store

import (
	"context"
	"errors"

	"github.com/jonathan/job-assessor/internal/types"
)

// ErrDuplicateUsername is returned by CreateAccount when the username is
// already taken.
var ErrDuplicateUsername = errors.New("username already exists")

// ErrAccountNotFound is returned by SaveAccount when the account row does
// not exist.
var ErrAccountNotFound = errors.New("account not found")

// Store is the durable account store. Implementations: Postgres (DB) for
// real deployments, Memory for tests.
type Store interface {
	// CreateAccount persists a new account, failing with
	// ErrDuplicateUsername when the key exists.
	CreateAccount(ctx context.Context, acct *types.Account) error
	// GetAccount loads the full record, returning nil (and no error) when
	// the username is unknown.
	GetAccount(ctx context.Context, username string) (*types.Account, error)
	// SaveAccount overwrites the whole record for the account's username.
	SaveAccount(ctx context.Context, acct *types.Account) error

	// SetCurrentUsername records the logged-in username.
	SetCurrentUsername(ctx context.Context, username string) error
	// GetCurrentUsername returns the logged-in username, "" when none.
	GetCurrentUsername(ctx context.Context) (string, error)
	// ClearCurrentUsername removes the logged-in pointer. The account
	// record itself is untouched.
	ClearCurrentUsername(ctx context.Context) error
}

// record is the JSON document persisted per account: the state tree minus
// the username key and the password hash, which live in their own columns.
type record struct {
	Identity types.Identity   `json:"identity"`
	History  []types.SavedJob `json:"history"`
}

func recordOf(acct *types.Account) record {
	history := acct.History
	if history == nil {
		history = []types.SavedJob{}
	}
	return record{Identity: acct.Identity, History: history}
}
