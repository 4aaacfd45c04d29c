package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jonathan/job-assessor/internal/types"
)

// DB is the Postgres-backed store.
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool and verifies it.
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool.
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// Migrate creates the two tables when they do not exist. The session table
// is constrained to a single row: there is exactly one "currently logged-in
// username" pointer, as in the original storage layout.
func (db *DB) Migrate(ctx context.Context) error {
	_, err := db.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS accounts (
			username      TEXT PRIMARY KEY,
			password_hash TEXT NOT NULL,
			record        JSONB NOT NULL,
			created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE TABLE IF NOT EXISTS app_session (
			singleton BOOLEAN PRIMARY KEY DEFAULT TRUE CHECK (singleton),
			username  TEXT NOT NULL REFERENCES accounts(username)
		);
	`)
	if err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return nil
}

// CreateAccount inserts a new account row.
func (db *DB) CreateAccount(ctx context.Context, acct *types.Account) error {
	recJSON, err := json.Marshal(recordOf(acct))
	if err != nil {
		return fmt.Errorf("failed to marshal account record: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO accounts (username, password_hash, record) VALUES ($1, $2, $3)`,
		acct.Username, acct.PasswordHash, recJSON,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return ErrDuplicateUsername
		}
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

// GetAccount loads the record for username, nil when absent.
func (db *DB) GetAccount(ctx context.Context, username string) (*types.Account, error) {
	var (
		passwordHash string
		recJSON      []byte
	)
	err := db.pool.QueryRow(ctx,
		`SELECT password_hash, record FROM accounts WHERE username = $1`,
		username,
	).Scan(&passwordHash, &recJSON)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	var rec record
	if err := json.Unmarshal(recJSON, &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal account record: %w", err)
	}

	return &types.Account{
		Username:     username,
		PasswordHash: passwordHash,
		Identity:     rec.Identity,
		History:      rec.History,
	}, nil
}

// SaveAccount overwrites the whole record. Last writer wins.
func (db *DB) SaveAccount(ctx context.Context, acct *types.Account) error {
	recJSON, err := json.Marshal(recordOf(acct))
	if err != nil {
		return fmt.Errorf("failed to marshal account record: %w", err)
	}

	tag, err := db.pool.Exec(ctx,
		`UPDATE accounts SET record = $1, updated_at = NOW() WHERE username = $2`,
		recJSON, acct.Username,
	)
	if err != nil {
		return fmt.Errorf("failed to save account: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrAccountNotFound
	}
	return nil
}

// SetCurrentUsername records the logged-in username in the singleton row.
func (db *DB) SetCurrentUsername(ctx context.Context, username string) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO app_session (singleton, username) VALUES (TRUE, $1)
		 ON CONFLICT (singleton) DO UPDATE SET username = $1`,
		username,
	)
	if err != nil {
		return fmt.Errorf("failed to set current username: %w", err)
	}
	return nil
}

// GetCurrentUsername returns the logged-in username, "" when none.
func (db *DB) GetCurrentUsername(ctx context.Context) (string, error) {
	var username string
	err := db.pool.QueryRow(ctx, `SELECT username FROM app_session WHERE singleton`).Scan(&username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("failed to get current username: %w", err)
	}
	return username, nil
}

// ClearCurrentUsername removes the logged-in pointer.
func (db *DB) ClearCurrentUsername(ctx context.Context) error {
	_, err := db.pool.Exec(ctx, `DELETE FROM app_session`)
	if err != nil {
		return fmt.Errorf("failed to clear current username: %w", err)
	}
	return nil
}
