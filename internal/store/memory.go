package store

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/jonathan/job-assessor/internal/types"
)

// Memory is an in-memory Store used by tests and as a scratch backend. It
// copies records through JSON on the way in and out so callers cannot alias
// stored state, matching the serialize-on-write behavior of the durable
// backends.
type Memory struct {
	mu       sync.Mutex
	accounts map[string]memoryRow
	current  string
}

type memoryRow struct {
	passwordHash string
	recJSON      []byte
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{accounts: make(map[string]memoryRow)}
}

// CreateAccount inserts a new account, failing on duplicate usernames.
func (m *Memory) CreateAccount(_ context.Context, acct *types.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.accounts[acct.Username]; exists {
		return ErrDuplicateUsername
	}
	recJSON, err := json.Marshal(recordOf(acct))
	if err != nil {
		return err
	}
	m.accounts[acct.Username] = memoryRow{passwordHash: acct.PasswordHash, recJSON: recJSON}
	return nil
}

// GetAccount loads a copy of the record, nil when absent.
func (m *Memory) GetAccount(_ context.Context, username string) (*types.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	row, ok := m.accounts[username]
	if !ok {
		return nil, nil
	}
	var rec record
	if err := json.Unmarshal(row.recJSON, &rec); err != nil {
		return nil, err
	}
	return &types.Account{
		Username:     username,
		PasswordHash: row.passwordHash,
		Identity:     rec.Identity,
		History:      rec.History,
	}, nil
}

// SaveAccount overwrites the stored record.
func (m *Memory) SaveAccount(_ context.Context, acct *types.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	row, ok := m.accounts[acct.Username]
	if !ok {
		return ErrAccountNotFound
	}
	recJSON, err := json.Marshal(recordOf(acct))
	if err != nil {
		return err
	}
	row.recJSON = recJSON
	m.accounts[acct.Username] = row
	return nil
}

// SetCurrentUsername records the logged-in username.
func (m *Memory) SetCurrentUsername(_ context.Context, username string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = username
	return nil
}

// GetCurrentUsername returns the logged-in username, "" when none.
func (m *Memory) GetCurrentUsername(_ context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current, nil
}

// ClearCurrentUsername removes the logged-in pointer.
func (m *Memory) ClearCurrentUsername(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = ""
	return nil
}
