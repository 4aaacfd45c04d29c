// Package session implements the logged-in working state of one account: the
// in-memory state tree, the current-lead pointers, the selection set and the
// transient follow-up suggestion. A Session is created on login or sign-up
// and destroyed on logout; every identity or history mutation writes the
// whole account record back through the store.
package session

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/jonathan/job-assessor/internal/config"
	"github.com/jonathan/job-assessor/internal/identity"
	"github.com/jonathan/job-assessor/internal/store"
	"github.com/jonathan/job-assessor/internal/types"
)

// Adviser is the slice of the generative service the session depends on.
// *advisor.Advisor satisfies it; tests substitute a scripted fake.
type Adviser interface {
	ExtractProfileDetails(ctx context.Context, bioText string) (*types.ProfileDetails, error)
	AnalyzeJob(ctx context.Context, input *types.JobInput) (*types.AnalysisResult, error)
	RegenerateProposal(ctx context.Context, job *types.SavedJob, tone types.ProposalTone, bio, samples string) (string, error)
	SuggestFollowUp(ctx context.Context, job *types.SavedJob) (string, error)
}

// defaultDraftDelay is the idle window over which draft edits are coalesced
// before being persisted.
const defaultDraftDelay = time.Second

// Manager opens sessions against a store. It owns the credential config and
// the adviser shared by all sessions.
type Manager struct {
	store      store.Store
	adviser    Adviser
	passwords  *config.PasswordConfig
	draftDelay time.Duration
}

// NewManager wires a session manager. A zero draftDelay selects the default
// one-second debounce window.
func NewManager(st store.Store, adviser Adviser, passwords *config.PasswordConfig, draftDelay time.Duration) *Manager {
	if draftDelay <= 0 {
		draftDelay = defaultDraftDelay
	}
	return &Manager{store: st, adviser: adviser, passwords: passwords, draftDelay: draftDelay}
}

// SignUp creates a new account with the default identity and empty history,
// marks it logged in, and returns its session. Fails with
// store.ErrDuplicateUsername when the username is taken.
func (m *Manager) SignUp(ctx context.Context, username, password string) (*Session, error) {
	hash, err := m.passwords.HashPassword(password)
	if err != nil {
		return nil, err
	}

	acct := &types.Account{
		Username:     username,
		PasswordHash: hash,
		Identity:     identity.Default(),
		History:      []types.SavedJob{},
	}
	if err := m.store.CreateAccount(ctx, acct); err != nil {
		return nil, err
	}
	if err := m.store.SetCurrentUsername(ctx, username); err != nil {
		return nil, err
	}
	return m.open(acct), nil
}

// Login verifies the credentials and returns a session for the account.
// Unknown usernames and wrong passwords both yield ErrInvalidCredentials.
func (m *Manager) Login(ctx context.Context, username, password string) (*Session, error) {
	acct, err := m.store.GetAccount(ctx, username)
	if err != nil {
		return nil, err
	}
	if acct == nil || !m.passwords.VerifyPassword(password, acct.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	if err := m.store.SetCurrentUsername(ctx, username); err != nil {
		return nil, err
	}
	return m.open(acct), nil
}

// Resume reopens a session for the durably recorded logged-in username.
// Returns nil with no error when nobody is logged in.
func (m *Manager) Resume(ctx context.Context) (*Session, error) {
	username, err := m.store.GetCurrentUsername(ctx)
	if err != nil {
		return nil, err
	}
	if username == "" {
		return nil, nil
	}
	acct, err := m.store.GetAccount(ctx, username)
	if err != nil {
		return nil, err
	}
	if acct == nil {
		// Dangling pointer; treat as logged out.
		return nil, nil
	}
	return m.open(acct), nil
}

// Open builds a session for an already-authenticated account, as the API
// server does after validating a bearer token.
func (m *Manager) Open(ctx context.Context, username string) (*Session, error) {
	acct, err := m.store.GetAccount(ctx, username)
	if err != nil {
		return nil, err
	}
	if acct == nil {
		return nil, store.ErrAccountNotFound
	}
	return m.open(acct), nil
}

func (m *Manager) open(acct *types.Account) *Session {
	return &Session{
		store:      m.store,
		adviser:    m.adviser,
		draftDelay: m.draftDelay,
		account:    acct,
		selection:  make(map[string]struct{}),
	}
}

// Session is the working state of one logged-in account. All methods are
// safe for concurrent use; mutations are serialized behind the mutex, so a
// late service response never clobbers state it no longer owns.
type Session struct {
	store      store.Store
	adviser    Adviser
	draftDelay time.Duration

	mu      sync.Mutex
	account *types.Account

	currentJobID string
	suggestion   string // transient, never persisted
	searchTerm   string
	selection    map[string]struct{}

	draftTimer *time.Timer
	draftJobID string
	draftText  string
}

// Username returns the logged-in username.
func (s *Session) Username() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.account.Username
}

// Account returns the account's API view (no password hash).
func (s *Session) Account() *types.AccountView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.account.View()
}

// Logout flushes any pending draft, clears the durable logged-in pointer and
// drops all in-memory session state. The account record itself is untouched
// beyond the draft flush.
func (s *Session) Logout(ctx context.Context) error {
	s.mu.Lock()
	if s.draftTimer != nil {
		s.draftTimer.Stop()
		s.draftTimer = nil
	}
	if s.draftJobID != "" {
		s.applyDraftLocked(s.draftJobID, s.draftText)
		if err := s.saveLocked(ctx); err != nil {
			log.Printf("[session] draft flush on logout failed: %v", err)
		}
		s.draftJobID, s.draftText = "", ""
	}
	s.currentJobID = ""
	s.suggestion = ""
	s.searchTerm = ""
	s.selection = make(map[string]struct{})
	s.mu.Unlock()

	return s.store.ClearCurrentUsername(ctx)
}

// saveLocked overwrites the whole account record. Callers hold s.mu.
func (s *Session) saveLocked(ctx context.Context) error {
	return s.store.SaveAccount(ctx, s.account)
}
