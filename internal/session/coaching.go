package session

import (
	"context"
	"log"
	"time"

	"github.com/jonathan/job-assessor/internal/history"
	"github.com/jonathan/job-assessor/internal/types"
)

// AddClientMessage appends a client message to the lead's thread, persists,
// then asks the service for a follow-up suggestion over the full thread. The
// suggestion is held transiently until accepted or dismissed; a suggestion
// failure leaves the thread as persisted (message kept) and returns "" with
// no error, logged only.
func (s *Session) AddClientMessage(ctx context.Context, jobID, text string) (string, error) {
	s.mu.Lock()
	job := history.Find(s.account.History, jobID)
	if job == nil {
		s.mu.Unlock()
		return "", ErrJobNotFound
	}
	job.Messages = append(job.Messages, types.Message{
		Role:      types.RoleClient,
		Text:      text,
		Timestamp: time.Now().UTC(),
	})
	if err := s.saveLocked(ctx); err != nil {
		s.mu.Unlock()
		return "", err
	}
	s.currentJobID = jobID
	jobCopy := *job
	s.mu.Unlock()

	suggestion, err := s.adviser.SuggestFollowUp(ctx, &jobCopy)
	if err != nil {
		log.Printf("[session] follow-up suggestion failed: %v", err)
		return "", nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// The user may have moved on while the call was in flight; a stale
	// suggestion for a lead that is no longer current is dropped.
	if s.currentJobID != jobID || history.Find(s.account.History, jobID) == nil {
		return "", nil
	}
	s.suggestion = suggestion
	return suggestion, nil
}

// AddMyMessage appends a message authored by the user to the lead's thread
// and persists. No suggestion is requested.
func (s *Session) AddMyMessage(ctx context.Context, jobID, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	job := history.Find(s.account.History, jobID)
	if job == nil {
		return ErrJobNotFound
	}
	job.Messages = append(job.Messages, types.Message{
		Role:      types.RoleMe,
		Text:      text,
		Timestamp: time.Now().UTC(),
	})
	return s.saveLocked(ctx)
}

// SuggestFollowUp requests a follow-up suggestion for a lead's thread as it
// stands, without appending anything. The suggestion is returned and also
// held as the pending one so it can be accepted.
func (s *Session) SuggestFollowUp(ctx context.Context, jobID string) (string, error) {
	s.mu.Lock()
	job := history.Find(s.account.History, jobID)
	if job == nil {
		s.mu.Unlock()
		return "", ErrJobNotFound
	}
	s.currentJobID = jobID
	jobCopy := *job
	s.mu.Unlock()

	suggestion, err := s.adviser.SuggestFollowUp(ctx, &jobCopy)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.currentJobID == jobID {
		s.suggestion = suggestion
	}
	return suggestion, nil
}

// Suggestion returns the pending follow-up suggestion, "" when none.
func (s *Session) Suggestion() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.suggestion
}

// AcceptSuggestion appends the pending suggestion to the current lead's
// thread as a message from the user, persists, and clears it.
func (s *Session) AcceptSuggestion(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.suggestion == "" {
		return ErrNoSuggestion
	}
	job := history.Find(s.account.History, s.currentJobID)
	if job == nil {
		s.suggestion = ""
		return ErrJobNotFound
	}
	job.Messages = append(job.Messages, types.Message{
		Role:      types.RoleMe,
		Text:      s.suggestion,
		Timestamp: time.Now().UTC(),
	})
	if err := s.saveLocked(ctx); err != nil {
		return err
	}
	s.suggestion = ""
	return nil
}

// DismissSuggestion drops the pending suggestion without applying it.
func (s *Session) DismissSuggestion() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.suggestion = ""
}
