package session

import (
	"context"
	"log"
	"time"

	"github.com/jonathan/job-assessor/internal/history"
	"github.com/jonathan/job-assessor/internal/types"
)

// EditDraft records an in-progress edit to a lead's proposal draft. Writes
// are coalesced: the draft is persisted only after the idle window elapses
// with no further edits, so typing does not produce a store write per
// keystroke. Switching to a different lead flushes the pending draft first.
func (s *Session) EditDraft(jobID, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if history.Find(s.account.History, jobID) == nil {
		return ErrJobNotFound
	}

	if s.draftJobID != "" && s.draftJobID != jobID {
		s.applyDraftLocked(s.draftJobID, s.draftText)
		if err := s.saveLocked(context.Background()); err != nil {
			log.Printf("[session] draft flush failed: %v", err)
		}
	}

	s.draftJobID, s.draftText = jobID, text
	if s.draftTimer != nil {
		s.draftTimer.Stop()
	}
	s.draftTimer = time.AfterFunc(s.draftDelay, s.flushDraft)
	return nil
}

// flushDraft runs on the debounce timer.
func (s *Session) flushDraft() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.draftJobID == "" {
		return
	}
	s.applyDraftLocked(s.draftJobID, s.draftText)
	s.draftJobID, s.draftText = "", ""
	s.draftTimer = nil

	if err := s.saveLocked(context.Background()); err != nil {
		log.Printf("[session] draft persist failed: %v", err)
	}
}

// applyDraftLocked writes the draft text onto the lead. The lead may have
// been deleted since the edit; that is a no-op. Callers hold s.mu.
func (s *Session) applyDraftLocked(jobID, text string) {
	if job := history.Find(s.account.History, jobID); job != nil {
		job.EditedProposal = text
	}
}

// SaveDraft replaces a lead's proposal draft and persists immediately, with
// no debounce. A pending debounced edit for the same lead is discarded.
func (s *Session) SaveDraft(ctx context.Context, jobID, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	job := history.Find(s.account.History, jobID)
	if job == nil {
		return ErrJobNotFound
	}
	s.dropPendingDraftLocked(jobID)
	job.EditedProposal = text
	return s.saveLocked(ctx)
}

// RegenerateProposal asks the service for a fresh cover letter in the given
// tone and, on success, replaces the lead's draft and persists immediately,
// bypassing the debounce. On failure the draft is unchanged. An empty tone
// falls back to the account's preferred tone.
func (s *Session) RegenerateProposal(ctx context.Context, jobID string, tone types.ProposalTone) (string, error) {
	s.mu.Lock()
	job := history.Find(s.account.History, jobID)
	if job == nil {
		s.mu.Unlock()
		return "", ErrJobNotFound
	}
	if tone == "" {
		tone = s.account.Identity.PreferredTone
	}
	var bio string
	if active := s.account.Identity.ActiveProfile(); active != nil {
		bio = active.BioText
	}
	samples := s.account.Identity.PreviousProposals
	jobCopy := *job
	s.mu.Unlock()

	letter, err := s.adviser.RegenerateProposal(ctx, &jobCopy, tone, bio, samples)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	job = history.Find(s.account.History, jobID)
	if job == nil {
		// Deleted while the call was in flight; drop the result.
		return "", ErrJobNotFound
	}
	s.dropPendingDraftLocked(jobID)
	job.EditedProposal = letter
	if err := s.saveLocked(ctx); err != nil {
		return "", err
	}
	return letter, nil
}

// dropPendingDraftLocked discards a pending debounced edit for the lead.
// Callers hold s.mu.
func (s *Session) dropPendingDraftLocked(jobID string) {
	if s.draftJobID != jobID {
		return
	}
	s.draftJobID, s.draftText = "", ""
	if s.draftTimer != nil {
		s.draftTimer.Stop()
		s.draftTimer = nil
	}
}
