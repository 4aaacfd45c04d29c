package session

import (
	"context"

	"github.com/jonathan/job-assessor/internal/history"
	"github.com/jonathan/job-assessor/internal/types"
)

// AnalyzeJob runs the full posting analysis and, on success, prepends the
// resulting lead to history, persists, and makes it current. On failure
// history is untouched. Requires an active profile.
func (s *Session) AnalyzeJob(ctx context.Context, rawText string) (*types.SavedJob, error) {
	s.mu.Lock()
	active := s.account.Identity.ActiveProfile()
	if active == nil {
		s.mu.Unlock()
		return nil, ErrNoActiveProfile
	}
	profileCopy := *active
	input := &types.JobInput{
		RawText:           rawText,
		ActiveProfile:     &profileCopy,
		PreviousProposals: s.account.Identity.PreviousProposals,
		PortfolioLinks:    s.account.Identity.PortfolioLinks,
		PreferredTone:     s.account.Identity.PreferredTone,
	}
	s.mu.Unlock()

	result, err := s.adviser.AnalyzeJob(ctx, input)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	job := history.NewSavedJob(rawText, result)
	s.account.History = history.Prepend(s.account.History, job)
	if err := s.saveLocked(ctx); err != nil {
		return nil, err
	}
	s.currentJobID = job.ID
	s.suggestion = ""
	return &job, nil
}

// Jobs returns the leads matching the given search term, newest first. An
// empty term returns the full history. Entries are copies.
func (s *Session) Jobs(search string) []types.SavedJob {
	s.mu.Lock()
	defer s.mu.Unlock()

	filtered := history.Filter(s.account.History, search)
	out := make([]types.SavedJob, len(filtered))
	copy(out, filtered)
	return out
}

// Job returns a copy of the lead with the given id.
func (s *Session) Job(id string) (*types.SavedJob, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	job := history.Find(s.account.History, id)
	if job == nil {
		return nil, ErrJobNotFound
	}
	copied := *job
	return &copied, nil
}

// CurrentJob returns a copy of the lead the session last worked on, or nil.
func (s *Session) CurrentJob() *types.SavedJob {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.currentJobID == "" {
		return nil
	}
	job := history.Find(s.account.History, s.currentJobID)
	if job == nil {
		return nil
	}
	copied := *job
	return &copied
}

// SelectCurrent makes the given lead the session's current job. Selecting a
// different lead drops any pending suggestion.
func (s *Session) SelectCurrent(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if history.Find(s.account.History, id) == nil {
		return ErrJobNotFound
	}
	if s.currentJobID != id {
		s.suggestion = ""
	}
	s.currentJobID = id
	return nil
}

// SetStatus moves a lead to the given pipeline status. Any status is
// reachable from any other.
func (s *Session) SetStatus(ctx context.Context, id string, status types.JobStatus) error {
	if !status.Valid() {
		return &types.InvalidEnumError{Field: "status", Value: string(status)}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	job := history.Find(s.account.History, id)
	if job == nil {
		return ErrJobNotFound
	}
	job.Status = status
	return s.saveLocked(ctx)
}

// UpdateJob replaces the matching history entry wholesale. An unknown id is
// a silent no-op and nothing is persisted.
func (s *Session) UpdateJob(ctx context.Context, job types.SavedJob) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !history.Update(s.account.History, job) {
		return nil
	}
	return s.saveLocked(ctx)
}

// DeleteJobs removes the given leads from history. Destructive; confirm must
// be set. Unknown ids are ignored. Deleting the current lead clears the
// current pointer and any pending suggestion; deleted ids leave the
// selection set.
func (s *Session) DeleteJobs(ctx context.Context, ids []string, confirm bool) error {
	if !confirm {
		return ErrConfirmRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.account.History = history.Delete(s.account.History, ids)
	for _, id := range ids {
		delete(s.selection, id)
		if id == s.currentJobID {
			s.currentJobID = ""
			s.suggestion = ""
		}
		if id == s.draftJobID {
			s.draftJobID, s.draftText = "", ""
			if s.draftTimer != nil {
				s.draftTimer.Stop()
				s.draftTimer = nil
			}
		}
	}
	return s.saveLocked(ctx)
}

// SetSearch records the history search term used by select-all semantics.
func (s *Session) SetSearch(term string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searchTerm = term
}

// ToggleSelect adds or removes a lead from the selection set.
func (s *Session) ToggleSelect(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.selection[id]; ok {
		delete(s.selection, id)
		return
	}
	s.selection[id] = struct{}{}
}

// SelectAll replaces the selection with exactly the leads visible under the
// current search term. With everything already selected it clears instead,
// matching the usual checkbox toggle.
func (s *Session) SelectAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	visible := history.Filter(s.account.History, s.searchTerm)
	if len(s.selection) == len(visible) && len(visible) > 0 {
		s.selection = make(map[string]struct{})
		return
	}
	s.selection = make(map[string]struct{}, len(visible))
	for _, job := range visible {
		s.selection[job.ID] = struct{}{}
	}
}

// Selected returns the selected lead ids in history order.
func (s *Session) Selected() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]string, 0, len(s.selection))
	for _, job := range s.account.History {
		if _, ok := s.selection[job.ID]; ok {
			out = append(out, job.ID)
		}
	}
	return out
}

// DeleteSelected removes every selected lead. Destructive; confirm must be
// set.
func (s *Session) DeleteSelected(ctx context.Context, confirm bool) error {
	return s.DeleteJobs(ctx, s.Selected(), confirm)
}
