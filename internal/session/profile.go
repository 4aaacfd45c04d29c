package session

import (
	"context"
	"log"

	"github.com/jonathan/job-assessor/internal/identity"
	"github.com/jonathan/job-assessor/internal/types"
)

// AddProfile appends a new profile, makes it active and persists. The
// returned copy is the profile opened for editing.
func (s *Session) AddProfile(ctx context.Context) (*types.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	added := identity.AddProfile(&s.account.Identity)
	if err := s.saveLocked(ctx); err != nil {
		return nil, err
	}
	copied := *added
	return &copied, nil
}

// RemoveProfile deletes a profile. Destructive; confirm must be set.
// Removing the last profile fails with identity.ErrLastProfile, and removing
// the active profile activates the first remaining one.
func (s *Session) RemoveProfile(ctx context.Context, profileID string, confirm bool) error {
	if !confirm {
		return ErrConfirmRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := identity.RemoveProfile(&s.account.Identity, profileID); err != nil {
		return err
	}
	return s.saveLocked(ctx)
}

// UpdateActiveProfile merges partial fields into the active profile and
// persists.
func (s *Session) UpdateActiveProfile(ctx context.Context, upd types.ProfileUpdate) (*types.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	identity.UpdateActiveProfile(&s.account.Identity, upd)
	if err := s.saveLocked(ctx); err != nil {
		return nil, err
	}
	copied := *s.account.Identity.ActiveProfile()
	return &copied, nil
}

// UpdateIdentity merges account-wide preference changes and persists.
func (s *Session) UpdateIdentity(ctx context.Context, upd types.IdentityUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := identity.ApplyUpdate(&s.account.Identity, upd); err != nil {
		return err
	}
	return s.saveLocked(ctx)
}

// ExtractProfileDetails sends a bio to the extraction service and merges the
// result into the active profile. When bioText is empty the active profile's
// stored bio is used. A service failure leaves state unchanged; the caller
// sees the error, nothing is persisted.
func (s *Session) ExtractProfileDetails(ctx context.Context, bioText string) (*types.Profile, error) {
	s.mu.Lock()
	active := s.account.Identity.ActiveProfile()
	if active == nil {
		s.mu.Unlock()
		return nil, ErrNoActiveProfile
	}
	activeID := active.ID
	if bioText == "" {
		bioText = active.BioText
	}
	s.mu.Unlock()

	details, err := s.adviser.ExtractProfileDetails(ctx, bioText)
	if err != nil {
		log.Printf("[session] profile extraction failed: %v", err)
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// The active profile may have changed while the call was in flight;
	// merge into the one the extraction was started for, if it survives.
	var target *types.Profile
	for i := range s.account.Identity.Profiles {
		if s.account.Identity.Profiles[i].ID == activeID {
			target = &s.account.Identity.Profiles[i]
			break
		}
	}
	if target == nil {
		return nil, identity.ErrProfileNotFound
	}

	identity.MergeExtractedDetails(target, details)
	if err := s.saveLocked(ctx); err != nil {
		return nil, err
	}
	copied := *target
	return &copied, nil
}
