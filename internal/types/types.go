// Package types defines the domain model shared across the job assessor:
// accounts, identities, saved leads and the contracts exchanged with the
// generative service.
package types

import "time"

// JobStatus is the recruiting-funnel stage of a saved lead. Any status is
// reachable from any other; the funnel order is conventional, not enforced.
type JobStatus string

// Pipeline statuses. StatusLead is the initial state of every lead.
const (
	StatusLead         JobStatus = "lead"
	StatusApplied      JobStatus = "applied"
	StatusInterviewing JobStatus = "interviewing"
	StatusHired        JobStatus = "hired"
	StatusDeclined     JobStatus = "declined"
)

// Valid reports whether s is one of the known pipeline statuses.
func (s JobStatus) Valid() bool {
	switch s {
	case StatusLead, StatusApplied, StatusInterviewing, StatusHired, StatusDeclined:
		return true
	}
	return false
}

// ProposalTone is a style directive for generated text. ToneLikeMyself is
// special: it instructs the model to mimic the account's stored writing
// samples instead of applying a fixed style.
type ProposalTone string

// Supported tones.
const (
	ToneBold         ProposalTone = "bold"
	ToneProfessional ProposalTone = "professional"
	ToneFriendly     ProposalTone = "friendly"
	ToneMinimalist   ProposalTone = "minimalist"
	ToneDetailed     ProposalTone = "detailed"
	ToneLikeMyself   ProposalTone = "like_myself"
)

// Valid reports whether t is one of the known tones.
func (t ProposalTone) Valid() bool {
	switch t {
	case ToneBold, ToneProfessional, ToneFriendly, ToneMinimalist, ToneDetailed, ToneLikeMyself:
		return true
	}
	return false
}

// PortfolioLink is a named URL the account attaches to analysis requests.
type PortfolioLink struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Profile is a named skill/bio context the user switches between when
// analyzing jobs. Skills behave as a set: inserts are deduplicated.
type Profile struct {
	ID              string   `json:"id"`
	Label           string   `json:"label"`
	ProfileName     string   `json:"profile_name,omitempty"`
	ProfileHeadline string   `json:"profile_headline,omitempty"`
	BioText         string   `json:"upwork_profile_text,omitempty"`
	Skills          []string `json:"your_profile_skills"`
	RatePreferences string   `json:"your_rate_preferences,omitempty"`
}

// Identity holds an account's profiles plus the account-wide preferences
// that feed every analysis request.
//
// Invariants: Profiles is never empty, and ActiveProfileID always references
// a profile present in Profiles.
type Identity struct {
	Profiles          []Profile       `json:"profiles"`
	ActiveProfileID   string          `json:"activeProfileId"`
	PreviousProposals string          `json:"previous_proposals,omitempty"`
	PortfolioLinks    []PortfolioLink `json:"portfolio_links"`
	PreferredTone     ProposalTone    `json:"preferred_tone"`
}

// ActiveProfile returns the profile referenced by ActiveProfileID, falling
// back to the first profile when the pointer is dangling. Returns nil only
// when the identity has no profiles at all.
func (id *Identity) ActiveProfile() *Profile {
	for i := range id.Profiles {
		if id.Profiles[i].ID == id.ActiveProfileID {
			return &id.Profiles[i]
		}
	}
	if len(id.Profiles) > 0 {
		return &id.Profiles[0]
	}
	return nil
}

// MessageRole identifies the author of a thread message.
type MessageRole string

// Thread roles.
const (
	RoleClient MessageRole = "client"
	RoleMe     MessageRole = "me"
)

// Message is one entry in a lead's conversation thread. Threads are
// append-only.
type Message struct {
	Role      MessageRole `json:"role"`
	Text      string      `json:"text"`
	Timestamp time.Time   `json:"timestamp"`
}

// SavedJob is one analyzed posting ("lead") and its pipeline state. The
// analysis payload is immutable once produced; status, thread and the edited
// proposal are mutable.
type SavedJob struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	JobTitle  string    `json:"jobTitle"`
	// ClientName defaults to "Client"; postings rarely carry a usable name.
	ClientName     string          `json:"clientName"`
	RawText        string          `json:"rawText"`
	Analysis       *AnalysisResult `json:"analysis"`
	Messages       []Message       `json:"messages"`
	Status         JobStatus       `json:"status"`
	EditedProposal string          `json:"editedProposal,omitempty"`
}

// Account is the root of the persisted state tree for one user. It owns its
// identity and history exclusively; nothing is shared across accounts.
type Account struct {
	Username     string     `json:"username"`
	PasswordHash string     `json:"-"`
	Identity     Identity   `json:"identity"`
	History      []SavedJob `json:"history"`
}

// DefaultLabel values used when profiles are created.
const (
	DefaultProfileLabel     = "General Profile"
	SpecializedProfileLabel = "Specialized Profile"
)

// DefaultClientName is used for new leads; the posting text rarely names the
// client and the original source hardcodes the same placeholder.
const DefaultClientName = "Client"
