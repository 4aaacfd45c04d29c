package types

// SignupRequest is the request to create a new account.
type SignupRequest struct {
	Username string `json:"username" validate:"required,min=1,max=64"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginRequest is the login request.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AccountView is the account shape returned by the API: the full state tree
// minus the password hash.
type AccountView struct {
	Username string     `json:"username"`
	Identity Identity   `json:"identity"`
	History  []SavedJob `json:"history"`
}

// View converts an account to its API representation.
func (a *Account) View() *AccountView {
	if a == nil {
		return nil
	}
	return &AccountView{
		Username: a.Username,
		Identity: a.Identity,
		History:  a.History,
	}
}

// AuthResponse is returned by signup and login.
type AuthResponse struct {
	User  *AccountView `json:"user"`
	Token string       `json:"token"`
}

// ProfileUpdate is a partial update merged into the active profile. Nil
// fields are left untouched; Skills replaces the whole set (deduplicated).
type ProfileUpdate struct {
	Label           *string   `json:"label,omitempty"`
	ProfileName     *string   `json:"profile_name,omitempty"`
	ProfileHeadline *string   `json:"profile_headline,omitempty"`
	BioText         *string   `json:"upwork_profile_text,omitempty"`
	Skills          *[]string `json:"your_profile_skills,omitempty"`
	RatePreferences *string   `json:"your_rate_preferences,omitempty"`
}

// IdentityUpdate is a partial update of account-wide preferences.
type IdentityUpdate struct {
	ActiveProfileID   *string          `json:"activeProfileId,omitempty"`
	PreviousProposals *string          `json:"previous_proposals,omitempty"`
	PortfolioLinks    *[]PortfolioLink `json:"portfolio_links,omitempty"`
	PreferredTone     *ProposalTone    `json:"preferred_tone,omitempty"`
}

// ExtractRequest carries the bio text for profile extraction. When Bio is
// empty the active profile's stored bio is used.
type ExtractRequest struct {
	Bio string `json:"bio,omitempty"`
}

// AnalyzeRequest carries the raw posting text for analysis.
type AnalyzeRequest struct {
	RawText string `json:"raw_text" validate:"required,min=1"`
}

// StatusUpdateRequest sets a lead's pipeline status.
type StatusUpdateRequest struct {
	Status JobStatus `json:"status" validate:"required"`
}

// MessageRequest appends a message to a lead's thread.
type MessageRequest struct {
	Role MessageRole `json:"role" validate:"required,oneof=client me"`
	Text string      `json:"text" validate:"required,min=1"`
}

// ProposalUpdateRequest replaces a lead's edited proposal draft.
type ProposalUpdateRequest struct {
	Text string `json:"text"`
}

// RegenerateRequest asks for a fresh proposal in the given tone. An empty
// tone falls back to the account's preferred tone.
type RegenerateRequest struct {
	Tone ProposalTone `json:"tone,omitempty"`
}

// BulkDeleteRequest removes a set of leads. Confirm guards against
// accidental data loss; there is no undo.
type BulkDeleteRequest struct {
	IDs     []string `json:"ids" validate:"required,min=1"`
	Confirm bool     `json:"confirm"`
}
