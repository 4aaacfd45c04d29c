// Package identity manages an account's profiles and account-wide
// preferences. Every mutation preserves two invariants: the profile list is
// never empty, and the active pointer always references a present profile.
package identity

import (
	"errors"

	"github.com/google/uuid"

	"github.com/jonathan/job-assessor/internal/types"
)

// DefaultProfileID is the id of the profile every new account starts with.
const DefaultProfileID = "main"

var (
	// ErrLastProfile is returned when a removal would leave the account
	// with no profiles.
	ErrLastProfile = errors.New("cannot remove the last profile")

	// ErrProfileNotFound is returned when a referenced profile id does not
	// exist in the account.
	ErrProfileNotFound = errors.New("profile not found")
)

// Default builds the identity a fresh account starts with: a single general
// profile, no voice samples or links, professional tone.
func Default() types.Identity {
	return types.Identity{
		Profiles: []types.Profile{{
			ID:     DefaultProfileID,
			Label:  types.DefaultProfileLabel,
			Skills: []string{},
		}},
		ActiveProfileID: DefaultProfileID,
		PortfolioLinks:  []types.PortfolioLink{},
		PreferredTone:   types.ToneProfessional,
	}
}

// AddProfile appends a new empty profile and makes it active. The new
// profile is returned so callers can open it for editing.
func AddProfile(id *types.Identity) *types.Profile {
	profile := types.Profile{
		ID:     uuid.NewString(),
		Label:  types.SpecializedProfileLabel,
		Skills: []string{},
	}
	id.Profiles = append(id.Profiles, profile)
	id.ActiveProfileID = profile.ID
	return &id.Profiles[len(id.Profiles)-1]
}

// RemoveProfile deletes the profile with the given id. Removing the last
// profile is rejected. When the removed profile was active, the first
// remaining profile becomes active, by list order.
func RemoveProfile(id *types.Identity, profileID string) error {
	if len(id.Profiles) <= 1 {
		return ErrLastProfile
	}

	idx := -1
	for i := range id.Profiles {
		if id.Profiles[i].ID == profileID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return ErrProfileNotFound
	}

	id.Profiles = append(id.Profiles[:idx], id.Profiles[idx+1:]...)
	if id.ActiveProfileID == profileID {
		id.ActiveProfileID = id.Profiles[0].ID
	}
	return nil
}

// UpdateActiveProfile merges the non-nil fields of upd into the currently
// active profile. A replacement skill list is deduplicated.
func UpdateActiveProfile(id *types.Identity, upd types.ProfileUpdate) {
	profile := id.ActiveProfile()
	if profile == nil {
		return
	}
	if upd.Label != nil {
		profile.Label = *upd.Label
	}
	if upd.ProfileName != nil {
		profile.ProfileName = *upd.ProfileName
	}
	if upd.ProfileHeadline != nil {
		profile.ProfileHeadline = *upd.ProfileHeadline
	}
	if upd.BioText != nil {
		profile.BioText = *upd.BioText
	}
	if upd.Skills != nil {
		profile.Skills = dedupSkills(*upd.Skills)
	}
	if upd.RatePreferences != nil {
		profile.RatePreferences = *upd.RatePreferences
	}
}

// ApplyUpdate merges account-wide preference changes. An active profile id
// that does not reference an existing profile is rejected.
func ApplyUpdate(id *types.Identity, upd types.IdentityUpdate) error {
	if upd.ActiveProfileID != nil {
		found := false
		for i := range id.Profiles {
			if id.Profiles[i].ID == *upd.ActiveProfileID {
				found = true
				break
			}
		}
		if !found {
			return ErrProfileNotFound
		}
		id.ActiveProfileID = *upd.ActiveProfileID
	}
	if upd.PreviousProposals != nil {
		id.PreviousProposals = *upd.PreviousProposals
	}
	if upd.PortfolioLinks != nil {
		id.PortfolioLinks = *upd.PortfolioLinks
	}
	if upd.PreferredTone != nil {
		if !upd.PreferredTone.Valid() {
			return &types.InvalidEnumError{Field: "preferred_tone", Value: string(*upd.PreferredTone)}
		}
		id.PreferredTone = *upd.PreferredTone
	}
	return nil
}

// MergeExtractedDetails folds service-extracted details into a profile.
// Extracted skills are unioned into the existing set; name, headline and
// rate overwrite only when the extraction produced a value.
func MergeExtractedDetails(profile *types.Profile, details *types.ProfileDetails) {
	if profile == nil || details == nil {
		return
	}
	if details.Name != "" {
		profile.ProfileName = details.Name
	}
	if details.Headline != "" {
		profile.ProfileHeadline = details.Headline
	}
	if details.Rate != "" {
		profile.RatePreferences = details.Rate
	}
	profile.Skills = dedupSkills(append(profile.Skills, details.Skills...))
}

// dedupSkills preserves first-seen order.
func dedupSkills(skills []string) []string {
	seen := make(map[string]struct{}, len(skills))
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
