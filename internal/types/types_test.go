package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobStatusValid(t *testing.T) {
	for _, s := range []JobStatus{StatusLead, StatusApplied, StatusInterviewing, StatusHired, StatusDeclined} {
		assert.True(t, s.Valid(), string(s))
	}
	assert.False(t, JobStatus("archived").Valid())
	assert.False(t, JobStatus("").Valid())
}

func TestProposalToneValid(t *testing.T) {
	for _, tone := range []ProposalTone{ToneBold, ToneProfessional, ToneFriendly, ToneMinimalist, ToneDetailed, ToneLikeMyself} {
		assert.True(t, tone.Valid(), string(tone))
	}
	assert.False(t, ProposalTone("sarcastic").Valid())
}

func TestActiveProfile(t *testing.T) {
	tests := []struct {
		name     string
		identity Identity
		wantID   string
		wantNil  bool
	}{
		{
			name: "pointer resolves",
			identity: Identity{
				Profiles:        []Profile{{ID: "a"}, {ID: "b"}},
				ActiveProfileID: "b",
			},
			wantID: "b",
		},
		{
			name: "dangling pointer falls back to first",
			identity: Identity{
				Profiles:        []Profile{{ID: "a"}, {ID: "b"}},
				ActiveProfileID: "gone",
			},
			wantID: "a",
		},
		{
			name:     "no profiles",
			identity: Identity{},
			wantNil:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.identity.ActiveProfile()
			if tt.wantNil {
				assert.Nil(t, p)
				return
			}
			require.NotNil(t, p)
			assert.Equal(t, tt.wantID, p.ID)
		})
	}
}

func TestAccountJSONExcludesPasswordHash(t *testing.T) {
	acct := &Account{
		Username:     "alice",
		PasswordHash: "$2a$12$secret",
	}
	data, err := json.Marshal(acct)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "secret")

	view, err := json.Marshal(acct.View())
	require.NoError(t, err)
	assert.NotContains(t, string(view), "secret")
}

func TestAnalysisResultUnmarshal(t *testing.T) {
	raw := `{
		"apply_recommendation": "maybe_apply",
		"confidence": 0.72,
		"opportunity_score": 61,
		"job_title": "Senior React Developer",
		"red_flags": [{"title": "Vague scope", "severity": "medium", "explanation": "No deliverables listed"}],
		"green_flags": [{"title": "Payment verified", "importance": "high", "explanation": "Long spend history"}],
		"detailed_report": "Decent lead overall.",
		"opinion": "Worth a short proposal.",
		"proposal": {"cover_letter": "Hi there, saw your posting...", "proposed_budget": 1500},
		"analytics": {
			"flag_counts": {"red": 1, "green": 1},
			"risk_factors": [{"factor": "budget", "score": 40, "notes": "hourly unstated"}],
			"skill_match": [{"skill": "React", "match_score": 90, "status": "expert"}],
			"client_metrics": {"responsiveness": 70, "generosity": 55, "clarity": 62}
		},
		"structured_reasons": ["skills align", "budget unclear"]
	}`

	var result AnalysisResult
	require.NoError(t, json.Unmarshal([]byte(raw), &result))

	assert.Equal(t, RecommendMaybe, result.ApplyRecommendation)
	assert.True(t, result.ApplyRecommendation.Valid())
	assert.InDelta(t, 0.72, result.Confidence, 1e-9)
	assert.Equal(t, "Senior React Developer", result.JobTitle)
	assert.Len(t, result.RedFlags, 1)
	assert.Equal(t, 1, result.Analytics.FlagCounts.Red)
	require.Len(t, result.Analytics.SkillMatch, 1)
	assert.Equal(t, "expert", result.Analytics.SkillMatch[0].Status)
	assert.Equal(t, "Hi there, saw your posting...", result.CoverLetter())
	require.NotNil(t, result.Proposal.ProposedBudget)
	assert.Equal(t, 1500.0, *result.Proposal.ProposedBudget)
	assert.Empty(t, result.MissingInfo)
}

func TestCoverLetterNilSafety(t *testing.T) {
	var nilResult *AnalysisResult
	assert.Equal(t, "", nilResult.CoverLetter())
	assert.Equal(t, "", (&AnalysisResult{}).CoverLetter())
}

func TestSignupRequestValidate(t *testing.T) {
	valid := SignupRequest{Username: "alice", Password: "longenough"}
	assert.NoError(t, valid.Validate())

	short := SignupRequest{Username: "alice", Password: "pw1"}
	assert.Error(t, short.Validate())

	missing := SignupRequest{Password: "longenough"}
	assert.Error(t, missing.Validate())
}
