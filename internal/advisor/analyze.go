package advisor

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/jonathan/job-assessor/internal/llm"
	"github.com/jonathan/job-assessor/internal/prompts"
	"github.com/jonathan/job-assessor/internal/schemas"
	"github.com/jonathan/job-assessor/internal/types"
)

// AnalyzeJob runs the full posting analysis. The request carries the active
// profile, the account-wide voice samples, portfolio links and preferred
// tone alongside the verbatim posting text; the response is validated
// against the analysis schema before it is accepted.
func (a *Advisor) AnalyzeJob(ctx context.Context, input *types.JobInput) (*types.AnalysisResult, error) {
	system := buildAnalysisSystem(input)

	payload, err := json.Marshal(input)
	if err != nil {
		return nil, &APICallError{Message: "failed to encode analysis request", Cause: err}
	}
	prompt := "Job Analysis Request: " + string(payload)

	responseText, err := a.client.GenerateJSON(ctx, system, prompt, llm.TierAdvanced)
	if err != nil {
		return nil, &APICallError{Message: "job analysis failed", Cause: err}
	}

	if err := schemas.Validate(schemas.AnalysisResult, responseText); err != nil {
		return nil, &ParseError{Message: "analysis response does not match contract", Cause: err}
	}

	var result types.AnalysisResult
	if err := json.Unmarshal([]byte(responseText), &result); err != nil {
		return nil, &ParseError{Message: "failed to decode analysis response", Cause: err}
	}

	if result.Proposal != nil {
		result.Proposal.CoverLetter = stripBold(result.Proposal.CoverLetter)
	}

	return &result, nil
}

func buildAnalysisSystem(input *types.JobInput) string {
	tone := input.PreferredTone
	if tone == "" {
		tone = types.ToneProfessional
	}

	mimicRules := ""
	samplesBlock := ""
	if tone == types.ToneLikeMyself {
		mimicRules = "- MIMIC THE SAMPLES: Strictly follow the writing pattern, sequence, and vocabulary found in the provided Voice Samples.\n"
		samplesBlock = "USER SAMPLES TO MIMIC:\n" + orDefault(input.PreviousProposals, "N/A") + "\n\n"
	}

	var headline, bio, skills string
	if p := input.ActiveProfile; p != nil {
		headline = p.ProfileHeadline
		bio = p.BioText
		skills = strings.Join(p.Skills, ", ")
	}

	template := prompts.MustGet("analysis.json", "analyze-posting")
	return prompts.Format(template, map[string]string{
		"Tone":         string(tone),
		"MimicRules":   mimicRules,
		"SamplesBlock": samplesBlock,
		"Headline":     orDefault(headline, "N/A"),
		"Bio":          orDefault(bio, "N/A"),
		"Skills":       orDefault(skills, "N/A"),
	})
}
