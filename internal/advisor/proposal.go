package advisor

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonathan/job-assessor/internal/llm"
	"github.com/jonathan/job-assessor/internal/prompts"
	"github.com/jonathan/job-assessor/internal/types"
)

// maxDescriptionChars bounds how much of the posting goes into the
// regeneration prompt; the contract sends only the first ~1500 characters.
const maxDescriptionChars = 1500

// RegenerateProposal rewrites the cover letter for a saved lead in the
// requested tone. ToneLikeMyself mimics the provided writing samples
// instead of applying a fixed style. Returns the plain-text letter.
func (a *Advisor) RegenerateProposal(ctx context.Context, job *types.SavedJob, tone types.ProposalTone, bio, samples string) (string, error) {
	if tone == "" {
		tone = types.ToneProfessional
	}

	voiceBlock := "User Samples for Voice: " + orDefault(samples, "N/A")
	if tone == types.ToneLikeMyself {
		voiceBlock = "CRITICAL VOICE SAMPLES TO MIMIC:\n" +
			orDefault(samples, "No samples provided, use a professional human tone.")
	}

	template := prompts.MustGet("proposal.json", "regenerate-cover-letter")
	system := prompts.Format(template, map[string]string{
		"Tone":       string(tone),
		"Bio":        orDefault(bio, "Pro Freelancer"),
		"VoiceBlock": voiceBlock,
	})

	prompt := fmt.Sprintf("Job: %s\nJob Description: %s", job.JobTitle, truncateChars(job.RawText, maxDescriptionChars))

	letter, err := a.client.GenerateContent(ctx, system, prompt, llm.TierStandard)
	if err != nil {
		return "", &APICallError{Message: "proposal regeneration failed", Cause: err}
	}

	letter = strings.TrimSpace(stripBold(letter))
	if letter == "" {
		return "", &ParseError{Message: "empty proposal response"}
	}
	return letter, nil
}

// truncateChars cuts s to at most n characters without splitting a rune.
func truncateChars(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
