package advisor

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonathan/job-assessor/internal/llm"
	"github.com/jonathan/job-assessor/internal/prompts"
	"github.com/jonathan/job-assessor/internal/types"
)

// SuggestFollowUp asks for the next message to send in a lead's
// conversation, given the full thread so far. The suggestion is transient:
// callers hold it until the user accepts or dismisses it.
func (a *Advisor) SuggestFollowUp(ctx context.Context, job *types.SavedJob) (string, error) {
	system := prompts.MustGet("followup.json", "suggest-followup")
	prompt := fmt.Sprintf("Job: %s\n\nConversation:\n%s", job.JobTitle, renderThread(job.Messages))

	suggestion, err := a.client.GenerateContent(ctx, system, prompt, llm.TierStandard)
	if err != nil {
		return "", &APICallError{Message: "follow-up suggestion failed", Cause: err}
	}

	suggestion = strings.TrimSpace(stripBold(suggestion))
	if suggestion == "" {
		return "", &ParseError{Message: "empty follow-up response"}
	}
	return suggestion, nil
}
