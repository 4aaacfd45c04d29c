package advisor

import (
	"context"
	"encoding/json"

	"github.com/jonathan/job-assessor/internal/llm"
	"github.com/jonathan/job-assessor/internal/prompts"
	"github.com/jonathan/job-assessor/internal/schemas"
	"github.com/jonathan/job-assessor/internal/types"
)

// ExtractProfileDetails asks the service to pull name, headline, skills and
// rate out of a free-text bio. All four fields are required in the response
// schema; empty values are acceptable when nothing could be inferred.
func (a *Advisor) ExtractProfileDetails(ctx context.Context, bioText string) (*types.ProfileDetails, error) {
	system := prompts.MustGet("extraction.json", "extract-profile-details")

	responseText, err := a.client.GenerateJSON(ctx, system, bioText, llm.TierStandard)
	if err != nil {
		return nil, &APICallError{Message: "profile extraction failed", Cause: err}
	}

	if err := schemas.Validate(schemas.ProfileDetails, responseText); err != nil {
		return nil, &ParseError{Message: "extraction response does not match contract", Cause: err}
	}

	var details types.ProfileDetails
	if err := json.Unmarshal([]byte(responseText), &details); err != nil {
		return nil, &ParseError{Message: "failed to decode extraction response", Cause: err}
	}

	return &details, nil
}
