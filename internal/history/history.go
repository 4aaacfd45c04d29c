// Package history manipulates an account's ordered list of analyzed leads.
// The list is newest-first: every new lead is prepended. All operations work
// on plain slices; persistence is the caller's concern.
package history

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/job-assessor/internal/types"
)

// NewSavedJob builds a lead from a completed analysis. The entry starts in
// the lead status with an empty thread, and its editable draft is seeded from
// the drafted cover letter when the analysis produced one.
func NewSavedJob(rawText string, analysis *types.AnalysisResult) types.SavedJob {
	title := "Untitled Job"
	if analysis != nil && analysis.JobTitle != "" {
		title = analysis.JobTitle
	}
	return types.SavedJob{
		ID:             uuid.NewString(),
		Timestamp:      time.Now().UTC(),
		JobTitle:       title,
		ClientName:     types.DefaultClientName,
		RawText:        rawText,
		Analysis:       analysis,
		Messages:       []types.Message{},
		Status:         types.StatusLead,
		EditedProposal: analysis.CoverLetter(),
	}
}

// Prepend inserts job at the head of the list, newest first.
func Prepend(history []types.SavedJob, job types.SavedJob) []types.SavedJob {
	return append([]types.SavedJob{job}, history...)
}

// Find returns a pointer into history for the lead with the given id, or nil.
func Find(history []types.SavedJob, id string) *types.SavedJob {
	for i := range history {
		if history[i].ID == id {
			return &history[i]
		}
	}
	return nil
}

// Update replaces the entry matching job.ID in place. Unknown ids are a
// silent no-op; reported as false so callers can log it.
func Update(history []types.SavedJob, job types.SavedJob) bool {
	for i := range history {
		if history[i].ID == job.ID {
			history[i] = job
			return true
		}
	}
	return false
}

// Delete removes every lead whose id is in ids, preserving the relative
// order of the remainder.
func Delete(history []types.SavedJob, ids []string) []types.SavedJob {
	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}
	out := history[:0]
	for _, job := range history {
		if _, gone := drop[job.ID]; !gone {
			out = append(out, job)
		}
	}
	return out
}

// Filter returns the leads whose title or client name contains query,
// case-insensitively. An empty query returns the full list. This is a view
// over history, not a mutation; the returned slice shares backing entries.
func Filter(history []types.SavedJob, query string) []types.SavedJob {
	if query == "" {
		return history
	}
	q := strings.ToLower(query)
	out := make([]types.SavedJob, 0, len(history))
	for _, job := range history {
		if strings.Contains(strings.ToLower(job.JobTitle), q) ||
			strings.Contains(strings.ToLower(job.ClientName), q) {
			out = append(out, job)
		}
	}
	return out
}
