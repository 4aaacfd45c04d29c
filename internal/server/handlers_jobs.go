package server

import (
	"net/http"

	"github.com/jonathan/job-assessor/internal/types"
)

// handleAnalyze runs a posting through the analysis service and stores the
// resulting lead at the head of history.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		s.fail(w, err)
		return
	}
	var req types.AnalyzeRequest
	if err := s.decode(r, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	job, err := sess.AnalyzeJob(r.Context(), req.RawText)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, job)
}

// handleListJobs returns the history, optionally filtered by ?search=.
func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, sess.Jobs(r.URL.Query().Get("search")))
}

// handleGetJob returns one lead.
func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		s.fail(w, err)
		return
	}
	job, err := sess.Job(r.PathValue("id"))
	if err != nil {
		s.fail(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, job)
}

// handleSetStatus moves a lead to a new pipeline status.
func (s *Server) handleSetStatus(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		s.fail(w, err)
		return
	}
	var req types.StatusUpdateRequest
	if err := s.decode(r, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	id := r.PathValue("id")
	if err := sess.SetStatus(r.Context(), id, req.Status); err != nil {
		s.fail(w, err)
		return
	}
	job, err := sess.Job(id)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, job)
}

// handleBulkDelete removes a set of leads. The request must carry
// confirm=true; there is no undo.
func (s *Server) handleBulkDelete(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		s.fail(w, err)
		return
	}
	var req types.BulkDeleteRequest
	if err := s.decode(r, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := sess.DeleteJobs(r.Context(), req.IDs, req.Confirm); err != nil {
		s.fail(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, sess.Jobs(""))
}

// handleDeleteJob removes a single lead. Requires ?confirm=true.
func (s *Server) handleDeleteJob(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		s.fail(w, err)
		return
	}
	confirm := r.URL.Query().Get("confirm") == "true"
	if err := sess.DeleteJobs(r.Context(), []string{r.PathValue("id")}, confirm); err != nil {
		s.fail(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, sess.Jobs(""))
}

// messageResponse carries the updated lead plus the follow-up suggestion a
// client message triggered, when one was produced.
type messageResponse struct {
	Job        *types.SavedJob `json:"job"`
	Suggestion string          `json:"suggestion,omitempty"`
}

// handleAddMessage appends a message to a lead's thread. A client message
// also requests a follow-up suggestion; a suggestion failure still keeps the
// message.
func (s *Server) handleAddMessage(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		s.fail(w, err)
		return
	}
	var req types.MessageRequest
	if err := s.decode(r, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	id := r.PathValue("id")
	var suggestion string
	switch req.Role {
	case types.RoleClient:
		suggestion, err = sess.AddClientMessage(r.Context(), id, req.Text)
	case types.RoleMe:
		err = sess.AddMyMessage(r.Context(), id, req.Text)
	}
	if err != nil {
		s.fail(w, err)
		return
	}

	job, err := sess.Job(id)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, messageResponse{Job: job, Suggestion: suggestion})
}

// handleSuggest returns a follow-up suggestion for a lead's thread. The
// suggestion is returned, never stored; accepting it means posting it back
// as a me-message.
func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		s.fail(w, err)
		return
	}
	suggestion, err := sess.SuggestFollowUp(r.Context(), r.PathValue("id"))
	if err != nil {
		s.fail(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"suggestion": suggestion})
}

// handleSaveProposal replaces a lead's proposal draft. The interactive
// debounce is a client concern; the API persists immediately.
func (s *Server) handleSaveProposal(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		s.fail(w, err)
		return
	}
	var req types.ProposalUpdateRequest
	if err := s.decode(r, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	id := r.PathValue("id")
	if err := sess.SaveDraft(r.Context(), id, req.Text); err != nil {
		s.fail(w, err)
		return
	}
	job, err := sess.Job(id)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, job)
}

// handleRegenerate asks the service for a fresh cover letter and persists it
// as the lead's draft.
func (s *Server) handleRegenerate(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		s.fail(w, err)
		return
	}
	var req types.RegenerateRequest
	if err := s.decode(r, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	id := r.PathValue("id")
	if _, err := sess.RegenerateProposal(r.Context(), id, req.Tone); err != nil {
		s.fail(w, err)
		return
	}
	job, err := sess.Job(id)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, job)
}
