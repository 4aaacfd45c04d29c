package server

import (
	"net/http"

	"github.com/jonathan/job-assessor/internal/types"
)

// handleAddProfile appends a new profile and makes it active.
func (s *Server) handleAddProfile(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		s.fail(w, err)
		return
	}
	profile, err := sess.AddProfile(r.Context())
	if err != nil {
		s.fail(w, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, profile)
}

// handleRemoveProfile deletes a profile. Requires ?confirm=true; the last
// profile cannot be removed.
func (s *Server) handleRemoveProfile(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		s.fail(w, err)
		return
	}
	confirm := r.URL.Query().Get("confirm") == "true"
	if err := sess.RemoveProfile(r.Context(), r.PathValue("id"), confirm); err != nil {
		s.fail(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, sess.Account().Identity)
}

// handleUpdateActiveProfile merges partial fields into the active profile.
func (s *Server) handleUpdateActiveProfile(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		s.fail(w, err)
		return
	}
	var upd types.ProfileUpdate
	if err := s.decode(r, &upd); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	profile, err := sess.UpdateActiveProfile(r.Context(), upd)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, profile)
}

// handleSelectProfile switches the active profile.
func (s *Server) handleSelectProfile(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		s.fail(w, err)
		return
	}
	var req struct {
		ID string `json:"id"`
	}
	if err := s.decode(r, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := sess.UpdateIdentity(r.Context(), types.IdentityUpdate{ActiveProfileID: &req.ID}); err != nil {
		s.fail(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, sess.Account().Identity)
}

// handleExtractProfile runs profile extraction over the posted bio (or the
// stored one when the body carries none) and merges the result into the
// active profile.
func (s *Server) handleExtractProfile(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		s.fail(w, err)
		return
	}
	var req types.ExtractRequest
	if err := s.decode(r, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	profile, err := sess.ExtractProfileDetails(r.Context(), req.Bio)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, profile)
}

// handleUpdateIdentity merges account-wide preference changes.
func (s *Server) handleUpdateIdentity(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		s.fail(w, err)
		return
	}
	var upd types.IdentityUpdate
	if err := s.decode(r, &upd); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := sess.UpdateIdentity(r.Context(), upd); err != nil {
		s.fail(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, sess.Account().Identity)
}
