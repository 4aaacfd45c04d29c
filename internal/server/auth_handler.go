package server

import (
	"net/http"

	"github.com/jonathan/job-assessor/internal/types"
)

// handleSignup creates an account and returns the account view plus a
// session token.
func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req types.SignupRequest
	if err := s.decode(r, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	sess, err := s.sessions.SignUp(r.Context(), req.Username, req.Password)
	if err != nil {
		s.fail(w, err)
		return
	}

	token, err := s.jwtService.GenerateToken(sess.Username())
	if err != nil {
		s.fail(w, err)
		return
	}

	s.jsonResponse(w, http.StatusCreated, types.AuthResponse{User: sess.Account(), Token: token})
}

// handleLogin verifies credentials and returns the account view plus a
// session token.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req types.LoginRequest
	if err := s.decode(r, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	sess, err := s.sessions.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		s.fail(w, err)
		return
	}

	token, err := s.jwtService.GenerateToken(sess.Username())
	if err != nil {
		s.fail(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, types.AuthResponse{User: sess.Account(), Token: token})
}

// handleLogout clears the durable logged-in pointer. The bearer token stays
// valid until it expires; logout is a state change, not a revocation.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		s.fail(w, err)
		return
	}
	if err := sess.Logout(r.Context()); err != nil {
		s.fail(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "logged out"})
}

// handleMe returns the authenticated account's full view.
func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, sess.Account())
}
