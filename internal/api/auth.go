package api

import (
	"net/http"
)

// handleLogin exchanges form-encoded credentials for a bearer token.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	f, err := newFormReader(r)
	if err != nil {
		s.errorJSON(w, r, err)
		return
	}

	if !f.has("username") || !f.has("password") {
		s.errorJSON(w, r, invalid("username and password are required"))
		return
	}

	token, err := s.gate.Login(f.str("username"), f.str("password"))
	if err != nil {
		s.log.WithField("username", f.str("username")).Info("login rejected")
		s.errorJSON(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, tokenResponse{AccessToken: token, TokenType: "bearer"})
}

// handleGetMyProfile returns the user the bearer token belongs to.
func (s *Server) handleGetMyProfile(w http.ResponseWriter, r *http.Request) {
	user, err := s.getUserFromContext(r)
	if err != nil {
		s.errorJSON(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, toUserResponse(user))
}
