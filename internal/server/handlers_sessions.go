package server

import (
	"log"
	"net/http"
)

type createSessionRequest struct {
	Name string `json:"name"`
}

// handleCreateSession is the trusted-identity shim: it provisions or finds
// the named user and hands back a bearer token. Real credential checks live
// with the upstream identity provider, not here.
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	token, user, err := s.sessions.Create(r.Context(), req.Name)
	if err != nil {
		writeError(w, http.StatusBadRequest, "could not create session")
		return
	}
	log.Printf("session created user_id=%d", user.ID)
	writeJSON(w, http.StatusCreated, map[string]any{
		"token":   token,
		"user_id": user.ID,
		"name":    user.Name,
	})
}
