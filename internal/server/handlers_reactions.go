package server

import "net/http"

type toggleReactionRequest struct {
	TargetKind string `json:"target_kind"`
	TargetID   uint   `json:"target_id"`
	Value      int    `json:"value"`
}

type removeReactionRequest struct {
	TargetKind string `json:"target_kind"`
	TargetID   uint   `json:"target_id"`
}

func (s *Server) handleToggleReaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.currentUser(w, r)
	if !ok {
		return
	}
	var req toggleReactionRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	result, err := s.ledger.Toggle(r.Context(), req.TargetKind, req.TargetID, userID, req.Value)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleRemoveReaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.currentUser(w, r)
	if !ok {
		return
	}
	var req removeReactionRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	result, err := s.ledger.Remove(r.Context(), req.TargetKind, req.TargetID, userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
