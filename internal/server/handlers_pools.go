package server

import (
	"log"
	"net/http"
	"time"

	"couchclub/internal/db"
	"couchclub/internal/pools"
)

type createPoolRequest struct {
	Name            string `json:"name"`
	Description     string `json:"description"`
	Visibility      string `json:"visibility"`
	PointsPerAnswer int    `json:"points_per_answer"`
}

type joinPoolRequest struct {
	InviteCode string `json:"invite_code"`
}

type addPromptRequest struct {
	Text       string     `json:"text"`
	PromptType string     `json:"prompt_type"`
	Options    []string   `json:"options"`
	Points     int        `json:"points"`
	Deadline   *time.Time `json:"deadline"`
}

type submitAnswerRequest struct {
	Answer string `json:"answer"`
}

type resolveRequest struct {
	CorrectAnswer string `json:"correct_answer"`
}

func (s *Server) handleCreatePool(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.currentUser(w, r)
	if !ok {
		return
	}
	var req createPoolRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	pool, err := s.pools.CreatePool(r.Context(), userID, pools.CreatePoolInput{
		Name:            req.Name,
		Description:     req.Description,
		Visibility:      req.Visibility,
		PointsPerAnswer: req.PointsPerAnswer,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	log.Printf("pool created pool_id=%d host_id=%d invite_code=%s", pool.ID, userID, pool.InviteCode)
	writeJSON(w, http.StatusCreated, pool)
}

func (s *Server) handleJoinPool(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.currentUser(w, r)
	if !ok {
		return
	}
	var req joinPoolRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	result, err := s.pools.JoinPool(r.Context(), userID, req.InviteCode)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if !result.AlreadyMember {
		s.hub.Broadcast(result.Pool.ID, "member_joined", map[string]any{"user_id": userID})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"pool":           result.Pool,
		"already_member": result.AlreadyMember,
	})
}

func (s *Server) handleListPools(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.currentUser(w, r)
	if !ok {
		return
	}
	list, err := s.pools.ListPools(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"pools": list})
}

func (s *Server) handleGetPool(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.currentUser(w, r)
	if !ok {
		return
	}
	poolID, ok := pathID(r, "id")
	if !ok {
		http.NotFound(w, r)
		return
	}
	pool, err := s.pools.GetPool(r.Context(), userID, poolID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pool)
}

func (s *Server) handleClosePool(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.currentUser(w, r)
	if !ok {
		return
	}
	poolID, ok := pathID(r, "id")
	if !ok {
		http.NotFound(w, r)
		return
	}
	if err := s.pools.ClosePool(r.Context(), userID, poolID); err != nil {
		writeServiceError(w, err)
		return
	}
	s.hub.Broadcast(poolID, "pool_closed", map[string]any{"pool_id": poolID})
	writeJSON(w, http.StatusOK, map[string]any{"status": "completed"})
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.currentUser(w, r)
	if !ok {
		return
	}
	poolID, ok := pathID(r, "id")
	if !ok {
		http.NotFound(w, r)
		return
	}
	board, err := s.pools.Leaderboard(r.Context(), userID, poolID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, board)
}

func (s *Server) handleAddPrompt(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.currentUser(w, r)
	if !ok {
		return
	}
	poolID, ok := pathID(r, "id")
	if !ok {
		http.NotFound(w, r)
		return
	}
	var req addPromptRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	prompt, err := s.pools.AddPrompt(r.Context(), userID, poolID, pools.AddPromptInput{
		Text:       req.Text,
		PromptType: req.PromptType,
		Options:    req.Options,
		Points:     req.Points,
		Deadline:   req.Deadline,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	s.hub.Broadcast(poolID, "prompt_added", prompt)
	writeJSON(w, http.StatusCreated, prompt)
}

func (s *Server) handleListPrompts(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.currentUser(w, r)
	if !ok {
		return
	}
	poolID, ok := pathID(r, "id")
	if !ok {
		http.NotFound(w, r)
		return
	}
	views, err := s.pools.ListPrompts(r.Context(), userID, poolID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"prompts": views})
}

func (s *Server) handleSubmitAnswer(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.currentUser(w, r)
	if !ok {
		return
	}
	promptID, ok := pathID(r, "id")
	if !ok {
		http.NotFound(w, r)
		return
	}
	var req submitAnswerRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	answer, err := s.pools.SubmitAnswer(r.Context(), userID, promptID, req.Answer)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	log.Printf("answer submitted prompt_id=%d user_id=%d", promptID, userID)
	writeJSON(w, http.StatusOK, answer)
}

func (s *Server) handleResolvePrompt(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.currentUser(w, r)
	if !ok {
		return
	}
	promptID, ok := pathID(r, "id")
	if !ok {
		http.NotFound(w, r)
		return
	}
	var req resolveRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	summary, err := s.pools.Resolve(r.Context(), userID, promptID, req.CorrectAnswer)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if poolID, lookupErr := s.promptPoolID(r, promptID); lookupErr == nil {
		s.hub.Broadcast(poolID, "prompt_resolved", map[string]any{
			"prompt_id": promptID,
			"summary":   summary,
		})
	}
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) promptPoolID(r *http.Request, promptID uint) (uint, error) {
	var prompt db.PoolPrompt
	if err := s.db.WithContext(r.Context()).Select("id", "pool_id").Take(&prompt, promptID).Error; err != nil {
		return 0, err
	}
	return prompt.PoolID, nil
}
