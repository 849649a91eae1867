package server

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"couchclub/internal/comments"
	"couchclub/internal/db"
	"couchclub/internal/notify"

	"gorm.io/gorm"
)

const (
	maxPostLength    = 500
	maxCommentLength = 500
	maxTakeLength    = 280
	feedPageSize     = 50
)

type createPostRequest struct {
	Body string `json:"body"`
}

type createHotTakeRequest struct {
	Take string `json:"take"`
}

type addCommentRequest struct {
	Body     string `json:"body"`
	ParentID *uint  `json:"parent_id"`
}

func (s *Server) handleCreatePost(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.currentUser(w, r)
	if !ok {
		return
	}
	var req createPostRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	body := strings.TrimSpace(req.Body)
	if body == "" || len(body) > maxPostLength {
		writeError(w, http.StatusBadRequest, "post body is required and limited to 500 characters")
		return
	}
	post := db.Post{AuthorID: userID, Body: body}
	if err := s.db.WithContext(r.Context()).Create(&post).Error; err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create post")
		return
	}
	log.Printf("post created post_id=%d author_id=%d", post.ID, userID)
	writeJSON(w, http.StatusCreated, post)
}

func (s *Server) handleListPosts(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.currentUser(w, r); !ok {
		return
	}
	var posts []db.Post
	err := s.db.WithContext(r.Context()).
		Order("created_at DESC, id DESC").
		Limit(feedPageSize).
		Find(&posts).Error
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list posts")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"posts": posts})
}

func (s *Server) handleCreateHotTake(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.currentUser(w, r)
	if !ok {
		return
	}
	var req createHotTakeRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	take := strings.TrimSpace(req.Take)
	if take == "" || len(take) > maxTakeLength {
		writeError(w, http.StatusBadRequest, "take is required and limited to 280 characters")
		return
	}
	hotTake := db.HotTake{AuthorID: userID, Take: take}
	if err := s.db.WithContext(r.Context()).Create(&hotTake).Error; err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create hot take")
		return
	}
	log.Printf("hot take created hot_take_id=%d author_id=%d", hotTake.ID, userID)
	writeJSON(w, http.StatusCreated, hotTake)
}

func (s *Server) handleListHotTakes(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.currentUser(w, r); !ok {
		return
	}
	var takes []db.HotTake
	err := s.db.WithContext(r.Context()).
		Order("created_at DESC, id DESC").
		Limit(feedPageSize).
		Find(&takes).Error
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list hot takes")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"hot_takes": takes})
}

func (s *Server) handleAddComment(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.currentUser(w, r)
	if !ok {
		return
	}
	postID, ok := pathID(r, "id")
	if !ok {
		http.NotFound(w, r)
		return
	}
	var req addCommentRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	body := strings.TrimSpace(req.Body)
	if body == "" || len(body) > maxCommentLength {
		writeError(w, http.StatusBadRequest, "comment body is required and limited to 500 characters")
		return
	}

	var post db.Post
	if err := s.db.WithContext(r.Context()).Take(&post, postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.NotFound(w, r)
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load post")
		return
	}
	if req.ParentID != nil {
		var parent db.Comment
		err := s.db.WithContext(r.Context()).
			Where("id = ? AND post_id = ?", *req.ParentID, postID).
			Take(&parent).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeError(w, http.StatusBadRequest, "parent comment does not belong to this post")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to load parent comment")
			return
		}
	}

	comment := db.Comment{PostID: postID, AuthorID: userID, ParentID: req.ParentID, Body: body}
	if err := s.db.WithContext(r.Context()).Create(&comment).Error; err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create comment")
		return
	}
	s.dispatcher.Dispatch(post.AuthorID, "post_commented", userID, "commented on your post",
		notify.TargetRef{Kind: "post", ID: postID})
	writeJSON(w, http.StatusCreated, comment)
}

// handleCommentTree returns a post's comments as a nested reply forest,
// assembled from rows ordered by creation time.
func (s *Server) handleCommentTree(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.currentUser(w, r); !ok {
		return
	}
	postID, ok := pathID(r, "id")
	if !ok {
		http.NotFound(w, r)
		return
	}
	var post db.Post
	if err := s.db.WithContext(r.Context()).Select("id").Take(&post, postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.NotFound(w, r)
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load post")
		return
	}
	var rows []db.Comment
	err := s.db.WithContext(r.Context()).
		Where("post_id = ?", postID).
		Order("created_at ASC, id ASC").
		Find(&rows).Error
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list comments")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"comments": comments.BuildTree(rows)})
}

func (s *Server) handleListNotifications(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.currentUser(w, r)
	if !ok {
		return
	}
	rows, err := s.dispatcher.List(r.Context(), userID, feedPageSize)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list notifications")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"notifications": rows})
}

func (s *Server) handlePointsBalance(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.currentUser(w, r)
	if !ok {
		return
	}
	balance, err := s.points.Balance(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to read balance")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"points": balance})
}
