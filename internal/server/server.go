// Package server exposes the pool engine, reaction ledger, and feed over a
// JSON API. Handlers are stateless; every request resolves its caller from a
// session token and all coordination happens in the store.
package server

import (
	"net/http"

	"couchclub/internal/config"
	"couchclub/internal/notify"
	"couchclub/internal/points"
	"couchclub/internal/pools"
	"couchclub/internal/reactions"

	"gorm.io/gorm"
)

type Server struct {
	db         *gorm.DB
	cfg        config.Config
	pools      *pools.Service
	ledger     *reactions.Ledger
	points     *points.Service
	dispatcher *notify.Dispatcher
	sessions   *sessionStore
	hub        *poolHub
}

func New(conn *gorm.DB, cfg config.Config) *Server {
	dispatcher := notify.NewDispatcher(conn)
	pointsSvc := points.NewService(conn)
	return &Server{
		db:         conn,
		cfg:        cfg,
		pools:      pools.NewService(conn, dispatcher, pointsSvc, cfg.InviteCodeAttempts, cfg.DefaultPointsPerAnswer),
		ledger:     reactions.NewLedger(conn, dispatcher, pointsSvc, cfg.VoteRewardPoints),
		points:     pointsSvc,
		dispatcher: dispatcher,
		sessions:   newSessionStore(conn),
		hub:        newPoolHub(),
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/sessions", s.handleCreateSession)

	mux.HandleFunc("POST /api/pools", s.handleCreatePool)
	mux.HandleFunc("GET /api/pools", s.handleListPools)
	mux.HandleFunc("POST /api/pools/join", s.handleJoinPool)
	mux.HandleFunc("GET /api/pools/{id}", s.handleGetPool)
	mux.HandleFunc("POST /api/pools/{id}/close", s.handleClosePool)
	mux.HandleFunc("GET /api/pools/{id}/leaderboard", s.handleLeaderboard)
	mux.HandleFunc("POST /api/pools/{id}/prompts", s.handleAddPrompt)
	mux.HandleFunc("GET /api/pools/{id}/prompts", s.handleListPrompts)
	mux.HandleFunc("POST /api/prompts/{id}/answers", s.handleSubmitAnswer)
	mux.HandleFunc("POST /api/prompts/{id}/resolve", s.handleResolvePrompt)

	mux.HandleFunc("POST /api/posts", s.handleCreatePost)
	mux.HandleFunc("GET /api/posts", s.handleListPosts)
	mux.HandleFunc("POST /api/posts/{id}/comments", s.handleAddComment)
	mux.HandleFunc("GET /api/posts/{id}/comments", s.handleCommentTree)
	mux.HandleFunc("POST /api/hot-takes", s.handleCreateHotTake)
	mux.HandleFunc("GET /api/hot-takes", s.handleListHotTakes)

	mux.HandleFunc("POST /api/reactions/toggle", s.handleToggleReaction)
	mux.HandleFunc("POST /api/reactions/remove", s.handleRemoveReaction)

	mux.HandleFunc("GET /api/notifications", s.handleListNotifications)
	mux.HandleFunc("GET /api/points/balance", s.handlePointsBalance)

	mux.HandleFunc("GET /ws/pools/{id}", s.handlePoolWebsocket)
	return mux
}
