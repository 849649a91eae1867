package server

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"

	"couchclub/internal/db"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// sessionStore binds bearer tokens to user ids. Identity verification itself
// lives upstream; by the time a token exists the user id behind it is
// trusted (the core never re-validates credentials). A small in-memory cache
// keeps hot lookups off the database.
type sessionStore struct {
	db    *gorm.DB
	mu    sync.Mutex
	cache map[string]uint
}

func newSessionStore(conn *gorm.DB) *sessionStore {
	return &sessionStore{
		db:    conn,
		cache: make(map[string]uint),
	}
}

// Create finds or provisions the named user and issues a fresh token.
func (s *sessionStore) Create(ctx context.Context, name string) (string, *db.User, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", nil, errors.New("name is required")
	}
	var user db.User
	err := s.db.WithContext(ctx).Where("name = ?", trimmed).Take(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = db.User{Name: trimmed}
		err = s.db.WithContext(ctx).Create(&user).Error
	}
	if err != nil {
		return "", nil, err
	}

	token := uuid.NewString()
	record := db.Session{ID: token, UserID: user.ID}
	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		return "", nil, err
	}
	s.mu.Lock()
	s.cache[token] = user.ID
	s.mu.Unlock()
	return token, &user, nil
}

// UserID resolves a bearer token to the acting user.
func (s *sessionStore) UserID(ctx context.Context, token string) (uint, bool) {
	if token == "" {
		return 0, false
	}
	s.mu.Lock()
	userID, ok := s.cache[token]
	s.mu.Unlock()
	if ok {
		return userID, true
	}
	var record db.Session
	if err := s.db.WithContext(ctx).Take(&record, "id = ?", token).Error; err != nil {
		return 0, false
	}
	s.mu.Lock()
	s.cache[token] = record.UserID
	s.mu.Unlock()
	return record.UserID, true
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}

// currentUser resolves the caller or writes a 401 and reports false.
func (s *Server) currentUser(w http.ResponseWriter, r *http.Request) (uint, bool) {
	userID, ok := s.sessions.UserID(r.Context(), bearerToken(r))
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing or invalid session token")
		return 0, false
	}
	return userID, true
}
