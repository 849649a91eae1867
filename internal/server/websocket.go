package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"sync"

	"couchclub/internal/errs"

	"github.com/gorilla/websocket"
)

// poolHub fans pool events (member joins, new prompts, resolutions) out to
// subscribed clients. Delivery is best effort; a failed write drops the
// connection.
type poolHub struct {
	mu     sync.Mutex
	groups map[uint]map[*websocket.Conn]struct{}
}

func newPoolHub() *poolHub {
	return &poolHub{
		groups: make(map[uint]map[*websocket.Conn]struct{}),
	}
}

func (h *poolHub) Add(poolID uint, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	group := h.groups[poolID]
	if group == nil {
		group = make(map[*websocket.Conn]struct{})
		h.groups[poolID] = group
	}
	group[conn] = struct{}{}
}

func (h *poolHub) Remove(poolID uint, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	group := h.groups[poolID]
	if group == nil {
		return
	}
	delete(group, conn)
	_ = conn.Close()
	if len(group) == 0 {
		delete(h.groups, poolID)
	}
}

func (h *poolHub) Broadcast(poolID uint, event string, payload any) {
	h.mu.Lock()
	group := h.groups[poolID]
	conns := make([]*websocket.Conn, 0, len(group))
	for conn := range group {
		conns = append(conns, conn)
	}
	h.mu.Unlock()

	data, err := json.Marshal(map[string]any{
		"event":   event,
		"payload": payload,
	})
	if err != nil {
		return
	}
	for _, conn := range conns {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			h.Remove(poolID, conn)
		}
	}
}

func (s *Server) handlePoolWebsocket(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.currentUser(w, r)
	if !ok {
		return
	}
	poolID, ok := pathID(r, "id")
	if !ok {
		http.NotFound(w, r)
		return
	}
	if _, err := s.pools.GetPool(r.Context(), userID, poolID); err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		writeServiceError(w, err)
		return
	}

	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	log.Printf("ws connected pool_id=%d user_id=%d remote=%s", poolID, userID, r.RemoteAddr)
	s.hub.Add(poolID, conn)
	go s.readPoolWS(poolID, conn)
}

// readPoolWS drains the client until it disconnects; inbound messages are
// ignored, the stream is one way.
func (s *Server) readPoolWS(poolID uint, conn *websocket.Conn) {
	defer s.hub.Remove(poolID, conn)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
