package ipc

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/desknote/desknote/util/log"
)

const (
	maxBodyBytes   = 64 << 10
	commandTimeout = 5 * time.Second
)

// Message is the WebSocket frame in both directions. Requests carry ID,
// Cmd and Args; replies echo ID and set OK with Result or Error; server
// pushed events set Event.
type Message struct {
	ID     string          `json:"id,omitempty"`
	Cmd    string          `json:"cmd,omitempty"`
	Args   json.RawMessage `json:"args,omitempty"`
	OK     bool            `json:"ok"`
	Result any             `json:"result,omitempty"`
	Error  string          `json:"error,omitempty"`
	Event  string          `json:"event,omitempty"`
}

// handleHealth returns the server health status.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]any{
		"status":   "running",
		"version":  s.version,
		"commands": s.registry.Names(),
	}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// handleInvoke runs POST /invoke/{command} with an optional JSON body.
func (s *Server) handleInvoke(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if !loopbackOrigin(r) {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	name := strings.TrimPrefix(r.URL.Path, "/invoke/")
	if name == "" || strings.Contains(name, "/") {
		http.Error(w, "Command is required", http.StatusBadRequest)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	var args json.RawMessage
	if len(strings.TrimSpace(string(body))) > 0 {
		if !json.Valid(body) {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		args = body
	}

	reply, err := s.invoke(r.Context(), Message{Cmd: name, Args: args})

	w.Header().Set("Content-Type", "application/json")
	switch {
	case err == nil:
		w.WriteHeader(http.StatusOK)
	case errors.Is(err, ErrUnknownCommand):
		w.WriteHeader(http.StatusNotFound)
	default:
		w.WriteHeader(http.StatusUnprocessableEntity)
	}
	_ = json.NewEncoder(w).Encode(reply)
}

// handleWebSocket upgrades the connection and serves command frames.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warnf("ipc: WebSocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	s.clientsMu.Lock()
	s.clients[conn] = true
	s.clientsMu.Unlock()

	defer func() {
		s.clientsMu.Lock()
		delete(s.clients, conn)
		s.clientsMu.Unlock()
	}()

	limiter := newLimiter()
	conn.SetReadLimit(maxBodyBytes)

	for {
		var req Message
		if err := conn.ReadJSON(&req); err != nil {
			return
		}

		var reply Message
		if !limiter.Allow() {
			reply = Message{ID: req.ID, Error: "rate limit exceeded"}
		} else {
			reply, _ = s.invoke(r.Context(), req)
		}

		s.clientsMu.Lock()
		err := conn.WriteJSON(reply)
		s.clientsMu.Unlock()
		if err != nil {
			return
		}
	}
}

func (s *Server) invoke(ctx context.Context, req Message) (Message, error) {
	ctx, cancel := context.WithTimeout(ctx, commandTimeout)
	defer cancel()

	result, err := s.registry.Invoke(ctx, req.Cmd, req.Args)
	if err != nil {
		return Message{ID: req.ID, Error: err.Error()}, err
	}
	return Message{ID: req.ID, OK: true, Result: result}, nil
}
