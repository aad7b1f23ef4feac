package ipc

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/url"
	"sync"

	"github.com/desknote/desknote/util/log"
	"github.com/gorilla/websocket"
	"golang.org/x/net/netutil"
	"golang.org/x/time/rate"
)

const (
	maxConnections = 8
	// per connection
	commandRate  = rate.Limit(20)
	commandBurst = 40
)

// Server exposes a Registry over loopback HTTP and WebSocket.
type Server struct {
	registry   *Registry
	mu         sync.Mutex
	httpServer *http.Server
	addr       net.Addr
	closed     bool
	mux        *http.ServeMux
	upgrader   websocket.Upgrader
	version    string

	// WebSocket management
	clients   map[*websocket.Conn]bool
	clientsMu sync.Mutex
}

// NewServer creates a server for registry.
func NewServer(registry *Registry, version string) *Server {
	s := &Server{
		registry: registry,
		mux:      http.NewServeMux(),
		upgrader: websocket.Upgrader{
			CheckOrigin: loopbackOrigin,
		},
		version: version,
		clients: make(map[*websocket.Conn]bool),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/health", s.handleHealth)
	s.mux.HandleFunc("/invoke/", s.handleInvoke)
	s.mux.HandleFunc("/ws", s.handleWebSocket)
}

// loopbackOrigin accepts requests without an Origin header and from pages
// served by the local machine only.
func loopbackOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	host := u.Hostname()
	if host == "localhost" {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}

// Handler returns the HTTP handler for the server.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start listens on addr, which must be a loopback address, and serves
// until Stop. It blocks. A stopped server does not start again; Start then
// returns nil at once.
func (s *Server) Start(addr string) error {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return err
	}
	if ip := net.ParseIP(host); host != "localhost" && (ip == nil || !ip.IsLoopback()) {
		return errors.New("ipc: refusing to listen on non-loopback address " + addr)
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	srv := &http.Server{Handler: s.mux}
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		ln.Close()
		return nil
	}
	s.httpServer = srv
	s.addr = ln.Addr()
	s.mu.Unlock()

	err = srv.Serve(netutil.LimitListener(ln, maxConnections))
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Stop shuts the server down and closes open WebSocket clients.
func (s *Server) Stop(ctx context.Context) error {
	s.clientsMu.Lock()
	for client := range s.clients {
		client.Close()
		delete(s.clients, client)
	}
	s.clientsMu.Unlock()

	s.mu.Lock()
	srv := s.httpServer
	s.httpServer = nil
	s.addr = nil
	s.closed = true
	s.mu.Unlock()
	if srv != nil {
		return srv.Shutdown(ctx)
	}
	return nil
}

// Addr returns the address the server listens on, or "" when it is not
// serving.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.addr == nil {
		return ""
	}
	return s.addr.String()
}

// Broadcast sends an event to every connected WebSocket client.
func (s *Server) Broadcast(event string, payload any) {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()

	msg := Message{Event: event, Result: payload}
	for client := range s.clients {
		if err := client.WriteJSON(msg); err != nil {
			log.Warnf("ipc: failed to broadcast to client: %v", err)
			client.Close()
			delete(s.clients, client)
		}
	}
}

func newLimiter() *rate.Limiter {
	return rate.NewLimiter(commandRate, commandBurst)
}
