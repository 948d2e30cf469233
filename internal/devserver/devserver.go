// Package devserver exposes the Driver over a long-lived websocket
// connection so an editor or watch-mode client can submit AST JSON and
// stream back TL text or a structured error, without re-invoking the
// CLI per request.
//
// Adapted from the teacher's internal/network websocket_server.go
// (WebSocketAccept/Broadcast against a registry of named connections
// guarded by sync.RWMutex) and internal/lsp's "one goroutine per
// connection, JSON messages in, JSON messages out" shape. This is
// purely a delivery mechanism: every request calls the same
// codegen.EmitModule (optionally through internal/cache) the CLI does,
// so the websocket layer never participates in emission itself.
package devserver

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"dyonc/internal/ast"
	"dyonc/internal/cache"
	"dyonc/internal/golden"
)

// Request is one transpile request from a client connection.
type Request struct {
	Module json.RawMessage `json:"module"`
}

// Response is what the server streams back: exactly one of Text or
// Error is set.
type Response struct {
	Text  string `json:"text,omitempty"`
	Error string `json:"error,omitempty"`
}

// Server holds the registry of live connections, keyed by a
// uuid.NewString() session id, the same shape as the teacher's
// WSServers/Clients maps.
type Server struct {
	upgrader websocket.Upgrader
	cache    *cache.Cache

	mu          sync.RWMutex
	connections map[string]*websocket.Conn
}

// New builds a Server. c may be nil, in which case every request
// always misses (no caching).
func New(c *cache.Cache) *Server {
	return &Server{
		upgrader:    websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }},
		cache:       c,
		connections: make(map[string]*websocket.Conn),
	}
}

// ServeHTTP upgrades the connection and services transpile requests
// until the client disconnects.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("devserver: upgrade failed: %v", err)
		return
	}
	id := uuid.NewString()

	s.mu.Lock()
	s.connections[id] = conn
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.connections, id)
		s.mu.Unlock()
		conn.Close()
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		resp := s.handle(data)
		out, err := json.Marshal(resp)
		if err != nil {
			log.Printf("devserver: marshal response for %s: %v", id, err)
			return
		}
		if err := conn.WriteMessage(websocket.TextMessage, out); err != nil {
			return
		}
	}
}

func (s *Server) handle(data []byte) Response {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return Response{Error: err.Error()}
	}
	module, err := ast.Decode(req.Module)
	if err != nil {
		return Response{Error: err.Error()}
	}

	emit := func() (string, error) { return golden.Emit(module) }
	if s.cache == nil {
		text, err := emit()
		if err != nil {
			return Response{Error: err.Error()}
		}
		return Response{Text: text}
	}

	text, err := s.cache.GetOrEmit(context.Background(), cache.Key(req.Module), emit)
	if err != nil {
		return Response{Error: err.Error()}
	}
	return Response{Text: text}
}

// ConnectionCount reports the number of live sessions, mirroring the
// teacher's WSServers client-count bookkeeping.
func (s *Server) ConnectionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.connections)
}
