package monitor

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// Server broadcasts evaluation events to WebSocket clients and
// serves a JSON stats snapshot. Intended for watching long agent
// runs live from a browser or dashboard.
type Server struct {
	mu        sync.RWMutex
	collector *Collector
	clients   map[*websocket.Conn]*wsClient
	addr      string
	server    *http.Server
	upgrader  websocket.Upgrader
}

// wsClient serializes writes to one connection. The websocket
// package supports at most one concurrent writer per connection,
// and the snapshot write can race a broadcast without this.
type wsClient struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (c *wsClient) send(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

// NewServer creates a monitor server over the given collector.
func NewServer(addr string, collector *Collector) *Server {
	return &Server{
		addr:      addr,
		collector: collector,
		clients:   make(map[*websocket.Conn]*wsClient),
		upgrader: websocket.Upgrader{
			// The monitor is a local observability endpoint;
			// cross-origin dashboards are allowed.
			CheckOrigin: func(*http.Request) bool {
				return true
			},
		},
	}
}

// Start begins serving until the context is cancelled. It blocks.
func (s *Server) Start(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/stats", s.handleStats)
	mux.HandleFunc(
		"/health",
		func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("ok"))
		},
	)

	s.server = &http.Server{Addr: s.addr, Handler: mux}

	s.collector.OnEvent(func(event Event) {
		data, err := json.Marshal(event)
		if err != nil {
			return
		}
		s.broadcast(data)
	})

	go func() {
		<-ctx.Done()
		s.server.Close()
	}()

	if err := s.server.ListenAndServe(); err != http.ErrServerClosed {
		return fmt.Errorf("monitor server: %w", err)
	}
	return nil
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

func (s *Server) handleWS(
	w http.ResponseWriter, r *http.Request,
) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	client := &wsClient{conn: conn}
	s.mu.Lock()
	s.clients[conn] = client
	s.mu.Unlock()

	// Send the current snapshot so late joiners see the run
	// state immediately.
	snap := s.collector.Snapshot()
	if data, err := json.Marshal(snap); err == nil {
		client.send(data)
	}

	// Reader loop: discard client messages, detect close.
	go func() {
		defer s.dropClient(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (s *Server) handleStats(
	w http.ResponseWriter, r *http.Request,
) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.collector.Snapshot())
}

func (s *Server) broadcast(data []byte) {
	s.mu.RLock()
	clients := make([]*wsClient, 0, len(s.clients))
	for _, client := range s.clients {
		clients = append(clients, client)
	}
	s.mu.RUnlock()

	for _, client := range clients {
		if err := client.send(data); err != nil {
			s.dropClient(client.conn)
		}
	}
}

func (s *Server) dropClient(conn *websocket.Conn) {
	s.mu.Lock()
	if _, ok := s.clients[conn]; ok {
		delete(s.clients, conn)
		conn.Close()
	}
	s.mu.Unlock()
}
