package monitor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"digital.vasic.testnames/pkg/logging"
)

// Message kinds sent to WebSocket clients.
const (
	KindSnapshot = "snapshot"
	KindEvent    = "event"
)

// Message is the JSON frame sent to WebSocket clients. A client first
// receives one snapshot of all events collected so far, then one
// frame per new event. Events emitted while a client connects may
// appear in both.
type Message struct {
	Kind   string  `json:"kind"`
	Events []Event `json:"events,omitempty"`
	Event  *Event  `json:"event,omitempty"`
	Stats  *Stats  `json:"stats,omitempty"`
}

const clientBuffer = 64

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Server streams collector events to WebSocket clients.
type Server struct {
	mu        sync.RWMutex
	collector *Collector
	clients   map[*client]struct{}
	upgrader  websocket.Upgrader
	logger    logging.Logger
	addr      string
	server    *http.Server
	routes    map[string]http.Handler
}

// NewServer creates a server broadcasting every event emitted on
// collector from now on.
func NewServer(
	addr string, collector *Collector, logger logging.Logger,
) *Server {
	if logger == nil {
		logger = logging.NullLogger{}
	}
	s := &Server{
		addr:      addr,
		collector: collector,
		clients:   make(map[*client]struct{}),
		routes:    make(map[string]http.Handler),
		logger:    logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
	collector.OnEvent(s.broadcastEvent)
	return s
}

// Handle registers an additional route. Call it before Start.
func (s *Server) Handle(pattern string, h http.Handler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.routes[pattern] = h
}

// Handler returns the HTTP handler serving /ws, /events, /health and
// any routes added with Handle.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.mu.RLock()
	for pattern, h := range s.routes {
		mux.Handle(pattern, h)
	}
	s.mu.RUnlock()
	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/events", s.handleEvents)
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return mux
}

// Start serves until ctx is done.
func (s *Server) Start(ctx context.Context) error {
	handler := s.Handler()
	s.mu.Lock()
	s.server = &http.Server{
		Addr:    s.addr,
		Handler: handler,
	}
	srv := s.server
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		_ = srv.Close()
	}()

	s.logger.Info("monitor listening", logging.StringField("addr", s.addr))
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("monitor server: %w", err)
	}
	return nil
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.RLock()
	srv := s.server
	s.mu.RUnlock()
	if srv != nil {
		return srv.Shutdown(ctx)
	}
	return nil
}

// ClientCount returns the number of connected WebSocket clients.
func (s *Server) ClientCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", logging.ErrorField(err))
		return
	}

	c := &client{conn: conn, send: make(chan []byte, clientBuffer)}

	s.mu.Lock()
	stats := s.collector.Stats()
	snapshot, err := json.Marshal(Message{
		Kind:   KindSnapshot,
		Events: s.collector.Events(),
		Stats:  &stats,
	})
	if err == nil {
		c.send <- snapshot
	}
	s.clients[c] = struct{}{}
	s.mu.Unlock()

	go s.writeLoop(c)

	// Drain reads until the peer goes away.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	s.mu.Lock()
	delete(s.clients, c)
	close(c.send)
	s.mu.Unlock()
}

func (s *Server) writeLoop(c *client) {
	defer c.conn.Close()
	for data := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			return
		}
	}
	_ = c.conn.WriteMessage(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
	)
}

func (s *Server) handleEvents(w http.ResponseWriter, _ *http.Request) {
	stats := s.collector.Stats()
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(Message{
		Kind:   KindSnapshot,
		Events: s.collector.Events(),
		Stats:  &stats,
	})
}

func (s *Server) broadcastEvent(event Event) {
	data, err := json.Marshal(Message{Kind: KindEvent, Event: &event})
	if err != nil {
		return
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	for c := range s.clients {
		select {
		case c.send <- data:
		default:
			// Client too slow, skip
		}
	}
}
