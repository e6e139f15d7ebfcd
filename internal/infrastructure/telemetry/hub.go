// Package telemetry streams session events to websocket watchers.
package telemetry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	sendBuffer   = 64
	writeTimeout = 5 * time.Second
	readTimeout  = 60 * time.Second
)

// client wraps one watcher connection and its outgoing queue
type client struct {
	ws   *websocket.Conn
	send chan []byte
}

// enqueue drops the message when the queue is full so the game loop never blocks
func (c *client) enqueue(b []byte) {
	select {
	case c.send <- b:
	default:
	}
}

func (c *client) writePump() {
	defer c.ws.Close()
	for msg := range c.send {
		_ = c.ws.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := c.ws.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
}

// readPump only watches for the peer going away
func (c *client) readPump(h *Hub) {
	defer h.unregister(c)
	c.ws.SetReadLimit(1 << 10)
	_ = c.ws.SetReadDeadline(time.Now().Add(readTimeout))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(readTimeout))
	})
	for {
		if _, _, err := c.ws.NextReader(); err != nil {
			return
		}
	}
}

// Hub fans published values out to every connected watcher as JSON
type Hub struct {
	mu       sync.Mutex
	clients  map[*client]struct{}
	upgrader websocket.Upgrader
	logger   *zap.Logger
}

// NewHub creates an empty hub. A nil logger discards diagnostics.
func NewHub(logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		clients: make(map[*client]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Watchers are local dashboards
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger: logger,
	}
}

// ServeHTTP upgrades the request and registers the watcher
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	c := &client{ws: ws, send: make(chan []byte, sendBuffer)}
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
	h.logger.Info("watcher connected", zap.String("remote", r.RemoteAddr))

	go c.writePump()
	go c.readPump(h)
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.send)
	h.logger.Info("watcher disconnected")
}

// Publish marshals v and queues it for every watcher
func (h *Hub) Publish(v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode telemetry: %w", err)
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		c.enqueue(b)
	}
	return nil
}

// Clients returns the number of connected watchers
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close disconnects every watcher
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
	}
}

// Server serves a hub on /events
type Server struct {
	hub    *Hub
	http   *http.Server
	logger *zap.Logger
}

// NewServer creates a server for hub listening on addr
func NewServer(addr string, hub *Hub, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	mux := http.NewServeMux()
	mux.Handle("/events", hub)
	return &Server{
		hub:    hub,
		http:   &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second},
		logger: logger,
	}
}

// Start serves in the background
func (s *Server) Start() {
	go func() {
		s.logger.Info("telemetry listening", zap.String("addr", s.http.Addr))
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("telemetry server stopped", zap.Error(err))
		}
	}()
}

// Shutdown stops accepting watchers and disconnects the current ones
func (s *Server) Shutdown(ctx context.Context) error {
	s.hub.Close()
	return s.http.Shutdown(ctx)
}
