package broadcast

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// HubConfig holds configuration for live websocket clients.
type HubConfig struct {
	WriteTimeout   time.Duration
	PongTimeout    time.Duration
	PingInterval   time.Duration
	MaxMessageSize int64
	SendBuffer     int
	CheckOrigin    func(r *http.Request) bool
}

// DefaultHubConfig returns the configuration used by the server.
func DefaultHubConfig() HubConfig {
	return HubConfig{
		WriteTimeout:   10 * time.Second,
		PongTimeout:    60 * time.Second,
		PingInterval:   30 * time.Second,
		MaxMessageSize: 512,
		SendBuffer:     64,
	}
}

// Hub is a Publisher that pushes every Event to all connected websocket
// clients. Clients only listen; anything they send is discarded.
type Hub struct {
	cfg      HubConfig
	upgrader websocket.Upgrader
	logger   *slog.Logger

	mu      sync.RWMutex
	clients map[*client]struct{}
}

type client struct {
	id   string
	conn *websocket.Conn
	send chan []byte
}

// NewHub constructs a Hub with no clients.
func NewHub(cfg HubConfig, logger *slog.Logger) *Hub {
	return &Hub{
		cfg: cfg,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     cfg.CheckOrigin,
		},
		logger:  logger,
		clients: make(map[*client]struct{}),
	}
}

// Publish queues e for every client. A client whose buffer is full misses
// the event rather than stalling the publisher.
func (h *Hub) Publish(_ context.Context, e Event) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("broadcast.Hub.Publish: marshal: %w", err)
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			h.logger.Warn("live client too slow, dropping event", "client_id", c.id, "event", e.Type)
		}
	}
	return nil
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// ServeHTTP upgrades the request to a websocket and streams events to it
// until the client disconnects.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written an HTTP error response.
		h.logger.Debug("websocket upgrade failed", "error", err)
		return
	}

	c := &client{
		id:   uuid.NewString(),
		conn: conn,
		send: make(chan []byte, h.cfg.SendBuffer),
	}
	h.register(c)
	h.logger.Info("live client connected", "client_id", c.id, "clients", h.ClientCount())

	go h.writePump(c)
	h.readPump(c)
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
	}
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c] = struct{}{}
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
		h.logger.Info("live client disconnected", "client_id", c.id)
	}
}

// readPump discards inbound messages and keeps the read deadline alive on
// pongs. It returns when the connection fails, which unregisters the client.
func (h *Hub) readPump(c *client) {
	defer func() {
		h.unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(h.cfg.MaxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(h.cfg.PongTimeout))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(h.cfg.PongTimeout))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

// writePump drains c.send to the socket and pings on an interval. It
// returns when c.send is closed or a write fails.
func (h *Hub) writePump(c *client) {
	ticker := time.NewTicker(h.cfg.PingInterval)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(h.cfg.WriteTimeout))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(h.cfg.WriteTimeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
