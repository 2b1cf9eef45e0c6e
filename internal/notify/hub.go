package notify

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"github.com/coder/websocket"

	"typetutor/internal/badges"
	"typetutor/internal/events"
)

// BadgeMessage is the JSON structure pushed to clients when a badge tier is
// newly earned.
type BadgeMessage struct {
	Type  string `json:"t"`
	Level int    `json:"level"`
	Name  string `json:"name,omitempty"`
	Icon  string `json:"icon,omitempty"`
}

// Client represents a single WebSocket connection in the hub. A user with
// several tabs open has several clients.
type Client struct {
	UserID string
	Conn   *websocket.Conn
	Send   chan []byte
}

// WritePump reads from the Send channel and writes to the WebSocket connection.
func (c *Client) WritePump(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-c.Send:
			if !ok {
				return
			}
			if err := c.Conn.Write(ctx, websocket.MessageText, msg); err != nil {
				return
			}
		}
	}
}

// Hub manages per-user WebSocket connections.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]map[*Client]bool
}

// NewHub creates a Hub that drains badge-earned events from the bus and
// pushes them to the earning user's connections.
func NewHub(bus *events.Bus) *Hub {
	h := &Hub{
		clients: make(map[string]map[*Client]bool),
	}
	go func() {
		for ev := range bus.BadgeEarned {
			msg := BadgeMessage{Type: "badge_earned", Level: ev.Level}
			if tier, ok := badges.ByLevel(ev.Level); ok {
				msg.Name = tier.Name
				msg.Icon = tier.Icon
			}
			h.SendToUser(ev.UserID, msg)
		}
	}()
	return h
}

// Register adds a client to the hub.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[c.UserID] == nil {
		h.clients[c.UserID] = make(map[*Client]bool)
	}
	h.clients[c.UserID][c] = true
}

// Unregister removes a client and closes its Send channel.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	conns, ok := h.clients[c.UserID]
	if !ok || !conns[c] {
		return
	}
	close(c.Send)
	delete(conns, c)
	if len(conns) == 0 {
		delete(h.clients, c.UserID)
	}
}

// SendToUser delivers a message to every connection a user holds.
// Non-blocking: drops if a client's channel is full.
func (h *Hub) SendToUser(userID string, msg BadgeMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("[WS] Marshal error: %v\n", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.clients[userID] {
		select {
		case c.Send <- data:
		default:
			// Drop message if channel full
		}
	}
}
