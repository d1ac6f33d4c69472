package ws

import (
	"log/slog"
	"sync"
	"time"

	"github.com/HannanLK/code-red-server/internal/model"
	"github.com/HannanLK/code-red-server/internal/services/room"
)

// Hub fans room events out to the websocket connections of one room. State
// snapshots are re-rendered per connection so each player sees only their own
// rack; every other event is encoded once and sent to everyone.
type Hub struct {
	room    *room.Room
	clients map[*Client]bool
	mu      sync.RWMutex
	logger  *slog.Logger

	register   chan *Client
	unregister chan *Client
	events     chan []model.Event
	done       chan struct{}
}

// NewHub creates a hub for one room
func NewHub(r *room.Room, logger *slog.Logger) *Hub {
	return &Hub{
		room:       r,
		clients:    make(map[*Client]bool),
		logger:     logger.With(slog.String("room_id", string(r.ID()))),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		events:     make(chan []model.Event, 64),
		done:       make(chan struct{}),
	}
}

// Run starts the hub's event loop
func (h *Hub) Run() {
	h.logger.Info("ws hub started")
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			clientCount := len(h.clients)
			h.mu.Unlock()
			h.logger.Info("ws client registered",
				slog.String("player_id", string(client.playerID)),
				slog.Int("total_clients", clientCount))

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				clientCount := len(h.clients)
				h.mu.Unlock()
				h.logger.Info("ws client unregistered",
					slog.String("player_id", string(client.playerID)),
					slog.Duration("connection_duration", time.Since(client.connectedAt)),
					slog.Int("total_clients", clientCount))
			} else {
				h.mu.Unlock()
			}

		case events := <-h.events:
			h.deliver(events)

		case <-h.done:
			h.mu.Lock()
			clientCount := len(h.clients)
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			h.mu.Unlock()
			h.logger.Info("ws hub stopped", slog.Int("disconnected_clients", clientCount))
			return
		}
	}
}

func (h *Hub) deliver(events []model.Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, ev := range events {
		if ev.Type == model.EventStateSnapshot {
			for client := range h.clients {
				personal := ev
				personal.Payload = model.StateSnapshotPayload{
					Snapshot: h.room.Snapshot(client.playerID),
				}
				h.sendTo(client, personal)
			}
			continue
		}

		data, err := encodeEvent(ev)
		if err != nil {
			h.logger.Error("ws event encode failed",
				slog.String("type", string(ev.Type)),
				slog.String("error", err.Error()))
			continue
		}
		for client := range h.clients {
			h.enqueue(client, data)
		}
	}
}

func (h *Hub) sendTo(client *Client, ev model.Event) {
	data, err := encodeEvent(ev)
	if err != nil {
		h.logger.Error("ws event encode failed",
			slog.String("type", string(ev.Type)),
			slog.String("error", err.Error()))
		return
	}
	h.enqueue(client, data)
}

func (h *Hub) enqueue(client *Client, data []byte) {
	select {
	case client.send <- data:
	default:
		h.logger.Warn("ws message dropped - client buffer full",
			slog.String("player_id", string(client.playerID)))
	}
}

// Register adds a client to the hub
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister removes a client from the hub
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Publish queues room events for fan-out
func (h *Hub) Publish(events []model.Event) {
	select {
	case h.events <- events:
	case <-h.done:
	default:
		h.logger.Warn("ws publish dropped - hub buffer full")
	}
}

// Close shuts down the hub
func (h *Hub) Close() {
	close(h.done)
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// HubManager owns the hub of every room with live connections. It implements
// the registry's event sink.
type HubManager struct {
	registry *room.Registry
	hubs     map[model.RoomID]*Hub
	mu       sync.RWMutex
	logger   *slog.Logger
}

// NewHubManager creates a new HubManager
func NewHubManager(registry *room.Registry, logger *slog.Logger) *HubManager {
	return &HubManager{
		registry: registry,
		hubs:     make(map[model.RoomID]*Hub),
		logger:   logger.With(slog.String("component", "ws")),
	}
}

// GetOrCreateHub returns the hub for a room, creating one if needed
func (m *HubManager) GetOrCreateHub(r *room.Room) *Hub {
	m.mu.Lock()
	defer m.mu.Unlock()

	if hub, ok := m.hubs[r.ID()]; ok {
		return hub
	}

	hub := NewHub(r, m.logger)
	m.hubs[r.ID()] = hub
	go hub.Run()
	return hub
}

// Publish implements room.EventSink
func (m *HubManager) Publish(roomID model.RoomID, events []model.Event) {
	m.mu.RLock()
	hub := m.hubs[roomID]
	m.mu.RUnlock()
	if hub != nil {
		hub.Publish(events)
	}
}

// RemoveHub removes and closes a room's hub
func (m *HubManager) RemoveHub(roomID model.RoomID) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if hub, ok := m.hubs[roomID]; ok {
		hub.Close()
		delete(m.hubs, roomID)
		m.logger.Info("ws hub removed", slog.String("room_id", string(roomID)))
	}
}

// CleanupEmptyHubs removes hubs with no clients
func (m *HubManager) CleanupEmptyHubs() {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for id, hub := range m.hubs {
		if hub.ClientCount() == 0 {
			hub.Close()
			delete(m.hubs, id)
			removed++
		}
	}
	if removed > 0 {
		m.logger.Info("ws empty hubs cleaned up", slog.Int("removed", removed))
	}
}

var _ room.EventSink = (*HubManager)(nil)
