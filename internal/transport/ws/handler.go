package ws

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/HannanLK/code-red-server/internal/model"
	"github.com/HannanLK/code-red-server/internal/services/room"
)

// Handler upgrades game connections at /ws/{room_id}/{player_id}. The player
// must already hold a seat in the room; seating happens over the REST surface.
type Handler struct {
	registry *room.Registry
	hubs     *HubManager
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

// NewHandler creates the websocket endpoint handler
func NewHandler(registry *room.Registry, hubs *HubManager, logger *slog.Logger) *Handler {
	return &Handler{
		registry: registry,
		hubs:     hubs,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Browser clients connect from the game frontend's origin
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger: logger.With(slog.String("component", "ws")),
	}
}

// Register attaches the websocket route to the router
func (h *Handler) Register(router *mux.Router) {
	router.HandleFunc("/ws/{room_id}/{player_id}", h.serve)
}

func (h *Handler) serve(w http.ResponseWriter, req *http.Request) {
	vars := mux.Vars(req)
	roomID := model.RoomID(vars["room_id"])
	playerID := model.PlayerID(vars["player_id"])

	r, err := h.registry.Get(roomID)
	if err != nil {
		http.Error(w, "room not found", http.StatusNotFound)
		return
	}
	if !r.HasPlayer(playerID) {
		http.Error(w, "player is not seated in this room", http.StatusForbidden)
		return
	}

	conn, err := h.upgrader.Upgrade(w, req, nil)
	if err != nil {
		h.logger.Warn("ws upgrade failed",
			slog.String("room_id", string(roomID)),
			slog.String("error", err.Error()),
		)
		return
	}

	hub := h.hubs.GetOrCreateHub(r)
	client := NewClient(hub, r, h.registry, conn, playerID, h.logger)
	hub.Register(client)
	client.Start()

	// Connecting counts as a heartbeat; it also resumes a room paused for
	// this player and pushes a fresh state snapshot
	client.heartbeat()
}
