package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/HannanLK/code-red-server/internal/api/apierr"
	"github.com/HannanLK/code-red-server/internal/api/request"
	"github.com/HannanLK/code-red-server/internal/api/response"
	"github.com/HannanLK/code-red-server/internal/model"
	"github.com/HannanLK/code-red-server/internal/services/bot"
	"github.com/HannanLK/code-red-server/internal/services/room"
	"github.com/HannanLK/code-red-server/internal/storage"
)

// RoomHandler handles room lifecycle and move endpoints
type RoomHandler struct {
	registry *room.Registry
	store    storage.Storage
	logger   *slog.Logger
}

// NewRoomHandler creates a new room handler
func NewRoomHandler(registry *room.Registry, store storage.Storage, logger *slog.Logger) *RoomHandler {
	return &RoomHandler{
		registry: registry,
		store:    store,
		logger:   logger.With(slog.String("component", "api")),
	}
}

// Join handles POST /api/v1/rooms/join: matchmake into a waiting room or
// create a fresh one
func (h *RoomHandler) Join(w http.ResponseWriter, r *http.Request) {
	var req request.JoinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, apierr.NewInvalidRequestError("invalid join request body"))
		return
	}
	if strings.TrimSpace(req.PlayerID) == "" {
		WriteError(w, apierr.NewInvalidRequestError("playerId is required"))
		return
	}
	if strings.TrimSpace(req.DisplayName) == "" {
		req.DisplayName = req.PlayerID
	}

	gameRoom, err := h.registry.JoinOrCreate(r.Context(), model.PlayerID(req.PlayerID), req.DisplayName)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RoomResponse{
		Room: gameRoom.Snapshot(model.PlayerID(req.PlayerID)),
	})
}

// JoinRoom handles POST /api/v1/rooms/{room_id}/join: seat in (or reconnect
// to) a specific room
func (h *RoomHandler) JoinRoom(w http.ResponseWriter, r *http.Request) {
	roomID := model.RoomID(mux.Vars(r)["room_id"])

	var req request.JoinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, apierr.NewInvalidRequestError("invalid join request body"))
		return
	}
	if strings.TrimSpace(req.PlayerID) == "" {
		WriteError(w, apierr.NewInvalidRequestError("playerId is required"))
		return
	}
	if strings.TrimSpace(req.DisplayName) == "" {
		req.DisplayName = req.PlayerID
	}

	gameRoom, err := h.registry.Get(roomID)
	if err != nil {
		WriteError(w, err)
		return
	}

	events, err := gameRoom.Join(r.Context(), model.PlayerID(req.PlayerID), req.DisplayName)
	if err != nil {
		WriteError(w, err)
		return
	}
	h.registry.Dispatch(gameRoom, events)

	response.JSON(w, http.StatusOK, response.RoomResponse{
		Room: gameRoom.Snapshot(model.PlayerID(req.PlayerID)),
	})
}

// Get handles GET /api/v1/rooms/{room_id}. The optional player_id query
// parameter includes that seat's rack in the snapshot.
func (h *RoomHandler) Get(w http.ResponseWriter, r *http.Request) {
	roomID := model.RoomID(mux.Vars(r)["room_id"])
	viewer := model.PlayerID(r.URL.Query().Get("player_id"))

	gameRoom, err := h.registry.Get(roomID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RoomResponse{Room: gameRoom.Snapshot(viewer)})
}

// Moves handles GET /api/v1/rooms/{room_id}/moves
func (h *RoomHandler) Moves(w http.ResponseWriter, r *http.Request) {
	roomID := model.RoomID(mux.Vars(r)["room_id"])

	gameRoom, err := h.registry.Get(roomID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.MovesResponse{Moves: gameRoom.History()})
}

// SubmitMove handles POST /api/v1/rooms/{room_id}/players/{player_id}/moves
func (h *RoomHandler) SubmitMove(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	roomID := model.RoomID(vars["room_id"])
	playerID := model.PlayerID(vars["player_id"])

	var req request.MoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, apierr.NewInvalidRequestError("invalid move request body"))
		return
	}

	gameRoom, err := h.registry.Get(roomID)
	if err != nil {
		WriteError(w, err)
		return
	}

	mv := moveFromRequest(&req, playerID)
	events, err := gameRoom.SubmitMove(r.Context(), playerID, mv)
	// A rejected move can still carry events (a timer expiry observed on
	// entry); broadcast them either way
	h.registry.Dispatch(gameRoom, events)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.MoveAcceptedResponse{
		Move: *mv,
		Room: gameRoom.Snapshot(playerID),
	})
}

// AttachBot handles POST /api/v1/rooms/{room_id}/bots
func (h *RoomHandler) AttachBot(w http.ResponseWriter, r *http.Request) {
	roomID := model.RoomID(mux.Vars(r)["room_id"])

	var req request.AttachBotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, apierr.NewInvalidRequestError("invalid bot request body"))
		return
	}

	info, ok := bot.Lookup(req.BotID)
	if !ok {
		WriteError(w, apierr.NewBotNotFoundError(req.BotID))
		return
	}

	gameRoom, err := h.registry.Get(roomID)
	if err != nil {
		WriteError(w, err)
		return
	}

	events, err := gameRoom.AttachBot(r.Context(), info)
	if err != nil {
		WriteError(w, err)
		return
	}
	h.registry.Dispatch(gameRoom, events)

	response.JSON(w, http.StatusOK, response.RoomResponse{Room: gameRoom.Snapshot("")})
}

// Summary handles GET /api/v1/summaries/{room_id}
func (h *RoomHandler) Summary(w http.ResponseWriter, r *http.Request) {
	roomID := model.RoomID(mux.Vars(r)["room_id"])

	summary, err := h.store.GetGameSummary(r.Context(), roomID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SummaryResponse{Summary: *summary})
}

// moveFromRequest converts the wire move into the internal representation.
// Tile point values are left zero; the room stamps authoritative values.
func moveFromRequest(req *request.MoveRequest, playerID model.PlayerID) *model.Move {
	mv := &model.Move{
		Type:     model.MoveType(req.Type),
		PlayerID: playerID,
	}
	for _, pt := range req.Placed {
		mv.Placed = append(mv.Placed, model.PlacedTile{
			Pos:  model.Position{Row: pt.Row, Col: pt.Col},
			Tile: tileFromRequest(pt.Tile),
		})
	}
	for _, t := range req.Exchanged {
		mv.Exchanged = append(mv.Exchanged, tileFromRequest(t))
	}
	return mv
}

func tileFromRequest(t request.Tile) model.Tile {
	tile := model.Tile{Blank: t.Blank}
	for _, r := range t.Letter {
		tile.Letter = r
		break
	}
	return tile
}
