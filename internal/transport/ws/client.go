package ws

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/gorilla/websocket"

	"github.com/HannanLK/code-red-server/internal/model"
	"github.com/HannanLK/code-red-server/internal/services/room"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 8192
	sendBufferSize = 64
)

// Client is one websocket connection bound to a seated player. The read pump
// doubles as the player's heartbeat: any inbound frame, including pongs,
// refreshes their liveness in the room.
type Client struct {
	hub      *Hub
	room     *room.Room
	registry *room.Registry
	conn     *websocket.Conn
	send     chan []byte

	playerID    model.PlayerID
	connectedAt time.Time
	logger      *slog.Logger
}

// NewClient wraps an upgraded connection
func NewClient(hub *Hub, r *room.Room, registry *room.Registry, conn *websocket.Conn, playerID model.PlayerID, logger *slog.Logger) *Client {
	return &Client{
		hub:         hub,
		room:        r,
		registry:    registry,
		conn:        conn,
		send:        make(chan []byte, sendBufferSize),
		playerID:    playerID,
		connectedAt: time.Now(),
		logger: logger.With(
			slog.String("room_id", string(r.ID())),
			slog.String("player_id", string(playerID)),
		),
	}
}

// Start launches the read and write pumps
func (c *Client) Start() {
	go c.writePump()
	go c.readPump()
}

func (c *Client) readPump() {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		c.heartbeat()
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Warn("ws read failed", slog.String("error", err.Error()))
			}
			return
		}

		var msg ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			c.sendError("bad_message", "message is not valid JSON")
			continue
		}
		c.handle(&msg)
	}
}

func (c *Client) handle(msg *ClientMessage) {
	switch msg.Action {
	case "move":
		if msg.Move == nil {
			c.sendError("bad_message", "move action requires a move payload")
			return
		}
		c.submitMove(msg.Move)
	case "ping":
		c.heartbeat()
	default:
		c.sendError("bad_message", "unknown action: "+msg.Action)
	}
}

func (c *Client) submitMove(wire *WireMove) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	mv := wire.ToModel(c.playerID)
	events, err := c.room.SubmitMove(ctx, c.playerID, mv)
	// A rejected move can still carry events (a timer expiry observed on
	// entry); broadcast them either way
	c.registry.Dispatch(c.room, events)
	if err != nil {
		c.logger.Info("move rejected",
			slog.String("type", string(mv.Type)),
			slog.String("error", err.Error()),
		)
		c.sendError(errorCode(err), err.Error())
	}
}

func (c *Client) heartbeat() {
	events := c.room.Heartbeat(c.playerID)
	c.registry.Dispatch(c.room, events)
}

func (c *Client) sendError(code, message string) {
	data := encodeError(c.room.ID(), time.Now(), code, message)
	select {
	case c.send <- data:
	default:
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// errorCode maps move rejections to stable wire codes
func errorCode(err error) string {
	switch {
	case errors.Is(err, model.ErrGameNotActive):
		return "game_not_active"
	case errors.Is(err, model.ErrNotYourTurn):
		return "not_your_turn"
	case errors.Is(err, model.ErrInvalidPlacement):
		return "invalid_placement"
	case errors.Is(err, model.ErrRackMismatch):
		return "rack_mismatch"
	case errors.Is(err, model.ErrExchangeNotAllowed):
		return "exchange_not_allowed"
	case errors.Is(err, model.ErrChallengeNotAllowed):
		return "challenge_not_allowed"
	case errors.Is(err, model.ErrDictionaryUnavailable):
		return "dictionary_unavailable"
	default:
		var invalidWord *model.InvalidWordError
		if errors.As(err, &invalidWord) {
			return "invalid_word"
		}
		return "internal_error"
	}
}
