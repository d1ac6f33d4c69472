package ws

import (
	"encoding/json"
	"time"

	"github.com/HannanLK/code-red-server/internal/model"
)

// ClientMessage is the inbound envelope. Action selects the handler; the
// matching payload field carries its data.
type ClientMessage struct {
	Action string    `json:"action"` // "move", "ping"
	Move   *WireMove `json:"move,omitempty"`
}

// WireTile is a tile as clients send it. Points are never trusted from the
// wire; the room stamps authoritative values from its distribution.
type WireTile struct {
	Letter string `json:"letter"`
	Blank  bool   `json:"blank,omitempty"`
}

// WirePlacedTile is one placement of a play move
type WirePlacedTile struct {
	Row  int      `json:"row"`
	Col  int      `json:"col"`
	Tile WireTile `json:"tile"`
}

// WireMove is a candidate move as clients send it
type WireMove struct {
	Type      string           `json:"type"`
	Placed    []WirePlacedTile `json:"placed,omitempty"`
	Exchanged []WireTile       `json:"exchanged,omitempty"`
}

// ToModel converts a wire move into the internal move representation
func (m *WireMove) ToModel(playerID model.PlayerID) *model.Move {
	mv := &model.Move{
		Type:     model.MoveType(m.Type),
		PlayerID: playerID,
	}
	for _, pt := range m.Placed {
		mv.Placed = append(mv.Placed, model.PlacedTile{
			Pos:  model.Position{Row: pt.Row, Col: pt.Col},
			Tile: pt.Tile.toModel(),
		})
	}
	for _, t := range m.Exchanged {
		mv.Exchanged = append(mv.Exchanged, t.toModel())
	}
	return mv
}

func (t WireTile) toModel() model.Tile {
	tile := model.Tile{Blank: t.Blank}
	for _, r := range t.Letter {
		tile.Letter = r
		break
	}
	return tile
}

// ServerMessage is the outbound envelope: a room event rendered for one
// connection
type ServerMessage struct {
	Type      string    `json:"type"`
	RoomID    string    `json:"roomId"`
	Timestamp time.Time `json:"timestamp"`
	Payload   any       `json:"payload,omitempty"`
}

// ErrorPayload is sent privately to the submitter when a message is rejected
type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func encodeEvent(ev model.Event) ([]byte, error) {
	return json.Marshal(ServerMessage{
		Type:      string(ev.Type),
		RoomID:    string(ev.RoomID),
		Timestamp: ev.Timestamp,
		Payload:   ev.Payload,
	})
}

func encodeError(roomID model.RoomID, now time.Time, code, message string) []byte {
	data, _ := json.Marshal(ServerMessage{
		Type:      "error",
		RoomID:    string(roomID),
		Timestamp: now,
		Payload:   ErrorPayload{Code: code, Message: message},
	})
	return data
}
