package response

import (
	"github.com/HannanLK/code-red-server/internal/model"
)

// RoomResponse wraps the viewer's snapshot of a room
type RoomResponse struct {
	Room model.RoomSnapshot `json:"room"`
}

// MovesResponse is the committed move log of a room
type MovesResponse struct {
	Moves []model.Move `json:"moves"`
}

// MoveAcceptedResponse returns the committed move and the submitter's fresh
// view of the room
type MoveAcceptedResponse struct {
	Move model.Move         `json:"move"`
	Room model.RoomSnapshot `json:"room"`
}

// BotsResponse lists the available automated opponents
type BotsResponse struct {
	Bots []model.BotInfo `json:"bots"`
}

// SummaryResponse wraps an archived game summary
type SummaryResponse struct {
	Summary model.GameSummary `json:"summary"`
}

// HealthResponse reports server liveness
type HealthResponse struct {
	Status string `json:"status"`
}
