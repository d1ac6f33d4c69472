package model

import "time"

// RoomID uniquely identifies a game room
type RoomID string

// RoomStatus represents the lifecycle phase of a room. Status only ever
// advances: waiting -> active -> {completed, abandoned}, with paused as a
// temporary detour from active while a disconnected seat is in its grace
// window.
type RoomStatus string

const (
	RoomStatusWaiting   RoomStatus = "waiting"
	RoomStatusActive    RoomStatus = "active"
	RoomStatusPaused    RoomStatus = "paused"
	RoomStatusCompleted RoomStatus = "completed"
	RoomStatusAbandoned RoomStatus = "abandoned"
)

// Terminal reports whether no further moves are accepted
func (s RoomStatus) Terminal() bool {
	return s == RoomStatusCompleted || s == RoomStatusAbandoned
}

// SeatView is the client-facing view of one player slot
type SeatView struct {
	Player          Player `json:"player"`
	Score           int    `json:"score"`
	RackCount       int    `json:"rackCount"`
	Rack            []Tile `json:"rack,omitempty"` // Only present for the viewer's own seat
	TimeRemainingMs int64  `json:"timeRemainingMs"`
	Connected       bool   `json:"connected"`
}

// RoomSnapshot is the full outward view of a room at one instant
type RoomSnapshot struct {
	ID                RoomID     `json:"id"`
	Status            RoomStatus `json:"status"`
	Board             [][]string `json:"board"` // Letters, "" for empty cells
	BagCount          int        `json:"bagCount"`
	Seats             []SeatView `json:"seats"`
	CurrentPlayerID   PlayerID   `json:"currentPlayerId,omitempty"`
	MoveNumber        int        `json:"moveNumber"`
	ConsecutivePasses int        `json:"consecutivePasses"`
	LastMove          *Move      `json:"lastMove,omitempty"`
	Winner            PlayerID   `json:"winner,omitempty"`
	EndReason         EndReason  `json:"endReason,omitempty"`
	CreatedAt         time.Time  `json:"createdAt"`
}
