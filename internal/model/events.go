package model

import "time"

// EventType identifies an outward event emitted by a room
type EventType string

const (
	EventPlayerJoined  EventType = "player_joined"
	EventGameStarted   EventType = "game_started"
	EventStateSnapshot EventType = "state"
	EventMoveCommitted EventType = "move_committed"
	EventTurnChanged   EventType = "turn_changed"
	EventTimerSync     EventType = "timer_sync"
	EventTimerExpired  EventType = "timer_expired"
	EventGamePaused    EventType = "game_paused"
	EventGameResumed   EventType = "game_resumed"
	EventGameCompleted EventType = "game_completed"
	EventGameAbandoned EventType = "game_abandoned"
)

// Event is an outward notification for broadcast to room members. Validation
// failures are never events; they return to the submitter only.
type Event struct {
	Type      EventType
	RoomID    RoomID
	Timestamp time.Time
	Payload   any
}

// PlayerJoinedPayload contains data for player joined events
type PlayerJoinedPayload struct {
	Player Player `json:"player"`
	Seat   int    `json:"seat"`
}

// GameStartedPayload contains data for game started events
type GameStartedPayload struct {
	StartingPlayerID PlayerID `json:"startingPlayerId"`
}

// MoveCommittedPayload contains data for move committed events
type MoveCommittedPayload struct {
	Move Move `json:"move"`
}

// TurnChangedPayload contains data for turn changed events
type TurnChangedPayload struct {
	PlayerID PlayerID `json:"playerId"`
}

// TimerSyncPayload mirrors the clock snapshot broadcast on the sync cadence
type TimerSyncPayload struct {
	Player1Ms     int64    `json:"player1Ms"`
	Player2Ms     int64    `json:"player2Ms"`
	CurrentPlayer PlayerID `json:"currentPlayer"`
	Paused        bool     `json:"paused"`
}

// TimerExpiredPayload contains data for timer expired events
type TimerExpiredPayload struct {
	PlayerID PlayerID `json:"playerId"`
	Seat     int      `json:"seat"`
}

// GameCompletedPayload contains data for game completed events
type GameCompletedPayload struct {
	Winner      PlayerID         `json:"winner"` // Empty on a tie
	Reason      EndReason        `json:"reason"`
	FinalScores map[PlayerID]int `json:"finalScores"`
}

// GamePausedPayload contains data for pause/resume events
type GamePausedPayload struct {
	PlayerID PlayerID `json:"playerId"` // The disconnected or returning player
}

// StateSnapshotPayload wraps a full room snapshot
type StateSnapshotPayload struct {
	Snapshot RoomSnapshot `json:"snapshot"`
}
