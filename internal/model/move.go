package model

import "time"

// MoveType identifies the kind of move a player submitted
type MoveType string

const (
	MoveTypePlay      MoveType = "play"
	MoveTypeExchange  MoveType = "exchange"
	MoveTypePass      MoveType = "pass"
	MoveTypeChallenge MoveType = "challenge"
)

// PlacedTile is one tile of a play move
type PlacedTile struct {
	Pos  Position `json:"pos"`
	Tile Tile     `json:"tile"`
}

// Move is a single committed or candidate move. Committed moves are
// append-only: Number is assigned on commit and the record never mutates.
type Move struct {
	Type      MoveType     `json:"type"`
	PlayerID  PlayerID     `json:"playerId"`
	Placed    []PlacedTile `json:"placed,omitempty"`    // play only
	Exchanged []Tile       `json:"exchanged,omitempty"` // exchange only
	Words     []string     `json:"words,omitempty"`     // filled in by validation
	Score     int          `json:"score"`               // filled in by validation
	Number    int          `json:"number"`
	Timestamp time.Time    `json:"timestamp"`
}

// WordCell is one cell of a formed word: the position, the tile occupying it,
// and whether the tile was placed by this move (premiums only count for new
// tiles)
type WordCell struct {
	Pos  Position
	Tile Tile
	New  bool
}

// FormedWord is a word produced by a play move, main or perpendicular
type FormedWord struct {
	Word  string
	Cells []WordCell
}

// ConsecutivePassLimit ends the game when reached (three full rounds of
// passing between two players)
const ConsecutivePassLimit = 6

// EndReason records why a game reached a terminal status
type EndReason string

const (
	EndReasonPassLimit   EndReason = "pass_limit"
	EndReasonBagEmpty    EndReason = "bag_empty"
	EndReasonTimeExpired EndReason = "time_expired"
	EndReasonForfeit     EndReason = "forfeit"
)

// GameSummary is the record archived through the persistence collaborator
// when a room reaches a terminal status
type GameSummary struct {
	RoomID      RoomID           `json:"roomId"`
	Winner      PlayerID         `json:"winner"` // Empty on a tie
	Reason      EndReason        `json:"reason"`
	FinalScores map[PlayerID]int `json:"finalScores"`
	Moves       int              `json:"moves"`
	CompletedAt time.Time        `json:"completedAt"`
}
