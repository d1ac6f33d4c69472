package model

import "time"

// PlayerID uniquely identifies a participant. Human ids come from the external
// identity collaborator; bot ids come from the bot catalog. A seat holds
// exactly one of the two.
type PlayerID string

// Player describes the occupant of a room seat
type Player struct {
	ID          PlayerID  `json:"id"`
	DisplayName string    `json:"displayName"`
	IsBot       bool      `json:"isBot"`
	BotID       string    `json:"botId,omitempty"` // Catalog id, set only for bots
	JoinedAt    time.Time `json:"joinedAt"`
}

// BotDifficulty controls think-delay range and search effort
type BotDifficulty string

const (
	BotDifficultyBeginner BotDifficulty = "beginner"
	BotDifficultyEasy     BotDifficulty = "easy"
	BotDifficultyMedium   BotDifficulty = "medium"
)

// BotInfo is one catalog entry for an automated opponent
type BotInfo struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Difficulty  BotDifficulty `json:"difficulty"`
	Avatar      string        `json:"avatar"`
	Description string        `json:"description"`
	WinRate     float64       `json:"winRate"`
}
