package request

// JoinRequest seats a player via matchmaking or in a specific room
type JoinRequest struct {
	PlayerID    string `json:"playerId"`
	DisplayName string `json:"displayName"`
}

// AttachBotRequest seats a catalog bot in a room
type AttachBotRequest struct {
	BotID string `json:"botId"`
}

// Tile is a tile as submitted by clients. Point values are assigned
// server-side.
type Tile struct {
	Letter string `json:"letter"`
	Blank  bool   `json:"blank,omitempty"`
}

// PlacedTile is one placement of a play move
type PlacedTile struct {
	Row  int  `json:"row"`
	Col  int  `json:"col"`
	Tile Tile `json:"tile"`
}

// MoveRequest is a candidate move: "play", "exchange", "pass" or "challenge"
type MoveRequest struct {
	Type      string       `json:"type"`
	Placed    []PlacedTile `json:"placed,omitempty"`
	Exchanged []Tile       `json:"exchanged,omitempty"`
}
