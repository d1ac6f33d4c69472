package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Room:
		o.printRoom(v)
	case []Move:
		o.printMoves(v)
	case MoveAccepted:
		o.printMoveAccepted(v)
	case []BotInfo:
		o.printBots(v)
	case Summary:
		o.printSummary(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Room response type (matches API)
type Room struct {
	ID                string     `json:"id"`
	Status            string     `json:"status"`
	Board             [][]string `json:"board"`
	BagCount          int        `json:"bagCount"`
	Seats             []Seat     `json:"seats"`
	CurrentPlayerID   string     `json:"currentPlayerId"`
	MoveNumber        int        `json:"moveNumber"`
	ConsecutivePasses int        `json:"consecutivePasses"`
	Winner            string     `json:"winner,omitempty"`
	EndReason         string     `json:"endReason,omitempty"`
}

// Seat response type
type Seat struct {
	Player          Player `json:"player"`
	Score           int    `json:"score"`
	RackCount       int    `json:"rackCount"`
	Rack            []Tile `json:"rack,omitempty"`
	TimeRemainingMs int64  `json:"timeRemainingMs"`
	Connected       bool   `json:"connected"`
}

// Player response type
type Player struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	IsBot       bool   `json:"isBot"`
}

// Tile response type
type Tile struct {
	Letter string `json:"letter"`
	Points int    `json:"points"`
	Blank  bool   `json:"blank,omitempty"`
}

// Move response type
type Move struct {
	Type      string    `json:"type"`
	PlayerID  string    `json:"playerId"`
	Words     []string  `json:"words,omitempty"`
	Score     int       `json:"score"`
	Number    int       `json:"number"`
	Timestamp time.Time `json:"timestamp"`
}

// MoveAccepted response type
type MoveAccepted struct {
	Move Move `json:"move"`
	Room Room `json:"room"`
}

// BotInfo response type
type BotInfo struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Difficulty  string  `json:"difficulty"`
	Avatar      string  `json:"avatar"`
	Description string  `json:"description"`
	WinRate     float64 `json:"winRate"`
}

// Summary response type
type Summary struct {
	RoomID      string         `json:"roomId"`
	Winner      string         `json:"winner"`
	Reason      string         `json:"reason"`
	FinalScores map[string]int `json:"finalScores"`
	Moves       int            `json:"moves"`
	CompletedAt time.Time      `json:"completedAt"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printRoom(r Room) {
	fmt.Printf("Room: %s\n", r.ID)
	fmt.Printf("Status: %s\n", r.Status)
	fmt.Printf("Bag: %d tiles\n", r.BagCount)
	fmt.Printf("Moves: %d\n", r.MoveNumber)
	if r.CurrentPlayerID != "" {
		fmt.Printf("Current turn: %s\n", r.CurrentPlayerID)
	}
	if r.Winner != "" {
		fmt.Printf("Winner: %s (%s)\n", r.Winner, r.EndReason)
	} else if r.EndReason != "" {
		fmt.Printf("Ended: %s (tie)\n", r.EndReason)
	}

	fmt.Printf("Seats (%d):\n", len(r.Seats))
	for _, s := range r.Seats {
		tags := []string{}
		if s.Player.IsBot {
			tags = append(tags, "bot")
		}
		if !s.Connected {
			tags = append(tags, "disconnected")
		}
		tagStr := ""
		if len(tags) > 0 {
			tagStr = " [" + strings.Join(tags, ", ") + "]"
		}
		remaining := time.Duration(s.TimeRemainingMs) * time.Millisecond
		fmt.Printf("  - %s (%s)%s: %d points, %s left\n",
			s.Player.DisplayName, s.Player.ID, tagStr, s.Score, remaining.Round(time.Second))
		if len(s.Rack) > 0 {
			letters := make([]string, len(s.Rack))
			for i, t := range s.Rack {
				letters[i] = t.Letter
			}
			fmt.Printf("    Rack: %s\n", strings.Join(letters, " "))
		}
	}

	if len(r.Board) > 0 {
		fmt.Println("\nBoard:")
		o.printBoard(r.Board)
	}
}

func (o *Output) printBoard(cells [][]string) {
	size := len(cells)

	fmt.Print("    ")
	for col := 0; col < size; col++ {
		fmt.Printf("%2d ", col)
	}
	fmt.Println()

	for row := 0; row < size; row++ {
		fmt.Printf(" %2d ", row)
		for col := 0; col < size; col++ {
			cell := cells[row][col]
			if cell == "" {
				fmt.Print(" . ")
			} else {
				fmt.Printf(" %s ", cell)
			}
		}
		fmt.Println()
	}
}

func (o *Output) printMoves(moves []Move) {
	if len(moves) == 0 {
		fmt.Println("No moves yet")
		return
	}
	for _, m := range moves {
		line := fmt.Sprintf("%3d. %s %s", m.Number, m.PlayerID, m.Type)
		if len(m.Words) > 0 {
			line += " " + strings.Join(m.Words, ",")
		}
		if m.Type == "play" {
			line += fmt.Sprintf(" (+%d)", m.Score)
		}
		fmt.Println(line)
	}
}

func (o *Output) printMoveAccepted(m MoveAccepted) {
	fmt.Printf("Move %d accepted: %s", m.Move.Number, m.Move.Type)
	if len(m.Move.Words) > 0 {
		fmt.Printf(" %s (+%d points)", strings.Join(m.Move.Words, ","), m.Move.Score)
	}
	fmt.Println()
	o.printRoom(m.Room)
}

func (o *Output) printBots(bots []BotInfo) {
	fmt.Printf("Available bots (%d):\n", len(bots))
	for _, b := range bots {
		fmt.Printf("  %s %s (%s) - %s [win rate %.0f%%]\n",
			b.Avatar, b.Name, b.Difficulty, b.Description, b.WinRate*100)
	}
}

func (o *Output) printSummary(s Summary) {
	fmt.Printf("Room: %s\n", s.RoomID)
	if s.Winner != "" {
		fmt.Printf("Winner: %s\n", s.Winner)
	} else {
		fmt.Println("Result: tie")
	}
	fmt.Printf("Reason: %s\n", s.Reason)
	fmt.Printf("Moves: %d\n", s.Moves)
	fmt.Println("Final scores:")
	for pid, score := range s.FinalScores {
		fmt.Printf("  %s: %d\n", pid, score)
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
