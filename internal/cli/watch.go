package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"
)

func newWatchCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "watch <room-id>",
		Short: "Stream live room events over websocket",
		Long: `Connect to the room's websocket endpoint and stream events in real-time.

Events include:
  - player_joined: A player took a seat
  - game_started: Both seats filled, game begins
  - state: Full room snapshot
  - move_committed: A move was accepted
  - turn_changed: Turn passed to the other player
  - timer_sync: Clock counters (every 5 seconds)
  - timer_expired: A player ran out of time
  - game_paused / game_resumed: Disconnect handling
  - game_completed / game_abandoned: Game over

Press Ctrl+C to disconnect.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.PlayerID == "" {
				return errors.New("--player is required")
			}
			return watchRoom(args[0], jsonOutput)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output events as JSON lines")

	return cmd
}

// wsEvent is the outbound server envelope
type wsEvent struct {
	Type      string          `json:"type"`
	RoomID    string          `json:"roomId"`
	Timestamp time.Time       `json:"timestamp"`
	Payload   json.RawMessage `json:"payload"`
}

func watchRoom(roomID string, jsonOutput bool) error {
	wsURL, err := websocketURL(cfg.ServerURL, roomID, cfg.PlayerID)
	if err != nil {
		return err
	}

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		return fmt.Errorf("connection failed: %w", err)
	}
	defer conn.Close()

	if !jsonOutput {
		fmt.Printf("Connected to room %s as %s\n", roomID, cfg.PlayerID)
	}

	// Disconnect cleanly on interrupt
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		_ = conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		conn.Close()
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				return nil
			}
			return fmt.Errorf("connection closed: %w", err)
		}

		if jsonOutput {
			fmt.Println(string(data))
			continue
		}

		var ev wsEvent
		if err := json.Unmarshal(data, &ev); err != nil {
			fmt.Printf("[%s] %s\n", time.Now().Format("15:04:05"), string(data))
			continue
		}
		fmt.Printf("[%s] %s %s\n",
			ev.Timestamp.Format("15:04:05"), ev.Type, summarizePayload(ev))
	}
}

// websocketURL converts the HTTP server URL into the room's ws endpoint
func websocketURL(serverURL, roomID, playerID string) (string, error) {
	u, err := url.Parse(serverURL)
	if err != nil {
		return "", fmt.Errorf("invalid server URL: %w", err)
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	}
	u.Path = fmt.Sprintf("/ws/%s/%s", url.PathEscape(roomID), url.PathEscape(playerID))
	return u.String(), nil
}

func summarizePayload(ev wsEvent) string {
	var payload map[string]any
	if err := json.Unmarshal(ev.Payload, &payload); err != nil {
		return ""
	}

	var parts []string
	for _, key := range []string{"playerId", "currentPlayer", "winner", "reason", "player1Ms", "player2Ms"} {
		if v, ok := payload[key]; ok {
			parts = append(parts, fmt.Sprintf("%s=%v", key, v))
		}
	}
	return strings.Join(parts, " ")
}
