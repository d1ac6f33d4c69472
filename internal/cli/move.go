package cli

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

type moveAcceptedResponse struct {
	Move Move `json:"move"`
	Room Room `json:"room"`
}

func newMoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "move",
		Short: "Submit moves",
	}

	cmd.AddCommand(newMovePlayCmd())
	cmd.AddCommand(newMoveExchangeCmd())
	cmd.AddCommand(newMovePassCmd())
	cmd.AddCommand(newMoveChallengeCmd())

	return cmd
}

// parsePlacement parses "row,col,letter" (append * for a blank, e.g.
// "7,8,A*")
func parsePlacement(s string) (map[string]any, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return nil, fmt.Errorf("invalid placement %q, expected row,col,letter", s)
	}
	row, err := strconv.Atoi(parts[0])
	if err != nil {
		return nil, fmt.Errorf("invalid row in %q", s)
	}
	col, err := strconv.Atoi(parts[1])
	if err != nil {
		return nil, fmt.Errorf("invalid col in %q", s)
	}
	letter := strings.ToUpper(parts[2])
	blank := strings.HasSuffix(letter, "*")
	letter = strings.TrimSuffix(letter, "*")
	if len(letter) != 1 {
		return nil, fmt.Errorf("invalid letter in %q", s)
	}

	return map[string]any{
		"row": row,
		"col": col,
		"tile": map[string]any{
			"letter": letter,
			"blank":  blank,
		},
	}, nil
}

func submitMove(roomID string, body map[string]any) error {
	if cfg.PlayerID == "" {
		return errors.New("--player is required")
	}

	path := fmt.Sprintf("/api/v1/rooms/%s/players/%s/moves",
		url.PathEscape(roomID), url.PathEscape(cfg.PlayerID))

	var result moveAcceptedResponse
	if err := client.Post(path, body, &result); err != nil {
		return err
	}

	NewOutput(cfg.Output).Print(MoveAccepted{Move: result.Move, Room: result.Room})
	return nil
}

func newMovePlayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "play <room-id> <row,col,letter>...",
		Short: "Play tiles onto the board",
		Long: `Play tiles onto the board.

Each placement is row,col,letter with 0-indexed coordinates.
Append * to play a blank as that letter.

Example:
  codered move play R4K2X 7,7,C 7,8,A 7,9,T`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			placed := make([]map[string]any, 0, len(args)-1)
			for _, arg := range args[1:] {
				pt, err := parsePlacement(arg)
				if err != nil {
					return err
				}
				placed = append(placed, pt)
			}

			return submitMove(args[0], map[string]any{
				"type":   "play",
				"placed": placed,
			})
		},
	}
}

func newMoveExchangeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "exchange <room-id> <letters>",
		Short: "Exchange rack tiles for fresh ones",
		Long: `Exchange rack tiles for fresh ones. Use * for a blank.

Example:
  codered move exchange R4K2X QZV`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var tiles []map[string]any
			for _, r := range strings.ToUpper(args[1]) {
				if r == '*' {
					tiles = append(tiles, map[string]any{"letter": "*", "blank": true})
				} else {
					tiles = append(tiles, map[string]any{"letter": string(r)})
				}
			}

			return submitMove(args[0], map[string]any{
				"type":      "exchange",
				"exchanged": tiles,
			})
		},
	}
}

func newMovePassCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pass <room-id>",
		Short: "Pass your turn",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return submitMove(args[0], map[string]any{"type": "pass"})
		},
	}
}

func newMoveChallengeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "challenge <room-id>",
		Short: "Challenge the opponent's last play",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return submitMove(args[0], map[string]any{"type": "challenge"})
		},
	}
}
