package cli

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/spf13/cobra"
)

type roomResponse struct {
	Room Room `json:"room"`
}

type movesResponse struct {
	Moves []Move `json:"moves"`
}

type summaryResponse struct {
	Summary Summary `json:"summary"`
}

func newRoomCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "room",
		Short: "Room operations",
	}

	cmd.AddCommand(newRoomJoinCmd())
	cmd.AddCommand(newRoomGetCmd())
	cmd.AddCommand(newRoomMovesCmd())
	cmd.AddCommand(newRoomBotCmd())
	cmd.AddCommand(newRoomSummaryCmd())

	return cmd
}

func newRoomJoinCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "join [room-id]",
		Short: "Join a room (matchmake if no room id given)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.PlayerID == "" {
				return errors.New("--player is required")
			}
			if name == "" {
				name = cfg.PlayerID
			}

			body := map[string]string{"playerId": cfg.PlayerID, "displayName": name}
			path := "/api/v1/rooms/join"
			if len(args) == 1 {
				path = fmt.Sprintf("/api/v1/rooms/%s/join", url.PathEscape(args[0]))
			}

			var result roomResponse
			if err := client.Post(path, body, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result.Room)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name (defaults to player id)")
	return cmd
}

func newRoomGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <room-id>",
		Short: "Show room state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := fmt.Sprintf("/api/v1/rooms/%s", url.PathEscape(args[0]))
			if cfg.PlayerID != "" {
				path += "?player_id=" + url.QueryEscape(cfg.PlayerID)
			}

			var result roomResponse
			if err := client.Get(path, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result.Room)
			return nil
		},
	}
}

func newRoomMovesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "moves <room-id>",
		Short: "Show a room's move history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result movesResponse
			if err := client.Get(fmt.Sprintf("/api/v1/rooms/%s/moves", url.PathEscape(args[0])), &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result.Moves)
			return nil
		},
	}
}

func newRoomBotCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bot <room-id> <bot-id>",
		Short: "Invite a bot opponent into a room",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			body := map[string]string{"botId": args[1]}

			var result roomResponse
			if err := client.Post(fmt.Sprintf("/api/v1/rooms/%s/bots", url.PathEscape(args[0])), body, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result.Room)
			return nil
		},
	}
}

func newRoomSummaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary <room-id>",
		Short: "Show the archived summary of a finished game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result summaryResponse
			if err := client.Get(fmt.Sprintf("/api/v1/summaries/%s", url.PathEscape(args[0])), &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result.Summary)
			return nil
		},
	}
}
