package cli

import (
	"github.com/spf13/cobra"
)

type botsResponse struct {
	Bots []BotInfo `json:"bots"`
}

func newBotsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bots",
		Short: "List available bot opponents",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result botsResponse
			if err := client.Get("/api/v1/bots", &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result.Bots)
			return nil
		},
	}
}
