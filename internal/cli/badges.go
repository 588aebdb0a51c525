package cli

import (
	"github.com/spf13/cobra"
)

func newBadgesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "badges",
		Short: "Show badges you have earned",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []BadgeAward

			if err := client.Get("/api/v1/badges/me", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
