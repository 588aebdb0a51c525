package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newChallengeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "challenge",
		Short: "Challenge commands",
	}

	cmd.AddCommand(newChallengeCreateCmd())
	cmd.AddCommand(newChallengeListCmd())
	cmd.AddCommand(newChallengeGetCmd())
	cmd.AddCommand(newChallengeActivateCmd())
	cmd.AddCommand(newChallengeCompleteCmd())
	cmd.AddCommand(newChallengeJoinCmd())
	cmd.AddCommand(newChallengeBoardCmd())
	cmd.AddCommand(newChallengeClaimCmd())
	cmd.AddCommand(newChallengeLeaderboardCmd())

	return cmd
}

func newChallengeCreateCmd() *cobra.Command {
	var title, winCondition string
	var boardSize int

	cmd := &cobra.Command{
		Use:   "create <org-id>",
		Short: "Create a challenge in draft",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{"title": title}
			if winCondition != "" {
				req["win_condition"] = winCondition
			}
			if boardSize != 0 {
				req["board_size"] = boardSize
			}
			var result Challenge

			if err := client.Post("/api/v1/orgs/"+args[0]+"/challenges", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Challenge title (required)")
	cmd.Flags().StringVar(&winCondition, "win", "", "Win condition: row_or_column, full_board")
	cmd.Flags().IntVar(&boardSize, "size", 0, "Board size: 3 or 5")
	_ = cmd.MarkFlagRequired("title")

	return cmd
}

func newChallengeListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <org-id>",
		Short: "List an organization's challenges",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []Challenge

			if err := client.Get("/api/v1/orgs/"+args[0]+"/challenges", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newChallengeGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <challenge-id>",
		Short: "Show a challenge",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Challenge

			if err := client.Get("/api/v1/challenges/"+args[0], &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newChallengeActivateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "activate <challenge-id>",
		Short: "Activate a draft challenge",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Challenge

			if err := client.Post("/api/v1/challenges/"+args[0]+"/activate", nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newChallengeCompleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "complete <challenge-id>",
		Short: "Close an active challenge",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Challenge

			if err := client.Post("/api/v1/challenges/"+args[0]+"/complete", nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newChallengeJoinCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "join <challenge-id>",
		Short: "Join an active challenge",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Participant

			if err := client.Post("/api/v1/challenges/"+args[0]+"/join", nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newChallengeBoardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "board <challenge-id>",
		Short: "Show your board and progress",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Participant

			if err := client.Get("/api/v1/challenges/"+args[0]+"/progress", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newChallengeClaimCmd() *cobra.Command {
	var row, col int
	var evidence string

	cmd := &cobra.Command{
		Use:   "claim <challenge-id>",
		Short: "Claim a board square using a teammate as evidence",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{
				"row":                row,
				"col":                col,
				"claiming_member_id": evidence,
			}
			var result ClaimResult

			if err := client.Post("/api/v1/challenges/"+args[0]+"/claim", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&row, "row", 0, "Board row")
	cmd.Flags().IntVar(&col, "col", 0, "Board column")
	cmd.Flags().StringVar(&evidence, "member", "", "Teammate member ID whose strength backs this claim (required)")
	_ = cmd.MarkFlagRequired("member")

	return cmd
}

func newChallengeLeaderboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "leaderboard <challenge-id>",
		Short: "Show a challenge's standings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []LeaderboardEntry

			path := fmt.Sprintf("/api/v1/challenges/%s/leaderboard", args[0])
			if err := client.Get(path, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
