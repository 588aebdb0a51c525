package cli

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

func newStrengthsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "strengths",
		Short: "Strength assessment commands",
	}

	cmd.AddCommand(newStrengthsUploadCmd())
	cmd.AddCommand(newStrengthsMeCmd())
	cmd.AddCommand(newStrengthsGetCmd())

	return cmd
}

func newStrengthsUploadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "upload <report-file>",
		Short: "Upload a strength assessment report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			req := map[string]string{
				"filename": filepath.Base(args[0]),
				"content":  string(data),
			}
			var result Assessment

			if err := client.Post("/api/v1/strengths/report", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newStrengthsMeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Show your strength assessment",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Assessment

			if err := client.Get("/api/v1/strengths/me", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newStrengthsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <member-id>",
		Short: "Show a teammate's strength assessment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Assessment

			if err := client.Get("/api/v1/strengths/"+args[0], &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
