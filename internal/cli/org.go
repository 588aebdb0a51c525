package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newOrgCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "org",
		Short: "Organization management commands",
	}

	cmd.AddCommand(newOrgCreateCmd())
	cmd.AddCommand(newOrgGetCmd())
	cmd.AddCommand(newOrgMembersCmd())
	cmd.AddCommand(newOrgSetRoleCmd())
	cmd.AddCommand(newOrgDeactivateCmd())

	return cmd
}

func newOrgCreateCmd() *cobra.Command {
	var name, slug string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an organization (you become its owner)",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{
				"name": name,
				"slug": slug,
			}
			var result Organization

			if err := client.Post("/api/v1/orgs", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Organization name (required)")
	cmd.Flags().StringVar(&slug, "slug", "", "URL slug (required)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("slug")

	return cmd
}

func newOrgGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <org-id>",
		Short: "Show an organization",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Organization

			if err := client.Get("/api/v1/orgs/"+args[0], &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newOrgMembersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "members <org-id>",
		Short: "List an organization's members",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []Member

			if err := client.Get("/api/v1/orgs/"+args[0]+"/members", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newOrgSetRoleCmd() *cobra.Command {
	var role string

	cmd := &cobra.Command{
		Use:   "set-role <org-id> <member-id>",
		Short: "Change a member's role",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"role": role}
			var result Member

			path := fmt.Sprintf("/api/v1/orgs/%s/members/%s/role", args[0], args[1])
			if err := client.Put(path, req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&role, "role", "", "New role: OWNER, ADMIN, MEMBER (required)")
	_ = cmd.MarkFlagRequired("role")

	return cmd
}

func newOrgDeactivateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "deactivate <org-id> <member-id>",
		Short: "Deactivate a member",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Member

			path := fmt.Sprintf("/api/v1/orgs/%s/members/%s/deactivate", args[0], args[1])
			if err := client.Post(path, nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
