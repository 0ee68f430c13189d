package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/studioline/intake-backend/internal/projects/domain"
)

func newSubmitCmd(opts *options) *cobra.Command {
	var req domain.SubmitRequest

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit a project inquiry",
		Example: `  intakectl submit --name "Ana" --email ana@example.com \
    --service-type web-dev --budget 10k-25k --description "Landing page"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := opts.client().Submit(cmd.Context(), req)
			if err != nil {
				return err
			}

			p := opts.printer(cmd.OutOrStdout())
			if opts.jsonOutput {
				return p.json(resp)
			}
			p.success("Submitted project %s", resp.ProjectID)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Name, "name", "", "client name")
	cmd.Flags().StringVar(&req.Email, "email", "", "client email")
	cmd.Flags().StringVar(&req.Company, "company", "", "company (optional)")
	cmd.Flags().StringVar(&req.ServiceType, "service-type", "", "requested service, e.g. web-dev")
	cmd.Flags().StringVar(&req.Budget, "budget", "", "budget band, e.g. 10k-25k")
	cmd.Flags().StringVar(&req.Description, "description", "", "project description")

	return cmd
}

func newListCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List project inquiries, newest first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := opts.client().List(cmd.Context())
			if err != nil {
				return err
			}
			return opts.printer(cmd.OutOrStdout()).projectTable(items)
		},
	}
}

func newGetCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one project inquiry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			it, err := opts.client().Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return opts.printer(cmd.OutOrStdout()).projectDetail(it)
		},
	}
}

func newQuoteCmd(opts *options) *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "quote <id> <amount>",
		Short: "Send a quote for a project inquiry",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", args[1], err)
			}

			it, err := opts.client().SendQuote(cmd.Context(), args[0], amount, domain.Status(status))
			if err != nil {
				return err
			}

			p := opts.printer(cmd.OutOrStdout())
			if opts.jsonOutput {
				return p.json(it)
			}
			p.success("Quoted %s at %s (%s)", it.ID, formatQuote(it.Quote), statusLabel(it.Status))
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", string(domain.StatusQuoted), "status to set: quoted, accepted or rejected")

	return cmd
}

func newDeleteCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a project inquiry",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.client().Delete(cmd.Context(), args[0]); err != nil {
				return err
			}

			p := opts.printer(cmd.OutOrStdout())
			if opts.jsonOutput {
				return p.json(map[string]any{"success": true, "id": args[0]})
			}
			p.success("Deleted project %s", args[0])
			return nil
		},
	}
}
