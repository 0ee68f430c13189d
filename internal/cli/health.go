package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newHealthCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check server and store health",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := opts.client().Health(cmd.Context())
			if err != nil {
				return err
			}

			p := opts.printer(cmd.OutOrStdout())
			if opts.jsonOutput {
				return p.json(h)
			}
			p.success("%s %s is %s (store %s)", h.Service, h.Version, h.Status, h.Store)
			return nil
		},
	}
}

func newMetricsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "metrics",
		Short: "Show repository counters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := opts.client().Metrics(cmd.Context())
			if err != nil {
				return err
			}

			p := opts.printer(cmd.OutOrStdout())
			if opts.jsonOutput {
				return p.json(m)
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "creates:          %d\n", m.Creates)
			fmt.Fprintf(w, "quotes:           %d\n", m.Quotes)
			fmt.Fprintf(w, "deletes:          %d\n", m.Deletes)
			fmt.Fprintf(w, "store errors:     %d\n", m.StoreErrors)
			fmt.Fprintf(w, "dangling skipped: %d\n", m.DanglingSkipped)
			fmt.Fprintf(w, "index repairs:    %d\n", m.Repairs)
			return nil
		},
	}
}
