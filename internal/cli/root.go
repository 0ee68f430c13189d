package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/studioline/intake-backend/internal/client"
)

type options struct {
	server     string
	token      string
	jsonOutput bool
	timeout    time.Duration
}

// NewRootCmd builds the intakectl command tree.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "intakectl",
		Short:         "Operator CLI for the project intake API",
		Long:          `intakectl lists, quotes and deletes client project inquiries held by the intake backend.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// flag > env > default
			if opts.server == "" {
				opts.server = os.Getenv("INTAKE_SERVER")
			}
			if opts.server == "" {
				opts.server = client.DefaultServer
			}
			if opts.token == "" {
				opts.token = os.Getenv("INTAKE_TOKEN")
			}
		},
	}

	root.PersistentFlags().StringVar(&opts.server, "server", "", "API base URL including prefix (env INTAKE_SERVER)")
	root.PersistentFlags().StringVar(&opts.token, "token", "", "bearer token (env INTAKE_TOKEN)")
	root.PersistentFlags().BoolVar(&opts.jsonOutput, "json", false, "output as JSON")
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", client.DefaultTimeout, "request timeout")

	root.AddCommand(
		newSubmitCmd(opts),
		newListCmd(opts),
		newGetCmd(opts),
		newQuoteCmd(opts),
		newDeleteCmd(opts),
		newHealthCmd(opts),
		newMetricsCmd(opts),
	)

	return root
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, newPrinter(os.Stderr, false).failure(err.Error()))
		os.Exit(1)
	}
}

func (o *options) client() *client.Client {
	return client.New(o.token, client.WithServer(o.server), client.WithTimeout(o.timeout))
}

func (o *options) printer(w io.Writer) *printer {
	return newPrinter(w, o.jsonOutput)
}
