// Package cli implements voucherctl, the operator command line.
package cli

import (
	"context"
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/Apurer/voucher-portal/internal/app/wiring"
	"github.com/Apurer/voucher-portal/internal/platform/config"
	platformobservability "github.com/Apurer/voucher-portal/internal/platform/observability"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Format  string // "json" | "text"
	EnvFile string
	open    Opener
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// Opener builds the services a command runs against.
type Opener func(ctx context.Context, opts *RootOptions) (*wiring.Services, func(), error)

// NewRootCommand creates the voucherctl root command backed by the
// configured store.
func NewRootCommand() *cobra.Command {
	return newRootCommand(openConfigured)
}

func newRootCommand(open Opener) *cobra.Command {
	opts := &RootOptions{open: open}

	cmd := &cobra.Command{
		Use:   "voucherctl",
		Short: "Inspect and decide voucher requests",
		Long:  "Operator tool for the voucher portal. Uses the same backend selection as the API.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return NewExitError(ExitCommandError, fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.EnvFile, "env-file", ".env", "optional dotenv file")

	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewStatsCommand(opts))
	cmd.AddCommand(NewDecisionCommand(opts, decisionApprove))
	cmd.AddCommand(NewDecisionCommand(opts, decisionReject))
	cmd.AddCommand(NewCatalogCommand(opts))

	return cmd
}

func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{Format: o.Format, Writer: cmd.OutOrStdout()}
}

func (o *RootOptions) services(ctx context.Context) (*wiring.Services, func(), error) {
	services, cleanup, err := o.open(ctx, o)
	if err != nil {
		return nil, nil, WrapExitError(ExitCommandError, "failed to open voucher backend", err)
	}
	return services, cleanup, nil
}

func openConfigured(ctx context.Context, opts *RootOptions) (*wiring.Services, func(), error) {
	cfg, err := config.Load(opts.EnvFile)
	if err != nil {
		return nil, nil, err
	}
	// Logs go to stderr so they never mix with command output.
	instruments := &platformobservability.Instruments{
		Logger: platformobservability.NewLogger(os.Stderr, "warn"),
	}
	return wiring.Build(ctx, cfg, instruments)
}
