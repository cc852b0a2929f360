package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	voucherhttpmapper "github.com/Apurer/voucher-portal/internal/domains/vouchers/adapters/http/mapper"
)

// NewStatsCommand creates the stats command.
func NewStatsCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show dashboard counters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			services, cleanup, err := opts.services(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			stats, err := services.Vouchers.GetStats(cmd.Context())
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to compute stats", err)
			}
			out := voucherhttpmapper.FromDomainStats(stats)
			return opts.formatter(cmd).Success(out, func(w io.Writer) error {
				fmt.Fprintf(w, "total:    %d\npending:  %d\napproved: %d\nvalue:    %.2f\n", out.Total, out.Pending, out.Approved, out.Value)
				return nil
			})
		},
	}
}
