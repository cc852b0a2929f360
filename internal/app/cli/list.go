package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	voucherhttpmapper "github.com/Apurer/voucher-portal/internal/domains/vouchers/adapters/http/mapper"
)

// NewListCommand creates the list command.
func NewListCommand(opts *RootOptions) *cobra.Command {
	var modules []string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List voucher requests, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			services, cleanup, err := opts.services(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			requests, err := services.Vouchers.ListRequestsByModule(cmd.Context(), modules)
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to list requests", err)
			}
			out := voucherhttpmapper.FromDomainRequests(requests)
			return opts.formatter(cmd).Success(out, func(w io.Writer) error {
				fmt.Fprintln(w, "ID\tSUBMITTED\tSTATUS\tPARTNER\tTOTAL\tAPPROVED BY")
				for _, r := range out {
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.2f\t%s\n",
						r.ID, r.SubmissionDate, r.Status, r.PartnerInfo.PartnerName, r.TotalValue, dash(r.ApprovedBy))
				}
				return nil
			})
		},
	}
	cmd.Flags().StringSliceVar(&modules, "module", nil, "Only requests carrying one of these module ids")
	return cmd
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
