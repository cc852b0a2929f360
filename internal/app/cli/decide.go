package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	voucherhttpmapper "github.com/Apurer/voucher-portal/internal/domains/vouchers/adapters/http/mapper"
	voucherdomain "github.com/Apurer/voucher-portal/internal/domains/vouchers/domain"
	voucherports "github.com/Apurer/voucher-portal/internal/domains/vouchers/ports"
)

type decision struct {
	verb   string
	status voucherdomain.RequestStatus
}

var (
	decisionApprove = decision{verb: "approve", status: voucherdomain.StatusApproved}
	decisionReject  = decision{verb: "reject", status: voucherdomain.StatusRejected}
)

// NewDecisionCommand creates the approve or reject command.
func NewDecisionCommand(opts *RootOptions, d decision) *cobra.Command {
	var actor string
	cmd := &cobra.Command{
		Use:   d.verb + " <request-id>",
		Short: strings.ToUpper(d.verb[:1]) + d.verb[1:] + " a pending voucher request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			services, cleanup, err := opts.services(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			updated, err := services.Vouchers.UpdateStatus(cmd.Context(), args[0], d.status, actor)
			if err != nil {
				code := ExitFailure
				if errors.Is(err, voucherports.ErrBackendUnavailable) {
					code = ExitCommandError
				}
				return WrapExitError(code, "failed to "+d.verb+" "+args[0], err)
			}
			out := voucherhttpmapper.FromDomainRequest(updated)
			return opts.formatter(cmd).Success(out, func(w io.Writer) error {
				fmt.Fprintf(w, "%s %s by %s\n", out.ID, out.Status, out.ApprovedBy)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&actor, "as", "", "id of the acting staff member (required)")
	_ = cmd.MarkFlagRequired("as")
	return cmd
}
