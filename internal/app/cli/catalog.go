package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	voucherhttpmapper "github.com/Apurer/voucher-portal/internal/domains/vouchers/adapters/http/mapper"
)

// NewCatalogCommand creates the catalog command.
func NewCatalogCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "List the software modules that can be put on a voucher",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			services, cleanup, err := opts.services(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			modules, err := services.Catalog.List(cmd.Context())
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to list modules", err)
			}
			out := voucherhttpmapper.FromDomainModules(modules)
			return opts.formatter(cmd).Success(out, func(w io.Writer) error {
				for _, m := range out {
					fmt.Fprintf(w, "%s\t%s\t%.2f\n", m.ID, m.Name, m.Price)
				}
				return nil
			})
		},
	}
}
