// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"spheremesh/pkg/meshconfig"

	"github.com/spf13/cobra"
)

// newNProcCommand creates the `spheremesh nproc` command. The output is
// a bare number so it can feed scheduler scripts directly, e.g.
// `mpirun -np $(spheremesh nproc) ...`.
func newNProcCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "nproc",
		Short: "Print the total number of processors the mesh generator needs",
		Long: `Print the total number of processors the mesh generator needs.

The total is nchunks * nproc-xi * nproc-eta: one processor grid per
chunk. The parameters are validated first, so the printed number is
always one the generator would accept.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := app.loadParams(cmd.Context())
			if err != nil {
				fmt.Fprintln(app.stderr, ErrorStyle.Render("Error: ")+formatErrorForDisplay(err, verbose))
				return &ExitError{Code: 1, Err: err}
			}

			if report := meshconfig.Validate(&cfg.Mesh); report.HasErrors() {
				renderReport(app.stderr, report)
				return &ExitError{Code: 1, Err: report}
			}

			fmt.Fprintln(app.stdout, cfg.Mesh.TotalProcessors())
			return nil
		},
	}
}
