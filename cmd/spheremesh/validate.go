// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"spheremesh/internal/issue"
	"spheremesh/pkg/meshconfig"

	"github.com/spf13/cobra"
)

// newValidateCommand creates the `spheremesh validate` command. It
// checks every decomposition constraint and reports all violations in
// a single pass.
func newValidateCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the mesh decomposition parameters",
		Long: `Validate the mesh decomposition parameters.

Checks the chunk geometry (angular widths, processor-grid symmetry)
and the element grid (divisibility by the processor grid, minimum
element counts, doubling-layer alignment) against the constraints of
the mesh generator. All violations are reported at once.

Examples:
  spheremesh validate                    Validate ./mesher.cue (or the defaults)
  spheremesh validate --params my.cue    Validate a specific parameter file`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := app.loadParams(cmd.Context())
			if err != nil {
				fmt.Fprintln(app.stderr, ErrorStyle.Render("Error: ")+formatErrorForDisplay(err, verbose))
				if verbose {
					renderIssueCard(app.stderr, err)
				}
				return &ExitError{Code: 1, Err: err}
			}

			fmt.Fprintln(app.stdout, TitleStyle.Render("Parameter Validation"))
			fmt.Fprintln(app.stdout)

			report := meshconfig.Validate(&cfg.Mesh)
			if len(report) == 0 {
				fmt.Fprintln(app.stdout, SuccessStyle.Render("All constraints satisfied."))
				fmt.Fprintf(app.stdout, "Total processors required: %d\n", cfg.Mesh.TotalProcessors())
				return nil
			}

			renderReport(app.stdout, report)

			if report.HasErrors() {
				if verbose {
					if rendered, rerr := issue.Get(issue.ConstraintViolationsId).Render("dark"); rerr == nil {
						fmt.Fprint(app.stderr, rendered)
					}
				}
				return &ExitError{Code: 1, Err: report}
			}

			// Warnings only: the configuration is still dispatchable.
			fmt.Fprintf(app.stdout, "Total processors required: %d\n", cfg.Mesh.TotalProcessors())
			return nil
		},
	}
}
