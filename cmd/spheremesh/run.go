// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"spheremesh/internal/mesher"

	"github.com/spf13/cobra"
)

// newRunCommand creates the `spheremesh run` command: validate, freeze,
// and hand the configuration to the mesh generator.
func newRunCommand(app *App) *cobra.Command {
	var (
		dryRun    bool
		saveFiles bool
		workdir   string
	)

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Launch the mesh generator for the configured decomposition",
		Long: `Launch the mesh generator for the configured decomposition.

The parameters are validated first; any constraint violation aborts the
launch and is reported in full. On success the resolved parameters are
written to a handoff file in the working directory and the generator is
started under the MPI launcher with one rank per processor.

Examples:
  spheremesh run                 Validate and launch
  spheremesh run --dry           Show the plan without launching
  spheremesh run --save-files    Ask the generator to write mesh files`,
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

			// Flag overrides take precedence over the parameter file.
			if cmd.Flags().Changed("dry") {
				cfg.Mesh.Dry = dryRun
			}
			if cmd.Flags().Changed("save-files") {
				cfg.Mesh.SaveFiles = saveFiles
			}
			if cmd.Flags().Changed("workdir") {
				cfg.Run.Workdir = workdir
			}

			resolved, report := cfg.Mesh.Resolve()
			if resolved == nil {
				fmt.Fprintln(app.stdout, TitleStyle.Render("Parameter Validation"))
				fmt.Fprintln(app.stdout)
				renderReport(app.stdout, report)
				return &ExitError{Code: 1, Err: report}
			}

			job := mesher.NewJob(resolved, cfg.Run)

			if resolved.Config().Dry {
				if err := renderDryRun(app.stdout, job); err != nil {
					return err
				}
			}

			m := mesher.New(app.Runner)
			if err := m.Execute(cmd.Context(), job); err != nil {
				fmt.Fprintln(app.stderr, ErrorStyle.Render("Error: ")+formatErrorForDisplay(err, verbose))
				if verbose {
					renderIssueCard(app.stderr, err)
				}
				return &ExitError{Code: 1, Err: err}
			}

			return nil
		},
	}

	runCmd.Flags().BoolVar(&dryRun, "dry", false, "show what would be launched without launching")
	runCmd.Flags().BoolVar(&saveFiles, "save-files", false, "ask the generator to write mesh files")
	runCmd.Flags().StringVar(&workdir, "workdir", "", "working directory for the launch")

	return runCmd
}
