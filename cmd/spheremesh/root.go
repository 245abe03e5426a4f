// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for spheremesh.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"spheremesh/internal/issue"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// verbose enables verbose output
	verbose bool
	// paramsFile allows specifying an explicit parameter file
	paramsFile string
)

// newRootCommand builds the root command and wires all subcommands to
// the App composition root.
func newRootCommand(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "spheremesh",
		Short: "Validate and launch spherical-shell mesh decompositions",
		Long: TitleStyle.Render("spheremesh") + SubtitleStyle.Render(" - spherical-shell mesh decomposition frontend") + `

spheremesh checks a mesh decomposition configuration (chunk layout,
element grid, processor grid) against the geometric and divisibility
constraints of the spectral-element mesh generator, and launches the
generator under MPI once the configuration is valid.

Parameters are defined in a 'mesher.cue' file using CUE format; every
parameter is optional and falls back to a documented default.

` + SubtitleStyle.Render("Quick Start:") + `
  1. Create a mesher.cue in your project directory
  2. Check it with: spheremesh validate
  3. Launch with:   spheremesh run

` + SubtitleStyle.Render("Examples:") + `
  spheremesh validate           Check the parameters, reporting every violation
  spheremesh nproc              Print the total processor count
  spheremesh run --dry          Show what would be launched without launching
  spheremesh run                Launch the mesh generator
  spheremesh config show        Show the effective parameters`,
	}

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&paramsFile, "params", "", "parameter file (default is ./mesher.cue, then the user config dir)")

	rootCmd.AddCommand(newValidateCommand(app))
	rootCmd.AddCommand(newRunCommand(app))
	rootCmd.AddCommand(newNProcCommand(app))
	rootCmd.AddCommand(newConfigCommand(app))

	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute builds the production App and runs the root command.
// This is called by main.main(). It only needs to happen once.
func Execute() {
	app := NewApp(Dependencies{})

	// Use fang.Execute for enhanced Cobra styling
	if err := fang.Execute(
		context.Background(),
		newRootCommand(app),
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(int(exitErr.Code))
		}
		os.Exit(1)
	}
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}

// renderIssueCard renders the catalog card attached to an error, if any.
// Errors without an attached issue id render nothing.
func renderIssueCard(w io.Writer, err error) {
	var ae *issue.ActionableError
	if !errors.As(err, &ae) || ae.IssueID == 0 {
		return
	}

	card := issue.Get(ae.IssueID)
	if card == nil {
		return
	}
	if rendered, rerr := card.Render("dark"); rerr == nil {
		fmt.Fprint(w, rendered)
	}
}

// GetVerbose returns the verbose flag value
func GetVerbose() bool {
	return verbose
}
