// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"path/filepath"

	"spheremesh/internal/config"

	"github.com/spf13/cobra"
)

// newConfigCommand creates the `spheremesh config` command tree.
// Subcommands that read parameters use the App's ConfigProvider.
func newConfigCommand(app *App) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage spheremesh parameters",
		Long: `Manage spheremesh parameters.

Besides an explicit --params file or a ./mesher.cue in the working
directory, parameters are read from:
  - Linux: ~/.config/spheremesh/mesher.cue
  - macOS: ~/Library/Application Support/spheremesh/mesher.cue
  - Windows: %APPDATA%\spheremesh\mesher.cue`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the effective parameters",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return showConfig(cmd.Context(), app)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create a default parameter file",
		RunE: func(_ *cobra.Command, _ []string) error {
			return config.CreateDefaultParams()
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show the parameter file search path",
		RunE: func(_ *cobra.Command, _ []string) error {
			return showConfigPath(app)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output the effective parameters as CUE",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := app.loadParams(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprint(app.stdout, config.GenerateCUE(cfg))
			return nil
		},
	})

	return cfgCmd
}

func showConfig(ctx context.Context, app *App) error {
	cfg, err := app.Config.Load(ctx, config.LoadOptions{ParamFilePath: paramsFile})
	if err != nil {
		renderIssueCard(app.stderr, err)
		return err
	}

	headerStyle := TitleStyle
	keyStyle := ParamStyle
	valueStyle := SuccessStyle

	fmt.Fprintln(app.stdout, headerStyle.Render("Effective Parameters"))
	fmt.Fprintln(app.stdout)

	fmt.Fprintf(app.stdout, "%s: %v\n", keyStyle.Render("save-files"), cfg.Mesh.SaveFiles)
	fmt.Fprintf(app.stdout, "%s: %v\n", keyStyle.Render("dry"), cfg.Mesh.Dry)
	fmt.Fprintln(app.stdout)

	fmt.Fprintf(app.stdout, "%s: %s\n", keyStyle.Render("angular-width-xi"), valueStyle.Render(cfg.Mesh.AngularWidthXi.String()))
	fmt.Fprintf(app.stdout, "%s: %s\n", keyStyle.Render("angular-width-eta"), valueStyle.Render(cfg.Mesh.AngularWidthEta.String()))
	fmt.Fprintf(app.stdout, "%s: %s\n", keyStyle.Render("center-latitude"), valueStyle.Render(cfg.Mesh.CenterLatitude.String()))
	fmt.Fprintf(app.stdout, "%s: %s\n", keyStyle.Render("center-longitude"), valueStyle.Render(cfg.Mesh.CenterLongitude.String()))
	fmt.Fprintf(app.stdout, "%s: %s\n", keyStyle.Render("gamma-rotation-azimuth"), valueStyle.Render(cfg.Mesh.GammaRotationAzimuth.String()))
	fmt.Fprintln(app.stdout)

	fmt.Fprintf(app.stdout, "%s: %d\n", keyStyle.Render("nchunks"), int(cfg.Mesh.NChunks))
	fmt.Fprintf(app.stdout, "%s: %d  %s: %d\n", keyStyle.Render("nex-xi"), int(cfg.Mesh.NexXi), keyStyle.Render("nex-eta"), int(cfg.Mesh.NexEta))
	fmt.Fprintf(app.stdout, "%s: %d  %s: %d\n", keyStyle.Render("nproc-xi"), int(cfg.Mesh.NProcXi), keyStyle.Render("nproc-eta"), int(cfg.Mesh.NProcEta))
	fmt.Fprintf(app.stdout, "%s: %d\n", keyStyle.Render("total processors"), cfg.Mesh.TotalProcessors())
	fmt.Fprintln(app.stdout)

	fmt.Fprintf(app.stdout, "%s: %s\n", keyStyle.Render("run.workdir"), cfg.Run.Workdir)
	fmt.Fprintf(app.stdout, "%s: %s\n", keyStyle.Render("run.binary"), cfg.Run.Binary)
	fmt.Fprintf(app.stdout, "%s: %s\n", keyStyle.Render("run.mpirun"), cfg.Run.MPIRun)
	fmt.Fprintf(app.stdout, "%s: %s\n", keyStyle.Render("run.handoff-file"), cfg.Run.HandoffFile)

	return nil
}

func showConfigPath(app *App) error {
	cfgDir, err := config.ConfigDir()
	if err != nil {
		return err
	}

	fmt.Fprintln(app.stdout, "Parameter file search order:")
	fmt.Fprintf(app.stdout, "  1. --params flag\n")
	fmt.Fprintf(app.stdout, "  2. %s\n", config.ParamFileName+"."+config.ParamFileExt)
	fmt.Fprintf(app.stdout, "  3. %s\n", filepath.Join(cfgDir, config.ParamFileName+"."+config.ParamFileExt))
	return nil
}
