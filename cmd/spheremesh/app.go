// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"io"
	"os"

	"spheremesh/internal/config"
	"spheremesh/internal/mesher"
)

type (
	// App wires CLI services and shared dependencies. It is the
	// composition root for the CLI layer: all Cobra command handlers
	// receive an App reference and delegate through its interfaces.
	App struct {
		Config ConfigProvider
		Runner mesher.Runner
		stdout io.Writer
		stderr io.Writer
	}

	// Dependencies defines the injection points for building an App.
	// Nil fields are replaced with production defaults by NewApp. Tests
	// can supply fakes to isolate specific behavior.
	Dependencies struct {
		Config ConfigProvider
		Runner mesher.Runner
		Stdout io.Writer
		Stderr io.Writer
	}

	// ConfigProvider loads the mesher configuration from explicit options.
	// This abstraction enables testing with custom parameter sources.
	ConfigProvider interface {
		Load(ctx context.Context, opts config.LoadOptions) (*config.Config, error)
	}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) *App {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	if deps.Runner == nil {
		deps.Runner = mesher.NewExecRunner()
	}

	return &App{
		Config: deps.Config,
		Runner: deps.Runner,
		stdout: deps.Stdout,
		stderr: deps.Stderr,
	}
}

// loadParams loads the configuration, honoring the --params flag.
func (a *App) loadParams(ctx context.Context) (*config.Config, error) {
	return a.Config.Load(ctx, config.LoadOptions{ParamFilePath: paramsFile})
}
