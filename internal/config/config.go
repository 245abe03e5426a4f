// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"spheremesh/internal/issue"
	"spheremesh/pkg/cueutil"
	"spheremesh/pkg/platform"

	"github.com/spf13/viper"
)

const (
	// AppName is the application name.
	AppName = "spheremesh"
	// ParamFileName is the name of the parameter file (without extension).
	ParamFileName = "mesher"
	// ParamFileExt is the parameter file extension.
	ParamFileExt = "cue"
	// EnvPrefix is the prefix for environment variable overrides,
	// e.g. SPHEREMESH_NEX_XI overrides nex-xi.
	EnvPrefix = "SPHEREMESH"

	// DefaultBinary is the mesh generator executable launched by default.
	DefaultBinary = "xmeshfem3D"
	// DefaultMPIRun is the MPI launcher used by default.
	DefaultMPIRun = "mpirun"
	// DefaultHandoffFile is the default name of the resolved-parameter
	// file written for the mesh generator.
	DefaultHandoffFile = "mesh_parameters.toml"
)

//go:embed mesher_schema.cue
var mesherSchema string

// ConfigDir returns the spheremesh configuration directory using
// platform-specific conventions: Windows uses %APPDATA%, macOS uses
// ~/Library/Application Support, and Linux/others use $XDG_CONFIG_HOME
// (defaulting to ~/.config).
func ConfigDir() (string, error) {
	// Allow tests to override the config directory
	if configDirOverride != "" {
		return configDirOverride, nil
	}

	var configDir string

	switch runtime.GOOS {
	case platform.Windows:
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case platform.Darwin:
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, "Library", "Application Support")
	default: // Linux and others
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			configDir = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(configDir, AppName), nil
}

// loadWithOptions performs option-driven parameter loading without
// mutating package-level state. Callers that want caching can wrap it.
func loadWithOptions(ctx context.Context, opts LoadOptions) (*Config, string, error) {
	select {
	case <-ctx.Done():
		return nil, "", fmt.Errorf("load parameters canceled: %w", ctx.Err())
	default:
	}

	v := viper.New()
	setDefaults(v)

	// Environment overrides take precedence over file values. Hyphenated
	// option names and the nested run block map to underscores, so
	// SPHEREMESH_NEX_XI overrides nex-xi and SPHEREMESH_RUN_MPIRUN
	// overrides run.mpirun.
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	resolvedPath := ""

	// If an explicit parameter file path is set via --params, use it exclusively.
	if opts.ParamFilePath != "" {
		if !fileExists(opts.ParamFilePath) {
			return nil, "", issue.NewErrorContext().
				WithOperation("load parameter file").
				WithResource(opts.ParamFilePath).
				WithSuggestion("Verify the file path is correct").
				WithSuggestion("Check that the file exists and is readable").
				WithSuggestion("Use 'spheremesh config show' to see the default parameters").
				WithIssue(issue.ParamFileNotFoundId).
				Wrap(fmt.Errorf("parameter file not found: %s", opts.ParamFilePath)).
				BuildError()
		}
		if err := loadCUEIntoViper(v, opts.ParamFilePath); err != nil {
			return nil, "", wrapParseError(opts.ParamFilePath, err)
		}
		resolvedPath = opts.ParamFilePath
	} else {
		// Prefer a parameter file in the working directory, then fall
		// back to the per-user config directory.
		localPath := ParamFileName + "." + ParamFileExt
		if fileExists(localPath) {
			if err := loadCUEIntoViper(v, localPath); err != nil {
				return nil, "", wrapParseError(localPath, err)
			}
			resolvedPath = localPath
		} else {
			cfgDir, err := configDirWithOverride(opts.ConfigDirPath)
			if err != nil {
				return nil, "", err
			}
			cuePath := filepath.Join(cfgDir, ParamFileName+"."+ParamFileExt)
			if fileExists(cuePath) {
				if err := loadCUEIntoViper(v, cuePath); err != nil {
					return nil, "", wrapParseError(cuePath, err)
				}
				resolvedPath = cuePath
			}
			// If no parameter file is found, the defaults apply (no error).
		}
	}

	var params Params
	if err := v.Unmarshal(&params); err != nil {
		return nil, "", fmt.Errorf("failed to parse parameters: %w", err)
	}

	mesh, err := params.MeshConfig()
	if err != nil {
		source := resolvedPath
		if source == "" {
			source = "defaults"
		}
		return nil, "", issue.NewErrorContext().
			WithOperation("load parameter file").
			WithResource(source).
			WithSuggestion("Angles take a bare number (degrees) or a 'deg'/'rad' suffix").
			WithSuggestion("nchunks must be 1, 2, 3, or 6; nproc-xi and nproc-eta at least 1").
			WithIssue(issue.ParamFileParseErrorId).
			Wrap(err).
			BuildError()
	}

	return &Config{Mesh: mesh, Run: params.Run}, resolvedPath, nil
}

// setDefaults seeds Viper with the documented defaults so a missing
// parameter file (or a sparse one) still yields a complete configuration.
func setDefaults(v *viper.Viper) {
	defaults := DefaultConfig()

	v.SetDefault("save-files", defaults.Mesh.SaveFiles)
	v.SetDefault("dry", defaults.Mesh.Dry)

	v.SetDefault("angular-width-xi", defaults.Mesh.AngularWidthXi.String())
	v.SetDefault("angular-width-eta", defaults.Mesh.AngularWidthEta.String())
	v.SetDefault("center-latitude", defaults.Mesh.CenterLatitude.String())
	v.SetDefault("center-longitude", defaults.Mesh.CenterLongitude.String())
	v.SetDefault("gamma-rotation-azimuth", defaults.Mesh.GammaRotationAzimuth.String())

	v.SetDefault("nchunks", int(defaults.Mesh.NChunks))
	v.SetDefault("nex-xi", int(defaults.Mesh.NexXi))
	v.SetDefault("nex-eta", int(defaults.Mesh.NexEta))
	v.SetDefault("nproc-xi", int(defaults.Mesh.NProcXi))
	v.SetDefault("nproc-eta", int(defaults.Mesh.NProcEta))

	v.SetDefault("run.workdir", defaults.Run.Workdir)
	v.SetDefault("run.binary", defaults.Run.Binary)
	v.SetDefault("run.mpirun", defaults.Run.MPIRun)
	v.SetDefault("run.setup", defaults.Run.Setup)
	v.SetDefault("run.handoff-file", defaults.Run.HandoffFile)
}

// wrapParseError attaches the parameter-file troubleshooting context to
// a CUE parse or schema error.
func wrapParseError(path string, err error) error {
	return issue.NewErrorContext().
		WithOperation("load parameter file").
		WithResource(path).
		WithSuggestion("Check that the file contains valid CUE syntax").
		WithSuggestion("Verify the parameter names and values match the expected schema").
		WithSuggestion("See 'spheremesh validate --help' for the parameter reference").
		WithIssue(issue.ParamFileParseErrorId).
		Wrap(err).
		BuildError()
}

// configDirWithOverride resolves the configuration directory, honoring
// explicit provider options before platform defaults.
func configDirWithOverride(configDirPath string) (string, error) {
	if configDirPath != "" {
		return configDirPath, nil
	}

	return ConfigDir()
}

// loadCUEIntoViper parses a CUE parameter file, validates it against the
// #Mesher schema, and merges its contents into Viper. Every parameter is
// optional, so concreteness is not required.
func loadCUEIntoViper(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read parameter file: %w", err)
	}

	parsed, err := cueutil.ParseAndDecodeString[map[string]any](mesherSchema, data, "#Mesher", cueutil.WithFilename(path))
	if err != nil {
		return err
	}

	// Merge into Viper (preserves defaults for unset parameters)
	if err := v.MergeConfigMap(*parsed.Value); err != nil {
		return fmt.Errorf("failed to merge parameters: %w", err)
	}

	return nil
}

// fileExists checks if a file exists and is not a directory
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}

// EnsureConfigDir creates the config directory if it doesn't exist
func EnsureConfigDir() error {
	cfgDir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(cfgDir, 0o755)
}
