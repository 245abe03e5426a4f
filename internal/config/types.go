// SPDX-License-Identifier: MPL-2.0

package config

import (
	"fmt"

	"spheremesh/pkg/meshconfig"
)

// Params is the raw shape of a parameter file after the CUE unification
// and the Viper merge. Angle fields are `any` because the schema accepts
// both bare numbers (degrees) and suffixed strings ("90deg", "0.5rad");
// conversion to meshconfig types happens in MeshConfig.
type Params struct {
	SaveFiles bool `mapstructure:"save-files"`
	Dry       bool `mapstructure:"dry"`

	AngularWidthXi       any `mapstructure:"angular-width-xi"`
	AngularWidthEta      any `mapstructure:"angular-width-eta"`
	CenterLatitude       any `mapstructure:"center-latitude"`
	CenterLongitude      any `mapstructure:"center-longitude"`
	GammaRotationAzimuth any `mapstructure:"gamma-rotation-azimuth"`

	NChunks int `mapstructure:"nchunks"`

	NexXi  int `mapstructure:"nex-xi"`
	NexEta int `mapstructure:"nex-eta"`

	NProcXi  int `mapstructure:"nproc-xi"`
	NProcEta int `mapstructure:"nproc-eta"`

	Run RunOptions `mapstructure:"run"`
}

// RunOptions configures how the external mesh generator is launched.
type RunOptions struct {
	// Workdir is the directory the generator runs in. The handoff file
	// is written there as well.
	Workdir string `mapstructure:"workdir"`

	// Binary is the mesh generator executable.
	Binary string `mapstructure:"binary"`

	// MPIRun is the MPI launcher executable.
	MPIRun string `mapstructure:"mpirun"`

	// Setup is an optional POSIX shell script executed in Workdir
	// before the launch.
	Setup string `mapstructure:"setup"`

	// HandoffFile is the name of the resolved-parameter file handed to
	// the generator.
	HandoffFile string `mapstructure:"handoff-file"`
}

// Config is the fully converted configuration: the typed mesh record
// plus the launch options.
type Config struct {
	Mesh meshconfig.MeshConfig
	Run  RunOptions
}

// DefaultConfig returns the configuration used when no parameter file
// is found: the documented mesh defaults plus the standard launch
// options.
func DefaultConfig() *Config {
	return &Config{
		Mesh: meshconfig.Defaults(),
		Run: RunOptions{
			Workdir:     ".",
			Binary:      DefaultBinary,
			MPIRun:      DefaultMPIRun,
			HandoffFile: DefaultHandoffFile,
		},
	}
}

// MeshConfig converts the raw parameters into a strongly-typed mesh
// record. Enum and range violations (nchunks outside {1,2,3,6},
// nproc < 1) and malformed angles fail here; cross-parameter
// decomposition rules are left to the constraint checker.
func (p *Params) MeshConfig() (meshconfig.MeshConfig, error) {
	cfg := meshconfig.MeshConfig{
		SaveFiles: p.SaveFiles,
		Dry:       p.Dry,
	}

	angles := []struct {
		name string
		raw  any
		dst  *meshconfig.Angle
	}{
		{"angular-width-xi", p.AngularWidthXi, &cfg.AngularWidthXi},
		{"angular-width-eta", p.AngularWidthEta, &cfg.AngularWidthEta},
		{"center-latitude", p.CenterLatitude, &cfg.CenterLatitude},
		{"center-longitude", p.CenterLongitude, &cfg.CenterLongitude},
		{"gamma-rotation-azimuth", p.GammaRotationAzimuth, &cfg.GammaRotationAzimuth},
	}
	for _, a := range angles {
		angle, err := angleValue(a.raw)
		if err != nil {
			return meshconfig.MeshConfig{}, fmt.Errorf("invalid %q: %w", a.name, err)
		}
		*a.dst = angle
	}

	nchunks, err := meshconfig.NewChunkCount(p.NChunks)
	if err != nil {
		return meshconfig.MeshConfig{}, fmt.Errorf("invalid %q: %w", "nchunks", err)
	}
	cfg.NChunks = nchunks

	cfg.NexXi = meshconfig.ElementCount(p.NexXi)
	cfg.NexEta = meshconfig.ElementCount(p.NexEta)

	procs := []struct {
		name string
		raw  int
		dst  *meshconfig.ProcCount
	}{
		{"nproc-xi", p.NProcXi, &cfg.NProcXi},
		{"nproc-eta", p.NProcEta, &cfg.NProcEta},
	}
	for _, pc := range procs {
		n, err := meshconfig.NewProcCount(pc.raw)
		if err != nil {
			return meshconfig.MeshConfig{}, fmt.Errorf("invalid %q: %w", pc.name, err)
		}
		*pc.dst = n
	}

	return cfg, nil
}

// angleValue converts a raw decoded angle (string with unit suffix, or
// a bare number meaning degrees) into an Angle.
func angleValue(raw any) (meshconfig.Angle, error) {
	switch v := raw.(type) {
	case string:
		return meshconfig.ParseAngle(v)
	case float64:
		return meshconfig.Degrees(v), nil
	case int:
		return meshconfig.Degrees(float64(v)), nil
	case int64:
		return meshconfig.Degrees(float64(v)), nil
	default:
		return meshconfig.Angle{}, fmt.Errorf("unsupported angle value %v (%T)", raw, raw)
	}
}
