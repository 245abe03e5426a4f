// SPDX-License-Identifier: MPL-2.0

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// GenerateCUE generates a CUE representation of the configuration,
// suitable for seeding a parameter file.
func GenerateCUE(cfg *Config) string {
	var sb strings.Builder

	sb.WriteString("// spheremesh parameter file\n")
	sb.WriteString("// Angles take a bare number (degrees) or a 'deg'/'rad' suffix.\n\n")

	sb.WriteString(fmt.Sprintf("\"save-files\": %v\n", cfg.Mesh.SaveFiles))
	sb.WriteString(fmt.Sprintf("dry: %v\n", cfg.Mesh.Dry))
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("\"angular-width-xi\":       %q\n", cfg.Mesh.AngularWidthXi.String()))
	sb.WriteString(fmt.Sprintf("\"angular-width-eta\":      %q\n", cfg.Mesh.AngularWidthEta.String()))
	sb.WriteString(fmt.Sprintf("\"center-latitude\":        %q\n", cfg.Mesh.CenterLatitude.String()))
	sb.WriteString(fmt.Sprintf("\"center-longitude\":       %q\n", cfg.Mesh.CenterLongitude.String()))
	sb.WriteString(fmt.Sprintf("\"gamma-rotation-azimuth\": %q\n", cfg.Mesh.GammaRotationAzimuth.String()))
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("nchunks: %d\n", int(cfg.Mesh.NChunks)))
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("\"nex-xi\":  %d\n", int(cfg.Mesh.NexXi)))
	sb.WriteString(fmt.Sprintf("\"nex-eta\": %d\n", int(cfg.Mesh.NexEta)))
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("\"nproc-xi\":  %d\n", int(cfg.Mesh.NProcXi)))
	sb.WriteString(fmt.Sprintf("\"nproc-eta\": %d\n", int(cfg.Mesh.NProcEta)))
	sb.WriteString("\n")

	sb.WriteString("run: {\n")
	sb.WriteString(fmt.Sprintf("\tworkdir: %q\n", cfg.Run.Workdir))
	sb.WriteString(fmt.Sprintf("\tbinary:  %q\n", cfg.Run.Binary))
	sb.WriteString(fmt.Sprintf("\tmpirun:  %q\n", cfg.Run.MPIRun))
	if cfg.Run.Setup != "" {
		sb.WriteString(fmt.Sprintf("\tsetup: %q\n", cfg.Run.Setup))
	}
	sb.WriteString(fmt.Sprintf("\t\"handoff-file\": %q\n", cfg.Run.HandoffFile))
	sb.WriteString("}\n")

	return sb.String()
}

// CreateDefaultParams creates a default parameter file in the config
// directory if one doesn't exist yet.
func CreateDefaultParams() error {
	cfgDir, err := ConfigDir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	paramPath := filepath.Join(cfgDir, ParamFileName+"."+ParamFileExt)

	// Check if file already exists
	if _, err := os.Stat(paramPath); err == nil {
		return nil // File exists
	}

	if err := os.WriteFile(paramPath, []byte(GenerateCUE(DefaultConfig())), 0o644); err != nil {
		return fmt.Errorf("failed to write parameter file: %w", err)
	}

	return nil
}
