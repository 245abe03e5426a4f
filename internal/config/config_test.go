// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"spheremesh/internal/issue"
)

func writeParamFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), ParamFileName+"."+ParamFileExt)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write parameter file: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Parallel()

	// Empty config dir, no explicit file: the documented defaults apply.
	cfg, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: t.TempDir()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := int(cfg.Mesh.NChunks); got != 6 {
		t.Errorf("NChunks = %d, want 6", got)
	}
	if got := int(cfg.Mesh.NexXi); got != 64 {
		t.Errorf("NexXi = %d, want 64", got)
	}
	if got := int(cfg.Mesh.NProcEta); got != 1 {
		t.Errorf("NProcEta = %d, want 1", got)
	}
	if got := cfg.Mesh.AngularWidthXi.Degrees(); got != 90 {
		t.Errorf("AngularWidthXi = %v degrees, want 90", got)
	}
	if got := cfg.Mesh.CenterLatitude.Degrees(); got != 0 {
		t.Errorf("CenterLatitude = %v degrees, want 0", got)
	}
	if cfg.Run.Binary != DefaultBinary {
		t.Errorf("Run.Binary = %q, want %q", cfg.Run.Binary, DefaultBinary)
	}
	if cfg.Run.MPIRun != DefaultMPIRun {
		t.Errorf("Run.MPIRun = %q, want %q", cfg.Run.MPIRun, DefaultMPIRun)
	}
	if cfg.Run.HandoffFile != DefaultHandoffFile {
		t.Errorf("Run.HandoffFile = %q, want %q", cfg.Run.HandoffFile, DefaultHandoffFile)
	}
}

func TestLoadParamFile(t *testing.T) {
	t.Parallel()

	path := writeParamFile(t, `
"save-files": true
"angular-width-xi":  90
"angular-width-eta": "90deg"
"center-latitude":   "0.5rad"
nchunks: 2
"nex-xi":  128
"nex-eta": 128
"nproc-xi":  4
"nproc-eta": 4
run: {
	workdir: "/scratch/mesh"
	mpirun:  "srun"
}
`)

	cfg, err := NewProvider().Load(context.Background(), LoadOptions{ParamFilePath: path})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !cfg.Mesh.SaveFiles {
		t.Error("SaveFiles = false, want true")
	}
	if got := cfg.Mesh.AngularWidthXi.Degrees(); got != 90 {
		t.Errorf("AngularWidthXi = %v degrees, want 90 (bare number is degrees)", got)
	}
	if got := cfg.Mesh.AngularWidthEta.Degrees(); got != 90 {
		t.Errorf("AngularWidthEta = %v degrees, want 90", got)
	}
	if got := cfg.Mesh.CenterLatitude.Radians(); got < 0.499 || got > 0.501 {
		t.Errorf("CenterLatitude = %v radians, want 0.5", got)
	}
	if got := int(cfg.Mesh.NChunks); got != 2 {
		t.Errorf("NChunks = %d, want 2", got)
	}
	if got := int(cfg.Mesh.NexEta); got != 128 {
		t.Errorf("NexEta = %d, want 128", got)
	}
	if got := cfg.Mesh.TotalProcessors(); got != 32 {
		t.Errorf("TotalProcessors = %d, want 32", got)
	}
	if cfg.Run.Workdir != "/scratch/mesh" {
		t.Errorf("Run.Workdir = %q", cfg.Run.Workdir)
	}
	if cfg.Run.MPIRun != "srun" {
		t.Errorf("Run.MPIRun = %q, want srun", cfg.Run.MPIRun)
	}
	// Unset run options keep their defaults.
	if cfg.Run.Binary != DefaultBinary {
		t.Errorf("Run.Binary = %q, want default %q", cfg.Run.Binary, DefaultBinary)
	}
}

func TestLoadRejectsChunkCountOutsideEnum(t *testing.T) {
	t.Parallel()

	path := writeParamFile(t, `nchunks: 4`)

	_, err := NewProvider().Load(context.Background(), LoadOptions{ParamFilePath: path})
	if err == nil {
		t.Fatal("expected schema error for nchunks: 4")
	}
	if !strings.Contains(err.Error(), "nchunks") {
		t.Errorf("error %q does not name the offending parameter", err)
	}
}

func TestLoadRejectsUnknownParameter(t *testing.T) {
	t.Parallel()

	path := writeParamFile(t, `"nex-zeta": 64`)

	if _, err := NewProvider().Load(context.Background(), LoadOptions{ParamFilePath: path}); err == nil {
		t.Fatal("expected schema error for unknown parameter")
	}
}

func TestLoadRejectsMalformedAngle(t *testing.T) {
	t.Parallel()

	path := writeParamFile(t, `"angular-width-xi": "90furlongs"`)

	_, err := NewProvider().Load(context.Background(), LoadOptions{ParamFilePath: path})
	if err == nil {
		t.Fatal("expected error for malformed angle")
	}
	if !strings.Contains(err.Error(), "angular-width-xi") {
		t.Errorf("error %q does not name the offending parameter", err)
	}

	var ae *issue.ActionableError
	if !errors.As(err, &ae) || ae.IssueID != issue.ParamFileParseErrorId {
		t.Errorf("error does not carry the parse-error issue id: %v", err)
	}
}

func TestLoadExplicitFileNotFound(t *testing.T) {
	t.Parallel()

	missing := filepath.Join(t.TempDir(), "nope.cue")

	_, err := NewProvider().Load(context.Background(), LoadOptions{ParamFilePath: missing})
	if err == nil {
		t.Fatal("expected error for missing explicit parameter file")
	}

	var ae *issue.ActionableError
	if !errors.As(err, &ae) || ae.IssueID != issue.ParamFileNotFoundId {
		t.Errorf("error does not carry the not-found issue id: %v", err)
	}
}

func TestLoadFromConfigDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, ParamFileName+"."+ParamFileExt)
	if err := os.WriteFile(path, []byte(`"nex-xi": 256`), 0o644); err != nil {
		t.Fatalf("failed to write parameter file: %v", err)
	}

	cfg, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: dir})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := int(cfg.Mesh.NexXi); got != 256 {
		t.Errorf("NexXi = %d, want 256", got)
	}
	// Parameters not in the file keep their defaults.
	if got := int(cfg.Mesh.NexEta); got != 64 {
		t.Errorf("NexEta = %d, want 64", got)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	// t.Setenv forbids t.Parallel.
	t.Setenv("SPHEREMESH_NEX_XI", "256")
	t.Setenv("SPHEREMESH_RUN_MPIRUN", "srun")

	path := writeParamFile(t, `"nex-xi": 128`)

	cfg, err := NewProvider().Load(context.Background(), LoadOptions{ParamFilePath: path})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := int(cfg.Mesh.NexXi); got != 256 {
		t.Errorf("NexXi = %d, want 256 (environment beats the parameter file)", got)
	}
	if cfg.Run.MPIRun != "srun" {
		t.Errorf("Run.MPIRun = %q, want srun (nested key via SPHEREMESH_RUN_MPIRUN)", cfg.Run.MPIRun)
	}
	// Parameters without an override keep their defaults.
	if got := int(cfg.Mesh.NexEta); got != 64 {
		t.Errorf("NexEta = %d, want 64", got)
	}
}

func TestConfigDirOverride(t *testing.T) {
	// Mutates package-level state; must not run in parallel.
	dir := t.TempDir()
	SetConfigDirOverride(dir)
	t.Cleanup(Reset)

	got, err := ConfigDir()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != dir {
		t.Errorf("ConfigDir() = %q, want override %q", got, dir)
	}

	// A parameter file in the override directory is picked up when no
	// explicit path or directory option is given.
	path := filepath.Join(dir, ParamFileName+"."+ParamFileExt)
	if err := os.WriteFile(path, []byte(`"nex-eta": 256`), 0o644); err != nil {
		t.Fatalf("failed to write parameter file: %v", err)
	}

	cfg, err := NewProvider().Load(context.Background(), LoadOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := int(cfg.Mesh.NexEta); got != 256 {
		t.Errorf("NexEta = %d, want 256 (loaded via the override directory)", got)
	}
}

func TestLoadCanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewProvider().Load(ctx, LoadOptions{ConfigDirPath: t.TempDir()}); err == nil {
		t.Fatal("expected error for canceled context")
	}
}
