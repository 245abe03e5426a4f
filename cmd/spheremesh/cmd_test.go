// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"spheremesh/internal/config"
	"spheremesh/internal/issue"
	"spheremesh/internal/mesher"
	"spheremesh/pkg/meshconfig"
)

// fakeProvider returns a fixed configuration regardless of options.
type fakeProvider struct {
	cfg *config.Config
	err error
}

func (f *fakeProvider) Load(_ context.Context, _ config.LoadOptions) (*config.Config, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.cfg, nil
}

// fakeRunner records jobs instead of launching anything.
type fakeRunner struct {
	jobs []*mesher.Job
	err  error
}

func (f *fakeRunner) Mesh(_ context.Context, job *mesher.Job) error {
	f.jobs = append(f.jobs, job)
	return f.err
}

// execute runs the CLI with the given args against injected fakes and
// returns the combined output and the resulting error.
func execute(t *testing.T, cfg *config.Config, args ...string) (string, *fakeRunner, error) {
	t.Helper()

	runner := &fakeRunner{}
	out, err := executeWith(t, cfg, runner, args...)
	return out, runner, err
}

// executeWith is execute with a caller-supplied runner.
func executeWith(t *testing.T, cfg *config.Config, runner *fakeRunner, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	app := NewApp(Dependencies{
		Config: &fakeProvider{cfg: cfg},
		Runner: runner,
		Stdout: &out,
		Stderr: &out,
	})

	root := newRootCommand(app)
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)

	err := root.Execute()
	return out.String(), err
}

func defaultTestConfig() *config.Config {
	return config.DefaultConfig()
}

// brokenTestConfig returns a configuration violating several independent
// constraints: the xi width is not 90 degrees for six chunks, and the
// asymmetric processor grid breaks both the symmetry and the
// per-processor element rules.
func brokenTestConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Mesh.AngularWidthXi = meshconfig.Degrees(80)
	cfg.Mesh.NProcXi = 2
	cfg.Mesh.NProcEta = 3
	return cfg
}

func TestValidateCommandValidConfig(t *testing.T) {
	out, _, err := execute(t, defaultTestConfig(), "validate")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "All constraints satisfied") {
		t.Errorf("output missing success message:\n%s", out)
	}
	if !strings.Contains(out, "6") {
		t.Errorf("output missing total processor count:\n%s", out)
	}
}

func TestValidateCommandReportsAllViolations(t *testing.T) {
	out, _, err := execute(t, brokenTestConfig(), "validate")
	if err == nil {
		t.Fatal("expected error for invalid configuration")
	}

	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("error is %T, want *ExitError", err)
	}
	if exitErr.Code != 1 {
		t.Errorf("exit code = %d, want 1", exitErr.Code)
	}

	// Every violated rule shows up in one pass.
	if !strings.Contains(out, "angular-width-xi") {
		t.Errorf("output missing the xi-width violation:\n%s", out)
	}
	if !strings.Contains(out, "5 error(s)") {
		t.Errorf("output does not report all five violations:\n%s", out)
	}
}

func TestNProcCommand(t *testing.T) {
	out, _, err := execute(t, defaultTestConfig(), "nproc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(out) != "6" {
		t.Errorf("nproc output = %q, want 6", strings.TrimSpace(out))
	}
}

func TestNProcCommandInvalidConfig(t *testing.T) {
	_, _, err := execute(t, brokenTestConfig(), "nproc")
	if err == nil {
		t.Fatal("expected error for invalid configuration")
	}
}

func TestRunCommandInvokesRunner(t *testing.T) {
	_, runner, err := execute(t, defaultTestConfig(), "run")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(runner.jobs) != 1 {
		t.Fatalf("runner invoked %d times, want 1", len(runner.jobs))
	}
	if got := runner.jobs[0].Resolved.TotalProcessors(); got != 6 {
		t.Errorf("job total processors = %d, want 6", got)
	}
}

func TestRunCommandDryNeverInvokesRunner(t *testing.T) {
	out, runner, err := execute(t, defaultTestConfig(), "run", "--dry")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(runner.jobs) != 0 {
		t.Errorf("runner invoked %d times during dry run, want 0", len(runner.jobs))
	}
	if !strings.Contains(out, "Dry Run") {
		t.Errorf("output missing dry-run header:\n%s", out)
	}
	if !strings.Contains(out, "mpirun -np 6 xmeshfem3D") {
		t.Errorf("output missing planned command line:\n%s", out)
	}
	if !strings.Contains(out, "nchunks = 6") {
		t.Errorf("output missing handoff contents:\n%s", out)
	}
}

func TestRunCommandVerboseRendersLaunchIssueCard(t *testing.T) {
	launchErr := issue.NewErrorContext().
		WithOperation("launch mesher").
		WithIssue(issue.MesherLaunchFailedId).
		Wrap(errors.New("mesh generator failed: exit status 1")).
		BuildError()

	out, err := executeWith(t, defaultTestConfig(), &fakeRunner{err: launchErr}, "--verbose", "run")
	if err == nil {
		t.Fatal("expected error from failing runner")
	}
	if !strings.Contains(out, "failed to launch mesher") {
		t.Errorf("output missing the launch error:\n%s", out)
	}
	if !strings.Contains(out, "Mesh generator launch failed") {
		t.Errorf("output missing the rendered issue card:\n%s", out)
	}
}

func TestRunCommandValidationFailureBlocksRunner(t *testing.T) {
	_, runner, err := execute(t, brokenTestConfig(), "run")
	if err == nil {
		t.Fatal("expected error for invalid configuration")
	}
	if len(runner.jobs) != 0 {
		t.Errorf("runner invoked %d times despite validation failure, want 0", len(runner.jobs))
	}
}

func TestRunCommandSaveFilesFlagOverridesConfig(t *testing.T) {
	_, runner, err := execute(t, defaultTestConfig(), "run", "--save-files")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(runner.jobs) != 1 {
		t.Fatalf("runner invoked %d times, want 1", len(runner.jobs))
	}
	if !runner.jobs[0].Resolved.Config().SaveFiles {
		t.Error("SaveFiles not propagated from flag to job")
	}
}

func TestConfigShowCommand(t *testing.T) {
	out, _, err := execute(t, defaultTestConfig(), "config", "show")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "nchunks") {
		t.Errorf("output missing parameters:\n%s", out)
	}
	if !strings.Contains(out, "xmeshfem3D") {
		t.Errorf("output missing run options:\n%s", out)
	}
}

func TestConfigDumpCommandRoundTrips(t *testing.T) {
	out, _, err := execute(t, defaultTestConfig(), "config", "dump")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, `"nex-xi":  64`) {
		t.Errorf("dump missing element counts:\n%s", out)
	}
	if !strings.Contains(out, "run: {") {
		t.Errorf("dump missing run block:\n%s", out)
	}
}
