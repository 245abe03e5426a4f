// SPDX-License-Identifier: MPL-2.0

package mesher

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"spheremesh/internal/issue"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// Runner launches the external mesh generator for a job.
type Runner interface {
	Mesh(ctx context.Context, job *Job) error
}

// ExecRunner is the default Runner: it writes the TOML handoff file,
// runs the optional setup script with the embedded shell interpreter,
// and launches the generator under the MPI launcher.
type ExecRunner struct {
	// Stdout and Stderr receive the generator's output. Defaults to the
	// process streams when nil.
	Stdout io.Writer
	Stderr io.Writer
}

// NewExecRunner creates an ExecRunner wired to the process streams.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{Stdout: os.Stdout, Stderr: os.Stderr}
}

// Mesh implements Runner.
func (r *ExecRunner) Mesh(ctx context.Context, job *Job) error {
	stdout := r.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	stderr := r.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	if err := os.MkdirAll(job.Workdir, 0o755); err != nil {
		return fmt.Errorf("failed to create working directory: %w", err)
	}

	data, err := EncodeHandoff(job.Resolved)
	if err != nil {
		return err
	}
	if err := os.WriteFile(job.HandoffPath(), data, 0o644); err != nil {
		return fmt.Errorf("failed to write handoff file: %w", err)
	}

	if job.Setup != "" {
		if err := r.runSetup(ctx, job, stdout, stderr); err != nil {
			return issue.NewErrorContext().
				WithOperation("run setup script").
				WithResource(job.Workdir).
				WithSuggestion("Check the script for failing commands").
				WithSuggestion("The script runs with the embedded POSIX shell; avoid bash-only constructs").
				WithIssue(issue.SetupScriptFailedId).
				Wrap(err).
				BuildError()
		}
	}

	mpirun, err := exec.LookPath(job.MPIRun)
	if err != nil {
		return issue.NewErrorContext().
			WithOperation("launch mesher").
			WithResource(job.MPIRun).
			WithSuggestion("Install an MPI implementation (e.g. Open MPI) or load its environment module").
			WithSuggestion("Set run.mpirun in the parameter file to the launcher's full path").
			WithIssue(issue.MPINotFoundId).
			Wrap(fmt.Errorf("MPI launcher not found: %w", err)).
			BuildError()
	}

	argv := job.CommandLine()
	cmd := exec.CommandContext(ctx, mpirun, argv[1:]...)
	cmd.Dir = job.Workdir
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	if err := cmd.Run(); err != nil {
		return issue.NewErrorContext().
			WithOperation("launch mesher").
			WithResource(job.Binary).
			WithSuggestion("Check the generator's output above for the failure reason").
			WithSuggestion("Verify the binary is built for this machine and on PATH or an absolute path").
			WithIssue(issue.MesherLaunchFailedId).
			Wrap(fmt.Errorf("mesh generator failed: %w", err)).
			BuildError()
	}

	return nil
}

// runSetup executes the job's setup script in the working directory
// using the embedded shell interpreter, so jobs behave the same on
// hosts without a system shell.
func (r *ExecRunner) runSetup(ctx context.Context, job *Job, stdout, stderr io.Writer) error {
	prog, err := syntax.NewParser().Parse(strings.NewReader(job.Setup), "setup")
	if err != nil {
		return fmt.Errorf("setup script syntax error: %w", err)
	}

	runner, err := interp.New(
		interp.Dir(job.Workdir),
		interp.Env(expand.ListEnviron(os.Environ()...)),
		interp.StdIO(nil, stdout, stderr),
	)
	if err != nil {
		return fmt.Errorf("failed to create shell interpreter: %w", err)
	}

	return runner.Run(ctx, prog)
}
