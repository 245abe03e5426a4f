// SPDX-License-Identifier: MPL-2.0

package mesher

import (
	"path/filepath"
	"strconv"

	"spheremesh/internal/config"
	"spheremesh/pkg/meshconfig"
)

// Job is a single mesh generation request: a validated configuration
// snapshot plus the launch options. Jobs are only constructed from a
// Resolved snapshot, so an unvalidated configuration can never reach a
// Runner.
type Job struct {
	// Resolved is the validated configuration snapshot.
	Resolved *meshconfig.Resolved

	// Workdir is the directory the generator runs in and where the
	// handoff file is written.
	Workdir string

	// Binary is the mesh generator executable.
	Binary string

	// MPIRun is the MPI launcher executable.
	MPIRun string

	// Setup is an optional POSIX shell script executed in Workdir
	// before the launch.
	Setup string

	// HandoffFile is the name of the resolved-parameter file, relative
	// to Workdir.
	HandoffFile string
}

// NewJob builds a Job from a validated snapshot and the run options,
// filling unset options with the documented defaults.
func NewJob(resolved *meshconfig.Resolved, run config.RunOptions) *Job {
	job := &Job{
		Resolved:    resolved,
		Workdir:     run.Workdir,
		Binary:      run.Binary,
		MPIRun:      run.MPIRun,
		Setup:       run.Setup,
		HandoffFile: run.HandoffFile,
	}
	if job.Workdir == "" {
		job.Workdir = "."
	}
	if job.Binary == "" {
		job.Binary = config.DefaultBinary
	}
	if job.MPIRun == "" {
		job.MPIRun = config.DefaultMPIRun
	}
	if job.HandoffFile == "" {
		job.HandoffFile = config.DefaultHandoffFile
	}
	return job
}

// HandoffPath returns the handoff file path, rooted in the working
// directory.
func (j *Job) HandoffPath() string {
	return filepath.Join(j.Workdir, j.HandoffFile)
}

// CommandLine returns the MPI launch command: one processor grid per
// chunk, so -np is nchunks * nproc-xi * nproc-eta.
func (j *Job) CommandLine() []string {
	return []string{
		j.MPIRun,
		"-np", strconv.Itoa(j.Resolved.TotalProcessors()),
		j.Binary,
		j.HandoffFile,
	}
}
