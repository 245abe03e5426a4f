// SPDX-License-Identifier: MPL-2.0

// Package mesher dispatches a validated mesh decomposition to the
// external mesh generator.
//
// The flow is deliberately one-way: a meshconfig.Resolved snapshot (the
// only configuration form this package accepts) is turned into a Job,
// the job is planned (handoff file contents plus the MPI command line),
// and the plan is either rendered (dry run) or handed to a Runner. The
// default ExecRunner writes the resolved parameters to a TOML handoff
// file, optionally executes a setup script in the working directory,
// and launches the generator under the configured MPI launcher.
package mesher
