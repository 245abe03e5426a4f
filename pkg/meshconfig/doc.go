// SPDX-License-Identifier: MPL-2.0

// Package meshconfig defines the mesh decomposition configuration for a
// spherical shell: how the shell is split into chunks, how many spectral
// elements each chunk carries along its two logical directions, and how
// the element grid is distributed over a processor grid.
//
// The package owns three concerns:
//
//   - The configuration record (MeshConfig) with strongly-typed fields.
//     Closed enumerations and lower bounds (ChunkCount, ProcCount) are
//     enforced at construction time and never reach the report stage.
//   - The constraint checker: a Validator framework that evaluates every
//     topology, divisibility, and geometry rule and collects ALL
//     violations into a ValidationErrors report, so a user can fix every
//     problem in a single pass.
//   - Resolution: a validated configuration is frozen into a Resolved
//     snapshot carrying the derived plain-degree angle values and the
//     total processor count consumed by the external mesh generator.
//     Derived values exist only on Resolved and therefore cannot be read
//     before validation succeeds.
package meshconfig
