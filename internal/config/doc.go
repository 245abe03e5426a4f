// SPDX-License-Identifier: MPL-2.0

// Package config loads the mesher parameter file.
//
// Parameter files are CUE. A file is parsed, unified against the
// embedded #Mesher schema (option names, types, the nchunks
// enumeration, processor-grid lower bounds), merged over the documented
// defaults via Viper, and finally converted into a strongly-typed
// meshconfig.MeshConfig plus the run options for the dispatcher.
//
// Schema violations and malformed values fail here, at load time;
// cross-parameter decomposition rules are deliberately NOT checked
// here — they belong to the meshconfig constraint checker, which
// reports all of them at once.
package config
