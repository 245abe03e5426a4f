// SPDX-License-Identifier: MPL-2.0

// Package platform centralizes platform-specific concerns such as
// runtime.GOOS comparisons and configuration directory conventions.
package platform

// OS name constants for runtime.GOOS comparisons, so the string
// literals are not scattered across callers.
const (
	Windows = "windows"
	Darwin  = "darwin"
	Linux   = "linux"
)
