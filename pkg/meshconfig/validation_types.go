// SPDX-License-Identifier: MPL-2.0

package meshconfig

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	// SeverityError indicates a constraint violation that blocks dispatch.
	SeverityError ValidationSeverity = iota
	// SeverityWarning indicates a potential issue that doesn't block dispatch.
	SeverityWarning
)

// Field references for the configuration options, in parameter-file
// notation. Violations carry one or more of these so callers can point
// the user at the offending option(s).
const (
	FieldAngularWidthXi       FieldRef = "angular-width-xi"
	FieldAngularWidthEta      FieldRef = "angular-width-eta"
	FieldCenterLatitude       FieldRef = "center-latitude"
	FieldCenterLongitude      FieldRef = "center-longitude"
	FieldGammaRotationAzimuth FieldRef = "gamma-rotation-azimuth"
	FieldNChunks              FieldRef = "nchunks"
	FieldNexXi                FieldRef = "nex-xi"
	FieldNexEta               FieldRef = "nex-eta"
	FieldNProcXi              FieldRef = "nproc-xi"
	FieldNProcEta             FieldRef = "nproc-eta"
)

// ErrInvalidValidatorName is returned when a ValidatorName is empty or whitespace-only.
var ErrInvalidValidatorName = errors.New("invalid validator name")

type (
	// ValidationSeverity indicates the severity level of a validation error.
	ValidationSeverity int

	// ValidatorName identifies a validation component (e.g., "constraints").
	// Must be non-empty and not whitespace-only.
	ValidatorName string

	// InvalidValidatorNameError is returned when a ValidatorName is empty or whitespace-only.
	InvalidValidatorNameError struct {
		Value ValidatorName
	}

	// FieldRef names a configuration option implicated in a violation.
	FieldRef string

	// ValidationError is a single constraint violation: a human-readable
	// message plus the ordered set of configuration fields it implicates.
	// Several rules implicate a pair (or quadruple) of fields jointly.
	ValidationError struct {
		// Validator is the name of the validator that produced this error.
		Validator ValidatorName
		// Fields are the offending configuration option(s), in the order
		// the rule reads them. Never empty.
		Fields []FieldRef
		// Message is the human-readable error message.
		Message string
		// Severity indicates whether this is an error or warning.
		Severity ValidationSeverity
	}

	// ValidationErrors is the ordered report produced by a validation
	// pass. An empty report means the configuration is valid. It
	// implements the error interface so a non-empty report can propagate
	// as a single error value, but validators never return it through
	// panic or early exit: all violations are accumulated.
	ValidationErrors []ValidationError

	// Validator checks one aspect of a MeshConfig and returns all errors
	// found. Callers should display all returned errors collectively
	// (not stop at first). Rules are stateless and order-independent.
	Validator interface {
		// Name returns a unique identifier for this validator.
		Name() ValidatorName
		// Validate checks the configuration and returns every violation.
		// The configuration is never mutated.
		Validate(cfg *MeshConfig) []ValidationError
	}
)

// String returns a human-readable representation of the severity level.
func (s ValidationSeverity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return "unknown"
	}
}

// Error implements the error interface for InvalidValidatorNameError.
func (e *InvalidValidatorNameError) Error() string {
	return fmt.Sprintf("invalid validator name: %q", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidValidatorNameError) Unwrap() error {
	return ErrInvalidValidatorName
}

// IsValid returns whether the ValidatorName is non-empty and not
// whitespace-only, and a list of validation errors if it is not.
func (n ValidatorName) IsValid() (bool, []error) {
	if strings.TrimSpace(string(n)) == "" {
		return false, []error{&InvalidValidatorNameError{Value: n}}
	}
	return true, nil
}

// String returns the string representation of the ValidatorName.
func (n ValidatorName) String() string {
	return string(n)
}

// String returns the string representation of the FieldRef.
func (f FieldRef) String() string {
	return string(f)
}

// Error implements the error interface for ValidationError.
func (e ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	refs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		refs[i] = string(f)
	}
	return strings.Join(refs, ", ") + ": " + e.Message
}

// IsError returns true if this is an error-level validation issue.
func (e ValidationError) IsError() bool {
	return e.Severity == SeverityError
}

// IsWarning returns true if this is a warning-level validation issue.
func (e ValidationError) IsWarning() bool {
	return e.Severity == SeverityWarning
}

// References reports whether the violation implicates the given field.
func (e ValidationError) References(f FieldRef) bool {
	for _, ref := range e.Fields {
		if ref == f {
			return true
		}
	}
	return false
}

// Error implements the error interface by joining all violation messages.
func (errs ValidationErrors) Error() string {
	if len(errs) == 0 {
		return ""
	}
	if len(errs) == 1 {
		return errs[0].Error()
	}

	var b strings.Builder
	b.WriteString("validation failed with ")
	b.WriteString(strconv.Itoa(len(errs)))
	b.WriteString(" violations:")
	for _, e := range errs {
		b.WriteString("\n  - ")
		b.WriteString(e.Error())
	}
	return b.String()
}

// ErrorCount returns the number of error-level entries in the report.
func (errs ValidationErrors) ErrorCount() int {
	count := 0
	for _, e := range errs {
		if e.IsError() {
			count++
		}
	}
	return count
}

// WarningCount returns the number of warning-level entries in the report.
func (errs ValidationErrors) WarningCount() int {
	count := 0
	for _, e := range errs {
		if e.IsWarning() {
			count++
		}
	}
	return count
}

// HasErrors returns true if the report contains at least one error-level entry.
func (errs ValidationErrors) HasErrors() bool {
	return errs.ErrorCount() > 0
}

// Referencing returns the subset of the report implicating the given field.
func (errs ValidationErrors) Referencing(f FieldRef) ValidationErrors {
	var out ValidationErrors
	for _, e := range errs {
		if e.References(f) {
			out = append(out, e)
		}
	}
	return out
}
