// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestActionableError_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  *ActionableError
		want string
	}{
		{
			name: "operation only",
			err:  &ActionableError{Operation: "load parameter file"},
			want: "failed to load parameter file",
		},
		{
			name: "operation and resource",
			err:  &ActionableError{Operation: "load parameter file", Resource: "./mesher.cue"},
			want: "failed to load parameter file: ./mesher.cue",
		},
		{
			name: "operation, resource, and cause",
			err: &ActionableError{
				Operation: "launch mesher",
				Resource:  "/scratch/run1",
				Cause:     errors.New("mpirun: not found"),
			},
			want: "failed to launch mesher: /scratch/run1: mpirun: not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestActionableError_Unwrap(t *testing.T) {
	t.Parallel()

	cause := errors.New("boom")
	wrapped := fmt.Errorf("outer: %w", cause)
	err := WrapWithOperation(wrapped, "launch mesher")

	if !errors.Is(err, cause) {
		t.Error("errors.Is must reach the innermost cause through the ActionableError")
	}
}

func TestWrapWithOperation_NilError(t *testing.T) {
	t.Parallel()

	if got := WrapWithOperation(nil, "anything"); got != nil {
		t.Errorf("WrapWithOperation(nil) = %v, want nil", got)
	}
	if got := WrapWithContext(nil, "anything", "res"); got != nil {
		t.Errorf("WrapWithContext(nil) = %v, want nil", got)
	}
}

func TestActionableError_Format(t *testing.T) {
	t.Parallel()

	err := NewErrorContext().
		WithOperation("load parameter file").
		WithResource("./mesher.cue").
		WithSuggestion("Quote hyphenated option names").
		WithSuggestion("Check the CUE syntax").
		Wrap(errors.New("unknown option")).
		Build()

	compact := err.Format(false)
	for _, want := range []string{
		"failed to load parameter file: ./mesher.cue: unknown option",
		"• Quote hyphenated option names",
		"• Check the CUE syntax",
	} {
		if !strings.Contains(compact, want) {
			t.Errorf("Format(false) missing %q:\n%s", want, compact)
		}
	}
	if strings.Contains(compact, "Error chain") {
		t.Error("Format(false) must not include the error chain")
	}

	verbose := err.Format(true)
	if !strings.Contains(verbose, "Error chain:") {
		t.Errorf("Format(true) missing error chain:\n%s", verbose)
	}
}

func TestErrorContext_BuildRequiresOperation(t *testing.T) {
	t.Parallel()

	if got := NewErrorContext().WithResource("x").Build(); got != nil {
		t.Errorf("Build() without operation = %v, want nil", got)
	}
	if got := NewErrorContext().BuildError(); got != nil {
		t.Errorf("BuildError() without operation = %v, want nil", got)
	}
}

func TestGetKnownIssues(t *testing.T) {
	t.Parallel()

	for _, id := range []Id{
		ParamFileNotFoundId,
		ParamFileParseErrorId,
		ConstraintViolationsId,
		MesherLaunchFailedId,
		SetupScriptFailedId,
		MPINotFoundId,
	} {
		iss := Get(id)
		if iss == nil {
			t.Errorf("Get(%d) = nil, want a registered issue", id)
			continue
		}
		if iss.Id() != id {
			t.Errorf("Get(%d).Id() = %d", id, iss.Id())
		}
		if strings.TrimSpace(string(iss.MarkdownMsg())) == "" {
			t.Errorf("issue %d has an empty markdown body", id)
		}
	}

	if len(Values()) != 6 {
		t.Errorf("Values() length = %d, want 6", len(Values()))
	}
}
