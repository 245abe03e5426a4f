// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"
	"strings"

	"spheremesh/pkg/meshconfig"
)

// renderReport prints every entry of a constraint report, errors and
// warnings alike, so users see all violations at once rather than
// having to fix-and-rerun iteratively.
func renderReport(w io.Writer, report meshconfig.ValidationErrors) {
	for _, entry := range report {
		label := ErrorStyle.Render("error")
		if entry.IsWarning() {
			label = WarningStyle.Render("warning")
		}

		fields := make([]string, len(entry.Fields))
		for i, f := range entry.Fields {
			fields[i] = string(f)
		}

		fmt.Fprintf(w, "  %s  %s\n", label, entry.Message)
		fmt.Fprintf(w, "          %s %s\n",
			VerboseStyle.Render("parameters:"),
			ParamStyle.Render(strings.Join(fields, ", ")))
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%d error(s), %d warning(s)\n", report.ErrorCount(), report.WarningCount())
}
