// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"
	"strings"

	"spheremesh/internal/mesher"
)

// renderDryRun prints the resolved launch plan without executing: the
// command line, working directory, handoff file contents, and setup
// script — everything a user needs to understand what spheremesh
// would do.
func renderDryRun(w io.Writer, job *mesher.Job) error {
	fmt.Fprintln(w, TitleStyle.Render("Dry Run"))
	fmt.Fprintln(w)

	fmt.Fprintf(w, "  %s %s\n", VerboseHighlightStyle.Render("Command:"), strings.Join(job.CommandLine(), " "))
	fmt.Fprintf(w, "  %s %s\n", VerboseHighlightStyle.Render("WorkDir:"), job.Workdir)
	fmt.Fprintf(w, "  %s %d\n", VerboseHighlightStyle.Render("Processors:"), job.Resolved.TotalProcessors())

	data, err := mesher.EncodeHandoff(job.Resolved)
	if err != nil {
		return err
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s\n", VerboseHighlightStyle.Render("  Handoff file ("+job.HandoffFile+"):"))
	for line := range strings.SplitSeq(strings.TrimRight(string(data), "\n"), "\n") {
		fmt.Fprintf(w, "    %s\n", line)
	}

	if job.Setup != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, VerboseHighlightStyle.Render("  Setup script:"))
		for line := range strings.SplitSeq(job.Setup, "\n") {
			fmt.Fprintf(w, "    %s\n", line)
		}
	}

	fmt.Fprintln(w)
	return nil
}
