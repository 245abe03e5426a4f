// SPDX-License-Identifier: MPL-2.0

package mesher

import (
	"context"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// Mesher orchestrates a mesh generation job: dry runs stop before the
// Runner, everything else is handed to it.
type Mesher struct {
	runner Runner
	logger *log.Logger
}

// Option configures a Mesher.
type Option func(*Mesher)

// WithLogger replaces the default logger.
func WithLogger(logger *log.Logger) Option {
	return func(m *Mesher) { m.logger = logger }
}

// New creates a Mesher dispatching to the given runner.
func New(runner Runner, opts ...Option) *Mesher {
	m := &Mesher{
		runner: runner,
		logger: log.NewWithOptions(os.Stderr, log.Options{Prefix: "mesher"}),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Execute runs a job. When the configuration requests a dry run the
// Runner is never invoked; the caller is expected to have rendered the
// plan already.
func (m *Mesher) Execute(ctx context.Context, job *Job) error {
	m.logger.Debug("planned launch",
		"command", strings.Join(job.CommandLine(), " "),
		"workdir", job.Workdir,
		"handoff", job.HandoffFile)

	if job.Resolved.Config().Dry {
		m.logger.Info("dry run requested; mesh generator not invoked")
		return nil
	}

	m.logger.Info("launching mesh generator",
		"np", job.Resolved.TotalProcessors(),
		"binary", job.Binary)

	return m.runner.Mesh(ctx, job)
}
