// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Id int

const (
	ParamFileNotFoundId Id = iota + 1
	ParamFileParseErrorId
	ConstraintViolationsId
	MesherLaunchFailedId
	SetupScriptFailedId
	MPINotFoundId
)

type MarkdownMsg string

type HttpLink string

type Renderer interface {
	Render(in string, stylePath string) (string, error)
}

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink  // must never be empty, because we need to have docs about all issue types
	extLinks []HttpLink  // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		extraMd += "\n\n"
		extraMd += "## See also: "
		for _, link := range i.docLinks {
			extraMd += "- [" + string(link) + "]"
		}
		for _, link := range i.extLinks {
			extraMd += "- [" + string(link) + "]"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	render = glamour.Render

	paramFileNotFoundIssue = &Issue{
		id: ParamFileNotFoundId,
		mdMsg: `
# No parameter file found!

We searched for a mesher parameter file but couldn't find one in the
expected locations.

## Search locations (in order of precedence):
1. The path given on the command line
2. ./mesher.cue in the current directory
3. The spheremesh config directory

## Things you can try:
- Create a mesher.cue in your run directory:
~~~cue
nchunks: 6
"nex-xi":  256
"nex-eta": 256
"nproc-xi":  4
"nproc-eta": 4
~~~

- Or point at one explicitly:
~~~
$ spheremesh validate --params path/to/mesher.cue
~~~`,
	}

	paramFileParseErrorIssue = &Issue{
		id: ParamFileParseErrorId,
		mdMsg: `
# Failed to parse the parameter file!

Your parameter file contains syntax errors or options that don't match
the mesher schema.

## Common issues:
- Invalid CUE syntax (missing quotes, braces, etc.)
- Unknown option names
- A value of the wrong type (e.g. a string where an integer is expected)
- An nchunks value outside 1, 2, 3, 6
- Angles without a unit suffix where one is required

## Things you can try:
- Check the error message above for the specific option
- Quote hyphenated option names: ` + "`\"nex-xi\": 256`" + `
- Angles take a unit suffix: ` + "`\"angular-width-xi\": \"90deg\"`" + `

## Example of a valid parameter file:
~~~cue
nchunks: 1
"angular-width-xi":  "20deg"
"angular-width-eta": "20deg"
"center-latitude":   "40deg"
"center-longitude":  "-105deg"
"nex-xi":  64
"nex-eta": 64
~~~`,
	}

	constraintViolationsIssue = &Issue{
		id: ConstraintViolationsId,
		mdMsg: `
# The mesh configuration violates decomposition constraints!

Every violation is listed above; all of them must be fixed before the
mesh generator may run. The checker never stops at the first problem,
so one pass over the list is enough.

## Rules of thumb:
- More than one chunk: angular widths must be exactly 90 degrees
- More than two chunks: the processor grid must be square and both
  directions must carry the same number of elements per processor
- Element counts must be multiples of 8 (and of 8 * nproc)
- Elements per processor must be a multiple of 16 (outer-core doubling)
- At least 48 elements per direction keep the Jacobian positive`,
	}

	mesherLaunchFailedIssue = &Issue{
		id: MesherLaunchFailedId,
		mdMsg: `
# Mesh generator launch failed!

The external mesh generator reported a failure. spheremesh does not
interpret the generator's internals; the underlying error is shown
above unchanged.

## Things you can try:
- Run with verbose mode for the full error chain:
~~~
$ spheremesh --verbose run
~~~

- Check that the mesher binary is built and on PATH
- Check the work directory is writable
- Inspect the generator's own log files in the work directory`,
	}

	setupScriptFailedIssue = &Issue{
		id: SetupScriptFailedId,
		mdMsg: `
# Pre-launch setup script failed!

The setup commands configured for this run exited with an error before
the mesh generator was started. Nothing was dispatched.

## Things you can try:
- Test the setup script in a plain POSIX shell
- Keep setup minimal: scratch directories, environment modules
- Remove the setup block to launch without it`,
	}

	mpiNotFoundIssue = &Issue{
		id: MPINotFoundId,
		mdMsg: `
# MPI launcher not found!

The mesh generator runs as an MPI job, but no launcher was found.

## Things you can try:
- Install an MPI implementation (OpenMPI, MPICH)
- Put mpirun on your PATH, or set its location in the run options
- Use a dry run to inspect the command line without launching:
~~~
$ spheremesh run --dry
~~~`,
	}

	issues = map[Id]*Issue{
		paramFileNotFoundIssue.Id():    paramFileNotFoundIssue,
		paramFileParseErrorIssue.Id():  paramFileParseErrorIssue,
		constraintViolationsIssue.Id(): constraintViolationsIssue,
		mesherLaunchFailedIssue.Id():   mesherLaunchFailedIssue,
		setupScriptFailedIssue.Id():    setupScriptFailedIssue,
		mpiNotFoundIssue.Id():          mpiNotFoundIssue,
	}
)

func Values() []*Issue {
	return maps.Values(issues)
}

func Get(id Id) *Issue {
	return issues[id]
}
