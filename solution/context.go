package solution

import (
	"time"

	"github.com/tsbuildhq/tsbuild/compiler"
	"github.com/tsbuildhq/tsbuild/tspath"
)

// BuildOptions are the session-level switches.
type BuildOptions struct {
	Dry     bool
	Force   bool
	Verbose bool
}

// BuildContext is the per-session state: the status memo, the record of
// declaration outputs rewritten with identical bytes, and the verbose
// diagnostic sink.
type BuildContext struct {
	Options BuildOptions

	// projectStatus memoizes project statuses for the session. Once a
	// status is written, later queries return exactly that value.
	projectStatus *tspath.FileMap[UpToDateStatus]

	// unchangedOutputs maps an output path to the file's modification
	// time from *before* a byte-identical rewrite during this session.
	// The analyzer uses the prior time so a touch-only rewrite does not
	// indefinitely defer real downstream rebuilds.
	unchangedOutputs *tspath.FileMap[time.Time]

	report compiler.DiagnosticReporter
}

// NewBuildContext creates a fresh session.
func NewBuildContext(options BuildOptions, report compiler.DiagnosticReporter) *BuildContext {
	ctx := &BuildContext{Options: options, report: report}
	ctx.Reset()
	return ctx
}

// Verbose reports a verbose diagnostic, or nothing when the session is
// not verbose.
func (c *BuildContext) Verbose(format string, args ...any) {
	if !c.Options.Verbose {
		return
	}
	c.report(compiler.Verbosef(format, args...))
}

// Reset discards all session memoization.
func (c *BuildContext) Reset() {
	c.projectStatus = tspath.NewFileMap[UpToDateStatus]()
	c.unchangedOutputs = tspath.NewFileMap[time.Time]()
}
