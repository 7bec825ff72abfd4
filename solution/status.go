// Package solution is the build orchestrator core: it walks project
// reference graphs, decides per project whether a rebuild is needed,
// and drives the project compiler over the resulting plan in
// dependency order.
package solution

import (
	"time"

	"github.com/tsbuildhq/tsbuild/tspath"
)

// UpToDateStatus is the result of analyzing one project. It is a closed
// set of variants; consumers type-switch exhaustively and panic on an
// unknown variant so a new case cannot be silently ignored.
type UpToDateStatus interface {
	upToDateStatus()
}

// Unbuildable marks a project that cannot be built: a config error, a
// missing input, or a compilation failure earlier in this session.
type Unbuildable struct {
	Reason string
}

// UpToDate marks a project whose outputs are all newer than all of its
// inputs and all upstream outputs.
type UpToDate struct {
	NewestInputFileName string
	NewestInputFileTime time.Time

	// NewestDeclarationChangeTime is the newest time a declaration
	// output actually changed content. Declaration outputs rewritten
	// with identical bytes keep their pre-write time here. The status
	// memoized after a build takes only those pre-write times into
	// account; declaration outputs whose content changed in that build
	// do not raise it.
	NewestDeclarationChangeTime time.Time

	NewestOutputFileTime time.Time
}

// UpToDateWithUpstreamTypes marks a project whose outputs are older
// than an upstream output, but the upstream's declaration outputs were
// content-unchanged since this project last built. Such a project is
// eligible for a timestamp-only refresh instead of a rebuild.
type UpToDateWithUpstreamTypes UpToDate

// OutputMissing marks a project with at least one expected output
// absent on disk.
type OutputMissing struct {
	MissingOutputFileName string
}

// OutOfDateWithSelf marks a project with an output older than one of
// its own inputs.
type OutOfDateWithSelf struct {
	OutOfDateOutputFileName string
	NewerInputFileName      string
}

// OutOfDateWithUpstream marks a project with an output older than the
// newest input of an upstream project whose declaration content
// actually changed.
type OutOfDateWithUpstream struct {
	OutOfDateOutputFileName string
	NewerProjectName        tspath.ResolvedConfigPath
}

// UpstreamOutOfDate marks a project whose upstream is itself not up to
// date.
type UpstreamOutOfDate struct {
	UpstreamProjectName tspath.ResolvedConfigPath
}

// UpstreamBlocked marks a project whose upstream is unbuildable.
type UpstreamBlocked struct {
	UpstreamProjectName tspath.ResolvedConfigPath
}

func (Unbuildable) upToDateStatus()                {}
func (UpToDate) upToDateStatus()                   {}
func (UpToDateWithUpstreamTypes) upToDateStatus()  {}
func (OutputMissing) upToDateStatus()              {}
func (OutOfDateWithSelf) upToDateStatus()          {}
func (OutOfDateWithUpstream) upToDateStatus()      {}
func (UpstreamOutOfDate) upToDateStatus()          {}
func (UpstreamBlocked) upToDateStatus()            {}
