package solution

import "github.com/tsbuildhq/tsbuild/tspath"

// reportProjectStatus emits one verbose diagnostic describing why a
// project will or will not be built. The switch is exhaustive over the
// status variants; an unknown variant is a programming error.
func (b *Builder) reportProjectStatus(proj tspath.ResolvedConfigPath, status UpToDateStatus) {
	switch s := status.(type) {
	case OutOfDateWithSelf:
		b.context.Verbose("Project %s is out of date because output %s is older than input %s", proj, s.OutOfDateOutputFileName, s.NewerInputFileName)
	case OutOfDateWithUpstream:
		b.context.Verbose("Project %s is out of date because output %s is older than project %s", proj, s.OutOfDateOutputFileName, s.NewerProjectName)
	case OutputMissing:
		b.context.Verbose("Project %s is out of date because output %s does not exist", proj, s.MissingOutputFileName)
	case UpToDate:
		b.context.Verbose("Project %s is up to date", proj)
	case UpToDateWithUpstreamTypes:
		b.context.Verbose("Project %s is up to date because the declaration outputs of its upstream projects are unchanged", proj)
	case UpstreamOutOfDate:
		b.context.Verbose("Project %s cannot build yet because upstream project %s is out of date", proj, s.UpstreamProjectName)
	case UpstreamBlocked:
		b.context.Verbose("Project %s cannot be built because upstream project %s has errors", proj, s.UpstreamProjectName)
	case Unbuildable:
		b.context.Verbose("Project %s cannot be built: %s", proj, s.Reason)
	default:
		panic("unknown up-to-date status variant")
	}
}
