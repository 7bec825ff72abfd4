package solution

import (
	"fmt"
	"time"

	"github.com/tsbuildhq/tsbuild/tsconfig"
	"github.com/tsbuildhq/tsbuild/tspath"
)

// maximumTime sorts after every real file timestamp.
var maximumTime = time.Unix(1<<42, 0)

func newerTime(a, b time.Time) time.Time {
	if b.After(a) {
		return b
	}
	return a
}

// UpToDateStatusOfFile computes the status of the project at path,
// parsing its manifest through the cache first.
func (b *Builder) UpToDateStatusOfFile(path tspath.ResolvedConfigPath) UpToDateStatus {
	cfg, ok := b.configs.ParseConfigFile(path)
	if !ok {
		return Unbuildable{Reason: fmt.Sprintf("failed to read config file %s", path)}
	}
	return b.UpToDateStatus(cfg)
}

// UpToDateStatus computes the status of one project, memoized for the
// session: the filesystem is consulted at most once per project.
func (b *Builder) UpToDateStatus(cfg *tsconfig.ParsedConfig) UpToDateStatus {
	if status, ok := b.context.projectStatus.Get(string(cfg.ConfigPath)); ok {
		return status
	}
	status := b.computeUpToDateStatus(cfg)
	b.context.projectStatus.Set(string(cfg.ConfigPath), status)
	return status
}

func (b *Builder) computeUpToDateStatus(cfg *tsconfig.ParsedConfig) UpToDateStatus {
	// Input scan: every input must exist; track the newest.
	var (
		newestInputFileName string
		newestInputFileTime time.Time
	)
	for _, input := range cfg.FileNames {
		t, ok := b.host.GetModifiedTime(input)
		if !ok {
			return Unbuildable{Reason: fmt.Sprintf("%s does not exist", input)}
		}
		if t.After(newestInputFileTime) {
			newestInputFileTime = t
			newestInputFileName = input
		}
	}

	// Output scan. A missing output or an output older than the newest
	// input stops the scan but does not conclude the analysis: upstream
	// problems still take priority over local staleness.
	var (
		oldestOutputFileTime        = maximumTime
		oldestOutputFileName        string
		newestOutputFileTime        time.Time
		newestDeclarationChangeTime time.Time
		missingOutputFileName       string
		outOfDateWithInputs         bool
	)
	for _, output := range tsconfig.OutputFilesOf(cfg) {
		t, ok := b.host.GetModifiedTime(output)
		if !ok {
			missingOutputFileName = output
			break
		}
		if t.Before(oldestOutputFileTime) {
			oldestOutputFileTime = t
			oldestOutputFileName = output
		}
		newestOutputFileTime = newerTime(newestOutputFileTime, t)

		// Equal timestamps count as up to date.
		if t.Before(newestInputFileTime) {
			outOfDateWithInputs = true
			break
		}

		if tspath.IsDeclarationFile(output) {
			if prior, ok := b.context.unchangedOutputs.Get(output); ok {
				newestDeclarationChangeTime = newerTime(newestDeclarationChangeTime, prior)
			} else {
				newestDeclarationChangeTime = newerTime(newestDeclarationChangeTime, t)
			}
		}
	}

	// Upstream scan, before any local conclusion: a failed or stale
	// upstream makes a local rebuild futile.
	pseudoUpToDate := false
	for _, ref := range cfg.ProjectReferences {
		refPath := tsconfig.ResolveProjectReferencePath(b.host, ref)
		refStatus := b.UpToDateStatusOfFile(refPath)

		if _, blocked := refStatus.(Unbuildable); blocked {
			return UpstreamBlocked{UpstreamProjectName: refPath}
		}
		upstream, ok := refStatus.(UpToDate)
		if !ok {
			return UpstreamOutOfDate{UpstreamProjectName: refPath}
		}

		// No pressure from an upstream whose newest input is not newer
		// than our oldest output.
		if !upstream.NewestInputFileTime.After(oldestOutputFileTime) {
			continue
		}
		// The upstream changed, but its declaration outputs did not
		// change content since we last built: a timestamp refresh is
		// enough.
		if !upstream.NewestDeclarationChangeTime.After(oldestOutputFileTime) {
			pseudoUpToDate = true
			continue
		}
		return OutOfDateWithUpstream{
			OutOfDateOutputFileName: oldestOutputFileName,
			NewerProjectName:        refPath,
		}
	}

	if missingOutputFileName != "" {
		return OutputMissing{MissingOutputFileName: missingOutputFileName}
	}
	if outOfDateWithInputs {
		return OutOfDateWithSelf{
			OutOfDateOutputFileName: oldestOutputFileName,
			NewerInputFileName:      newestInputFileName,
		}
	}

	times := UpToDate{
		NewestInputFileName:         newestInputFileName,
		NewestInputFileTime:         newestInputFileTime,
		NewestDeclarationChangeTime: newestDeclarationChangeTime,
		NewestOutputFileTime:        newestOutputFileTime,
	}
	if pseudoUpToDate {
		return UpToDateWithUpstreamTypes(times)
	}
	return times
}
