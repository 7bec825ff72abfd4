package solution

import (
	"fmt"
	"time"

	"github.com/tsbuildhq/tsbuild/compiler"
	"github.com/tsbuildhq/tsbuild/tsconfig"
	"github.com/tsbuildhq/tsbuild/tspath"
)

// Builder orchestrates build and clean over a solution. One Builder
// owns one build session; ResetContext starts a new one. All filesystem
// access goes through the host and all compilation through the program
// factory.
type Builder struct {
	host          compiler.Host
	report        compiler.DiagnosticReporter
	createProgram compiler.ProgramFactory
	configs       *tsconfig.Cache
	context       *BuildContext
}

// NewBuilder creates a Builder. The reporter receives every diagnostic;
// the factory compiles individual projects.
func NewBuilder(host compiler.Host, report compiler.DiagnosticReporter, createProgram compiler.ProgramFactory, options BuildOptions) *Builder {
	return &Builder{
		host:          host,
		report:        report,
		createProgram: createProgram,
		configs:       tsconfig.NewCache(host, nil),
		context:       NewBuildContext(options, report),
	}
}

// ResetContext discards the current session and starts a new one with
// the given options.
func (b *Builder) ResetContext(options BuildOptions) {
	b.context = NewBuildContext(options, b.report)
}

// Context exposes the current session, mainly for status queries.
func (b *Builder) Context() *BuildContext {
	return b.context
}

// ParseConfig exposes the session's manifest cache.
func (b *Builder) ParseConfig(path tspath.ResolvedConfigPath) (*tsconfig.ParsedConfig, bool) {
	return b.configs.ParseConfigFile(path)
}

// ResolveReference resolves a raw project reference to its manifest.
func (b *Builder) ResolveReference(ref string) tspath.ResolvedConfigPath {
	return tsconfig.ResolveProjectReferencePath(b.host, ref)
}

func (b *Builder) configHost() tsconfig.Host {
	return b.host
}

func (b *Builder) reportf(format string, args ...any) {
	b.report(compiler.Errorf(format, args...))
}

// ResolveProjectSpecs resolves user-provided project specs against the
// current directory. A spec naming an existing file is used verbatim;
// otherwise tsconfig.json is appended and re-tested. A spec that
// resolves to nothing fails the entire invocation.
func (b *Builder) ResolveProjectSpecs(specs []string) ([]tspath.ResolvedConfigPath, error) {
	if len(specs) == 0 {
		specs = []string{"."}
	}

	cwd := b.host.GetCurrentDirectory()
	roots := make([]tspath.ResolvedConfigPath, 0, len(specs))
	for _, spec := range specs {
		root, ok := tspath.ResolveConfigPath(b.host, cwd, spec)
		if !ok {
			err := fmt.Errorf("project %s not found", spec)
			b.reportf("%v", err)
			return nil, err
		}
		roots = append(roots, root)
	}
	return roots, nil
}

// BuildProjects builds the given projects and everything they
// transitively reference, in dependency order. Per-project failures do
// not halt the run; downstream projects observe them as blocked or
// out-of-date upstreams.
func (b *Builder) BuildProjects(specs []string) error {
	roots, err := b.ResolveProjectSpecs(specs)
	if err != nil {
		return err
	}

	graph := b.CreateDependencyGraph(roots)
	queue := graph.consumer()
	for {
		proj, ok := queue.pop()
		if !ok {
			break
		}

		cfg, ok := b.configs.ParseConfigFile(proj)
		if !ok {
			b.reportf("could not load config file %s", proj)
			break
		}

		status := b.UpToDateStatus(cfg)
		b.reportProjectStatus(proj, status)

		switch s := status.(type) {
		case UpToDate:
			if !b.context.Options.Force {
				if b.context.Options.Dry {
					b.report(compiler.Messagef("Project %s is up to date", proj))
				}
				continue
			}
		case UpToDateWithUpstreamTypes:
			if !b.context.Options.Force {
				b.updateOutputTimestamps(cfg, UpToDate(s))
				continue
			}
		case UpstreamBlocked:
			b.context.Verbose("Skipping %s because its upstream project %s is blocked", proj, s.UpstreamProjectName)
			continue
		}

		b.buildSingleProject(proj)
	}
	return nil
}

// updateOutputTimestamps fast-stamps a pseudo-up-to-date project: every
// expected output gets the current time, no compiler runs. The prior
// modification times of declaration outputs become the project's
// declaration-change time, so downstream analysis still sees content
// that never changed.
func (b *Builder) updateOutputTimestamps(cfg *tsconfig.ParsedConfig, prior UpToDate) {
	proj := cfg.ConfigPath
	if b.context.Options.Dry {
		b.report(compiler.Messagef("A non-dry build would update timestamps of project %s", proj))
		return
	}
	b.context.Verbose("Updating output timestamps of project %s", proj)

	now := b.host.Now()
	priorNewestUpdateTime := time.Time{}
	for _, output := range tsconfig.OutputFilesOf(cfg) {
		if tspath.IsDeclarationFile(output) {
			if t, ok := b.host.GetModifiedTime(output); ok {
				priorNewestUpdateTime = newerTime(priorNewestUpdateTime, t)
			}
		}
		if err := b.host.SetModifiedTime(output, now); err != nil {
			b.reportf("failed to update timestamp of %s: %v", output, err)
		}
	}

	b.context.projectStatus.Set(string(proj), UpToDate{
		NewestInputFileName:         prior.NewestInputFileName,
		NewestInputFileTime:         prior.NewestInputFileTime,
		NewestDeclarationChangeTime: priorNewestUpdateTime,
		NewestOutputFileTime:        now,
	})
}

// buildSingleProject compiles one project through the program factory,
// classifying diagnostics in the order config and syntactic (checked
// together), declaration, semantic; the first failing class
// short-circuits the rest and marks the project unbuildable for the
// session.
func (b *Builder) buildSingleProject(proj tspath.ResolvedConfigPath) BuildResultFlags {
	if b.context.Options.Dry {
		b.report(compiler.Messagef("A non-dry build would build project %s", proj))
		return BuildResultSuccess
	}

	b.context.Verbose("Building project %s", proj)

	resultFlags := BuildResultDeclarationOutputUnchanged

	cfg, ok := b.configs.ParseConfigFile(proj)
	if !ok {
		resultFlags |= BuildResultConfigFileErrors
		b.reportf("could not load config file %s", proj)
		b.context.projectStatus.Set(string(proj), Unbuildable{Reason: "Config file errors"})
		return resultFlags
	}

	if len(cfg.FileNames) == 0 {
		// A manifest with references but no inputs aggregates other
		// projects and emits nothing itself.
		return BuildResultNone
	}

	program := b.createProgram(compiler.ProgramOptions{
		RootNames:         cfg.FileNames,
		Config:            cfg,
		Host:              b.host,
		ProjectReferences: cfg.ProjectReferences,
	})

	syntaxDiagnostics := append(program.GetConfigDiagnostics(), program.GetSyntacticDiagnostics()...)
	if len(syntaxDiagnostics) > 0 {
		resultFlags |= BuildResultSyntaxErrors
		for _, d := range syntaxDiagnostics {
			b.report(d)
		}
		b.context.projectStatus.Set(string(proj), Unbuildable{Reason: "Syntactic errors"})
		return resultFlags
	}

	if cfg.Declaration {
		if declDiagnostics := program.GetDeclarationDiagnostics(); len(declDiagnostics) > 0 {
			resultFlags |= BuildResultDeclarationEmitErrors
			for _, d := range declDiagnostics {
				b.report(d)
			}
			b.context.projectStatus.Set(string(proj), Unbuildable{Reason: "Declaration file errors"})
			return resultFlags
		}
	}

	if semanticDiagnostics := program.GetSemanticDiagnostics(); len(semanticDiagnostics) > 0 {
		resultFlags |= BuildResultTypeErrors
		for _, d := range semanticDiagnostics {
			b.report(d)
		}
		b.context.projectStatus.Set(string(proj), Unbuildable{Reason: "Semantic errors"})
		return resultFlags
	}

	newestDeclarationChangeTime := time.Time{}
	program.Emit(func(fileName, content string) {
		var priorChangeTime time.Time
		havePrior := false
		if tspath.IsDeclarationFile(fileName) && b.host.FileExists(fileName) {
			if existing, ok := b.host.ReadFile(fileName); ok && existing == content {
				resultFlags &^= BuildResultDeclarationOutputUnchanged
				if t, ok := b.host.GetModifiedTime(fileName); ok {
					priorChangeTime = t
					havePrior = true
				}
			}
		}

		if err := b.host.WriteFile(fileName, content); err != nil {
			b.reportf("failed to write %s: %v", fileName, err)
			return
		}

		if havePrior {
			newestDeclarationChangeTime = newerTime(newestDeclarationChangeTime, priorChangeTime)
			b.context.unchangedOutputs.Set(fileName, priorChangeTime)
		}
	})

	resultFlags |= BuildResultSuccess
	b.context.projectStatus.Set(string(proj), UpToDate{
		NewestInputFileName:         newestInput(b.host, cfg),
		NewestInputFileTime:         newestInputTime(b.host, cfg),
		NewestDeclarationChangeTime: newestDeclarationChangeTime,
		NewestOutputFileTime:        b.host.Now(),
	})
	return resultFlags
}

func newestInput(host compiler.Host, cfg *tsconfig.ParsedConfig) string {
	var name string
	var newest time.Time
	for _, input := range cfg.FileNames {
		if t, ok := host.GetModifiedTime(input); ok && t.After(newest) {
			newest = t
			name = input
		}
	}
	return name
}

func newestInputTime(host compiler.Host, cfg *tsconfig.ParsedConfig) time.Time {
	var newest time.Time
	for _, input := range cfg.FileNames {
		if t, ok := host.GetModifiedTime(input); ok {
			newest = newerTime(newest, t)
		}
	}
	return newest
}
