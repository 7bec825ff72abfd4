package compiler

import "github.com/tsbuildhq/tsbuild/tsconfig"

// ProgramOptions carries everything a project compiler needs for one
// project.
type ProgramOptions struct {
	RootNames         []string
	Config            *tsconfig.ParsedConfig
	Host              Host
	ProjectReferences []string
}

// EmitCallback receives each emitted output as a (path, content) pair.
type EmitCallback func(path, content string)

// Program is one compilation of a single project. Diagnostic getters
// are cheap to call repeatedly; Emit produces outputs through the
// callback rather than writing files itself, so the builder controls
// all filesystem effects.
type Program interface {
	GetConfigDiagnostics() []Diagnostic
	GetSyntacticDiagnostics() []Diagnostic
	GetDeclarationDiagnostics() []Diagnostic
	GetSemanticDiagnostics() []Diagnostic
	Emit(writeFile EmitCallback)
}

// ProgramFactory creates the Program for one project build. The real
// compiler is out of process scope; deployments plug their own factory
// into the builder.
type ProgramFactory func(ProgramOptions) Program
