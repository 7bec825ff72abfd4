// Package tsconfig models project configuration manifests: the parsed
// form consumed by the solution builder, the JSON parser that produces
// it, a per-session cache, and the pure computation of a project's
// expected output file names.
package tsconfig

import "github.com/tsbuildhq/tsbuild/tspath"

// JsxMode is the recognized subset of JSX emit modes. Only Preserve
// affects output naming; everything else behaves like None.
type JsxMode int

const (
	JsxNone JsxMode = iota
	JsxPreserve
)

// ParsedConfig is a project manifest after parsing and path resolution.
// All paths are absolute and normalized. Instances are owned by the
// Cache and shared read-only.
type ParsedConfig struct {
	// ConfigPath is the canonical path of the manifest this config was
	// parsed from. Set by the cache.
	ConfigPath tspath.ResolvedConfigPath

	// RootDir, OutDir, DeclarationDir and OutFile are empty when unset.
	RootDir        string
	OutDir         string
	DeclarationDir string
	OutFile        string

	Declaration    bool
	DeclarationMap bool
	Jsx            JsxMode

	// FileNames is the ordered list of input files.
	FileNames []string

	// ProjectReferences holds referenced project paths resolved against
	// the manifest's directory, but not yet resolved to a manifest file
	// (a reference may name a directory).
	ProjectReferences []string
}

// Host is the filesystem surface the parser needs. compiler.Host
// satisfies it.
type Host interface {
	FileExists(path string) bool
	ReadFile(path string) (string, bool)
}

// DirectoryReader is an optional host capability used to expand
// "include" directories. Hosts without it parse manifests with explicit
// file lists only.
type DirectoryReader interface {
	ReadDirectory(dir string, extensions []string) []string
}
