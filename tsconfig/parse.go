package tsconfig

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tsbuildhq/tsbuild/tspath"
)

// sourceExtensions are the input extensions considered when expanding
// include directives.
var sourceExtensions = []string{".ts", ".tsx"}

// rawConfig mirrors the JSON shape of a manifest on disk.
type rawConfig struct {
	CompilerOptions struct {
		RootDir        string `json:"rootDir"`
		OutDir         string `json:"outDir"`
		DeclarationDir string `json:"declarationDir"`
		OutFile        string `json:"outFile"`
		Declaration    bool   `json:"declaration"`
		DeclarationMap bool   `json:"declarationMap"`
		Jsx            string `json:"jsx"`
	} `json:"compilerOptions"`
	Files      []string `json:"files"`
	Include    []string `json:"include"`
	References []struct {
		Path string `json:"path"`
	} `json:"references"`
}

// ParseFunc parses the manifest at path. The cache delegates to one of
// these; tests substitute fakes.
type ParseFunc func(host Host, path tspath.ResolvedConfigPath) (*ParsedConfig, error)

// Parse reads and decodes the manifest at path, resolving all contained
// paths against the manifest's directory.
func Parse(host Host, path tspath.ResolvedConfigPath) (*ParsedConfig, error) {
	content, ok := host.ReadFile(string(path))
	if !ok {
		return nil, fmt.Errorf("cannot read config file %s", path)
	}

	var raw rawConfig
	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	configDir := tspath.Dir(string(path))
	cfg := &ParsedConfig{
		Declaration:    raw.CompilerOptions.Declaration,
		DeclarationMap: raw.CompilerOptions.DeclarationMap,
	}

	if strings.EqualFold(raw.CompilerOptions.Jsx, "preserve") {
		cfg.Jsx = JsxPreserve
	}
	if raw.CompilerOptions.RootDir != "" {
		cfg.RootDir = tspath.Resolve(configDir, raw.CompilerOptions.RootDir)
	}
	if raw.CompilerOptions.OutDir != "" {
		cfg.OutDir = tspath.Resolve(configDir, raw.CompilerOptions.OutDir)
	}
	if raw.CompilerOptions.DeclarationDir != "" {
		cfg.DeclarationDir = tspath.Resolve(configDir, raw.CompilerOptions.DeclarationDir)
	}
	if raw.CompilerOptions.OutFile != "" {
		cfg.OutFile = tspath.Resolve(configDir, raw.CompilerOptions.OutFile)
	}

	for _, f := range raw.Files {
		cfg.FileNames = append(cfg.FileNames, tspath.Resolve(configDir, f))
	}
	cfg.FileNames = append(cfg.FileNames, expandIncludes(host, configDir, raw.Include)...)

	for _, ref := range raw.References {
		cfg.ProjectReferences = append(cfg.ProjectReferences, tspath.Resolve(configDir, ref.Path))
	}

	return cfg, nil
}

// expandIncludes lists source files under each include directory. Only
// directory includes are supported; hosts without ReadDirectory skip
// expansion entirely.
func expandIncludes(host Host, configDir string, includes []string) []string {
	if len(includes) == 0 {
		return nil
	}
	reader, ok := host.(DirectoryReader)
	if !ok {
		return nil
	}

	var files []string
	seen := make(map[string]bool)
	for _, inc := range includes {
		dir := tspath.Resolve(configDir, strings.TrimSuffix(inc, "/**/*"))
		for _, f := range reader.ReadDirectory(dir, sourceExtensions) {
			f = tspath.Normalize(f)
			if !seen[f] {
				seen[f] = true
				files = append(files, f)
			}
		}
	}
	return files
}

// ResolveProjectReferencePath resolves a raw reference path to the
// manifest it names: a path to an existing file is used verbatim,
// anything else is treated as a directory containing tsconfig.json.
func ResolveProjectReferencePath(host Host, ref string) tspath.ResolvedConfigPath {
	resolved := tspath.Normalize(ref)
	if host.FileExists(resolved) {
		return tspath.ResolvedConfigPath(resolved)
	}
	return tspath.ResolvedConfigPath(tspath.Resolve(resolved, "tsconfig.json"))
}
