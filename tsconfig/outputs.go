package tsconfig

import "github.com/tsbuildhq/tsbuild/tspath"

// OutputFilesOf computes every output path the project is expected to
// produce: the primary emit for each input (or the single bundle when
// outFile is set), declaration files when declaration is on, and
// declaration map files when declarationMap is also on.
func OutputFilesOf(cfg *ParsedConfig) []string {
	if cfg.OutFile != "" {
		outputs := []string{cfg.OutFile}
		if cfg.Declaration {
			decl := tspath.ChangeExtension(cfg.OutFile, ".d.ts")
			outputs = append(outputs, decl)
			if cfg.DeclarationMap {
				outputs = append(outputs, decl+".map")
			}
		}
		return outputs
	}

	var outputs []string
	for _, input := range cfg.FileNames {
		outputs = append(outputs, OutputFilesFor(cfg, input)...)
	}
	return outputs
}

// OutputFilesFor computes the outputs produced for a single input file.
// Declaration inputs produce nothing.
func OutputFilesFor(cfg *ParsedConfig, inputFile string) []string {
	if tspath.IsDeclarationFile(inputFile) {
		return nil
	}

	rel := tspath.Relative(rootDirOf(cfg), inputFile)
	emitDir := cfg.OutDir
	if emitDir == "" {
		emitDir = tspath.Dir(string(cfg.ConfigPath))
	}

	ext := ".js"
	if tspath.HasExtension(inputFile, ".tsx") && cfg.Jsx == JsxPreserve {
		ext = ".jsx"
	}
	outputs := []string{tspath.ChangeExtension(tspath.Resolve(emitDir, rel), ext)}

	if cfg.Declaration {
		declDir := cfg.DeclarationDir
		if declDir == "" {
			declDir = emitDir
		}
		decl := tspath.ChangeExtension(tspath.Resolve(declDir, rel), ".d.ts")
		outputs = append(outputs, decl)
		if cfg.DeclarationMap {
			outputs = append(outputs, decl+".map")
		}
	}
	return outputs
}

// rootDirOf returns the directory inputs are relativized against.
func rootDirOf(cfg *ParsedConfig) string {
	if cfg.RootDir != "" {
		return cfg.RootDir
	}
	return tspath.Dir(string(cfg.ConfigPath))
}
