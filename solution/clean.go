package solution

import (
	"fmt"

	"github.com/tsbuildhq/tsbuild/compiler"
	"github.com/tsbuildhq/tsbuild/tsconfig"
)

// CleanProjects removes every expected output of the given projects and
// everything they transitively reference. In dry mode the files are
// listed instead of deleted.
func (b *Builder) CleanProjects(specs []string) error {
	roots, err := b.ResolveProjectSpecs(specs)
	if err != nil {
		return err
	}

	deleter, canDelete := b.host.(compiler.FileDeleter)
	if !canDelete && !b.context.Options.Dry {
		err := fmt.Errorf("host does not support deleting files")
		b.reportf("%v", err)
		return err
	}

	graph := b.CreateDependencyGraph(roots)
	queue := graph.consumer()

	var filesToDelete []string
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
		for _, output := range tsconfig.OutputFilesOf(cfg) {
			if b.host.FileExists(output) {
				filesToDelete = append(filesToDelete, output)
			}
		}
	}

	if b.context.Options.Dry {
		for _, f := range filesToDelete {
			b.report(compiler.Messagef("A non-dry clean would delete %s", f))
		}
		return nil
	}

	for _, f := range filesToDelete {
		if err := deleter.DeleteFile(f); err != nil {
			b.reportf("failed to delete %s: %v", f, err)
		}
	}
	return nil
}
