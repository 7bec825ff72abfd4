// Package order implements the "order" subcommand: it resolves a
// solution's dependency graph, verifies it is acyclic, and prints the
// projects in build order.
package order

import (
	"errors"
	"fmt"
	"io"
	"os"

	graphlib "github.com/dominikbraun/graph"
	"github.com/dominikbraun/graph/draw"
	"github.com/spf13/cobra"
	"github.com/tsbuildhq/tsbuild/compiler"
	"github.com/tsbuildhq/tsbuild/solution"
	"github.com/tsbuildhq/tsbuild/tspath"
)

var outputFormat string

// OrderCmd represents the order command
var OrderCmd = &cobra.Command{
	Use:   "order [projects...]",
	Short: "Print the build order of a solution",
	Long: `Resolves the reference graph of the given root projects and prints
every project in the order it would be built: deepest dependencies
first, roots last. Fails when the references form a cycle.

Output formats:
  - text: one project per line, numbered (default)
  - dot:  Graphviz DOT format for visualization`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.OutOrStdout(), args)
	},
}

func init() {
	OrderCmd.Flags().StringVar(&outputFormat, "format", "text", "Output format: text or dot")
}

func run(out io.Writer, args []string) error {
	report := func(d compiler.Diagnostic) {
		fmt.Fprintf(os.Stderr, "%s: %s\n", d.Category, d.Message)
	}
	builder := solution.NewBuilder(compiler.NewSystemHost(), report, compiler.PassthroughFactory, solution.BuildOptions{})

	roots, err := builder.ResolveProjectSpecs(args)
	if err != nil {
		return err
	}

	// The layered walker assumes an acyclic graph, so reject cycles
	// before handing the roots to it.
	g, err := referenceGraph(builder, roots)
	if err != nil {
		return err
	}

	if outputFormat == "dot" {
		return draw.DOT(g, out)
	}
	for i, proj := range builder.CreateDependencyGraph(roots).BuildOrder() {
		fmt.Fprintf(out, "%d. %s\n", i+1, proj)
	}
	return nil
}

// referenceGraph walks the reference closure of roots into a directed
// graph that rejects cycles. Edges point from a project to the projects
// it depends on.
func referenceGraph(builder *solution.Builder, roots []tspath.ResolvedConfigPath) (graphlib.Graph[string, string], error) {
	g := graphlib.New(graphlib.StringHash, graphlib.Directed(), graphlib.PreventCycles())

	visited := make(map[tspath.ResolvedConfigPath]bool)
	var visit func(path tspath.ResolvedConfigPath) error
	visit = func(path tspath.ResolvedConfigPath) error {
		if err := g.AddVertex(string(path)); err != nil && !errors.Is(err, graphlib.ErrVertexAlreadyExists) {
			return err
		}
		if visited[path] {
			return nil
		}
		visited[path] = true

		cfg, ok := builder.ParseConfig(path)
		if !ok {
			return nil
		}
		for _, ref := range cfg.ProjectReferences {
			child := builder.ResolveReference(ref)
			if err := visit(child); err != nil {
				return err
			}
			err := g.AddEdge(string(path), string(child))
			if errors.Is(err, graphlib.ErrEdgeCreatesCycle) {
				return fmt.Errorf("project references form a cycle between %s and %s", path, child)
			}
			if err != nil && !errors.Is(err, graphlib.ErrEdgeAlreadyExists) {
				return err
			}
		}
		return nil
	}

	for _, root := range roots {
		if err := visit(root); err != nil {
			return nil, err
		}
	}
	return g, nil
}
