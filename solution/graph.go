package solution

import (
	"github.com/tsbuildhq/tsbuild/tsconfig"
	"github.com/tsbuildhq/tsbuild/tspath"
)

// DependencyGraph is the result of walking the reference closure of a
// set of root projects: a layered build queue plus the bidirectional
// edge store.
//
// The first layer of BuildQueue holds the roots and each reference
// lands one layer deeper, so the last layer holds the deepest leaves.
// Consuming from the tail therefore yields a reverse-topological order:
// every upstream is handed out before any project that depends on it.
type DependencyGraph struct {
	BuildQueue    [][]tspath.ResolvedConfigPath
	DependencyMap *DependencyMapper
}

// CreateDependencyGraph walks the reference closure of roots depth
// first, recording edges and layering projects by depth. Projects
// reachable through several paths end up in their deepest layer only.
// Roots whose manifest cannot be loaded are reported and skipped.
func (b *Builder) CreateDependencyGraph(roots []tspath.ResolvedConfigPath) *DependencyGraph {
	walker := &graphWalker{builder: b, mapper: NewDependencyMapper()}

	for _, root := range roots {
		cfg, ok := b.configs.ParseConfigFile(root)
		if !ok {
			b.reportf("could not load config file %s", root)
			continue
		}
		walker.enumerate(root, cfg)
	}

	removeShallowDuplicates(walker.queue)

	return &DependencyGraph{
		BuildQueue:    walker.queue,
		DependencyMap: walker.mapper,
	}
}

type graphWalker struct {
	builder *Builder
	mapper  *DependencyMapper
	queue   [][]tspath.ResolvedConfigPath
	pos     int
}

func (w *graphWalker) enumerate(path tspath.ResolvedConfigPath, cfg *tsconfig.ParsedConfig) {
	for len(w.queue) <= w.pos {
		w.queue = append(w.queue, nil)
	}
	if !containsPath(w.queue[w.pos], path) {
		w.queue[w.pos] = append(w.queue[w.pos], path)
	}

	for _, ref := range cfg.ProjectReferences {
		actualPath := tsconfig.ResolveProjectReferencePath(w.builder.configHost(), ref)
		// actualPath is the upstream (child) here; path depends on it.
		w.mapper.AddReference(actualPath, path)

		refCfg, ok := w.builder.configs.ParseConfigFile(actualPath)
		if !ok {
			continue
		}
		w.pos++
		w.enumerate(actualPath, refCfg)
		w.pos--
	}
}

// removeShallowDuplicates drops every entry that reappears in a deeper
// layer, leaving each project in the deepest layer it was reached in.
func removeShallowDuplicates(queue [][]tspath.ResolvedConfigPath) {
	deeper := make(map[tspath.ResolvedConfigPath]bool)
	for i := len(queue) - 1; i >= 1; i-- {
		for _, p := range queue[i] {
			deeper[p] = true
		}
		filtered := queue[i-1][:0]
		for _, p := range queue[i-1] {
			if !deeper[p] {
				filtered = append(filtered, p)
			}
		}
		queue[i-1] = filtered
	}
}

// BuildOrder flattens the queue into consumption order: deepest leaves
// first, roots last.
func (g *DependencyGraph) BuildOrder() []tspath.ResolvedConfigPath {
	var order []tspath.ResolvedConfigPath
	for i := len(g.BuildQueue) - 1; i >= 0; i-- {
		layer := g.BuildQueue[i]
		for j := len(layer) - 1; j >= 0; j-- {
			order = append(order, layer[j])
		}
	}
	return order
}

// consumer pops projects in build order without mutating the graph.
type queueConsumer struct {
	layers [][]tspath.ResolvedConfigPath
}

func (g *DependencyGraph) consumer() *queueConsumer {
	layers := make([][]tspath.ResolvedConfigPath, len(g.BuildQueue))
	for i, layer := range g.BuildQueue {
		layers[i] = append([]tspath.ResolvedConfigPath(nil), layer...)
	}
	return &queueConsumer{layers: layers}
}

// pop takes the tail of the last non-empty layer, discarding empty
// trailing layers as it goes.
func (c *queueConsumer) pop() (tspath.ResolvedConfigPath, bool) {
	for len(c.layers) > 0 {
		last := c.layers[len(c.layers)-1]
		if len(last) == 0 {
			c.layers = c.layers[:len(c.layers)-1]
			continue
		}
		p := last[len(last)-1]
		c.layers[len(c.layers)-1] = last[:len(last)-1]
		return p, true
	}
	return "", false
}

func containsPath(layer []tspath.ResolvedConfigPath, p tspath.ResolvedConfigPath) bool {
	for _, existing := range layer {
		if existing == p {
			return true
		}
	}
	return false
}
