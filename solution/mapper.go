package solution

import "github.com/tsbuildhq/tsbuild/tspath"

// DependencyMapper is the bidirectional adjacency store between project
// manifests: child (upstream) to parents (downstream) and back. Edges
// are de-duplicated and keep insertion order. There is no removal.
type DependencyMapper struct {
	childToParents   *tspath.FileMap[[]tspath.ResolvedConfigPath]
	parentToChildren *tspath.FileMap[[]tspath.ResolvedConfigPath]
	keys             *tspath.FileMap[struct{}]
}

// NewDependencyMapper returns an empty mapper.
func NewDependencyMapper() *DependencyMapper {
	return &DependencyMapper{
		childToParents:   tspath.NewFileMap[[]tspath.ResolvedConfigPath](),
		parentToChildren: tspath.NewFileMap[[]tspath.ResolvedConfigPath](),
		keys:             tspath.NewFileMap[struct{}](),
	}
}

// AddReference records that child is depended on by parent. Adding the
// same edge twice is a no-op.
func (m *DependencyMapper) AddReference(child, parent tspath.ResolvedConfigPath) {
	m.keys.Set(string(child), struct{}{})
	m.keys.Set(string(parent), struct{}{})
	addEdge(m.childToParents, child, parent)
	addEdge(m.parentToChildren, parent, child)
}

// Parents returns the projects that depend on child, in insertion
// order. The result is nil when child has no parents.
func (m *DependencyMapper) Parents(child tspath.ResolvedConfigPath) []tspath.ResolvedConfigPath {
	parents, _ := m.childToParents.Get(string(child))
	return parents
}

// Children returns the projects child depends on, in insertion order.
func (m *DependencyMapper) Children(parent tspath.ResolvedConfigPath) []tspath.ResolvedConfigPath {
	children, _ := m.parentToChildren.Get(string(parent))
	return children
}

// Keys returns every project that appears on either side of an edge,
// sorted.
func (m *DependencyMapper) Keys() []tspath.ResolvedConfigPath {
	keys := make([]tspath.ResolvedConfigPath, 0, m.keys.Len())
	for _, k := range m.keys.Keys() {
		keys = append(keys, tspath.ResolvedConfigPath(k))
	}
	return keys
}

func addEdge(m *tspath.FileMap[[]tspath.ResolvedConfigPath], from, to tspath.ResolvedConfigPath) {
	existing, _ := m.Get(string(from))
	for _, e := range existing {
		if e == to {
			return
		}
	}
	m.Set(string(from), append(existing, to))
}
