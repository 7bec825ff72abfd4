package solution

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tsbuildhq/tsbuild/tspath"
)

func TestDependencyMapper_AddReference(t *testing.T) {
	t.Parallel()

	m := NewDependencyMapper()
	m.AddReference("/s/a/tsconfig.json", "/s/b/tsconfig.json")
	m.AddReference("/s/a/tsconfig.json", "/s/c/tsconfig.json")

	assert.Equal(t,
		[]tspath.ResolvedConfigPath{"/s/b/tsconfig.json", "/s/c/tsconfig.json"},
		m.Parents("/s/a/tsconfig.json"))
	assert.Equal(t,
		[]tspath.ResolvedConfigPath{"/s/a/tsconfig.json"},
		m.Children("/s/b/tsconfig.json"))
}

func TestDependencyMapper_Idempotent(t *testing.T) {
	t.Parallel()

	m := NewDependencyMapper()
	m.AddReference("/s/a/tsconfig.json", "/s/b/tsconfig.json")
	m.AddReference("/s/a/tsconfig.json", "/s/b/tsconfig.json")

	assert.Len(t, m.Parents("/s/a/tsconfig.json"), 1)
	assert.Len(t, m.Children("/s/b/tsconfig.json"), 1)
}

func TestDependencyMapper_AbsentKey(t *testing.T) {
	t.Parallel()

	m := NewDependencyMapper()
	assert.Nil(t, m.Parents("/s/nowhere/tsconfig.json"))
	assert.Nil(t, m.Children("/s/nowhere/tsconfig.json"))
}

func TestDependencyMapper_Keys(t *testing.T) {
	t.Parallel()

	m := NewDependencyMapper()
	m.AddReference("/s/b/tsconfig.json", "/s/a/tsconfig.json")

	assert.Equal(t,
		[]tspath.ResolvedConfigPath{"/s/a/tsconfig.json", "/s/b/tsconfig.json"},
		m.Keys())
}
