package workspace

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDependencyGraphBasics(t *testing.T) {
	g := NewDependencyGraph()

	g.AddDependency("mid.sysml", "base.sysml")
	g.AddDependency("top.sysml", "mid.sysml")
	g.AddDependency("top.sysml", "top.sysml") // self-edges are ignored

	assert.Equal(t, []string{"base.sysml"}, g.DependsOn("mid.sysml"))
	assert.Equal(t, []string{"mid.sysml"}, g.Dependents("base.sysml"))
	assert.Empty(t, g.DependsOn("base.sysml"))
}

func TestAllAffectedTransitive(t *testing.T) {
	g := NewDependencyGraph()

	g.AddDependency("mid.sysml", "base.sysml")
	g.AddDependency("top.sysml", "mid.sysml")
	g.AddDependency("other.sysml", "base.sysml")

	affected := g.AllAffected("base.sysml")
	assert.Equal(t, []string{"mid.sysml", "other.sysml", "top.sysml"}, affected)

	assert.Equal(t, []string{"top.sysml"}, g.AllAffected("mid.sysml"))
	assert.Empty(t, g.AllAffected("top.sysml"))
}

func TestAllAffectedCycleSafe(t *testing.T) {
	g := NewDependencyGraph()

	g.AddDependency("a.sysml", "b.sysml")
	g.AddDependency("b.sysml", "a.sysml")

	assert.Equal(t, []string{"b.sysml"}, g.AllAffected("a.sysml"))
	assert.Equal(t, []string{"a.sysml"}, g.AllAffected("b.sysml"))
}

func TestRemoveFileKeepsInboundEdges(t *testing.T) {
	g := NewDependencyGraph()

	g.AddDependency("mid.sysml", "base.sysml")
	g.AddDependency("top.sysml", "mid.sysml")

	g.RemoveFile("mid.sysml")

	// mid's outgoing edge is gone, but top still depends on mid and must be
	// invalidated when mid changes again.
	assert.Empty(t, g.DependsOn("mid.sysml"))
	assert.Empty(t, g.Dependents("base.sysml"))
	assert.Equal(t, []string{"top.sysml"}, g.Dependents("mid.sysml"))
}
