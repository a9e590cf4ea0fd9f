package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"symbase/internal/symbols"
)

// buildTable constructs a shared table with:
//
//	P  (package, scope p)
//	  A, B (definitions)
//	  Q (package, scope q)
//	    C (definition)
//	X  (definition at root)
func buildTable(t *testing.T) (*symbols.Table, int, int) {
	t.Helper()
	table := symbols.NewTable()
	table.SetCurrentFile("lib.sysml")

	require.NoError(t, table.Insert(0, &symbols.Symbol{Name: "P", QualifiedName: "P", Kind: symbols.KindPackage}))
	p := table.EnterScope()
	require.NoError(t, table.Insert(p, &symbols.Symbol{Name: "A", QualifiedName: "P::A", Kind: symbols.KindDefinition}))
	require.NoError(t, table.Insert(p, &symbols.Symbol{Name: "B", QualifiedName: "P::B", Kind: symbols.KindDefinition}))
	require.NoError(t, table.Insert(p, &symbols.Symbol{Name: "Q", QualifiedName: "P::Q", Kind: symbols.KindPackage}))
	q := table.EnterScope()
	require.NoError(t, table.Insert(q, &symbols.Symbol{Name: "C", QualifiedName: "P::Q::C", Kind: symbols.KindDefinition}))
	table.ExitScope()
	table.ExitScope()

	require.NoError(t, table.Insert(0, &symbols.Symbol{Name: "X", QualifiedName: "X", Kind: symbols.KindDefinition}))
	return table, p, q
}

func TestResolveQualifiedFirst(t *testing.T) {
	table, _, _ := buildTable(t)
	r := New(table)

	sym := r.Resolve("P::Q::C")
	require.NotNil(t, sym)
	assert.Equal(t, "P::Q::C", sym.QualifiedName)

	assert.Nil(t, r.Resolve("P::Q::Missing"))
}

func TestResolveScopeChain(t *testing.T) {
	table, _, q := buildTable(t)
	r := New(table)

	// From the innermost scope, names in enclosing scopes are visible.
	sym := r.ResolveInScope("A", q)
	require.NotNil(t, sym)
	assert.Equal(t, "P::A", sym.QualifiedName)

	sym = r.ResolveInScope("X", q)
	require.NotNil(t, sym)
	assert.Equal(t, "X", sym.QualifiedName)

	// Root scope cannot see into nested scopes without qualification.
	assert.Nil(t, r.ResolveInScope("C", 0))
}

func TestInnerScopeShadowsOuter(t *testing.T) {
	table, _, q := buildTable(t)
	require.NoError(t, table.Insert(q, &symbols.Symbol{Name: "X", QualifiedName: "P::Q::X", Kind: symbols.KindDefinition}))
	r := New(table)

	sym := r.ResolveInScope("X", q)
	require.NotNil(t, sym)
	assert.Equal(t, "P::Q::X", sym.QualifiedName)
}

func TestDirectDeclarationBeatsImport(t *testing.T) {
	table, p, _ := buildTable(t)

	// Scope p imports everything from Q, and also declares its own C.
	table.SetCurrentScope(p)
	table.AddImport("P::Q::*", false, nil)
	require.NoError(t, table.Insert(p, &symbols.Symbol{Name: "C", QualifiedName: "P::C", Kind: symbols.KindDefinition}))

	r := New(table)
	sym := r.ResolveInScope("C", p)
	require.NotNil(t, sym)
	assert.Equal(t, "P::C", sym.QualifiedName)
}

func TestResolveViaDirectImport(t *testing.T) {
	table, _, _ := buildTable(t)
	top := table.EnterScope()
	table.AddImport("P::A", false, nil)
	table.ExitScope()

	r := New(table)
	sym := r.ResolveInScope("A", top)
	require.NotNil(t, sym)
	assert.Equal(t, "P::A", sym.QualifiedName)

	// The import brings in A only.
	assert.Nil(t, r.ResolveInScope("B", top))
}

func TestResolveViaWildcardImport(t *testing.T) {
	table, _, _ := buildTable(t)
	top := table.EnterScope()
	table.AddImport("P::*", false, nil)
	table.ExitScope()

	r := New(table)
	require.NotNil(t, r.ResolveInScope("A", top))
	require.NotNil(t, r.ResolveInScope("B", top))

	// Direct children only: C lives under P::Q.
	assert.Nil(t, r.ResolveInScope("C", top))
}

func TestResolveViaRecursiveImport(t *testing.T) {
	table, _, _ := buildTable(t)
	top := table.EnterScope()
	table.AddImport("P::**", true, nil)
	table.ExitScope()

	r := New(table)
	sym := r.ResolveInScope("C", top)
	require.NotNil(t, sym)
	assert.Equal(t, "P::Q::C", sym.QualifiedName)
}

func TestResolveRelativeQualifiedName(t *testing.T) {
	table, p, _ := buildTable(t)
	r := New(table)

	// "Q::C" from inside P: head Q resolves through the chain, then the
	// remainder is appended to Q's qualified name.
	sym := r.ResolveInScope("Q::C", p)
	require.NotNil(t, sym)
	assert.Equal(t, "P::Q::C", sym.QualifiedName)
}

func TestAliasIndirection(t *testing.T) {
	table, _, _ := buildTable(t)
	require.NoError(t, table.Insert(0, &symbols.Symbol{
		Name:          "Shortcut",
		QualifiedName: "Shortcut",
		Kind:          symbols.KindAlias,
		AliasTarget:   "P::Q::C",
	}))

	r := New(table)
	sym := r.Resolve("Shortcut")
	require.NotNil(t, sym)
	assert.Equal(t, "P::Q::C", sym.QualifiedName)
	assert.NotEqual(t, symbols.KindAlias, sym.Kind)
}

func TestAliasChain(t *testing.T) {
	table, _, _ := buildTable(t)
	require.NoError(t, table.Insert(0, &symbols.Symbol{
		Name: "A1", QualifiedName: "A1", Kind: symbols.KindAlias, AliasTarget: "A2",
	}))
	require.NoError(t, table.Insert(0, &symbols.Symbol{
		Name: "A2", QualifiedName: "A2", Kind: symbols.KindAlias, AliasTarget: "X",
	}))

	r := New(table)
	sym := r.Resolve("A1")
	require.NotNil(t, sym)
	assert.Equal(t, "X", sym.QualifiedName)
}

func TestAliasCycleIsMiss(t *testing.T) {
	table := symbols.NewTable()
	require.NoError(t, table.Insert(0, &symbols.Symbol{
		Name: "A", QualifiedName: "A", Kind: symbols.KindAlias, AliasTarget: "B",
	}))
	require.NoError(t, table.Insert(0, &symbols.Symbol{
		Name: "B", QualifiedName: "B", Kind: symbols.KindAlias, AliasTarget: "A",
	}))

	r := New(table)
	assert.Nil(t, r.Resolve("A"))
	assert.Nil(t, r.Resolve("B"))
}

func TestAliasToMissingTargetIsMiss(t *testing.T) {
	table := symbols.NewTable()
	require.NoError(t, table.Insert(0, &symbols.Symbol{
		Name: "A", QualifiedName: "A", Kind: symbols.KindAlias, AliasTarget: "Nowhere",
	}))

	r := New(table)
	assert.Nil(t, r.Resolve("A"))
}

func TestResolveWildcardImportExpansion(t *testing.T) {
	table, _, _ := buildTable(t)
	r := New(table)

	// "P::*" expands to direct children only.
	names := r.ResolveWildcardImport("P::*")
	assert.ElementsMatch(t, []string{"P::A", "P::B", "P::Q"}, names)
	assert.NotContains(t, names, "P::Q::C")

	// Bare "*" expands to the top level.
	names = r.ResolveWildcardImport("*")
	assert.ElementsMatch(t, []string{"P", "X"}, names)
}

func TestResolveImport(t *testing.T) {
	table, _, _ := buildTable(t)
	r := New(table)

	assert.Equal(t, []string{"P::A"}, r.ResolveImport("P::A"))
	assert.Nil(t, r.ResolveImport("P::Missing"))
	assert.ElementsMatch(t, []string{"P::A", "P::B", "P::Q"}, r.ResolveImport("P::*"))
}

func TestIsWildcardImport(t *testing.T) {
	assert.True(t, IsWildcardImport("*"))
	assert.True(t, IsWildcardImport("P::*"))
	assert.True(t, IsWildcardImport("P::**"))
	assert.False(t, IsWildcardImport("P::A"))
}

func TestParseImportPath(t *testing.T) {
	assert.Equal(t, []string{"A", "B", "C"}, ParseImportPath("A::B::C"))
	assert.Equal(t, []string{"A"}, ParseImportPath("A"))
}
