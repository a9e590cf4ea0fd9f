package workspace

import (
	"symbase/internal/relations"
	"symbase/internal/resolver"
	"symbase/internal/symbols"
)

// Query surface consumed by the editor-integration layer. Position-to-name
// translation happens outside; this core only resolves names.

// ResolveName resolves a qualified or simple name from the root scope.
func (ws *Workspace) ResolveName(name string) *symbols.Symbol {
	return resolver.New(ws.table).ResolveInScope(name, 0)
}

// ResolveIn resolves a name relative to a specific scope, for
// file-context-aware lookups.
func (ws *Workspace) ResolveIn(name string, scopeID int) *symbols.Symbol {
	return resolver.New(ws.table).ResolveInScope(name, scopeID)
}

// ReferencesTo returns every recorded reference to a qualified name:
// relationship edges targeting it plus import statements naming it. Drives
// find-references and rename.
func (ws *Workspace) ReferencesTo(qualified string) []relations.Reference {
	out := ws.graph.GetReferencesTo(qualified)
	for _, imp := range ws.table.ImportReferencesTo(qualified) {
		out = append(out, relations.Reference{File: imp.File, Span: imp.Span})
	}
	return out
}

// RelationshipsOf aggregates the outgoing edges of a qualified name across
// all relationship kinds, for hover text and document links.
func (ws *Workspace) RelationshipsOf(qualified string) []relations.KindTargets {
	return ws.graph.AllRelationships(qualified)
}
