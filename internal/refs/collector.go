// Package refs back-fills symbol reference lists from the relationship
// graph. It predates the graph's reverse indexes: new call sites should
// prefer relations.Graph.GetReferencesTo, which answers the same question
// without a workspace-wide sweep.
package refs

import (
	"symbase/internal/relations"
	"symbase/internal/symbols"
)

// oneToManyKinds are the relationship kinds collected from the one-to-many
// shape, in the order they were historically reported.
var oneToManyKinds = []string{
	relations.KindSpecialization,
	relations.KindRedefinition,
	relations.KindSubsetting,
	relations.KindReferenceSubsetting,
}

// Collector performs a one-shot pass over a populated symbol table and
// relationship graph, appending each symbol's inbound references.
type Collector struct {
	table *symbols.Table
	graph *relations.Graph
}

func NewCollector(table *symbols.Table, graph *relations.Graph) *Collector {
	return &Collector{table: table, graph: graph}
}

// Collect gathers references grouped by target and applies them to the
// table. Edges without a recorded location fall back to the source symbol's
// own declaration site.
func (c *Collector) Collect() {
	byTarget := make(map[string][]symbols.Reference)

	for _, sym := range c.table.AllSymbols() {
		qname := sym.QualifiedName

		if target, loc, ok := c.graph.GetOneToOneWithLocation(relations.KindTyping, qname); ok {
			if ref, ok := c.referenceFor(sym, loc); ok {
				byTarget[target] = append(byTarget[target], ref)
			}
		}

		for _, kind := range oneToManyKinds {
			for _, tl := range c.graph.GetOneToManyWithLocations(kind, qname) {
				if ref, ok := c.referenceFor(sym, tl.Location); ok {
					byTarget[tl.Target] = append(byTarget[tl.Target], ref)
				}
			}
		}
	}

	c.collectImportReferences(byTarget)

	for target, refList := range byTarget {
		if sym := c.table.FindByQualifiedName(target); sym != nil {
			c.table.AddReferencesToSymbol(sym.QualifiedName, refList)
		}
	}
}

// referenceFor builds a reference from an edge location, falling back to the
// source symbol's declaration span when the edge carries none.
func (c *Collector) referenceFor(source *symbols.Symbol, loc *relations.RefLocation) (symbols.Reference, bool) {
	if loc != nil {
		return symbols.Reference{File: loc.File, Span: loc.Span}, true
	}
	if source.SourceFile != "" && source.Span != nil {
		return symbols.Reference{File: source.SourceFile, Span: *source.Span}, true
	}
	return symbols.Reference{}, false
}

// collectImportReferences adds a reference for every non-wildcard import
// statement that targets a known symbol.
func (c *Collector) collectImportReferences(byTarget map[string][]symbols.Reference) {
	for scopeID := 0; scopeID < c.table.ScopeCount(); scopeID++ {
		for _, imp := range c.table.GetScopeImports(scopeID) {
			if imp.IsNamespace || imp.Span == nil || imp.File == "" {
				continue
			}
			target := c.table.FindByQualifiedName(imp.Path)
			if target == nil {
				continue
			}
			byTarget[target.QualifiedName] = append(byTarget[target.QualifiedName],
				symbols.Reference{File: imp.File, Span: *imp.Span})
		}
	}
}
