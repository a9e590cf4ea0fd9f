// Package sysml adapts parsed SysML/KerML-style trees into the shared
// symbol table and relationship graph. It is the language-specific half of
// population: the workspace clears a file's old data and hands the tree
// here.
package sysml

import (
	goerrors "errors"
	"strings"

	"symbase/internal/core/errors"
	"symbase/internal/relations"
	"symbase/internal/symbols"
	"symbase/internal/syntax"
)

// classifierSubKinds are KerML classifier flavors; everything else parsed as
// a definition stays a definition.
var classifierSubKinds = map[string]bool{
	"classifier": true,
	"class":      true,
	"datatype":   true,
	"struct":     true,
}

type Extractor struct{}

func New() *Extractor {
	return &Extractor{}
}

// walker carries the per-file extraction state: the namespace stack that
// builds qualified names, and the recoverable errors collected along the
// way.
type walker struct {
	table     *symbols.Table
	graph     *relations.Graph
	namespace []string
	errs      []error
}

// Extract walks the tree and inserts symbols and relationship edges.
// Duplicate definitions and similar structural problems are collected and
// returned as one joined error; extraction continues past them so the valid
// part of the file still populates.
func (e *Extractor) Extract(file *syntax.File, table *symbols.Table, graph *relations.Graph) error {
	w := &walker{table: table, graph: graph}

	if file.Namespace != "" {
		w.insertSymbol(&symbols.Symbol{
			Name:          file.Namespace,
			QualifiedName: w.qualifiedName(file.Namespace),
			Kind:          symbols.KindPackage,
			SubKind:       "namespace",
		})
		w.enterNamespace(file.Namespace)
		defer w.exitNamespace()
	}

	for i := range file.Elements {
		w.visit(&file.Elements[i], false)
	}

	if len(w.errs) > 0 {
		return goerrors.Join(w.errs...)
	}
	return nil
}

func (w *walker) visit(e *syntax.Element, insideType bool) {
	switch e.Kind {
	case syntax.ElemPackage:
		w.visitPackage(e)
	case syntax.ElemDefinition:
		w.visitDefinition(e, insideType)
	case syntax.ElemUsage:
		w.visitUsage(e, insideType)
	case syntax.ElemAlias:
		w.visitAlias(e)
	case syntax.ElemImport:
		w.table.AddImport(e.ImportPath, e.IsRecursive, e.Span)
	case syntax.ElemComment:
		// Comments carry no symbols.
	}
}

func (w *walker) visitPackage(e *syntax.Element) {
	if e.Name == "" {
		// Anonymous packages contribute no scope of their own.
		for i := range e.Children {
			w.visit(&e.Children[i], false)
		}
		return
	}

	w.insertSymbol(&symbols.Symbol{
		Name:          e.Name,
		QualifiedName: w.qualifiedName(e.Name),
		Kind:          symbols.KindPackage,
		SubKind:       e.SubKind,
		Span:          e.Span,
	})
	w.enterNamespace(e.Name)
	for i := range e.Children {
		w.visit(&e.Children[i], false)
	}
	w.exitNamespace()
}

func (w *walker) visitDefinition(e *syntax.Element, insideType bool) {
	if e.Name == "" {
		return
	}
	qualified := w.qualifiedName(e.Name)

	kind := symbols.KindDefinition
	if classifierSubKinds[strings.ToLower(e.SubKind)] {
		kind = symbols.KindClassifier
	}
	if insideType {
		kind = symbols.KindFeature
	}

	w.insertSymbol(&symbols.Symbol{
		Name:          e.Name,
		QualifiedName: qualified,
		Kind:          kind,
		SubKind:       e.SubKind,
		Span:          e.Span,
	})

	loc := w.location(e)
	for _, target := range e.Specializes {
		w.graph.AddOneToMany(relations.KindSpecialization, qualified, target, loc)
	}

	w.visitMembers(e)
}

func (w *walker) visitUsage(e *syntax.Element, insideType bool) {
	if e.Name == "" {
		return
	}
	qualified := w.qualifiedName(e.Name)

	kind := symbols.KindUsage
	if insideType {
		kind = symbols.KindFeature
	}

	w.insertSymbol(&symbols.Symbol{
		Name:          e.Name,
		QualifiedName: qualified,
		Kind:          kind,
		SubKind:       e.SubKind,
		Span:          e.Span,
	})

	loc := w.location(e)
	if e.TypedBy != "" {
		w.graph.AddOneToOne(relations.KindTyping, qualified, e.TypedBy, loc)
	}
	for _, target := range e.Redefines {
		w.graph.AddOneToMany(relations.KindRedefinition, qualified, target, loc)
	}
	for _, target := range e.Subsets {
		w.graph.AddOneToMany(relations.KindSubsetting, qualified, target, loc)
	}
	for _, target := range e.References {
		w.graph.AddOneToMany(relations.KindReferenceSubsetting, qualified, target, loc)
	}
	for _, target := range e.Crosses {
		w.graph.AddOneToMany(relations.KindCrossSubsetting, qualified, target, loc)
	}

	w.visitMembers(e)
}

// visitMembers descends into the body of a definition or usage. Nested
// members become features of the enclosing type.
func (w *walker) visitMembers(e *syntax.Element) {
	if len(e.Children) == 0 {
		return
	}
	w.enterNamespace(e.Name)
	for i := range e.Children {
		w.visit(&e.Children[i], true)
	}
	w.exitNamespace()
}

func (w *walker) visitAlias(e *syntax.Element) {
	if e.Name == "" || e.AliasTarget == "" {
		return
	}
	w.insertSymbol(&symbols.Symbol{
		Name:          e.Name,
		QualifiedName: w.qualifiedName(e.Name),
		Kind:          symbols.KindAlias,
		SubKind:       e.SubKind,
		Span:          e.Span,
		AliasTarget:   e.AliasTarget,
	})
}

func (w *walker) insertSymbol(sym *symbols.Symbol) {
	if err := w.table.Insert(w.table.CurrentScopeID(), sym); err != nil {
		w.errs = append(w.errs, errors.AddContext(err, errors.CtxSymbol, sym.QualifiedName))
	}
}

func (w *walker) qualifiedName(name string) string {
	if len(w.namespace) == 0 {
		return name
	}
	return strings.Join(w.namespace, "::") + "::" + name
}

func (w *walker) enterNamespace(name string) {
	w.namespace = append(w.namespace, name)
	w.table.EnterScope()
}

func (w *walker) exitNamespace() {
	w.namespace = w.namespace[:len(w.namespace)-1]
	w.table.ExitScope()
}

func (w *walker) location(e *syntax.Element) *relations.RefLocation {
	span := e.RelationSpan
	if span == nil {
		span = e.Span
	}
	if span == nil || w.table.CurrentFile() == "" {
		return nil
	}
	return &relations.RefLocation{File: w.table.CurrentFile(), Span: *span}
}
