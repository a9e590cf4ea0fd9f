package symbols

import "symbase/internal/syntax"

// Import is an import declaration registered in a scope.
type Import struct {
	Path string
	// IsRecursive marks "Pkg::**" imports that reach transitive members.
	IsRecursive bool
	// IsNamespace marks wildcard imports ("Pkg::*" or "Pkg::**").
	IsNamespace bool
	Span        *syntax.Span
	// File is the source file the import statement appears in.
	File string
}

// Scope is a node in the lexical scope tree. Scope ids are stable handles:
// scopes are created during population and never deleted, only their
// symbol/import contents change when files are reprocessed.
type Scope struct {
	ID       int
	Parent   int // -1 for the root scope
	Symbols  map[string]*Symbol
	Children []int
	Imports  []Import
}

func newScope(id, parent int) *Scope {
	return &Scope{
		ID:      id,
		Parent:  parent,
		Symbols: make(map[string]*Symbol),
	}
}
