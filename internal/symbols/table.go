package symbols

import (
	"strings"

	"symbase/internal/core/errors"
	"symbase/internal/syntax"
)

// symbolKey addresses one symbol inside the scope tree.
type symbolKey struct {
	scopeID int
	name    string
}

// Table owns the scope tree and the global indexes. It is a pure data
// structure: resolution algorithms live in the resolver package, population
// logic in the workspace package.
//
// Two auxiliary indexes are kept in lockstep with the scope maps:
// byQualified (qualified name -> symbol location, last writer wins) and
// byFile (source file -> symbol locations, for O(symbols-in-file) removal).
type Table struct {
	scopes       []*Scope
	currentScope int
	currentFile  string

	byQualified map[string]symbolKey
	byFile      map[string][]symbolKey
}

func NewTable() *Table {
	return &Table{
		scopes:      []*Scope{newScope(0, -1)},
		byQualified: make(map[string]symbolKey),
		byFile:      make(map[string][]symbolKey),
	}
}

// ---------------------------------------------------------------
// Scope management
// ---------------------------------------------------------------

// EnterScope creates a child of the current scope and makes it current.
// Scope ids are stable for the lifetime of the table.
func (t *Table) EnterScope() int {
	parent := t.currentScope
	id := len(t.scopes)
	t.scopes = append(t.scopes, newScope(id, parent))
	t.scopes[parent].Children = append(t.scopes[parent].Children, id)
	t.currentScope = id
	return id
}

// ExitScope moves back to the parent scope. At the root it is a no-op.
func (t *Table) ExitScope() {
	if parent := t.scopes[t.currentScope].Parent; parent >= 0 {
		t.currentScope = parent
	}
}

func (t *Table) CurrentScopeID() int {
	return t.currentScope
}

// SetCurrentScope repositions the table cursor; used when re-populating a
// file whose package scopes already exist.
func (t *Table) SetCurrentScope(id int) bool {
	if id < 0 || id >= len(t.scopes) {
		return false
	}
	t.currentScope = id
	return true
}

func (t *Table) ScopeCount() int {
	return len(t.scopes)
}

func (t *Table) ScopeAt(id int) *Scope {
	if id < 0 || id >= len(t.scopes) {
		return nil
	}
	return t.scopes[id]
}

// ScopeParent returns the parent id of a scope, or false at the root.
func (t *Table) ScopeParent(id int) (int, bool) {
	s := t.ScopeAt(id)
	if s == nil || s.Parent < 0 {
		return 0, false
	}
	return s.Parent, true
}

func (t *Table) SetCurrentFile(path string) {
	t.currentFile = path
}

func (t *Table) CurrentFile() string {
	return t.currentFile
}

// ---------------------------------------------------------------
// Insertion
// ---------------------------------------------------------------

// Insert adds a symbol to the given scope and registers it in the global
// indexes. A duplicate simple name within one scope is rejected with a
// CONFLICT error; callers that re-process a file must remove its old
// symbols first or the qualified-name index silently keeps the last writer.
func (t *Table) Insert(scopeID int, sym *Symbol) error {
	scope := t.ScopeAt(scopeID)
	if scope == nil {
		return errors.Newf(errors.CodeValidationError, "scope %d does not exist", scopeID)
	}
	if _, exists := scope.Symbols[sym.Name]; exists {
		err := errors.Newf(errors.CodeConflict, "symbol %q already defined in this scope", sym.Name)
		err = errors.AddContext(err, errors.CtxSymbol, sym.QualifiedName)
		return errors.AddContext(err, errors.CtxScope, scopeID)
	}

	sym.ScopeID = scopeID
	if sym.SourceFile == "" {
		sym.SourceFile = t.currentFile
	}

	scope.Symbols[sym.Name] = sym
	key := symbolKey{scopeID: scopeID, name: sym.Name}
	t.byQualified[sym.QualifiedName] = key
	if sym.SourceFile != "" {
		t.byFile[sym.SourceFile] = append(t.byFile[sym.SourceFile], key)
	}
	return nil
}

// AddImport registers an import declaration in the current scope, stamped
// with the current file so it can be removed when that file is reprocessed.
func (t *Table) AddImport(path string, isRecursive bool, span *syntax.Span) {
	imp := Import{
		Path:        path,
		IsRecursive: isRecursive,
		IsNamespace: strings.HasSuffix(path, "::*") || strings.HasSuffix(path, "::**") || path == "*",
		Span:        span,
		File:        t.currentFile,
	}
	scope := t.scopes[t.currentScope]
	scope.Imports = append(scope.Imports, imp)
}

// ---------------------------------------------------------------
// Lookup
// ---------------------------------------------------------------

// Lookup walks the scope chain from the current scope and returns the first
// symbol with the given simple name. Mutable access for post-hoc field
// population; resolution with imports belongs to the resolver.
func (t *Table) Lookup(name string) *Symbol {
	for id := t.currentScope; id >= 0; {
		if sym, ok := t.scopes[id].Symbols[name]; ok {
			return sym
		}
		id = t.scopes[id].Parent
	}
	return nil
}

// LookupGlobal scans every scope for a symbol with the given simple name.
// Fallback for unscoped callers; first match wins in scope-id order.
func (t *Table) LookupGlobal(name string) *Symbol {
	for _, scope := range t.scopes {
		if sym, ok := scope.Symbols[name]; ok {
			return sym
		}
	}
	return nil
}

// FindByQualifiedName resolves through the global qualified-name index.
func (t *Table) FindByQualifiedName(qualified string) *Symbol {
	key, ok := t.byQualified[qualified]
	if !ok {
		return nil
	}
	scope := t.ScopeAt(key.scopeID)
	if scope == nil {
		return nil
	}
	sym := scope.Symbols[key.name]
	if sym == nil || sym.QualifiedName != qualified {
		return nil
	}
	return sym
}

// SymbolInScope returns the symbol with the given simple name declared
// directly in a scope, without walking the chain.
func (t *Table) SymbolInScope(scopeID int, name string) *Symbol {
	scope := t.ScopeAt(scopeID)
	if scope == nil {
		return nil
	}
	return scope.Symbols[name]
}

// AllSymbols returns a flattened view across all scopes. Used by wildcard
// import expansion and workspace-wide sweeps.
func (t *Table) AllSymbols() []*Symbol {
	var out []*Symbol
	for _, scope := range t.scopes {
		for _, sym := range scope.Symbols {
			out = append(out, sym)
		}
	}
	return out
}

func (t *Table) GetScopeImports(scopeID int) []Import {
	scope := t.ScopeAt(scopeID)
	if scope == nil {
		return nil
	}
	return scope.Imports
}

// ---------------------------------------------------------------
// File-based operations
// ---------------------------------------------------------------

// SymbolsForFile returns the symbols currently indexed for a file.
func (t *Table) SymbolsForFile(path string) []*Symbol {
	keys := t.byFile[path]
	out := make([]*Symbol, 0, len(keys))
	for _, key := range keys {
		scope := t.ScopeAt(key.scopeID)
		if scope == nil {
			continue
		}
		if sym, ok := scope.Symbols[key.name]; ok && sym.SourceFile == path {
			out = append(out, sym)
		}
	}
	return out
}

// QualifiedNamesForFile returns the qualified names of all symbols from a
// file. The populator collects these before clearing so it can also remove
// the file's outgoing relationship edges.
func (t *Table) QualifiedNamesForFile(path string) []string {
	syms := t.SymbolsForFile(path)
	out := make([]string, 0, len(syms))
	for _, sym := range syms {
		out = append(out, sym.QualifiedName)
	}
	return out
}

// RemoveSymbolsFromFile removes every symbol whose source file matches,
// purging the qualified-name index in lockstep so no dangling global entry
// survives. Returns the number of symbols removed.
func (t *Table) RemoveSymbolsFromFile(path string) int {
	keys := t.byFile[path]
	delete(t.byFile, path)

	removed := 0
	for _, key := range keys {
		scope := t.ScopeAt(key.scopeID)
		if scope == nil {
			continue
		}
		sym, ok := scope.Symbols[key.name]
		if !ok || sym.SourceFile != path {
			continue
		}
		delete(scope.Symbols, key.name)
		// Only drop the qualified index entry if it still points at this
		// symbol; a later writer may own the name now.
		if cur, ok := t.byQualified[sym.QualifiedName]; ok && cur == key {
			delete(t.byQualified, sym.QualifiedName)
		}
		removed++
	}
	return removed
}

// RemoveImportsFromFile removes every import declaration registered from the
// given file across all scopes. Returns the number removed.
func (t *Table) RemoveImportsFromFile(path string) int {
	removed := 0
	for _, scope := range t.scopes {
		kept := scope.Imports[:0]
		for _, imp := range scope.Imports {
			if imp.File == path {
				removed++
				continue
			}
			kept = append(kept, imp)
		}
		scope.Imports = kept
	}
	return removed
}

// RemoveReferencesFromFile strips reference entries recorded from a file off
// every symbol. Run before re-extraction so stale use sites do not linger.
func (t *Table) RemoveReferencesFromFile(path string) {
	for _, scope := range t.scopes {
		for _, sym := range scope.Symbols {
			if len(sym.References) == 0 {
				continue
			}
			kept := sym.References[:0]
			for _, ref := range sym.References {
				if ref.File == path {
					continue
				}
				kept = append(kept, ref)
			}
			sym.References = kept
		}
	}
}

// AddReferencesToSymbol appends reference locations to the symbol with the
// given qualified name, if it exists.
func (t *Table) AddReferencesToSymbol(qualified string, refs []Reference) {
	sym := t.FindByQualifiedName(qualified)
	if sym == nil {
		return
	}
	sym.References = append(sym.References, refs...)
}

// ---------------------------------------------------------------
// Import queries
// ---------------------------------------------------------------

// ImportReferencesTo returns (file, span) pairs for every non-wildcard
// import statement that targets the given qualified name. Used by rename to
// rewrite import statements.
func (t *Table) ImportReferencesTo(qualified string) []Reference {
	var refs []Reference
	for _, scope := range t.scopes {
		for _, imp := range scope.Imports {
			if imp.IsNamespace {
				continue
			}
			matches := imp.Path == qualified
			if !matches {
				if sym := t.FindByQualifiedName(imp.Path); sym != nil && sym.QualifiedName == qualified {
					matches = true
				}
			}
			if !matches {
				if sym := t.LookupGlobal(imp.Path); sym != nil && sym.QualifiedName == qualified {
					matches = true
				}
			}
			if matches && imp.Span != nil && imp.File != "" {
				refs = append(refs, Reference{File: imp.File, Span: *imp.Span})
			}
		}
	}
	return refs
}

// FileImports returns every import declared in a file, across all scopes.
func (t *Table) FileImports(path string) []Import {
	var out []Import
	for _, scope := range t.scopes {
		for _, imp := range scope.Imports {
			if imp.File == path {
				out = append(out, imp)
			}
		}
	}
	return out
}
