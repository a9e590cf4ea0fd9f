package resolver

import (
	"strings"

	"symbase/internal/symbols"
)

// maxAliasDepth bounds alias indirection. A chain of mutually aliasing
// symbols otherwise never terminates; past the bound the lookup is treated
// as a miss.
const maxAliasDepth = 16

// Resolver implements name resolution over a borrowed symbol table. It is
// stateless: all mutable state lives in the table, and a Resolver must not
// outlive the population run it was created for.
type Resolver struct {
	table *symbols.Table
}

func New(table *symbols.Table) *Resolver {
	return &Resolver{table: table}
}

func (r *Resolver) Table() *symbols.Table {
	return r.table
}

// Resolve resolves a qualified or simple name from the table's current
// scope. Returns nil on a miss; a miss is an expected outcome (typo, absent
// symbol, forward reference not yet populated), not an error.
func (r *Resolver) Resolve(name string) *symbols.Symbol {
	if sym := r.ResolveQualified(name); sym != nil {
		return r.resolveAlias(sym, 0)
	}
	return r.walkScopeChain(name, r.table.CurrentScopeID())
}

// ResolveInScope resolves a name relative to a specific scope. Handles
// relative qualified names like "Inner::Type": the head segment is resolved
// through the scope chain, then the remainder is appended to the head's
// qualified name and re-resolved as fully qualified.
func (r *Resolver) ResolveInScope(name string, scopeID int) *symbols.Symbol {
	if sym := r.ResolveQualified(name); sym != nil {
		return r.resolveAlias(sym, 0)
	}

	if idx := strings.Index(name, "::"); idx >= 0 {
		head := name[:idx]
		rest := name[idx+2:]
		if headSym := r.walkScopeChain(head, scopeID); headSym != nil {
			qualified := headSym.QualifiedName + "::" + rest
			if sym := r.ResolveQualified(qualified); sym != nil {
				return r.resolveAlias(sym, 0)
			}
		}
	}

	return r.walkScopeChain(name, scopeID)
}

// ResolveQualified resolves a fully qualified name through the global index,
// without alias indirection.
func (r *Resolver) ResolveQualified(qualified string) *symbols.Symbol {
	return r.table.FindByQualifiedName(qualified)
}

// ResolveFromScopeDirect walks the scope chain without consulting imports.
func (r *Resolver) ResolveFromScopeDirect(name string, scopeID int) *symbols.Symbol {
	for id := scopeID; ; {
		if sym := r.table.SymbolInScope(id, name); sym != nil {
			return sym
		}
		parent, ok := r.table.ScopeParent(id)
		if !ok {
			return nil
		}
		id = parent
	}
}

// walkScopeChain looks for a symbol from innermost to outermost scope. At
// each level a direct declaration wins over anything reachable through that
// scope's imports, regardless of declaration order in the file.
func (r *Resolver) walkScopeChain(name string, scopeID int) *symbols.Symbol {
	for id := scopeID; ; {
		if sym := r.table.SymbolInScope(id, name); sym != nil {
			return r.resolveAlias(sym, 0)
		}
		if sym := r.resolveViaImports(name, id); sym != nil {
			return r.resolveAlias(sym, 0)
		}
		parent, ok := r.table.ScopeParent(id)
		if !ok {
			return nil
		}
		id = parent
	}
}

// resolveAlias follows alias targets up to maxAliasDepth hops. Non-alias
// symbols pass through unchanged.
func (r *Resolver) resolveAlias(sym *symbols.Symbol, depth int) *symbols.Symbol {
	if sym == nil || !sym.IsAlias() {
		return sym
	}
	if depth >= maxAliasDepth {
		return nil
	}
	target := r.table.FindByQualifiedName(sym.AliasTarget)
	if target == nil {
		return nil
	}
	return r.resolveAlias(target, depth+1)
}
