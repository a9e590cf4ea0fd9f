package resolver

import (
	"strings"

	"symbase/internal/symbols"
)

// ParseImportPath splits an import path into its segments.
func ParseImportPath(path string) []string {
	return strings.Split(path, "::")
}

// IsWildcardImport reports whether a path is a wildcard import ("*",
// "Pkg::*" or "Pkg::**").
func IsWildcardImport(path string) bool {
	return path == "*" || strings.HasSuffix(path, "::*") || strings.HasSuffix(path, "::**")
}

// ResolveImport expands an import path to the qualified names it brings into
// scope. A non-wildcard path resolves to itself when the symbol exists, an
// unresolvable path to nothing.
func (r *Resolver) ResolveImport(path string) []string {
	if IsWildcardImport(path) {
		return r.ResolveWildcardImport(path)
	}
	if r.ResolveQualified(path) != nil {
		return []string{path}
	}
	return nil
}

// ResolveWildcardImport expands a wildcard import. "*" alone yields every
// top-level qualified name; "Prefix::*" yields direct children of the prefix
// only, never transitive descendants.
func (r *Resolver) ResolveWildcardImport(path string) []string {
	var out []string

	if path == "*" {
		for _, sym := range r.table.AllSymbols() {
			if !strings.Contains(sym.QualifiedName, "::") {
				out = append(out, sym.QualifiedName)
			}
		}
		return out
	}

	prefix := strings.TrimSuffix(strings.TrimSuffix(path, "::**"), "::*")
	for _, sym := range r.table.AllSymbols() {
		remainder, ok := strings.CutPrefix(sym.QualifiedName, prefix+"::")
		if !ok {
			continue
		}
		if !strings.Contains(remainder, "::") {
			out = append(out, sym.QualifiedName)
		}
	}
	return out
}

// resolveViaImports checks each import declared in a scope to see whether it
// brings `name` into that scope.
func (r *Resolver) resolveViaImports(name string, scopeID int) *symbols.Symbol {
	for _, imp := range r.table.GetScopeImports(scopeID) {
		var sym *symbols.Symbol
		if imp.IsNamespace {
			sym = r.tryWildcardImport(name, imp.Path, imp.IsRecursive)
		} else {
			sym = r.tryDirectImport(name, imp.Path)
		}
		if sym != nil {
			return sym
		}
	}
	return nil
}

// tryWildcardImport checks whether "Pkg::*" (or "Pkg::**") provides name.
func (r *Resolver) tryWildcardImport(name, importPath string, isRecursive bool) *symbols.Symbol {
	namespace := strings.TrimSuffix(strings.TrimSuffix(importPath, "::**"), "::*")
	if sym := r.ResolveQualified(namespace + "::" + name); sym != nil {
		return sym
	}
	if isRecursive {
		return r.searchNestedNamespaces(name, namespace)
	}
	return nil
}

// tryDirectImport checks whether "Pkg::Member" provides name.
func (r *Resolver) tryDirectImport(name, importPath string) *symbols.Symbol {
	if importPath == name || strings.HasSuffix(importPath, "::"+name) {
		return r.ResolveQualified(importPath)
	}
	return nil
}

// searchNestedNamespaces finds a symbol named `name` anywhere below
// `namespace`, for recursive imports.
func (r *Resolver) searchNestedNamespaces(name, namespace string) *symbols.Symbol {
	prefix := namespace + "::"
	suffix := "::" + name
	for _, sym := range r.table.AllSymbols() {
		qname := sym.QualifiedName
		if strings.HasPrefix(qname, prefix) && strings.HasSuffix(qname, suffix) {
			return sym
		}
	}
	return nil
}
