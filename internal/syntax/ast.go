package syntax

// Parsed-file model handed to the extraction adapter. The grammar-driven
// parser that produces these trees lives outside this module; tests and the
// loader construct them through whatever parser implementation is injected.

// File is the root of one parsed source file.
type File struct {
	// Namespace is an optional top-level namespace declaration name.
	Namespace string
	Elements  []Element
}

// ElementKind discriminates the closed set of tree node kinds.
type ElementKind int

const (
	ElemPackage ElementKind = iota
	ElemDefinition
	ElemUsage
	ElemAlias
	ElemImport
	ElemComment
)

// Element is a node in the parsed tree. Fields are populated according to
// Kind; unused fields stay zero.
type Element struct {
	Kind ElementKind

	// Name is empty for anonymous definitions/usages and for imports.
	Name string
	Span *Span

	// SubKind carries the language-specific flavor, e.g. "part", "action",
	// "requirement" for definitions and usages.
	SubKind string

	// Relationship targets as written in source (may be simple or qualified
	// names; the resolver qualifies them after population).
	TypedBy      string
	Specializes  []string
	Redefines    []string
	Subsets      []string
	References   []string
	Crosses      []string
	RelationSpan *Span

	// AliasTarget is the qualified or relative path an alias points at.
	AliasTarget string

	// ImportPath and IsRecursive describe an import declaration
	// ("Pkg::Member", "Pkg::*", "Pkg::**").
	ImportPath  string
	IsRecursive bool

	// Comment body for ElemComment.
	Text string

	// Children of packages (and of definitions/usages with nested members).
	Children []Element
}

// ImportDecl is a flattened import extracted from a file, used by the
// workspace to build the file-level dependency graph.
type ImportDecl struct {
	Path        string
	IsRecursive bool
	Span        *Span
}

// ExtractImports walks the tree and returns every import declaration,
// including those nested inside packages.
func (f *File) ExtractImports() []ImportDecl {
	var out []ImportDecl
	var walk func(elems []Element)
	walk = func(elems []Element) {
		for i := range elems {
			e := &elems[i]
			if e.Kind == ElemImport {
				out = append(out, ImportDecl{
					Path:        e.ImportPath,
					IsRecursive: e.IsRecursive,
					Span:        e.Span,
				})
			}
			if len(e.Children) > 0 {
				walk(e.Children)
			}
		}
	}
	walk(f.Elements)
	return out
}
