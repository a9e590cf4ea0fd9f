package symbols

import (
	"symbase/internal/syntax"
)

// Kind is the closed set of symbol categories. Every consumer switches
// exhaustively over it; adding a kind means revisiting those switches.
type Kind int

const (
	KindPackage Kind = iota
	KindClassifier
	KindDefinition
	KindUsage
	KindFeature
	KindAlias
)

func (k Kind) String() string {
	switch k {
	case KindPackage:
		return "package"
	case KindClassifier:
		return "classifier"
	case KindDefinition:
		return "definition"
	case KindUsage:
		return "usage"
	case KindFeature:
		return "feature"
	case KindAlias:
		return "alias"
	default:
		return "unknown"
	}
}

// Reference is one location where a symbol is used.
type Reference struct {
	File string
	Span syntax.Span
}

// Symbol is a named element in the model. QualifiedName is the globally
// unique key; Name is the simple name within the owning scope.
type Symbol struct {
	Name          string
	QualifiedName string
	Kind          Kind
	// SubKind carries the language flavor ("part", "action", ...).
	SubKind string
	// Role is an optional semantic role assigned by the extraction adapter.
	Role    string
	ScopeID int
	// SourceFile is empty for synthetic symbols (e.g. built-ins).
	SourceFile string
	Span       *syntax.Span
	// AliasTarget is the qualified name an alias points at. Resolution is
	// lazy; the target may not exist yet when the alias is inserted.
	AliasTarget string

	// References is filled in by the reference collector or query-time graph
	// lookups, not during extraction.
	References []Reference
}

func (s *Symbol) IsAlias() bool {
	return s.Kind == KindAlias
}

func (s *Symbol) AddReference(ref Reference) {
	s.References = append(s.References, ref)
}
