package sysml

import (
	"fmt"
	"strings"

	"symbase/internal/syntax"
)

// Parser reads a simplified line-oriented textual form of the modeling
// language: brace-delimited packages, `<subkind> def Name` definitions,
// `<subkind> name : Type` usages, aliases and imports. It exists so the CLI
// and tests can feed the workspace from plain files; the full grammar
// parser is an external collaborator behind the same interface.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

var relationClauses = []string{"specializes", "redefines", "subsets", "references", "crosses"}

func (p *Parser) Parse(path string, src []byte) (*syntax.File, error) {
	file := &syntax.File{}
	root := &syntax.Element{}
	stack := []*syntax.Element{root}

	for ln, raw := range strings.Split(string(src), "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		indent := len(raw) - len(strings.TrimLeft(raw, " \t"))
		span := syntax.SpanFromCoords(ln, indent, ln, indent+len(line))

		if strings.HasPrefix(line, "//") {
			top := stack[len(stack)-1]
			top.Children = append(top.Children, syntax.Element{
				Kind: syntax.ElemComment,
				Span: &span,
				Text: strings.TrimSpace(strings.TrimPrefix(line, "//")),
			})
			continue
		}

		if line == "}" {
			if len(stack) == 1 {
				return nil, fmt.Errorf("%s:%d: unmatched closing brace", path, ln+1)
			}
			stack = stack[:len(stack)-1]
			continue
		}

		opens := strings.HasSuffix(line, "{")
		body := strings.TrimSpace(strings.TrimSuffix(strings.TrimSuffix(line, "{"), ";"))
		if body == "" {
			continue
		}

		elem, err := parseStatement(path, ln, body, &span)
		if err != nil {
			return nil, err
		}
		if elem == nil {
			continue
		}

		if elem.Kind == syntax.ElemPackage && elem.SubKind == "namespace" && len(stack) == 1 && !opens {
			file.Namespace = elem.Name
			continue
		}

		top := stack[len(stack)-1]
		top.Children = append(top.Children, *elem)
		if opens {
			stack = append(stack, &top.Children[len(top.Children)-1])
		}
	}

	if len(stack) != 1 {
		return nil, fmt.Errorf("%s: unclosed brace at end of file", path)
	}

	file.Elements = root.Children
	return file, nil
}

func parseStatement(path string, ln int, body string, span *syntax.Span) (*syntax.Element, error) {
	tokens := strings.Fields(padColons(body))
	if len(tokens) == 0 {
		return nil, nil
	}

	switch tokens[0] {
	case "public", "private":
		tokens = tokens[1:]
		if len(tokens) == 0 {
			return nil, fmt.Errorf("%s:%d: dangling visibility modifier", path, ln+1)
		}
	}

	switch tokens[0] {
	case "import":
		if len(tokens) < 2 {
			return nil, fmt.Errorf("%s:%d: import needs a path", path, ln+1)
		}
		imp := tokens[1]
		return &syntax.Element{
			Kind:        syntax.ElemImport,
			Span:        span,
			ImportPath:  imp,
			IsRecursive: strings.HasSuffix(imp, "::**"),
		}, nil
	case "alias":
		// alias Name for Target
		if len(tokens) != 4 || tokens[2] != "for" {
			return nil, fmt.Errorf("%s:%d: malformed alias", path, ln+1)
		}
		return &syntax.Element{
			Kind:        syntax.ElemAlias,
			Name:        tokens[1],
			Span:        span,
			AliasTarget: tokens[3],
		}, nil
	case "package", "namespace":
		if len(tokens) < 2 {
			return nil, fmt.Errorf("%s:%d: %s needs a name", path, ln+1, tokens[0])
		}
		return &syntax.Element{
			Kind:    syntax.ElemPackage,
			Name:    tokens[1],
			Span:    span,
			SubKind: tokens[0],
		}, nil
	}

	if idx := indexOf(tokens, "def"); idx > 0 && idx+1 < len(tokens) {
		elem := &syntax.Element{
			Kind:    syntax.ElemDefinition,
			Name:    tokens[idx+1],
			Span:    span,
			SubKind: strings.Join(tokens[:idx], " "),
		}
		parseClauses(tokens[idx+2:], elem)
		return elem, nil
	}

	if len(tokens) >= 2 {
		elem := &syntax.Element{
			Kind:    syntax.ElemUsage,
			Name:    tokens[1],
			Span:    span,
			SubKind: tokens[0],
		}
		parseClauses(tokens[2:], elem)
		return elem, nil
	}

	return nil, fmt.Errorf("%s:%d: cannot parse %q", path, ln+1, body)
}

// parseClauses consumes the relationship tail of a declaration: `: Type`
// plus comma-separated `specializes`/`redefines`/`subsets`/`references`/
// `crosses` target lists.
func parseClauses(tokens []string, elem *syntax.Element) {
	var current *[]string
	for _, tok := range tokens {
		switch {
		case tok == ":":
			current = nil
			elem.TypedBy = "" // next target fills it
			continue
		case isClauseKeyword(tok):
			switch tok {
			case "specializes":
				current = &elem.Specializes
			case "redefines":
				current = &elem.Redefines
			case "subsets":
				current = &elem.Subsets
			case "references":
				current = &elem.References
			case "crosses":
				current = &elem.Crosses
			}
			continue
		}

		target := strings.TrimSuffix(tok, ",")
		if target == "" {
			continue
		}
		if current != nil {
			*current = append(*current, target)
		} else if elem.TypedBy == "" {
			elem.TypedBy = target
		}
	}
}

func isClauseKeyword(tok string) bool {
	for _, kw := range relationClauses {
		if tok == kw {
			return true
		}
	}
	return false
}

func indexOf(tokens []string, want string) int {
	for i, tok := range tokens {
		if tok == want {
			return i
		}
	}
	return -1
}

// padColons spaces out single colons so Fields splits `x: T`, leaving
// qualified-name separators intact.
func padColons(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == ':' {
			if i+1 < len(s) && s[i+1] == ':' {
				b.WriteString("::")
				i++
				continue
			}
			b.WriteString(" : ")
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
