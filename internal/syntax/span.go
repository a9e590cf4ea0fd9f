package syntax

import "fmt"

// Position is a zero-indexed line/column location in a source file.
type Position struct {
	Line   int
	Column int
}

func NewPosition(line, column int) Position {
	return Position{Line: line, Column: column}
}

// Before reports whether p comes before other in (line, column) order.
func (p Position) Before(other Position) bool {
	if p.Line != other.Line {
		return p.Line < other.Line
	}
	return p.Column < other.Column
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Span is an inclusive source range. Used as the unit of location for
// declarations, references and import statements.
type Span struct {
	Start Position
	End   Position
}

func NewSpan(start, end Position) Span {
	return Span{Start: start, End: end}
}

// SpanFromCoords builds a span from raw line/column coordinates.
func SpanFromCoords(startLine, startCol, endLine, endCol int) Span {
	return Span{
		Start: Position{Line: startLine, Column: startCol},
		End:   Position{Line: endLine, Column: endCol},
	}
}

// IsValid reports whether the span is well-formed (start <= end).
func (s Span) IsValid() bool {
	return !s.End.Before(s.Start)
}

// Contains reports whether a position falls within the span, boundaries
// included.
func (s Span) Contains(pos Position) bool {
	if pos.Line < s.Start.Line || pos.Line > s.End.Line {
		return false
	}
	if pos.Line == s.Start.Line && pos.Column < s.Start.Column {
		return false
	}
	if pos.Line == s.End.Line && pos.Column > s.End.Column {
		return false
	}
	return true
}

func (s Span) String() string {
	return fmt.Sprintf("%s-%s", s.Start, s.End)
}
