package syntax

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPositionBefore(t *testing.T) {
	assert.True(t, Position{Line: 1, Column: 5}.Before(Position{Line: 2, Column: 0}))
	assert.True(t, Position{Line: 1, Column: 5}.Before(Position{Line: 1, Column: 6}))
	assert.False(t, Position{Line: 1, Column: 5}.Before(Position{Line: 1, Column: 5}))
	assert.False(t, Position{Line: 2, Column: 0}.Before(Position{Line: 1, Column: 9}))
}

func TestSpanIsValid(t *testing.T) {
	assert.True(t, SpanFromCoords(0, 0, 0, 0).IsValid())
	assert.True(t, SpanFromCoords(1, 4, 1, 10).IsValid())
	assert.True(t, SpanFromCoords(1, 4, 3, 0).IsValid())
	assert.False(t, SpanFromCoords(2, 0, 1, 9).IsValid())
	assert.False(t, SpanFromCoords(1, 8, 1, 4).IsValid())
}

func TestSpanContains(t *testing.T) {
	span := SpanFromCoords(2, 4, 2, 10)

	assert.True(t, span.Contains(Position{Line: 2, Column: 4}))
	assert.True(t, span.Contains(Position{Line: 2, Column: 7}))
	assert.True(t, span.Contains(Position{Line: 2, Column: 10}))
	assert.False(t, span.Contains(Position{Line: 2, Column: 3}))
	assert.False(t, span.Contains(Position{Line: 2, Column: 11}))
	assert.False(t, span.Contains(Position{Line: 1, Column: 7}))
}

func TestSpanContainsMultiline(t *testing.T) {
	span := SpanFromCoords(1, 8, 4, 2)

	assert.True(t, span.Contains(Position{Line: 2, Column: 0}))
	assert.True(t, span.Contains(Position{Line: 3, Column: 99}))
	assert.True(t, span.Contains(Position{Line: 4, Column: 2}))
	assert.False(t, span.Contains(Position{Line: 1, Column: 7}))
	assert.False(t, span.Contains(Position{Line: 4, Column: 3}))
}

func TestExtractImportsNested(t *testing.T) {
	span := SpanFromCoords(1, 0, 1, 20)
	file := &File{
		Elements: []Element{
			{Kind: ElemImport, ImportPath: "A::B", Span: &span},
			{Kind: ElemPackage, Name: "P", Children: []Element{
				{Kind: ElemImport, ImportPath: "C::*", IsRecursive: false},
				{Kind: ElemDefinition, Name: "D"},
			}},
		},
	}

	imports := file.ExtractImports()
	assert.Len(t, imports, 2)
	assert.Equal(t, "A::B", imports[0].Path)
	assert.Equal(t, "C::*", imports[1].Path)
}
