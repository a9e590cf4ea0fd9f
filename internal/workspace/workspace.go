// Package workspace coordinates the semantic model of a multi-file project:
// it owns the symbol table, relationship graph, file-level dependency graph
// and parsed file contents, and drives incremental re-population as files
// change. All mutation is single-threaded; callers serialize access.
package workspace

import (
	"sort"
	"strings"

	"symbase/internal/observability"
	"symbase/internal/relations"
	"symbase/internal/symbols"
	"symbase/internal/syntax"
)

// Extractor walks one parsed file and emits symbols and relationship edges
// into the shared tables. Implementations are language-specific and live
// outside this package; they borrow the tables only for the duration of the
// call.
type Extractor interface {
	Extract(file *syntax.File, table *symbols.Table, graph *relations.Graph) error
}

type Workspace struct {
	files       map[string]*File
	fileImports map[string][]syntax.ImportDecl

	table *symbols.Table
	graph *relations.Graph
	deps  *DependencyGraph

	extractor Extractor
	handlers  []Handler
}

func New(extractor Extractor) *Workspace {
	return &Workspace{
		files:       make(map[string]*File),
		fileImports: make(map[string][]syntax.ImportDecl),
		table:       symbols.NewTable(),
		graph:       relations.NewGraph(),
		deps:        NewDependencyGraph(),
		extractor:   extractor,
	}
}

// ---------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------

func (ws *Workspace) Table() *symbols.Table {
	return ws.table
}

func (ws *Workspace) Graph() *relations.Graph {
	return ws.graph
}

func (ws *Workspace) Dependencies() *DependencyGraph {
	return ws.deps
}

func (ws *Workspace) GetFile(path string) (*File, bool) {
	f, ok := ws.files[path]
	return f, ok
}

func (ws *Workspace) FileCount() int {
	return len(ws.files)
}

// FilePaths returns every tracked path in sorted order.
func (ws *Workspace) FilePaths() []string {
	paths := make([]string, 0, len(ws.files))
	for path := range ws.files {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// FileImports returns the import declarations extracted from a file.
func (ws *Workspace) FileImports(path string) []syntax.ImportDecl {
	return ws.fileImports[path]
}

// ---------------------------------------------------------------
// File lifecycle
// ---------------------------------------------------------------

// AddFile registers a parsed file and its dependency edges, then publishes
// FileAdded.
func (ws *Workspace) AddFile(path string, content *syntax.File) {
	imports := content.ExtractImports()
	ws.fileImports[path] = imports
	ws.files[path] = NewFile(path, content)
	ws.refreshDependencies(path, content, imports)
	observability.WorkspaceFilesTotal.Set(float64(len(ws.files)))

	ws.publish(Event{Kind: FileAdded, Path: path})
}

// UpdateFile replaces a file's content. Returns false when the path is not
// tracked. FileUpdated is published before anything changes so subscribers
// (the auto-invalidation handler in particular) can still query the old
// dependency edges.
func (ws *Workspace) UpdateFile(path string, content *syntax.File) bool {
	file, ok := ws.files[path]
	if !ok {
		return false
	}

	ws.publish(Event{Kind: FileUpdated, Path: path})

	ws.deps.RemoveFile(path)
	imports := content.ExtractImports()
	ws.fileImports[path] = imports
	file.updateContent(content)
	ws.refreshDependencies(path, content, imports)
	return true
}

// RemoveFile drops a file from the workspace and publishes FileRemoved.
// The file's symbols and edges are cleared immediately.
func (ws *Workspace) RemoveFile(path string) bool {
	if _, ok := ws.files[path]; !ok {
		return false
	}

	for _, qname := range ws.table.QualifiedNamesForFile(path) {
		ws.graph.RemoveForSource(qname)
	}
	ws.graph.RemoveForFile(path)
	ws.table.RemoveReferencesFromFile(path)
	ws.table.RemoveImportsFromFile(path)
	ws.table.RemoveSymbolsFromFile(path)

	delete(ws.files, path)
	delete(ws.fileImports, path)
	ws.deps.RemoveFile(path)
	observability.WorkspaceFilesTotal.Set(float64(len(ws.files)))

	// Dependents still hold edges to the removed path; invalidate them so
	// their resolution reflects the loss.
	for _, dep := range ws.deps.AllAffected(path) {
		ws.markUnpopulated(dep)
	}

	ws.publish(Event{Kind: FileRemoved, Path: path})
	return true
}

func (ws *Workspace) markUnpopulated(path string) {
	if f, ok := ws.files[path]; ok {
		f.setPopulated(false)
	}
}

func (ws *Workspace) markPopulated(path string) {
	if f, ok := ws.files[path]; ok {
		f.setPopulated(true)
	}
}

// ---------------------------------------------------------------
// Dependency edges
// ---------------------------------------------------------------

// refreshDependencies rebuilds the edges touching path: outgoing edges from
// its imports, and inbound edges from files whose imports reach names this
// file declares.
func (ws *Workspace) refreshDependencies(path string, content *syntax.File, imports []syntax.ImportDecl) {
	for _, imp := range imports {
		for provider := range ws.files {
			if provider == path {
				continue
			}
			if fileDeclares(ws.files[provider].Content(), importRoot(imp.Path)) {
				ws.deps.AddDependency(path, provider)
			}
		}
	}

	declared := topLevelNames(content)
	for other, otherImports := range ws.fileImports {
		if other == path {
			continue
		}
		for _, imp := range otherImports {
			if declared[importRoot(imp.Path)] {
				ws.deps.AddDependency(other, path)
			}
		}
	}
}

// importRoot extracts the leading namespace segment of an import path.
func importRoot(path string) string {
	if idx := strings.Index(path, "::"); idx >= 0 {
		return path[:idx]
	}
	return path
}

func fileDeclares(f *syntax.File, name string) bool {
	if name == "" || name == "*" {
		return false
	}
	return topLevelNames(f)[name]
}

// topLevelNames collects the names a file contributes to the root scope.
func topLevelNames(f *syntax.File) map[string]bool {
	names := make(map[string]bool)
	if f.Namespace != "" {
		names[f.Namespace] = true
	}
	for i := range f.Elements {
		e := &f.Elements[i]
		if e.Kind == syntax.ElemImport || e.Kind == syntax.ElemComment || e.Name == "" {
			continue
		}
		names[e.Name] = true
	}
	return names
}
