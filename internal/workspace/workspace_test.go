package workspace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"symbase/internal/lang/sysml"
	"symbase/internal/syntax"
)

func parseSource(t *testing.T, path, src string) *syntax.File {
	t.Helper()
	file, err := sysml.NewParser().Parse(path, []byte(src))
	require.NoError(t, err)
	return file
}

func newTestWorkspace() *Workspace {
	ws := New(sysml.New())
	ws.EnableAutoInvalidation()
	return ws
}

const baseSource = `
package Base {
    part def Vehicle;
}
`

const midSource = `
package Mid {
    import Base::Vehicle;
    part def Car specializes Vehicle;
}
`

const topSource = `
package Top {
    import Mid::Car;
    part myCar : Car;
}
`

func addScenario(t *testing.T, ws *Workspace) {
	t.Helper()
	ws.AddFile("base.sysml", parseSource(t, "base.sysml", baseSource))
	ws.AddFile("mid.sysml", parseSource(t, "mid.sysml", midSource))
	ws.AddFile("top.sysml", parseSource(t, "top.sysml", topSource))
}

func TestAddFileTracksImportsAndDependencies(t *testing.T) {
	ws := newTestWorkspace()
	addScenario(t, ws)

	assert.Equal(t, 3, ws.FileCount())
	assert.Equal(t, []string{"base.sysml", "mid.sysml", "top.sysml"}, ws.FilePaths())

	imports := ws.FileImports("mid.sysml")
	require.Len(t, imports, 1)
	assert.Equal(t, "Base::Vehicle", imports[0].Path)

	assert.Equal(t, []string{"base.sysml"}, ws.Dependencies().DependsOn("mid.sysml"))
	assert.Equal(t, []string{"mid.sysml"}, ws.Dependencies().DependsOn("top.sysml"))
	assert.Equal(t, []string{"mid.sysml", "top.sysml"}, ws.Dependencies().AllAffected("base.sysml"))
}

func TestAddFileOrderIndependentDependencies(t *testing.T) {
	// Adding the importer before the provider must still produce the edge.
	ws := newTestWorkspace()
	ws.AddFile("mid.sysml", parseSource(t, "mid.sysml", midSource))
	ws.AddFile("base.sysml", parseSource(t, "base.sysml", baseSource))

	assert.Equal(t, []string{"base.sysml"}, ws.Dependencies().DependsOn("mid.sysml"))
}

func TestUpdateFileUnknownPath(t *testing.T) {
	ws := newTestWorkspace()
	assert.False(t, ws.UpdateFile("ghost.sysml", parseSource(t, "ghost.sysml", baseSource)))
}

func TestUpdateFileBumpsVersion(t *testing.T) {
	ws := newTestWorkspace()
	ws.AddFile("base.sysml", parseSource(t, "base.sysml", baseSource))

	file, ok := ws.GetFile("base.sysml")
	require.True(t, ok)
	v := file.Version()

	require.True(t, ws.UpdateFile("base.sysml", parseSource(t, "base.sysml", baseSource)))
	assert.Equal(t, v+1, file.Version())
	assert.False(t, file.IsPopulated())
}

func TestFileUpdatedPublishedBeforeContentApplied(t *testing.T) {
	ws := New(sysml.New())

	var sawOldContent bool
	var sawOldDeps bool
	ws.Subscribe(func(w *Workspace, ev Event) {
		if ev.Kind != FileUpdated {
			return
		}
		// At event time the old parse tree and old dependency edges must
		// still be observable.
		file, _ := w.GetFile(ev.Path)
		sawOldContent = file.Version() == 0
		deps := w.Dependencies().DependsOn("mid.sysml")
		sawOldDeps = len(deps) == 1 && deps[0] == "base.sysml"
	})

	ws.AddFile("base.sysml", parseSource(t, "base.sysml", baseSource))
	ws.AddFile("mid.sysml", parseSource(t, "mid.sysml", midSource))

	emptied := parseSource(t, "mid.sysml", "package Mid {\n}\n")
	require.True(t, ws.UpdateFile("mid.sysml", emptied))

	assert.True(t, sawOldContent)
	assert.True(t, sawOldDeps)
	// After the update the old import edge is gone.
	assert.Empty(t, ws.Dependencies().DependsOn("mid.sysml"))
}

func TestAutoInvalidationMarksDependents(t *testing.T) {
	ws := newTestWorkspace()
	addScenario(t, ws)

	_, err := ws.PopulateAll(t.Context())
	require.NoError(t, err)

	for _, path := range ws.FilePaths() {
		file, _ := ws.GetFile(path)
		require.True(t, file.IsPopulated(), path)
	}

	require.True(t, ws.UpdateFile("base.sysml", parseSource(t, "base.sysml", baseSource)))

	for _, path := range ws.FilePaths() {
		file, _ := ws.GetFile(path)
		assert.False(t, file.IsPopulated(), path)
	}
}

func TestRemoveFileClearsEverything(t *testing.T) {
	ws := newTestWorkspace()
	addScenario(t, ws)
	_, err := ws.PopulateAll(t.Context())
	require.NoError(t, err)

	require.True(t, ws.RemoveFile("base.sysml"))
	assert.False(t, ws.RemoveFile("base.sysml"))

	assert.Equal(t, 2, ws.FileCount())
	assert.Nil(t, ws.Table().FindByQualifiedName("Base"))
	assert.Nil(t, ws.Table().FindByQualifiedName("Base::Vehicle"))
	assert.Empty(t, ws.Table().SymbolsForFile("base.sysml"))
	assert.Empty(t, ws.Table().FileImports("base.sysml"))

	// Dependents are marked stale so the next incremental run re-resolves
	// them against the reduced model.
	mid, _ := ws.GetFile("mid.sysml")
	assert.False(t, mid.IsPopulated())
}

func TestRemoveFilePublishesEvent(t *testing.T) {
	ws := newTestWorkspace()
	ws.AddFile("base.sysml", parseSource(t, "base.sysml", baseSource))

	var events []Event
	ws.Subscribe(func(_ *Workspace, ev Event) {
		events = append(events, ev)
	})

	ws.RemoveFile("base.sysml")
	require.Len(t, events, 1)
	assert.Equal(t, FileRemoved, events[0].Kind)
	assert.Equal(t, "base.sysml", events[0].Path)
}
