package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"symbase/internal/lang/sysml"
	"symbase/internal/syntax"
	"symbase/internal/workspace"
)

// failingParser rejects files whose content starts with "!".
type failingParser struct{}

func (failingParser) Parse(path string, src []byte) (*syntax.File, error) {
	if len(src) > 0 && src[0] == '!' {
		return nil, fmt.Errorf("parse error in %s", path)
	}
	return &syntax.File{}, nil
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func newLoader(t *testing.T, ws *workspace.Workspace, parser FileParser) *Loader {
	t.Helper()
	l, err := New(ws, parser, []string{".sysml"}, []string{"build"}, []string{"*_skip.sysml"})
	require.NoError(t, err)
	return l
}

func TestLoadRootsWalksAndFilters(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.sysml", "part def A;\n")
	writeFile(t, dir, "sub/b.sysml", "part def B;\n")
	writeFile(t, dir, "notes.txt", "ignored")
	writeFile(t, dir, "c_skip.sysml", "part def C;\n")
	writeFile(t, dir, "build/d.sysml", "part def D;\n")

	ws := workspace.New(sysml.New())
	l := newLoader(t, ws, sysml.NewParser())

	loaded, err := l.LoadRoots([]string{dir})
	require.NoError(t, err)
	assert.Equal(t, 2, loaded)
	assert.Equal(t, 2, ws.FileCount())

	_, ok := ws.GetFile(filepath.Join(dir, "a.sysml"))
	assert.True(t, ok)
	_, ok = ws.GetFile(filepath.Join(dir, "sub", "b.sysml"))
	assert.True(t, ok)
}

func TestLoadRootsSkipsUnparsableFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "good.sysml", "ok")
	writeFile(t, dir, "bad.sysml", "!broken")

	ws := workspace.New(sysml.New())
	l := newLoader(t, ws, failingParser{})

	loaded, err := l.LoadRoots([]string{dir})
	require.NoError(t, err)
	assert.Equal(t, 1, loaded)
	assert.Equal(t, 1, ws.FileCount())
}

func TestLoadFileUpdatesExisting(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.sysml", "part def A;\n")

	ws := workspace.New(sysml.New())
	l := newLoader(t, ws, sysml.NewParser())

	require.NoError(t, l.LoadFile(path))
	file, ok := ws.GetFile(path)
	require.True(t, ok)
	v := file.Version()

	require.NoError(t, l.LoadFile(path))
	assert.Equal(t, v+1, file.Version())
	assert.Equal(t, 1, ws.FileCount())
}

func TestLoadFileRemovesDeleted(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.sysml", "part def A;\n")

	ws := workspace.New(sysml.New())
	l := newLoader(t, ws, sysml.NewParser())

	require.NoError(t, l.LoadFile(path))
	require.Equal(t, 1, ws.FileCount())

	require.NoError(t, os.Remove(path))
	require.NoError(t, l.LoadFile(path))
	assert.Equal(t, 0, ws.FileCount())
}

func TestMatches(t *testing.T) {
	ws := workspace.New(sysml.New())
	l := newLoader(t, ws, sysml.NewParser())

	assert.True(t, l.Matches("models/a.sysml"))
	assert.True(t, l.Matches("models/A.SYSML"))
	assert.False(t, l.Matches("models/a.txt"))
	assert.False(t, l.Matches("models/a_skip.sysml"))
}

func TestNewRejectsBadGlobs(t *testing.T) {
	ws := workspace.New(sysml.New())
	_, err := New(ws, sysml.NewParser(), []string{".sysml"}, []string{"["}, nil)
	assert.Error(t, err)
}
