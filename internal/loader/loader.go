// Package loader walks workspace roots on disk, parses model files and
// feeds them into the workspace. It is the bridge between the filesystem
// and the in-memory semantic model.
package loader

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gobwas/glob"

	"symbase/internal/syntax"
	"symbase/internal/workspace"
)

// FileParser turns raw file bytes into a syntax tree. The real parser lives
// outside this module; tests inject small fakes.
type FileParser interface {
	Parse(path string, src []byte) (*syntax.File, error)
}

type Loader struct {
	ws           *workspace.Workspace
	parser       FileParser
	extensions   []string
	excludeDirs  []glob.Glob
	excludeFiles []glob.Glob
}

func New(ws *workspace.Workspace, parser FileParser, extensions, excludeDirs, excludeFiles []string) (*Loader, error) {
	l := &Loader{ws: ws, parser: parser, extensions: extensions}

	for _, pattern := range excludeDirs {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, err
		}
		l.excludeDirs = append(l.excludeDirs, g)
	}
	for _, pattern := range excludeFiles {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, err
		}
		l.excludeFiles = append(l.excludeFiles, g)
	}

	return l, nil
}

// LoadRoots walks each root and loads every matching file. Unreadable or
// unparsable files are logged and skipped; the walk itself failing is the
// only hard error. Returns the number of files loaded.
func (l *Loader) LoadRoots(roots []string) (int, error) {
	loaded := 0
	for _, root := range roots {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if l.shouldExcludeDir(path) {
					return filepath.SkipDir
				}
				return nil
			}
			if !l.matches(path) {
				return nil
			}
			if err := l.LoadFile(path); err != nil {
				slog.Warn("failed to load file", "path", path, "error", err)
				return nil
			}
			loaded++
			return nil
		})
		if err != nil {
			return loaded, err
		}
	}
	return loaded, nil
}

// LoadFile parses one file and adds or updates it in the workspace. A file
// that no longer exists on disk is removed from the workspace instead; the
// watcher funnels deletions through here.
func (l *Loader) LoadFile(path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			l.ws.RemoveFile(path)
			return nil
		}
		return err
	}

	parsed, err := l.parser.Parse(path, src)
	if err != nil {
		return err
	}

	if !l.ws.UpdateFile(path, parsed) {
		l.ws.AddFile(path, parsed)
	}
	return nil
}

// Matches reports whether a path is a loadable model file.
func (l *Loader) Matches(path string) bool {
	return l.matches(path)
}

func (l *Loader) matches(path string) bool {
	if !slices.Contains(l.extensions, strings.ToLower(filepath.Ext(path))) {
		return false
	}
	return !l.shouldExcludeFile(path)
}

func (l *Loader) shouldExcludeDir(path string) bool {
	base := filepath.Base(path)
	for _, g := range l.excludeDirs {
		if g.Match(base) {
			return true
		}
	}
	return false
}

func (l *Loader) shouldExcludeFile(path string) bool {
	base := filepath.Base(path)
	for _, g := range l.excludeFiles {
		if g.Match(base) {
			return true
		}
	}
	return false
}
