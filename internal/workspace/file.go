package workspace

import "symbase/internal/syntax"

// File is one tracked workspace file: its path, exclusively-owned parsed
// content, a version counter bumped on every update, and the populated flag
// gating whether the populator needs to (re)process it.
type File struct {
	path      string
	content   *syntax.File
	version   int
	populated bool
}

func NewFile(path string, content *syntax.File) *File {
	return &File{path: path, content: content}
}

func (f *File) Path() string {
	return f.path
}

func (f *File) Content() *syntax.File {
	return f.content
}

// Version counts content updates; stale in-flight work can compare against
// it before applying results.
func (f *File) Version() int {
	return f.version
}

func (f *File) IsPopulated() bool {
	return f.populated
}

func (f *File) setPopulated(populated bool) {
	f.populated = populated
}

func (f *File) updateContent(content *syntax.File) {
	f.content = content
	f.version++
	f.populated = false
}
