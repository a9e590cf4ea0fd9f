package relations

import "symbase/internal/syntax"

// RefLocation records where a relationship target is written in source.
type RefLocation struct {
	File string
	Span syntax.Span
}

type oneToOneEntry struct {
	target   string
	location *RefLocation
}

// OneToOneGraph holds relations with at most one target per source, e.g.
// feature typing. Re-adding a source overwrites its previous target.
//
// Three maps are maintained together: forward (source -> target), reverse
// (target -> sources, for find-references) and a per-file source index (for
// bulk removal when a file is re-populated).
type OneToOneGraph struct {
	relationships map[string]oneToOneEntry
	reverse       map[string][]sourceRef
	sourcesByFile map[string][]string
}

type sourceRef struct {
	source   string
	location *RefLocation
}

func NewOneToOneGraph() *OneToOneGraph {
	return &OneToOneGraph{
		relationships: make(map[string]oneToOneEntry),
		reverse:       make(map[string][]sourceRef),
		sourcesByFile: make(map[string][]string),
	}
}

func (g *OneToOneGraph) Add(source, target string, loc *RefLocation) {
	// Drop the stale reverse entry when the source is re-targeted.
	if old, ok := g.relationships[source]; ok {
		g.dropReverse(old.target, source)
	}

	g.relationships[source] = oneToOneEntry{target: target, location: loc}
	g.reverse[target] = append(g.reverse[target], sourceRef{source: source, location: loc})
	if loc != nil {
		g.sourcesByFile[loc.File] = append(g.sourcesByFile[loc.File], source)
	}
}

func (g *OneToOneGraph) Target(source string) (string, bool) {
	e, ok := g.relationships[source]
	return e.target, ok
}

func (g *OneToOneGraph) TargetWithLocation(source string) (string, *RefLocation, bool) {
	e, ok := g.relationships[source]
	return e.target, e.location, ok
}

// Sources returns every source pointing at the target.
func (g *OneToOneGraph) Sources(target string) []string {
	refs := g.reverse[target]
	out := make([]string, 0, len(refs))
	for _, r := range refs {
		out = append(out, r.source)
	}
	return out
}

// SourcesWithLocations returns every (source, location) pair pointing at the
// target, straight from the reverse index.
func (g *OneToOneGraph) SourcesWithLocations(target string) []SourceLocation {
	refs := g.reverse[target]
	out := make([]SourceLocation, 0, len(refs))
	for _, r := range refs {
		out = append(out, SourceLocation{Source: r.source, Location: r.location})
	}
	return out
}

// RemoveSource deletes the relationship originating at source.
func (g *OneToOneGraph) RemoveSource(source string) {
	e, ok := g.relationships[source]
	if !ok {
		return
	}
	g.dropReverse(e.target, source)
	delete(g.relationships, source)
}

// RemoveByFile deletes every relationship whose recorded location belongs to
// the given file.
func (g *OneToOneGraph) RemoveByFile(file string) {
	sources, ok := g.sourcesByFile[file]
	if !ok {
		return
	}
	delete(g.sourcesByFile, file)
	for _, source := range sources {
		if e, ok := g.relationships[source]; ok {
			g.dropReverse(e.target, source)
			delete(g.relationships, source)
		}
	}
}

// UpdateTarget rewrites a source's target in place, fixing the reverse
// index. Used when post-population resolution qualifies a relative name.
func (g *OneToOneGraph) UpdateTarget(source, newTarget string) {
	e, ok := g.relationships[source]
	if !ok {
		return
	}
	g.dropReverse(e.target, source)
	g.relationships[source] = oneToOneEntry{target: newTarget, location: e.location}
	g.reverse[newTarget] = append(g.reverse[newTarget], sourceRef{source: source, location: e.location})
}

// Each calls fn for every (source, target) pair.
func (g *OneToOneGraph) Each(fn func(source, target string)) {
	for source, e := range g.relationships {
		fn(source, e.target)
	}
}

func (g *OneToOneGraph) Len() int {
	return len(g.relationships)
}

func (g *OneToOneGraph) dropReverse(target, source string) {
	refs := g.reverse[target]
	kept := refs[:0]
	for _, r := range refs {
		if r.source != source {
			kept = append(kept, r)
		}
	}
	if len(kept) == 0 {
		delete(g.reverse, target)
	} else {
		g.reverse[target] = kept
	}
}
