package relations

// TargetLocation is one recorded target with its optional source location.
type TargetLocation struct {
	Target   string
	Location *RefLocation
}

// SourceLocation is one referencing source with its optional location.
type SourceLocation struct {
	Source   string
	Location *RefLocation
}

// OneToManyGraph holds relations with multiple simultaneous targets, e.g.
// specialization and subsetting. Target order is insertion order, which is
// source-declaration order, and is significant for deterministic output.
type OneToManyGraph struct {
	relationships map[string][]TargetLocation
	reverse       map[string][]sourceRef
	sourcesByFile map[string][]string
}

func NewOneToManyGraph() *OneToManyGraph {
	return &OneToManyGraph{
		relationships: make(map[string][]TargetLocation),
		reverse:       make(map[string][]sourceRef),
		sourcesByFile: make(map[string][]string),
	}
}

func (g *OneToManyGraph) Add(source, target string, loc *RefLocation) {
	g.relationships[source] = append(g.relationships[source], TargetLocation{Target: target, Location: loc})
	g.reverse[target] = append(g.reverse[target], sourceRef{source: source, location: loc})
	if loc != nil {
		g.sourcesByFile[loc.File] = append(g.sourcesByFile[loc.File], source)
	}
}

// Targets returns the recorded targets for a source in declaration order.
func (g *OneToManyGraph) Targets(source string) []string {
	entries := g.relationships[source]
	if entries == nil {
		return nil
	}
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Target)
	}
	return out
}

func (g *OneToManyGraph) TargetsWithLocations(source string) []TargetLocation {
	return g.relationships[source]
}

func (g *OneToManyGraph) Sources(target string) []string {
	refs := g.reverse[target]
	out := make([]string, 0, len(refs))
	for _, r := range refs {
		out = append(out, r.source)
	}
	return out
}

func (g *OneToManyGraph) SourcesWithLocations(target string) []SourceLocation {
	refs := g.reverse[target]
	out := make([]SourceLocation, 0, len(refs))
	for _, r := range refs {
		out = append(out, SourceLocation{Source: r.source, Location: r.location})
	}
	return out
}

// HasPath reports whether target is transitively reachable from source.
func (g *OneToManyGraph) HasPath(from, to string) bool {
	if from == to {
		return true
	}
	visited := make(map[string]bool)
	stack := []string{from}
	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if current == to {
			return true
		}
		if visited[current] {
			continue
		}
		visited[current] = true
		for _, e := range g.relationships[current] {
			stack = append(stack, e.Target)
		}
	}
	return false
}

// RemoveSource deletes every relationship originating at source.
func (g *OneToManyGraph) RemoveSource(source string) {
	entries, ok := g.relationships[source]
	if !ok {
		return
	}
	for _, e := range entries {
		g.dropReverse(e.Target, source)
	}
	delete(g.relationships, source)
}

// RemoveByFile deletes every relationship whose recorded location belongs to
// the given file. Edges from the same source recorded against other files
// are kept.
func (g *OneToManyGraph) RemoveByFile(file string) {
	sources, ok := g.sourcesByFile[file]
	if !ok {
		return
	}
	delete(g.sourcesByFile, file)
	seen := make(map[string]bool, len(sources))
	for _, source := range sources {
		if seen[source] {
			continue
		}
		seen[source] = true

		entries := g.relationships[source]
		kept := entries[:0]
		for _, e := range entries {
			if e.Location != nil && e.Location.File == file {
				g.dropReverse(e.Target, source)
				continue
			}
			kept = append(kept, e)
		}
		if len(kept) == 0 {
			delete(g.relationships, source)
		} else {
			g.relationships[source] = kept
		}
	}
}

// UpdateTargets rewrites each target of a source through fn; a nil result
// keeps the existing target. The reverse index is rebuilt for changed
// entries.
func (g *OneToManyGraph) UpdateTargets(source string, fn func(target string) (string, bool)) {
	entries := g.relationships[source]
	for i, e := range entries {
		newTarget, ok := fn(e.Target)
		if !ok || newTarget == e.Target {
			continue
		}
		g.dropReverse(e.Target, source)
		entries[i].Target = newTarget
		g.reverse[newTarget] = append(g.reverse[newTarget], sourceRef{source: source, location: e.Location})
	}
}

// Each calls fn for every (source, target) pair.
func (g *OneToManyGraph) Each(fn func(source, target string)) {
	for source, entries := range g.relationships {
		for _, e := range entries {
			fn(source, e.Target)
		}
	}
}

func (g *OneToManyGraph) Len() int {
	n := 0
	for _, entries := range g.relationships {
		n += len(entries)
	}
	return n
}

func (g *OneToManyGraph) dropReverse(target, source string) {
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
