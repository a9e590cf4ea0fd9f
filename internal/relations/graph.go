package relations

import (
	"sort"

	"symbase/internal/syntax"
)

// Reference is one inbound reference discovered through the reverse indexes:
// the qualified name of the referencing source plus where the target's name
// is written.
type Reference struct {
	Source string
	File   string
	Span   syntax.Span
}

// KindTargets groups the targets recorded for one relationship kind.
type KindTargets struct {
	Kind    string
	Label   string
	Targets []TargetLocation
}

// Graph aggregates the three relationship shapes, keyed by kind tag. Edge
// endpoints are qualified names that may or may not currently resolve to a
// live symbol; edges are not garbage-collected when a target disappears, so
// consumers null-check on resolution.
type Graph struct {
	oneToOne  map[string]*OneToOneGraph
	oneToMany map[string]*OneToManyGraph
	symmetric map[string]*SymmetricGraph
}

func NewGraph() *Graph {
	return &Graph{
		oneToOne:  make(map[string]*OneToOneGraph),
		oneToMany: make(map[string]*OneToManyGraph),
		symmetric: make(map[string]*SymmetricGraph),
	}
}

// ---------------------------------------------------------------
// Recording
// ---------------------------------------------------------------

// AddOneToOne records an edge with at most one target per (kind, source);
// re-adding overwrites the prior target.
func (g *Graph) AddOneToOne(kind, source, target string, loc *RefLocation) {
	sub, ok := g.oneToOne[kind]
	if !ok {
		sub = NewOneToOneGraph()
		g.oneToOne[kind] = sub
	}
	sub.Add(source, target, loc)
}

// AddOneToMany appends an edge; target order per source is declaration
// order.
func (g *Graph) AddOneToMany(kind, source, target string, loc *RefLocation) {
	sub, ok := g.oneToMany[kind]
	if !ok {
		sub = NewOneToManyGraph()
		g.oneToMany[kind] = sub
	}
	sub.Add(source, target, loc)
}

// AddSymmetric records a mutual relation between two elements.
func (g *Graph) AddSymmetric(kind, a, b string) {
	sub, ok := g.symmetric[kind]
	if !ok {
		sub = NewSymmetricGraph()
		g.symmetric[kind] = sub
	}
	sub.Add(a, b)
}

// ---------------------------------------------------------------
// Forward queries
// ---------------------------------------------------------------

func (g *Graph) GetOneToOne(kind, source string) (string, bool) {
	sub, ok := g.oneToOne[kind]
	if !ok {
		return "", false
	}
	return sub.Target(source)
}

func (g *Graph) GetOneToOneWithLocation(kind, source string) (string, *RefLocation, bool) {
	sub, ok := g.oneToOne[kind]
	if !ok {
		return "", nil, false
	}
	return sub.TargetWithLocation(source)
}

func (g *Graph) GetOneToMany(kind, source string) []string {
	sub, ok := g.oneToMany[kind]
	if !ok {
		return nil
	}
	return sub.Targets(source)
}

func (g *Graph) GetOneToManyWithLocations(kind, source string) []TargetLocation {
	sub, ok := g.oneToMany[kind]
	if !ok {
		return nil
	}
	return sub.TargetsWithLocations(source)
}

func (g *Graph) GetOneToManySources(kind, target string) []string {
	sub, ok := g.oneToMany[kind]
	if !ok {
		return nil
	}
	return sub.Sources(target)
}

func (g *Graph) GetSymmetric(kind, element string) []string {
	sub, ok := g.symmetric[kind]
	if !ok {
		return nil
	}
	return sub.Related(element)
}

// HasTransitivePath reports reachability through a one-to-many kind, e.g.
// "does Car transitively specialize Vehicle".
func (g *Graph) HasTransitivePath(kind, from, to string) bool {
	sub, ok := g.oneToMany[kind]
	if !ok {
		return false
	}
	return sub.HasPath(from, to)
}

// RelationshipKinds lists every kind with recorded edges, sorted.
func (g *Graph) RelationshipKinds() []string {
	seen := make(map[string]bool)
	for kind := range g.oneToMany {
		seen[kind] = true
	}
	for kind := range g.oneToOne {
		seen[kind] = true
	}
	for kind := range g.symmetric {
		seen[kind] = true
	}
	kinds := make([]string, 0, len(seen))
	for kind := range seen {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	return kinds
}

// AllRelationships aggregates every outgoing edge of an element across all
// kinds, in sorted kind order. Drives hover text and document links.
func (g *Graph) AllRelationships(element string) []KindTargets {
	var out []KindTargets
	for _, kind := range g.RelationshipKinds() {
		var targets []TargetLocation
		if sub, ok := g.oneToOne[kind]; ok {
			if target, loc, found := sub.TargetWithLocation(element); found {
				targets = append(targets, TargetLocation{Target: target, Location: loc})
			}
		}
		if sub, ok := g.oneToMany[kind]; ok {
			targets = append(targets, sub.TargetsWithLocations(element)...)
		}
		if sub, ok := g.symmetric[kind]; ok {
			for _, peer := range sub.Related(element) {
				targets = append(targets, TargetLocation{Target: peer})
			}
		}
		if len(targets) > 0 {
			out = append(out, KindTargets{Kind: kind, Label: Label(kind), Targets: targets})
		}
	}
	return out
}

// ---------------------------------------------------------------
// Reverse queries
// ---------------------------------------------------------------

// GetReferencesTo returns every (source, span) pair referencing the target,
// scanning the reverse indexes of all kinds. Edges recorded without a
// location are skipped; they carry no span to report.
func (g *Graph) GetReferencesTo(target string) []Reference {
	var refs []Reference
	for _, kind := range g.RelationshipKinds() {
		if sub, ok := g.oneToMany[kind]; ok {
			for _, src := range sub.SourcesWithLocations(target) {
				if src.Location != nil {
					refs = append(refs, Reference{Source: src.Source, File: src.Location.File, Span: src.Location.Span})
				}
			}
		}
		if sub, ok := g.oneToOne[kind]; ok {
			for _, src := range sub.SourcesWithLocations(target) {
				if src.Location != nil {
					refs = append(refs, Reference{Source: src.Source, File: src.Location.File, Span: src.Location.Span})
				}
			}
		}
	}
	return refs
}

// ---------------------------------------------------------------
// Removal and rewriting
// ---------------------------------------------------------------

// RemoveForSource deletes every edge originating at the given qualified
// name, across all kinds.
func (g *Graph) RemoveForSource(source string) {
	for _, sub := range g.oneToMany {
		sub.RemoveSource(source)
	}
	for _, sub := range g.oneToOne {
		sub.RemoveSource(source)
	}
	for _, sub := range g.symmetric {
		sub.RemoveElement(source)
	}
}

// RemoveForFile deletes every edge whose recorded location belongs to the
// given file. Covers edges whose source symbol no longer exists in the file
// after a structural edit.
func (g *Graph) RemoveForFile(file string) {
	for _, sub := range g.oneToMany {
		sub.RemoveByFile(file)
	}
	for _, sub := range g.oneToOne {
		sub.RemoveByFile(file)
	}
}

// ResolveTargets rewrites edge targets of the given kind through fn, which
// receives (source, target) and returns the replacement target. Used after
// population to qualify targets that were recorded as written in source.
func (g *Graph) ResolveTargets(kind string, fn func(source, target string) (string, bool)) {
	if sub, ok := g.oneToOne[kind]; ok {
		type rewrite struct{ source, target string }
		var rewrites []rewrite
		sub.Each(func(source, target string) {
			if newTarget, ok := fn(source, target); ok && newTarget != target {
				rewrites = append(rewrites, rewrite{source, newTarget})
			}
		})
		for _, r := range rewrites {
			sub.UpdateTarget(r.source, r.target)
		}
	}
	if sub, ok := g.oneToMany[kind]; ok {
		var sources []string
		sub.Each(func(source, _ string) { sources = append(sources, source) })
		seen := make(map[string]bool, len(sources))
		for _, source := range sources {
			if seen[source] {
				continue
			}
			seen[source] = true
			sub.UpdateTargets(source, func(target string) (string, bool) {
				return fn(source, target)
			})
		}
	}
}

// EdgeCount totals recorded edges across all shapes, for metrics.
func (g *Graph) EdgeCount() int {
	n := 0
	for _, sub := range g.oneToMany {
		n += sub.Len()
	}
	for _, sub := range g.oneToOne {
		n += sub.Len()
	}
	for _, sub := range g.symmetric {
		n += sub.Len()
	}
	return n
}
