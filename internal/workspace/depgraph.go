package workspace

import "sort"

// DependencyGraph tracks file-to-file import edges. It exists purely to
// compute invalidation cascades when a file changes; name resolution never
// consults it.
type DependencyGraph struct {
	dependsOn  map[string]map[string]bool // file -> files it imports from
	dependents map[string]map[string]bool // file -> files importing from it
}

func NewDependencyGraph() *DependencyGraph {
	return &DependencyGraph{
		dependsOn:  make(map[string]map[string]bool),
		dependents: make(map[string]map[string]bool),
	}
}

// AddDependency records that `from` imports from `to`.
func (g *DependencyGraph) AddDependency(from, to string) {
	if from == to {
		return
	}
	if g.dependsOn[from] == nil {
		g.dependsOn[from] = make(map[string]bool)
	}
	g.dependsOn[from][to] = true
	if g.dependents[to] == nil {
		g.dependents[to] = make(map[string]bool)
	}
	g.dependents[to][from] = true
}

// RemoveFile clears the outgoing edges of a file. Inbound edges are kept:
// files depending on a removed file must still be invalidated.
func (g *DependencyGraph) RemoveFile(path string) {
	for to := range g.dependsOn[path] {
		delete(g.dependents[to], path)
		if len(g.dependents[to]) == 0 {
			delete(g.dependents, to)
		}
	}
	delete(g.dependsOn, path)
}

// Dependents returns the files directly importing from path, sorted.
func (g *DependencyGraph) Dependents(path string) []string {
	out := make([]string, 0, len(g.dependents[path]))
	for from := range g.dependents[path] {
		out = append(out, from)
	}
	sort.Strings(out)
	return out
}

// DependsOn returns the files path directly imports from, sorted.
func (g *DependencyGraph) DependsOn(path string) []string {
	out := make([]string, 0, len(g.dependsOn[path]))
	for to := range g.dependsOn[path] {
		out = append(out, to)
	}
	sort.Strings(out)
	return out
}

// AllAffected returns every file transitively depending on path, sorted.
// The path itself is not included. Cycle-safe.
func (g *DependencyGraph) AllAffected(path string) []string {
	visited := map[string]bool{path: true}
	queue := []string{path}
	var affected []string

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for from := range g.dependents[current] {
			if visited[from] {
				continue
			}
			visited[from] = true
			affected = append(affected, from)
			queue = append(queue, from)
		}
	}

	sort.Strings(affected)
	return affected
}
