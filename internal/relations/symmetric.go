package relations

// SymmetricGraph holds mutual, non-directional relations: adding (A, B) also
// records (B, A), and removing an element purges all back-references to it.
type SymmetricGraph struct {
	related map[string][]string
}

func NewSymmetricGraph() *SymmetricGraph {
	return &SymmetricGraph{related: make(map[string][]string)}
}

func (g *SymmetricGraph) Add(a, b string) {
	if !contains(g.related[a], b) {
		g.related[a] = append(g.related[a], b)
	}
	if !contains(g.related[b], a) {
		g.related[b] = append(g.related[b], a)
	}
}

func (g *SymmetricGraph) Related(element string) []string {
	return g.related[element]
}

// RemoveElement deletes an element and every back-reference to it.
func (g *SymmetricGraph) RemoveElement(element string) {
	peers := g.related[element]
	delete(g.related, element)
	for _, peer := range peers {
		kept := g.related[peer][:0]
		for _, other := range g.related[peer] {
			if other != element {
				kept = append(kept, other)
			}
		}
		if len(kept) == 0 {
			delete(g.related, peer)
		} else {
			g.related[peer] = kept
		}
	}
}

func (g *SymmetricGraph) Len() int {
	n := 0
	for _, peers := range g.related {
		n += len(peers)
	}
	return n / 2
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
