package workspace

// EventKind discriminates workspace lifecycle events.
type EventKind int

const (
	FileAdded EventKind = iota
	FileUpdated
	FileRemoved
)

func (k EventKind) String() string {
	switch k {
	case FileAdded:
		return "file_added"
	case FileUpdated:
		return "file_updated"
	case FileRemoved:
		return "file_removed"
	default:
		return "unknown"
	}
}

// Event is published synchronously through the workspace's handler list.
// FileUpdated is published before the new content is applied, so handlers
// observe the pre-update dependency edges.
type Event struct {
	Kind EventKind
	Path string
}

// Handler receives events with mutable access to the workspace for the
// duration of the callback. Handlers run inline inside the mutating call.
type Handler func(ws *Workspace, ev Event)

// Subscribe appends a handler. Handlers are invoked in subscription order.
func (ws *Workspace) Subscribe(h Handler) {
	ws.handlers = append(ws.handlers, h)
}

func (ws *Workspace) publish(ev Event) {
	for _, h := range ws.handlers {
		h(ws, ev)
	}
}

// EnableAutoInvalidation subscribes the standard invalidation handler: when
// a file is updated, its old symbols, relationships and imports are cleared
// and the file plus every transitive dependent is marked unpopulated, so the
// next PopulateAffected run rebuilds exactly the affected subset.
func (ws *Workspace) EnableAutoInvalidation() {
	ws.Subscribe(func(w *Workspace, ev Event) {
		if ev.Kind != FileUpdated {
			return
		}
		path := ev.Path

		for _, qname := range w.table.QualifiedNamesForFile(path) {
			w.graph.RemoveForSource(qname)
		}
		w.graph.RemoveForFile(path)
		w.table.RemoveReferencesFromFile(path)
		w.table.RemoveImportsFromFile(path)
		w.table.RemoveSymbolsFromFile(path)

		w.markUnpopulated(path)
		for _, dep := range w.deps.AllAffected(path) {
			w.markUnpopulated(dep)
		}
	})
}
