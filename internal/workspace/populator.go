package workspace

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"symbase/internal/core/errors"
	"symbase/internal/observability"
	"symbase/internal/refs"
	"symbase/internal/relations"
	"symbase/internal/resolver"
)

// FileError records one recoverable per-file population failure.
type FileError struct {
	Path string
	Err  error
}

// Result summarizes a population batch. Recoverable per-file errors are
// collected here; only structural problems (no extractor, unknown path)
// surface as the batch error.
type Result struct {
	Populated []string
	Errors    []FileError
}

// PopulateAll processes every file in sorted-path order, so the winner of
// any qualified-name collision is the same on every run over the same file
// set. Per-file failures are logged and collected, never abort the batch:
// a project with some malformed files must still yield a usable model for
// the rest.
func (ws *Workspace) PopulateAll(ctx context.Context) (Result, error) {
	ctx, span := observability.Tracer.Start(ctx, "workspace.PopulateAll",
		trace.WithAttributes(attribute.Int("files", len(ws.files))))
	defer span.End()

	start := time.Now()
	result := ws.populatePaths(ctx, ws.FilePaths())

	// Legacy eager pass; query-time graph lookups answer the same question
	// for incremental runs.
	refs.NewCollector(ws.table, ws.graph).Collect()
	ws.resolveRelationshipTargets()
	ws.recordMetrics("all", start)
	return result, nil
}

// PopulateAffected processes only files whose populated flag is false, in
// sorted-path order. This is the steady-state edit loop entry point.
func (ws *Workspace) PopulateAffected(ctx context.Context) (Result, error) {
	ctx, span := observability.Tracer.Start(ctx, "workspace.PopulateAffected")
	defer span.End()

	var unpopulated []string
	for path, file := range ws.files {
		if !file.IsPopulated() {
			unpopulated = append(unpopulated, path)
		}
	}
	sort.Strings(unpopulated)

	start := time.Now()
	result := ws.populatePaths(ctx, unpopulated)
	ws.resolveRelationshipTargets()
	ws.recordMetrics("affected", start)
	return result, nil
}

func (ws *Workspace) populatePaths(ctx context.Context, paths []string) Result {
	var result Result
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			// A canceled context stops scheduling new files; finished files
			// stay populated.
			break
		}
		if err := ws.PopulateFile(path); err != nil {
			slog.Warn("failed to populate file", "path", path, "error", err)
			observability.FilePopulationErrorsTotal.Inc()
			result.Errors = append(result.Errors, FileError{Path: path, Err: err})
			continue
		}
		observability.FilesPopulatedTotal.Inc()
		result.Populated = append(result.Populated, path)
	}
	return result
}

// PopulateFile re-extracts a single file: old symbols, relationship edges
// and imports attributable to the file are removed first, then the
// extraction adapter rebuilds them from the current syntax tree. On adapter
// failure the clearing is not rolled back - the file is left empty rather
// than stale - and the populated flag stays false.
func (ws *Workspace) PopulateFile(path string) error {
	file, ok := ws.files[path]
	if !ok {
		return errors.AddContext(
			errors.New(errors.CodeNotFound, "file not found in workspace"),
			errors.CtxPath, path)
	}
	if ws.extractor == nil {
		return errors.New(errors.CodeInternal, "workspace has no extraction adapter")
	}

	// Outgoing edges of the file's current symbols, then edges recorded
	// against the file itself (covers edges whose source symbol no longer
	// exists after a structural edit).
	for _, qname := range ws.table.QualifiedNamesForFile(path) {
		ws.graph.RemoveForSource(qname)
	}
	ws.graph.RemoveForFile(path)

	ws.table.RemoveReferencesFromFile(path)
	ws.table.RemoveImportsFromFile(path)
	ws.table.RemoveSymbolsFromFile(path)

	ws.table.SetCurrentFile(path)
	ws.table.SetCurrentScope(0)

	if err := ws.extractor.Extract(file.Content(), ws.table, ws.graph); err != nil {
		wrapped := errors.Wrap(err, errors.CodePopulationError, "extraction failed")
		return errors.AddContext(wrapped, errors.CtxPath, path)
	}

	ws.markPopulated(path)
	return nil
}

// resolveRelationshipTargets qualifies typing targets recorded as written in
// source, now that all symbols are available. Each target is resolved in the
// scope of its source symbol so imports and nesting apply.
func (ws *Workspace) resolveRelationshipTargets() {
	res := resolver.New(ws.table)
	ws.graph.ResolveTargets(relations.KindTyping, func(source, target string) (string, bool) {
		scopeID := 0
		if sym := ws.table.FindByQualifiedName(source); sym != nil {
			scopeID = sym.ScopeID
		}
		resolved := res.ResolveInScope(target, scopeID)
		if resolved == nil {
			return "", false
		}
		return resolved.QualifiedName, true
	})
}

func (ws *Workspace) recordMetrics(mode string, start time.Time) {
	observability.PopulationDuration.WithLabelValues(mode).Observe(time.Since(start).Seconds())
	observability.SymbolsTotal.Set(float64(len(ws.table.AllSymbols())))
	observability.RelationshipEdgesTotal.Set(float64(ws.graph.EdgeCount()))
}
