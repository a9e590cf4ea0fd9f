package main

import (
	"context"
	"log/slog"
	"time"

	"symbase/internal/config"
	"symbase/internal/history"
	"symbase/internal/lang/sysml"
	"symbase/internal/loader"
	"symbase/internal/watcher"
	"symbase/internal/workspace"
)

// App wires the workspace, loader, watcher and history store together for
// the CLI. All population runs funnel through one goroutine: the watcher
// callback is the only concurrent edge and it serializes on the workspace.
type App struct {
	cfg     *config.Config
	ws      *workspace.Workspace
	loader  *loader.Loader
	store   *history.Store
	watcher *watcher.Watcher
}

func NewApp(cfg *config.Config) (*App, error) {
	ws := workspace.New(sysml.New())
	ws.EnableAutoInvalidation()

	ld, err := loader.New(ws, sysml.NewParser(), cfg.Extensions, cfg.Exclude.Dirs, cfg.Exclude.Files)
	if err != nil {
		return nil, err
	}

	app := &App{cfg: cfg, ws: ws, loader: ld}

	if cfg.History.Path != "" {
		store, err := history.Open(cfg.History.Path)
		if err != nil {
			return nil, err
		}
		app.store = store
	}

	return app, nil
}

// InitialScan loads every model file under the configured roots and runs a
// full population pass.
func (a *App) InitialScan(ctx context.Context) error {
	start := time.Now()
	loaded, err := a.loader.LoadRoots(a.cfg.Roots)
	if err != nil {
		return err
	}

	result, err := a.ws.PopulateAll(ctx)
	if err != nil {
		return err
	}

	slog.Info("initial scan complete",
		"files", loaded,
		"populated", len(result.Populated),
		"errors", len(result.Errors),
		"symbols", len(a.ws.Table().AllSymbols()),
		"edges", a.ws.Graph().EdgeCount(),
		"duration", time.Since(start))

	a.recordRun("all", result, time.Since(start))
	return nil
}

// StartWatcher begins watching the roots; changed files are reloaded and
// the affected subset repopulated.
func (a *App) StartWatcher() error {
	w, err := watcher.NewWatcher(
		a.cfg.Watch.Debounce,
		a.cfg.Watch.MaxFlushesPerSecond,
		a.cfg.Exclude.Dirs,
		a.cfg.Exclude.Files,
		a.onChanges,
	)
	if err != nil {
		return err
	}
	a.watcher = w
	return w.Watch(a.cfg.Roots)
}

func (a *App) onChanges(paths []string) {
	start := time.Now()
	for _, path := range paths {
		if !a.loader.Matches(path) {
			continue
		}
		if err := a.loader.LoadFile(path); err != nil {
			slog.Warn("failed to reload file", "path", path, "error", err)
		}
	}

	result, err := a.ws.PopulateAffected(context.Background())
	if err != nil {
		slog.Error("incremental population failed", "error", err)
		return
	}

	slog.Info("repopulated after change",
		"changed", len(paths),
		"populated", len(result.Populated),
		"errors", len(result.Errors),
		"duration", time.Since(start))

	a.recordRun("affected", result, time.Since(start))
}

func (a *App) recordRun(mode string, result workspace.Result, dur time.Duration) {
	if a.store == nil {
		return
	}
	run := history.Run{
		ProjectKey:     a.cfg.History.ProjectKey,
		Mode:           mode,
		FileCount:      a.ws.FileCount(),
		PopulatedCount: len(result.Populated),
		ErrorCount:     len(result.Errors),
		SymbolCount:    len(a.ws.Table().AllSymbols()),
		EdgeCount:      a.ws.Graph().EdgeCount(),
		DurationMS:     dur.Milliseconds(),
	}
	if err := a.store.SaveRun(run); err != nil {
		slog.Warn("failed to record population run", "error", err)
	}
}

func (a *App) healthStatus() map[string]any {
	return map[string]any{
		"status":  "up",
		"files":   a.ws.FileCount(),
		"symbols": len(a.ws.Table().AllSymbols()),
		"edges":   a.ws.Graph().EdgeCount(),
	}
}

func (a *App) Close() error {
	if a.watcher != nil {
		_ = a.watcher.Close()
	}
	if a.store != nil {
		return a.store.Close()
	}
	return nil
}
