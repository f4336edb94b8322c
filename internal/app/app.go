// Package app implements the application layer for maek's CLI: it loads
// maek.yaml overrides, assembles the resolver and driver around the
// leaf adapters Graft wires, and exposes the one operation the CLI needs,
// Run. Grounded on the teacher's internal/app.App, trimmed of the
// TUI/telemetry/force-rebuild surface that has no home in maek's flat
// stdout/stderr CLI contract (spec.md §10).
package app

import (
	"context"
	"runtime"

	"maek"
	"maek/internal/core/ports"
	"maek/internal/driver"
	"maek/internal/engine/resolver"
)

// App wires the leaf adapters Graft resolved into a working driver.Driver
// and runs it against whatever targets the CLI names.
type App struct {
	configLoader ports.ConfigLoader
	runner       ports.Runner
	hasher       ports.Hasher
	store        ports.Store
	logger       ports.Logger
}

// New creates an App from its adapter dependencies.
func New(loader ports.ConfigLoader, runner ports.Runner, hasher ports.Hasher, store ports.Store, logger ports.Logger) *App {
	return &App{configLoader: loader, runner: runner, hasher: hasher, store: store, logger: logger}
}

// ResolvedJobs loads maek.yaml and returns the JOBS value a build would use,
// without running one. Backs the CLI's "version" subcommand, which echoes
// the same announcement driver.Update makes at the start of every update
// (spec.md §4.9) without doing a build.
func (a *App) ResolvedJobs() (int, error) {
	defaults := ports.Options{Jobs: runtime.NumCPU() + 1, CacheFile: "maek-cache.json"}
	opts, err := a.configLoader.Load("maek.yaml", defaults)
	if err != nil {
		return 0, err
	}
	return opts.Jobs, nil
}

// Run loads maek.yaml, resolves targetNames (or the configured default
// target if targetNames is empty), and drives the build (spec.md §4.9).
func (a *App) Run(ctx context.Context, targetNames []string) error {
	defaults := ports.Options{Jobs: runtime.NumCPU() + 1, CacheFile: "maek-cache.json"}
	opts, err := a.configLoader.Load("maek.yaml", defaults)
	if err != nil {
		return err
	}

	res := resolver.New(maek.Registry(), a.runner, a.hasher, a.logger)
	d := driver.New(maek.Registry(), res, a.store, a.logger, opts.Jobs)

	roots := targetNames
	if len(roots) == 0 && opts.DefaultTarget != "" {
		roots = []string{opts.DefaultTarget}
	}
	return d.Update(ctx, roots)
}
