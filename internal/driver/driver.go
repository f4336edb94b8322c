// Package driver implements spec.md §4.9: the top-level update() that a
// maekfile's call to maek.Update ultimately runs. It is grounded on the
// teacher's internal/app.App.Run orchestration, stripped of the TUI/
// telemetry machinery the teacher uses to drive a terminal renderer — the
// CLI contract here is a flat stdout/stderr stream (spec.md §10), so the
// driver logs directly through ports.Logger instead of feeding a renderer.
package driver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"maek/internal/core/domain"
	"maek/internal/core/ports"
)

// Version is the engine version the driver announces at the start of every
// update, per spec.md §4.9.
const Version = "0.1.0"

// Driver owns the registry, resolver, persisted cache, and logger for one
// build description, and implements spec.md §4.9's update(roots).
type Driver struct {
	Registry *domain.Registry
	Resolver ports.Resolver
	Store    ports.Store
	Logger   ports.Logger
	Jobs     int
}

// New creates a Driver wiring the given components together.
func New(registry *domain.Registry, resolver ports.Resolver, store ports.Store, logger ports.Logger, jobs int) *Driver {
	return &Driver{Registry: registry, Resolver: resolver, Store: store, Logger: logger, Jobs: jobs}
}

// Update drives roots to completion: announce version and JOBS, clear
// in-memory cached keys, load the persisted cache, resolve roots, persist
// the resulting cache, and log a summary (spec.md §4.9).
func (d *Driver) Update(ctx context.Context, roots []string) error {
	d.Logger.Info(fmt.Sprintf("maek %s, JOBS=%d", Version, d.Jobs))

	d.Registry.ClearCachedKeys()

	assigned, removed, err := d.loadCache()
	if err != nil {
		return err
	}
	d.Logger.Info(fmt.Sprintf("persisted cache: %d assigned, %d stale entries dropped", assigned, removed))

	if len(roots) == 0 {
		return domain.ErrNoTargetsSpecified
	}

	resolveErr := d.Resolver.Resolve(ctx, roots, "user")

	saved, saveErr := d.saveCache()
	if saveErr != nil && resolveErr == nil {
		resolveErr = saveErr
	}

	if resolveErr != nil {
		if errors.Is(resolveErr, domain.BuildError) {
			d.Logger.Error(resolveErr)
			d.Logger.Info(fmt.Sprintf("FAILED: %s", resolveErr.Error()))
			return resolveErr
		}
		return resolveErr
	}

	d.Logger.Info(fmt.Sprintf("build succeeded, %d cache keys persisted", saved))
	return nil
}

// loadCache reads the persisted cache and assigns each entry its matching
// registry entry's in-memory cached key. Targets no longer in the registry
// are dropped silently (spec.md §3's "Persisted cache").
func (d *Driver) loadCache() (assigned, removed int, err error) {
	entries, err := d.Store.Load()
	if err != nil {
		return 0, 0, err
	}

	for target, raw := range entries {
		entry, ok := d.Registry.Lookup(target)
		if !ok {
			removed++
			continue
		}
		entry.SetCachedKey(raw)
		assigned++
	}
	return assigned, removed, nil
}

// saveCache persists the cached key of every registered entry that has
// one, keyed by every target string the entry produces.
func (d *Driver) saveCache() (int, error) {
	entries := make(map[string]json.RawMessage)
	for _, e := range d.Registry.Entries() {
		raw, ok := e.CachedKey()
		if !ok {
			continue
		}
		for _, target := range e.Task.TargetStrings() {
			entries[target] = raw
		}
	}
	return len(entries), d.Store.Save(entries)
}
