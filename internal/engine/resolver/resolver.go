// Package resolver implements the task registry and target resolver of
// spec.md §4.5: demand-driven target resolution with per-target
// deduplication, built on top of internal/build's per-Kind key/run
// functions.
//
// It is grounded on the teacher's Scheduler.Run/schedulerRunState
// (internal/engine/scheduler/scheduler.go), but restructured: the teacher
// walks one upfront topological sort of a whole graph, while maek's
// resolver is demand-driven — a target is only ever looked at because
// something asked for it — so the per-task "pending" handle described in
// spec.md §9 takes the place of the teacher's inDegree/ready-queue bookkeeping.
package resolver

import (
	"context"
	"errors"
	"os"
	"sync"

	"golang.org/x/sync/errgroup"

	"maek/internal/build"
	"maek/internal/core/domain"
	"maek/internal/core/ports"
)

// Resolver implements ports.Resolver.
type Resolver struct {
	registry *domain.Registry
	logger   ports.Logger
	deps     build.Deps
}

// New creates a Resolver over registry, using runner and hasher to execute
// and cache task bodies. The Resolver is its own ports.Resolver, so
// internal/build's task bodies recurse back into it for their
// prerequisites without a package import cycle.
func New(registry *domain.Registry, runner ports.Runner, hasher ports.Hasher, logger ports.Logger) *Resolver {
	r := &Resolver{registry: registry, logger: logger}
	r.deps = build.Deps{Runner: runner, Hasher: hasher, Logger: logger, Registry: registry, Resolver: r}
	return r
}

// Resolve implements spec.md §4.5's resolve(targets, requester_label). All
// targets are resolved in parallel (fan-out concurrent, per spec.md §5);
// a failing target does not cancel siblings still in flight, matching
// spec.md §5's "no cooperative cancellation".
func (r *Resolver) Resolve(ctx context.Context, targets []string, requesterLabel string) error {
	var mu sync.Mutex
	var errs error

	var g errgroup.Group
	for _, target := range targets {
		target := target
		g.Go(func() error {
			if err := r.resolveOne(ctx, target, requesterLabel); err != nil {
				mu.Lock()
				errs = errors.Join(errs, domain.PrerequisiteFailedError(target, err))
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()
	return errs
}

// resolveOne implements the three cases of spec.md §4.5 step 1-3 for a
// single target. An abstract target with no task or a missing file is
// logged here before being returned to the caller for wrapping; a failed
// task update is logged by runTaskUpdate. runTaskUpdate logs every error its
// task body returns, including a "prerequisite failed" error whose cause was
// already logged further down, so one root cause is logged again by each
// task above it.
func (r *Resolver) resolveOne(ctx context.Context, target, requesterLabel string) error {
	entry, ok := r.registry.Lookup(target)
	if !ok {
		return r.resolveUnregistered(target)
	}

	pending, created := entry.GetOrCreatePending()
	if created {
		go func() {
			pending.Finish(r.runTaskUpdate(ctx, entry, requesterLabel))
		}()
	}
	return pending.Wait()
}

func (r *Resolver) resolveUnregistered(target string) error {
	if domain.IsAbstract(target) {
		err := domain.AbstractNoTaskError(target)
		r.logger.Error(err)
		return err
	}
	if _, err := os.Stat(target); err != nil {
		buildErr := domain.MissingSourceError(target)
		r.logger.Error(buildErr)
		return buildErr
	}
	return nil
}

// runTaskUpdate is the body a freshly created pending executes, per
// spec.md §4.5's "task-update body": a pre-check key comparison, the task
// body on a miss, then a post-run key write.
func (r *Resolver) runTaskUpdate(ctx context.Context, entry *domain.Entry, requesterLabel string) error {
	task := entry.Task

	if build.Cacheable(task) {
		if cached, ok := entry.CachedKey(); ok {
			key, err := build.Key(ctx, task, r.deps)
			if err != nil {
				r.logger.Error(err)
				return err
			}
			if equal, err := key.Equal(cached); err == nil && equal {
				return nil
			}
		}
	}

	if err := build.Run(ctx, task, r.deps); err != nil {
		r.logger.Error(err)
		return err
	}

	if build.Cacheable(task) {
		key, err := build.Key(ctx, task, r.deps)
		if err != nil {
			r.logger.Error(err)
			return err
		}
		raw, err := key.RawCanonical()
		if err != nil {
			return domain.NewInternalError(err, "serializing cache key")
		}
		entry.SetCachedKey(raw)
	}
	return nil
}
