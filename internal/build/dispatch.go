// Package build implements the task-kind-specific halves of spec.md §4.6–
// §4.8: the generic recipe task, the compile task (with dynamic header
// discovery), and the link task. Each is grounded on the corresponding
// slice of the teacher's scheduler (internal/engine/scheduler/scheduler.go):
// the same "compute a key, compare against the cached one, run on miss,
// invalidate hashes before writing" shape, generalized from the teacher's
// single built-in task model into the three kinds spec.md distinguishes.
package build

import (
	"context"
	"fmt"

	"maek/internal/core/domain"
	"maek/internal/core/ports"
)

// Deps bundles the adapters a task-kind implementation needs. It is
// threaded through explicitly, the way the teacher's Scheduler takes its
// ports as constructor arguments, rather than reached for through a
// package-level singleton (spec.md §9's "pass it explicitly" note).
type Deps struct {
	Resolver ports.Resolver
	Runner   ports.Runner
	Hasher   ports.Hasher
	Logger   ports.Logger
	Registry *domain.Registry
}

// Cacheable reports whether task has a key function at all. Per Invariant
// B, a task with any abstract target never does.
func Cacheable(task *domain.Task) bool {
	return !task.HasAbstractTarget()
}

// Key computes task's cache key. Calling Key always resolves the task's
// (explicit) prerequisites first, even when the result turns out to be a
// cache hit, matching spec.md §4.5's "never before prerequisites are
// up-to-date."
func Key(ctx context.Context, task *domain.Task, d Deps) (domain.CacheKey, error) {
	switch task.Kind {
	case domain.KindRule:
		return ruleKey(ctx, task, d)
	case domain.KindCompile:
		return compileKey(ctx, task, d)
	case domain.KindLink:
		return linkKey(ctx, task, d)
	default:
		return nil, domain.NewInternalError(fmt.Errorf("unknown task kind %d", task.Kind), "build.Key")
	}
}

// Run executes task's body: resolve prerequisites, run the recipe, and
// invalidate the hash-cache entries for whatever the recipe just wrote.
func Run(ctx context.Context, task *domain.Task, d Deps) error {
	switch task.Kind {
	case domain.KindRule:
		return ruleRun(ctx, task, d)
	case domain.KindCompile:
		return compileRun(ctx, task, d)
	case domain.KindLink:
		return linkRun(ctx, task, d)
	default:
		return domain.NewInternalError(fmt.Errorf("unknown task kind %d", task.Kind), "build.Run")
	}
}

// hashAll is a small convenience wrapper used by ruleKey (compileKey and
// linkKey call Hasher.HashAll directly): it flattens one or more path
// slices and asks the Hasher for their hash records in order.
func hashAll(d Deps, paths ...[]string) []domain.HashRecord {
	var all []string
	for _, p := range paths {
		all = append(all, p...)
	}
	return d.Hasher.HashAll(all)
}
