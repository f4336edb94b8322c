package build

import (
	"context"

	"maek/internal/core/domain"
)

// ruleKey implements spec.md §4.6's key function: resolve prerequisites (so
// their files exist to be hashed), then hash the recipe's targets and
// prerequisites together. A rule task with an abstract target has no key
// function at all; build.Key is never called for it.
func ruleKey(ctx context.Context, task *domain.Task, d Deps) (domain.CacheKey, error) {
	if err := d.Resolver.Resolve(ctx, task.PrerequisiteStrings(), task.Label); err != nil {
		return nil, err
	}

	records := hashAll(d, task.TargetStrings(), task.PrerequisiteStrings())
	return domain.CacheKey{task.Recipe, domain.HashRecordStrings(records)}, nil
}

// ruleRun implements the body half of spec.md §4.6: resolve prerequisites,
// run every recipe command in order, then invalidate the hash-cache
// entries for whatever the recipe may have rewritten.
func ruleRun(ctx context.Context, task *domain.Task, d Deps) error {
	if err := d.Resolver.Resolve(ctx, task.PrerequisiteStrings(), task.Label); err != nil {
		return err
	}

	d.Hasher.Invalidate(task.TargetStrings())
	for _, cmd := range task.Recipe {
		if err := d.Runner.Run(ctx, cmd, task.Label); err != nil {
			return err
		}
	}
	d.Hasher.Invalidate(task.TargetStrings())
	return nil
}
