package build

import (
	"context"
	"os"
	"path/filepath"

	"maek/internal/core/domain"
)

// linkKey implements spec.md §4.8's key function: resolve the objects,
// then hash the executable together with every object.
func linkKey(ctx context.Context, task *domain.Task, d Deps) (domain.CacheKey, error) {
	if err := d.Resolver.Resolve(ctx, task.PrerequisiteStrings(), task.Label); err != nil {
		return nil, err
	}

	paths := append([]string{task.Output.String()}, task.PrerequisiteStrings()...)
	records := d.Hasher.HashAll(paths)
	return domain.CacheKey{task.LinkCmd, domain.HashRecordStrings(records)}, nil
}

// linkRun implements spec.md §4.8's body.
func linkRun(ctx context.Context, task *domain.Task, d Deps) error {
	if err := d.Resolver.Resolve(ctx, task.PrerequisiteStrings(), task.Label); err != nil {
		return err
	}

	exe := task.Output.String()
	d.Hasher.Invalidate([]string{exe})

	if err := os.MkdirAll(filepath.Dir(exe), 0o755); err != nil {
		return domain.NewInternalError(err, "creating output directory")
	}

	if err := d.Runner.Run(ctx, task.LinkCmd, task.Label); err != nil {
		return err
	}

	d.Hasher.Invalidate([]string{exe})
	return nil
}
