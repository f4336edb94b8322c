package build

import (
	"context"
	"os"
	"path/filepath"
	"slices"

	"maek/internal/core/domain"
)

// discoverHeaders implements spec.md §4.7's dep-file step shared by
// compileKey and compileRun: read the dependency-probe's output, tokenize
// it, drop headers already present in task's explicit prerequisites, and
// reject any header that collides with another task's declared target
// (Invariant C, and the true membership check spec.md §9 Open Question (a)
// calls for in place of the upstream literal-string bug).
//
// A missing dep-file (first build, or one that was deleted) is not an
// error: it yields no discovered headers, and the resulting key includes
// the object and dep-file as ":x" hash records, which guarantees a miss.
func discoverHeaders(task *domain.Task, d Deps) ([]string, error) {
	data, err := os.ReadFile(task.DepFile.String())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, domain.NewInternalError(err, "reading dependency file")
	}

	headers, err := parseDepFile(task.DepFile.String(), data)
	if err != nil {
		return nil, err
	}

	explicit := task.PrerequisiteStrings()
	headers = slices.DeleteFunc(headers, func(h string) bool {
		return slices.Contains(explicit, h)
	})

	for _, h := range headers {
		if producer, ok := d.Registry.Lookup(h); ok {
			return nil, domain.CollisionError(h, producer.Task.Label)
		}
	}

	return headers, nil
}

// compileKey implements spec.md §4.7's key function.
func compileKey(ctx context.Context, task *domain.Task, d Deps) (domain.CacheKey, error) {
	if err := d.Resolver.Resolve(ctx, task.PrerequisiteStrings(), task.Label); err != nil {
		return nil, err
	}

	headers, err := discoverHeaders(task, d)
	if err != nil {
		return nil, err
	}

	paths := []string{task.Object.String(), task.DepFile.String()}
	paths = append(paths, task.PrerequisiteStrings()...)
	paths = append(paths, headers...)

	records := d.Hasher.HashAll(paths)
	return domain.CacheKey{task.CompileCmd, task.ProbeCmd, domain.HashRecordStrings(records)}, nil
}

// compileRun implements spec.md §4.7's body: resolve explicit prerequisites,
// invalidate the object/dep-file hashes, create the output directories, run
// the compiler, run the dependency probe, then validate the dep-file it
// wrote.
func compileRun(ctx context.Context, task *domain.Task, d Deps) error {
	if err := d.Resolver.Resolve(ctx, task.PrerequisiteStrings(), task.Label); err != nil {
		return err
	}

	outputs := []string{task.Object.String(), task.DepFile.String()}
	d.Hasher.Invalidate(outputs)

	for _, out := range outputs {
		if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
			return domain.NewInternalError(err, "creating output directory")
		}
	}

	if err := d.Runner.Run(ctx, task.CompileCmd, task.Label); err != nil {
		return err
	}
	if err := d.Runner.Run(ctx, task.ProbeCmd, task.Label); err != nil {
		return err
	}

	d.Hasher.Invalidate(outputs)

	if _, err := discoverHeaders(task, d); err != nil {
		return err
	}
	return nil
}
