package resolver_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"maek/internal/core/domain"
	"maek/internal/engine/resolver"
)

type countingRunner struct {
	count atomic.Int32
}

func (r *countingRunner) Run(ctx context.Context, command []string, label string) error {
	r.count.Add(1)
	return nil
}

type fakeHasher struct {
	mu      sync.Mutex
	digests map[string]string
}

func newFakeHasher() *fakeHasher { return &fakeHasher{digests: make(map[string]string)} }

func (f *fakeHasher) Hash(path string) domain.HashRecord {
	f.mu.Lock()
	defer f.mu.Unlock()
	if d, ok := f.digests[path]; ok {
		return domain.NewHashRecord(path, d)
	}
	return domain.NewMissingHashRecord(path)
}

func (f *fakeHasher) HashAll(paths []string) []domain.HashRecord {
	out := make([]domain.HashRecord, 0, len(paths))
	for _, p := range paths {
		if domain.IsAbstract(p) {
			continue
		}
		out = append(out, f.Hash(p))
	}
	return out
}

func (f *fakeHasher) Invalidate(paths []string) {}

type nullLogger struct{}

func (nullLogger) Info(msg string) {}
func (nullLogger) Error(err error) {}

func TestResolver_RunsTaskAndCachesKey(t *testing.T) {
	reg := domain.NewRegistry()
	task := &domain.Task{
		Targets: domain.InternAll([]string{"out"}),
		Recipe:  [][]string{{"echo", "hi"}},
		Label:   "rule:out",
		Kind:    domain.KindRule,
	}
	entry := reg.AddTask(task)

	runner := &countingRunner{}
	r := resolver.New(reg, runner, newFakeHasher(), nullLogger{})

	require.NoError(t, r.Resolve(context.Background(), []string{"out"}, "user"))
	require.EqualValues(t, 1, runner.count.Load())

	_, ok := entry.CachedKey()
	require.True(t, ok)
}

func TestResolver_CacheHitSkipsRecipe(t *testing.T) {
	reg := domain.NewRegistry()
	task := &domain.Task{
		Targets: domain.InternAll([]string{"out"}),
		Recipe:  [][]string{{"echo", "hi"}},
		Label:   "rule:out",
		Kind:    domain.KindRule,
	}
	entry := reg.AddTask(task)

	key := domain.CacheKey{task.Recipe, []string{"out:x"}}
	raw, err := key.RawCanonical()
	require.NoError(t, err)
	entry.SetCachedKey(raw)

	runner := &countingRunner{}
	r := resolver.New(reg, runner, newFakeHasher(), nullLogger{})

	require.NoError(t, r.Resolve(context.Background(), []string{"out"}, "user"))
	require.EqualValues(t, 0, runner.count.Load())
}

func TestResolver_AbstractTargetWithoutTaskFails(t *testing.T) {
	reg := domain.NewRegistry()
	r := resolver.New(reg, &countingRunner{}, newFakeHasher(), nullLogger{})

	err := r.Resolve(context.Background(), []string{":test"}, "user")
	require.Error(t, err)
}

func TestResolver_MissingFileWithNoTaskFails(t *testing.T) {
	reg := domain.NewRegistry()
	r := resolver.New(reg, &countingRunner{}, newFakeHasher(), nullLogger{})

	err := r.Resolve(context.Background(), []string{filepath.Join(t.TempDir(), "missing.cpp")}, "user")
	require.Error(t, err)
}

func TestResolver_ExistingFileWithNoTaskSucceeds(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "present.cpp")
	require.NoError(t, os.WriteFile(path, []byte("//"), 0o644))

	reg := domain.NewRegistry()
	r := resolver.New(reg, &countingRunner{}, newFakeHasher(), nullLogger{})

	require.NoError(t, r.Resolve(context.Background(), []string{path}, "user"))
}

func TestResolver_ConcurrentRequestsRunTaskOnce(t *testing.T) {
	reg := domain.NewRegistry()
	task := &domain.Task{
		Targets: domain.InternAll([]string{"a", "b"}),
		Recipe:  [][]string{{"echo", "hi"}},
		Label:   "rule:ab",
		Kind:    domain.KindRule,
	}
	reg.AddTask(task)

	runner := &countingRunner{}
	r := resolver.New(reg, runner, newFakeHasher(), nullLogger{})

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = r.Resolve(context.Background(), []string{"a"}, "user")
		}()
	}
	wg.Wait()

	require.EqualValues(t, 1, runner.count.Load())
}
