package driver_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"maek/internal/core/domain"
	"maek/internal/driver"
)

type fakeStore struct {
	loaded map[string]json.RawMessage
	saved  map[string]json.RawMessage
}

func (s *fakeStore) Load() (map[string]json.RawMessage, error) {
	if s.loaded == nil {
		return map[string]json.RawMessage{}, nil
	}
	return s.loaded, nil
}

func (s *fakeStore) Save(entries map[string]json.RawMessage) error {
	s.saved = entries
	return nil
}

type fakeResolver struct {
	err     error
	targets []string
}

func (r *fakeResolver) Resolve(_ context.Context, targets []string, _ string) error {
	r.targets = targets
	return r.err
}

type recordingLogger struct {
	infos  []string
	errors []error
}

func (l *recordingLogger) Info(msg string) { l.infos = append(l.infos, msg) }
func (l *recordingLogger) Error(err error) { l.errors = append(l.errors, err) }

func TestDriver_Update_NoRootsIsError(t *testing.T) {
	reg := domain.NewRegistry()
	d := driver.New(reg, &fakeResolver{}, &fakeStore{}, &recordingLogger{}, 4)

	err := d.Update(context.Background(), nil)
	require.ErrorIs(t, err, domain.BuildError)
}

func TestDriver_Update_PersistsCachedKeysAfterSuccess(t *testing.T) {
	reg := domain.NewRegistry()
	reg.AddTask(&domain.Task{
		Targets: []domain.InternedString{domain.NewInternedString("out")},
		Label:   "out",
	})

	resolver := &fakeResolver{}
	store := &fakeStore{loaded: map[string]json.RawMessage{
		"out": json.RawMessage(`["cmd"]`),
	}}
	d := driver.New(reg, resolver, store, &recordingLogger{}, 4)

	err := d.Update(context.Background(), []string{"out"})
	require.NoError(t, err)
	require.Equal(t, []string{"out"}, resolver.targets)
	require.Contains(t, store.saved, "out")
}

func TestDriver_Update_DropsStaleCacheEntries(t *testing.T) {
	reg := domain.NewRegistry()
	store := &fakeStore{loaded: map[string]json.RawMessage{
		"gone": json.RawMessage(`["cmd"]`),
	}}
	logger := &recordingLogger{}
	d := driver.New(reg, &fakeResolver{}, store, logger, 4)

	err := d.Update(context.Background(), []string{":all"})
	require.NoError(t, err)
	require.Contains(t, logger.infos, "persisted cache: 0 assigned, 1 stale entries dropped")
	require.NotContains(t, store.saved, "gone")
}

func TestDriver_Update_BuildErrorIsReturnedAfterPersisting(t *testing.T) {
	reg := domain.NewRegistry()
	resolver := &fakeResolver{err: domain.MissingSourceError("missing.cpp")}
	store := &fakeStore{}
	logger := &recordingLogger{}
	d := driver.New(reg, resolver, store, logger, 4)

	err := d.Update(context.Background(), []string{"missing.cpp"})
	require.ErrorIs(t, err, domain.BuildError)
	require.NotEmpty(t, logger.errors)
	require.NotNil(t, store.saved)
}
